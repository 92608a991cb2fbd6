package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/evasseure/huil/config"
	"github.com/evasseure/huil/errors"
	"github.com/evasseure/huil/interpreter"
	"github.com/evasseure/huil/lexer"
	"github.com/evasseure/huil/parser"
	"github.com/evasseure/huil/runtime"
	"github.com/evasseure/huil/types"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
	"golang.org/x/term"
)

type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// plainReader is used when stdin is not a terminal.
type plainReader struct {
	in *bufio.Reader
}

func (p *plainReader) Prompt(prompt string) (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *plainReader) AppendHistory(string) {}
func (p *plainReader) Close() error         { return nil }

type terminalReader struct {
	*liner.State
	history string
}

func newTerminalReader(history string) *terminalReader {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	if f, err := os.Open(history); err == nil {
		st.ReadHistory(f)
		f.Close()
	}
	return &terminalReader{State: st, history: history}
}

func (t *terminalReader) Close() error {
	if f, err := os.Create(t.history); err == nil {
		t.WriteHistory(f)
		f.Close()
	} else {
		plog.Warningf("could not write history to %s: %v", t.history, err)
	}
	return t.State.Close()
}

// needsMore reports whether the buffered lines are an unfinished entry.
// Entries that open a block are only finished by a blank line.
func needsMore(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	src := strings.Join(lines, "\n")
	if opensBlock(src) {
		return strings.TrimSpace(lines[len(lines)-1]) != ""
	}

	_, err := parser.ParseString(src)
	if err == nil {
		return false
	}
	serr, ok := errors.Cause(err).(errors.SyntaxError)
	return ok && serr.Got == types.EOF
}

// opensBlock reports whether any line of src ends with a block-opening colon.
func opensBlock(src string) bool {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return false
	}
	for idx := 1; idx < len(toks); idx++ {
		if toks[idx-1].Kind != types.COLON {
			continue
		}
		if next := toks[idx].Kind; next == types.NEWLINE || next == types.EOF {
			return true
		}
	}
	return false
}

func readEntry(r lineReader, cfg config.Config) (string, error) {
	var lines []string
	prompt := cfg.Prompt
	for {
		line, err := r.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				return "", nil
			}
			if err == io.EOF && len(lines) > 0 {
				return strings.Join(lines, "\n"), nil
			}
			return "", err
		}
		if len(lines) == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if !needsMore(lines) {
			return strings.Join(lines, "\n"), nil
		}
		prompt = cfg.ContinuationPrompt
	}
}

func runREPL(c *cli.Context, cfg config.Config) error {
	opts := []interpreter.Option{interpreter.WithEcho(cfg.Echo)}

	var r lineReader
	if term.IsTerminal(int(os.Stdin.Fd())) {
		r = newTerminalReader(cfg.HistoryFile)
	} else {
		// input() and the session share one buffer over stdin.
		in := bufio.NewReader(os.Stdin)
		r = &plainReader{in: in}
		opts = append(opts, interpreter.WithInput(in))
	}
	defer r.Close()

	ip := interpreter.New(opts...)
	for {
		src, err := readEntry(r, cfg)
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		if src == "" {
			continue
		}
		r.AppendHistory(src)

		v, err := evalEntry(ip, src)
		if err != nil {
			if c.Bool("trace") {
				tracerr.PrintSourceColor(err)
			} else {
				fmt.Fprintln(os.Stderr, err)
			}
			continue
		}
		if v != runtime.Nil {
			fmt.Println(v)
		}
	}
}

// evalEntry runs one entry; an interrupt stops it without ending the session.
func evalEntry(ip *interpreter.Interpreter, src string) (runtime.Value, error) {
	root, err := parser.ParseString(src)
	if err != nil {
		return nil, err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return ip.InterpretContext(ctx, root)
}
