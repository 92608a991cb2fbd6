package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/coreos/pkg/capnslog"
	"github.com/evasseure/huil/ast"
	"github.com/evasseure/huil/config"
	"github.com/evasseure/huil/interpreter"
	"github.com/evasseure/huil/lexer"
	"github.com/evasseure/huil/parser"
	"github.com/evasseure/huil/runtime"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/evasseure/huil", "cli")

// setup loads the configuration and applies the logging flags.
func setup(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}

	level := cfg.LogLevel
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}
	parsed, err := capnslog.ParseLevel(strings.ToUpper(level))
	if err != nil {
		return cfg, fmt.Errorf("bad log level %q: %w", level, err)
	}
	capnslog.SetFormatter(capnslog.NewPrettyFormatter(os.Stderr, parsed >= capnslog.DEBUG))
	capnslog.SetGlobalLogLevel(parsed)
	plog.Debugf("configuration: %+v", cfg)
	return cfg, nil
}

func report(c *cli.Context, err error) error {
	if c.Bool("trace") {
		tracerr.PrintSourceColor(err)
	}
	return cli.Exit(err.Error(), 1)
}

func readSource(c *cli.Context) (string, error) {
	file := c.Args().First()
	if file == "" {
		return "", cli.Exit("no file provided", 2)
	}
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func evaluate(c *cli.Context, src string) error {
	if _, err := setup(c); err != nil {
		return err
	}

	ip := interpreter.New(interpreter.WithEcho(c.Bool("echo")))
	v, err := ip.Eval(src)
	if err != nil {
		return report(c, err)
	}
	if v != runtime.Nil {
		fmt.Println(v)
	}
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "huil",
		Usage: "huil interpreter",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: config.DefaultFile,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG or TRACE",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print errors with their stack trace and source",
			},
		},
		ExitErrHandler: func(context *cli.Context, err error) {
			if err == nil {
				return
			}
			if coder, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, coder.Error())
				os.Exit(coder.ExitCode())
			}
			log.Fatalf("error with huil: %v", err)
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "interpret a file",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "echo", Usage: "print the value of a trailing expression"},
				},
				Action: func(c *cli.Context) error {
					src, err := readSource(c)
					if err != nil {
						return err
					}
					return evaluate(c, src)
				},
			},
			{
				Name:  "eval",
				Usage: "interpret a string",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "e", Required: true},
					&cli.BoolFlag{Name: "echo", Value: true},
				},
				Action: func(c *cli.Context) error {
					return evaluate(c, c.String("e"))
				},
			},
			{
				Name:      "tokens",
				Usage:     "print the token stream of a file",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					if _, err := setup(c); err != nil {
						return err
					}
					src, err := readSource(c)
					if err != nil {
						return err
					}
					toks, err := lexer.Tokenize(src)
					for _, tok := range toks {
						fmt.Println(tok)
					}
					if err != nil {
						return report(c, err)
					}
					return nil
				},
			},
			{
				Name:      "ast",
				Usage:     "dump the syntax tree of a file",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "short", Usage: "print an s-expression instead of the full tree"},
				},
				Action: func(c *cli.Context) error {
					if _, err := setup(c); err != nil {
						return err
					}
					src, err := readSource(c)
					if err != nil {
						return err
					}
					root, err := parser.ParseString(src)
					if err != nil {
						return report(c, err)
					}
					if c.Bool("short") {
						fmt.Println(ast.String(root))
						return nil
					}
					repr.Println(root)
					return nil
				},
			},
			{
				Name:  "repl",
				Usage: "start an interactive session",
				Action: func(c *cli.Context) error {
					cfg, err := setup(c)
					if err != nil {
						return err
					}
					return runREPL(c, cfg)
				},
			},
			{
				Name:  "selftest",
				Usage: "check the interpreter against known arithmetic results",
				Action: func(c *cli.Context) error {
					if _, err := setup(c); err != nil {
						return err
					}
					failures := selfTest(os.Stdout)
					if failures > 0 {
						return cli.Exit(fmt.Sprintf("%d checks failed", failures), 1)
					}
					return nil
				},
			},
			{
				Name:  "init",
				Usage: "write a default configuration file",
				Action: func(c *cli.Context) error {
					path := c.String("config")
					if _, err := os.Stat(path); err == nil {
						return cli.Exit(fmt.Sprintf("%s already exists", path), 1)
					}
					if err := config.Save(path, config.Default()); err != nil {
						return report(c, err)
					}
					fmt.Printf("wrote %s\n", path)
					return nil
				},
			},
		},
	}
}

func main() {
	newApp().Run(os.Args)
}
