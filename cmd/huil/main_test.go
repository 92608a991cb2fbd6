package main

import (
	"bufio"
	"io"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evasseure/huil/config"
	"github.com/urfave/cli/v2"
)

func TestSelfTestPasses(t *testing.T) {
	var out strings.Builder
	if n := selfTest(&out); n != 0 {
		t.Fatalf("%d failures:\n%s", n, out.String())
	}
}

func TestNeedsMore(t *testing.T) {
	cases := []struct {
		lines []string
		want  bool
	}{
		{[]string{"1 + 2"}, false},
		{[]string{"1 +"}, true},
		{[]string{"(1 + 2"}, true},
		{[]string{"1 + )"}, false},
		{[]string{"fn f(a):"}, true},
		{[]string{"fn f(a):", "  return a"}, true},
		{[]string{"fn f(a):", "  return a", ""}, false},
		{[]string{"match x:"}, true},
		{[]string{"let y = match x:", "  | 1 -> 2", ""}, false},
		{[]string{"x = 1 // note:"}, false},
		{[]string{"print(\"a:\")"}, false},
		{[]string{"if x: // check"}, true},
	}

	for _, c := range cases {
		if got := needsMore(c.lines); got != c.want {
			t.Errorf("needsMore(%q) = %v, want %v", c.lines, got, c.want)
		}
	}
}

func TestReadEntryJoinsContinuationLines(t *testing.T) {
	r := &plainReader{in: bufio.NewReader(strings.NewReader("\n\nwhile x:\n  x = x - 1\n\nprint(1)\n"))}
	cfg := config.Default()

	first, err := readEntry(r, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != "while x:\n  x = x - 1\n" {
		t.Fatalf("got %q", first)
	}

	second, err := readEntry(r, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != "print(1)" {
		t.Fatalf("got %q", second)
	}

	if _, err := readEntry(r, cfg); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestInspectionCommandsLoadSettings(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.huil")
	if err := ioutil.WriteFile(src, []byte("let a = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	badConfig := filepath.Join(dir, "bad.yaml")
	if err := ioutil.WriteFile(badConfig, []byte("Echo: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	goodConfig := filepath.Join(dir, "missing.yaml")

	cases := []struct {
		args    []string
		wantErr bool
	}{
		{[]string{"--config", goodConfig, "tokens", src}, false},
		{[]string{"--config", goodConfig, "ast", "--short", src}, false},
		{[]string{"--config", badConfig, "tokens", src}, true},
		{[]string{"--config", badConfig, "ast", src}, true},
		{[]string{"--config", goodConfig, "--log-level", "LOUD", "tokens", src}, true},
		{[]string{"--config", goodConfig, "--log-level", "LOUD", "ast", src}, true},
	}

	for _, c := range cases {
		app := newApp()
		app.ExitErrHandler = func(*cli.Context, error) {}
		err := app.Run(append([]string{"huil"}, c.args...))
		if (err != nil) != c.wantErr {
			t.Errorf("%q: got error %v", c.args, err)
		}
	}
}
