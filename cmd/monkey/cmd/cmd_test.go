package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// run executes the root command with args and stdin and returns what was
// written to stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestLex_Stdin(t *testing.T) {
	out, _, err := run(t, "let x = 5;", "lex")
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	want := []string{
		`LET       "let"`,
		`IDENT     "x"`,
		`ASSIGN    "="`,
		`INT       "5"`,
		`SEMICOLON ";"`,
	}
	got := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(got), len(want), out)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLex_EOFFlag(t *testing.T) {
	out, _, err := run(t, "x", "lex", "--eof")
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	if !strings.HasSuffix(out, "EOF       \"\"\n") {
		t.Errorf("missing EOF line:\n%s", out)
	}
}

func TestLex_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.monkey")
	if err := os.WriteFile(path, []byte("a != b"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "", "lex", path)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	if !strings.Contains(out, `NOT_EQ    "!="`) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestLex_MissingFile(t *testing.T) {
	_, _, err := run(t, "", "lex", filepath.Join(t.TempDir(), "nope.monkey"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want os.ErrNotExist", err)
	}
}

func TestParse_Text(t *testing.T) {
	out, stderr, err := run(t, "let x = 1 + 2 * 3; add(x, -y)", "parse")
	if err != nil {
		t.Fatalf("parse: %v (stderr %q)", err, stderr)
	}
	want := "let x = (1 + (2 * 3));\nadd(x, (-y))\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestParse_Diagnostics(t *testing.T) {
	out, stderr, err := run(t, "let = 5; let y = 2;", "parse")

	var diag *DiagnosticsError
	if !errors.As(err, &diag) {
		t.Fatalf("got %v, want *DiagnosticsError", err)
	}
	if diag.Count != 1 {
		t.Errorf("count: got %d, want 1", diag.Count)
	}
	if out != "let y = 2;\n" {
		t.Errorf("recovered output: got %q", out)
	}
	if !strings.Contains(stderr, "parser errors:") || !strings.Contains(stderr, "expected next token to be IDENT") {
		t.Errorf("unexpected stderr:\n%s", stderr)
	}
}

func TestParse_YAML(t *testing.T) {
	out, _, err := run(t, "let f = fn(a) { if (a < 1) { true } else { a(2) } };", "parse", "-o", "yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var got node
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Type != "Program" || len(got.Statements) != 1 {
		t.Fatalf("unexpected root: %+v", got)
	}
	let := got.Statements[0]
	if let.Type != "Let" || let.Name != "f" {
		t.Fatalf("unexpected statement: %+v", let)
	}
	fn := let.Value
	if fn == nil || fn.Type != "Function" || len(fn.Parameters) != 1 || fn.Parameters[0] != "a" {
		t.Fatalf("unexpected function: %+v", fn)
	}
	ifx := fn.Body.Statements[0].Value
	if ifx.Type != "If" || ifx.Condition.Operator != "<" || ifx.Alternative == nil {
		t.Fatalf("unexpected if: %+v", ifx)
	}
	call := ifx.Alternative.Statements[0].Value
	if call.Type != "Call" || call.Function.Name != "a" || call.Arguments[0].Literal != "2" {
		t.Errorf("unexpected call: %+v", call)
	}
	if lit := ifx.Consequence.Statements[0].Value; lit.Type != "Boolean" || lit.Literal != "true" {
		t.Errorf("unexpected consequence: %+v", lit)
	}
}

func TestParse_UnknownOutput(t *testing.T) {
	_, _, err := run(t, "x", "parse", "-o", "json")
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Errorf("got %v", err)
	}
}

func TestRepl_Piped(t *testing.T) {
	out, _, err := run(t, "1 + 2\n:mode lex\nfn\n:quit\n", "repl")
	if err != nil {
		t.Fatalf("repl: %v", err)
	}
	for _, want := range []string{"(1 + 2)", "mode is lex", `FUNCTION  "fn"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRepl_ModeFlag(t *testing.T) {
	out, _, err := run(t, "let\n", "repl", "--mode", "lex")
	if err != nil {
		t.Fatalf("repl: %v", err)
	}
	if !strings.Contains(out, `LET       "let"`) {
		t.Errorf("not in lex mode:\n%s", out)
	}

	if _, _, err := run(t, "", "repl", "--mode", "eval"); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monkey.yaml")
	if err := os.WriteFile(path, []byte("mode: lex\nprompt: \"% \"\ncolor: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "x\n", "--config", path, "repl")
	if err != nil {
		t.Fatalf("repl: %v", err)
	}
	if !strings.HasPrefix(out, "% ") || !strings.Contains(out, `IDENT     "x"`) {
		t.Errorf("config not applied:\n%s", out)
	}

	if _, _, err := run(t, "", "--config", filepath.Join(t.TempDir(), "missing.toml"), "version"); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "monkey v"+Version) {
		t.Errorf("got %q", out)
	}
}
