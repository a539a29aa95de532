// Package repl implements the Monkey read-print loop. Each input line is either
// tokenised and every token printed, or parsed and the fully parenthesised
// program printed together with any parser errors.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/user"
	"strings"

	"github.com/google/uuid"
	"github.com/peterh/liner"

	"github.com/metaphox/monkey/ast"
	"github.com/metaphox/monkey/config"
	"github.com/metaphox/monkey/lexer"
	"github.com/metaphox/monkey/parser"
)

// maxLineSize bounds a single piped input line.
const maxLineSize = 16 << 20

const helpText = `commands:
  :mode lex|parse  switch what is printed for each line
  :help            show this help
  :quit            exit`

// Result is what a single line produced.
type Result struct {
	Tokens  []ast.Token  // lex mode only, EOF excluded
	Program *ast.Program // parse mode only
	Errors  []string     // parse mode only
}

// Eval runs one line through the lexer or the parser depending on mode.
func Eval(line string, mode config.Mode) Result {
	if mode == config.ModeLex {
		toks := lexer.Tokenize(line)
		return Result{Tokens: toks[:len(toks)-1]}
	}
	prog, errs := parser.Parse(line)
	return Result{Program: prog, Errors: errs}
}

// lineReader abstracts over liner and a plain scanner.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

type scanReader struct {
	sc  *bufio.Scanner
	out io.Writer
}

func (r *scanReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

// session is the state of one REPL run.
type session struct {
	id     string
	mode   config.Mode
	prompt string
	out    io.Writer
	style  styles
	log    *slog.Logger
}

func newSession(out io.Writer, cfg config.Config, logger *slog.Logger) *session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	id := uuid.NewString()
	return &session{
		id:     id,
		mode:   cfg.Mode,
		prompt: cfg.Prompt,
		out:    out,
		style:  newStyles(out, cfg.Color),
		log:    logger.With("component", "repl", "session", id),
	}
}

// Start runs the loop over in, writing prompts and results to out, until in is
// exhausted or the user types :quit. It is the non-interactive entry point used
// for piped input and tests.
func Start(in io.Reader, out io.Writer, cfg config.Config, logger *slog.Logger) error {
	s := newSession(out, cfg, logger)
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	return s.loop(&scanReader{sc: sc, out: out})
}

// Run starts an interactive session on the terminal with line editing and a
// persistent history file.
func Run(cfg config.Config, logger *slog.Logger) error {
	s := newSession(os.Stdout, cfg, logger)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.History != "" {
		if f, err := os.Open(cfg.History); err == nil {
			if _, err := ln.ReadHistory(f); err != nil {
				s.log.Warn("read history", "path", cfg.History, "err", err)
			}
			f.Close()
		}
		defer func() {
			f, err := os.Create(cfg.History)
			if err != nil {
				s.log.Warn("write history", "path", cfg.History, "err", err)
				return
			}
			defer f.Close()
			if _, err := ln.WriteHistory(f); err != nil {
				s.log.Warn("write history", "path", cfg.History, "err", err)
			}
		}()
	}

	for _, line := range greeting(currentUsername()) {
		fmt.Fprintln(os.Stdout, s.style.banner.Render(line))
	}
	return s.loop(&linerReader{ln: ln})
}

// greeting returns the banner lines shown when an interactive session starts.
func greeting(username string) []string {
	if username == "" {
		username = "there"
	}
	return []string{
		fmt.Sprintf("Hello %s! This is the Monkey programming language!", username),
		"Feel free to type in commands. :help lists them, :quit or Ctrl+D exits.",
	}
}

func currentUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

type linerReader struct {
	ln *liner.State
}

func (r *linerReader) Prompt(prompt string) (string, error) {
	line, err := r.ln.Prompt(prompt)
	if err == nil && strings.TrimSpace(line) != "" {
		r.ln.AppendHistory(line)
	}
	return line, err
}

func (s *session) loop(r lineReader) error {
	s.log.Info("session started", "mode", s.mode)
	defer s.log.Info("session ended")

	for {
		line, err := r.Prompt(s.prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.out)
			return nil
		case err != nil:
			return fmt.Errorf("read line: %w", err)
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if quit := s.command(trimmed); quit {
				return nil
			}
			continue
		}

		s.print(Eval(line, s.mode))
	}
}

// command handles a ':' command and reports whether the session should end.
func (s *session) command(cmd string) bool {
	fields := strings.Fields(cmd)
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(s.out, helpText)
	case ":mode":
		if len(fields) != 2 {
			fmt.Fprintf(s.out, "mode is %s\n", s.mode)
			return false
		}
		mode := config.Mode(fields[1])
		if mode != config.ModeLex && mode != config.ModeParse {
			fmt.Fprintln(s.out, s.style.err.Render(fmt.Sprintf("unknown mode %q", fields[1])))
			return false
		}
		s.mode = mode
		s.log.Debug("mode changed", "mode", mode)
		fmt.Fprintf(s.out, "mode is %s\n", s.mode)
	default:
		fmt.Fprintln(s.out, s.style.err.Render(fmt.Sprintf("unknown command %s, try :help", fields[0])))
	}
	return false
}

func (s *session) print(res Result) {
	if res.Program == nil {
		s.log.Debug("line tokenised", "tokens", len(res.Tokens))
		for _, tok := range res.Tokens {
			fmt.Fprintf(s.out, "%s %s\n", s.style.kind.Render(fmt.Sprintf("%-9s", tok.Type)), s.style.literal.Render(fmt.Sprintf("%q", tok.Literal)))
		}
		return
	}

	s.log.Debug("line parsed", "statements", len(res.Program.Statements), "errors", len(res.Errors))
	if len(res.Errors) > 0 {
		fmt.Fprintln(s.out, s.style.err.Render("parser errors:"))
		for _, msg := range res.Errors {
			fmt.Fprintln(s.out, "  "+s.style.err.Render(msg))
		}
	}
	for _, stmt := range res.Program.Statements {
		fmt.Fprintln(s.out, s.style.program.Render(stmt.String()))
	}
}
