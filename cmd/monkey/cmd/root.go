// Package cmd holds the cobra commands of the monkey binary.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/metaphox/monkey/config"
)

// options is shared by all subcommands. cfg and logger are filled in by the
// root command's PersistentPreRunE before any subcommand runs.
type options struct {
	cfgFile string
	verbose bool

	cfg    config.Config
	logger *slog.Logger
}

// DiagnosticsError is returned when the parser reported errors. The
// diagnostics themselves have already been printed.
type DiagnosticsError struct {
	Count int
}

func (e *DiagnosticsError) Error() string {
	if e.Count == 1 {
		return "1 parser error"
	}
	return fmt.Sprintf("%d parser errors", e.Count)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "monkey",
		Short: "Lexer and parser for the Monkey language",
		Long: `monkey tokenises and parses Monkey source code.

Commands:
  lex      - print the token stream of a file or stdin
  parse    - print the parsed program, fully parenthesised or as YAML
  repl     - interactive read-print loop`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newLexCmd(opts),
		newParseCmd(opts),
		newReplCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the monkey command line.
func Execute() error {
	err := newRootCmd().Execute()
	var diag *DiagnosticsError
	if err != nil && !errors.As(err, &diag) {
		printError(err)
	}
	return err
}

func (o *options) setup(stderr io.Writer) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if o.verbose {
		level = slog.LevelDebug
	}

	o.cfg = cfg
	o.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	o.logger.Debug("config loaded", "file", o.cfgFile, "mode", cfg.Mode, "log_level", level)
	return nil
}

// readSource returns the contents of the file named by args, or of stdin when
// there is no argument or the argument is "-".
func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(b), nil
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
