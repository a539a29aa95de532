package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/metaphox/monkey/parser"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

func newParseCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a Monkey source file and print the program",
		Long: `Parse the source and print every statement fully parenthesised, one per
line, or the whole tree as YAML with -o yaml. Parser errors go to stderr and
make the command exit non-zero.
Reads from stdin when no file is given or the file is "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != outputText && output != outputYAML {
				return fmt.Errorf("unknown output format %q: want %q or %q", output, outputText, outputYAML)
			}
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			prog, errs := parser.Parse(src)
			opts.logger.Debug("source parsed", "statements", len(prog.Statements), "errors", len(errs))

			out := cmd.OutOrStdout()
			switch output {
			case outputYAML:
				b, err := yaml.Marshal(dumpProgram(prog))
				if err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				if _, err := out.Write(b); err != nil {
					return err
				}
			default:
				for _, stmt := range prog.Statements {
					fmt.Fprintln(out, stmt.String())
				}
			}

			if len(errs) > 0 {
				stderr := cmd.ErrOrStderr()
				fmt.Fprintln(stderr, "parser errors:")
				for _, msg := range errs {
					fmt.Fprintf(stderr, "\t%s\n", msg)
				}
				return &DiagnosticsError{Count: len(errs)}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text or yaml")
	return cmd
}
