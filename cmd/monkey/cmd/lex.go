package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metaphox/monkey/ast"
	"github.com/metaphox/monkey/lexer"
)

func newLexCmd(opts *options) *cobra.Command {
	var withEOF bool

	cmd := &cobra.Command{
		Use:   "lex [file]",
		Short: "Print the tokens of a Monkey source file",
		Long: `Print one token per line as its kind and quoted literal.
Reads from stdin when no file is given or the file is "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			toks := lexer.Tokenize(src)
			opts.logger.Debug("source tokenised", "bytes", len(src), "tokens", len(toks))

			out := cmd.OutOrStdout()
			for _, tok := range toks {
				if tok.Type == ast.EOF && !withEOF {
					break
				}
				fmt.Fprintf(out, "%-9s %q\n", tok.Type, tok.Literal)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withEOF, "eof", false, "also print the trailing EOF token")
	return cmd
}
