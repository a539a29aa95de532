package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/metaphox/monkey/config"
	"github.com/metaphox/monkey/repl"
)

func newReplCmd(opts *options) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive read-print loop",
		Long: `Read Monkey source a line at a time and print either its tokens (lex
mode) or the parsed program and any parser errors (parse mode).
Line editing and history are only used when stdin is a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if mode != "" {
				cfg.Mode = config.Mode(mode)
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			if f, ok := cmd.InOrStdin().(*os.File); ok && isatty.IsTerminal(f.Fd()) {
				return repl.Run(cfg, opts.logger)
			}
			return repl.Start(cmd.InOrStdin(), cmd.OutOrStdout(), cfg, opts.logger)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "start in lex or parse mode (overrides the config)")
	return cmd
}
