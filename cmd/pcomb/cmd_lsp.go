package main

import (
	"github.com/dhamidi/pcomb/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the EBNF grammar language server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version, lsp.WithStart(startProduction))
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (default: first production)")

	return cmd
}
