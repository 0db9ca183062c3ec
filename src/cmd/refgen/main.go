package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"refgen/src/cmd/refgen/app"
	"refgen/src/internal/citation"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "refgen",
		Short:         "Generate citations (" + strings.Join(citation.Names(), ", ") + ") from identifiers, pages and PDFs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Config file (default $XDG_CONFIG_HOME/refgen/config.yml)")
	root.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Attach subcommands
	root.AddCommand(newCiteCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newLookupCmd())
	root.AddCommand(newFormatCmd())
	root.AddCommand(newHistoryCmd())
	return root
}

func execute(args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func main() {
	if err := execute(os.Args[1:]); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
