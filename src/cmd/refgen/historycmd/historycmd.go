package historycmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"refgen/src/cmd/refgen/app"
)

// New returns the history command with its list and clear subcommands.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear recently generated citations",
	}
	cmd.AddCommand(newList(), newClear())
	return cmd
}

func newList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List citations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Load()
			if err != nil {
				return err
			}
			h, err := a.History()
			if err != nil {
				return err
			}
			defer h.Close()
			entries, err := h.List(app.Context(cmd))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				_, err := fmt.Fprintln(out, "history is empty")
				return err
			}
			for _, e := range entries {
				if _, err := fmt.Fprintf(out, "%s  %-9s  %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Style, e.Text); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newClear() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every history entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Load()
			if err != nil {
				return err
			}
			h, err := a.History()
			if err != nil {
				return err
			}
			defer h.Close()
			if err := h.Clear(app.Context(cmd)); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
			return err
		},
	}
}
