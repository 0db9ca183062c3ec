package citecmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"refgen/src/cmd/refgen/app"
	"refgen/src/internal/citation"
	"refgen/src/internal/clipboard"
	"refgen/src/internal/exchange"
	"refgen/src/internal/reference"
)

// New returns the cite command: build a record from the given sources and
// print its citation and in-text form.
func New() *cobra.Command {
	var (
		in        app.Inputs
		style     string
		export    string
		copyOut   bool
		noHistory bool
	)
	cmd := &cobra.Command{
		Use:   "cite [doi|isbn|url|title]",
		Short: "Print a formatted citation",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Load()
			if err != nil {
				return err
			}
			st := a.Config.CitationStyle()
			if style != "" {
				if st, err = citation.ParseStyle(style); err != nil {
					return err
				}
			}
			var format exchange.Format
			if export != "" {
				if format, err = exchange.ParseFormat(export); err != nil {
					return err
				}
			}

			records, _, err := a.Collect(cmd, &in, args)
			if err != nil {
				return err
			}
			res, err := reference.Generate(app.Stamp(records), st)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "\ncitation:\n%s\n\nin text:\n%s\n\n", res.Citation, citation.InText(res.Record, st, 1)); err != nil {
				return err
			}
			if format != "" {
				text, err := res.Export(format)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(out, "%s:\n%s\n", format, text); err != nil {
					return err
				}
			}

			if copyOut {
				switch err := app.Copy(res.Citation); {
				case errors.Is(err, clipboard.ErrClipboardUnavailable):
					a.Log.Warn("not copied", "err", err)
				case err != nil:
					return fmt.Errorf("copy: %w", err)
				default:
					_, _ = fmt.Fprintln(out, "copied to clipboard")
				}
			}

			if noHistory {
				return nil
			}
			h, err := a.History()
			if err != nil {
				a.Log.Warn("history unavailable", "err", err)
				return nil
			}
			defer h.Close()
			if _, err := h.Append(app.Context(cmd), res.HistoryEntry(app.Now())); err != nil {
				a.Log.Warn("history not saved", "err", err)
			}
			return nil
		},
	}
	in.Bind(cmd)
	cmd.Flags().StringVarP(&style, "style", "s", "", "Citation style (default from config)")
	cmd.Flags().StringVarP(&export, "export", "e", "", "Also print the record as bibtex or ris")
	cmd.Flags().BoolVarP(&copyOut, "copy", "c", false, "Copy the citation to the clipboard")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this citation in history")
	return cmd
}
