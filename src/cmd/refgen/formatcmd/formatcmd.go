package formatcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"refgen/src/cmd/refgen/app"
	"refgen/src/internal/citation"
	"refgen/src/internal/exchange"
	"refgen/src/internal/reference"
	"refgen/src/internal/schema"
)

// New returns the format command, which prints a citation for every entry of
// a BibTeX file.
func New() *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "format <file.bib>",
		Short: "Format every entry of a BibTeX file",
		Args:  cobra.ExactArgs(1),
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
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			records, err := exchange.ParseBibTeX(f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, r := range records {
				res, err := reference.Generate([]schema.Record{r}, st)
				if err != nil {
					return err
				}
				line := res.Citation
				if st == citation.IEEE || st == citation.Vancouver {
					line = fmt.Sprintf("%s %s", citation.InText(res.Record, st, i+1), line)
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			a.Log.Debug("formatted", "file", args[0], "entries", len(records))
			return nil
		},
	}
	cmd.Flags().StringVarP(&style, "style", "s", "", "Citation style (default from config)")
	return cmd
}
