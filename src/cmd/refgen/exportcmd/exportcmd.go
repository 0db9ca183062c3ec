package exportcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"refgen/src/cmd/refgen/app"
	"refgen/src/internal/exchange"
	"refgen/src/internal/reference"
)

// New returns the export command, which renders a record as BibTeX or RIS.
func New() *cobra.Command {
	var (
		in     app.Inputs
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export [doi|isbn|url|title]",
		Short: "Export a record as BibTeX or RIS",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := exchange.ParseFormat(format)
			if err != nil {
				return err
			}
			a, err := app.Load()
			if err != nil {
				return err
			}
			records, _, err := a.Collect(cmd, &in, args)
			if err != nil {
				return err
			}
			res, err := reference.Generate(app.Stamp(records), a.Config.CitationStyle())
			if err != nil {
				return err
			}
			text, err := res.Export(f)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			if fi, err := os.Stat(out); err == nil && fi.IsDir() {
				out = filepath.Join(out, "reference."+f.Extension())
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return err
		},
	}
	in.Bind(cmd)
	cmd.Flags().StringVar(&format, "format", string(exchange.BibTeX), "Output format: bibtex or ris")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Write to this file, or to reference.<ext> inside this directory, instead of stdout")
	return cmd
}
