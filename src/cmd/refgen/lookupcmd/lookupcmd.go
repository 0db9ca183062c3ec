package lookupcmd

import (
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"refgen/src/cmd/refgen/app"
	"refgen/src/internal/enrich"
	"refgen/src/internal/metadata"
	"refgen/src/internal/schema"
)

type report struct {
	Query    string           `yaml:"query"`
	Kind     enrich.Kind      `yaml:"kind"`
	Record   schema.Record    `yaml:"record"`
	Attempts []enrich.Attempt `yaml:"attempts"`
}

// New returns the lookup command: query the metadata APIs for a DOI, ISBN or
// title and print the merged, normalized record as YAML.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <doi|isbn|title>",
		Short: "Look up metadata for an identifier",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Load()
			if err != nil {
				return err
			}
			q := enrich.Detect(strings.Join(args, " "))
			records, attempts, err := a.Enricher().Lookup(app.Context(cmd), q)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(report{
				Query:    q.Value,
				Kind:     q.Kind,
				Record:   metadata.Normalize(metadata.Merge(records)),
				Attempts: attempts,
			}); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	return cmd
}
