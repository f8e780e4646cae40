package commands

import (
	"strings"

	healthkit "github.com/goliatone/go-healthkit"
	"github.com/spf13/cobra"
)

type catalogEntry struct {
	Name       string   `json:"name"`
	Identifier string   `json:"identifier"`
	Dimension  string   `json:"dimension"`
	Units      []string `json:"units"`
}

func newCatalogCmd(rt *runtime) *cobra.Command {
	var (
		asJSON    bool
		dimension string
	)
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List declared capabilities and their units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var entries []catalogEntry
			for _, c := range healthkit.Capabilities() {
				if dimension != "" && string(c.Dimension()) != dimension {
					continue
				}
				entries = append(entries, catalogEntry{
					Name:       c.Name(),
					Identifier: c.Identifier(),
					Dimension:  string(c.Dimension()),
					Units:      healthkit.UnitSymbols(c.Dimension()),
				})
			}
			if asJSON {
				return writeJSON(rt.out, entries)
			}
			t := newTable(rt.out, "NAME", "DIMENSION", "UNITS", "IDENTIFIER")
			for _, e := range entries {
				t.row(e.Name, e.Dimension, strings.Join(e.Units, ","), e.Identifier)
			}
			return t.flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	cmd.Flags().StringVar(&dimension, "dimension", "", "Only list capabilities of this dimension")
	return cmd
}
