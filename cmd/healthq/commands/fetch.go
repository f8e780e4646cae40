package commands

import (
	"fmt"
	"strconv"
	"time"

	healthkit "github.com/goliatone/go-healthkit"
	"github.com/spf13/cobra"
)

func newFetchCmd(rt *runtime) *cobra.Command {
	var (
		unit   string
		since  string
		until  string
		limit  int
		sorts  []string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "fetch <capability>",
		Short: "Fetch samples of a quantity capability in one unit",
		Long: `Fetch returns samples overlapping [--since, --until], converted to --unit.

--since and --until accept RFC3339 timestamps or durations measured back
from now. Sort keys are start, end and quantity; prefix with - for
descending order. Without --sort the newest samples come first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			capability, ok := healthkit.LookupCapability(args[0])
			if !ok {
				return fmt.Errorf("unknown capability %q (see `healthq catalog`)", args[0])
			}
			if unit == "" {
				unit = healthkit.UnitSymbols(capability.Dimension())[0]
			}

			now := time.Now()
			start, err := parseTime(since, now)
			if err != nil {
				return err
			}
			end, err := parseTime(until, now)
			if err != nil {
				return err
			}
			keys, err := parseSort(sorts)
			if err != nil {
				return err
			}
			opts := []healthkit.QueryOption{healthkit.WithSort(keys...)}
			if limit >= 0 {
				opts = append(opts, healthkit.WithLimit(healthkit.MaxSamples(uint(limit))))
			}

			ctx, cancel := rt.withTimeout(cmd.Context())
			defer cancel()

			executor := healthkit.NewQueryExecutor(rt.store, rt.options...)
			results, err := executor.FetchMeasurements(ctx, capability, unit, healthkit.NewQueryOptions(start, end, opts...))
			if err != nil && results == nil {
				return err
			}
			if asJSON {
				if jerr := writeJSON(rt.out, results); jerr != nil {
					return jerr
				}
				return err
			}
			t := newTable(rt.out, "START", "END", "VALUE", "UNIT", "SAMPLE")
			for _, m := range results {
				t.row(
					m.Start.Format(time.RFC3339),
					m.End.Format(time.RFC3339),
					strconv.FormatFloat(m.Value, 'f', -1, 64),
					m.Unit,
					m.SampleID,
				)
			}
			if ferr := t.flush(); ferr != nil {
				return ferr
			}
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&unit, "unit", "", "Unit symbol (default: first unit of the capability's dimension)")
	flags.StringVar(&since, "since", "168h", "Window start")
	flags.StringVar(&until, "until", "now", "Window end")
	flags.IntVar(&limit, "limit", -1, "Maximum samples to return (-1 for all)")
	flags.StringSliceVar(&sorts, "sort", nil, "Sort keys, e.g. -start,quantity")
	flags.BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
