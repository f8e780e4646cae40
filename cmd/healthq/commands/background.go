package commands

import (
	"fmt"

	healthkit "github.com/goliatone/go-healthkit"
	"github.com/goliatone/go-healthkit/platform"
	"github.com/spf13/cobra"
)

func newBackgroundCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "background",
		Short: "Enable or disable background delivery",
	}
	cmd.AddCommand(newBackgroundEnableCmd(rt), newBackgroundDisableCmd(rt))
	return cmd
}

func newBackgroundEnableCmd(rt *runtime) *cobra.Command {
	var frequency string
	cmd := &cobra.Command{
		Use:   "enable <capability>",
		Short: "Enable background delivery for a capability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := parseBiometric(args[0])
			if err != nil {
				return err
			}
			freq, ok := platform.ParseUpdateFrequency(frequency)
			if !ok {
				return fmt.Errorf("unknown frequency %q (immediate, hourly, daily, weekly)", frequency)
			}
			ctx, cancel := rt.withTimeout(cmd.Context())
			defer cancel()

			if err := healthkit.NewBackgroundDelivery(rt.store, rt.options...).Enable(ctx, b, freq); err != nil {
				return err
			}
			fmt.Fprintln(rt.out, okStyle.Render("enabled "+b.Identifier()+" "+freq.String()))
			return nil
		},
	}
	cmd.Flags().StringVar(&frequency, "frequency", "immediate", "Delivery frequency")
	return cmd
}

func newBackgroundDisableCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "disable <capability>",
		Short: "Disable background delivery for a capability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := parseBiometric(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := rt.withTimeout(cmd.Context())
			defer cancel()

			if err := healthkit.NewBackgroundDelivery(rt.store, rt.options...).Disable(ctx, b); err != nil {
				return err
			}
			fmt.Fprintln(rt.out, okStyle.Render("disabled "+b.Identifier()))
			return nil
		},
	}
}
