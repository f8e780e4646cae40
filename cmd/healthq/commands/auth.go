package commands

import (
	"errors"
	"fmt"

	healthkit "github.com/goliatone/go-healthkit"
	"github.com/spf13/cobra"
)

// accessFlags collects the read set from args and the share set from --share.
type accessFlags struct {
	share []string
}

func (f *accessFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.share, "share", nil, "Capabilities to request write access for")
}

func (f *accessFlags) access(args []string) (healthkit.Access, error) {
	read, err := parseBiometrics(args)
	if err != nil {
		return healthkit.Access{}, err
	}
	share, err := parseBiometrics(f.share)
	if err != nil {
		return healthkit.Access{}, err
	}
	return healthkit.Access{Read: read, Share: share}, nil
}

func newCheckCmd(rt *runtime) *cobra.Command {
	var flags accessFlags
	cmd := &cobra.Command{
		Use:   "check [capability...]",
		Short: "Report whether requesting access would show a prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			access, err := flags.access(args)
			if err != nil {
				return err
			}
			ctx, cancel := rt.withTimeout(cmd.Context())
			defer cancel()

			status, err := healthkit.NewAuthorizer(rt.store, rt.options...).CheckAccess(ctx, access)
			if err != nil {
				return err
			}
			style := okStyle
			if status == healthkit.WouldPrompt {
				style = warnStyle
			}
			fmt.Fprintln(rt.out, style.Render(status.String()))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newRequestCmd(rt *runtime) *cobra.Command {
	var flags accessFlags
	cmd := &cobra.Command{
		Use:   "request [capability...]",
		Short: "Run the authorization prompt for the given capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			access, err := flags.access(args)
			if err != nil {
				return err
			}
			ctx, cancel := rt.withTimeout(cmd.Context())
			defer cancel()

			err = healthkit.NewAuthorizer(rt.store, rt.options...).RequestAccess(ctx, access)
			switch {
			case errors.Is(err, healthkit.ErrRequestDenied):
				fmt.Fprintln(rt.out, warnStyle.Render("request not completed"))
				return err
			case err != nil:
				return err
			}
			fmt.Fprintln(rt.out, okStyle.Render("request completed"))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newStatusCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <capability...>",
		Short: "Show the sharing authorization status per capability",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			biometrics, err := parseBiometrics(args)
			if err != nil {
				return err
			}
			ctx, cancel := rt.withTimeout(cmd.Context())
			defer cancel()

			statuses, err := healthkit.NewAuthorizer(rt.store, rt.options...).Status(ctx, biometrics...)
			if err != nil {
				return err
			}
			t := newTable(rt.out, "IDENTIFIER", "CATEGORY", "STATUS")
			for _, s := range statuses {
				t.row(s.Biometric.Identifier(), s.Biometric.Category().String(), s.Status.String())
			}
			return t.flush()
		},
	}
	return cmd
}
