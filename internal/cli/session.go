package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/same7samy00/ysk-sales/internal/app"
)

// NewActivateCommand creates the activate command.
func NewActivateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "activate",
		Short: "Mark this installation as activated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.App.Activate(commandContext(cmd)); err != nil {
				return WrapExitError(ExitCommandError, "failed to set activation flag", err)
			}
			return rt.Out.Success("activated")
		},
	}
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	var name, password string
	var forget bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials and remember the login name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()
			ctx := commandContext(cmd)

			if forget {
				if err := rt.App.RememberUser(ctx, ""); err != nil {
					return WrapExitError(ExitCommandError, "failed to clear remembered user", err)
				}
				return rt.Out.Success("remembered user cleared")
			}

			if name == "" {
				return NewExitError(ExitCommandError, "--name is required")
			}
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "password: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, _ := reader.ReadString('\n')
				password = strings.TrimRight(line, "\r\n")
			}

			user, err := rt.App.Authenticate(name, password)
			if err != nil {
				if app.IsValidation(err) {
					return failValidation(rt.Out, err)
				}
				return err
			}
			if err := rt.App.RememberUser(ctx, user.Name); err != nil {
				return WrapExitError(ExitCommandError, "failed to remember user", err)
			}
			return rt.Out.Successf("welcome, %s", user.Name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "login name (required)")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	cmd.Flags().BoolVar(&forget, "forget", false, "clear the remembered login name")
	cmd.MarkFlagsMutuallyExclusive("name", "forget")
	return cmd
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace all data with seed defaults",
		Long: `Replace every document with its seed default and clear the remembered
directory and activation flags. Content is replaced, not deleted; the
document keys remain in place holding the defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return NewExitError(ExitCommandError, "refusing to reset without --yes")
			}
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.App.ResetAllData(commandContext(cmd)); err != nil {
				return WrapExitError(ExitCommandError, "failed to reset data", err)
			}
			return rt.Out.Success("all data reset to defaults")
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the reset")
	return cmd
}
