package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/same7samy00/ysk-sales/internal/app"
	"github.com/same7samy00/ysk-sales/internal/model"
)

// NewUserCommand creates the user command group.
func NewUserCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage login accounts",
	}
	cmd.AddCommand(newUserAddCommand(rootOpts))
	cmd.AddCommand(newUserListCommand(rootOpts))
	cmd.AddCommand(newUserDeleteCommand(rootOpts))
	return cmd
}

func newUserAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		u        model.User
		inactive bool
		pages    []int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or update a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			u.Status = model.StatusActive
			if inactive {
				u.Status = model.StatusInactive
			}
			u.Permissions = map[model.Page]bool{}
			for _, p := range pages {
				u.Permissions[model.Page(p)] = true
			}

			saved, err := rt.App.PutUser(commandContext(cmd), u)
			if err != nil {
				if app.IsValidation(err) {
					return failValidation(rt.Out, err)
				}
				return WrapExitError(ExitCommandError, "failed to save user", err)
			}
			return rt.Out.Successf("saved user %q (%s)", saved.Name, saved.ID)
		},
	}

	cmd.Flags().StringVar(&u.ID, "id", "", "user id (empty for new)")
	cmd.Flags().StringVar(&u.Name, "name", "", "login name (required)")
	cmd.Flags().StringVar(&u.Password, "password", "", "password")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "create the account inactive")
	cmd.Flags().IntSliceVar(&pages, "page", nil, "page ids this user may open (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newUserListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			if rt.Out.Format == "json" {
				// Never echo passwords in structured output.
				users := make([]model.User, len(rt.App.Users))
				copy(users, rt.App.Users)
				for i := range users {
					users[i].Password = ""
				}
				return rt.Out.Success(users)
			}
			for _, u := range rt.App.Users {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", u.ID, u.Name, u.Status)
			}
			return nil
		},
	}
}

func newUserDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user (the roster is never emptied)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			// Deleting the remembered login is self-deletion.
			if name, err := rt.App.RememberedUser(commandContext(cmd)); err == nil && name != "" {
				for i := range rt.App.Users {
					if rt.App.Users[i].Name == name {
						rt.App.CurrentUser = &rt.App.Users[i]
						break
					}
				}
			}

			if err := rt.App.DeleteUser(commandContext(cmd), args[0]); err != nil {
				if app.IsValidation(err) {
					return failValidation(rt.Out, err)
				}
				return WrapExitError(ExitCommandError, "failed to delete user", err)
			}
			return rt.Out.Successf("deleted user %s", args[0])
		},
	}
}
