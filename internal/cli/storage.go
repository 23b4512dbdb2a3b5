package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/same7samy00/ysk-sales/internal/app"
)

// NewStorageCommand creates the storage command group.
func NewStorageCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Inspect or change the storage backend",
	}
	cmd.AddCommand(newStorageStatusCommand(rootOpts))
	cmd.AddCommand(newStorageChooseCommand(rootOpts))
	return cmd
}

func newStorageStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active storage mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close()

			if rt.App.Mode() == app.ModeDirectory {
				return rt.Out.Successf("directory-backed storage: %s", rt.App.DirectoryName())
			}
			return rt.Out.Success("embedded storage")
		},
	}
}

func newStorageChooseCommand(rootOpts *RootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "choose",
		Short: "Choose the data directory for file-backed storage",
		Long: `Switch storage to a data directory. All documents are reloaded from the
directory's existing contents; the in-memory state from the previous
backend is discarded, not merged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bypass negotiation with the remembered directory so the
			// explicit choice always prompts.
			opts := *rootOpts
			opts.DataDir = ""
			rt, err := newRuntime(cmd, &opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.App.SetPicker(&flagPicker{dir: dir})
			if err := rt.App.ChooseDirectory(commandContext(cmd)); err != nil {
				return WrapExitError(ExitCommandError, "failed to switch storage", err)
			}
			if rt.App.Mode() != app.ModeDirectory {
				return NewExitError(ExitFailure, fmt.Sprintf("directory %q was not usable; still on embedded storage", dir))
			}
			return rt.Out.Successf("now saving to directory %q", rt.App.DirectoryName())
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "data directory to use (required)")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}
