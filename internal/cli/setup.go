package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/same7samy00/ysk-sales/internal/app"
	"github.com/same7samy00/ysk-sales/internal/docstore"
	"github.com/same7samy00/ysk-sales/internal/scanner"
)

// flagPicker is the CLI's directory-picker capability: "picking" means the
// user passed --data-dir. Without the flag the pick is a cancellation,
// which the negotiator treats as "fall back to the embedded store".
type flagPicker struct {
	dir string
}

func (p *flagPicker) Supported() bool { return true }

func (p *flagPicker) Pick(ctx context.Context) (string, error) {
	if p.dir == "" {
		return "", app.ErrPickerCanceled
	}
	return p.dir, nil
}

// slogNotifier routes transient user notifications to the logger.
type slogNotifier struct{}

func (slogNotifier) Notify(kind app.NotifyKind, message string) {
	if kind == app.NotifyError {
		slog.Warn(message)
		return
	}
	slog.Info(message)
}

// runtime bundles everything a command needs after storage negotiation.
type runtime struct {
	App *app.App
	Out *OutputFormatter

	kv *docstore.KVStore
}

// newRuntime configures logging, resolves config, opens the embedded
// store, negotiates the storage mode, and loads all documents.
func newRuntime(cmd *cobra.Command, opts *RootOptions) (*runtime, error) {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	if err := loadConfig(opts); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	slog.Debug("opening embedded store", "path", opts.Database)
	kv, err := docstore.OpenKV(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open embedded store", err)
	}

	a := app.New(kv,
		app.WithPicker(&flagPicker{dir: opts.DataDir}),
		app.WithNotifier(slogNotifier{}),
		app.WithScanner(scanner.New(nil)),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	// An explicit --data-dir is a directory selection, not a hint: it
	// overrides any remembered directory instead of being shadowed by it.
	if opts.DataDir != "" {
		err = a.ChooseDirectory(ctx)
	} else {
		err = a.Negotiate(ctx)
	}
	if err != nil {
		kv.Close()
		return nil, WrapExitError(ExitCommandError, "failed to initialize storage", err)
	}
	slog.Debug("storage ready", "mode", string(a.Mode()), "directory", a.DirectoryName())

	return &runtime{
		App: a,
		Out: &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()},
		kv:  kv,
	}, nil
}

// Close releases the embedded store.
func (r *runtime) Close() {
	if err := r.kv.Close(); err != nil {
		slog.Error("error closing embedded store", "error", err)
	}
}

// commandContext returns the command's context, defaulting to Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// failValidation prints a validation failure and returns the matching
// exit error, so rejected mutations exit 1 with a user-facing message.
func failValidation(out *OutputFormatter, err error) error {
	code := string(app.ValidationCodeOf(err))
	if code == "" {
		code = "INVALID"
	}
	_ = out.Failure(code, err.Error())
	return WrapExitError(ExitFailure, "action rejected", err)
}
