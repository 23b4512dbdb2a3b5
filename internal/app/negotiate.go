package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/same7samy00/ysk-sales/internal/docstore"
)

// Mode is the storage-mode negotiation state.
type Mode string

const (
	// ModeUndetermined is the initial state before negotiation.
	ModeUndetermined Mode = "undetermined"

	// ModeAwaitingPermission blocks startup on a directory-selection
	// prompt. Nothing loads until it resolves.
	ModeAwaitingPermission Mode = "awaiting-permission"

	// ModeDirectory means documents live as JSON files in the chosen
	// data directory.
	ModeDirectory Mode = "directory"

	// ModeEmbedded means documents live in the embedded SQLite store.
	ModeEmbedded Mode = "embedded"
)

// ErrPickerCanceled is returned by a DirectoryPicker when the user
// dismisses the prompt. Cancellation always resolves to the embedded
// fallback, never to a startup failure.
var ErrPickerCanceled = errors.New("directory selection canceled")

// DirectoryPicker is the host capability for choosing a data directory.
// Hosts without the capability report Supported() == false and the
// negotiator falls back to the embedded store without user interaction.
type DirectoryPicker interface {
	Supported() bool
	Pick(ctx context.Context) (string, error)
}

// dirPointer is the remembered directory handle persisted in the embedded
// store under docstore.KeyDirectoryHandle, regardless of active mode.
type dirPointer struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// Negotiate decides the active backend and loads all documents. There is
// no unrecoverable failure path: permission problems and cancellations
// resolve to the embedded fallback.
func (a *App) Negotiate(ctx context.Context) error {
	a.mode = ModeUndetermined

	if a.picker == nil || !a.picker.Supported() {
		if err := a.notifyEmbeddedFallbackOnce(ctx); err != nil {
			return err
		}
		return a.useEmbedded(ctx)
	}

	ptr, err := a.rememberedDir(ctx)
	if err != nil {
		return err
	}
	if ptr != nil {
		if err := docstore.CheckWritable(ptr.Path); err == nil {
			return a.useDirectory(ctx, ptr.Path)
		}
		// Permission on the remembered directory was withdrawn; the
		// user must grant it again.
	}

	a.mode = ModeAwaitingPermission
	return a.ChooseDirectory(ctx)
}

// ChooseDirectory prompts for a data directory and switches to it. Used
// both from AwaitingPermission at startup and later from an explicit
// "change storage folder" action. On cancellation or permission denial it
// falls back to the embedded store unless a directory is already active.
// Switching reloads every document from the new backend's contents; the
// previous in-memory state is discarded, never merged.
func (a *App) ChooseDirectory(ctx context.Context) error {
	dir, err := a.picker.Pick(ctx)
	if err != nil {
		if errors.Is(err, ErrPickerCanceled) {
			a.notify(NotifyError, "No directory selected. Using temporary embedded storage.")
		} else {
			a.notify(NotifyError, fmt.Sprintf("Directory selection failed: %v", err))
		}
		return a.fallbackUnlessDirectory(ctx)
	}

	if err := docstore.CheckWritable(dir); err != nil {
		a.notify(NotifyError, "Permission to access the folder was denied.")
		return a.fallbackUnlessDirectory(ctx)
	}

	if err := a.rememberDir(ctx, dir); err != nil {
		return err
	}
	a.notify(NotifySuccess, fmt.Sprintf("Folder %q selected. Data will be loaded from it.", filepath.Base(dir)))
	return a.useDirectory(ctx, dir)
}

func (a *App) fallbackUnlessDirectory(ctx context.Context) error {
	if a.mode == ModeDirectory {
		return nil
	}
	return a.useEmbedded(ctx)
}

func (a *App) useEmbedded(ctx context.Context) error {
	a.mode = ModeEmbedded
	a.store = a.kv
	a.dirName = ""
	return a.Load(ctx)
}

func (a *App) useDirectory(ctx context.Context, dir string) error {
	ds, err := docstore.OpenDir(dir)
	if err != nil {
		return fmt.Errorf("open data directory: %w", err)
	}
	a.mode = ModeDirectory
	a.store = ds
	a.dirName = ds.Name()
	return a.Load(ctx)
}

// rememberedDir reads the persisted directory pointer, nil when none.
func (a *App) rememberedDir(ctx context.Context) (*dirPointer, error) {
	data, err := a.kv.Read(ctx, docstore.KeyDirectoryHandle)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ptr dirPointer
	if err := json.Unmarshal(data, &ptr); err != nil {
		return nil, fmt.Errorf("decode directory pointer: %w", err)
	}
	if ptr.Path == "" {
		return nil, nil
	}
	return &ptr, nil
}

func (a *App) rememberDir(ctx context.Context, dir string) error {
	data, err := json.Marshal(dirPointer{Path: dir, Name: filepath.Base(dir)})
	if err != nil {
		return err
	}
	return a.kv.Write(ctx, docstore.KeyDirectoryHandle, data)
}

// notifyEmbeddedFallbackOnce surfaces the "no directory capability" notice
// exactly once, persisting the flag so the notice shows only on first
// occurrence.
func (a *App) notifyEmbeddedFallbackOnce(ctx context.Context) error {
	_, err := a.kv.Read(ctx, docstore.KeyFSNotice)
	if err == nil {
		return nil
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return err
	}
	a.notify(NotifyError, "Directory storage is not available here; data will be saved in the embedded store.")
	return a.kv.Write(ctx, docstore.KeyFSNotice, []byte("true"))
}

// flag helpers for reserved bootstrap keys

// IsActivated reports whether the one-time activation flag is set.
func (a *App) IsActivated(ctx context.Context) (bool, error) {
	data, err := a.kv.Read(ctx, docstore.KeyActivated)
	if errors.Is(err, docstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return string(data) == "true", nil
}

// Activate sets the one-time activation flag.
func (a *App) Activate(ctx context.Context) error {
	return a.kv.Write(ctx, docstore.KeyActivated, []byte("true"))
}

// RememberedUser returns the stored login name, "" when none.
func (a *App) RememberedUser(ctx context.Context) (string, error) {
	data, err := a.kv.Read(ctx, docstore.KeyRememberedUser)
	if errors.Is(err, docstore.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RememberUser stores the login name for prefill; empty clears it.
func (a *App) RememberUser(ctx context.Context, name string) error {
	if name == "" {
		return a.kv.Delete(ctx, docstore.KeyRememberedUser)
	}
	return a.kv.Write(ctx, docstore.KeyRememberedUser, []byte(name))
}
