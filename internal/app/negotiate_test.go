package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/same7samy00/ysk-sales/internal/docstore"
	"github.com/same7samy00/ysk-sales/internal/model"
)

func TestNegotiate_NoPickerCapabilityFallsBackToEmbedded(t *testing.T) {
	n := &recordingNotifier{}
	a := New(newTestKV(t), WithNotifier(n))

	require.NoError(t, a.Negotiate(context.Background()))

	assert.Equal(t, ModeEmbedded, a.Mode())
	assert.Equal(t, 1, n.count(), "fallback notice should fire")
}

func TestNegotiate_FallbackNoticeShowsOnlyOnce(t *testing.T) {
	kv := newTestKV(t)
	n := &recordingNotifier{}

	a := New(kv, WithNotifier(n))
	require.NoError(t, a.Negotiate(context.Background()))
	require.Equal(t, 1, n.count())

	// Second startup against the same embedded store: flag persisted.
	b := New(kv, WithNotifier(n))
	require.NoError(t, b.Negotiate(context.Background()))
	assert.Equal(t, 1, n.count(), "notice must not repeat")
}

func TestNegotiate_PickerGrantsDirectory(t *testing.T) {
	dir := t.TempDir()
	a := New(newTestKV(t), WithPicker(&fakePicker{supported: true, dir: dir}))

	require.NoError(t, a.Negotiate(context.Background()))

	assert.Equal(t, ModeDirectory, a.Mode())
	assert.NotEmpty(t, a.DirectoryName())
}

func TestNegotiate_PickerCancelFallsBackToEmbedded(t *testing.T) {
	a := New(newTestKV(t), WithPicker(&fakePicker{supported: true, err: ErrPickerCanceled}))

	require.NoError(t, a.Negotiate(context.Background()), "cancellation is never fatal")
	assert.Equal(t, ModeEmbedded, a.Mode())
}

func TestNegotiate_RemembersDirectoryAcrossStartups(t *testing.T) {
	kv := newTestKV(t)
	dir := t.TempDir()
	ctx := context.Background()

	a := New(kv, WithPicker(&fakePicker{supported: true, dir: dir}))
	require.NoError(t, a.Negotiate(ctx))
	require.Equal(t, ModeDirectory, a.Mode())

	// Second startup: the pointer in the embedded store resolves the
	// directory without prompting.
	picker := &fakePicker{supported: true, err: ErrPickerCanceled}
	b := New(kv, WithPicker(picker))
	require.NoError(t, b.Negotiate(ctx))

	assert.Equal(t, ModeDirectory, b.Mode())
	assert.Zero(t, picker.picks, "remembered handle must skip the prompt")
}

func TestChooseDirectory_SwitchReloadsWithoutMerging(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)
	a := New(kv)
	require.NoError(t, a.Negotiate(ctx))

	// Data written while on the embedded backend.
	_, err := a.PutProduct(ctx, model.Product{Name: "embedded-only", Barcode: "b1"})
	require.NoError(t, err)
	require.Len(t, a.Products, 1)

	dir := t.TempDir()
	a.SetPicker(&fakePicker{supported: true, dir: dir})
	require.NoError(t, a.ChooseDirectory(ctx))

	require.Equal(t, ModeDirectory, a.Mode())
	assert.Empty(t, a.Products, "state must come from the new backend, not merge")

	// The new directory got seeded with defaults.
	ds, err := docstore.OpenDir(dir)
	require.NoError(t, err)
	_, err = ds.Read(ctx, docstore.KeyUnits)
	assert.NoError(t, err)
}

func TestChooseDirectory_OverridesRememberedDirectory(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)
	dir1 := t.TempDir()
	dir2 := t.TempDir()

	a := New(kv, WithPicker(&fakePicker{supported: true, dir: dir1}))
	require.NoError(t, a.Negotiate(ctx))
	require.Equal(t, ModeDirectory, a.Mode())

	// An explicit selection wins over the remembered pointer.
	b := New(kv, WithPicker(&fakePicker{supported: true, dir: dir2}))
	require.NoError(t, b.ChooseDirectory(ctx))
	require.Equal(t, ModeDirectory, b.Mode())
	assert.Equal(t, filepath.Base(dir2), b.DirectoryName())

	// And becomes the new remembered directory.
	c := New(kv, WithPicker(&fakePicker{supported: true, err: ErrPickerCanceled}))
	require.NoError(t, c.Negotiate(ctx))
	assert.Equal(t, filepath.Base(dir2), c.DirectoryName())
}

func TestChooseDirectory_DenialKeepsActiveDirectory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	a := New(newTestKV(t), WithPicker(&fakePicker{supported: true, dir: dir}))
	require.NoError(t, a.Negotiate(ctx))
	require.Equal(t, ModeDirectory, a.Mode())

	a.SetPicker(&fakePicker{supported: true, err: ErrPickerCanceled})
	require.NoError(t, a.ChooseDirectory(ctx))
	assert.Equal(t, ModeDirectory, a.Mode(), "an active directory survives a canceled re-pick")
}

func TestActivationFlag(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	on, err := a.IsActivated(ctx)
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, a.Activate(ctx))
	on, err = a.IsActivated(ctx)
	require.NoError(t, err)
	assert.True(t, on)
}

func TestRememberedUser(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	name, err := a.RememberedUser(ctx)
	require.NoError(t, err)
	assert.Empty(t, name)

	require.NoError(t, a.RememberUser(ctx, "admin"))
	name, err = a.RememberedUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", name)

	require.NoError(t, a.RememberUser(ctx, ""))
	name, err = a.RememberedUser(ctx)
	require.NoError(t, err)
	assert.Empty(t, name)
}
