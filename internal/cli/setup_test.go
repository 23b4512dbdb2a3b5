package cli

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/same7samy00/ysk-sales/internal/app"
)

func newRuntimeOpts(t *testing.T, dataDir string) *RootOptions {
	t.Helper()
	t.Setenv("YSK_DB", "")
	t.Setenv("YSK_DATA_DIR", "")
	return &RootOptions{
		Format:   "text",
		Database: filepath.Join(t.TempDir(), "test.db"),
		DataDir:  dataDir,
	}
}

func TestNewRuntime_DataDirFlagOverridesRemembered(t *testing.T) {
	dbDir := t.TempDir()
	db := filepath.Join(dbDir, "ysk.db")
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	t.Setenv("YSK_DB", "")
	t.Setenv("YSK_DATA_DIR", "")

	run := func(dataDir string) *runtime {
		t.Helper()
		rt, err := newRuntime(&cobra.Command{}, &RootOptions{
			Format: "text", Database: db, DataDir: dataDir,
		})
		require.NoError(t, err)
		return rt
	}

	rt := run(dir1)
	require.Equal(t, app.ModeDirectory, rt.App.Mode())
	assert.Equal(t, filepath.Base(dir1), rt.App.DirectoryName())
	rt.Close()

	// dir1 is remembered, but the flag selects dir2 explicitly.
	rt = run(dir2)
	require.Equal(t, app.ModeDirectory, rt.App.Mode())
	assert.Equal(t, filepath.Base(dir2), rt.App.DirectoryName())
	rt.Close()

	// Without the flag the last explicit selection is remembered.
	rt = run("")
	require.Equal(t, app.ModeDirectory, rt.App.Mode())
	assert.Equal(t, filepath.Base(dir2), rt.App.DirectoryName())
	rt.Close()
}

func TestNewRuntime_NoDataDirFallsBackToEmbedded(t *testing.T) {
	rt, err := newRuntime(&cobra.Command{}, newRuntimeOpts(t, ""))
	require.NoError(t, err)
	defer rt.Close()
	assert.Equal(t, app.ModeEmbedded, rt.App.Mode())
}
