package app

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/same7samy00/ysk-sales/internal/docstore"
)

// fakePicker scripts the directory-picker capability.
type fakePicker struct {
	supported bool
	dir       string
	err       error
	picks     int
}

func (p *fakePicker) Supported() bool { return p.supported }

func (p *fakePicker) Pick(ctx context.Context) (string, error) {
	p.picks++
	if p.err != nil {
		return "", p.err
	}
	return p.dir, nil
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(kind NotifyKind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, string(kind)+": "+message)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func newTestKV(t *testing.T) *docstore.KVStore {
	t.Helper()
	kv, err := docstore.OpenKV(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

// newTestApp returns a loaded app on the embedded backend.
func newTestApp(t *testing.T) *App {
	t.Helper()
	a := New(newTestKV(t))
	require.NoError(t, a.Negotiate(context.Background()))
	return a
}
