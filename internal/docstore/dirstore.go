package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// pendingMarkerName is the durable pending-commit marker for DirStore
// batches. Its presence on open means a batch was interrupted mid-commit
// and must be rolled forward.
const pendingMarkerName = ".pending-commit.json"

// permProbeName is the throwaway file used to verify read-write access.
const permProbeName = ".ysk-write-check"

// DirStore persists each document as <dir>/<key>.json, pretty-printed
// UTF-8. An absent file reads as ErrNotFound; unreadable content is a
// genuine failure, never collapsed into absence.
type DirStore struct {
	dir string
}

// OpenDir opens a directory-backed store rooted at dir. The directory
// must exist and be writable; any pending batch from an interrupted
// commit is rolled forward before the store is returned.
func OpenDir(dir string) (*DirStore, error) {
	if err := CheckWritable(dir); err != nil {
		return nil, err
	}
	s := &DirStore{dir: dir}
	if err := s.recoverPending(); err != nil {
		return nil, fmt.Errorf("recover pending batch: %w", err)
	}
	return s, nil
}

// CheckWritable verifies read-write permission on dir by creating and
// removing a probe file. Permission here is an external, revocable
// resource: this check holds only at the moment it runs.
func CheckWritable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat data directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}
	probe := filepath.Join(dir, permProbeName)
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("directory not writable: %w", err)
	}
	if err := os.Remove(probe); err != nil {
		return fmt.Errorf("directory not writable: %w", err)
	}
	return nil
}

// Name returns the base name of the data directory, for display.
func (s *DirStore) Name() string { return filepath.Base(s.dir) }

// Dir returns the data directory path.
func (s *DirStore) Dir() string { return s.dir }

// Read returns the document stored for key, or ErrNotFound when the file
// does not exist.
func (s *DirStore) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("read %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	return data, nil
}

// Write creates or truncates <key>.json with value. The write goes through
// a temp file and rename so readers never observe a torn document.
func (s *DirStore) Write(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.writeFile(key, value)
}

// Apply commits the batch with roll-forward durability: the full batch is
// written to a marker file first, then applied write by write, then the
// marker is removed. A crash between those steps is repaired by
// recoverPending on the next open.
func (s *DirStore) Apply(ctx context.Context, batch *Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if batch.Len() == 0 {
		return nil
	}
	marker, err := json.Marshal(batch.ops)
	if err != nil {
		return fmt.Errorf("marshal pending batch: %w", err)
	}
	markerPath := filepath.Join(s.dir, pendingMarkerName)
	if err := atomicWrite(markerPath, marker); err != nil {
		return fmt.Errorf("write pending marker: %w", err)
	}
	for _, op := range batch.ops {
		if err := s.writeFile(op.Key, op.Value); err != nil {
			return fmt.Errorf("apply batch: %w", err)
		}
	}
	if err := os.Remove(markerPath); err != nil {
		return fmt.Errorf("clear pending marker: %w", err)
	}
	return nil
}

// Close is a no-op for the directory backend.
func (s *DirStore) Close() error { return nil }

// recoverPending rolls forward a batch whose commit was interrupted.
// Re-applying every staged write is safe: documents are whole values, so
// a second write of the same content is idempotent.
func (s *DirStore) recoverPending() error {
	markerPath := filepath.Join(s.dir, pendingMarkerName)
	data, err := os.ReadFile(markerPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	var ops []batchOp
	if err := json.Unmarshal(data, &ops); err != nil {
		// The marker itself never survived its atomic rename half
		// written; an unparsable marker means something else touched
		// the directory. Surface it rather than guess.
		return fmt.Errorf("unparsable pending marker: %w", err)
	}
	for _, op := range ops {
		if err := s.writeFile(op.Key, op.Value); err != nil {
			return err
		}
	}
	return os.Remove(markerPath)
}

func (s *DirStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *DirStore) writeFile(key string, value []byte) error {
	if err := atomicWrite(s.path(key), value); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// atomicWrite writes data to a sibling temp file and renames it over path.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
