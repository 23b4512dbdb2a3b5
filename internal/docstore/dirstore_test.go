package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenDir_RequiresWritableDirectory(t *testing.T) {
	if _, err := OpenDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory, got nil")
	}
}

func TestDirStore_RoundTrip(t *testing.T) {
	s, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDir() failed: %v", err)
	}
	ctx := context.Background()

	want := []byte(`[
  {
    "id": "p1"
  }
]`)
	if err := s.Write(ctx, KeyProducts, want); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	got, err := s.Read(ctx, KeyProducts)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("round trip mismatch: got %q, want %q", got, want)
	}
}

func TestDirStore_WritesKeyDotJSON(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir() failed: %v", err)
	}
	if err := s.Write(context.Background(), KeySettings, []byte(`{}`)); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "settings.json")); err != nil {
		t.Errorf("settings.json not created: %v", err)
	}
}

func TestDirStore_AbsentKeyIsNotFound(t *testing.T) {
	s, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDir() failed: %v", err)
	}
	_, err = s.Read(context.Background(), KeyInvoices)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDirStore_ApplyCommitsAllAndClearsMarker(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir() failed: %v", err)
	}
	ctx := context.Background()

	b := NewBatch()
	b.Put(KeyProducts, []byte(`["a"]`))
	b.Put(KeyInvoices, []byte(`["b"]`))
	if err := s.Apply(ctx, b); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	for _, key := range []string{KeyProducts, KeyInvoices} {
		if _, err := s.Read(ctx, key); err != nil {
			t.Errorf("Read(%q) after Apply failed: %v", key, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, pendingMarkerName)); !os.IsNotExist(err) {
		t.Error("pending marker not removed after Apply")
	}
}

func TestDirStore_RecoverPendingRollsForward(t *testing.T) {
	dir := t.TempDir()

	// Simulate a crash after the marker was written but before any
	// document write happened.
	ops := []batchOp{
		{Key: KeyProducts, Value: []byte(`["recovered"]`)},
		{Key: KeyInvoices, Value: []byte(`["recovered-too"]`)},
	}
	marker, err := json.Marshal(ops)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, pendingMarkerName), marker, 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir() failed: %v", err)
	}
	ctx := context.Background()
	for _, op := range ops {
		got, err := s.Read(ctx, op.Key)
		if err != nil {
			t.Fatalf("Read(%q) after recovery failed: %v", op.Key, err)
		}
		if string(got) != string(op.Value) {
			t.Errorf("Read(%q) = %q, want %q", op.Key, got, op.Value)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, pendingMarkerName)); !os.IsNotExist(err) {
		t.Error("pending marker not removed after recovery")
	}
}

func TestCheckWritable_ReadOnlyDirectory(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	if err := CheckWritable(dir); err == nil {
		t.Error("expected error for read-only directory, got nil")
	}
}
