package levelwatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsLevelFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, []string{".yaml", ".yml"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()
	w.SetDebounce(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []Change, 4)
	go w.Run(ctx, func(c []Change) { batches <- c })

	target := filepath.Join(dir, "level.yaml")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if err := os.WriteFile(target, []byte("id: 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case batch := <-batches:
		if len(batch) != 1 || batch[0].Path != target || batch[0].Removed {
			t.Errorf("batch = %+v, expected one write of %s", batch, target)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	if err := os.Remove(target); err != nil {
		t.Fatal(err)
	}
	select {
	case batch := <-batches:
		if len(batch) != 1 || !batch[0].Removed {
			t.Errorf("batch = %+v, expected removal", batch)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("removal not reported")
	}
}

func TestWatcherStopsOnCancel(t *testing.T) {
	w, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func([]Change) {}) }()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() = %v, expected context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("expected error for missing directory")
	}
}
