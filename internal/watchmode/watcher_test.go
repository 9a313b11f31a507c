package watchmode

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew_RejectsNilCallback(t *testing.T) {
	w, err := New(100*time.Millisecond, nil, nil, nil, nil)
	if err == nil {
		t.Fatal("expected error for nil callback")
	}
	if !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("expected os.ErrInvalid, got %v", err)
	}
	if w != nil {
		t.Fatal("expected nil watcher when callback is invalid")
	}
}

func TestWatcher_TriggersOnSourceFile(t *testing.T) {
	tmpDir := t.TempDir()

	changedFiles := make(chan []string, 1)
	w, err := New(100*time.Millisecond, []string{"exclude_dir"}, []string{"*.exclude"}, []string{".go"}, func(paths []string) {
		changedFiles <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch(context.Background(), []string{tmpDir}); err != nil {
		t.Fatal(err)
	}

	testFile := filepath.Join(tmpDir, "test.go")
	if err := os.WriteFile(testFile, []byte("package main"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-changedFiles:
		found := false
		for _, p := range paths {
			if p == testFile {
				found = true
			}
		}
		if !found {
			t.Errorf("expected to find %s in changed files %v", testFile, paths)
		}
	case <-time.After(2 * time.Second):
		t.Error("timed out waiting for file change event")
	}
}

func TestWatcher_IgnoresNonSourceExtension(t *testing.T) {
	tmpDir := t.TempDir()

	changedFiles := make(chan []string, 1)
	w, err := New(50*time.Millisecond, nil, nil, []string{".go"}, func(paths []string) {
		changedFiles <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch(context.Background(), []string{tmpDir}); err != nil {
		t.Fatal(err)
	}

	readme := filepath.Join(tmpDir, "README.md")
	if err := os.WriteFile(readme, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-changedFiles:
		t.Errorf("expected no change event for a non-source file, got %v", paths)
	case <-time.After(300 * time.Millisecond):
		// expected
	}
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := New(50*time.Millisecond, nil, nil, nil, func([]string) {})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Watch(ctx, []string{tmpDir}); err != nil {
		t.Fatal(err)
	}
	cancel()
}
