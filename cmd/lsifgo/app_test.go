package main

import (
	"bytes"
	"testing"

	"lsifgo/internal/core/config"
	"lsifgo/internal/core/ports"
)

func TestOpenPackageCacheDefaultsToMemory(t *testing.T) {
	cache, err := openPackageCache(&config.Config{})
	if err != nil {
		t.Fatalf("openPackageCache: %v", err)
	}
	if cache == nil {
		t.Fatal("expected a non-nil default cache")
	}
}

func TestOpenOutDefaultsToStdout(t *testing.T) {
	w, closeFn, err := openOut("")
	if err != nil {
		t.Fatalf("openOut: %v", err)
	}
	defer closeFn()
	if w == nil {
		t.Fatal("expected a non-nil writer")
	}
}

func TestOpenOutWritesToFile(t *testing.T) {
	path := t.TempDir() + "/dump.lsif"
	w, closeFn, err := openOut(path)
	if err != nil {
		t.Fatalf("openOut: %v", err)
	}
	defer closeFn()
	if _, err := w.Write([]byte("{}\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, []ports.ProjectSummary{
		{Project: "app", SymbolCount: 3, DocumentCount: 2, ElapsedMS: 5},
		{Project: "libA", SymbolCount: 1, DocumentCount: 1, ElapsedMS: 1},
	})

	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("app: 3 symbols, 2 documents")) {
		t.Fatalf("expected app's per-project line, got %q", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte("2 project(s), 4 symbols, 3 documents")) {
		t.Fatalf("expected the aggregate line, got %q", out)
	}
}
