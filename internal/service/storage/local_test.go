package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir(), "/static/uploads/")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	url, err := store.Put(ctx, "notes.txt", strings.NewReader("hello"), 5, "text/plain")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if url != "/static/uploads/notes.txt" {
		t.Errorf("Put url = %q", url)
	}
	if url != store.URL("notes.txt") {
		t.Errorf("URL mismatch: %q vs %q", url, store.URL("notes.txt"))
	}

	if err := store.Copy(ctx, "notes.txt", "renamed.txt"); err != nil {
		t.Fatalf("Copy: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(store.basePath, "renamed.txt"))
	if err != nil {
		t.Fatalf("read copy: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("copied content = %q", data)
	}

	if err := store.Delete(ctx, "notes.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// 幂等：再删一次不报错
	if err := store.Delete(ctx, "notes.txt"); err != nil {
		t.Fatalf("Delete (second): %v", err)
	}
}

func TestLocalStorageCopyMissingSource(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/files")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	if err := store.Copy(context.Background(), "missing.pdf", "dst.pdf"); err == nil {
		t.Error("Copy of missing source should fail")
	}
}
