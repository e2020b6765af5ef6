package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestUploadCopiesFileAndReturnsURL(t *testing.T) {
	srcDir := t.TempDir()
	storeDir := t.TempDir()

	srcPath := filepath.Join(srcDir, "out.pdf")
	if err := os.WriteFile(srcPath, []byte("%PDF-1.5 fake"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	store := New(storeDir, "http://localhost:8080/files/")
	url, err := store.Upload(context.Background(), srcPath, "abc123.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "http://localhost:8080/files/abc123.pdf" {
		t.Fatalf("unexpected url %q", url)
	}

	copied, err := os.ReadFile(filepath.Join(storeDir, "abc123.pdf"))
	if err != nil {
		t.Fatalf("read copied file: %v", err)
	}
	if string(copied) != "%PDF-1.5 fake" {
		t.Fatalf("unexpected copied content %q", copied)
	}
}

func TestUploadRejectsTraversalName(t *testing.T) {
	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "out.pdf")
	if err := os.WriteFile(srcPath, []byte("x"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	store := New(t.TempDir(), "http://localhost:8080/files")
	if _, err := store.Upload(context.Background(), srcPath, "../escape.pdf", "application/pdf"); err == nil {
		t.Fatal("expected error for traversal name")
	}
}
