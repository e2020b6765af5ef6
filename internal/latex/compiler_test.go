package latex

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeFakeCompiler installs a shell script standing in for pdflatex.
func writeFakeCompiler(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-pdflatex")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write fake compiler: %v", err)
	}
	return path
}

func TestCompileTrustsArtifactOverExitCode(t *testing.T) {
	// Writes a non-empty PDF next to the source, then exits non-zero the way
	// pdflatex does over package warnings.
	script := `
tex=""
for arg in "$@"; do tex="$arg"; done
pdf="${tex%.tex}.pdf"
printf '%%PDF-1.5 fake body' > "$pdf"
echo "LaTeX Warning: some package complained" >&2
exit 1
`
	bin := writeFakeCompiler(t, script)
	c := NewCompiler(t.TempDir(), bin, 10*time.Second)

	pdfBytes, pdfName, err := c.Compile(context.Background(), `\documentclass{article}\begin{document}hi\end{document}`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !strings.HasSuffix(pdfName, ".pdf") {
		t.Fatalf("expected .pdf name, got %q", pdfName)
	}
	if !strings.HasPrefix(string(pdfBytes), "%PDF") {
		t.Fatalf("unexpected pdf content %q", pdfBytes)
	}
}

func TestCompileFailsWithoutArtifact(t *testing.T) {
	script := `
i=1
while [ $i -le 30 ]; do
  echo "diagnostic line $i"
  i=$((i+1))
done
exit 1
`
	bin := writeFakeCompiler(t, script)
	c := NewCompiler(t.TempDir(), bin, 10*time.Second)

	_, _, err := c.Compile(context.Background(), `\documentclass{article}`)
	if !errors.Is(err, ErrCompile) {
		t.Fatalf("expected ErrCompile, got %v", err)
	}
	msg := err.Error()
	if strings.Contains(msg, "diagnostic line 10") {
		t.Fatalf("expected only the last %d lines, got: %s", diagnosticTailLines, msg)
	}
	if !strings.Contains(msg, "diagnostic line 30") {
		t.Fatalf("expected tail of diagnostics in error, got: %s", msg)
	}
}

func TestCompileFailsOnEmptyArtifact(t *testing.T) {
	script := `
tex=""
for arg in "$@"; do tex="$arg"; done
: > "${tex%.tex}.pdf"
exit 0
`
	bin := writeFakeCompiler(t, script)
	c := NewCompiler(t.TempDir(), bin, 10*time.Second)

	if _, _, err := c.Compile(context.Background(), "x"); !errors.Is(err, ErrCompile) {
		t.Fatalf("expected ErrCompile for empty pdf, got %v", err)
	}
}

func TestCleanupRemovesByproducts(t *testing.T) {
	dir := t.TempDir()
	c := NewCompiler(dir, "pdflatex", 0)

	base := "0b89e9c3-cleanup-test"
	for _, ext := range byproductExts {
		path := filepath.Join(dir, base+ext)
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("seed %s: %v", path, err)
		}
	}

	c.Cleanup(base + ".pdf")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), base) {
			t.Fatalf("expected %s removed", e.Name())
		}
	}
}

func TestCompileUniqueSourcesPerRun(t *testing.T) {
	script := `
tex=""
for arg in "$@"; do tex="$arg"; done
printf '%%PDF-1.5' > "${tex%.tex}.pdf"
exit 0
`
	bin := writeFakeCompiler(t, script)
	dir := t.TempDir()
	c := NewCompiler(dir, bin, 10*time.Second)

	_, first, err := c.Compile(context.Background(), "a")
	if err != nil {
		t.Fatalf("first compile: %v", err)
	}
	_, second, err := c.Compile(context.Background(), "b")
	if err != nil {
		t.Fatalf("second compile: %v", err)
	}
	if first == second {
		t.Fatalf("expected unique artifact names, got %q twice", first)
	}
	for _, name := range []string{first, second} {
		if _, err := os.Stat(c.PDFPath(name)); err != nil {
			t.Fatalf("expected %s on disk: %v", name, err)
		}
	}
}
