package latex

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"tailor-backend/internal/shared/telemetry"
)

// ErrCompile indicates the compiler produced no usable PDF.
var ErrCompile = errors.New("pdf generation failed")

// diagnosticTailLines bounds how much compiler output ends up in errors.
const diagnosticTailLines = 20

// byproductExts are the per-run files removed by Cleanup.
var byproductExts = []string{".pdf", ".tex", ".aux", ".log", ".out"}

// Compiler wraps an external TeX compiler. Each run uses a uniquely named
// source file, so concurrent compilations never interfere.
type Compiler struct {
	OutputDir string
	Binary    string
	Timeout   time.Duration
}

// NewCompiler constructs a Compiler writing into outputDir.
func NewCompiler(outputDir, binary string, timeout time.Duration) *Compiler {
	if binary == "" {
		binary = "pdflatex"
	}
	return &Compiler{OutputDir: outputDir, Binary: binary, Timeout: timeout}
}

// Compile persists the LaTeX source and invokes the compiler. The run is
// judged by its artifact, not its exit code: many packages exit non-zero over
// warnings while still emitting a perfectly good PDF. Only a missing or empty
// PDF is a failure, and that error carries the tail of the diagnostics.
func (c *Compiler) Compile(ctx context.Context, source string) ([]byte, string, error) {
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return nil, "", fmt.Errorf("create output dir: %w", err)
	}

	id := uuid.NewString()
	texPath := filepath.Join(c.OutputDir, id+".tex")
	if err := os.WriteFile(texPath, []byte(source), 0o644); err != nil {
		return nil, "", fmt.Errorf("write latex source: %w", err)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Binary, "-interaction=nonstopmode", "-output-directory", c.OutputDir, texPath)
	cmd.Dir = c.OutputDir
	output, runErr := cmd.CombinedOutput()

	pdfName := id + ".pdf"
	pdfPath := filepath.Join(c.OutputDir, pdfName)

	if info, statErr := os.Stat(pdfPath); statErr == nil && info.Size() > 0 {
		if runErr != nil {
			telemetry.Warn("latex.compile.nonzero_exit", map[string]any{
				"pdf":   pdfName,
				"error": runErr.Error(),
			})
		}
		pdfBytes, readErr := os.ReadFile(pdfPath)
		if readErr != nil {
			return nil, "", fmt.Errorf("read generated pdf: %w", readErr)
		}
		return pdfBytes, pdfName, nil
	}

	return nil, "", fmt.Errorf("%w: output file not found or empty; compiler diagnostics (last %d lines):\n%s",
		ErrCompile, diagnosticTailLines, lastLines(output, diagnosticTailLines))
}

// PDFPath returns the on-disk location of a compiled PDF.
func (c *Compiler) PDFPath(pdfName string) string {
	return filepath.Join(c.OutputDir, pdfName)
}

// Cleanup removes the source, PDF and compiler byproducts for one run.
// Failures are logged, never surfaced.
func (c *Compiler) Cleanup(pdfName string) {
	base := strings.TrimSuffix(pdfName, filepath.Ext(pdfName))
	for _, ext := range byproductExts {
		path := filepath.Join(c.OutputDir, base+ext)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			telemetry.Warn("latex.cleanup.failed", map[string]any{
				"path":  path,
				"error": err.Error(),
			})
		}
	}
}

func lastLines(output []byte, n int) string {
	text := strings.TrimSpace(string(output))
	if text == "" {
		return "no compiler output"
	}
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
