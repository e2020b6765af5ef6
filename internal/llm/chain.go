package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/prompts"
)

// refusalMarkers are substrings that show up when a model declines to do the
// work instead of producing a resume. They are only checked on suspiciously
// short outputs so that legitimate resumes mentioning similar phrasing pass.
var refusalMarkers = []string{
	"provide the content",
	"ready to help",
	"cannot fulfill",
	"i need the resume",
}

const refusalScanThreshold = 100

// chain binds a prompt template to a model with a per-call timeout.
type chain struct {
	model   llms.Model
	prompt  prompts.PromptTemplate
	timeout time.Duration
}

func newChain(model llms.Model, template string, vars []string, timeout time.Duration) chain {
	return chain{
		model:   model,
		prompt:  prompts.NewPromptTemplate(template, vars),
		timeout: timeout,
	}
}

func (c chain) run(ctx context.Context, vars map[string]any) (string, error) {
	rendered, err := c.prompt.Format(vars)
	if err != nil {
		return "", fmt.Errorf("%w: render prompt: %v", ErrProcessing, err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, rendered)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	return out, nil
}

// TailorChain rewrites a resume against a job description.
type TailorChain struct {
	chain
}

func NewTailorChain(model llms.Model, timeout time.Duration) *TailorChain {
	return &TailorChain{chain: newChain(model, tailoringPromptTemplate,
		[]string{"resume_content", "job_description"}, timeout)}
}

func (t *TailorChain) Run(ctx context.Context, resumeContent, jobDescription string) (string, error) {
	if strings.TrimSpace(resumeContent) == "" || strings.TrimSpace(jobDescription) == "" {
		return "", fmt.Errorf("%w: resume content and job description are required", ErrInvalidInput)
	}

	out, err := t.run(ctx, map[string]any{
		"resume_content":  resumeContent,
		"job_description": jobDescription,
	})
	if err != nil {
		return "", err
	}

	trimmed := strings.TrimSpace(out)
	if trimmed == "" {
		return "", fmt.Errorf("%w: model returned empty output", ErrProcessing)
	}
	if len(trimmed) < refusalScanThreshold && isRefusal(trimmed) {
		return "", fmt.Errorf("%w: model declined to tailor the resume", ErrProcessing)
	}
	return trimmed, nil
}

// LatexChain converts resume content into a LaTeX document.
type LatexChain struct {
	chain
}

func NewLatexChain(model llms.Model, timeout time.Duration) *LatexChain {
	return &LatexChain{chain: newChain(model, latexPromptTemplate,
		[]string{"latex_template", "resume_content"}, timeout)}
}

func (l *LatexChain) Run(ctx context.Context, resumeContent string) (string, error) {
	if strings.TrimSpace(resumeContent) == "" {
		return "", fmt.Errorf("%w: resume content is required", ErrInvalidInput)
	}

	out, err := l.run(ctx, map[string]any{
		"latex_template": latexTemplate,
		"resume_content": resumeContent,
	})
	if err != nil {
		return "", err
	}

	cleaned := stripCodeFence(out)
	if cleaned == "" {
		return "", fmt.Errorf("%w: model returned empty output", ErrProcessing)
	}
	return cleaned, nil
}

func isRefusal(s string) bool {
	lower := strings.ToLower(s)
	for _, marker := range refusalMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// stripCodeFence removes a leading ```latex (or bare ```) line and a trailing
// ``` line. Fences inside the document are left alone.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```latex") {
		s = strings.TrimPrefix(s, "```latex")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// NewGoogleAI builds the Gemini-backed model used by both chains.
func NewGoogleAI(ctx context.Context, apiKey, model string) (llms.Model, error) {
	return googleai.New(ctx, googleai.WithAPIKey(apiKey), googleai.WithDefaultModel(model))
}
