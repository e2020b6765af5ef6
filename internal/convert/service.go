package convert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tailor-backend/internal/extract"
	"tailor-backend/internal/resumes"
	"tailor-backend/internal/shared/telemetry"
	"tailor-backend/internal/usage"
)

// tailorRunner rewrites resume text against a job description.
type tailorRunner interface {
	Run(ctx context.Context, resumeContent, jobDescription string) (string, error)
}

// latexRunner converts resume content into LaTeX source.
type latexRunner interface {
	Run(ctx context.Context, resumeContent string) (string, error)
}

// pdfCompiler compiles LaTeX source and manages its on-disk byproducts.
type pdfCompiler interface {
	Compile(ctx context.Context, source string) ([]byte, string, error)
	PDFPath(pdfName string) string
	Cleanup(pdfName string)
}

// uploader streams a local file to object storage and returns its public URL.
type uploader interface {
	Upload(ctx context.Context, localPath, destName, contentType string) (string, error)
}

// quotaGate enforces and records per-user conversion limits.
type quotaGate interface {
	Check(ctx context.Context, userID string) (usage.Counts, error)
	Increment(ctx context.Context, userID string) (usage.Counts, error)
}

// notifier emails the download link. Failures stay inside it.
type notifier interface {
	Notify(ctx context.Context, bearerToken, resumeLink string) bool
}

// Service runs the conversion pipelines. A nil tailor or latex runner marks
// that pipeline unavailable rather than being an error at construction: the
// server can come up without model credentials and reject those requests
// with 503.
type Service struct {
	tailor   tailorRunner
	latex    latexRunner
	compiler pdfCompiler
	store    uploader
	records  resumes.Repo
	quota    quotaGate
	notify   notifier
}

// NewService wires the pipeline dependencies.
func NewService(tailor tailorRunner, latex latexRunner, compiler pdfCompiler, store uploader, records resumes.Repo, quota quotaGate, notify notifier) *Service {
	return &Service{
		tailor:   tailor,
		latex:    latex,
		compiler: compiler,
		store:    store,
		records:  records,
		quota:    quota,
		notify:   notify,
	}
}

// Tailor extracts text from the uploaded resume and rewrites it for the job
// description. No PDF is produced on this path.
func (s *Service) Tailor(ctx context.Context, userID, fileName string, fileData []byte, contentType, jobDescription string) (TailorResponse, error) {
	if _, err := s.quota.Check(ctx, userID); err != nil {
		return TailorResponse{}, err
	}

	resumeText, err := extract.Extract(fileData, contentType, fileName)
	if err != nil {
		return TailorResponse{}, err
	}

	if s.tailor == nil {
		return TailorResponse{}, ErrUnavailable
	}
	tailored, err := s.tailor.Run(ctx, resumeText, jobDescription)
	if err != nil {
		return TailorResponse{}, err
	}

	s.incrementQuota(userID)

	return TailorResponse{
		Filename:              fileName,
		OriginalContentLength: len(resumeText),
		JobDescriptionLength:  len(jobDescription),
		TailoredResumeText:    tailored,
	}, nil
}

// ConvertFile runs the full file-to-PDF pipeline and returns the public link.
func (s *Service) ConvertFile(ctx context.Context, userID, bearerToken, fileName string, fileData []byte, contentType string) (FileToPDFResponse, error) {
	if _, err := s.quota.Check(ctx, userID); err != nil {
		return FileToPDFResponse{}, err
	}

	resumeText, err := extract.Extract(fileData, contentType, fileName)
	if err != nil {
		return FileToPDFResponse{}, err
	}

	publicURL, _, err := s.producePDF(ctx, userID, bearerToken, resumeText)
	if err != nil {
		return FileToPDFResponse{}, err
	}
	return FileToPDFResponse{ResumeLink: publicURL}, nil
}

// ConvertJSON serializes the structured resume and runs the same pipeline.
func (s *Service) ConvertJSON(ctx context.Context, userID, bearerToken string, data ResumeData) (JSONToPDFResponse, error) {
	if _, err := s.quota.Check(ctx, userID); err != nil {
		return JSONToPDFResponse{}, err
	}

	serialized, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return JSONToPDFResponse{}, fmt.Errorf("%w: serialize resume data: %v", ErrInvalidInput, err)
	}

	publicURL, pdfName, err := s.producePDF(ctx, userID, bearerToken, string(serialized))
	if err != nil {
		return JSONToPDFResponse{}, err
	}
	return JSONToPDFResponse{
		Message:     "Resume converted successfully from JSON.",
		ResumeLink:  publicURL,
		PDFFilename: pdfName,
	}, nil
}

// producePDF is the shared tail of both conversion endpoints: LaTeX
// generation, compilation, upload, audit record, then the non-fatal
// follow-ups. Upload and record insertion only happen once a non-empty PDF
// exists; the quota increment only happens after all of them succeeded.
func (s *Service) producePDF(ctx context.Context, userID, bearerToken, resumeContent string) (string, string, error) {
	if s.latex == nil {
		return "", "", ErrUnavailable
	}

	latexSource, err := s.latex.Run(ctx, resumeContent)
	if err != nil {
		return "", "", err
	}

	_, pdfName, err := s.compiler.Compile(ctx, latexSource)
	if err != nil {
		return "", "", err
	}
	defer s.compiler.Cleanup(pdfName)

	publicURL, err := s.store.Upload(ctx, s.compiler.PDFPath(pdfName), pdfName, "application/pdf")
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	record := resumes.Record{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		ResumeLink: publicURL,
		UserID:     userID,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if s.notify != nil {
		if sent := s.notify.Notify(ctx, bearerToken, publicURL); !sent {
			telemetry.Warn("email notification not sent", map[string]any{"user_id": userID})
		}
	}
	s.incrementQuota(userID)

	return publicURL, pdfName, nil
}

// incrementQuota bumps the counters after a successful conversion. The user
// already has their result, so a failure here is logged and swallowed.
func (s *Service) incrementQuota(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	counts, err := s.quota.Increment(ctx, userID)
	if err != nil {
		telemetry.Error("usage increment failed", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}
	telemetry.Info("usage incremented", map[string]any{"user_id": userID, "daily": counts.Daily, "monthly": counts.Monthly})
}
