package convert

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"tailor-backend/internal/extract"
	"tailor-backend/internal/latex"
	"tailor-backend/internal/llm"
	"tailor-backend/internal/shared/server/middleware"
	"tailor-backend/internal/shared/server/respond"
	"tailor-backend/internal/shared/telemetry"
	"tailor-backend/internal/usage"
)

const minJobDescriptionLength = 50

// Extensions accepted by the file conversion endpoint.
var allowedConvertExts = map[string]bool{
	".pdf":  true,
	".md":   true,
	".docx": true,
	".doc":  true,
}

// Handler exposes the conversion endpoints.
type Handler struct {
	svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the conversion routes on an authenticated router group.
func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/tailor", h.tailor)
	r.POST("/convert-latex", h.convertFile)
	r.POST("/convert-json-to-latex", h.convertJSON)
}

func (h *Handler) tailor(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	jobDescription := c.PostForm("job_description")
	if len(jobDescription) < minJobDescriptionLength {
		respond.Error(c, http.StatusBadRequest, "invalid_input",
			"job_description must be at least 50 characters", nil)
		return
	}

	fileName, fileData, contentType, ok := h.readUpload(c)
	if !ok {
		return
	}

	resp, err := h.svc.Tailor(c.Request.Context(), userID, fileName, fileData, contentType, jobDescription)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, resp)
}

func (h *Handler) convertFile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	bearerToken := middleware.BearerTokenFromContext(c)

	fileName, fileData, contentType, ok := h.readUpload(c)
	if !ok {
		return
	}
	if !allowedConvertExts[strings.ToLower(filepath.Ext(fileName))] {
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_type",
			"only PDF, Markdown (.md), DOCX, and DOC files are supported", nil)
		return
	}

	resp, err := h.svc.ConvertFile(c.Request.Context(), userID, bearerToken, fileName, fileData, contentType)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, resp)
}

func (h *Handler) convertJSON(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	bearerToken := middleware.BearerTokenFromContext(c)

	var data ResumeData
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input",
			"request body does not match the resume schema", nil)
		return
	}

	resp, err := h.svc.ConvertJSON(c.Request.Context(), userID, bearerToken, data)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, resp)
}

// readUpload pulls resume_file out of the multipart form. Reads are capped
// just past the extraction limit so the size check still fires while a
// hostile body cannot exhaust memory.
func (h *Handler) readUpload(c *gin.Context) (fileName string, fileData []byte, contentType string, ok bool) {
	fileHeader, err := c.FormFile("resume_file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "resume_file is required", nil)
		return "", nil, "", false
	}
	if fileHeader.Filename == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "filename cannot be empty", nil)
		return "", nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "could not read resume_file", nil)
		return "", nil, "", false
	}
	defer file.Close()

	fileData, err = io.ReadAll(io.LimitReader(file, extract.MaxFileSize+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "could not read resume_file", nil)
		return "", nil, "", false
	}
	return fileHeader.Filename, fileData, uploadContentType(fileHeader), true
}

func uploadContentType(fh *multipart.FileHeader) string {
	return fh.Header.Get("Content-Type")
}

// writeError maps pipeline errors onto the response contract. Processing and
// storage detail stays in the logs; callers get a generic message.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, extract.ErrTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large",
			"resume_file exceeds the 10 MiB limit", nil)
	case errors.Is(err, extract.ErrUnsupportedType):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_type",
			"unsupported file type", nil)
	case errors.Is(err, extract.ErrEmptyFile), errors.Is(err, extract.ErrParse),
		errors.Is(err, llm.ErrInvalidInput), errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_input",
			"could not process the provided input", nil)
	case errors.Is(err, usage.ErrLimitReached):
		respond.Error(c, http.StatusTooManyRequests, "limit_reached",
			"conversion limit reached, try again later", nil)
	case errors.Is(err, ErrUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, "unavailable",
			"resume processing service temporarily unavailable", nil)
	case errors.Is(err, llm.ErrProcessing), errors.Is(err, latex.ErrCompile), errors.Is(err, ErrStorage):
		telemetry.Error("conversion pipeline failed", map[string]any{
			"error":      err.Error(),
			"request_id": c.GetString("requestId"),
		})
		respond.Error(c, http.StatusInternalServerError, "processing_failed",
			"failed to process the resume", nil)
	default:
		telemetry.Error("unexpected conversion error", map[string]any{
			"error":      err.Error(),
			"request_id": c.GetString("requestId"),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error",
			"an unexpected error occurred", nil)
	}
}
