package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"callsight/internal/config"
	"callsight/internal/domain"
	"callsight/internal/service"
)

// AnalysisHandler handles transcript analysis endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	cfg             *config.UploadConfig
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService, cfg *config.UploadConfig) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, cfg: cfg}
}

// Analyze handles POST /api/v1/analyses
// @Summary Analyze an earnings call transcript
// @Description Upload a transcript PDF and receive a structured financial-sentiment summary
// @Tags analyses
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Transcript PDF"
// @Param mode formData string false "Analysis mode: text (default) or multimodal"
// @Param X-API-Key header string false "Gemini API key (falls back to server configuration)"
// @Success 200 {object} APIResponse{data=AnalysisResponse} "Analysis record"
// @Failure 400 {object} APIResponse "Missing file, unsupported type, or invalid mode"
// @Failure 401 {object} APIResponse "No credential available"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 422 {object} APIResponse "Unreadable PDF"
// @Failure 502 {object} APIResponse "Remote model failure"
// @Router /analyses [post]
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		HandleError(c, domain.ErrUnsupportedFileType)
		return
	}

	// Validate file size
	maxBytes := h.cfg.MaxFileSizeMB * 1024 * 1024
	if header.Size > maxBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	mode := domain.ModeText
	if raw := c.PostForm("mode"); raw != "" {
		parsed, ok := domain.ParseMode(raw)
		if !ok {
			HandleError(c, domain.ErrInvalidMode)
			return
		}
		mode = parsed
	}

	document, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_UPLOAD", "could not read uploaded file")
		return
	}

	// Magic-byte content type check; the extension alone is not trusted.
	sniffLen := len(document)
	if sniffLen > 512 {
		sniffLen = 512
	}
	detectedType := http.DetectContentType(document[:sniffLen])
	if _, ok := domain.AllowedContentTypes[detectedType]; !ok {
		HandleError(c, domain.ErrUnsupportedFileType)
		return
	}

	record, err := h.analysisService.Analyze(c.Request.Context(), service.AnalyzeInput{
		Document:   document,
		Credential: c.GetHeader("X-API-Key"),
		Mode:       mode,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, toAnalysisResponse(record, mode))
}
