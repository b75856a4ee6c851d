package handler

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/examgen/examgen_go_server/config"
	"github.com/examgen/examgen_go_server/internal/api/middleware"
	"github.com/examgen/examgen_go_server/internal/model/dto"
	"github.com/examgen/examgen_go_server/internal/pkg/extract"
	"github.com/examgen/examgen_go_server/internal/pkg/response"
	"github.com/examgen/examgen_go_server/internal/service"
)

type GenerateHandler struct {
	generationService *service.GenerationService
	exportService     *service.ExportService
	cfg               *config.Config
}

func NewGenerateHandler(generationService *service.GenerationService, exportService *service.ExportService, cfg *config.Config) *GenerateHandler {
	return &GenerateHandler{
		generationService: generationService,
		exportService:     exportService,
		cfg:               cfg,
	}
}

// Generate produces a question paper from pasted text or an uploaded
// document. Anonymous callers get the free-tier ceilings.
// POST /api/v1/generate
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if file, header, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()

		if header.Size > h.cfg.Upload.MaxSize {
			response.ParamError(c, "file too large")
			return
		}
		if !extract.Supported(header.Filename) {
			response.ParamError(c, "only .txt, .pdf and .docx files are supported")
			return
		}

		text, err := h.extractUpload(file, header.Filename)
		if err != nil {
			switch {
			case errors.Is(err, extract.ErrEmptyDocument):
				response.ParamError(c, err.Error())
			case errors.Is(err, extract.ErrUnsupportedType):
				response.ParamError(c, err.Error())
			default:
				response.ServerError(c, "failed to read uploaded document")
			}
			return
		}
		req.InputText = text
	}

	var userID *int64
	if id, ok := middleware.GetUserID(c); ok {
		userID = &id
	}

	resp, err := h.generationService.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyInput),
			errors.Is(err, service.ErrNothingToDo),
			errors.Is(err, service.ErrNegativeCount):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrQuotaExceeded):
			response.QuotaError(c, err.Error())
		case errors.Is(err, service.ErrGenerationFailed):
			response.ServerError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, resp)
}

// Export renders previously generated questions as a plain-text paper
// and uploads it to object storage. Paid subscribers only.
// POST /api/v1/generate/export
func (h *GenerateHandler) Export(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.exportService.Export(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNotAllowed):
			response.PermissionError(c, err.Error())
		case errors.Is(err, service.ErrNothingToExport):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrExportUnavailable):
			response.ServerError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, resp)
}

// extractUpload spools the upload to the temp dir and runs text
// extraction on it. The temp file is removed before returning.
func (h *GenerateHandler) extractUpload(file io.Reader, filename string) (string, error) {
	tempDir := h.cfg.Upload.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return "", err
	}

	tempFile, err := os.CreateTemp(tempDir, "upload-*"+filepath.Ext(filename))
	if err != nil {
		return "", err
	}
	defer os.Remove(tempFile.Name())

	if _, err := io.Copy(tempFile, file); err != nil {
		tempFile.Close()
		return "", err
	}
	if err := tempFile.Close(); err != nil {
		return "", err
	}

	return extract.FromFile(tempFile.Name())
}
