package handler

import (
	"context"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"cargodocs/internal/config"
	"cargodocs/internal/domain"
	"cargodocs/internal/export"
)

// Extractor runs the extraction pipeline for one uploaded document.
type Extractor interface {
	Extract(ctx context.Context, fileBytes []byte, contentType string) *domain.ExtractionResponse
}

// ExtractHandler handles document extraction endpoints.
type ExtractHandler struct {
	extractor   Extractor
	maxFileSize int64
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractor Extractor, cfg *config.UploadConfig) *ExtractHandler {
	maxMB := cfg.MaxFileSizeMB
	if maxMB <= 0 {
		maxMB = 20
	}
	return &ExtractHandler{
		extractor:   extractor,
		maxFileSize: maxMB * 1024 * 1024,
	}
}

// Extract handles POST /api/v1/extract: accepts a multipart upload (PDF, JPG,
// or PNG) and returns the canonical extraction response. Pipeline failures
// surface inside the response as extraction_error, not as HTTP errors.
func (h *ExtractHandler) Extract(c *gin.Context) {
	data, contentType, ok := h.readUpload(c)
	if !ok {
		return
	}

	resp := h.extractor.Extract(c.Request.Context(), data, contentType)
	RespondOK(c, resp)
}

// Export handles POST /api/v1/extract/export: runs the same pipeline and
// streams the result as an XLSX workbook.
func (h *ExtractHandler) Export(c *gin.Context) {
	data, contentType, ok := h.readUpload(c)
	if !ok {
		return
	}

	resp := h.extractor.Extract(c.Request.Context(), data, contentType)
	if resp.ExtractionError != "" {
		RespondError(c, http.StatusBadGateway, "EXTRACTION_FAILED", resp.ExtractionError)
		return
	}

	workbook, err := export.BuildWorkbook(resp)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="extraction.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		// Headers are already sent; the client sees a truncated download.
		log.Printf("handler.ExtractHandler: writing workbook: %v", err)
	}
}

// readUpload pulls the multipart file out of the request and enforces the
// type allowlist and size limit. Returns ok=false after writing an error
// response.
func (h *ExtractHandler) readUpload(c *gin.Context) (data []byte, contentType string, ok bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		HandleError(c, domain.ErrMissingFile)
		return nil, "", false
	}
	defer func() { _ = file.Close() }()

	contentType, err = resolveContentType(header)
	if err != nil {
		HandleError(c, err)
		return nil, "", false
	}

	if header.Size > h.maxFileSize {
		HandleError(c, domain.ErrFileTooLarge)
		return nil, "", false
	}

	data, err = io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		HandleError(c, err)
		return nil, "", false
	}
	if int64(len(data)) > h.maxFileSize {
		HandleError(c, domain.ErrFileTooLarge)
		return nil, "", false
	}

	return data, contentType, true
}

// resolveContentType picks the upload's MIME type from the part header,
// falling back to the file extension, and rejects anything outside the
// allowlist.
func resolveContentType(header *multipart.FileHeader) (string, error) {
	contentType := header.Header.Get("Content-Type")
	if _, allowed := domain.AllowedContentTypes[contentType]; allowed {
		return contentType, nil
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if byExt, allowed := domain.AllowedExtensions[ext]; allowed {
		return byExt, nil
	}

	return "", domain.ErrUnsupportedFileType
}
