// Package poppler renders PDF pages to images by shelling out to pdftoppm.
package poppler

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"cargodocs/internal/config"
	"cargodocs/internal/port"
)

// Renderer implements port.PageRenderer using the poppler pdftoppm tool.
// Image uploads pass through unchanged as a single page.
type Renderer struct {
	dpi      int
	maxPages int
}

// NewRenderer creates a Renderer from render settings.
func NewRenderer(cfg *config.RenderConfig) *Renderer {
	dpi := cfg.DPI
	if dpi <= 0 {
		dpi = 150
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 5
	}
	return &Renderer{dpi: dpi, maxPages: maxPages}
}

func (r *Renderer) Render(ctx context.Context, fileBytes []byte, contentType string) ([]port.PageImage, error) {
	switch contentType {
	case "image/jpeg", "image/png":
		return []port.PageImage{{Data: fileBytes, ContentType: contentType}}, nil
	case "application/pdf":
		return r.renderPDF(ctx, fileBytes)
	default:
		return nil, fmt.Errorf("unsupported content type for rendering: %s", contentType)
	}
}

func (r *Renderer) renderPDF(ctx context.Context, fileBytes []byte) ([]port.PageImage, error) {
	workDir, err := os.MkdirTemp("", "cargodocs-render-*")
	if err != nil {
		return nil, fmt.Errorf("creating work dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	pdfPath := filepath.Join(workDir, "document.pdf")
	if err := os.WriteFile(pdfPath, fileBytes, 0o600); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}

	prefix := filepath.Join(workDir, "page")
	args := []string{
		"-png",
		"-r", strconv.Itoa(r.dpi),
		"-f", "1",
		"-l", strconv.Itoa(r.maxPages),
		pdfPath,
		prefix,
	}
	cmd := exec.CommandContext(ctx, "pdftoppm", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %v: %s", err, strings.TrimSpace(string(out)))
	}

	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no rendered pages found")
	}
	sort.Slice(matches, func(i, j int) bool {
		return pageIndexFromName(matches[i]) < pageIndexFromName(matches[j])
	})

	images := make([]port.PageImage, 0, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading rendered page: %w", err)
		}
		images = append(images, port.PageImage{Data: data, ContentType: "image/png"})
	}
	return images, nil
}

func pageIndexFromName(path string) int {
	base := filepath.Base(path)
	idx := strings.LastIndex(base, "-")
	if idx >= 0 {
		number := strings.TrimSuffix(base[idx+1:], ".png")
		if v, err := strconv.Atoi(number); err == nil {
			return v
		}
	}
	return 0
}
