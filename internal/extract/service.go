package extract

import (
	"context"
	"fmt"
	"log"

	"cargodocs/internal/config"
	"cargodocs/internal/domain"
	"cargodocs/internal/port"
	"cargodocs/internal/schema"
)

const defaultMaxRetries = 2

// Service drives the extraction pipeline: render pages, call the model with
// a bounded repair-retry loop, and assemble the canonical response. Failures
// never escape as errors; they surface as responses carrying only
// extraction_error.
type Service struct {
	renderer             port.PageRenderer
	caller               port.ModelCaller
	maxRetries           int
	mergeMultipageTables bool
}

// NewService creates an extraction Service.
func NewService(renderer port.PageRenderer, caller port.ModelCaller, cfg *config.ExtractConfig) *Service {
	maxRetries := defaultMaxRetries
	if cfg != nil && cfg.MaxRetries > 0 {
		maxRetries = cfg.MaxRetries
	}
	merge := false
	if cfg != nil {
		merge = cfg.MergeMultipageTables
	}
	return &Service{
		renderer:             renderer,
		caller:               caller,
		maxRetries:           maxRetries,
		mergeMultipageTables: merge,
	}
}

// Extract runs the full pipeline for one document. Attempts are strictly
// sequential: each repair prompt depends on the previous attempt's
// validation error.
func (s *Service) Extract(ctx context.Context, fileBytes []byte, contentType string) *domain.ExtractionResponse {
	pages, err := s.renderer.Render(ctx, fileBytes, contentType)
	if err != nil {
		log.Printf("extract.Service: page rendering failed: %v", err)
		return domain.NewErrorResponse("failed to render document pages")
	}
	if len(pages) == 0 {
		return domain.NewErrorResponse("failed to render document pages")
	}
	log.Printf("extract.Service: rendered %d page image(s)", len(pages))

	var lastErr string
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		prompt := BuildExtractionPrompt(s.mergeMultipageTables)
		if attempt > 0 {
			prompt = BuildRepairPrompt(lastErr)
		}

		completion, err := s.caller.Complete(ctx, pages, prompt)
		if err != nil {
			// Upstream fault, not malformed output: report immediately.
			log.Printf("extract.Service: model call failed: %v", err)
			return domain.NewErrorResponse(fmt.Sprintf("model call failed: %v", err))
		}

		raw, err := schema.ParseAndValidate(completion)
		if err != nil {
			lastErr = err.Error()
			log.Printf("extract.Service: attempt %d produced invalid output: %v", attempt, err)
			continue
		}

		return AssembleResponse(raw)
	}

	return domain.NewErrorResponse(fmt.Sprintf(
		"failed to extract valid JSON after %d attempts. Last error: %s",
		s.maxRetries+1, lastErr,
	))
}
