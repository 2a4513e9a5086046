package extract_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cargodocs/internal/config"
	"cargodocs/internal/domain"
	"cargodocs/internal/extract"
	"cargodocs/internal/port"
	"cargodocs/mocks"
)

var testPages = []port.PageImage{{Data: []byte("png-bytes"), ContentType: "image/png"}}

func newRendererReturning(pages []port.PageImage, err error) *mocks.MockPageRenderer {
	renderer := new(mocks.MockPageRenderer)
	renderer.On("Render", mock.Anything, mock.Anything, mock.Anything).Return(pages, err)
	return renderer
}

func TestService_Extract_Success(t *testing.T) {
	renderer := newRendererReturning(testPages, nil)
	caller := new(mocks.MockModelCaller)
	caller.On("Complete", mock.Anything, testPages, mock.Anything).
		Return(`{"document_type": "BOL", "bill_of_lading_number": "MAEU1234567", "bill_of_lading_number_confidence": 0.95}`, nil).
		Once()

	svc := extract.NewService(renderer, caller, &config.ExtractConfig{MaxRetries: 2})
	resp := svc.Extract(context.Background(), []byte("%PDF"), "application/pdf")

	assert.Empty(t, resp.ExtractionError)
	assert.Equal(t, domain.DocTypeBOL, resp.DocumentType)
	require.NotNil(t, resp.BillOfLadingNumber)
	assert.Equal(t, "MAEU1234567", resp.BillOfLadingNumber.Value)
	caller.AssertExpectations(t)
}

func TestService_Extract_RepairsAfterInvalidOutput(t *testing.T) {
	renderer := newRendererReturning(testPages, nil)
	caller := new(mocks.MockModelCaller)
	caller.On("Complete", mock.Anything, testPages, mock.Anything).
		Return("this is not json", nil).
		Once()
	caller.On("Complete", mock.Anything, testPages, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "previous extraction attempt")
	})).
		Return(`{"document_type": "PACKING_LIST"}`, nil).
		Once()

	svc := extract.NewService(renderer, caller, &config.ExtractConfig{MaxRetries: 2})
	resp := svc.Extract(context.Background(), []byte("%PDF"), "application/pdf")

	assert.Empty(t, resp.ExtractionError)
	assert.Equal(t, domain.DocTypePackingList, resp.DocumentType)
	caller.AssertExpectations(t)
}

func TestService_Extract_RepairPromptCarriesValidationError(t *testing.T) {
	renderer := newRendererReturning(testPages, nil)
	caller := new(mocks.MockModelCaller)

	var repairPrompt string
	caller.On("Complete", mock.Anything, testPages, mock.Anything).
		Return(`{"document_type": "BOL", "invoice_number_confidence": 3.0}`, nil).
		Once()
	caller.On("Complete", mock.Anything, testPages, mock.Anything).
		Run(func(args mock.Arguments) { repairPrompt = args.String(2) }).
		Return(`{"document_type": "BOL"}`, nil).
		Once()

	svc := extract.NewService(renderer, caller, &config.ExtractConfig{MaxRetries: 2})
	resp := svc.Extract(context.Background(), []byte("%PDF"), "application/pdf")

	assert.Empty(t, resp.ExtractionError)
	assert.Contains(t, repairPrompt, "does not match schema")
}

func TestService_Extract_ExhaustsRetries(t *testing.T) {
	renderer := newRendererReturning(testPages, nil)
	caller := new(mocks.MockModelCaller)
	caller.On("Complete", mock.Anything, testPages, mock.Anything).
		Return("still not json", nil).
		Times(3)

	svc := extract.NewService(renderer, caller, &config.ExtractConfig{MaxRetries: 2})
	resp := svc.Extract(context.Background(), []byte("%PDF"), "application/pdf")

	assert.Contains(t, resp.ExtractionError, "failed to extract valid JSON after 3 attempts")
	assert.Contains(t, resp.ExtractionError, "Last error:")
	assert.Equal(t, domain.DocTypeUnknown, resp.DocumentType)
	caller.AssertExpectations(t)
}

func TestService_Extract_ModelErrorFailsFast(t *testing.T) {
	renderer := newRendererReturning(testPages, nil)
	caller := new(mocks.MockModelCaller)
	caller.On("Complete", mock.Anything, testPages, mock.Anything).
		Return("", errors.New("upstream unavailable")).
		Once()

	svc := extract.NewService(renderer, caller, &config.ExtractConfig{MaxRetries: 2})
	resp := svc.Extract(context.Background(), []byte("%PDF"), "application/pdf")

	// Transport faults are not repairable by re-prompting.
	assert.Contains(t, resp.ExtractionError, "model call failed")
	caller.AssertNumberOfCalls(t, "Complete", 1)
}

func TestService_Extract_RenderFailure(t *testing.T) {
	renderer := newRendererReturning(nil, errors.New("pdftoppm exploded"))
	caller := new(mocks.MockModelCaller)

	svc := extract.NewService(renderer, caller, &config.ExtractConfig{MaxRetries: 2})
	resp := svc.Extract(context.Background(), []byte("%PDF"), "application/pdf")

	assert.Equal(t, "failed to render document pages", resp.ExtractionError)
	caller.AssertNumberOfCalls(t, "Complete", 0)
}

func TestService_Extract_ZeroPages(t *testing.T) {
	renderer := newRendererReturning([]port.PageImage{}, nil)
	caller := new(mocks.MockModelCaller)

	svc := extract.NewService(renderer, caller, &config.ExtractConfig{MaxRetries: 2})
	resp := svc.Extract(context.Background(), []byte("%PDF"), "application/pdf")

	assert.Equal(t, "failed to render document pages", resp.ExtractionError)
	caller.AssertNumberOfCalls(t, "Complete", 0)
}
