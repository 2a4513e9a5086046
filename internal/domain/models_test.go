package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cargodocs/internal/domain"
)

func TestNewErrorResponse(t *testing.T) {
	resp := domain.NewErrorResponse("model call failed: timeout")

	assert.Equal(t, domain.DocTypeUnknown, resp.DocumentType)
	assert.Equal(t, "model call failed: timeout", resp.ExtractionError)
	assert.Empty(t, resp.Identifiers)
	assert.Empty(t, resp.Tables)
	assert.Nil(t, resp.BillOfLadingNumber)
}

func TestExtractionResponse_LineItemsJSONNullVsEmpty(t *testing.T) {
	withNil, err := json.Marshal(&domain.ExtractionResponse{DocumentType: domain.DocTypeBOL})
	require.NoError(t, err)
	assert.Contains(t, string(withNil), `"line_items":null`)

	withEmpty, err := json.Marshal(&domain.ExtractionResponse{
		DocumentType: domain.DocTypeBOL,
		LineItems:    []domain.LineItem{},
	})
	require.NoError(t, err)
	assert.Contains(t, string(withEmpty), `"line_items":[]`)
}

func TestExtractionResponse_ErrorOmittedWhenEmpty(t *testing.T) {
	b, err := json.Marshal(&domain.ExtractionResponse{DocumentType: domain.DocTypeBOL})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "extraction_error")
}

func TestParseDocumentType(t *testing.T) {
	assert.Equal(t, domain.DocTypeBOL, domain.ParseDocumentType("BOL"))
	assert.Equal(t, domain.DocTypePackingList, domain.ParseDocumentType("PACKING_LIST"))
	assert.Equal(t, domain.DocTypeUnknown, domain.ParseDocumentType("RECEIPT"))
	assert.Equal(t, domain.DocTypeUnknown, domain.ParseDocumentType(""))
}

func TestParseIdentifierType(t *testing.T) {
	assert.Equal(t, domain.IdentifierMasterBOL, domain.ParseIdentifierType("MASTER_BOL_MBL"))
	assert.Equal(t, domain.IdentifierOther, domain.ParseIdentifierType("FRIENDLY_NAME"))
}
