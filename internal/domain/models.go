package domain

// CanonicalField is one of the seven fixed document attributes, scored and
// badged. It is immutable once assembled; an absent field is represented by a
// nil *CanonicalField on the response, never by a zero-confidence value.
type CanonicalField struct {
	Value           string          `json:"value"`
	ModelConfidence float64         `json:"model_confidence"`
	FinalConfidence int             `json:"final_confidence"`
	Badge           ConfidenceBadge `json:"badge"`
}

// Identifier is a typed document reference number with confidence scoring.
type Identifier struct {
	Type            IdentifierType  `json:"type"`
	Value           string          `json:"value"`
	ModelConfidence float64         `json:"model_confidence"`
	FinalConfidence int             `json:"final_confidence"`
	Badge           ConfidenceBadge `json:"badge"`
}

// TableRow is an ordered sequence of cells. Cells are normalized to empty
// strings before leaving the pipeline, so they are plain strings here.
type TableRow struct {
	Cells         []string `json:"cells"`
	RowConfidence float64  `json:"row_confidence"`
}

// Table is a reconciled document table. After reconciliation every row has
// exactly len(Headers) cells, unless Headers is empty in which case rows are
// passed through unmodified.
type Table struct {
	TableID        string      `json:"table_id"`
	Title          *string     `json:"title"`
	Headers        []string    `json:"headers"`
	Rows           []TableRow  `json:"rows"`
	CellConfidence [][]float64 `json:"cell_confidence,omitempty"`
}

// LineItem is a commercial line item. It is copied through from the raw
// output without confidence scoring.
type LineItem struct {
	Description     *string  `json:"description"`
	Quantity        *float64 `json:"quantity"`
	Unit            *string  `json:"unit"`
	UnitValue       *float64 `json:"unit_value"`
	TotalValue      *float64 `json:"total_value"`
	HTSCode         *string  `json:"hts_code"`
	ModelConfidence float64  `json:"model_confidence"`
}

// ExtractionResponse is the canonical extraction result returned to callers.
// A non-empty ExtractionError is the sole terminal-failure signal: when it is
// set, every other field holds its default value.
type ExtractionResponse struct {
	DocumentType DocumentType `json:"document_type"`

	BillOfLadingNumber *CanonicalField `json:"bill_of_lading_number"`
	InvoiceNumber      *CanonicalField `json:"invoice_number"`
	ShipperName        *CanonicalField `json:"shipper_name"`
	ShipperAddress     *CanonicalField `json:"shipper_address"`
	ConsigneeName      *CanonicalField `json:"consignee_name"`
	ConsigneeAddress   *CanonicalField `json:"consignee_address"`
	TotalValueOfGoods  *CanonicalField `json:"total_value_of_goods"`

	Identifiers []Identifier `json:"identifiers"`
	Tables      []Table      `json:"tables"`
	// LineItems is nil when the model reported no line items, which is
	// distinct from an empty list.
	LineItems []LineItem `json:"line_items"`

	ExtractionError string `json:"extraction_error,omitempty"`
}

// NewErrorResponse builds a terminal-failure response carrying only the
// extraction error; all other fields are defaults.
func NewErrorResponse(msg string) *ExtractionResponse {
	return &ExtractionResponse{
		DocumentType:    DocTypeUnknown,
		Identifiers:     []Identifier{},
		Tables:          []Table{},
		ExtractionError: msg,
	}
}
