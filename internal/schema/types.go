package schema

// RawExtractionOutput is the permissive, defaulted contract for what the
// vision model must produce. It is decoded only after the payload passes
// JSON-Schema validation; nil pointers mark values the model omitted so the
// assembler can apply defaults.
type RawExtractionOutput struct {
	DocumentType string `json:"document_type"`

	BillOfLadingNumber           *string `json:"bill_of_lading_number"`
	BillOfLadingNumberConfidence float64 `json:"bill_of_lading_number_confidence"`

	InvoiceNumber           *string `json:"invoice_number"`
	InvoiceNumberConfidence float64 `json:"invoice_number_confidence"`

	ShipperName           *string `json:"shipper_name"`
	ShipperNameConfidence float64 `json:"shipper_name_confidence"`

	ShipperAddress           *string `json:"shipper_address"`
	ShipperAddressConfidence float64 `json:"shipper_address_confidence"`

	ConsigneeName           *string `json:"consignee_name"`
	ConsigneeNameConfidence float64 `json:"consignee_name_confidence"`

	ConsigneeAddress           *string `json:"consignee_address"`
	ConsigneeAddressConfidence float64 `json:"consignee_address_confidence"`

	TotalValueOfGoods           *string `json:"total_value_of_goods"`
	TotalValueOfGoodsConfidence float64 `json:"total_value_of_goods_confidence"`

	Identifiers []RawIdentifier `json:"identifiers"`
	Tables      []RawTable      `json:"tables"`
	// LineItems stays nil when the model reports no line items.
	LineItems []RawLineItem `json:"line_items"`
}

// RawIdentifier is an untyped identifier entry as emitted by the model.
type RawIdentifier struct {
	Type            string   `json:"type"`
	Value           string   `json:"value"`
	ModelConfidence *float64 `json:"model_confidence"`
}

// RawTable is a table as emitted by the model. Headers and cells may be null.
type RawTable struct {
	TableID        string      `json:"table_id"`
	Title          *string     `json:"title"`
	Headers        []*string   `json:"headers"`
	Rows           []RawRow    `json:"rows"`
	CellConfidence [][]float64 `json:"cell_confidence"`
}

// RawRow is a table row as emitted by the model.
type RawRow struct {
	Cells         []*string `json:"cells"`
	RowConfidence *float64  `json:"row_confidence"`
}

// RawLineItem is a line item as emitted by the model.
type RawLineItem struct {
	Description     *string  `json:"description"`
	Quantity        *float64 `json:"quantity"`
	Unit            *string  `json:"unit"`
	UnitValue       *float64 `json:"unit_value"`
	TotalValue      *float64 `json:"total_value"`
	HTSCode         *string  `json:"hts_code"`
	ModelConfidence *float64 `json:"model_confidence"`
}
