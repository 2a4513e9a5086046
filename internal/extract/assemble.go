package extract

import (
	"fmt"

	"cargodocs/internal/confidence"
	"cargodocs/internal/domain"
	"cargodocs/internal/schema"
)

const defaultModelConfidence = 0.5

// AssembleResponse transforms a validated raw extraction into the canonical
// response: canonical fields are confidence-scored (absent values stay
// absent), identifiers are tag-resolved and scored, tables are reconciled,
// and line items are copied through.
func AssembleResponse(raw *schema.RawExtractionOutput) *domain.ExtractionResponse {
	resp := &domain.ExtractionResponse{
		DocumentType: domain.ParseDocumentType(raw.DocumentType),

		BillOfLadingNumber: makeCanonicalField("bill_of_lading_number", raw.BillOfLadingNumber, raw.BillOfLadingNumberConfidence),
		InvoiceNumber:      makeCanonicalField("invoice_number", raw.InvoiceNumber, raw.InvoiceNumberConfidence),
		ShipperName:        makeCanonicalField("shipper_name", raw.ShipperName, raw.ShipperNameConfidence),
		ShipperAddress:     makeCanonicalField("shipper_address", raw.ShipperAddress, raw.ShipperAddressConfidence),
		ConsigneeName:      makeCanonicalField("consignee_name", raw.ConsigneeName, raw.ConsigneeNameConfidence),
		ConsigneeAddress:   makeCanonicalField("consignee_address", raw.ConsigneeAddress, raw.ConsigneeAddressConfidence),
		TotalValueOfGoods:  makeCanonicalField("total_value_of_goods", raw.TotalValueOfGoods, raw.TotalValueOfGoodsConfidence),

		Identifiers: assembleIdentifiers(raw.Identifiers),
		Tables:      assembleTables(raw.Tables),
		LineItems:   assembleLineItems(raw.LineItems),
	}
	return resp
}

// makeCanonicalField scores a present value, or returns nil for an absent
// one: "not present" must stay distinguishable from "present, low confidence".
func makeCanonicalField(fieldName string, value *string, modelConfidence float64) *domain.CanonicalField {
	if value == nil {
		return nil
	}
	final, badge := confidence.ScoreCanonicalField(fieldName, value, modelConfidence)
	return &domain.CanonicalField{
		Value:           *value,
		ModelConfidence: modelConfidence,
		FinalConfidence: final,
		Badge:           badge,
	}
}

func assembleIdentifiers(raw []schema.RawIdentifier) []domain.Identifier {
	identifiers := make([]domain.Identifier, 0, len(raw))
	for _, id := range raw {
		idType := domain.ParseIdentifierType(id.Type)
		modelConf := defaultModelConfidence
		if id.ModelConfidence != nil {
			modelConf = *id.ModelConfidence
		}
		final, badge := confidence.ScoreIdentifier(idType, id.Value, modelConf)
		identifiers = append(identifiers, domain.Identifier{
			Type:            idType,
			Value:           id.Value,
			ModelConfidence: modelConf,
			FinalConfidence: final,
			Badge:           badge,
		})
	}
	return identifiers
}

func assembleTables(raw []schema.RawTable) []domain.Table {
	tables := make([]domain.Table, 0, len(raw))
	for idx, t := range raw {
		headers := make([]string, 0, len(t.Headers))
		for _, h := range t.Headers {
			headers = append(headers, deref(h))
		}

		rows := make([]domain.TableRow, 0, len(t.Rows))
		for _, r := range t.Rows {
			cells := make([]string, 0, len(r.Cells))
			for _, c := range r.Cells {
				cells = append(cells, deref(c))
			}
			rowConf := defaultModelConfidence
			if r.RowConfidence != nil {
				rowConf = *r.RowConfidence
			}
			rows = append(rows, domain.TableRow{Cells: cells, RowConfidence: rowConf})
		}

		rows = MergeContinuationRows(rows)
		rows = NormalizeRowCells(headers, rows)

		tableID := t.TableID
		if tableID == "" {
			tableID = fmt.Sprintf("table_%d", idx)
		}

		tables = append(tables, domain.Table{
			TableID:        tableID,
			Title:          t.Title,
			Headers:        headers,
			Rows:           rows,
			CellConfidence: t.CellConfidence,
		})
	}
	return tables
}

func assembleLineItems(raw []schema.RawLineItem) []domain.LineItem {
	if raw == nil {
		return nil
	}
	items := make([]domain.LineItem, 0, len(raw))
	for _, it := range raw {
		modelConf := defaultModelConfidence
		if it.ModelConfidence != nil {
			modelConf = *it.ModelConfidence
		}
		items = append(items, domain.LineItem{
			Description:     it.Description,
			Quantity:        it.Quantity,
			Unit:            it.Unit,
			UnitValue:       it.UnitValue,
			TotalValue:      it.TotalValue,
			HTSCode:         it.HTSCode,
			ModelConfidence: modelConf,
		})
	}
	return items
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
