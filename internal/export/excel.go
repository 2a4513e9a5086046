// Package export renders a canonical extraction result as an XLSX workbook:
// a summary sheet with canonical fields and identifiers, one sheet per
// reconciled table, and a line items sheet when the document has line items.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"cargodocs/internal/domain"
)

const summarySheet = "Summary"

// BuildWorkbook converts an extraction response into an XLSX workbook.
func BuildWorkbook(resp *domain.ExtractionResponse) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("renaming summary sheet: %w", err)
	}

	if err := writeSummary(f, resp); err != nil {
		return nil, err
	}

	for i, table := range resp.Tables {
		if err := writeTable(f, i, table); err != nil {
			return nil, err
		}
	}

	if resp.LineItems != nil {
		if err := writeLineItems(f, resp.LineItems); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func writeSummary(f *excelize.File, resp *domain.ExtractionResponse) error {
	rows := [][]interface{}{
		{"Field", "Value", "Model Confidence", "Final Confidence", "Badge"},
		{"Document Type", string(resp.DocumentType), nil, nil, nil},
	}

	fields := []struct {
		label string
		field *domain.CanonicalField
	}{
		{"Bill of Lading Number", resp.BillOfLadingNumber},
		{"Invoice Number", resp.InvoiceNumber},
		{"Shipper Name", resp.ShipperName},
		{"Shipper Address", resp.ShipperAddress},
		{"Consignee Name", resp.ConsigneeName},
		{"Consignee Address", resp.ConsigneeAddress},
		{"Total Value of Goods", resp.TotalValueOfGoods},
	}
	for _, entry := range fields {
		if entry.field == nil {
			continue
		}
		rows = append(rows, []interface{}{
			entry.label,
			entry.field.Value,
			entry.field.ModelConfidence,
			entry.field.FinalConfidence,
			string(entry.field.Badge),
		})
	}

	if len(resp.Identifiers) > 0 {
		rows = append(rows, []interface{}{})
		rows = append(rows, []interface{}{"Identifier Type", "Value", "Model Confidence", "Final Confidence", "Badge"})
		for _, id := range resp.Identifiers {
			rows = append(rows, []interface{}{
				string(id.Type),
				id.Value,
				id.ModelConfidence,
				id.FinalConfidence,
				string(id.Badge),
			})
		}
	}

	return writeRows(f, summarySheet, rows)
}

func writeTable(f *excelize.File, idx int, table domain.Table) error {
	sheet := fmt.Sprintf("Table %d", idx+1)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %q: %w", sheet, err)
	}

	title := table.TableID
	if table.Title != nil && *table.Title != "" {
		title = *table.Title
	}

	rows := [][]interface{}{{title}}
	if len(table.Headers) > 0 {
		header := make([]interface{}, len(table.Headers))
		for i, h := range table.Headers {
			header[i] = h
		}
		rows = append(rows, header)
	}
	for _, row := range table.Rows {
		cells := make([]interface{}, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = c
		}
		rows = append(rows, cells)
	}

	return writeRows(f, sheet, rows)
}

func writeLineItems(f *excelize.File, items []domain.LineItem) error {
	const sheet = "Line Items"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %q: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Description", "Quantity", "Unit", "Unit Value", "Total Value", "HTS Code", "Model Confidence"},
	}
	for _, it := range items {
		rows = append(rows, []interface{}{
			strOrEmpty(it.Description),
			floatOrNil(it.Quantity),
			strOrEmpty(it.Unit),
			floatOrNil(it.UnitValue),
			floatOrNil(it.TotalValue),
			strOrEmpty(it.HTSCode),
			it.ModelConfidence,
		})
	}

	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("writing cell %s on %q: %w", cell, sheet, err)
			}
		}
	}
	return nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrNil(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
