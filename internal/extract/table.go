package extract

import (
	"strings"

	"cargodocs/internal/domain"
)

// isContinuationRow reports whether a row is a wrapped description line: more
// than one cell, a non-blank first cell, and every other cell blank.
func isContinuationRow(cells []string) bool {
	if len(cells) <= 1 {
		return false
	}
	if strings.TrimSpace(cells[0]) == "" {
		return false
	}
	for _, c := range cells[1:] {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// MergeContinuationRows folds continuation rows into their parent rows.
// Each non-continuation row absorbs all immediately-following continuation
// rows: their first-cell text is appended to the parent's first cell with a
// " - " separator, and the parent's confidence drops to the minimum across
// the group. A leading continuation-shaped row has nothing to absorb into and
// is preserved unmodified. Row order is preserved; absorbed rows disappear.
func MergeContinuationRows(rows []domain.TableRow) []domain.TableRow {
	if len(rows) <= 1 {
		return rows
	}

	merged := make([]domain.TableRow, 0, len(rows))
	i := 0
	for i < len(rows) {
		cells := make([]string, len(rows[i].Cells))
		copy(cells, rows[i].Cells)
		conf := rows[i].RowConfidence

		j := i + 1
		for j < len(rows) && isContinuationRow(rows[j].Cells) {
			contText := strings.TrimSpace(rows[j].Cells[0])
			if contText != "" && len(cells) > 0 {
				cells[0] = cells[0] + " - " + contText
			}
			if rows[j].RowConfidence < conf {
				conf = rows[j].RowConfidence
			}
			j++
		}

		merged = append(merged, domain.TableRow{Cells: cells, RowConfidence: conf})
		i = j
	}
	return merged
}

// NormalizeRowCells forces every row to exactly len(headers) cells: short
// rows are right-padded with empty strings, long rows keep their first H-1
// cells and join the overflow into the final cell with " | " (skipping empty
// overflow cells). With zero headers rows pass through unchanged.
func NormalizeRowCells(headers []string, rows []domain.TableRow) []domain.TableRow {
	h := len(headers)
	if h == 0 {
		return rows
	}

	normalized := make([]domain.TableRow, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(row.Cells))
		copy(cells, row.Cells)

		switch {
		case len(cells) < h:
			for len(cells) < h {
				cells = append(cells, "")
			}
		case len(cells) > h:
			var overflow []string
			for _, c := range cells[h-1:] {
				if c != "" {
					overflow = append(overflow, c)
				}
			}
			cells = append(cells[:h-1:h-1], strings.Join(overflow, " | "))
		}

		normalized = append(normalized, domain.TableRow{Cells: cells, RowConfidence: row.RowConfidence})
	}
	return normalized
}
