package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cargodocs/internal/domain"
	"cargodocs/internal/extract"
)

func row(conf float64, cells ...string) domain.TableRow {
	return domain.TableRow{Cells: cells, RowConfidence: conf}
}

func TestMergeContinuationRows_WrappedDescription(t *testing.T) {
	rows := []domain.TableRow{
		row(0.9, "148536001", "20", "7.91", "$158.10"),
		row(0.8, "SCREW 4.37", "", "", ""),
	}

	merged := extract.MergeContinuationRows(rows)

	require.Len(t, merged, 1)
	assert.Equal(t, []string{"148536001 - SCREW 4.37", "20", "7.91", "$158.10"}, merged[0].Cells)
	assert.Equal(t, 0.8, merged[0].RowConfidence)
}

func TestMergeContinuationRows_MultipleContinuations(t *testing.T) {
	rows := []domain.TableRow{
		row(0.9, "PART-1", "10"),
		row(0.7, "line two", ""),
		row(0.85, "line three", ""),
		row(0.95, "PART-2", "5"),
	}

	merged := extract.MergeContinuationRows(rows)

	require.Len(t, merged, 2)
	assert.Equal(t, "PART-1 - line two - line three", merged[0].Cells[0])
	assert.Equal(t, 0.7, merged[0].RowConfidence)
	assert.Equal(t, "PART-2", merged[1].Cells[0])
	assert.Equal(t, 0.95, merged[1].RowConfidence)
}

func TestMergeContinuationRows_LeadingContinuationPreserved(t *testing.T) {
	rows := []domain.TableRow{
		row(0.6, "orphan text", ""),
		row(0.9, "PART-1", "10"),
	}

	merged := extract.MergeContinuationRows(rows)

	// Nothing precedes the orphan, so it stays a row of its own.
	require.Len(t, merged, 2)
	assert.Equal(t, []string{"orphan text", ""}, merged[0].Cells)
}

func TestMergeContinuationRows_SingleCellRowsNeverMerge(t *testing.T) {
	rows := []domain.TableRow{
		row(0.9, "only"),
		row(0.8, "also only"),
	}

	merged := extract.MergeContinuationRows(rows)

	require.Len(t, merged, 2)
}

func TestMergeContinuationRows_BlankFirstCellNotContinuation(t *testing.T) {
	rows := []domain.TableRow{
		row(0.9, "PART-1", "10"),
		row(0.8, "", ""),
	}

	merged := extract.MergeContinuationRows(rows)

	require.Len(t, merged, 2)
	assert.Equal(t, "PART-1", merged[0].Cells[0])
}

func TestMergeContinuationRows_Idempotent(t *testing.T) {
	rows := []domain.TableRow{
		row(0.9, "148536001", "20", "7.91", "$158.10"),
		row(0.8, "SCREW 4.37", "", "", ""),
	}

	once := extract.MergeContinuationRows(rows)
	twice := extract.MergeContinuationRows(once)

	assert.Equal(t, once, twice)
}

func TestMergeContinuationRows_DoesNotMutateInput(t *testing.T) {
	rows := []domain.TableRow{
		row(0.9, "PART-1", "10"),
		row(0.8, "more", ""),
	}

	_ = extract.MergeContinuationRows(rows)

	assert.Equal(t, "PART-1", rows[0].Cells[0])
}

func TestNormalizeRowCells_PadsShortRows(t *testing.T) {
	headers := []string{"Part", "Qty"}
	rows := []domain.TableRow{row(0.9, "x")}

	normalized := extract.NormalizeRowCells(headers, rows)

	require.Len(t, normalized, 1)
	assert.Equal(t, []string{"x", ""}, normalized[0].Cells)
}

func TestNormalizeRowCells_JoinsOverflowIntoLastCell(t *testing.T) {
	headers := []string{"Part", "Qty"}
	rows := []domain.TableRow{row(0.9, "x", "y", "z")}

	normalized := extract.NormalizeRowCells(headers, rows)

	require.Len(t, normalized, 1)
	assert.Equal(t, []string{"x", "y | z"}, normalized[0].Cells)
}

func TestNormalizeRowCells_SkipsEmptyOverflowCells(t *testing.T) {
	headers := []string{"Part", "Qty"}
	rows := []domain.TableRow{row(0.9, "x", "y", "", "z")}

	normalized := extract.NormalizeRowCells(headers, rows)

	assert.Equal(t, []string{"x", "y | z"}, normalized[0].Cells)
}

func TestNormalizeRowCells_NoHeadersPassThrough(t *testing.T) {
	rows := []domain.TableRow{row(0.9, "a", "b", "c")}

	normalized := extract.NormalizeRowCells(nil, rows)

	assert.Equal(t, rows, normalized)
}

func TestNormalizeRowCells_FixedPoint(t *testing.T) {
	headers := []string{"Part", "Qty", "Price"}
	rows := []domain.TableRow{
		row(0.9, "x"),
		row(0.8, "a", "b", "c", "d"),
	}

	once := extract.NormalizeRowCells(headers, rows)
	twice := extract.NormalizeRowCells(headers, once)

	assert.Equal(t, once, twice)
	for _, r := range once {
		assert.Len(t, r.Cells, len(headers))
	}
}
