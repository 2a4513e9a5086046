// Package confidence blends pattern heuristics with model-reported confidence
// into a single 0-100 score and a coarse badge.
package confidence

import (
	"math"
	"strings"

	"cargodocs/internal/domain"
	"cargodocs/internal/heuristic"
)

// FinalConfidence computes round(0.6*heuristic + 0.4*(modelConfidence*100)).
// Ties at exact .5 round half to even, so 84.5 yields 84 and 83.5 yields 84.
func FinalConfidence(heuristicScore, modelConfidence float64) int {
	return int(math.RoundToEven(0.6*heuristicScore + 0.4*(modelConfidence*100)))
}

// Badge maps a final confidence score to its tier. Boundaries are inclusive
// on the lower bound: 80 is High, 50 is Med.
func Badge(finalConfidence int) domain.ConfidenceBadge {
	switch {
	case finalConfidence >= 80:
		return domain.BadgeHigh
	case finalConfidence >= 50:
		return domain.BadgeMedium
	default:
		return domain.BadgeLow
	}
}

// fieldHeuristics dispatches canonical field names to their pattern scorers.
var fieldHeuristics = map[string]func(string) float64{
	"bill_of_lading_number": heuristic.BOLNumber,
	"invoice_number":        heuristic.InvoiceNumber,
	"shipper_name":          heuristic.Name,
	"shipper_address":       heuristic.Address,
	"consignee_name":        heuristic.Name,
	"consignee_address":     heuristic.Address,
	"total_value_of_goods":  heuristic.CurrencyValue,
}

// ScoreCanonicalField scores a canonical field value. A nil value returns
// (0, Low) without consulting any heuristic; unmapped field names use a
// constant 50 heuristic.
func ScoreCanonicalField(fieldName string, value *string, modelConfidence float64) (int, domain.ConfidenceBadge) {
	if value == nil {
		return 0, domain.BadgeLow
	}
	h := 50.0
	if fn, ok := fieldHeuristics[fieldName]; ok {
		h = fn(*value)
	}
	final := FinalConfidence(h, modelConfidence)
	return final, Badge(final)
}

// ScoreIdentifier scores an identifier by mapping its type tag to a heuristic
// family. PO and booking numbers get a generic identifier floor of 60; tags
// outside the known families use a constant 60.
func ScoreIdentifier(identifierType domain.IdentifierType, value string, modelConfidence float64) (int, domain.ConfidenceBadge) {
	tag := strings.ToUpper(string(identifierType))

	var h float64
	switch {
	case strings.Contains(tag, "BOL") || strings.Contains(tag, "BILL_OF_LADING") || strings.Contains(tag, "AWB"):
		h = heuristic.BOLNumber(value)
	case strings.Contains(tag, "INVOICE"):
		h = heuristic.InvoiceNumber(value)
	case strings.Contains(tag, "PO") || strings.Contains(tag, "BOOKING"):
		h = math.Max(heuristic.InvoiceNumber(value), 60)
	default:
		h = 60
	}

	final := FinalConfidence(h, modelConfidence)
	return final, Badge(final)
}
