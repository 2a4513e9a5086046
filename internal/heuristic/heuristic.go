// Package heuristic scores extracted string values against field-specific
// pattern ladders. Each scorer returns the first matching tier's score on a
// 0-100 scale and falls through to a low baseline; empty values score 0.
package heuristic

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	invoicePrefixRe = regexp.MustCompile(`INV(OICE)?[\s#\-:]*\d+`)
	digitRunRe      = regexp.MustCompile(`\d{3,}`)

	bolPrefixRe   = regexp.MustCompile(`(B/?L|BOL|BILL\s*OF\s*LADING)[\s#\-:]*\w+`)
	carrierCodeRe = regexp.MustCompile(`^[A-Z]{4}\d{7,}`)
	uppercaseIDRe = regexp.MustCompile(`^[A-Z0-9]{8,}$`)

	zipRe      = regexp.MustCompile(`\b\d{5}(-\d{4})?\b`)
	stateZipRe = regexp.MustCompile(`\b[A-Z]{2}\s+\d{5}`)
	streetRe   = regexp.MustCompile(`\b(street|st|ave|avenue|road|rd|blvd|drive|dr|lane|ln)\b`)
	anyDigitRe = regexp.MustCompile(`\d+`)

	currencySymbolRe = regexp.MustCompile(`[$€£¥][\d,]+\.?\d*`)
	groupedNumberRe  = regexp.MustCompile(`^\d{1,3}(,\d{3})*(\.\d{2})?$`)

	companySuffixRe = regexp.MustCompile(`\b(LLC|INC|CORP|LTD|CO|COMPANY|INDUSTRIES|ENTERPRISES)\b`)

	htsDottedRe = regexp.MustCompile(`^\d{4}\.\d{2}(\.\d{2,4})?$`)
	htsDigitsRe = regexp.MustCompile(`^\d{6,10}$`)

	numericCellRe = regexp.MustCompile(`^[\d,.$€£¥\-\s]+$`)
)

// InvoiceNumber scores invoice number candidates. INV/INVOICE prefixes score
// highest, a run of digits is still plausible.
func InvoiceNumber(value string) float64 {
	if value == "" {
		return 0
	}
	if invoicePrefixRe.MatchString(strings.ToUpper(value)) {
		return 95
	}
	if digitRunRe.MatchString(value) {
		return 70
	}
	return 40
}

// BOLNumber scores bill-of-lading and air waybill number candidates.
// Carrier SCAC prefixes (MAEU, HLCU, COSU, ...) followed by digits are a
// strong signal even without an explicit B/L label.
func BOLNumber(value string) float64 {
	if value == "" {
		return 0
	}
	upper := strings.ToUpper(value)
	if bolPrefixRe.MatchString(upper) {
		return 95
	}
	if carrierCodeRe.MatchString(upper) {
		return 90
	}
	if uppercaseIDRe.MatchString(upper) {
		return 65
	}
	return 40
}

// Address scores address candidates via postal codes, region codes, and
// street-type keywords.
func Address(value string) float64 {
	if value == "" {
		return 0
	}
	if zipRe.MatchString(value) {
		return 90
	}
	if stateZipRe.MatchString(strings.ToUpper(value)) {
		return 90
	}
	if streetRe.MatchString(strings.ToLower(value)) {
		return 85
	}
	if strings.Contains(value, ",") && len(value) > 10 {
		return 70
	}
	if anyDigitRe.MatchString(value) && len(value) > 5 {
		return 50
	}
	return 30
}

// CurrencyValue scores monetary value candidates.
func CurrencyValue(value string) float64 {
	if value == "" {
		return 0
	}
	if currencySymbolRe.MatchString(value) {
		return 95
	}
	if groupedNumberRe.MatchString(strings.TrimSpace(value)) {
		return 90
	}
	stripped := strings.NewReplacer(",", "", "$", "", "€", "").Replace(value)
	if _, err := strconv.ParseFloat(strings.TrimSpace(stripped), 64); err == nil {
		return 85
	}
	return 30
}

// Name scores company/person name candidates.
func Name(value string) float64 {
	if value == "" {
		return 0
	}
	if companySuffixRe.MatchString(strings.ToUpper(value)) {
		return 90
	}
	runes := []rune(value)
	if len(value) > 3 && unicode.IsUpper(runes[0]) {
		return 70
	}
	return 50
}

// HTSCode scores harmonized tariff codes, dotted (8471.30.0000) or plain digits.
func HTSCode(value string) float64 {
	if value == "" {
		return 0
	}
	if htsDottedRe.MatchString(value) {
		return 95
	}
	if htsDigitsRe.MatchString(value) {
		return 80
	}
	return 30
}

// TableCell scores a single cell against its column: numeric-dominant columns
// reward numeric-looking cells and penalize the rest, text-dominant columns
// reward anything of substance. columnValues holds every cell in the same
// column, including value itself.
func TableCell(value string, columnValues []string) float64 {
	if strings.TrimSpace(value) == "" {
		return 50
	}

	isNumeric := numericCellRe.MatchString(strings.TrimSpace(value))

	numericCount := 0
	totalNonEmpty := 0
	for _, v := range columnValues {
		if strings.TrimSpace(v) == "" {
			continue
		}
		totalNonEmpty++
		if numericCellRe.MatchString(strings.TrimSpace(v)) {
			numericCount++
		}
	}
	if totalNonEmpty == 0 {
		return 50
	}

	if float64(numericCount)/float64(totalNonEmpty) > 0.7 {
		if isNumeric {
			return 90
		}
		return 40
	}
	if len(strings.TrimSpace(value)) > 2 {
		return 75
	}
	return 60
}
