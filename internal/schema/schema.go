package schema

// BuildRawOutputSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing the raw model output contract. Types and confidence
// ranges are enforced; presence mostly is not, since missing values default
// downstream. Validation failures feed the repair-retry loop.
func BuildRawOutputSchema() map[string]any {
	conf := map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0}
	nullableString := map[string]any{"type": []string{"string", "null"}}
	nullableNumber := map[string]any{"type": []string{"number", "null"}}

	props := map[string]any{
		"document_type": map[string]any{"type": "string"},

		"identifiers": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"type":             map[string]any{"type": "string"},
					"value":            map[string]any{"type": "string"},
					"model_confidence": conf,
				},
			},
		},

		"tables": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"table_id": map[string]any{"type": "string"},
					"title":    nullableString,
					"headers": map[string]any{
						"type":  "array",
						"items": nullableString,
					},
					"rows": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"cells": map[string]any{
									"type":  "array",
									"items": nullableString,
								},
								"row_confidence": conf,
							},
						},
					},
					"cell_confidence": map[string]any{
						"type": []string{"array", "null"},
						"items": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "number"},
						},
					},
				},
			},
		},

		"line_items": map[string]any{
			"type": []string{"array", "null"},
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"description":      nullableString,
					"quantity":         nullableNumber,
					"unit":             nullableString,
					"unit_value":       nullableNumber,
					"total_value":      nullableNumber,
					"hts_code":         nullableString,
					"model_confidence": conf,
				},
			},
		},
	}

	for _, field := range CanonicalFieldNames {
		props[field] = nullableString
		props[field+"_confidence"] = conf
	}

	return map[string]any{
		"type":       "object",
		"properties": props,
	}
}

// CanonicalFieldNames lists the seven confidence-scored document attributes
// in response order.
var CanonicalFieldNames = []string{
	"bill_of_lading_number",
	"invoice_number",
	"shipper_name",
	"shipper_address",
	"consignee_name",
	"consignee_address",
	"total_value_of_goods",
}
