package api

import (
	"encoding/json"

	"github.com/xeipuuv/gojsonschema"

	"carrier-simulator/internal/common/errors"
)

// Request body schemas. Validation runs against the raw JSON before decoding
// into the typed models, so unknown fields pass through untouched and
// violations report the offending field path.

var quoteRequestSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"quote_request_id", "insurance_type", "coverage_requests"},
	"properties": map[string]interface{}{
		"quote_request_id": map[string]interface{}{"type": "string", "minLength": 1},
		"insurance_type": map[string]interface{}{
			"type": "string",
			"enum": []string{"personal", "commercial"},
		},
		"personal_info": map[string]interface{}{"type": "object"},
		"business_info": map[string]interface{}{"type": "object"},
		"coverage_requests": map[string]interface{}{
			"type":     "array",
			"minItems": 1,
			"items": map[string]interface{}{
				"type":     "object",
				"required": []string{"coverage_type", "requested_limits", "effective_date"},
				"properties": map[string]interface{}{
					"coverage_type":    map[string]interface{}{"type": "string", "minLength": 1},
					"requested_limits": map[string]interface{}{"type": "object"},
					"effective_date":   map[string]interface{}{"type": "string", "minLength": 1},
				},
			},
		},
	},
}

var bindRequestSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"quote_id", "effective_date", "payment_plan", "payment_info", "insured_info"},
	"properties": map[string]interface{}{
		"quote_id":       map[string]interface{}{"type": "string", "minLength": 1},
		"effective_date": map[string]interface{}{"type": "string", "minLength": 1},
		"payment_plan": map[string]interface{}{
			"type": "string",
			"enum": []string{"annual", "monthly", "quarterly"},
		},
		"payment_info": map[string]interface{}{
			"type":     "object",
			"required": []string{"method", "token", "billing_address"},
		},
		"insured_info": map[string]interface{}{
			"type":     "object",
			"required": []string{"primary_contact"},
		},
	},
}

var renewRequestSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"renewal_type":           map[string]interface{}{"type": "string"},
		"business_changes":       map[string]interface{}{"type": "object"},
		"coverage_changes":       map[string]interface{}{"type": "object"},
		"desired_effective_date": map[string]interface{}{"type": "string"},
	},
}

var endorseRequestSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"endorsement_type", "effective_date"},
	"properties": map[string]interface{}{
		"endorsement_type": map[string]interface{}{"type": "string", "minLength": 1},
		"effective_date":   map[string]interface{}{"type": "string", "minLength": 1},
	},
}

var cancelRequestSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"cancellation_type", "effective_date", "reason"},
	"properties": map[string]interface{}{
		"cancellation_type": map[string]interface{}{"type": "string", "minLength": 1},
		"effective_date":    map[string]interface{}{"type": "string", "minLength": 1},
		"reason":            map[string]interface{}{"type": "string"},
		"signature":         map[string]interface{}{"type": "object"},
	},
}

var certificateRequestSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"certificate_holder", "description_of_operations"},
	"properties": map[string]interface{}{
		"certificate_holder": map[string]interface{}{
			"type":     "object",
			"required": []string{"name", "address"},
		},
		"description_of_operations": map[string]interface{}{"type": "string", "minLength": 1},
		"special_provisions":        map[string]interface{}{"type": "array"},
	},
}

// validateBody checks raw JSON against a schema, returning an
// INVALID_REQUEST error with per-field details on failure.
func validateBody(raw []byte, schema map[string]interface{}) error {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.NewInvalidRequestError("Request body is not valid JSON", nil)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return errors.NewInternalError(err)
	}
	if result.Valid() {
		return nil
	}

	details := make([]map[string]interface{}, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		details = append(details, map[string]interface{}{
			"field":   verr.Field(),
			"message": verr.Description(),
		})
	}
	return errors.NewInvalidRequestError("Request validation failed", details)
}
