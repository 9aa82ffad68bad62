package rest

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/predict_request.json
var predictRequestSchema []byte

const (
	// schemaField is the key under which errors about the document as a
	// whole are reported.
	schemaField = "_schema"

	rootContext = "(root)"
)

var messagesByType = map[string]string{
	"required":                        "Missing data for required field.",
	"additional_property_not_allowed": "Unknown field.",
}

// RequestValidator checks request bodies against a compiled JSON schema.
type RequestValidator struct {
	schema *gojsonschema.Schema
}

// NewPredictRequestValidator compiles the embedded /predict request schema.
func NewPredictRequestValidator() (*RequestValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(predictRequestSchema))
	if err != nil {
		return nil, fmt.Errorf("rest: compile predict request schema: %w", err)
	}
	return &RequestValidator{schema: schema}, nil
}

// Validate returns one message per offending field. An empty map means the
// body conforms. The body must already be well-formed JSON.
func (v *RequestValidator) Validate(body []byte) (map[string]string, error) {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("rest: validate request: %w", err)
	}

	fields := make(map[string]string)
	for _, e := range result.Errors() {
		field := e.Field()
		if prop, ok := e.Details()["property"].(string); ok {
			field = prop
		}
		if field == rootContext {
			field = schemaField
		}
		if _, seen := fields[field]; seen {
			continue
		}
		fields[field] = message(e)
	}
	return fields, nil
}

func message(e gojsonschema.ResultError) string {
	if msg, ok := messagesByType[e.Type()]; ok {
		return msg
	}
	if e.Type() == "invalid_type" {
		return fmt.Sprintf("Not a valid %v.", e.Details()["expected"])
	}
	return e.Description()
}
