package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// PredictExample is a /predict body shown on the docs page.
const PredictExample = `{"customer_type": "loyal_customer", "age": 25, "type_of_travel": "business_travel", ` +
	`"flight_distance": 1200, "ease_of_online_booking": 4, "online_boarding": 5, "class": "business"}`

var docsTemplate = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>SkySatisfy API</title></head>
<body>
<h1>API Endpoints</h1>
<ul>
{{- range .}}
<li>
<b>{{.Path}}</b>: {{.Method}} request. {{.Description}}
<ul>
<li><b>Parameters:</b>{{if .Params}}
<ul>
{{- range .Params}}
<li><b>{{.Name}}</b>: {{.Rules}}</li>
{{- end}}
</ul>{{else}} None{{end}}</li>
<li><b>Example:</b> <code>{{.Example}}</code></li>
</ul>
</li>
{{- end}}
</ul>
<p>The request schema for /predict is served at <a href="/schema/predict">/schema/predict</a>.</p>
</body>
</html>
`))

type endpointDoc struct {
	Path        string
	Method      string
	Description string
	Example     string
	Params      []paramDoc
}

type paramDoc struct {
	Name  string
	Rules string
}

// propertySchema is the subset of a JSON Schema property the docs describe.
type propertySchema struct {
	Minimum *float64 `json:"minimum"`
	Maximum *float64 `json:"maximum"`
	Type    string   `json:"type"`
	Enum    []string `json:"enum"`
}

type objectSchema struct {
	Properties map[string]propertySchema `json:"properties"`
	Required   []string                  `json:"required"`
}

// DocsHandler serves a human-readable index of the API at GET /. Parameter
// rules are read from the same schema the /predict validator compiles.
type DocsHandler struct {
	page   []byte
	schema []byte
}

// NewDocsHandler renders the docs page once.
func NewDocsHandler() (*DocsHandler, error) {
	params, err := schemaParams(predictRequestSchema)
	if err != nil {
		return nil, err
	}

	endpoints := []endpointDoc{
		{
			Path:        "/predict",
			Method:      http.MethodPost,
			Description: "Make a prediction based on input data.",
			Params:      params,
			Example:     PredictExample,
		},
		{
			Path:        "/model/info",
			Method:      http.MethodGet,
			Description: "Retrieve model information and metrics.",
			Example:     "None",
		},
		{
			Path:        "/health",
			Method:      http.MethodGet,
			Description: "Check the health status of the API.",
			Example:     "None",
		},
	}

	var buf bytes.Buffer
	if err := docsTemplate.Execute(&buf, endpoints); err != nil {
		return nil, fmt.Errorf("rest: render docs: %w", err)
	}
	return &DocsHandler{page: buf.Bytes(), schema: predictRequestSchema}, nil
}

// RegisterRoutes registers the docs endpoints on the provided ServeMux.
func (h *DocsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /schema/predict", h.PredictSchema)
}

// Index serves the endpoint list.
func (h *DocsHandler) Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.page)
}

// PredictSchema serves the raw /predict request schema.
func (h *DocsHandler) PredictSchema(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/schema+json")
	_, _ = w.Write(h.schema)
}

// schemaParams lists required properties in schema order, then optional
// ones by name.
func schemaParams(raw []byte) ([]paramDoc, error) {
	var s objectSchema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("rest: decode schema: %w", err)
	}

	names := append([]string(nil), s.Required...)
	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}
	var optional []string
	for name := range s.Properties {
		if !required[name] {
			optional = append(optional, name)
		}
	}
	sort.Strings(optional)
	names = append(names, optional...)

	params := make([]paramDoc, 0, len(names))
	for _, name := range names {
		prop, ok := s.Properties[name]
		if !ok {
			return nil, fmt.Errorf("rest: required property %q is not defined", name)
		}
		params = append(params, paramDoc{Name: name, Rules: describe(prop, required[name])})
	}
	return params, nil
}

// describe renders rules such as `Integer, range [0, 120]` or
// `String, one of ["eco", "business"]`.
func describe(p propertySchema, required bool) string {
	parts := []string{titleCase(p.Type)}

	switch {
	case len(p.Enum) > 0:
		quoted := make([]string, len(p.Enum))
		for i, v := range p.Enum {
			quoted[i] = strconv.Quote(v)
		}
		parts = append(parts, "one of ["+strings.Join(quoted, ", ")+"]")
	case p.Minimum != nil && p.Maximum != nil:
		parts = append(parts, fmt.Sprintf("range [%s, %s]", formatBound(*p.Minimum), formatBound(*p.Maximum)))
	case p.Minimum != nil:
		parts = append(parts, ">= "+formatBound(*p.Minimum))
	case p.Maximum != nil:
		parts = append(parts, "<= "+formatBound(*p.Maximum))
	}

	if required {
		parts = append(parts, "required")
	} else {
		parts = append(parts, "optional")
	}
	return strings.Join(parts, ", ")
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func titleCase(s string) string {
	if s == "" {
		return "Any"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
