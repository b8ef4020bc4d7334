package swaggerkit

import "strings"

// Decorate lifts the document to OAS 3.0.3, sets servers and documents the error envelope
// on every operation that does not already describe 400 and 500
func Decorate(spec map[string]any, serverURL string) {
	ensureServers(spec, serverURL)
	ensureEnvelopeSchema(spec)
	addDefaultResponse(spec, "400", "Bad Request", map[string]any{
		"success": false,
		"message": "label_type must be one of [ad spotOutsideBreak promo program movie song sports news noVideo standBy]",
		"code":    "validation",
		"field":   "label_type",
	})
	addDefaultResponse(spec, "500", "Internal Server Error", map[string]any{
		"success": false,
		"message": "Internal Server Error",
		"code":    "unknown",
	})
}

// ensureServers makes sure the OpenAPI document is OAS3 and has a servers array
// swagger http ui can't handle 3.1 yet, so downconvert if needed
func ensureServers(spec map[string]any, url string) {
	if _, ok := spec["swagger"]; ok {
		spec["openapi"] = "3.0.3"
		delete(spec, "swagger")
	}
	if v, ok := spec["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// ensureEnvelopeSchema adds the ErrorEnvelope schema unless a generated one exists
func ensureEnvelopeSchema(spec map[string]any) {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas["ErrorEnvelope"]; ok {
		return
	}
	schemas["ErrorEnvelope"] = map[string]any{
		"type":        "object",
		"description": "Error response envelope",
		"properties": map[string]any{
			"success": map[string]any{"type": "boolean"},
			"message": map[string]any{"type": "string"},
			"code":    map[string]any{"type": "string"},
			"field":   map[string]any{"type": "string"},
		},
		"required": []any{"success", "message"},
	}
}

// addDefaultResponse walks every operation and adds status unless it is already described
func addDefaultResponse(spec map[string]any, status, desc string, example map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	resp := map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorEnvelope"},
				"example": example,
			},
		},
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses, ok := op["responses"].(map[string]any)
			if !ok {
				responses = map[string]any{}
				op["responses"] = responses
			}
			if _, exists := responses[status]; !exists {
				responses[status] = resp
			}
		}
	}
}
