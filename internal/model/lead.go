// Package model defines shared types for the lead adapter.
package model

import (
	"net/http"
)

// Record is a nested lead record. Values are string, json.Number, bool, nil,
// []any or map[string]any.
type Record = map[string]any

// Envelope is an inbound HTTP-like request, independent of the server runtime.
type Envelope struct {
	Method string      `json:"method"`
	URI    string      `json:"uri"`
	Header http.Header `json:"headers"`
	Body   string      `json:"body,omitempty"`
}

// OutboundRequest is a request to be sent to LeadConduit Classic.
type OutboundRequest struct {
	URL    string
	Method string
	Header http.Header
	Body   string
}

// OutboundResponse is the buffered response received from LeadConduit Classic.
type OutboundResponse struct {
	StatusCode int
	Header     http.Header
	Body       string
}

// Reply is the response sent back to whoever submitted the lead.
type Reply struct {
	Status int
	Header http.Header
	Body   string
}

// Variable describes a field consumed or produced by the integration.
type Variable struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required,omitempty"`
	Description string `json:"description,omitempty"`
	Example     string `json:"example,omitempty"`
}
