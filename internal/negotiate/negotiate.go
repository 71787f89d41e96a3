// Package negotiate selects a supported MIME type from an Accept or
// Content-Type header.
package negotiate

import (
	"strings"

	"github.com/munnerz/goautoneg"
)

// Supported MIME types.
const (
	FormURLEncoded = "application/x-www-form-urlencoded"
	JSON           = "application/json"
	XML            = "application/xml"
	TextXML        = "text/xml"
)

// Supported lists the MIME types in priority order. Earlier entries win ties.
var Supported = []string{FormURLEncoded, JSON, XML, TextXML}

// IsSupported reports whether mimeType is one of Supported.
func IsSupported(mimeType string) bool {
	for _, s := range Supported {
		if s == mimeType {
			return true
		}
	}
	return false
}

// Select returns the best match among Supported for the given header, or ""
// when nothing matches. A missing header or "*/*" selects JSON.
//
// Each candidate takes the q value of the most specific clause that covers it.
// The candidate with the highest q wins, then the one matched by the more
// specific clause, then the earlier one; q=0 excludes a candidate.
func Select(header string) string {
	header = strings.TrimSpace(header)
	if header == "" || header == "*/*" {
		header = JSON
	}

	clauses := goautoneg.ParseAccept(header)

	best, bestQ, bestFit := "", 0.0, -1
	for _, candidate := range Supported {
		q, fit := quality(candidate, clauses)
		if q <= 0 {
			continue
		}
		if q > bestQ || (q == bestQ && fit > bestFit) {
			best, bestQ, bestFit = candidate, q, fit
		}
	}
	return best
}

// quality returns the q value and fitness of the most specific clause
// covering candidate. Fitness is -1 when no clause covers it.
func quality(candidate string, clauses []goautoneg.Accept) (float64, int) {
	typ, subtype, _ := strings.Cut(candidate, "/")

	bestFit, q := -1, 0.0
	for _, c := range clauses {
		ct := strings.ToLower(strings.TrimSpace(c.Type))
		cs := strings.ToLower(strings.TrimSpace(c.SubType))
		if ct != typ && ct != "*" {
			continue
		}
		if cs != subtype && cs != "*" {
			continue
		}

		fit := 0
		if ct == typ {
			fit += 100
		}
		if cs == subtype {
			fit += 10
		}
		if fit > bestFit {
			bestFit, q = fit, c.Q
		}
	}
	return q, bestFit
}
