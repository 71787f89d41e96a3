// Package inbound normalizes lead submissions into a canonical record and
// renders the reply sent back to the submitter.
package inbound

import (
	"net/http"
	"net/url"
	"strings"

	"leadconduit-classic/internal/model"
	"leadconduit-classic/internal/negotiate"
	"leadconduit-classic/internal/record"
)

// RedirURLField is the query parameter naming where the submitter should be
// redirected.
const RedirURLField = "redir_url"

// Request normalizes an inbound submission. Query-string fields override body
// fields with the same key. Invalid input yields a *model.HTTPError.
func Request(env *model.Envelope) (model.Record, error) {
	header := env.Header
	if header == nil {
		header = http.Header{}
	}

	method := strings.ToLower(env.Method)
	if method != "get" && method != "post" {
		err := model.NewHTTPError(http.StatusMethodNotAllowed, "The "+strings.ToUpper(method)+" method is not allowed")
		err.Header.Set("Allow", "GET, POST")
		return nil, err
	}

	if negotiate.Select(header.Get("Accept")) == "" {
		return nil, model.NewHTTPError(http.StatusNotAcceptable, "Not capable of generating content according to the Accept header")
	}

	query := record.Unflatten(record.ParseForm(rawQuery(env.URI)))

	if err := validateRedirURL(query); err != nil {
		return nil, err
	}

	query = NormalizeTrustedFormCertURL(query)

	if method == "get" || !hasBody(header) {
		return query, nil
	}

	if header.Get("Content-Type") == "" {
		return nil, model.NewHTTPError(http.StatusUnsupportedMediaType, "Content-Type header is required")
	}

	mimeType := negotiate.Select(header.Get("Content-Type"))
	if !negotiate.IsSupported(mimeType) {
		return nil, model.NewHTTPError(http.StatusNotAcceptable,
			"MIME type in Content-Type header is not supported. Use only "+strings.Join(negotiate.Supported, ", ")+".")
	}

	body := strings.TrimSpace(env.Body)
	if body == "" {
		return query, nil
	}

	parsed, err := parseBody(mimeType, body)
	if err != nil {
		return nil, err
	}

	// The body is normalized before the merge so a query-supplied certificate
	// URL still wins over one from the body.
	parsed = NormalizeTrustedFormCertURL(parsed)
	return NormalizeTrustedFormCertURL(record.Merge(parsed, query)), nil
}

// rawQuery returns the query component of a request URI.
func rawQuery(uri string) string {
	_, query, ok := strings.Cut(uri, "?")
	if !ok {
		return ""
	}
	query, _, _ = strings.Cut(query, "#")
	return query
}

// hasBody reports whether the headers signal a request body.
func hasBody(header http.Header) bool {
	return header.Get("Content-Length") != "" || strings.EqualFold(header.Get("Transfer-Encoding"), "chunked")
}

func validateRedirURL(query model.Record) error {
	v, ok := query[RedirURLField]
	if !ok {
		return nil
	}
	repeated := false
	if list, ok := v.([]any); ok && len(list) > 0 {
		v, repeated = list[0], true
	}

	invalid := model.NewHTTPError(http.StatusBadRequest, "Invalid redir_url")

	raw, ok := v.(string)
	if !ok {
		return invalid
	}
	// Only a lone empty value means "no redirect".
	if raw == "" && !repeated {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return invalid
	}

	rest := raw
	if u.Scheme != "" {
		rest = raw[len(u.Scheme)+1:]
	}
	if !strings.HasPrefix(rest, "//") && u.Scheme != "http" && u.Scheme != "https" {
		return invalid
	}
	return nil
}
