package inbound

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"leadconduit-classic/internal/model"
	"leadconduit-classic/internal/negotiate"
	"leadconduit-classic/internal/record"
)

// Examples returns sample submissions for a flow and source: one GET and one
// POST per supported body encoding. A redir_url in params stays in the query
// string of every example.
func Examples(flowID, sourceID string, params model.Record) []model.Envelope {
	path := "/flows/" + url.PathEscape(flowID) + "/sources/" + url.PathEscape(sourceID) + "/submit"

	redir := url.Values{}
	if v := record.String(params, RedirURLField); v != "" {
		redir.Set(RedirURLField, v)
	}

	fields := make(model.Record, len(params))
	for k, v := range params {
		if k != RedirURLField {
			fields[k] = v
		}
	}

	form := url.Values{}
	for k, v := range record.Flatten(fields, false) {
		form.Set(k, record.Scalar(v))
	}

	postURI := path
	if len(redir) > 0 {
		postURI += "?" + redir.Encode()
	}

	getQuery := url.Values{}
	for k, vs := range form {
		getQuery[k] = vs
	}
	for k, vs := range redir {
		getQuery[k] = vs
	}
	getURI := path
	if len(getQuery) > 0 {
		getURI += "?" + getQuery.Encode()
	}

	jsonBody, _ := json.MarshalIndent(fields, "", "  ")

	return []model.Envelope{
		{
			Method: http.MethodGet,
			URI:    getURI,
			Header: http.Header{"Accept": {negotiate.XML}},
		},
		post(postURI, negotiate.FormURLEncoded, form.Encode()),
		post(postURI, negotiate.JSON, string(jsonBody)),
		post(postURI, negotiate.XML, leadXML(fields)),
	}
}

func post(uri, contentType, body string) model.Envelope {
	return model.Envelope{
		Method: http.MethodPost,
		URI:    uri,
		Header: http.Header{
			"Accept":         {negotiate.XML},
			"Content-Type":   {contentType},
			"Content-Length": {strconv.Itoa(len(body))},
		},
		Body: body,
	}
}

func leadXML(fields model.Record) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?>` + "\n")
	if len(fields) == 0 {
		b.WriteString("<lead/>")
		return b.String()
	}
	b.WriteString("<lead>\n")
	writeFields(&b, fields, 1)
	b.WriteString("</lead>")
	return b.String()
}

func writeFields(b *strings.Builder, fields map[string]any, depth int) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if isElementName(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeElement(b, k, fields[k], depth)
	}
}

func writeElement(b *strings.Builder, name string, v any, depth int) {
	indent := strings.Repeat("  ", depth)
	switch val := v.(type) {
	case map[string]any:
		if !hasElementNames(val) {
			b.WriteString(indent + "<" + name + "/>\n")
			return
		}
		b.WriteString(indent + "<" + name + ">\n")
		writeFields(b, val, depth+1)
		b.WriteString(indent + "</" + name + ">\n")
	case []any:
		for _, item := range val {
			writeElement(b, name, item, depth)
		}
	default:
		b.WriteString(indent + "<" + name + ">" + escape(record.Scalar(val)) + "</" + name + ">\n")
	}
}

// isElementName reports whether name can be written as an XML element name
// without a namespace prefix. Fields that cannot are left out of the XML
// example.
func isElementName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}

func hasElementNames(fields map[string]any) bool {
	for k := range fields {
		if isElementName(k) {
			return true
		}
	}
	return false
}
