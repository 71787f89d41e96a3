// Package record shapes lead records: dotted-key flattening and unflattening,
// deep merging, form value conversion and XML decoding.
package record

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"leadconduit-classic/internal/model"
)

// Delimiter separates the segments of a dotted key.
const Delimiter = "."

// FromValues converts parsed form values into a flat record. A key with a
// single value maps to a string; repeated keys map to []any in order.
func FromValues(values url.Values) model.Record {
	out := make(model.Record, len(values))
	for k, vs := range values {
		switch len(vs) {
		case 0:
			out[k] = ""
		case 1:
			out[k] = vs[0]
		default:
			list := make([]any, len(vs))
			for i, v := range vs {
				list[i] = v
			}
			out[k] = list
		}
	}
	return out
}

// ParseForm parses URL-encoded text into a flat record. Pairs are split on
// "&" only, so ";" stays part of a value. A key or value with a bad percent
// escape is kept as written, with "+" read as a space.
func ParseForm(text string) model.Record {
	values := url.Values{}
	for _, pair := range strings.Split(text, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		values.Add(unescapeForm(key), unescapeForm(value))
	}
	return FromValues(values)
}

func unescapeForm(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	return strings.ReplaceAll(s, "+", " ")
}

// Unflatten expands dotted keys into nested records: {"a.b": 1} becomes
// {"a": {"b": 1}}. Keys are applied in sorted order, so when a scalar key
// and a dotted key collide ("a" and "a.b") the scalar wins.
func Unflatten(flat model.Record) model.Record {
	out := make(model.Record, len(flat))

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

next:
	for _, key := range keys {
		segments := strings.Split(key, Delimiter)
		node := out
		for _, seg := range segments[:len(segments)-1] {
			child, ok := node[seg]
			if !ok {
				m := model.Record{}
				node[seg] = m
				node = m
				continue
			}
			m, ok := child.(map[string]any)
			if !ok {
				continue next
			}
			node = m
		}
		node[segments[len(segments)-1]] = flat[key]
	}
	return out
}

// Flatten collapses nested records into dotted keys. Sequences are expanded
// with index segments ("a.0", "a.1") unless safe is set, in which case they
// are kept as values. Empty records and sequences are kept as values.
func Flatten(r model.Record, safe bool) model.Record {
	out := make(model.Record, len(r))
	for k, v := range r {
		flattenInto(out, k, v, safe)
	}
	return out
}

func flattenInto(out model.Record, prefix string, v any, safe bool) {
	switch val := v.(type) {
	case map[string]any:
		if len(val) == 0 {
			out[prefix] = val
			return
		}
		for k, child := range val {
			flattenInto(out, prefix+Delimiter+k, child, safe)
		}
	case []any:
		if safe || len(val) == 0 {
			out[prefix] = val
			return
		}
		for i, child := range val {
			flattenInto(out, prefix+Delimiter+strconv.Itoa(i), child, safe)
		}
	default:
		out[prefix] = val
	}
}

// Merge returns a new record holding the keys of both base and override.
// Where both hold a record under the same key the two are merged
// recursively; otherwise the override value wins. Neither input is modified.
func Merge(base, override model.Record) model.Record {
	out := make(model.Record, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		if bm, ok := out[k].(map[string]any); ok {
			if om, ok := v.(map[string]any); ok {
				out[k] = Merge(bm, om)
				continue
			}
		}
		out[k] = v
	}
	return out
}

// Lookup returns the value at a dotted path.
func Lookup(r model.Record, path string) (any, bool) {
	var node any = r
	for _, seg := range strings.Split(path, Delimiter) {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		if node, ok = m[seg]; !ok {
			return nil, false
		}
	}
	return node, true
}

// String returns the value at a dotted path as a string, or "" when the
// path is missing or holds a record or sequence.
func String(r model.Record, path string) string {
	v, ok := Lookup(r, path)
	if !ok {
		return ""
	}
	return Scalar(v)
}

// Scalar formats a scalar value for the wire. nil, false, records and
// sequences format as "".
func Scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return ""
	case map[string]any, []any:
		return ""
	case interface{ String() string }:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
