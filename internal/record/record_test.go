package record

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"leadconduit-classic/internal/model"
)

func TestFromValues(t *testing.T) {
	values := url.Values{
		"first_name": {"Joe"},
		"redir_url":  {"http://foo.com", "http://bar.com"},
		"empty":      {},
	}

	want := model.Record{
		"first_name": "Joe",
		"redir_url":  []any{"http://foo.com", "http://bar.com"},
		"empty":      "",
	}
	if diff := cmp.Diff(want, FromValues(values)); diff != "" {
		t.Errorf("FromValues() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseForm(t *testing.T) {
	got := ParseForm("first_name=Joe&callcenter.additional_services=script+writing&bad=%zz")

	want := model.Record{
		"first_name":                     "Joe",
		"callcenter.additional_services": "script writing",
		"bad":                            "%zz",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseForm() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseForm_KeepsUndecodablePairs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want model.Record
	}{
		{"bare percent", "discount=100%", model.Record{"discount": "100%"}},
		{"semicolon in value", "note=a;b", model.Record{"note": "a;b"}},
		{"plus kept as space on fallback", "memo=50%+off", model.Record{"memo": "50% off"}},
		{"bad escape in key", "a%zz=1", model.Record{"a%zz": "1"}},
		{"key without value", "opt_in", model.Record{"opt_in": ""}},
		{"empty pairs skipped", "&&a=1&", model.Record{"a": "1"}},
		{"repeated keys", "a=1&a=2", model.Record{"a": []any{"1", "2"}}},
		{
			"mixed with valid pairs",
			"discount=100%&email=a%40b.c&note=a;b",
			model.Record{"discount": "100%", "email": "a@b.c", "note": "a;b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseForm(tt.in)); diff != "" {
				t.Errorf("ParseForm(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestUnflatten(t *testing.T) {
	tests := []struct {
		name string
		in   model.Record
		want model.Record
	}{
		{
			name: "flat keys unchanged",
			in:   model.Record{"a": "1", "b": "2"},
			want: model.Record{"a": "1", "b": "2"},
		},
		{
			name: "dotted keys nest",
			in:   model.Record{"first_name": "Joe", "callcenter.additional_services": "script writing"},
			want: model.Record{
				"first_name": "Joe",
				"callcenter": map[string]any{"additional_services": "script writing"},
			},
		},
		{
			name: "siblings share a parent",
			in:   model.Record{"a.b.c": "1", "a.b.d": "2", "a.e": "3"},
			want: model.Record{
				"a": map[string]any{
					"b": map[string]any{"c": "1", "d": "2"},
					"e": "3",
				},
			},
		},
		{
			name: "scalar wins over dotted key",
			in:   model.Record{"a": "1", "a.b": "2"},
			want: model.Record{"a": "1"},
		},
		{
			name: "sequences kept as values",
			in:   model.Record{"a.b": []any{"1", "2"}},
			want: model.Record{"a": map[string]any{"b": []any{"1", "2"}}},
		},
		{
			name: "empty",
			in:   model.Record{},
			want: model.Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Unflatten(tt.in)); diff != "" {
				t.Errorf("Unflatten() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	in := model.Record{
		"first_name": "Joe",
		"address":    map[string]any{"city": "Austin", "geo": map[string]any{"lat": "30.2"}},
		"phones":     []any{"5125551111", "5125552222"},
		"empty":      map[string]any{},
	}

	t.Run("expands sequences", func(t *testing.T) {
		want := model.Record{
			"first_name":      "Joe",
			"address.city":    "Austin",
			"address.geo.lat": "30.2",
			"phones.0":        "5125551111",
			"phones.1":        "5125552222",
			"empty":           map[string]any{},
		}
		if diff := cmp.Diff(want, Flatten(in, false)); diff != "" {
			t.Errorf("Flatten() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("safe keeps sequences", func(t *testing.T) {
		got := Flatten(in, true)
		if diff := cmp.Diff([]any{"5125551111", "5125552222"}, got["phones"]); diff != "" {
			t.Errorf("Flatten(safe) phones mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("round trips through Unflatten", func(t *testing.T) {
		nested := model.Record{"a": map[string]any{"b": "1", "c": map[string]any{"d": "2"}}}
		if diff := cmp.Diff(nested, Unflatten(Flatten(nested, false))); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestMerge(t *testing.T) {
	base := model.Record{
		"a":    "1",
		"keep": "body",
		"nested": map[string]any{
			"x": "body-x",
			"y": "body-y",
		},
		"replaced": map[string]any{"z": "1"},
	}
	override := model.Record{
		"a":        "2",
		"extra":    "query",
		"nested":   map[string]any{"y": "query-y"},
		"replaced": "scalar",
	}

	got := Merge(base, override)

	want := model.Record{
		"a":     "2",
		"keep":  "body",
		"extra": "query",
		"nested": map[string]any{
			"x": "body-x",
			"y": "query-y",
		},
		"replaced": "scalar",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}

	if base["a"] != "1" {
		t.Errorf("base modified: a = %v", base["a"])
	}
	if nested := base["nested"].(map[string]any); nested["y"] != "body-y" {
		t.Errorf("base nested modified: y = %v", nested["y"])
	}
}

func TestLookup(t *testing.T) {
	r := model.Record{"lead": map[string]any{"id": "123"}, "outcome": "success"}

	if v, ok := Lookup(r, "lead.id"); !ok || v != "123" {
		t.Errorf("Lookup(lead.id) = %v, %v; want 123, true", v, ok)
	}
	if v, ok := Lookup(r, "outcome"); !ok || v != "success" {
		t.Errorf("Lookup(outcome) = %v, %v; want success, true", v, ok)
	}
	if _, ok := Lookup(r, "lead.url"); ok {
		t.Error("Lookup(lead.url) ok = true, want false")
	}
	if _, ok := Lookup(r, "outcome.x"); ok {
		t.Error("Lookup(outcome.x) ok = true, want false")
	}
}

func TestScalar(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "Joe", "Joe"},
		{"json number", json.Number("5127891111"), "5127891111"},
		{"float", 30.25, "30.25"},
		{"int", 42, "42"},
		{"true", true, "true"},
		{"false", false, ""},
		{"record", map[string]any{"a": "b"}, ""},
		{"sequence", []any{"a"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Scalar(tt.in); got != tt.want {
				t.Errorf("Scalar(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	r := model.Record{"lead": map[string]any{"id": json.Number("7")}}
	if got := String(r, "lead.id"); got != "7" {
		t.Errorf("String(lead.id) = %q, want %q", got, "7")
	}
	if got := String(r, "missing"); got != "" {
		t.Errorf("String(missing) = %q, want empty", got)
	}
}
