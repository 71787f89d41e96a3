package client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"leadconduit-classic/internal/config"
	"leadconduit-classic/internal/metrics"
	"leadconduit-classic/internal/model"
)

func testConfig(timeout int) *config.Config {
	return &config.Config{
		Classic: config.ClassicConfig{
			TimeoutSeconds:  timeout,
			IdleConnections: 10,
		},
	}
}

func TestClassicClient_Do(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %q, want POST", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != userAgent {
			t.Errorf("User-Agent = %q, want %q", got, userAgent)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		if got := r.PostForm.Get("xxAccountId"); got != "acct" {
			t.Errorf("xxAccountId = %q, want acct", got)
		}
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<response><result>success</result></response>`))
	}))
	defer srv.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()
	c := NewClassicClient(testConfig(10), logger, m)

	resp, err := c.Do(context.Background(), &model.OutboundRequest{
		URL:    srv.URL,
		Method: http.MethodPost,
		Header: http.Header{"Content-Type": {"application/x-www-form-urlencoded"}},
		Body:   "xxAccountId=acct&xxCampaignId=camp",
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if resp.Body != `<response><result>success</result></response>` {
		t.Errorf("Body = %q", resp.Body)
	}

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() != "leadconduit_classic_upstream_responses_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			labels := make(map[string]string)
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["method"] == "POST" && labels["status_code"] == "200" {
				found = true
				if v := metric.GetCounter().GetValue(); v != 1 {
					t.Errorf("counter value = %v, want 1", v)
				}
			}
		}
	}
	if !found {
		t.Error("expected leadconduit_classic_upstream_responses_total with method=POST, status_code=200")
	}
}

func TestClassicClient_Do_Error(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewClassicClient(testConfig(1), logger, nil)

	_, err := c.Do(context.Background(), &model.OutboundRequest{
		URL:    "http://127.0.0.1:1/nonexistent",
		Method: http.MethodPost,
	})
	if err == nil {
		t.Fatal("Do() expected error for unreachable host, got nil")
	}
}

func TestClassicClient_Do_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Slow Classic endpoint; the request should be canceled before this completes.
		time.Sleep(5 * time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewClassicClient(testConfig(30), logger, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Do(ctx, &model.OutboundRequest{URL: srv.URL, Method: http.MethodPost})
	if err == nil {
		t.Fatal("Do() expected error for canceled context, got nil")
	}
}
