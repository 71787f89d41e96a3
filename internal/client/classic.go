// Package client provides the HTTP client for LeadConduit Classic.
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"leadconduit-classic/internal/config"
	"leadconduit-classic/internal/metrics"
	"leadconduit-classic/internal/model"
)

const userAgent = "leadconduit-classic/1.0"

// maxResponseBytes caps how much of a Classic reply is read.
const maxResponseBytes = 1 << 20

// ClassicClient posts formatted leads to LeadConduit Classic.
type ClassicClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewClassicClient creates a ClassicClient with connection pooling and timeouts.
// The metrics parameter is optional; pass nil to disable upstream metrics recording.
func NewClassicClient(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *ClassicClient {
	transport := &http.Transport{
		MaxIdleConns:        cfg.Classic.IdleConnections,
		MaxIdleConnsPerHost: cfg.Classic.IdleConnections,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &ClassicClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.Classic.TimeoutSeconds) * time.Second,
		},
		logger:  logger.With("component", "classic_client"),
		metrics: m,
	}
}

// Do sends out and returns the fully read Classic response.
// The context controls the lifetime of the call.
func (c *ClassicClient) Do(ctx context.Context, out *model.OutboundRequest) (*model.OutboundResponse, error) {
	req, err := http.NewRequestWithContext(ctx, out.Method, out.URL, strings.NewReader(out.Body))
	if err != nil {
		return nil, fmt.Errorf("build classic request: %w", err)
	}
	req.Header = out.Header.Clone()
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("classic request",
		"method", req.Method,
		"host", req.URL.Host,
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start).Seconds()

	method := metrics.NormalizeMethod(req.Method)

	if err != nil {
		if c.metrics != nil {
			c.metrics.ClassicDuration.WithLabelValues(method).Observe(duration)
		}
		return nil, fmt.Errorf("classic request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read classic response: %w", err)
	}

	if c.metrics != nil {
		status := strconv.Itoa(resp.StatusCode)
		c.metrics.ClassicDuration.WithLabelValues(method).Observe(duration)
		c.metrics.ClassicResponses.WithLabelValues(method, status).Inc()
	}

	return &model.OutboundResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       string(body),
	}, nil
}
