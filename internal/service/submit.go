// Package service implements the lead submission pipeline.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"leadconduit-classic/internal/client"
	"leadconduit-classic/internal/config"
	"leadconduit-classic/internal/inbound"
	"leadconduit-classic/internal/metrics"
	"leadconduit-classic/internal/model"
	"leadconduit-classic/internal/outbound"
)

// allowedClassicHosts restricts which hosts leads are forwarded to.
var allowedClassicHosts = map[string]bool{
	"classic.leadconduit.com": true,
}

// SubmitService normalizes submissions and, when routing is configured,
// forwards them to LeadConduit Classic.
type SubmitService struct {
	client  *client.ClassicClient
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	baseURL *url.URL
}

// NewSubmitService creates a SubmitService. The metrics parameter is optional.
func NewSubmitService(c *client.ClassicClient, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*SubmitService, error) {
	s, err := NewSubmitServiceForTest(c, cfg, logger, m)
	if err != nil {
		return nil, err
	}
	if !allowedClassicHosts[s.baseURL.Hostname()] {
		return nil, fmt.Errorf("classic host %q is not in the allowlist", s.baseURL.Hostname())
	}
	return s, nil
}

// NewSubmitServiceForTest creates a SubmitService without host allowlist validation.
// This is intended only for tests that use httptest servers on localhost.
func NewSubmitServiceForTest(c *client.ClassicClient, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*SubmitService, error) {
	raw := cfg.Classic.BaseURL
	if raw == "" {
		raw = outbound.BaseURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse classic base_url: %w", err)
	}

	return &SubmitService{
		client:  c,
		cfg:     cfg,
		logger:  logger.With("component", "submit_service"),
		metrics: m,
		baseURL: u,
	}, nil
}

// Submit normalizes env and renders the reply. Normalization failures are
// returned as *model.HTTPError; Classic transport failures are wrapped.
func (s *SubmitService) Submit(ctx context.Context, env *model.Envelope) (*model.Reply, error) {
	lead, err := inbound.Request(env)
	if err != nil {
		s.countRejection(err)
		return nil, err
	}

	var result model.Record
	if s.cfg.Classic.Forwarding() {
		result, err = s.forward(ctx, lead)
		if err != nil {
			return nil, err
		}
	} else {
		result = model.Record{
			"outcome": "success",
			"lead":    map[string]any{"id": uuid.NewString()},
		}
	}

	if s.metrics != nil {
		outcome, _ := result["outcome"].(string)
		s.metrics.SubmissionsTotal.WithLabelValues(metrics.NormalizeOutcome(outcome)).Inc()
	}

	s.logger.Debug("lead processed",
		"outcome", result["outcome"],
		"fields", len(lead),
	)

	return inbound.Response(result), nil
}

func (s *SubmitService) forward(ctx context.Context, lead model.Record) (model.Record, error) {
	custom := make(map[string]any, len(s.cfg.Classic.Custom))
	for k, v := range s.cfg.Classic.Custom {
		custom[k] = v
	}

	vars := model.Record{
		outbound.AccountIDField:  s.cfg.Classic.AccountID,
		outbound.CampaignIDField: s.cfg.Classic.CampaignID,
		outbound.SiteIDField:     s.cfg.Classic.SiteID,
		"lead":                   lead,
		"classic":                map[string]any{"custom": custom},
	}

	req := outbound.Request(vars)
	req.URL = s.baseURL.String()

	res, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("forward to classic: %w", err)
	}

	result, err := outbound.Response(res)
	if err != nil {
		return nil, fmt.Errorf("forward to classic: %w", err)
	}
	return result, nil
}

func (s *SubmitService) countRejection(err error) {
	if s.metrics == nil {
		return
	}
	var he *model.HTTPError
	if errors.As(err, &he) {
		s.metrics.RejectionsTotal.WithLabelValues(strconv.Itoa(he.Status)).Inc()
	}
}
