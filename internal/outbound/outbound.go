// Package outbound formats requests to LeadConduit Classic and interprets its
// responses.
package outbound

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"leadconduit-classic/internal/model"
	"leadconduit-classic/internal/negotiate"
	"leadconduit-classic/internal/record"
)

// BaseURL is the LeadConduit Classic posting endpoint.
const BaseURL = "https://classic.leadconduit.com/v2/PostLeadAction"

// Routing keys understood by Classic.
const (
	AccountIDField  = "xxAccountId"
	CampaignIDField = "xxCampaignId"
	SiteIDField     = "xxSiteId"
)

// Request builds the Classic post for vars. The lead and classic.custom
// records are flattened into dotted keys next to the routing keys.
func Request(vars model.Record) *model.OutboundRequest {
	content := url.Values{}
	content.Set(AccountIDField, record.String(vars, AccountIDField))
	content.Set(CampaignIDField, record.String(vars, CampaignIDField))
	if site := record.String(vars, SiteIDField); site != "" {
		content.Set(SiteIDField, site)
	}

	if lead, ok := lookupRecord(vars, "lead"); ok {
		for k, v := range record.Flatten(lead, false) {
			content.Set(k, record.Scalar(v))
		}
	}

	if custom, ok := lookupRecord(vars, "classic.custom"); ok {
		for k, v := range record.Flatten(custom, true) {
			list, ok := v.([]any)
			if !ok {
				content.Set(k, record.Scalar(v))
				continue
			}
			content.Del(k)
			for _, item := range list {
				content.Add(k, record.Scalar(item))
			}
		}
	}

	return &model.OutboundRequest{
		URL:    BaseURL,
		Method: http.MethodPost,
		Header: http.Header{
			"Accept":       {negotiate.XML},
			"Content-Type": {negotiate.FormURLEncoded},
		},
		Body: content.Encode(),
	}
}

// Response interprets a Classic response. A 200 carries an XML document whose
// result, leadId and url become outcome, lead.id and lead.url; any other
// status is reported as an error outcome.
func Response(res *model.OutboundResponse) (model.Record, error) {
	if res.StatusCode != http.StatusOK {
		return model.Record{
			"outcome": "error",
			"reason":  "LeadConduit Classic error (" + strconv.Itoa(res.StatusCode) + ")",
		}, nil
	}

	event, err := record.FromXML(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse classic response: %w", err)
	}

	if v, ok := event["result"]; ok {
		event["outcome"] = v
	}

	lead := model.Record{}
	if v, ok := event["leadId"]; ok {
		lead["id"] = v
	}
	if v, ok := event["url"]; ok {
		lead["url"] = v
	}
	event["lead"] = lead

	if reasons, ok := event["reason"].([]any); ok {
		event["reason"] = joinSorted(reasons)
	}

	delete(event, "result")
	delete(event, "leadId")
	delete(event, "url")
	return event, nil
}

// joinSorted sorts reasons lexicographically and joins them with a bare comma.
func joinSorted(reasons []any) string {
	parts := make([]string, len(reasons))
	for i, r := range reasons {
		parts[i] = record.Scalar(r)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func lookupRecord(vars model.Record, path string) (model.Record, bool) {
	v, ok := record.Lookup(vars, path)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}
