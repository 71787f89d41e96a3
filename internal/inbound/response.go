package inbound

import (
	"encoding/xml"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"leadconduit-classic/internal/model"
	"leadconduit-classic/internal/record"
)

// Fixed locations referenced by the reply document.
const (
	ResponseDTD = "https://app.leadconduit.com/dtd/response-v2-basic.dtd"
	LeadURLBase = "https://app.leadconduit.com/leads?id="
)

// Response renders the XML reply for a processed lead from the outcome,
// reason and lead.id variables.
func Response(vars model.Record) *model.Reply {
	outcome := record.String(vars, "outcome")
	reason := record.String(vars, "reason")
	leadID := record.String(vars, "lead.id")

	var b strings.Builder
	b.WriteString(`<!DOCTYPE response SYSTEM "` + ResponseDTD + `">` + "\n")
	b.WriteString("<response>\n")
	b.WriteString("  <result>" + escape(outcome) + "</result>\n")
	if reason != "" {
		b.WriteString("  <reason>" + escape(reason) + "</reason>\n")
	}
	b.WriteString("  <leadId>" + escape(leadID) + "</leadId>\n")
	b.WriteString("  <url><![CDATA[" + LeadURLBase + url.QueryEscape(leadID) + "]]></url>\n")
	b.WriteString("</response>\n")

	body := b.String()
	return &model.Reply{
		Status: http.StatusCreated,
		Header: http.Header{
			"Content-Type":   {"application/xml"},
			"Content-Length": {strconv.Itoa(len(body))},
		},
		Body: body,
	}
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
