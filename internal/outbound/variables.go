package outbound

import (
	"leadconduit-classic/internal/model"
)

// RequestVariables lists the fields consumed by Request.
func RequestVariables() []model.Variable {
	return []model.Variable{
		{Name: AccountIDField, Type: "string", Required: true, Description: "LeadConduit Classic account ID"},
		{Name: CampaignIDField, Type: "string", Required: true, Description: "LeadConduit Classic campaign ID"},
		{Name: SiteIDField, Type: "string", Description: "LeadConduit Classic site ID"},
		{Name: "classic.custom.*", Type: "wildcard"},
	}
}

// ResponseVariables lists the fields produced by Response.
func ResponseVariables() []model.Variable {
	return []model.Variable{
		{Name: "outcome", Type: "string", Description: "lead-processing result"},
		{Name: "reason", Type: "string", Description: "in case of failure, the reason for failure"},
		{Name: "lead.id", Type: "string", Description: "ID of the lead in LeadConduit Classic"},
		{Name: "lead.url", Type: "string", Description: "URL of the lead in LeadConduit Classic"},
	}
}
