package inbound

import (
	"leadconduit-classic/internal/model"
)

// RequestVariables lists the fields accepted from submitters.
func RequestVariables() []model.Variable {
	return []model.Variable{
		{Name: "*", Type: "wildcard"},
		{Name: RedirURLField, Type: "url", Description: "Where to redirect the submitter after the lead is processed", Example: "http://myserver.com/thankyou.html"},
	}
}

// ResponseVariables lists the fields rendered into the reply.
func ResponseVariables() []model.Variable {
	return []model.Variable{
		{Name: "lead.id", Type: "string", Description: "The lead identifier that the source should reference"},
		{Name: "outcome", Type: "string", Description: "The outcome of the transaction (default is success)"},
		{Name: "reason", Type: "string", Description: "If the outcome was a failure, this is the reason"},
	}
}

// OutputFields lists the fields produced by Request.
func OutputFields() []model.Variable {
	return []model.Variable{
		{Name: TrustedFormCertURLField, Type: "string"},
		{Name: "*", Type: "wildcard"},
	}
}
