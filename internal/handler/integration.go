package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"leadconduit-classic/internal/inbound"
	"leadconduit-classic/internal/model"
	"leadconduit-classic/internal/outbound"
)

// integration describes the fields consumed and produced by each side.
type integration struct {
	Inbound  inboundVariables  `json:"inbound"`
	Outbound outboundVariables `json:"outbound"`
}

type inboundVariables struct {
	Request  []model.Variable `json:"request"`
	Response []model.Variable `json:"response"`
	Output   []model.Variable `json:"output"`
}

type outboundVariables struct {
	Request  []model.Variable `json:"request"`
	Response []model.Variable `json:"response"`
}

// Integration returns the declared variables as JSON.
func Integration(c echo.Context) error {
	return c.JSON(http.StatusOK, integration{
		Inbound: inboundVariables{
			Request:  inbound.RequestVariables(),
			Response: inbound.ResponseVariables(),
			Output:   inbound.OutputFields(),
		},
		Outbound: outboundVariables{
			Request:  outbound.RequestVariables(),
			Response: outbound.ResponseVariables(),
		},
	})
}
