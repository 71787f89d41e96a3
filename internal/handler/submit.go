package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"leadconduit-classic/internal/model"
	"leadconduit-classic/internal/service"
)

// SubmitHandler accepts lead submissions.
type SubmitHandler struct {
	service *service.SubmitService
	logger  *slog.Logger
}

// NewSubmitHandler creates a SubmitHandler.
func NewSubmitHandler(svc *service.SubmitService, logger *slog.Logger) *SubmitHandler {
	return &SubmitHandler{
		service: svc,
		logger:  logger.With("component", "submit_handler"),
	}
}

// Handle normalizes the submission and writes the XML reply.
func (h *SubmitHandler) Handle(c echo.Context) error {
	env, err := envelope(c.Request())
	if err != nil {
		return err
	}

	reply, err := h.service.Submit(c.Request().Context(), env)
	if err != nil {
		return h.mapError(c, err)
	}

	return write(c, reply.Status, reply.Header, reply.Body)
}

// envelope captures the request as an Envelope. The body length and chunked
// transfer signals are restored from the parsed request, since the server
// moves them out of the header map.
func envelope(req *http.Request) (*model.Envelope, error) {
	header := req.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	if header.Get("Content-Length") == "" && req.ContentLength > 0 {
		header.Set("Content-Length", strconv.FormatInt(req.ContentLength, 10))
	}
	for _, te := range req.TransferEncoding {
		if strings.EqualFold(te, "chunked") {
			header.Set("Transfer-Encoding", "chunked")
		}
	}

	var body []byte
	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		if err != nil {
			var he *echo.HTTPError
			if errors.As(err, &he) {
				return nil, he
			}
			return nil, echo.NewHTTPError(http.StatusBadRequest, "unable to read request body")
		}
		body = b
	}

	return &model.Envelope{
		Method: req.Method,
		URI:    req.RequestURI,
		Header: header,
		Body:   string(body),
	}, nil
}

// write sends body with status and the given headers.
func write(c echo.Context, status int, header http.Header, body string) error {
	contentType := header.Get("Content-Type")
	for key, vals := range header {
		if key == "Content-Type" {
			continue
		}
		for _, v := range vals {
			c.Response().Header().Add(key, v)
		}
	}
	return c.Blob(status, contentType, []byte(body))
}

func (h *SubmitHandler) mapError(c echo.Context, err error) error {
	path := c.Request().URL.Path

	var he *model.HTTPError
	if errors.As(err, &he) {
		h.logger.Info("submission rejected",
			"status", he.Status,
			"reason", he.Body,
			"path", path,
		)
		return write(c, he.Status, he.Header, he.Body)
	}

	h.logger.Error("classic error",
		"err", err,
		"path", path,
	)

	if errors.Is(err, context.DeadlineExceeded) {
		return c.JSON(http.StatusGatewayTimeout, map[string]string{
			"error": "classic request timed out",
		})
	}

	if errors.Is(err, context.Canceled) {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "client disconnected",
		})
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "classic host unreachable",
		})
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return c.JSON(http.StatusGatewayTimeout, map[string]string{
				"error": "classic request timed out",
			})
		}
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "classic connection failed",
		})
	}

	return c.JSON(http.StatusBadGateway, map[string]string{
		"error": "classic request failed",
	})
}
