package inbound

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"leadconduit-classic/internal/model"
	"leadconduit-classic/internal/negotiate"
	"leadconduit-classic/internal/record"
)

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ")

// parseBody decodes a trimmed, non-empty body according to its MIME type.
func parseBody(mimeType, body string) (model.Record, error) {
	switch mimeType {
	case negotiate.FormURLEncoded:
		return record.Unflatten(record.ParseForm(body)), nil
	case negotiate.JSON:
		return parseJSON(body)
	case negotiate.XML, negotiate.TextXML:
		return parseXML(body)
	default:
		return nil, fmt.Errorf("no parser for %q", mimeType)
	}
}

func parseJSON(body string) (model.Record, error) {
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()

	var r model.Record
	err := dec.Decode(&r)
	if err == nil {
		err = requireEOF(dec)
	}
	if err == nil && r == nil {
		err = errors.New("body is not a JSON object")
	}
	if err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			err = fmt.Errorf("body is not a JSON object (found %s)", typeErr.Value)
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			err = errors.New("unexpected end of JSON input")
		}
		return nil, model.NewHTTPError(http.StatusBadRequest,
			"Body does not contain JSON or JSON is unparseable -- "+newlines.Replace(err.Error())+".")
	}
	return r, nil
}

// requireEOF reports an error unless nothing but whitespace follows the
// first value. More alone misses a stray closing delimiter.
func requireEOF(dec *json.Decoder) error {
	var extra json.RawMessage
	err := dec.Decode(&extra)
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err == nil:
		return errors.New("unexpected data after top-level value")
	default:
		return err
	}
}

func parseXML(body string) (model.Record, error) {
	r, err := record.FromXML(body)
	if err != nil {
		return nil, model.NewHTTPError(http.StatusBadRequest,
			"Body does not contain XML or XML is unparseable -- "+newlines.Replace(err.Error())+".")
	}
	return r, nil
}
