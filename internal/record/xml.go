package record

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"leadconduit-classic/internal/model"
)

// TextKey holds element text when the element also has attributes or children.
const TextKey = "_"

// ErrNotRecord is returned when the root element carries only text.
var ErrNotRecord = errors.New("root element does not contain fields")

type element struct {
	name   string
	fields model.Record
	text   strings.Builder
}

func (e *element) value() any {
	text := e.text.String()
	if len(e.fields) == 0 {
		return text
	}
	if strings.TrimSpace(text) != "" {
		e.fields[TextKey] = text
	}
	return e.fields
}

// FromXML decodes an XML document into a record. The root element is
// dropped. Attributes and child elements share one level; an element with
// neither attributes nor children becomes its text, and repeated siblings
// become a []any in document order.
func FromXML(doc string) (model.Record, error) {
	dec := xml.NewDecoder(strings.NewReader(doc))
	dec.CharsetReader = charset.NewReaderLabel

	var (
		stack    []*element
		root     any
		seenRoot bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if seenRoot && len(stack) == 0 {
				return nil, syntaxError(dec, "unexpected element <"+t.Name.Local+"> after root element")
			}
			seenRoot = true
			el := &element{name: t.Name.Local, fields: model.Record{}}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				addField(el.fields, a.Name.Local, a.Value)
			}
			stack = append(stack, el)

		case xml.EndElement:
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				root = el.value()
				continue
			}
			addField(stack[len(stack)-1].fields, el.name, el.value())

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
				continue
			}
			if strings.TrimSpace(string(t)) == "" {
				continue
			}
			if seenRoot {
				return nil, syntaxError(dec, "non-whitespace after root element")
			}
			return nil, syntaxError(dec, "non-whitespace before first tag")
		}
	}

	if !seenRoot {
		return nil, syntaxError(dec, "no root element")
	}

	switch r := root.(type) {
	case map[string]any:
		return r, nil
	case string:
		if strings.TrimSpace(r) == "" {
			return model.Record{}, nil
		}
	}
	return nil, ErrNotRecord
}

func addField(fields model.Record, name string, v any) {
	existing, ok := fields[name]
	if !ok {
		fields[name] = v
		return
	}
	if list, ok := existing.([]any); ok {
		fields[name] = append(list, v)
		return
	}
	fields[name] = []any{existing, v}
}

func syntaxError(dec *xml.Decoder, msg string) error {
	line, _ := dec.InputPos()
	return &xml.SyntaxError{Msg: msg, Line: line}
}
