package project

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const xmlRootElement = "project"

type xmlElement struct {
	name     string
	attrs    []xml.Attr
	children []*xmlElement
	text     strings.Builder
}

// decodeXML converts an XML description into the generic map form the other
// formats decode to: element names are keys, attributes are string values,
// repeated elements become lists and leaf elements become their text.
func decodeXML(data []byte) (map[string]any, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		root  *xmlElement
		stack []*xmlElement
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
			el := &xmlElement{name: t.Name.Local, attrs: t.Attr}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			} else if root == nil {
				root = el
			} else {
				return nil, fmt.Errorf("unexpected second root element <%s>", el.name)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New("empty document")
	}
	if root.name != xmlRootElement {
		return nil, fmt.Errorf("expected root element <%s>, got <%s>", xmlRootElement, root.name)
	}

	switch v := root.value().(type) {
	case map[string]any:
		return v, nil
	default:
		return make(map[string]any), nil
	}
}

func (e *xmlElement) value() any {
	if len(e.children) == 0 && len(e.attrs) == 0 {
		text := e.text.String()
		if e.name != contentsKey || strings.TrimSpace(text) == "" {
			text = strings.TrimSpace(text)
		}
		return text
	}

	m := make(map[string]any, len(e.children)+len(e.attrs))
	for _, attr := range e.attrs {
		m[attr.Name.Local] = attr.Value
	}

	repeated := make(map[string]bool)
	for _, child := range e.children {
		v := child.value()
		existing, ok := m[child.name]
		switch {
		case !ok:
			m[child.name] = v
		case repeated[child.name]:
			m[child.name] = append(existing.([]any), v)
		default:
			m[child.name] = []any{existing, v}
			repeated[child.name] = true
		}
	}
	return m
}
