package message

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// ErrParse is returned when a response body is not well-formed XML.
var ErrParse = errors.New("response is not well-formed XML")

// Node is a namespace-normalized view of an XML element. Keys are tag
// and attribute names passed through NormalizeName; attribute values
// are merged onto the owning node. A value is one of:
//
//   - string: an attribute value, or the text of a childless element
//   - Node:   a single element child
//   - []any:  a repeated element child, one entry per occurrence
//
// Multiplicity mirrors the source document: single-occurrence elements
// are not forced into slices. Element text that coexists with
// attributes is stored under the key "_".
type Node map[string]any

// Child returns the named field as a single child node.
func (n Node) Child(name string) (Node, bool) {
	c, ok := n[name].(Node)
	return c, ok
}

// Text returns the named field as a string value.
func (n Node) Text(name string) (string, bool) {
	s, ok := n[name].(string)
	return s, ok
}

// Slice returns the named field coerced to a slice: a scalar field is
// wrapped into a single-element slice, a repeated field is returned
// as-is.
func (n Node) Slice(name string) ([]any, bool) {
	v, ok := n[name]
	if !ok {
		return nil, false
	}
	if s, ok := v.([]any); ok {
		return s, true
	}
	return []any{v}, true
}

// Normalize parses raw XML and converts it into a Node tree keyed by
// normalized names. The root element appears as the single key of the
// returned node.
func Normalize(data []byte) (Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrParse)
	}
	return Node{NormalizeName(root.Tag): normalizeElement(root)}, nil
}

// normalizeElement converts one element. Childless, attributeless
// elements collapse to their text; everything else becomes a Node with
// attributes merged in last, only under names no child claimed, so
// element children win name clashes.
func normalizeElement(e *etree.Element) any {
	children := e.ChildElements()
	if len(children) == 0 && len(e.Attr) == 0 {
		return e.Text()
	}

	n := Node{}
	for _, child := range children {
		name := NormalizeName(child.Tag)
		value := normalizeElement(child)
		switch existing := n[name].(type) {
		case nil:
			n[name] = value
		case []any:
			n[name] = append(existing, value)
		default:
			n[name] = []any{existing, value}
		}
	}
	for _, a := range e.Attr {
		name := NormalizeName(a.Key)
		if _, taken := n[name]; !taken {
			n[name] = a.Value
		}
	}
	if len(children) == 0 {
		if text := e.Text(); strings.TrimSpace(text) != "" {
			n["_"] = text
		}
	}
	return n
}
