package legacy

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyDocument is returned when the input holds no recognised element.
var ErrEmptyDocument = errors.New("legacy document has no root node")

// Parse reads a legacy object-graph document and returns its root node.
//
// Unknown elements are skipped. Reference nodes are resolved against instances
// carrying a matching reference attribute once the whole document is read.
func Parse(r io.Reader) (*Node, error) {
	p := &parser{
		decoder:   xml.NewDecoder(r),
		instances: make(map[string]*Node),
	}
	p.decoder.Strict = false

	root, err := p.parseDocument()
	if err != nil {
		return nil, err
	}
	p.resolveReferences()
	return root, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(input string) (*Node, error) {
	return Parse(strings.NewReader(input))
}

type parser struct {
	decoder    *xml.Decoder
	instances  map[string]*Node
	references []*Node
}

func (p *parser) parseDocument() (*Node, error) {
	for {
		tok, err := p.decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read legacy XML: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		node, err := p.parseElement(start)
		if err != nil {
			return nil, err
		}
		if node != nil {
			return node, nil
		}
	}
}

// parseElement consumes start and everything up to its matching end element.
// It returns nil for elements outside the legacy vocabulary.
func (p *parser) parseElement(start xml.StartElement) (*Node, error) {
	switch start.Name.Local {
	case "dictionary":
		node := &Node{Kind: KindDictionary}
		children, err := p.parseChildren(start)
		if err != nil {
			return nil, err
		}
		node.Children = children
		return node, nil

	case "list", "tuple":
		node := &Node{Kind: KindList}
		children, err := p.parseChildren(start)
		if err != nil {
			return nil, err
		}
		node.Children = children
		return node, nil

	case "instance":
		node := &Node{
			Kind:  KindInstance,
			Class: attr(start, "class"),
			Ref:   attr(start, "reference"),
		}
		children, err := p.parseChildren(start)
		if err != nil {
			return nil, err
		}
		node.Children = children
		if node.Ref != "" {
			p.instances[node.Ref] = node
		}
		return node, nil

	case "reference":
		node := &Node{Kind: KindReference, Value: attr(start, "key")}
		p.references = append(p.references, node)
		return node, p.decoder.Skip()

	case "string":
		kind := KindString
		if attr(start, "role") == "key" {
			kind = KindKey
		}
		return p.parseLeaf(start, kind)

	case "unicode":
		return p.parseLeaf(start, KindUnicode)

	case "bool":
		return p.parseLeaf(start, KindBool)

	case "int", "long", "float":
		return p.parseLeaf(start, KindInt)

	case "none":
		return &Node{Kind: KindNone}, p.decoder.Skip()

	default:
		return nil, p.decoder.Skip()
	}
}

func (p *parser) parseChildren(start xml.StartElement) ([]*Node, error) {
	var children []*Node
	for {
		tok, err := p.decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read <%s> children: %w", start.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := p.parseElement(t)
			if err != nil {
				return nil, err
			}
			if child != nil {
				children = append(children, child)
			}
		case xml.EndElement:
			return children, nil
		}
	}
}

// parseLeaf reads a leaf whose text lives either in the value attribute or in
// the element's character data.
func (p *parser) parseLeaf(start xml.StartElement, kind Kind) (*Node, error) {
	node := &Node{Kind: kind}
	value, hasValue := lookupAttr(start, "value")

	var text strings.Builder
	for {
		tok, err := p.decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read <%s> value: %w", start.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			if err := p.decoder.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if hasValue {
				node.Value = value
			} else {
				node.Value = text.String()
			}
			return node, nil
		}
	}
}

func (p *parser) resolveReferences() {
	for _, ref := range p.references {
		ref.target = p.instances[ref.Value]
	}
}

func attr(start xml.StartElement, name string) string {
	value, _ := lookupAttr(start, name)
	return value
}

func lookupAttr(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
