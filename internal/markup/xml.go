// File: internal/markup/xml.go
package markup

import (
	"fmt"
	"io"

	"github.com/beevik/etree"

	"github.com/xkilldash9x/dimnorm/internal/tree"
)

// DecodeXML parses an XML document (typically SVG) into a node tree with the
// same shape DecodeHTML produces. Tags use the element's local name so that
// <svg:image> is treated like <image>.
func DecodeXML(r io.Reader) (any, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	var out []any
	for _, el := range doc.ChildElements() {
		out = append(out, convertXML(el))
	}
	return collapse(out), nil
}

func convertXML(el *etree.Element) *tree.Node {
	props := make(tree.Props, len(el.Attr)+1)
	for _, attr := range el.Attr {
		props[attr.FullKey()] = attrValue(attr.FullKey(), attr.Value)
	}

	var children []any
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.Element:
			children = append(children, convertXML(t))
		case *etree.CharData:
			if !t.IsWhitespace() {
				children = append(children, t.Data)
			}
		}
	}
	if v := collapse(children); v != nil {
		props[tree.PropChildren] = v
	}

	return &tree.Node{Type: el.Tag, Props: props}
}
