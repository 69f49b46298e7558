// File: internal/markup/html.go
package markup

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/xkilldash9x/dimnorm/internal/tree"
)

// bodyContext is the context element for fragment parsing. Markup snippets are
// usually body content (<div>, <img>, ...), so that is what we parse them as.
var bodyContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// DecodeHTML parses an HTML fragment into a node tree. Attribute values are
// kept as strings, the style attribute becomes a nested map, whitespace-only
// text and comments are dropped. A single top-level node is returned as-is,
// several as []any, none as nil.
func DecodeHTML(r io.Reader) (any, error) {
	nodes, err := html.ParseFragment(r, bodyContext)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var out []any
	for _, n := range nodes {
		if v, ok := convertHTML(n); ok {
			out = append(out, v)
		}
	}
	return collapse(out), nil
}

func convertHTML(n *html.Node) (any, bool) {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil, false
		}
		return n.Data, true
	case html.ElementNode:
	default:
		// Comments, doctypes and raw document nodes carry nothing to render.
		return nil, false
	}

	props := make(tree.Props, len(n.Attr)+1)
	for _, attr := range n.Attr {
		key := attr.Key
		if attr.Namespace != "" {
			key = attr.Namespace + ":" + attr.Key
		}
		props[key] = attrValue(key, attr.Val)
	}

	var children []any
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if v, ok := convertHTML(c); ok {
			children = append(children, v)
		}
	}
	if v := collapse(children); v != nil {
		props[tree.PropChildren] = v
	}

	return &tree.Node{Type: n.Data, Props: props}, true
}

// attrValue maps a raw attribute onto its property value. Only the style
// attribute is structured; everything else stays a string for the normalizer.
func attrValue(key, val string) any {
	if key == tree.PropStyle {
		return StyleMap(val)
	}
	return val
}

// collapse mirrors how markup converters shape children: nothing, the only
// child, or the whole list.
func collapse(items []any) any {
	switch len(items) {
	case 0:
		return nil
	case 1:
		return items[0]
	default:
		return items
	}
}
