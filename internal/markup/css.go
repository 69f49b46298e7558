// File: internal/markup/css.go
package markup

import (
	"errors"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Declaration is a single property/value pair from an inline style attribute.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// ParseInlineStyle splits a style attribute into declarations. Property names
// are lower-cased; values are the declaration's tokens with whitespace
// collapsed, minus any "!important". Malformed declarations are skipped.
func ParseInlineStyle(attr string) []Declaration {
	p := css.NewParser(parse.NewInputString(attr), true)

	var decls []Declaration
	// Each grammar consumes at least one byte of input.
	for range len(attr) + 1 {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if errors.Is(p.Err(), io.EOF) {
				return decls
			}
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			if d, ok := newDeclaration(string(data), p.Values()); ok {
				decls = append(decls, d)
			}
		}
	}
	return decls
}

func newDeclaration(prop string, values []css.Token) (Declaration, bool) {
	var b strings.Builder
	for _, v := range values {
		b.Write(v.Data)
	}
	val, important := stripImportant(strings.TrimSpace(b.String()))
	if prop == "" || val == "" {
		return Declaration{}, false
	}
	return Declaration{Property: strings.ToLower(prop), Value: val, Important: important}, true
}

// stripImportant removes a trailing "!important" (any case, optional space
// after the "!").
func stripImportant(val string) (string, bool) {
	const keyword = "important"
	if len(val) < len(keyword) || !strings.EqualFold(val[len(val)-len(keyword):], keyword) {
		return val, false
	}
	head := strings.TrimSpace(val[:len(val)-len(keyword)])
	if !strings.HasSuffix(head, "!") {
		return val, false
	}
	return strings.TrimSpace(strings.TrimSuffix(head, "!")), true
}

// StyleMap turns an inline style attribute into the nested style map carried
// by a node. Keys are camelCased ("background-color" -> "backgroundColor");
// custom properties ("--x") keep their name. Later declarations win unless an
// earlier one is !important.
func StyleMap(attr string) map[string]any {
	decls := ParseInlineStyle(attr)
	style := make(map[string]any, len(decls))
	important := make(map[string]bool, len(decls))
	for _, d := range decls {
		key := camelCase(d.Property)
		if important[key] && !d.Important {
			continue
		}
		style[key] = d.Value
		important[key] = d.Important
	}
	return style
}

func camelCase(prop string) string {
	if strings.HasPrefix(prop, "--") || !strings.Contains(prop, "-") {
		return prop
	}
	// Vendor prefixes keep an upper-case initial, e.g. -webkit-box -> WebkitBox.
	parts := strings.Split(prop, "-")
	var b strings.Builder
	b.Grow(len(prop))
	first := true
	for _, part := range parts {
		if part == "" {
			first = false
			continue
		}
		if first {
			b.WriteString(part)
			first = false
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
