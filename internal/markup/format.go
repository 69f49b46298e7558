// File: internal/markup/format.go
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies the syntax of an input document.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
	FormatXML  Format = "xml"
)

// BrotliExt marks inputs that are brotli-compressed.
const BrotliExt = ".br"

// ErrUnknownFormat is returned for format names that are not supported.
var ErrUnknownFormat = errors.New("unknown input format")

// ParseFormat converts a user-supplied format name into a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatAuto, FormatJSON, FormatHTML, FormatXML:
		return f, nil
	case "":
		return FormatAuto, nil
	case "htm":
		return FormatHTML, nil
	case "svg":
		return FormatXML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// DetectFormat guesses the format from a file name. A trailing ".br" is
// ignored. FormatAuto is returned when the extension says nothing useful.
func DetectFormat(name string) Format {
	name = strings.TrimSuffix(strings.ToLower(name), BrotliExt)
	switch filepath.Ext(name) {
	case ".json":
		return FormatJSON
	case ".html", ".htm":
		return FormatHTML
	case ".xml", ".svg":
		return FormatXML
	default:
		return FormatAuto
	}
}

// Sniff guesses the format from the leading bytes of a document.
func Sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	switch {
	case len(trimmed) == 0:
		return FormatJSON
	case trimmed[0] == '{' || trimmed[0] == '[':
		return FormatJSON
	case bytes.HasPrefix(trimmed, []byte("<?xml")), bytes.HasPrefix(trimmed, []byte("<svg")):
		return FormatXML
	case trimmed[0] == '<':
		return FormatHTML
	default:
		return FormatJSON
	}
}
