// File: internal/dimension/coerce.go
package dimension

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

const (
	// Auto is the keyword that must survive normalization verbatim.
	Auto = "auto"
	// PixelSuffix is stripped before parsing.
	PixelSuffix = "px"
	// PercentSuffix marks a relative length that must survive verbatim.
	PercentSuffix = "%"
)

// Coerce normalizes a CSS-like dimension value to a number when that is safe.
//
// Numbers pass through untouched. Numeric strings, optionally suffixed with
// "px", become float64; a blank string (or a bare "px") becomes 0.
// Percentages, the "auto" keyword, non-string values and anything that does
// not parse are returned exactly as given. Coerce is total
// and idempotent: Coerce(Coerce(v)) == Coerce(v) for every v.
func Coerce(value any) any {
	if IsNumber(value) {
		return value
	}
	s, ok := value.(string)
	if !ok {
		return value
	}

	trimmed := TrimSpace(s)
	if strings.HasSuffix(trimmed, PercentSuffix) || trimmed == Auto {
		return value
	}

	if n, ok := ParseNumber(strings.TrimSuffix(trimmed, PixelSuffix)); ok {
		return n
	}
	return value
}

// IsNumber reports whether v already holds a numeric Go value.
func IsNumber(v any) bool {
	switch v.(type) {
	case float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		json.Number:
		return true
	}
	return false
}

// ParseNumber parses the numeric part of a dimension the way a browser's
// Number() does. It accepts decimal floats (with optional sign and exponent)
// and unsigned 0x/0o/0b integer literals; surrounding whitespace, including a
// byte order mark, is ignored and empty input is 0. NaN and infinities are
// rejected so the caller keeps the original string.
func ParseNumber(s string) (float64, bool) {
	s = TrimSpace(s)
	if s == "" {
		return 0, true
	}
	// Digit separators are Go literal syntax only.
	if strings.Contains(s, "_") {
		return 0, false
	}

	if base := radixBase(s); base != 0 {
		return parseRadix(s[2:], base)
	}
	// Hex floats ("0x1p4", "-0x10") are another Go-only spelling.
	if strings.ContainsAny(s, "xXpP") {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// TrimSpace strips the characters a browser treats as surrounding whitespace.
// Unlike strings.TrimSpace it also strips U+FEFF and keeps U+0085.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	if r == '\ufeff' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

// radixBase returns 16, 8 or 2 for an unsigned 0x/0o/0b prefix, else 0.
func radixBase(s string) int {
	if len(s) < 2 || s[0] != '0' {
		return 0
	}
	switch s[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

// parseRadix converts the digits after a radix prefix. Values beyond 64 bits
// round to the nearest float64 rather than failing.
func parseRadix(digits string, base int) (float64, bool) {
	if digits == "" {
		return 0, false
	}
	for _, c := range digits {
		if digitValue(c) >= base {
			return 0, false
		}
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return 0, false
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	if math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// digitValue returns the value of an alphanumeric digit, or 36 for anything else.
func digitValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return 36
}
