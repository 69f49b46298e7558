// File: internal/markup/json.go
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// json sorts map keys so encoded trees are stable across runs.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrTrailingData is returned when a JSON input holds more than one value.
var ErrTrailingData = errors.New("unexpected data after JSON value")

// DecodeJSON reads a single JSON value into generic Go values
// (map[string]any, []any, float64, string, bool, nil). An empty input decodes
// to nil.
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	// More() stops at a stray '}' or ']', so inspect the remainder directly.
	rest, err := io.ReadAll(io.MultiReader(dec.Buffered(), r))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if len(bytes.TrimLeft(rest, " \t\r\n")) > 0 {
		return nil, ErrTrailingData
	}
	return v, nil
}

// Encode writes v as one JSON document followed by a newline.
func Encode(w io.Writer, v any, indent bool) error {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
