// File: internal/markup/decoder.go
package markup

import (
	"bytes"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Decoder turns markup documents into node trees ready for normalization.
type Decoder struct {
	logger *zap.Logger
}

// NewDecoder creates a Decoder. A nil logger disables logging.
func NewDecoder(logger *zap.Logger) *Decoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Decoder{logger: logger.Named("markup")}
}

// Decode reads r in the given format. FormatAuto buffers the input and sniffs
// its leading bytes.
func (d *Decoder) Decode(r io.Reader, format Format) (any, error) {
	if format == FormatAuto || format == "" {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		format = Sniff(data)
		d.logger.Debug("Sniffed input format", zap.String("format", string(format)), zap.Int("bytes", len(data)))
		r = bytes.NewReader(data)
	}

	switch format {
	case FormatJSON:
		return DecodeJSON(r)
	case FormatHTML:
		return DecodeHTML(r)
	case FormatXML:
		return DecodeXML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// DecodeFile opens name (see Open), resolves the format from the explicit
// format or the file extension, and decodes it.
func (d *Decoder) DecodeFile(name string, format Format) (any, error) {
	rc, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	if format == FormatAuto || format == "" {
		format = DetectFormat(name)
	}
	d.logger.Debug("Decoding input", zap.String("input", name), zap.String("format", string(format)))

	v, err := d.Decode(rc, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}
