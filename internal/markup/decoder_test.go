// File: internal/markup/decoder_test.go
package markup

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xkilldash9x/dimnorm/internal/tree"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"JSON", FormatJSON, false},
		{" html ", FormatHTML, false},
		{"htm", FormatHTML, false},
		{"xml", FormatXML, false},
		{"svg", FormatXML, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat("tree.json"))
	assert.Equal(t, FormatJSON, DetectFormat("tree.JSON.br"))
	assert.Equal(t, FormatHTML, DetectFormat("card.html"))
	assert.Equal(t, FormatHTML, DetectFormat("card.htm"))
	assert.Equal(t, FormatXML, DetectFormat("icon.svg"))
	assert.Equal(t, FormatXML, DetectFormat("icon.xml.br"))
	assert.Equal(t, FormatAuto, DetectFormat("-"))
	assert.Equal(t, FormatAuto, DetectFormat("notes.txt"))
}

func TestSniff(t *testing.T) {
	assert.Equal(t, FormatJSON, Sniff([]byte(`  {"type":"img"}`)))
	assert.Equal(t, FormatJSON, Sniff([]byte(`[]`)))
	assert.Equal(t, FormatJSON, Sniff([]byte(`null`)))
	assert.Equal(t, FormatJSON, Sniff(nil))
	assert.Equal(t, FormatXML, Sniff([]byte(`<?xml version="1.0"?><svg/>`)))
	assert.Equal(t, FormatXML, Sniff([]byte("\n<svg width=\"1\"/>")))
	assert.Equal(t, FormatHTML, Sniff([]byte(`<div></div>`)))
	assert.Equal(t, FormatXML, Sniff([]byte("\ufeff<svg/>")), "a byte order mark is skipped")
	assert.Equal(t, FormatJSON, Sniff([]byte("\ufeff {}")))
}

func TestDecoder_Decode(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dec := NewDecoder(zap.New(core))

	t.Run("auto sniffs html", func(t *testing.T) {
		v, err := dec.Decode(strings.NewReader(`<img width="3">`), FormatAuto)
		require.NoError(t, err)
		assert.Equal(t, "3", v.(*tree.Node).Props["width"])
		assert.NotZero(t, logs.FilterMessage("Sniffed input format").Len())
	})

	t.Run("explicit json", func(t *testing.T) {
		v, err := dec.Decode(strings.NewReader(`{"type":"img"}`), FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, "img", v.(map[string]any)["type"])
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := dec.Decode(strings.NewReader(""), Format("yaml"))
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})

	t.Run("nil logger is allowed", func(t *testing.T) {
		v, err := NewDecoder(nil).Decode(strings.NewReader(`<svg width="1"/>`), FormatXML)
		require.NoError(t, err)
		assert.Equal(t, "svg", v.(*tree.Node).Type)
	})
}

func TestDecoder_DecodeFile(t *testing.T) {
	dir := t.TempDir()
	dec := NewDecoder(zap.NewNop())

	t.Run("plain file by extension", func(t *testing.T) {
		path := filepath.Join(dir, "card.html")
		require.NoError(t, os.WriteFile(path, []byte(`<img width="12px">`), 0o644))

		v, err := dec.DecodeFile(path, FormatAuto)
		require.NoError(t, err)
		assert.Equal(t, "12px", v.(*tree.Node).Props["width"])
	})

	t.Run("brotli compressed file", func(t *testing.T) {
		path := filepath.Join(dir, "tree.json.br")
		f, err := os.Create(path)
		require.NoError(t, err)
		w := brotli.NewWriter(f)
		_, err = io.WriteString(w, `{"type":"img","props":{"height":"9px"}}`)
		require.NoError(t, err)
		require.NoError(t, w.Close())
		require.NoError(t, f.Close())

		v, err := dec.DecodeFile(path, FormatAuto)
		require.NoError(t, err)
		props := v.(map[string]any)["props"].(map[string]any)
		assert.Equal(t, "9px", props["height"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := dec.DecodeFile(filepath.Join(dir, "nope.json"), FormatAuto)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("decode errors name the input", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))

		_, err := dec.DecodeFile(path, FormatAuto)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken.json")
	})

	t.Run("stdin", func(t *testing.T) {
		original := stdin
		stdin = strings.NewReader(`[{"type":"img"}]`)
		defer func() { stdin = original }()

		v, err := dec.DecodeFile(StdinName, FormatAuto)
		require.NoError(t, err)
		assert.Len(t, v, 1)
	})
}
