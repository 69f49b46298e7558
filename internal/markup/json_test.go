// File: internal/markup/json_test.go
package markup

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/dimnorm/internal/tree"
)

func TestDecodeJSON(t *testing.T) {
	t.Run("generic tree", func(t *testing.T) {
		v, err := DecodeJSON(strings.NewReader(`{"type":"img","props":{"width":"78","height":78}}`))
		require.NoError(t, err)

		m := v.(map[string]any)
		assert.Equal(t, "img", m["type"])
		props := m["props"].(map[string]any)
		assert.Equal(t, "78", props["width"])
		assert.Equal(t, 78.0, props["height"])
	})

	t.Run("null and empty input decode to nil", func(t *testing.T) {
		v, err := DecodeJSON(strings.NewReader("null"))
		require.NoError(t, err)
		assert.Nil(t, v)

		v, err = DecodeJSON(strings.NewReader(""))
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("trailing data is rejected", func(t *testing.T) {
		for _, input := range []string{
			`{"type":"a"} {"type":"b"}`,
			`{"type":"img"}}`,
			`{"type":"img"}]`,
			`[1] x`,
		} {
			_, err := DecodeJSON(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrTrailingData, input)
		}
	})

	t.Run("trailing whitespace is fine", func(t *testing.T) {
		v, err := DecodeJSON(strings.NewReader("{\"type\":\"img\"}\n\t \r\n"))
		require.NoError(t, err)
		assert.Equal(t, "img", v.(map[string]any)["type"])
	})

	t.Run("malformed input", func(t *testing.T) {
		_, err := DecodeJSON(strings.NewReader(`{"type":`))
		assert.Error(t, err)
	})
}

func TestEncode(t *testing.T) {
	node := &tree.Node{Type: "img", Props: tree.Props{"width": 78.0, "height": "auto", "alt": "x"}}

	t.Run("compact output has sorted keys", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, node, false))
		assert.Equal(t, `{"type":"img","props":{"alt":"x","height":"auto","width":78}}`+"\n", buf.String())
	})

	t.Run("indented output", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, node, true))
		assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"type\""), buf.String())
		assert.JSONEq(t, `{"type":"img","props":{"alt":"x","height":"auto","width":78}}`, buf.String())
	})

	t.Run("nil encodes as null", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, nil, false))
		assert.Equal(t, "null\n", buf.String())
	})
}

func TestJSONRoundTrip_Normalize(t *testing.T) {
	in := `[{"type":"img","props":{"width":"10","height":"20px"}},{"type":"div","props":{"style":{"width":"1px","height":"50%"},"children":"text"}}]`

	v, err := DecodeJSON(strings.NewReader(in))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, tree.Normalize(v), false))
	assert.JSONEq(t,
		`[{"type":"img","props":{"width":10,"height":20}},{"type":"div","props":{"style":{"width":1,"height":"50%"},"children":"text"}}]`,
		buf.String())
}
