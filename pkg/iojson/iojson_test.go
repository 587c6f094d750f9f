package iojson

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	t.Run("indented output", func(t *testing.T) {
		var out, errOut bytes.Buffer
		require.NoError(t, WriteWith(&out, &errOut, map[string]int{"a": 1}))

		assert.Equal(t, "{\n  \"a\": 1\n}\n", out.String())
		assert.Empty(t, errOut.String())
	})

	t.Run("marshal failure goes to error writer", func(t *testing.T) {
		var out, errOut bytes.Buffer
		require.NoError(t, WriteWith(&out, &errOut, math.Inf(1)))

		assert.Empty(t, out.String())
		assert.Contains(t, errOut.String(), "json_error")
	})
}

func TestWriteLine(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteLine(&out, map[string]string{"k": "v"}))
	require.NoError(t, WriteLine(&out, []int{1, 2}))

	assert.Equal(t, "{\"k\":\"v\"}\n[1,2]\n", out.String())
}

func TestWriteError(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteError(&out, "invalid todo", map[string]any{"errors": []string{"Title is required"}}))

	var got Error
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "invalid todo", got.Message)
	assert.Equal(t, []any{"Title is required"}, got.Data["errors"])
}

type doc struct {
	Title string `json:"title"`
}

func TestFileReader(t *testing.T) {
	t.Run("not provided", func(t *testing.T) {
		var fr FileReader[doc]
		assert.False(t, fr.Provided())

		_, err := fr.Read()
		assert.Error(t, err)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"title":"from file"}`), 0o644))

		fr := FileReader[doc]{fileFlagValue: path}
		got, err := fr.Read()
		require.NoError(t, err)
		assert.Equal(t, "from file", got.Title)
	})

	t.Run("stdin", func(t *testing.T) {
		fr := FileReader[doc]{fileFlagValue: StdinPath, Stdin: strings.NewReader(`{"title":"piped"}`)}
		assert.True(t, fr.Provided())

		got, err := fr.Read()
		require.NoError(t, err)
		assert.Equal(t, "piped", got.Title)
	})

	t.Run("missing file", func(t *testing.T) {
		fr := FileReader[doc]{fileFlagValue: filepath.Join(t.TempDir(), "nope.json")}
		_, err := fr.Read()
		assert.ErrorContains(t, err, "open file")
	})

	t.Run("bad json", func(t *testing.T) {
		fr := FileReader[doc]{fileFlagValue: StdinPath, Stdin: strings.NewReader(`{`)}
		_, err := fr.Read()
		assert.ErrorContains(t, err, "decode JSON")
	})
}
