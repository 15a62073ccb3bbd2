package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/kvdig/pkg/dig"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Format
	}{
		{name: "json object", input: `{"name": "test"}`, want: FormatJSON},
		{name: "json array", input: `[1, 2, 3]`, want: FormatJSON},
		{name: "yaml mapping", input: "name: test\nvalue: 42", want: FormatYAML},
		{name: "multi-doc yaml", input: "name: a\n---\nname: b", want: FormatYAML},
		{name: "ndjson", input: "{\"id\": 1}\n{\"id\": 2}", want: FormatNDJSON},
		{name: "toml section", input: "[server]\nhost = \"localhost\"", want: FormatTOML},
		{name: "toml key values", input: "title = \"x\"\nversion = 2", want: FormatTOML},
		{name: "yaml list", input: "- a\n- b\n- c", want: FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.input))
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("a/b.JSON"))
	assert.Equal(t, FormatNDJSON, FormatFromPath("events.jsonl"))
	assert.Equal(t, FormatYAML, FormatFromPath("c.yml"))
	assert.Equal(t, FormatTOML, FormatFromPath("Cargo.toml"))
	assert.Equal(t, FormatAuto, FormatFromPath("README"))
}

func TestLoadJSON(t *testing.T) {
	root, err := Load(`{"a": {"b": [1, 2]}}`, FormatAuto)
	require.NoError(t, err)

	// JSON numbers decode as float64
	n, err := dig.As[float64](root, "a", "b", 1)
	require.NoError(t, err)
	assert.Equal(t, float64(2), n)

	t.Run("invalid JSON falls back to YAML", func(t *testing.T) {
		got, err := Load(`{invalid}`, FormatAuto)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"invalid": nil}, got)
	})

	t.Run("one-line JSON array is not TOML", func(t *testing.T) {
		got, err := Load(`["a"]`, FormatAuto)
		require.NoError(t, err)
		assert.Equal(t, []any{"a"}, got)
	})

	t.Run("explicit JSON with bad content fails", func(t *testing.T) {
		_, err := Load(`{"a": `, FormatJSON)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid JSON")
	})
}

func TestLoadYAML(t *testing.T) {
	root, err := Load("person:\n  name: Alice\n  age: 30\n", FormatAuto)
	require.NoError(t, err)

	// YAML integers decode as int
	age, err := dig.As[int](root, "person", "age")
	require.NoError(t, err)
	assert.Equal(t, 30, age)
}

func TestLoadMultiDocYAML(t *testing.T) {
	input := "name: Alice\nage: 30\n---\nname: Bob\nage: 25\n---\nname: Charlie\nage: 35"

	docs, err := LoadDocuments(input, FormatAuto)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	for _, doc := range docs {
		assert.IsType(t, map[string]any{}, doc)
	}

	root, err := Load(input, FormatAuto)
	require.NoError(t, err)
	name, err := dig.As[string](root, 1, "name")
	require.NoError(t, err)
	assert.Equal(t, "Bob", name)
}

func TestLoadNDJSON(t *testing.T) {
	input := `{"id": 1, "message": "first"}

this is a plain string line
{"id": 2, "message": "second"}
{"id": 3} trailing`

	docs, err := LoadDocuments(input, FormatAuto)
	require.NoError(t, err)
	require.Len(t, docs, 4)
	assert.IsType(t, map[string]any{}, docs[0])
	assert.Equal(t, "this is a plain string line", docs[1])
	assert.IsType(t, map[string]any{}, docs[2])
	assert.Equal(t, `{"id": 3} trailing`, docs[3])
}

func TestLoadTOML(t *testing.T) {
	input := `title = "Sample"

[server]
host = "localhost"
port = 8080

[[users]]
name = "Alice"
roles = ["admin", "user"]

[[users]]
name = "Bob"
roles = ["user"]`

	root, err := Load(input, FormatAuto)
	require.NoError(t, err)

	port, err := dig.As[int64](root, "server", "port")
	require.NoError(t, err)
	assert.Equal(t, int64(8080), port)

	role, err := dig.As[string](root, "users", 0, "roles", 0)
	require.NoError(t, err)
	assert.Equal(t, "admin", role)

	_, err = Load("[server\nhost = ", FormatTOML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid TOML")
}

func TestLoadIndentedBracketsStayYAML(t *testing.T) {
	input := `items:
  - when: arch == "2.0"
    expression: |
      ["legacy"]
  - when: arch == "3.0"
    expression: |
      ["modern"]`

	root, err := Load(input, FormatAuto)
	require.NoError(t, err)
	expr, err := dig.As[string](root, "items", 0, "expression")
	require.NoError(t, err)
	assert.Equal(t, "[\"legacy\"]\n", expr)
}

func TestLoadEmpty(t *testing.T) {
	_, err := Load("  \n\t", FormatAuto)
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = LoadReader(strings.NewReader(""), FormatAuto)
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestLoadReader(t *testing.T) {
	root, err := LoadReader(strings.NewReader("a:\n  - x\n  - y\n"), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": []any{"x", "y"}}, root)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml extension", func(t *testing.T) {
		path := filepath.Join(dir, "data.yml")
		require.NoError(t, os.WriteFile(path, []byte("name: test\nvalue: 42\n"), 0o644))
		root, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "test", root.(map[string]any)["name"])
	})

	t.Run("json extension", func(t *testing.T) {
		path := filepath.Join(dir, "data.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"key":"val"}`), 0o644))
		root, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "val", root.(map[string]any)["key"])
	})

	t.Run("wrong extension falls back to detection", func(t *testing.T) {
		path := filepath.Join(dir, "oops.toml")
		require.NoError(t, os.WriteFile(path, []byte(`{"key":"val"}`), 0o644))
		root, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "val", root.(map[string]any)["key"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "nope.json"))
		require.Error(t, err)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":       FormatAuto,
		"auto":   FormatAuto,
		"JSON":   FormatJSON,
		"jsonl":  FormatNDJSON,
		"yml":    FormatYAML,
		" toml ": FormatTOML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown input format "xml"`)
}

func TestLoadMultiDocYAMLSkipsEmptyDocuments(t *testing.T) {
	root, err := Load("---\na: 1\n---\n---\nb: 2\n", FormatAuto)
	require.NoError(t, err)

	docs, ok := root.([]any)
	require.True(t, ok)
	require.Len(t, docs, 2)

	v, err := dig.Dig(root, 1, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}
