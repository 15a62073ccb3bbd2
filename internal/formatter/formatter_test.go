package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() map[string]any {
	return map[string]any{
		"name":  "widget",
		"count": 3,
		"tags":  []any{"a", "b"},
		"note":  "line one\nline two",
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"auto", "YAML", " json ", "toml", "raw", "table", "tree"} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatAuto, f)

	_, err = ParseFormat("csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auto|yaml|json")
}

func TestResolve(t *testing.T) {
	assert.Equal(t, FormatYAML, Resolve(FormatAuto, true))
	assert.Equal(t, FormatJSON, Resolve(FormatAuto, false))
	assert.Equal(t, FormatTable, Resolve(FormatTable, false))
}

func TestRenderYAML(t *testing.T) {
	out, err := Render(sample(), FormatYAML, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "name: widget\n")
	assert.Contains(t, out, "note: |-\n  line one\n  line two\n")
	assert.Contains(t, out, "tags:\n  - a\n  - b\n")
}

func TestRenderYAMLDirect(t *testing.T) {
	out, err := RenderYAML(map[string]any{"note": "x\ny"}, YAMLFormatOptions{Indent: 2, LiteralBlockStrings: true})
	require.NoError(t, err)
	assert.Contains(t, out, "note: |-\n  x\n  y")
}

func TestRenderJSON(t *testing.T) {
	out, err := Render(map[string]any{"url": "a<b>&c"}, FormatJSON, Options{})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"url\": \"a<b>&c\"\n}\n", out)
}

func TestRenderTOML(t *testing.T) {
	out, err := Render(map[string]any{"server": map[string]any{"port": int64(8080)}}, FormatTOML, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "[server]")
	assert.Contains(t, out, "port = 8080")

	_, err = Render([]any{1}, FormatTOML, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a map")
}

func TestRenderRaw(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "string", in: "l33t", want: "l33t\n"},
		{name: "int", in: 1337, want: "1337\n"},
		{name: "nil", in: nil, want: "null\n"},
		{name: "list", in: []any{1, "a"}, want: "[1,\"a\"]\n"},
		{name: "trailing newline kept once", in: "x\n", want: "x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.in, FormatRaw, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRenderTable(t *testing.T) {
	out, err := Render(map[string]any{"b": 2, "alpha": "x"}, FormatTable, Options{NoColor: true})
	require.NoError(t, err)
	assert.Equal(t, "KEY    VALUE\nalpha  x\nb      2\n", out)

	out, err = Render([]any{"x"}, FormatTable, Options{NoColor: true})
	require.NoError(t, err)
	assert.Equal(t, "KEY  VALUE\n[0]  x\n", out)

	out, err = Render("scalar", FormatTable, Options{NoColor: true})
	require.NoError(t, err)
	assert.Contains(t, out, "(value)  scalar")
}

func TestRenderTableWideRunes(t *testing.T) {
	out := RenderTable([][]string{{"日本", "1"}, {"k", "2"}}, true)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	// "日本" occupies four cells, so "k" is padded by three spaces
	assert.Equal(t, "k     2", lines[2])
}

func TestRenderTree(t *testing.T) {
	out, err := Render(sample(), FormatTree, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "name: widget")
	assert.Contains(t, out, "tags: [a, b]")
	assert.Contains(t, out, "count: 3")

	nested := map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}
	out, err = Render(nested, FormatTree, Options{MaxDepth: 1})
	require.NoError(t, err)
	assert.Contains(t, out, "b: ...")
	assert.NotContains(t, out, "c: 1")
}

func TestNodeToRowsEmpty(t *testing.T) {
	assert.Equal(t, [][]string{{"(value)", "{}"}}, NodeToRows(map[string]any{}))
	assert.Equal(t, [][]string{{"(value)", "[]"}}, NodeToRows([]any{}))
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "Error: boom", ErrorText("boom", true))
	assert.Contains(t, ErrorText("boom", false), "Error: boom")
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := Render(1, FormatAuto, Options{})
	require.Error(t, err)
}
