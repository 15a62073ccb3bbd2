// Package formatter renders values resolved by kvdig for the terminal or for
// pipes.
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Format names an output rendering.
type Format string

const (
	FormatAuto  Format = "auto"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatTOML  Format = "toml"
	FormatRaw   Format = "raw"
	FormatTable Format = "table"
	FormatTree  Format = "tree"
)

// ValidFormats lists the accepted --output values.
var ValidFormats = []Format{FormatAuto, FormatYAML, FormatJSON, FormatTOML, FormatRaw, FormatTable, FormatTree}

// ParseFormat validates an --output value.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatAuto, nil
	}
	for _, valid := range ValidFormats {
		if f == valid {
			return f, nil
		}
	}
	names := make([]string, len(ValidFormats))
	for i, v := range ValidFormats {
		names[i] = string(v)
	}
	return "", fmt.Errorf("invalid output format %q (expected %s)", s, strings.Join(names, "|"))
}

// Resolve replaces FormatAuto: YAML for terminals, JSON for pipes.
func Resolve(f Format, tty bool) Format {
	if f != FormatAuto {
		return f
	}
	if tty {
		return FormatYAML
	}
	return FormatJSON
}

// Options tunes rendering.
type Options struct {
	NoColor bool
	// MaxDepth limits tree output (0 = unlimited).
	MaxDepth int
}

// Render renders v in format f, which must not be FormatAuto. The result
// always ends with a newline.
func Render(v any, f Format, opts Options) (string, error) {
	var out string
	switch f {
	case FormatYAML:
		s, err := RenderYAML(v, YAMLFormatOptions{Indent: 2, LiteralBlockStrings: true})
		if err != nil {
			return "", fmt.Errorf("render yaml: %w", err)
		}
		out = s
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return "", fmt.Errorf("render json: %w", err)
		}
		out = buf.String()
	case FormatTOML:
		if !isMap(v) {
			return "", fmt.Errorf("render toml: top-level value must be a map, got %T", v)
		}
		b, err := toml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("render toml: %w", err)
		}
		out = string(b)
	case FormatRaw:
		out = Stringify(v)
	case FormatTable:
		out = RenderTable(NodeToRows(v), opts.NoColor)
	case FormatTree:
		out = FormatAsTree(v, TreeOptions{MaxDepth: opts.MaxDepth})
	default:
		return "", fmt.Errorf("unsupported output format %q", f)
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

// Stringify returns a compact single-value representation: strings verbatim,
// collections as compact JSON, nil as null.
func Stringify(v any) string {
	if v == nil {
		return "null"
	}
	switch t := v.(type) {
	case string:
		return t
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(t)
	case map[string]any, []any:
		if b, err := json.Marshal(t); err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", t)
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() { //nolint:exhaustive // only complex types need JSON marshaling
		case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer:
			if b, err := json.Marshal(v); err == nil {
				return string(b)
			}
		}
		return fmt.Sprintf("%v", v)
	}
}

// NodeToRows converts a node into sorted [key, value] rows. Scalars become a
// single "(value)" row.
func NodeToRows(node any) [][]string {
	var rows [][]string
	switch t := node.(type) {
	case map[string]any:
		if len(t) == 0 {
			return [][]string{{"(value)", Stringify(node)}}
		}
		for _, k := range sortedKeys(t) {
			rows = append(rows, []string{k, Stringify(t[k])})
		}
	case []any:
		if len(t) == 0 {
			return [][]string{{"(value)", Stringify(node)}}
		}
		for i, v := range t {
			rows = append(rows, []string{fmt.Sprintf("[%d]", i), Stringify(v)})
		}
	default:
		rows = append(rows, []string{"(value)", Stringify(node)})
	}
	return rows
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isMap(v any) bool {
	if v == nil {
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.Map
}
