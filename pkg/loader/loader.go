// Package loader parses JSON, newline-delimited JSON, YAML and TOML input into
// plain Go trees (map[string]any, []any and scalars) that can be walked with
// package dig.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrEmptyInput is returned when the input holds nothing but whitespace.
var ErrEmptyInput = errors.New("empty input")

// Format identifies an input encoding.
type Format string

const (
	FormatAuto   Format = ""
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
)

var (
	tomlSectionPattern  = regexp.MustCompile(`^\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// Detect guesses the format of input. Multi-document YAML is checked first,
// then NDJSON, then well-formed JSON, then TOML (whose [section] headers
// resemble JSON arrays), then anything JSON-shaped; the rest is YAML.
func Detect(input string) Format {
	input = strings.TrimSpace(input)
	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return FormatYAML
	}
	if lines := strings.Split(input, "\n"); len(lines) > 1 && isLikelyNDJSON(lines) {
		return FormatNDJSON
	}
	if (strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[")) && json.Valid([]byte(input)) {
		return FormatJSON
	}
	if isLikelyTOML(input) {
		return FormatTOML
	}
	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		return FormatJSON
	}
	return FormatYAML
}

// ParseFormat validates a user supplied format name. The empty string and
// "auto" both select detection.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatAuto, "auto":
		return FormatAuto, nil
	case FormatJSON, FormatNDJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "jsonl":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("unknown input format %q (expected auto, json, ndjson, yaml or toml)", name)
	}
}

// FormatFromPath maps a file extension to a format, or FormatAuto when the
// extension is not recognised.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatAuto
	}
}

// LoadDocuments parses input in the given format and returns one element per
// document. With FormatAuto the format is detected. When an explicit format
// fails to parse, detection gets a second chance so a mislabelled file still
// loads.
func LoadDocuments(input string, format Format) ([]any, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}
	if format != FormatAuto {
		docs, err := decode(input, format)
		if err != nil && Detect(input) != format {
			if detected, detectErr := LoadDocuments(input, FormatAuto); detectErr == nil {
				return detected, nil
			}
		}
		return docs, err
	}

	format = Detect(input)
	docs, err := decode(input, format)
	if err == nil {
		return docs, nil
	}
	// flow-style YAML such as {a: 1} starts like JSON, and a one-line
	// JSON array such as ["a"] looks like a TOML table header
	var alt Format
	switch format { //nolint:exhaustive // only ambiguous detections fall back
	case FormatJSON:
		alt = FormatYAML
	case FormatTOML:
		alt = FormatJSON
	default:
		return nil, err
	}
	if altDocs, altErr := decode(input, alt); altErr == nil {
		return altDocs, nil
	}
	return nil, err
}

func decode(input string, format Format) ([]any, error) {
	switch format {
	case FormatJSON:
		return loadJSON(input)
	case FormatNDJSON:
		return loadNDJSON(input)
	case FormatTOML:
		return loadTOML(input)
	case FormatYAML:
		return loadYAML(input)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// Load parses input into a single root. Multi-document input becomes a []any
// of documents.
func Load(input string, format Format) (any, error) {
	docs, err := LoadDocuments(input, format)
	if err != nil {
		return nil, err
	}
	if len(docs) == 1 {
		return docs[0], nil
	}
	return docs, nil
}

// LoadReader reads r to the end and parses it with Load.
func LoadReader(r io.Reader, format Format) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return Load(string(data), format)
}

// LoadFile reads path and parses it, using the file extension as a format
// hint before falling back to detection.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(string(data), FormatFromPath(path))
}

func loadJSON(input string) ([]any, error) {
	var data any
	if err := json.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return []any{data}, nil
}

// loadYAML decodes every document in input; a single-document input yields
// one element.
// loadYAML returns one element per non-empty document. Empty documents are
// skipped, so indices count only documents with content.
func loadYAML(input string) ([]any, error) {
	var results []any
	decoder := yaml.NewDecoder(strings.NewReader(input))
	for {
		var doc any
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		if doc != nil {
			results = append(results, doc)
		}
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no documents found in YAML input")
	}
	return results, nil
}

// loadNDJSON parses one JSON value per line; lines that are not JSON are kept
// as plain strings.
func loadNDJSON(input string) ([]any, error) {
	lines := strings.Split(input, "\n")
	results := make([]any, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var obj any
		dec := json.NewDecoder(bytes.NewReader([]byte(line)))
		if err := dec.Decode(&obj); err != nil || dec.More() {
			results = append(results, line)
			continue
		}
		results = append(results, obj)
	}
	if len(results) == 0 {
		return nil, ErrEmptyInput
	}
	return results, nil
}

func loadTOML(input string) ([]any, error) {
	var data map[string]any
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return []any{data}, nil
}

// isLikelyNDJSON requires a majority of non-empty lines to start like JSON so
// YAML lists are not misclassified.
func isLikelyNDJSON(lines []string) bool {
	jsonCount := 0
	nonEmptyCount := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmptyCount++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonCount++
		}
	}
	return nonEmptyCount > 1 && jsonCount > nonEmptyCount/2
}

// isLikelyTOML looks for unindented [section] headers or a majority of
// key = value lines. Indented brackets are usually YAML block content.
func isLikelyTOML(input string) bool {
	sectionCount := 0
	keyValueCount := 0
	nonEmptyCount := 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmptyCount++
		if tomlSectionPattern.MatchString(line) {
			sectionCount++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValueCount++
		}
	}
	if sectionCount > 0 {
		return true
	}
	return nonEmptyCount > 0 && keyValueCount > nonEmptyCount/2
}
