package formatter

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// maxArrayInline is the largest scalar array shown on one line.
const maxArrayInline = 3

// TreeOptions controls tree output.
type TreeOptions struct {
	// MaxDepth limits tree depth (0 = unlimited).
	MaxDepth int
}

// FormatAsTree renders data as an ASCII tree. Maps become branches keyed by
// sorted keys, arrays become [i] children, scalars are shown at the leaves.
func FormatAsTree(node any, opts TreeOptions) string {
	tree := treeprint.New()
	switch v := node.(type) {
	case map[string]any:
		buildMapTree(tree, v, opts, 0)
	case []any:
		buildArrayTree(tree, v, opts, 0)
	default:
		tree.AddNode(formatScalar(v))
	}
	return tree.String()
}

func buildMapTree(branch treeprint.Tree, m map[string]any, opts TreeOptions, depth int) {
	for _, key := range sortedKeys(m) {
		addNodeForValue(branch, key, m[key], opts, depth)
	}
}

func buildArrayTree(branch treeprint.Tree, arr []any, opts TreeOptions, depth int) {
	for i, elem := range arr {
		addNodeForValue(branch, fmt.Sprintf("[%d]", i), elem, opts, depth)
	}
}

func addNodeForValue(branch treeprint.Tree, key string, val any, opts TreeOptions, depth int) {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		branch.AddNode(key + ": ...")
		return
	}
	switch v := val.(type) {
	case map[string]any:
		if len(v) == 0 {
			branch.AddNode(key + ": {}")
			return
		}
		buildMapTree(branch.AddBranch(key), v, opts, depth+1)
	case []any:
		switch {
		case len(v) == 0:
			branch.AddNode(key + ": []")
		case isScalarArray(v) && len(v) <= maxArrayInline:
			branch.AddNode(key + ": " + formatInlineArray(v))
		default:
			buildArrayTree(branch.AddBranch(key), v, opts, depth+1)
		}
	default:
		branch.AddNode(key + ": " + formatScalar(v))
	}
}

func isScalarArray(arr []any) bool {
	for _, elem := range arr {
		switch elem.(type) {
		case map[string]any, []any:
			return false
		}
	}
	return true
}

func formatInlineArray(arr []any) string {
	parts := make([]string, len(arr))
	for i, elem := range arr {
		parts[i] = formatScalar(elem)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatScalar(v any) string {
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return Stringify(v)
}
