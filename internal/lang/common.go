package lang

import (
	"path"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// walk visits node and its subtree with an explicit stack in source order.
// visit returns false to prune the subtree below the visited node. The
// stack bounds traversal depth on pathological files where recursion
// would not.
func walk(root *sitter.Node, visit func(*sitter.Node) bool) {
	if root == nil {
		return
	}
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == nil {
			continue
		}
		if !visit(node) {
			continue
		}
		// Push in reverse so children pop in source order.
		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, node.Child(i))
		}
	}
}

func splitQualifiedName(raw string) (qualifier, name string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}
	if idx := strings.LastIndex(raw, "."); idx != -1 {
		return strings.TrimSpace(raw[:idx]), strings.TrimSpace(raw[idx+1:])
	}
	return "", raw
}

func trimQuotes(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		switch value[0] {
		case '"', '\'', '`':
			if value[len(value)-1] == value[0] {
				return value[1 : len(value)-1]
			}
		}
	}
	return value
}

func lineOf(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}

func endLineOf(node *sitter.Node) int {
	return int(node.EndPoint().Row) + 1
}

// resolveRelativeReference turns a dot-relative module reference (Python)
// or a ./-relative path (JS/TS) into a slash-joined path relative to the
// repository root, without the file extension.
func resolveRelativeReference(sourceFile, reference string) string {
	dir := path.Dir(sourceFile)
	if dir == "." {
		dir = ""
	}

	if strings.HasPrefix(reference, "./") || strings.HasPrefix(reference, "../") {
		return path.Clean(path.Join(dir, reference))
	}

	// Python style: one leading dot is the current package, each extra
	// dot climbs one level.
	dots := 0
	for dots < len(reference) && reference[dots] == '.' {
		dots++
	}
	rest := strings.ReplaceAll(reference[dots:], ".", "/")
	for i := 1; i < dots; i++ {
		dir = path.Dir(dir)
		if dir == "." {
			dir = ""
		}
	}
	if rest == "" {
		return dir
	}
	if dir == "" {
		return rest
	}
	return dir + "/" + rest
}

// classifyPath assigns an architecture cluster from path signals alone.
// Returns "" when the path is not conclusive and content signals should
// decide.
func classifyPath(filePath string) string {
	lower := strings.ToLower(path.Clean(filePath))
	base := path.Base(lower)
	stem := strings.TrimSuffix(base, path.Ext(base))

	switch {
	case strings.HasPrefix(base, "test_"),
		strings.HasSuffix(stem, "_test"),
		strings.HasSuffix(stem, ".test"),
		strings.HasSuffix(stem, ".spec"),
		hasPathSegment(lower, "tests"),
		hasPathSegment(lower, "test"):
		return "tests"
	case stem == "main", stem == "app", stem == "cli", stem == "server", stem == "index", stem == "__main__":
		return "entry_points"
	case strings.Contains(base, "config"), strings.Contains(base, "settings"),
		base == "setup.py", hasPathSegment(lower, "config"):
		return "config"
	case strings.Contains(base, "util"), strings.Contains(base, "helper"),
		hasPathSegment(lower, "utils"), hasPathSegment(lower, "helpers"):
		return "utilities"
	case hasPathSegment(lower, "plugins"), hasPathSegment(lower, "addons"):
		return "plugins"
	}
	return ""
}

func hasPathSegment(filePath, segment string) bool {
	for _, part := range strings.Split(filePath, "/") {
		if part == segment {
			return true
		}
	}
	return false
}
