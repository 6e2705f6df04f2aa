package graph

import (
	"path"
	"strings"

	"github.com/repomap-dev/repomap/internal/extract"
)

// FileNode is one file in the import graph. Every discovered file gets a
// node, even with zero edges, so the graph is a total map over the file
// set rather than a partial one.
type FileNode struct {
	Path       string   `json:"path"`
	Imports    []string `json:"imports"`
	ImportedBy []string `json:"imported_by"`
	Centrality int      `json:"centrality"`
}

// packageEntryFiles maps a source extension to the file that stands in
// for a directory import in that language.
var packageEntryFiles = map[string]string{
	".py":  "__init__.py",
	".pyw": "__init__.py",
	".ts":  "index.ts",
	".tsx": "index.tsx",
	".js":  "index.js",
	".jsx": "index.jsx",
	".mjs": "index.mjs",
	".cjs": "index.cjs",
}

// BuildImportGraph resolves import records against the discovered file set
// and returns the file-level graph. Imports that resolve to nothing local
// (external libraries, dynamic imports) contribute no edge; that is the
// expected case, not an error.
func BuildImportGraph(imports []extract.Import, allFiles []string) map[string]*FileNode {
	graph := make(map[string]*FileNode, len(allFiles))
	fileSet := make(map[string]bool, len(allFiles))
	for _, file := range allFiles {
		graph[file] = &FileNode{
			Path:       file,
			Imports:    make([]string, 0),
			ImportedBy: make([]string, 0),
		}
		fileSet[file] = true
	}

	for _, imp := range imports {
		source := imp.SourceFile

		// Extractor output may reference files outside the discovery set.
		if _, ok := graph[source]; !ok {
			graph[source] = &FileNode{
				Path:       source,
				Imports:    make([]string, 0),
				ImportedBy: make([]string, 0),
			}
		}

		target := ResolveImport(source, imp.Target, fileSet)
		if target == "" {
			continue
		}
		if _, ok := graph[target]; !ok {
			continue
		}

		graph[source].Imports = appendUnique(graph[source].Imports, target)
		graph[target].ImportedBy = appendUnique(graph[target].ImportedBy, source)
	}

	return graph
}

// ResolveImport maps a textual import reference to a file in fileSet.
// Candidates are probed in a fixed priority order: exact path match first,
// then with the leading (root package) segment stripped, then as a
// directory holding the language's package-entry file. The first hit wins;
// no hit returns "".
//
// Root stripping assumes a single-level package layout; deeper or
// differently rooted packages can misresolve. Known heuristic limitation.
func ResolveImport(sourceFile, reference string, fileSet map[string]bool) string {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return ""
	}
	ext := path.Ext(sourceFile)

	// References already shaped like paths (pre-resolved relative imports)
	// are probed directly and nowhere else.
	if strings.Contains(reference, "/") {
		if candidate := reference + ext; fileSet[candidate] {
			return candidate
		}
		return ""
	}

	parts := strings.Split(reference, ".")

	candidates := make([]string, 0, 3)
	candidates = append(candidates, strings.Join(parts, "/")+ext)
	if len(parts) > 1 {
		candidates = append(candidates, strings.Join(parts[1:], "/")+ext)
	}
	if entry, ok := packageEntryFiles[ext]; ok {
		candidates = append(candidates, strings.Join(parts, "/")+"/"+entry)
	}

	for _, candidate := range candidates {
		if fileSet[candidate] {
			return candidate
		}
	}
	return ""
}

// appendUnique keeps edge sets duplicate-free while preserving insertion
// order. Edge sets are never re-sorted; determinism comes from stable
// input ordering.
func appendUnique(values []string, value string) []string {
	for _, existing := range values {
		if existing == value {
			return values
		}
	}
	return append(values, value)
}
