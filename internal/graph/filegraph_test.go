package graph

import (
	"reflect"
	"testing"

	"github.com/repomap-dev/repomap/internal/extract"
)

func TestBuildImportGraphResolvesLocalImport(t *testing.T) {
	allFiles := []string{"a.py", "b.py"}
	imports := []extract.Import{
		{SourceFile: "a.py", Target: "b", Kind: extract.KindFromImport, Names: []string{"x"}},
	}

	g := BuildImportGraph(imports, allFiles)
	if len(g) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(g))
	}
	if !reflect.DeepEqual(g["a.py"].Imports, []string{"b.py"}) {
		t.Fatalf("expected a.py to import b.py, got %v", g["a.py"].Imports)
	}
	if !reflect.DeepEqual(g["b.py"].ImportedBy, []string{"a.py"}) {
		t.Fatalf("expected b.py imported_by a.py, got %v", g["b.py"].ImportedBy)
	}

	RankFiles(g)
	if g["a.py"].Centrality != 1 {
		t.Fatalf("expected a.py centrality 1, got %d", g["a.py"].Centrality)
	}
	if g["b.py"].Centrality != 2 {
		t.Fatalf("expected b.py centrality 2, got %d", g["b.py"].Centrality)
	}
}

func TestBuildImportGraphExternalImportCreatesNoEdge(t *testing.T) {
	allFiles := []string{"c.py"}
	imports := []extract.Import{
		{SourceFile: "c.py", Target: "requests", Kind: extract.KindImport},
	}

	g := BuildImportGraph(imports, allFiles)
	if len(g["c.py"].Imports) != 0 {
		t.Fatalf("expected no edges for external import, got %v", g["c.py"].Imports)
	}
	if len(g) != 1 {
		t.Fatalf("external imports must not add nodes, got %d", len(g))
	}
}

func TestBuildImportGraphTotalCoverage(t *testing.T) {
	allFiles := []string{"a.py", "b.py", "img.png"}
	g := BuildImportGraph(nil, allFiles)
	for _, file := range allFiles {
		node, ok := g[file]
		if !ok {
			t.Fatalf("missing node for %s", file)
		}
		if len(node.Imports) != 0 || len(node.ImportedBy) != 0 {
			t.Fatalf("expected %s isolated, got %+v", file, node)
		}
	}
}

func TestBuildImportGraphDuplicateImportsAreIdempotent(t *testing.T) {
	allFiles := []string{"a.py", "b.py"}
	imports := []extract.Import{
		{SourceFile: "a.py", Target: "b", Line: 1},
		{SourceFile: "a.py", Target: "b", Line: 7},
	}

	g := BuildImportGraph(imports, allFiles)
	if len(g["a.py"].Imports) != 1 {
		t.Fatalf("expected deduplicated edge, got %v", g["a.py"].Imports)
	}
	if len(g["b.py"].ImportedBy) != 1 {
		t.Fatalf("expected deduplicated reverse edge, got %v", g["b.py"].ImportedBy)
	}
}

func TestBuildImportGraphUnknownSourceGetsDefensiveNode(t *testing.T) {
	allFiles := []string{"b.py"}
	imports := []extract.Import{
		{SourceFile: "ghost.py", Target: "b"},
	}

	g := BuildImportGraph(imports, allFiles)
	node, ok := g["ghost.py"]
	if !ok {
		t.Fatal("expected defensive node for unknown source file")
	}
	if !reflect.DeepEqual(node.Imports, []string{"b.py"}) {
		t.Fatalf("expected ghost.py edge to b.py, got %v", node.Imports)
	}
}

func TestBuildImportGraphEdgeSymmetry(t *testing.T) {
	allFiles := []string{"pkg/a.py", "pkg/b.py", "pkg/c.py"}
	imports := []extract.Import{
		{SourceFile: "pkg/a.py", Target: "pkg/b"},
		{SourceFile: "pkg/b.py", Target: "pkg/c"},
		{SourceFile: "pkg/c.py", Target: "pkg/a"},
	}

	g := BuildImportGraph(imports, allFiles)
	for _, node := range g {
		for _, target := range node.Imports {
			if !containsString(g[target].ImportedBy, node.Path) {
				t.Fatalf("edge %s -> %s missing reverse direction", node.Path, target)
			}
		}
		for _, source := range node.ImportedBy {
			if !containsString(g[source].Imports, node.Path) {
				t.Fatalf("reverse edge %s <- %s missing forward direction", node.Path, source)
			}
		}
	}
}

func TestResolveImportCandidateOrder(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		reference string
		files     []string
		want      string
	}{
		{
			name:      "direct path match wins",
			source:    "main.py",
			reference: "foo.bar",
			files:     []string{"foo/bar.py", "bar.py"},
			want:      "foo/bar.py",
		},
		{
			name:      "root stripping as fallback",
			source:    "main.py",
			reference: "scantool.scanner",
			files:     []string{"scanner.py"},
			want:      "scanner.py",
		},
		{
			name:      "package entry file last",
			source:    "main.py",
			reference: "foo.bar",
			files:     []string{"foo/bar/__init__.py"},
			want:      "foo/bar/__init__.py",
		},
		{
			name:      "path-like reference probed directly only",
			source:    "pkg/main.py",
			reference: "pkg/util",
			files:     []string{"pkg/util.py"},
			want:      "pkg/util.py",
		},
		{
			name:      "commonjs package entry",
			source:    "app/main.cjs",
			reference: "lib",
			files:     []string{"lib/index.cjs"},
			want:      "lib/index.cjs",
		},
		{
			name:      "no local match",
			source:    "main.py",
			reference: "os.path",
			files:     []string{"main.py"},
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileSet := make(map[string]bool, len(tt.files))
			for _, f := range tt.files {
				fileSet[f] = true
			}
			got := ResolveImport(tt.source, tt.reference, fileSet)
			if got != tt.want {
				t.Fatalf("ResolveImport(%q) = %q, want %q", tt.reference, got, tt.want)
			}
		})
	}
}

func TestBuildImportGraphPreservesInsertionOrder(t *testing.T) {
	allFiles := []string{"a.py", "z.py", "m.py"}
	imports := []extract.Import{
		{SourceFile: "a.py", Target: "z"},
		{SourceFile: "a.py", Target: "m"},
	}

	g := BuildImportGraph(imports, allFiles)
	if !reflect.DeepEqual(g["a.py"].Imports, []string{"z.py", "m.py"}) {
		t.Fatalf("edge order must follow insertion order, got %v", g["a.py"].Imports)
	}
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
