package graph

import (
	"testing"

	"github.com/repomap-dev/repomap/internal/extract"
)

func TestCentralityFormula(t *testing.T) {
	allFiles := []string{"hub.py", "a.py", "b.py", "c.py"}
	imports := []extract.Import{
		{SourceFile: "a.py", Target: "hub"},
		{SourceFile: "b.py", Target: "hub"},
		{SourceFile: "c.py", Target: "hub"},
		{SourceFile: "hub.py", Target: "a"},
	}

	g := BuildImportGraph(imports, allFiles)
	RankFiles(g)

	for path, node := range g {
		want := 2*len(node.ImportedBy) + len(node.Imports)
		if node.Centrality != want {
			t.Fatalf("%s: centrality %d, want %d", path, node.Centrality, want)
		}
	}
	if g["hub.py"].Centrality != 7 {
		t.Fatalf("hub.py centrality = %d, want 7", g["hub.py"].Centrality)
	}
}

func TestHotFilesBoundAndOrder(t *testing.T) {
	g := map[string]*FileNode{
		"a.py": {Path: "a.py", Centrality: 3},
		"b.py": {Path: "b.py", Centrality: 5},
		"c.py": {Path: "c.py", Centrality: 5},
		"d.py": {Path: "d.py", Centrality: 1},
	}

	hot := HotFiles(g, 3)
	if len(hot) != 3 {
		t.Fatalf("expected 3 hot files, got %d", len(hot))
	}
	// Descending score, ties by ascending path.
	wantOrder := []string{"b.py", "c.py", "a.py"}
	for i, want := range wantOrder {
		if hot[i].Path != want {
			t.Fatalf("hot[%d] = %s, want %s", i, hot[i].Path, want)
		}
	}

	if got := HotFiles(g, 100); len(got) != len(g) {
		t.Fatalf("topN above size must return all nodes, got %d", len(got))
	}
	if got := HotFiles(map[string]*FileNode{}, 10); len(got) != 0 {
		t.Fatalf("empty graph must yield empty hot list, got %d", len(got))
	}
}

func TestHotFunctionsDeterministicTieBreak(t *testing.T) {
	g := map[string]*CallNode{
		"b.py:run": {FQN: "b.py:run", Centrality: 2},
		"a.py:run": {FQN: "a.py:run", Centrality: 2},
		"c.py:run": {FQN: "c.py:run", Centrality: 2},
	}

	for i := 0; i < 5; i++ {
		hot := HotFunctions(g, 3)
		if hot[0].FQN != "a.py:run" || hot[1].FQN != "b.py:run" || hot[2].FQN != "c.py:run" {
			t.Fatalf("unstable tie-break ordering: %s, %s, %s", hot[0].FQN, hot[1].FQN, hot[2].FQN)
		}
	}
}

func TestHotFunctionsNegativeTopN(t *testing.T) {
	g := map[string]*CallNode{
		"a.py:run": {FQN: "a.py:run", Centrality: 1},
	}
	if got := HotFunctions(g, -1); len(got) != 0 {
		t.Fatalf("negative topN must yield empty list, got %d", len(got))
	}
}
