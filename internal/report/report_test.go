package report

import (
	"strings"
	"testing"
	"time"

	"github.com/repomap-dev/repomap/internal/analyze"
	"github.com/repomap-dev/repomap/internal/extract"
	"github.com/repomap-dev/repomap/internal/graph"
)

func sampleResult() *analyze.Result {
	return &analyze.Result{
		Root: "/work/demo",
		HotFiles: []*graph.FileNode{
			{Path: "core.py", Imports: []string{"util.py"}, ImportedBy: []string{"a.py", "b.py"}, Centrality: 5},
			{Path: "util.py", ImportedBy: []string{"core.py"}, Centrality: 2},
		},
		HotFunctions: []*graph.CallNode{
			{FQN: "core.py:Engine.run", Kind: "method", Callers: []string{"a.py:main"}, Centrality: 2},
		},
		EntryPoints: []extract.EntryPoint{
			{File: "a.py", Kind: "main_function", Name: "main", Line: 10},
			{File: "a.py", Kind: "main_guard", Line: 30},
			{File: "web.py", Kind: "app_instance", Name: "app", Framework: "Flask", Line: 5},
		},
		Clusters: map[string][]string{
			"core_logic": {"core.py", "util.py"},
			"tests":      {"tests/test_core.py"},
		},
		TotalFiles: 6,
		Analyzed:   6,
		Duration:   1500 * time.Millisecond,
	}
}

func TestMapSections(t *testing.T) {
	out := Map(sampleResult(), 10)

	for _, want := range []string{
		"📂 demo/",
		"━━━ ENTRY POINTS ━━━",
		"a.py:main() @10",
		"a.py:if __name__ @30",
		"web.py:Flask app @5",
		"━━━ CORE FILES (by centrality) ━━━",
		"core.py: imports 1, used by 2 files",
		"━━━ ARCHITECTURE ━━━",
		"Core Logic: 2 files",
		"Tests: 1 files",
		"━━━ KEY DEPENDENCIES ━━━",
		"└→ imports: util.py",
		"━━━ HOT FUNCTIONS (most called) ━━━",
		"Engine.run (method): called by 1, calls 0 @core.py",
		"Analysis: 6 files in 1.50s",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("map output missing %q:\n%s", want, out)
		}
	}
}

func TestMapTruncationFooter(t *testing.T) {
	result := sampleResult()
	result.Truncated = 4
	result.Issues = []extract.Issue{{File: "bad.py", Severity: "error", Message: "boom"}}

	out := Map(result, 10)
	if !strings.Contains(out, "(4 beyond cap)") {
		t.Fatalf("missing truncation note:\n%s", out)
	}
	if !strings.Contains(out, "1 files skipped") {
		t.Fatalf("missing skipped note:\n%s", out)
	}
}

func TestMapEmptySections(t *testing.T) {
	result := &analyze.Result{Root: "/work/empty", TotalFiles: 0}
	out := Map(result, 10)

	if strings.Contains(out, "ENTRY POINTS") || strings.Contains(out, "HOT FUNCTIONS") {
		t.Fatalf("empty result should omit sections:\n%s", out)
	}
	if !strings.Contains(out, "Analysis: 0 files") {
		t.Fatalf("footer missing:\n%s", out)
	}
}

func TestStructureTree(t *testing.T) {
	facts := &extract.FileFacts{
		Path: "src/service.py",
		Definitions: []extract.Definition{
			{QualifiedName: "Service", Kind: extract.DefClass, StartLine: 1, EndLine: 9},
			{QualifiedName: "Service.start", Kind: extract.DefMethod, StartLine: 2, EndLine: 4},
			{QualifiedName: "Service.stop", Kind: extract.DefMethod, StartLine: 6, EndLine: 9},
			{QualifiedName: "helper", Kind: extract.DefFunction, StartLine: 12, EndLine: 14},
		},
	}

	got := Structure(facts)
	want := strings.Join([]string{
		"service.py (1-14)",
		"├─ class: Service (1-9)",
		"│  ├─ method: start (2-4)",
		"│  └─ method: stop (6-9)",
		"└─ function: helper (12-14)",
	}, "\n")
	if got != want {
		t.Fatalf("structure tree mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestStructureImportGrouping(t *testing.T) {
	facts := &extract.FileFacts{
		Path: "main.py",
		Imports: []extract.Import{
			{Target: "os", Line: 1},
			{Target: "sys", Line: 2},
			{Target: "json", Line: 3},
			// A later import after a definition starts its own group.
			{Target: "re", Line: 10},
		},
		Definitions: []extract.Definition{
			{QualifiedName: "run", Kind: extract.DefFunction, StartLine: 6, EndLine: 8},
		},
	}

	got := Structure(facts)
	want := strings.Join([]string{
		"main.py (1-10)",
		"├─ imports: import statements (1-3)",
		"├─ function: run (6-8)",
		"└─ imports: import statements (10-10)",
	}, "\n")
	if got != want {
		t.Fatalf("structure tree mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestStructureEmptyFile(t *testing.T) {
	got := Structure(&extract.FileFacts{Path: "empty.py"})
	if got != "empty.py (empty file)" {
		t.Fatalf("got %q", got)
	}
}
