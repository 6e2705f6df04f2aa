package graph

import (
	"reflect"
	"testing"

	"github.com/repomap-dev/repomap/internal/extract"
)

func TestBuildCallGraphAmbiguousNameFansOut(t *testing.T) {
	definitions := []extract.Definition{
		{File: "a.py", QualifiedName: "run", Kind: extract.DefFunction},
		{File: "b.py", QualifiedName: "run", Kind: extract.DefFunction},
		{File: "c.py", QualifiedName: "start", Kind: extract.DefFunction},
	}
	calls := []extract.Call{
		{File: "c.py", Caller: "start", Callee: "run", Line: 3},
	}

	g := BuildCallGraph(definitions, calls)
	caller := g["c.py:start"]
	if caller == nil {
		t.Fatal("missing caller node")
	}
	want := []string{"a.py:run", "b.py:run"}
	if !reflect.DeepEqual(caller.Callees, want) {
		t.Fatalf("expected fan-out to both run definitions, got %v", caller.Callees)
	}
	for _, fqn := range want {
		if !reflect.DeepEqual(g[fqn].Callers, []string{"c.py:start"}) {
			t.Fatalf("expected %s callers to include c.py:start, got %v", fqn, g[fqn].Callers)
		}
	}
}

func TestBuildCallGraphUnresolvedCallIsDropped(t *testing.T) {
	definitions := []extract.Definition{
		{File: "a.py", QualifiedName: "main", Kind: extract.DefFunction},
	}
	calls := []extract.Call{
		{File: "a.py", Caller: "main", Callee: "requests.get", Line: 2},
	}

	g := BuildCallGraph(definitions, calls)
	if len(g["a.py:main"].Callees) != 0 {
		t.Fatalf("expected unresolved call to add no edge, got %v", g["a.py:main"].Callees)
	}
	if len(g) != 1 {
		t.Fatalf("expected only definition nodes, got %d nodes", len(g))
	}
}

func TestBuildCallGraphTopLevelCallerGetsSyntheticNode(t *testing.T) {
	definitions := []extract.Definition{
		{File: "lib.py", QualifiedName: "helper", Kind: extract.DefFunction},
	}
	calls := []extract.Call{
		{File: "main.py", Caller: "", Callee: "helper", Line: 1},
	}

	g := BuildCallGraph(definitions, calls)
	synthetic := g["main.py:"+TopLevelName]
	if synthetic == nil {
		t.Fatal("expected synthetic file-level caller node")
	}
	if synthetic.Kind != "file" {
		t.Fatalf("expected synthetic node kind file, got %q", synthetic.Kind)
	}
	if !reflect.DeepEqual(synthetic.Callees, []string{"lib.py:helper"}) {
		t.Fatalf("unexpected callees %v", synthetic.Callees)
	}
}

func TestBuildCallGraphMethodsResolveByBareName(t *testing.T) {
	definitions := []extract.Definition{
		{File: "svc.py", QualifiedName: "Service.process", Kind: extract.DefMethod},
		{File: "main.py", QualifiedName: "main", Kind: extract.DefFunction},
	}
	calls := []extract.Call{
		{File: "main.py", Caller: "main", Callee: "svc.process", Line: 4},
	}

	g := BuildCallGraph(definitions, calls)
	if !reflect.DeepEqual(g["main.py:main"].Callees, []string{"svc.py:Service.process"}) {
		t.Fatalf("expected bare-name method resolution, got %v", g["main.py:main"].Callees)
	}
}

func TestBuildCallGraphSkipsSelfEdges(t *testing.T) {
	definitions := []extract.Definition{
		{File: "a.py", QualifiedName: "recurse", Kind: extract.DefFunction},
	}
	calls := []extract.Call{
		{File: "a.py", Caller: "recurse", Callee: "recurse", Line: 2},
	}

	g := BuildCallGraph(definitions, calls)
	node := g["a.py:recurse"]
	if len(node.Callees) != 0 || len(node.Callers) != 0 {
		t.Fatalf("expected self-call to add no edge, got callees=%v callers=%v", node.Callees, node.Callers)
	}
}

func TestBuildCallGraphDuplicateCallsAreIdempotent(t *testing.T) {
	definitions := []extract.Definition{
		{File: "a.py", QualifiedName: "caller", Kind: extract.DefFunction},
		{File: "b.py", QualifiedName: "target", Kind: extract.DefFunction},
	}
	calls := []extract.Call{
		{File: "a.py", Caller: "caller", Callee: "target", Line: 2},
		{File: "a.py", Caller: "caller", Callee: "target", Line: 9},
	}

	g := BuildCallGraph(definitions, calls)
	if len(g["a.py:caller"].Callees) != 1 {
		t.Fatalf("expected deduplicated edge, got %v", g["a.py:caller"].Callees)
	}
	if len(g["b.py:target"].Callers) != 1 {
		t.Fatalf("expected deduplicated reverse edge, got %v", g["b.py:target"].Callers)
	}
}

func TestBuildCallGraphEdgeSymmetry(t *testing.T) {
	definitions := []extract.Definition{
		{File: "a.py", QualifiedName: "one", Kind: extract.DefFunction},
		{File: "b.py", QualifiedName: "two", Kind: extract.DefFunction},
		{File: "c.py", QualifiedName: "three", Kind: extract.DefFunction},
	}
	calls := []extract.Call{
		{File: "a.py", Caller: "one", Callee: "two"},
		{File: "b.py", Caller: "two", Callee: "three"},
		{File: "c.py", Caller: "three", Callee: "one"},
	}

	g := BuildCallGraph(definitions, calls)
	for _, node := range g {
		for _, target := range node.Callees {
			if !containsString(g[target].Callers, node.FQN) {
				t.Fatalf("edge %s -> %s missing reverse direction", node.FQN, target)
			}
		}
		for _, source := range node.Callers {
			if !containsString(g[source].Callees, node.FQN) {
				t.Fatalf("reverse edge %s <- %s missing forward direction", node.FQN, source)
			}
		}
	}
}
