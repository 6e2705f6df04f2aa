package graph

import (
	"strings"

	"github.com/repomap-dev/repomap/internal/extract"
)

// TopLevelName is the qualified name used for the synthetic node that
// stands in for a file's top-level code when a call has no enclosing
// definition.
const TopLevelName = "<toplevel>"

// CallNode is one function, method, or class in the call graph, keyed by
// FQN (file:qualified_name). Nodes exist only for definitions and for
// caller contexts that produced at least one record; files without
// definitions never appear here.
type CallNode struct {
	FQN        string   `json:"fqn"`
	Kind       string   `json:"kind"`
	Callers    []string `json:"callers"`
	Callees    []string `json:"callees"`
	Centrality int      `json:"centrality"`
}

// nameIndex maps a plain definition name (ignoring file) to the FQNs that
// define it. Call sites rarely carry a fully-qualified reference, so
// resolution goes through this index.
type nameIndex map[string][]string

func buildNameIndex(definitions []extract.Definition) nameIndex {
	index := make(nameIndex)
	add := func(name, fqn string) {
		index[name] = appendUnique(index[name], fqn)
	}
	for _, def := range definitions {
		fqn := def.FQN()
		add(def.QualifiedName, fqn)
		// Methods are declared as Class.method but called by bare name.
		if idx := strings.LastIndex(def.QualifiedName, "."); idx != -1 {
			add(def.QualifiedName[idx+1:], fqn)
		}
	}
	return index
}

// BuildCallGraph resolves call records against the definition set and
// returns the function-level graph.
//
// Resolution is deliberately permissive: a reference matching several
// definitions fans out to all of them rather than guessing, which
// overestimates connectivity for colliding names. A reference matching
// nothing (external library, dynamic call) is dropped silently.
func BuildCallGraph(definitions []extract.Definition, calls []extract.Call) map[string]*CallNode {
	graph := make(map[string]*CallNode, len(definitions))

	ensure := func(fqn, kind string) *CallNode {
		node, ok := graph[fqn]
		if !ok {
			node = &CallNode{
				FQN:     fqn,
				Kind:    kind,
				Callers: make([]string, 0),
				Callees: make([]string, 0),
			}
			graph[fqn] = node
		}
		return node
	}

	// Same (file, qualified name) declared twice: last one wins.
	for _, def := range definitions {
		ensure(def.FQN(), def.Kind.String()).Kind = def.Kind.String()
	}

	index := buildNameIndex(definitions)

	for _, call := range calls {
		targets := index[calleeName(call.Callee)]
		if len(targets) == 0 {
			continue
		}

		callerFQN := call.File + ":" + TopLevelName
		callerKind := "file"
		if call.Caller != "" {
			callerFQN = call.File + ":" + call.Caller
			callerKind = "function"
		}
		caller := ensure(callerFQN, callerKind)

		for _, targetFQN := range targets {
			if targetFQN == callerFQN {
				continue
			}
			callee := ensure(targetFQN, "function")
			caller.Callees = appendUnique(caller.Callees, targetFQN)
			callee.Callers = appendUnique(callee.Callers, callerFQN)
		}
	}

	return graph
}

// calleeName reduces a raw callee reference to the name the index is
// keyed by: the trailing identifier of a dotted path.
func calleeName(reference string) string {
	reference = strings.TrimSpace(reference)
	if idx := strings.LastIndex(reference, "."); idx != -1 {
		return reference[idx+1:]
	}
	return reference
}
