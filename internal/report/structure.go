package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/repomap-dev/repomap/internal/extract"
)

// structureNode is one entry in the rendered file tree. Methods hang
// off their class; everything else sits at the top level.
type structureNode struct {
	kind     string
	name     string
	start    int
	end      int
	children []*structureNode
}

// Structure renders a single file's imports and definitions as a tree
// with line ranges. Methods are nested under their class; runs of
// import statements collapse into one "imports" node.
func Structure(facts *extract.FileFacts) string {
	base := filepath.Base(facts.Path)
	roots := buildStructure(facts.Definitions)
	roots = mergeImportGroups(roots, facts.Imports)
	if len(roots) == 0 {
		return fmt.Sprintf("%s (empty file)", base)
	}

	minLine, maxLine := roots[0].start, roots[0].end
	walkStructure(roots, func(n *structureNode) {
		if n.start < minLine {
			minLine = n.start
		}
		if n.end > maxLine {
			maxLine = n.end
		}
	})

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d-%d)\n", base, minLine, maxLine)
	for i, node := range roots {
		writeStructureNode(&b, node, "", i == len(roots)-1)
	}
	return strings.TrimRight(b.String(), "\n")
}

func buildStructure(defs []extract.Definition) []*structureNode {
	var roots []*structureNode
	parents := make(map[string]*structureNode)

	for _, def := range defs {
		node := &structureNode{
			kind:  def.Kind.String(),
			name:  def.QualifiedName,
			start: def.StartLine,
			end:   def.EndLine,
		}
		if idx := strings.LastIndex(def.QualifiedName, "."); idx != -1 {
			if parent, ok := parents[def.QualifiedName[:idx]]; ok {
				node.name = def.QualifiedName[idx+1:]
				parent.children = append(parent.children, node)
				continue
			}
		}
		parents[def.QualifiedName] = node
		roots = append(roots, node)
	}
	return roots
}

// mergeImportGroups folds import statements into "imports" nodes: an
// import extends the previous group unless a definition sits between
// them, in which case a new group starts.
func mergeImportGroups(roots []*structureNode, imports []extract.Import) []*structureNode {
	var groups []*structureNode
	for _, imp := range imports {
		if imp.Line == 0 {
			continue
		}
		if len(groups) > 0 {
			last := groups[len(groups)-1]
			if !definitionBetween(roots, last.end, imp.Line) {
				if imp.Line > last.end {
					last.end = imp.Line
				}
				continue
			}
		}
		groups = append(groups, &structureNode{
			kind:  "imports",
			name:  "import statements",
			start: imp.Line,
			end:   imp.Line,
		})
	}
	if len(groups) == 0 {
		return roots
	}

	merged := append(groups, roots...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].start < merged[j].start
	})
	return merged
}

func definitionBetween(roots []*structureNode, after, before int) bool {
	for _, node := range roots {
		if node.start > after && node.start < before {
			return true
		}
	}
	return false
}

func writeStructureNode(b *strings.Builder, node *structureNode, prefix string, isLast bool) {
	connector := branch
	if isLast {
		connector = lastBranch
	}
	fmt.Fprintf(b, "%s%s %s: %s (%d-%d)\n",
		prefix, connector, node.kind, node.name, node.start, node.end)

	childPrefix := prefix + vertical
	if isLast {
		childPrefix = prefix + space
	}
	for i, child := range node.children {
		writeStructureNode(b, child, childPrefix, i == len(node.children)-1)
	}
}

func walkStructure(nodes []*structureNode, visit func(*structureNode)) {
	for _, node := range nodes {
		visit(node)
		walkStructure(node.children, visit)
	}
}
