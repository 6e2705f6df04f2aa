// Package report renders analysis results for humans: the codebase
// map and the per-file structure tree.
package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/repomap-dev/repomap/internal/analyze"
	"github.com/repomap-dev/repomap/internal/extract"
	"github.com/repomap-dev/repomap/internal/graph"
)

const (
	branch     = "├─"
	lastBranch = "└─"
	vertical   = "│  "
	space      = "   "
)

// clusterOrder fixes the display order of architecture clusters.
var clusterOrder = []string{
	"entry_points",
	"core_logic",
	"plugins",
	"utilities",
	"config",
	"tests",
}

// Map renders the codebase map: entry points, core files by
// centrality, architecture clusters, key dependencies, and hot
// functions. maxEntries bounds each section.
func Map(result *analyze.Result, maxEntries int) string {
	if maxEntries <= 0 {
		maxEntries = analyze.DefaultTopN
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📂 %s/\n\n", filepath.Base(result.Root))

	writeEntryPoints(&b, result.EntryPoints, maxEntries)
	writeCoreFiles(&b, result.HotFiles, maxEntries)
	writeClusters(&b, result.Clusters)
	writeDependencies(&b, result.HotFiles)
	writeHotFunctions(&b, result.HotFunctions, maxEntries)

	fmt.Fprintf(&b, "Analysis: %d files in %.2fs",
		result.TotalFiles, result.Duration.Seconds())
	if result.Truncated > 0 {
		fmt.Fprintf(&b, " (%d beyond cap)", result.Truncated)
	}
	if len(result.Issues) > 0 {
		fmt.Fprintf(&b, ", %d files skipped", len(result.Issues))
	}
	b.WriteString("\n")
	return b.String()
}

func writeEntryPoints(b *strings.Builder, entryPoints []extract.EntryPoint, maxEntries int) {
	if len(entryPoints) == 0 {
		return
	}
	b.WriteString("━━━ ENTRY POINTS ━━━\n")
	for i, ep := range entryPoints {
		if i >= maxEntries {
			break
		}
		switch ep.Kind {
		case "main_function":
			fmt.Fprintf(b, "  %s:main() @%d\n", ep.File, ep.Line)
		case "main_guard":
			fmt.Fprintf(b, "  %s:if __name__ @%d\n", ep.File, ep.Line)
		case "app_instance":
			fmt.Fprintf(b, "  %s:%s %s @%d\n", ep.File, ep.Framework, ep.Name, ep.Line)
		default:
			fmt.Fprintf(b, "  %s:%s\n", ep.File, ep.Name)
		}
	}
	b.WriteString("\n")
}

func writeCoreFiles(b *strings.Builder, hotFiles []*graph.FileNode, maxEntries int) {
	if len(hotFiles) == 0 {
		return
	}
	b.WriteString("━━━ CORE FILES (by centrality) ━━━\n")
	for i, node := range hotFiles {
		if i >= maxEntries || node.Centrality == 0 {
			break
		}
		fmt.Fprintf(b, "  %s: imports %d, used by %d files\n",
			node.Path, len(node.Imports), len(node.ImportedBy))
	}
	b.WriteString("\n")
}

func writeClusters(b *strings.Builder, clusters map[string][]string) {
	if len(clusters) == 0 {
		return
	}
	b.WriteString("━━━ ARCHITECTURE ━━━\n")
	for _, name := range clusterOrder {
		files := clusters[name]
		if len(files) == 0 {
			continue
		}
		sorted := append([]string(nil), files...)
		sort.Strings(sorted)
		fmt.Fprintf(b, "  %s: %d files\n", clusterTitle(name), len(sorted))
		for i, f := range sorted {
			if i == 3 {
				fmt.Fprintf(b, "    ... +%d more\n", len(sorted)-3)
				break
			}
			fmt.Fprintf(b, "    - %s\n", f)
		}
	}
	b.WriteString("\n")
}

func writeDependencies(b *strings.Builder, hotFiles []*graph.FileNode) {
	withImports := 0
	for _, node := range hotFiles {
		if len(node.Imports) > 0 {
			withImports++
		}
	}
	if withImports == 0 {
		return
	}
	b.WriteString("━━━ KEY DEPENDENCIES ━━━\n")
	shown := 0
	for _, node := range hotFiles {
		if shown == 5 {
			break
		}
		if len(node.Imports) == 0 {
			continue
		}
		shown++
		fmt.Fprintf(b, "  %s\n", node.Path)
		for i, imp := range node.Imports {
			if i == 3 {
				fmt.Fprintf(b, "       ... +%d more\n", len(node.Imports)-3)
				break
			}
			fmt.Fprintf(b, "    └→ imports: %s\n", imp)
		}
	}
	b.WriteString("\n")
}

func writeHotFunctions(b *strings.Builder, hotFunctions []*graph.CallNode, maxEntries int) {
	if len(hotFunctions) == 0 {
		return
	}
	b.WriteString("━━━ HOT FUNCTIONS (most called) ━━━\n")
	for i, node := range hotFunctions {
		if i >= maxEntries || node.Centrality == 0 {
			break
		}
		file, name := splitFQN(node.FQN)
		fmt.Fprintf(b, "  %s (%s): called by %d, calls %d @%s\n",
			name, node.Kind, len(node.Callers), len(node.Callees), file)
	}
	b.WriteString("\n")
}

func clusterTitle(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func splitFQN(fqn string) (file, name string) {
	if idx := strings.LastIndex(fqn, ":"); idx != -1 {
		return fqn[:idx], fqn[idx+1:]
	}
	return "unknown", fqn
}
