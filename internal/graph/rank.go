package graph

import "sort"

// Centrality is a weighted degree: incoming edges count double. Files
// imported by many others (and functions called by many others) rank
// above heavy importers, which is the point: hubs are what a reader
// orients around first.

// ScoreFileNode computes the centrality of a single file node.
func ScoreFileNode(n *FileNode) int {
	return 2*len(n.ImportedBy) + len(n.Imports)
}

// ScoreCallNode computes the centrality of a single call-graph node.
func ScoreCallNode(n *CallNode) int {
	return 2*len(n.Callers) + len(n.Callees)
}

// RankFiles fills in centrality scores for every file node.
func RankFiles(graph map[string]*FileNode) {
	for _, node := range graph {
		node.Centrality = ScoreFileNode(node)
	}
}

// RankCalls fills in centrality scores for every call-graph node.
func RankCalls(graph map[string]*CallNode) {
	for _, node := range graph {
		node.Centrality = ScoreCallNode(node)
	}
}

// HotFiles returns at most topN file nodes by descending centrality.
// Ties break on ascending path so identical inputs always produce the
// same hot list.
func HotFiles(graph map[string]*FileNode, topN int) []*FileNode {
	nodes := make([]*FileNode, 0, len(graph))
	for _, node := range graph {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Centrality == nodes[j].Centrality {
			return nodes[i].Path < nodes[j].Path
		}
		return nodes[i].Centrality > nodes[j].Centrality
	})
	return nodes[:capTopN(len(nodes), topN)]
}

// HotFunctions returns at most topN call-graph nodes by descending
// centrality, ties broken by ascending FQN.
func HotFunctions(graph map[string]*CallNode, topN int) []*CallNode {
	nodes := make([]*CallNode, 0, len(graph))
	for _, node := range graph {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Centrality == nodes[j].Centrality {
			return nodes[i].FQN < nodes[j].FQN
		}
		return nodes[i].Centrality > nodes[j].Centrality
	})
	return nodes[:capTopN(len(nodes), topN)]
}

func capTopN(available, topN int) int {
	if topN < 0 {
		topN = 0
	}
	if topN > available {
		return available
	}
	return topN
}
