// Package analyze orchestrates a full repository analysis: discovery,
// parallel per-file extraction, graph building, and ranking.
package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/repomap-dev/repomap/internal/discover"
	"github.com/repomap-dev/repomap/internal/extract"
	"github.com/repomap-dev/repomap/internal/graph"
)

const (
	// DefaultMaxFiles is the safety cap on files entering extraction.
	DefaultMaxFiles = 10000
	// DefaultTopN bounds the hot file and hot function lists.
	DefaultTopN = 10
)

// Config controls an analysis run. Zero values mean defaults.
type Config struct {
	MaxFiles         int
	TopN             int
	Workers          int
	RespectGitignore bool
	// Languages restricts extraction to the named languages. Empty
	// means all registered languages.
	Languages []string
	// ExtraIgnores are additional gitignore-style exclusion rules.
	ExtraIgnores []string
	Logger       *slog.Logger
}

// Result is the complete outcome of one analysis run. It is always
// fully populated, even when individual files failed extraction.
type Result struct {
	Root         string                        `json:"root"`
	Files        map[string]*graph.FileNode    `json:"files"`
	Calls        map[string]*graph.CallNode    `json:"calls"`
	Facts        map[string]*extract.FileFacts `json:"facts"`
	HotFiles     []*graph.FileNode             `json:"hot_files"`
	HotFunctions []*graph.CallNode             `json:"hot_functions"`
	EntryPoints  []extract.EntryPoint          `json:"entry_points"`
	Clusters     map[string][]string           `json:"clusters"`
	TotalFiles   int                           `json:"total_files"`
	Analyzed     int                           `json:"analyzed"`
	Truncated    int                           `json:"truncated"`
	Issues       []extract.Issue               `json:"issues,omitempty"`
	Duration     time.Duration                 `json:"duration"`
}

// Analyzer runs analyses against one extractor registry.
type Analyzer struct {
	registry *extract.Registry
	cfg      Config
	log      *slog.Logger
}

// New creates an analyzer. The registry is required; config zero
// values are replaced with defaults.
func New(registry *extract.Registry, cfg Config) *Analyzer {
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = DefaultMaxFiles
	}
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultTopN
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return &Analyzer{registry: registry, cfg: cfg, log: log}
}

// Analyze walks root, extracts every discovered file, and assembles
// the import graph, call graph, and hot-node rankings. Per-file
// extraction failures never abort the run: the file stays in the map
// as an isolated node and the failure is recorded as an issue.
func (a *Analyzer) Analyze(ctx context.Context, root string) (*Result, error) {
	start := time.Now()

	disc, err := discover.Walk(root, discover.Options{
		RespectGitignore: a.cfg.RespectGitignore,
		ExtraIgnores:     a.cfg.ExtraIgnores,
		MaxFiles:         a.cfg.MaxFiles,
	})
	if err != nil {
		return nil, err
	}

	files := a.filterLanguages(disc.Files)
	a.log.Debug("discovery complete",
		"total", disc.Total, "selected", len(files), "truncated", disc.Truncated)

	// Each worker writes only its own slot; the orchestrator folds the
	// slots back together in discovery order after the barrier.
	facts := make([]*extract.FileFacts, len(files))
	failures := make([]*extract.Issue, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for i, rel := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
			if err != nil {
				failures[i] = &extract.Issue{
					File:     rel,
					Severity: "error",
					Message:  fmt.Sprintf("read: %v", err),
				}
				return nil
			}
			f, err := a.registry.ExtractFile(rel, content)
			if err != nil {
				lang := ""
				if e, ok := a.registry.ForFile(rel); ok {
					lang = e.Language()
				}
				failures[i] = &extract.Issue{
					File:     rel,
					Language: lang,
					Severity: "error",
					Message:  err.Error(),
				}
				return nil
			}
			facts[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Root:       root,
		Facts:      make(map[string]*extract.FileFacts, len(files)),
		Clusters:   make(map[string][]string),
		TotalFiles: disc.Total,
		Truncated:  disc.Truncated,
	}

	var (
		imports     []extract.Import
		definitions []extract.Definition
		calls       []extract.Call
	)
	for i, rel := range files {
		if failures[i] != nil {
			result.Issues = append(result.Issues, *failures[i])
			a.log.Warn("extraction failed", "file", rel, "error", failures[i].Message)
			continue
		}
		f := facts[i]
		if f == nil {
			continue
		}
		result.Analyzed++
		result.Facts[rel] = f
		imports = append(imports, f.Imports...)
		definitions = append(definitions, f.Definitions...)
		calls = append(calls, f.Calls...)
		result.EntryPoints = append(result.EntryPoints, f.EntryPoints...)
		if f.Cluster != "" {
			result.Clusters[f.Cluster] = append(result.Clusters[f.Cluster], rel)
		}
	}

	result.Files = graph.BuildImportGraph(imports, files)
	graph.RankFiles(result.Files)
	result.Calls = graph.BuildCallGraph(definitions, calls)
	graph.RankCalls(result.Calls)
	result.HotFiles = graph.HotFiles(result.Files, a.cfg.TopN)
	result.HotFunctions = graph.HotFunctions(result.Calls, a.cfg.TopN)

	result.Duration = time.Since(start)
	a.log.Info("analysis complete",
		"files", len(result.Files), "calls", len(result.Calls),
		"issues", len(result.Issues), "duration", result.Duration)
	return result, nil
}

// filterLanguages drops files whose extractor language is not in the
// configured filter. With no filter the list passes through untouched.
func (a *Analyzer) filterLanguages(files []string) []string {
	if len(a.cfg.Languages) == 0 {
		return files
	}
	allowed := make(map[string]bool, len(a.cfg.Languages))
	for _, lang := range a.cfg.Languages {
		allowed[lang] = true
	}
	kept := files[:0]
	for _, rel := range files {
		e, ok := a.registry.ForFile(rel)
		if !ok || !allowed[e.Language()] {
			continue
		}
		kept = append(kept, rel)
	}
	return kept
}
