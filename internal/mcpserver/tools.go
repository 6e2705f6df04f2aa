package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/repomap-dev/repomap/internal/analyze"
	"github.com/repomap-dev/repomap/internal/report"
)

type MapCodebaseArgs struct {
	Path       string `json:"path" jsonschema:"required,description:The directory to analyze"`
	MaxEntries int    `json:"max_entries" jsonschema:"description:Maximum entries per map section (default 10)"`
}

type FileStructureArgs struct {
	FilePath string `json:"file_path" jsonschema:"required,description:The file to outline"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "map_codebase",
		Description: "Builds a map of a codebase: entry points, core files by centrality, architecture clusters, and hot functions",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args MapCodebaseArgs) (*mcp.CallToolResult, any, error) {
		rootPath, err := filepath.Abs(args.Path)
		if err != nil {
			return errorResult(fmt.Sprintf("Invalid path: %v", err)), nil, nil
		}
		info, err := os.Stat(rootPath)
		if err != nil {
			return errorResult(fmt.Sprintf("Cannot access path: %v", err)), nil, nil
		}
		if !info.IsDir() {
			return errorResult(fmt.Sprintf("Not a directory: %s", rootPath)), nil, nil
		}

		topN := args.MaxEntries
		analyzer := analyze.New(s.registry, analyze.Config{
			TopN:             topN,
			RespectGitignore: true,
		})
		result, err := analyzer.Analyze(ctx, rootPath)
		if err != nil {
			return errorResult(fmt.Sprintf("Analysis failed: %v", err)), nil, nil
		}
		return textResult(report.Map(result, topN)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "file_structure",
		Description: "Shows one file's structure as a tree: classes, functions, and methods with line ranges",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FileStructureArgs) (*mcp.CallToolResult, any, error) {
		path, err := filepath.Abs(args.FilePath)
		if err != nil {
			return errorResult(fmt.Sprintf("Invalid path: %v", err)), nil, nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return errorResult(fmt.Sprintf("Cannot read file: %v", err)), nil, nil
		}

		facts, err := s.registry.ExtractFile(filepath.Base(path), content)
		if err != nil {
			return errorResult(fmt.Sprintf("Analysis failed: %v", err)), nil, nil
		}
		if facts == nil {
			return errorResult(fmt.Sprintf("Unsupported file type: %s", filepath.Ext(path))), nil, nil
		}
		return textResult(report.Structure(facts)), nil, nil
	})
}
