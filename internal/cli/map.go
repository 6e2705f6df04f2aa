package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/repomap-dev/repomap/internal/analyze"
	"github.com/repomap-dev/repomap/internal/config"
	"github.com/repomap-dev/repomap/internal/extract"
	"github.com/repomap-dev/repomap/internal/fileutil"
	"github.com/repomap-dev/repomap/internal/lang"
	"github.com/repomap-dev/repomap/internal/report"
)

func RunMap(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	rootPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path %q: %w", path, err)
	}
	info, err := os.Stat(rootPath)
	if err != nil {
		return fmt.Errorf("failed to access path %q: %w", rootPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %q is not a directory", rootPath)
	}

	cfg, err := buildAnalyzeConfig(cmd, rootPath)
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}

	analyzer := analyze.New(lang.NewDefaultRegistry(), cfg)
	result, err := analyzer.Analyze(cmd.Context(), rootPath)
	if err != nil {
		return err
	}
	ReportIssues(result.Issues)

	if asJSON {
		return fileutil.PrintJSON(result)
	}
	fmt.Print(report.Map(result, cfg.TopN))
	return nil
}

// buildAnalyzeConfig merges .repomap.yml with command-line flags.
// Flags win; the analyzer fills remaining zero values with defaults.
func buildAnalyzeConfig(cmd *cobra.Command, rootPath string) (analyze.Config, error) {
	fileCfg, err := config.Load(rootPath)
	if err != nil {
		return analyze.Config{}, err
	}

	cfg := analyze.Config{
		MaxFiles:         fileCfg.MaxFiles,
		TopN:             fileCfg.Top,
		Workers:          fileCfg.Workers,
		Languages:        fileCfg.Languages,
		ExtraIgnores:     fileCfg.Ignore,
		RespectGitignore: true,
	}

	if v, err := cmd.Flags().GetInt("max-files"); err == nil && v > 0 {
		cfg.MaxFiles = v
	}
	if v, err := cmd.Flags().GetInt("top"); err == nil && v > 0 {
		cfg.TopN = v
	}
	if v, err := cmd.Flags().GetInt("workers"); err == nil && v > 0 {
		cfg.Workers = v
	}
	if languageFilter, err := ParseLanguageFilter(cmd); err != nil {
		return analyze.Config{}, err
	} else if len(languageFilter) > 0 {
		cfg.Languages = languageFilter
	}
	if noGitignore, err := cmd.Flags().GetBool("no-gitignore"); err == nil && noGitignore {
		cfg.RespectGitignore = false
	}

	return cfg, nil
}

func ReportIssues(issues []extract.Issue) {
	for _, issue := range issues {
		if issue.Language != "" {
			fmt.Fprintf(os.Stderr, "[%s] %s (%s): %s\n", issue.Severity, issue.File, issue.Language, issue.Message)
			continue
		}
		fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", issue.Severity, issue.File, issue.Message)
	}
}
