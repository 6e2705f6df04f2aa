package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/repomap-dev/repomap/internal/fileutil"
	"github.com/repomap-dev/repomap/internal/lang"
	"github.com/repomap-dev/repomap/internal/report"
)

func RunStructure(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path %q: %w", args[0], err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", path, err)
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}

	registry := lang.NewDefaultRegistry()
	facts, err := registry.ExtractFile(filepath.Base(path), content)
	if err != nil {
		return fmt.Errorf("failed to analyze %q: %w", path, err)
	}
	if facts == nil {
		return fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}

	if asJSON {
		return fileutil.PrintJSON(facts)
	}
	fmt.Println(report.Structure(facts))
	return nil
}
