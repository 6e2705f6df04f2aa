package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ParseLanguageFilter reads --lang and resolves aliases to canonical
// extractor names. JavaScript rides on the TypeScript extractor, so
// both aliases map there.
func ParseLanguageFilter(cmd *cobra.Command) ([]string, error) {
	langs, err := cmd.Flags().GetStringSlice("lang")
	if err != nil {
		return nil, fmt.Errorf("failed to read --lang flag: %w", err)
	}
	if len(langs) == 0 {
		return nil, nil
	}

	aliases := map[string]string{
		"go":         "go",
		"python":     "python",
		"py":         "python",
		"typescript": "typescript",
		"ts":         "typescript",
		"javascript": "typescript",
		"js":         "typescript",
	}

	seen := make(map[string]bool, len(langs))
	filter := make([]string, 0, len(langs))
	for _, lang := range langs {
		key := strings.ToLower(strings.TrimSpace(lang))
		canonical, ok := aliases[key]
		if !ok {
			return nil, fmt.Errorf("unsupported language %q (supported: go, python, typescript, javascript)", lang)
		}
		if !seen[canonical] {
			seen[canonical] = true
			filter = append(filter, canonical)
		}
	}

	return filter, nil
}
