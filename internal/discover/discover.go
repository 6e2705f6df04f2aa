// Package discover walks a repository root and produces the ordered
// list of files to analyze, applying ignore rules and the file cap.
package discover

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/repomap-dev/repomap/internal/ignore"
)

// Options controls a discovery walk.
type Options struct {
	// RespectGitignore loads the root .gitignore when true.
	RespectGitignore bool
	// ExtraIgnores are additional gitignore-style rules, typically from
	// config. They stack on top of the built-in defaults and any
	// .repomapignore file found at the root.
	ExtraIgnores []string
	// MaxFiles caps the number of files returned. Zero or negative
	// means no cap.
	MaxFiles int
}

// Result is the outcome of a discovery walk. Files are root-relative
// slash paths in lexical walk order.
type Result struct {
	Files []string
	// Total counts every candidate file seen, including those dropped
	// by the cap.
	Total     int
	Truncated int
}

// Walk discovers files under root. Ordering is deterministic: WalkDir
// visits entries in lexical order, so two runs over the same tree
// return the same list.
func Walk(root string, opts Options) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("discover: %s is not a directory", root)
	}

	userRules := readIgnoreFile(filepath.Join(root, ".repomapignore"))
	userRules = append(userRules, opts.ExtraIgnores...)
	matcher := ignore.NewMatcher(userRules)

	var gi *gitignore.GitIgnore
	if opts.RespectGitignore {
		// Missing .gitignore is not an error.
		gi, _ = gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	}

	result := &Result{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if matcher.ShouldIgnore(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if gi != nil {
			// Directory patterns like "build/" only match with the
			// trailing slash present.
			matchRel := rel
			if d.IsDir() {
				matchRel += "/"
			}
			if gi.MatchesPath(matchRel) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		result.Total++
		if opts.MaxFiles > 0 && len(result.Files) >= opts.MaxFiles {
			result.Truncated++
			return nil
		}
		result.Files = append(result.Files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	return result, nil
}

// readIgnoreFile loads rules from a .repomapignore file. A missing or
// unreadable file yields no rules.
func readIgnoreFile(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var rules []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	return rules
}
