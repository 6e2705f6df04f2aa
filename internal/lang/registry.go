package lang

import "github.com/repomap-dev/repomap/internal/extract"

// NewDefaultRegistry creates a registry with all supported language
// extractors and the generic fallback.
func NewDefaultRegistry() *extract.Registry {
	r := extract.NewRegistry()

	r.Register(NewGoExtractor())
	r.Register(NewPythonExtractor())
	r.Register(NewTypeScriptExtractor())
	r.SetFallback(NewGenericExtractor())

	return r
}
