package extract

import (
	"path/filepath"
	"strings"
)

// Extractor defines the interface each language must implement.
type Extractor interface {
	// Language returns the language name (e.g., "go", "python")
	Language() string

	// Extensions returns file extensions this extractor handles
	Extensions() []string

	// Extract pulls imports, definitions, calls, and entry points out of
	// one file. Best effort: no type checking, textual/AST signals only.
	Extract(path string, content []byte) (*FileFacts, error)
}

// Registry maps file extensions to language extractors. It is a plain
// value constructed at startup and handed to the analyzer; two analyses
// can run concurrently with different registries.
type Registry struct {
	extractors map[string]Extractor // language name -> extractor
	extToLang  map[string]string    // extension -> language name
	fallback   Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]Extractor),
		extToLang:  make(map[string]string),
	}
}

// Register adds a language extractor to the registry.
func (r *Registry) Register(e Extractor) {
	lang := e.Language()
	r.extractors[lang] = e
	for _, ext := range e.Extensions() {
		r.extToLang[ext] = lang
	}
}

// SetFallback installs the extractor used for extensions no language
// claims. A nil fallback means unsupported files are skipped.
func (r *Registry) SetFallback(e Extractor) {
	r.fallback = e
}

// ForFile returns the extractor for a file, falling back when no language
// claims the extension. The second return is false only when the file
// cannot be handled at all.
func (r *Registry) ForFile(path string) (Extractor, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := r.extToLang[ext]; ok {
		if e, ok := r.extractors[lang]; ok {
			return e, true
		}
	}
	if r.fallback != nil {
		return r.fallback, true
	}
	return nil, false
}

// SupportedExtensions returns all registered file extensions.
func (r *Registry) SupportedExtensions() []string {
	exts := make([]string, 0, len(r.extToLang))
	for ext := range r.extToLang {
		exts = append(exts, ext)
	}
	return exts
}

// ExtractFile runs the matching extractor and normalizes its output.
// Record order follows source order; nothing here re-sorts.
func (r *Registry) ExtractFile(path string, content []byte) (*FileFacts, error) {
	extractor, ok := r.ForFile(path)
	if !ok {
		return nil, nil
	}

	facts, err := extractor.Extract(path, content)
	if err != nil {
		return nil, err
	}
	if facts == nil {
		return nil, nil
	}

	facts.Path = path
	facts.Imports = normalizeImports(path, facts.Imports)
	facts.Definitions = normalizeDefinitions(path, facts.Definitions)
	facts.Calls = normalizeCalls(path, facts.Calls)
	return facts, nil
}

func normalizeImports(path string, imports []Import) []Import {
	out := imports[:0]
	for _, imp := range imports {
		imp.Target = strings.TrimSpace(imp.Target)
		if imp.Target == "" {
			continue
		}
		if imp.SourceFile == "" {
			imp.SourceFile = path
		}
		out = append(out, imp)
	}
	return out
}

func normalizeDefinitions(path string, defs []Definition) []Definition {
	out := defs[:0]
	for _, def := range defs {
		def.QualifiedName = strings.TrimSpace(def.QualifiedName)
		if def.QualifiedName == "" {
			continue
		}
		if def.File == "" {
			def.File = path
		}
		if def.EndLine < def.StartLine {
			def.EndLine = def.StartLine
		}
		out = append(out, def)
	}
	return out
}

func normalizeCalls(path string, calls []Call) []Call {
	out := calls[:0]
	for _, call := range calls {
		call.Callee = strings.TrimSpace(call.Callee)
		if call.Callee == "" {
			continue
		}
		if call.File == "" {
			call.File = path
		}
		out = append(out, call)
	}
	return out
}
