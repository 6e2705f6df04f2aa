package lang

import (
	"context"
	"path"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/repomap-dev/repomap/internal/extract"
)

// appFrameworks are the web/tool frameworks whose module-level instances
// count as entry points.
var appFrameworks = map[string]bool{
	"Flask":     true,
	"FastAPI":   true,
	"FastMCP":   true,
	"Starlette": true,
}

// PythonExtractor extracts structure from Python source files.
type PythonExtractor struct {
	language *sitter.Language
}

// NewPythonExtractor creates a new Python extractor.
func NewPythonExtractor() *PythonExtractor {
	return &PythonExtractor{language: python.GetLanguage()}
}

func (p *PythonExtractor) Language() string {
	return "python"
}

func (p *PythonExtractor) Extensions() []string {
	return []string{".py", ".pyw"}
}

func (p *PythonExtractor) Extract(filename string, content []byte) (*extract.FileFacts, error) {
	// A TSParser is single-threaded; allocate one per call so Extract is
	// safe from concurrent analyzer workers.
	parser := sitter.NewParser()
	parser.SetLanguage(p.language)
	defer parser.Close()

	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	facts := &extract.FileFacts{
		Path:     filename,
		Language: "python",
	}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "import_statement":
			facts.Imports = append(facts.Imports, p.extractImport(filename, node, content)...)
			return false

		case "import_from_statement":
			facts.Imports = append(facts.Imports, p.extractFromImport(filename, node, content)...)
			return false

		case "function_definition":
			p.extractFunction(node, content, "", facts)
			return false

		case "class_definition":
			p.extractClass(node, content, facts)
			return false

		case "if_statement":
			if cond := node.ChildByFieldName("condition"); cond != nil {
				text := cond.Content(content)
				if strings.Contains(text, "__name__") && strings.Contains(text, "__main__") {
					facts.EntryPoints = append(facts.EntryPoints, extract.EntryPoint{
						File: filename,
						Kind: "main_guard",
						Name: "__main__",
						Line: lineOf(node),
					})
				}
			}
			return true

		case "assignment":
			p.extractAssignmentEntryPoints(filename, node, content, facts)
			return true

		case "call":
			// Function bodies are pruned above, so any call reaching the
			// main walk runs at file top level.
			if callee := p.calleeReference(node, content); callee != "" {
				facts.Calls = append(facts.Calls, extract.Call{
					File:   filename,
					Callee: callee,
					Line:   lineOf(node),
				})
			}
			return true
		}
		return true
	})

	facts.Cluster = p.classify(filename, content, facts)
	return facts, nil
}

func (p *PythonExtractor) extractImport(filename string, node *sitter.Node, content []byte) []extract.Import {
	imports := make([]extract.Import, 0, 1)
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "dotted_name":
			if target := strings.TrimSpace(child.Content(content)); target != "" {
				imports = append(imports, extract.Import{
					SourceFile: filename,
					Target:     target,
					Line:       lineOf(node),
					Kind:       extract.KindImport,
				})
			}
		case "aliased_import":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				if target := strings.TrimSpace(nameNode.Content(content)); target != "" {
					imports = append(imports, extract.Import{
						SourceFile: filename,
						Target:     target,
						Line:       lineOf(node),
						Kind:       extract.KindImport,
					})
				}
			}
		}
	}
	return imports
}

func (p *PythonExtractor) extractFromImport(filename string, node *sitter.Node, content []byte) []extract.Import {
	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode == nil {
		return nil
	}
	module := strings.TrimSpace(moduleNode.Content(content))
	if module == "" {
		return nil
	}

	names := p.importedNames(node, content)
	line := lineOf(node)

	if !strings.HasPrefix(module, ".") {
		return []extract.Import{{
			SourceFile: filename,
			Target:     module,
			Line:       line,
			Kind:       extract.KindFromImport,
			Names:      names,
		}}
	}

	resolved := resolveRelativeReference(filename, module)
	dotsOnly := strings.Trim(module, ".") == ""
	if dotsOnly && len(names) > 0 {
		// "from . import x" imports sibling modules, one per name.
		imports := make([]extract.Import, 0, len(names))
		for _, name := range names {
			imports = append(imports, extract.Import{
				SourceFile: filename,
				Target:     path.Join(resolved, name),
				Line:       line,
				Kind:       extract.KindRelative,
				Names:      []string{name},
			})
		}
		return imports
	}

	return []extract.Import{{
		SourceFile: filename,
		Target:     resolved,
		Line:       line,
		Kind:       extract.KindRelative,
		Names:      names,
	}}
}

func (p *PythonExtractor) importedNames(node *sitter.Node, content []byte) []string {
	names := make([]string, 0)
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.FieldNameForChild(i) != "name" {
			continue
		}
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "aliased_import":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				if name := strings.TrimSpace(nameNode.Content(content)); name != "" {
					names = append(names, name)
				}
			}
		case "dotted_name", "identifier":
			if name := strings.TrimSpace(child.Content(content)); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

func (p *PythonExtractor) extractFunction(node *sitter.Node, content []byte, className string, facts *extract.FileFacts) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nameNode.Content(content)

	qualified := name
	kind := extract.DefFunction
	if className != "" {
		qualified = className + "." + name
		kind = extract.DefMethod
	}

	facts.Definitions = append(facts.Definitions, extract.Definition{
		File:          facts.Path,
		QualifiedName: qualified,
		Kind:          kind,
		StartLine:     lineOf(node),
		EndLine:       endLineOf(node),
	})

	if className == "" && name == "main" {
		facts.EntryPoints = append(facts.EntryPoints, extract.EntryPoint{
			File: facts.Path,
			Kind: "main_function",
			Name: "main",
			Line: lineOf(node),
		})
	}

	p.collectCalls(node.ChildByFieldName("body"), content, qualified, facts)
}

func (p *PythonExtractor) extractClass(node *sitter.Node, content []byte, facts *extract.FileFacts) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	className := nameNode.Content(content)

	facts.Definitions = append(facts.Definitions, extract.Definition{
		File:          facts.Path,
		QualifiedName: className,
		Kind:          extract.DefClass,
		StartLine:     lineOf(node),
		EndLine:       endLineOf(node),
	})

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		switch child.Type() {
		case "function_definition":
			p.extractFunction(child, content, className, facts)
		case "decorated_definition":
			if inner := child.ChildByFieldName("definition"); inner != nil && inner.Type() == "function_definition" {
				p.extractFunction(inner, content, className, facts)
			}
		}
	}
}

// collectCalls walks a definition body and attributes every call site to
// the enclosing definition. Calls inside nested functions count toward
// the outer definition; nested functions are not definitions of their own.
func (p *PythonExtractor) collectCalls(body *sitter.Node, content []byte, caller string, facts *extract.FileFacts) {
	walk(body, func(node *sitter.Node) bool {
		if node.Type() != "call" {
			return true
		}
		if callee := p.calleeReference(node, content); callee != "" {
			facts.Calls = append(facts.Calls, extract.Call{
				File:   facts.Path,
				Caller: caller,
				Callee: callee,
				Line:   lineOf(node),
			})
		}
		return true
	})
}

func (p *PythonExtractor) calleeReference(callNode *sitter.Node, content []byte) string {
	fnNode := callNode.ChildByFieldName("function")
	for fnNode != nil {
		switch fnNode.Type() {
		case "identifier", "attribute", "dotted_name":
			return strings.TrimSpace(fnNode.Content(content))
		case "parenthesized_expression":
			fnNode = fnNode.ChildByFieldName("expression")
		case "subscript":
			fnNode = fnNode.ChildByFieldName("value")
		default:
			return strings.TrimSpace(fnNode.Content(content))
		}
	}
	return ""
}

func (p *PythonExtractor) extractAssignmentEntryPoints(filename string, node *sitter.Node, content []byte, facts *extract.FileFacts) {
	leftNode := node.ChildByFieldName("left")
	rightNode := node.ChildByFieldName("right")
	if leftNode == nil || rightNode == nil {
		return
	}
	left := strings.TrimSpace(leftNode.Content(content))

	if left == "__all__" && strings.HasSuffix(filename, "__init__.py") {
		facts.EntryPoints = append(facts.EntryPoints, extract.EntryPoint{
			File: filename,
			Kind: "export",
			Name: "__all__",
			Line: lineOf(node),
		})
		return
	}

	if rightNode.Type() != "call" {
		return
	}
	fn := rightNode.ChildByFieldName("function")
	if fn == nil {
		return
	}
	_, framework := splitQualifiedName(fn.Content(content))
	if appFrameworks[framework] {
		facts.EntryPoints = append(facts.EntryPoints, extract.EntryPoint{
			File:      filename,
			Kind:      "app_instance",
			Name:      left,
			Line:      lineOf(node),
			Framework: framework,
		})
	}
}

func (p *PythonExtractor) classify(filename string, content []byte, facts *extract.FileFacts) string {
	if cluster := classifyPath(filename); cluster != "" {
		return cluster
	}
	for _, ep := range facts.EntryPoints {
		if ep.Kind == "main_function" || ep.Kind == "main_guard" {
			return "entry_points"
		}
	}
	text := string(content)
	if strings.Contains(text, "import pytest") || strings.Contains(text, "import unittest") ||
		strings.Contains(text, "from unittest") {
		return "tests"
	}
	if len(facts.Definitions) > 0 {
		return "core_logic"
	}
	return "other"
}
