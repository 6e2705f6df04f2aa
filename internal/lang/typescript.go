package lang

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/repomap-dev/repomap/internal/extract"
)

// TypeScriptExtractor extracts structure from TypeScript and JavaScript
// source files.
type TypeScriptExtractor struct {
	tsLanguage *sitter.Language
	jsLanguage *sitter.Language
}

// NewTypeScriptExtractor creates a new TypeScript/JavaScript extractor.
func NewTypeScriptExtractor() *TypeScriptExtractor {
	return &TypeScriptExtractor{
		tsLanguage: typescript.GetLanguage(),
		jsLanguage: javascript.GetLanguage(),
	}
}

func (t *TypeScriptExtractor) Language() string {
	return "typescript"
}

func (t *TypeScriptExtractor) Extensions() []string {
	return []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"}
}

func isJavaScriptFile(filename string) bool {
	for _, ext := range []string{".js", ".jsx", ".mjs", ".cjs"} {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}

func (t *TypeScriptExtractor) Extract(filename string, content []byte) (*extract.FileFacts, error) {
	sitterLang := t.tsLanguage
	language := "typescript"
	if isJavaScriptFile(filename) {
		sitterLang = t.jsLanguage
		language = "javascript"
	}

	// Parser per call: a TSParser must not be shared across goroutines.
	parser := sitter.NewParser()
	parser.SetLanguage(sitterLang)
	defer parser.Close()

	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	facts := &extract.FileFacts{
		Path:     filename,
		Language: language,
	}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "import_statement":
			if imp, ok := t.extractImport(filename, node, content); ok {
				facts.Imports = append(facts.Imports, imp)
			}
			return false

		case "function_declaration", "generator_function_declaration":
			t.extractFunction(node, content, "", facts)
			return false

		case "class_declaration":
			t.extractClass(node, content, facts)
			return false

		case "lexical_declaration", "variable_declaration":
			t.extractVariableFunctions(node, content, facts)
			return false

		case "export_statement":
			t.markExport(node, content, facts)
			return true

		case "call_expression":
			// require() at top level doubles as an import.
			if imp, ok := t.extractRequire(filename, node, content); ok {
				facts.Imports = append(facts.Imports, imp)
			}
			if callee := t.calleeReference(node, content); callee != "" {
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

	facts.Cluster = t.classify(filename, facts)
	return facts, nil
}

func (t *TypeScriptExtractor) extractImport(filename string, node *sitter.Node, content []byte) (extract.Import, bool) {
	sourceNode := node.ChildByFieldName("source")
	if sourceNode == nil {
		// Grammar versions differ; fall back to the first string child.
		for i := 0; i < int(node.ChildCount()); i++ {
			if child := node.Child(i); child.Type() == "string" {
				sourceNode = child
				break
			}
		}
	}
	if sourceNode == nil {
		return extract.Import{}, false
	}

	target := trimQuotes(sourceNode.Content(content))
	if target == "" {
		return extract.Import{}, false
	}

	kind := extract.KindImport
	if strings.HasPrefix(target, ".") {
		kind = extract.KindRelative
		target = resolveRelativeReference(filename, target)
	}
	return extract.Import{
		SourceFile: filename,
		Target:     target,
		Line:       lineOf(node),
		Kind:       kind,
	}, true
}

func (t *TypeScriptExtractor) extractRequire(filename string, node *sitter.Node, content []byte) (extract.Import, bool) {
	fnNode := node.ChildByFieldName("function")
	if fnNode == nil || fnNode.Content(content) != "require" {
		return extract.Import{}, false
	}
	argsNode := node.ChildByFieldName("arguments")
	if argsNode == nil || argsNode.NamedChildCount() == 0 {
		return extract.Import{}, false
	}
	arg := argsNode.NamedChild(0)
	if arg.Type() != "string" {
		return extract.Import{}, false
	}

	target := trimQuotes(arg.Content(content))
	if target == "" {
		return extract.Import{}, false
	}
	kind := extract.KindImport
	if strings.HasPrefix(target, ".") {
		kind = extract.KindRelative
		target = resolveRelativeReference(filename, target)
	}
	return extract.Import{
		SourceFile: filename,
		Target:     target,
		Line:       lineOf(node),
		Kind:       kind,
	}, true
}

func (t *TypeScriptExtractor) extractFunction(node *sitter.Node, content []byte, className string, facts *extract.FileFacts) {
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

	t.collectCalls(node.ChildByFieldName("body"), content, qualified, facts)
}

func (t *TypeScriptExtractor) extractClass(node *sitter.Node, content []byte, facts *extract.FileFacts) {
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
		if child.Type() != "method_definition" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		qualified := className + "." + nameNode.Content(content)
		facts.Definitions = append(facts.Definitions, extract.Definition{
			File:          facts.Path,
			QualifiedName: qualified,
			Kind:          extract.DefMethod,
			StartLine:     lineOf(child),
			EndLine:       endLineOf(child),
		})
		t.collectCalls(child.ChildByFieldName("body"), content, qualified, facts)
	}
}

func (t *TypeScriptExtractor) extractVariableFunctions(node *sitter.Node, content []byte, facts *extract.FileFacts) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		valueNode := child.ChildByFieldName("value")
		if nameNode == nil || valueNode == nil {
			continue
		}
		if valueNode.Type() != "arrow_function" && valueNode.Type() != "function_expression" &&
			valueNode.Type() != "function" {
			continue
		}
		name := nameNode.Content(content)
		facts.Definitions = append(facts.Definitions, extract.Definition{
			File:          facts.Path,
			QualifiedName: name,
			Kind:          extract.DefFunction,
			StartLine:     lineOf(child),
			EndLine:       endLineOf(child),
		})
		t.collectCalls(valueNode, content, name, facts)
	}
}

func (t *TypeScriptExtractor) markExport(node *sitter.Node, content []byte, facts *extract.FileFacts) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		var nameNode *sitter.Node
		switch child.Type() {
		case "function_declaration", "class_declaration", "generator_function_declaration":
			nameNode = child.ChildByFieldName("name")
		}
		if nameNode == nil {
			continue
		}
		facts.EntryPoints = append(facts.EntryPoints, extract.EntryPoint{
			File: facts.Path,
			Kind: "export",
			Name: nameNode.Content(content),
			Line: lineOf(child),
		})
	}
}

func (t *TypeScriptExtractor) collectCalls(body *sitter.Node, content []byte, caller string, facts *extract.FileFacts) {
	walk(body, func(node *sitter.Node) bool {
		if node.Type() != "call_expression" {
			return true
		}
		if callee := t.calleeReference(node, content); callee != "" {
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

func (t *TypeScriptExtractor) calleeReference(callNode *sitter.Node, content []byte) string {
	fnNode := callNode.ChildByFieldName("function")
	for fnNode != nil {
		switch fnNode.Type() {
		case "identifier", "member_expression":
			return strings.TrimSpace(fnNode.Content(content))
		case "parenthesized_expression":
			fnNode = fnNode.ChildByFieldName("expression")
		case "subscript_expression":
			fnNode = fnNode.ChildByFieldName("object")
		default:
			return strings.TrimSpace(fnNode.Content(content))
		}
	}
	return ""
}

func (t *TypeScriptExtractor) classify(filename string, facts *extract.FileFacts) string {
	if cluster := classifyPath(filename); cluster != "" {
		return cluster
	}
	if len(facts.EntryPoints) > 0 {
		return "entry_points"
	}
	if len(facts.Definitions) > 0 {
		return "core_logic"
	}
	return "other"
}
