package lang

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/repomap-dev/repomap/internal/extract"
)

// GoExtractor extracts structure from Go source files.
type GoExtractor struct {
	language *sitter.Language
}

// NewGoExtractor creates a new Go extractor.
func NewGoExtractor() *GoExtractor {
	return &GoExtractor{language: golang.GetLanguage()}
}

func (g *GoExtractor) Language() string {
	return "go"
}

func (g *GoExtractor) Extensions() []string {
	return []string{".go"}
}

func (g *GoExtractor) Extract(filename string, content []byte) (*extract.FileFacts, error) {
	// Parser per call: a TSParser must not be shared across goroutines.
	parser := sitter.NewParser()
	parser.SetLanguage(g.language)
	defer parser.Close()

	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	facts := &extract.FileFacts{
		Path:     filename,
		Language: "go",
	}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "import_declaration":
			facts.Imports = append(facts.Imports, g.extractImports(filename, node, content)...)
			return false

		case "function_declaration":
			g.extractFunction(node, content, facts)
			return false

		case "method_declaration":
			g.extractMethod(node, content, facts)
			return false

		case "type_declaration":
			g.extractTypeDecl(node, content, facts)
			return false
		}
		return true
	})

	facts.Cluster = g.classify(filename, facts)
	return facts, nil
}

func (g *GoExtractor) extractImports(filename string, node *sitter.Node, content []byte) []extract.Import {
	imports := make([]extract.Import, 0, 4)

	appendSpec := func(spec *sitter.Node) {
		pathNode := spec.ChildByFieldName("path")
		if pathNode == nil {
			return
		}
		target := trimQuotes(pathNode.Content(content))
		if target == "" {
			return
		}
		imports = append(imports, extract.Import{
			SourceFile: filename,
			Target:     target,
			Line:       lineOf(spec),
			Kind:       extract.KindImport,
		})
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "import_spec":
			appendSpec(child)
		case "import_spec_list":
			for j := 0; j < int(child.ChildCount()); j++ {
				if spec := child.Child(j); spec.Type() == "import_spec" {
					appendSpec(spec)
				}
			}
		}
	}
	return imports
}

func (g *GoExtractor) extractFunction(node *sitter.Node, content []byte, facts *extract.FileFacts) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nameNode.Content(content)

	facts.Definitions = append(facts.Definitions, extract.Definition{
		File:          facts.Path,
		QualifiedName: name,
		Kind:          extract.DefFunction,
		StartLine:     lineOf(node),
		EndLine:       endLineOf(node),
	})

	if name == "main" {
		facts.EntryPoints = append(facts.EntryPoints, extract.EntryPoint{
			File: facts.Path,
			Kind: "main_function",
			Name: "main",
			Line: lineOf(node),
		})
	}

	g.collectCalls(node.ChildByFieldName("body"), content, name, facts)
}

func (g *GoExtractor) extractMethod(node *sitter.Node, content []byte, facts *extract.FileFacts) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nameNode.Content(content)

	qualified := name
	if receiver := receiverTypeName(node.ChildByFieldName("receiver"), content); receiver != "" {
		qualified = receiver + "." + name
	}

	facts.Definitions = append(facts.Definitions, extract.Definition{
		File:          facts.Path,
		QualifiedName: qualified,
		Kind:          extract.DefMethod,
		StartLine:     lineOf(node),
		EndLine:       endLineOf(node),
	})

	g.collectCalls(node.ChildByFieldName("body"), content, qualified, facts)
}

func (g *GoExtractor) extractTypeDecl(node *sitter.Node, content []byte, facts *extract.FileFacts) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "type_spec" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		facts.Definitions = append(facts.Definitions, extract.Definition{
			File:          facts.Path,
			QualifiedName: nameNode.Content(content),
			Kind:          extract.DefType,
			StartLine:     lineOf(child),
			EndLine:       endLineOf(child),
		})
	}
}

func (g *GoExtractor) collectCalls(body *sitter.Node, content []byte, caller string, facts *extract.FileFacts) {
	walk(body, func(node *sitter.Node) bool {
		if node.Type() != "call_expression" {
			return true
		}
		fnNode := node.ChildByFieldName("function")
		if fnNode == nil {
			return true
		}
		callee := strings.TrimSpace(fnNode.Content(content))
		if callee != "" {
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

// receiverTypeName pulls the bare type name out of a method receiver,
// dropping pointers and type parameters: "(s *Server[T])" -> "Server".
func receiverTypeName(receiver *sitter.Node, content []byte) string {
	if receiver == nil {
		return ""
	}
	text := strings.Trim(strings.TrimSpace(receiver.Content(content)), "()")
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	typeName := fields[len(fields)-1]
	typeName = strings.TrimLeft(typeName, "*")
	if idx := strings.IndexAny(typeName, "["); idx != -1 {
		typeName = typeName[:idx]
	}
	return typeName
}

func (g *GoExtractor) classify(filename string, facts *extract.FileFacts) string {
	if strings.HasSuffix(filename, "_test.go") {
		return "tests"
	}
	if cluster := classifyPath(filename); cluster != "" {
		return cluster
	}
	for _, ep := range facts.EntryPoints {
		if ep.Kind == "main_function" {
			return "entry_points"
		}
	}
	if len(facts.Definitions) > 0 {
		return "core_logic"
	}
	return "other"
}
