package extract

// ImportKind distinguishes the syntactic form an import was written in.
type ImportKind int

const (
	KindImport ImportKind = iota
	KindFromImport
	KindRelative
)

func (k ImportKind) String() string {
	switch k {
	case KindImport:
		return "import"
	case KindFromImport:
		return "from_import"
	case KindRelative:
		return "relative"
	default:
		return "unknown"
	}
}

// DefinitionKind represents the type of a code definition.
type DefinitionKind int

const (
	DefFunction DefinitionKind = iota
	DefMethod
	DefClass
	DefType
	DefConstant
	DefVariable
)

func (k DefinitionKind) String() string {
	switch k {
	case DefFunction:
		return "function"
	case DefMethod:
		return "method"
	case DefClass:
		return "class"
	case DefType:
		return "type"
	case DefConstant:
		return "const"
	case DefVariable:
		return "var"
	default:
		return "unknown"
	}
}

// Import records a single import statement found in a source file.
// Target holds the raw textual reference; resolution to a concrete file
// happens later, against the full discovered file set.
type Import struct {
	SourceFile string
	Target     string
	Line       int
	Kind       ImportKind
	Names      []string
}

// Definition records a function, method, class, or type declared in a file.
// Identity is (File, QualifiedName); a later definition with the same
// qualified name in the same file overwrites the earlier one.
type Definition struct {
	File          string
	QualifiedName string
	Kind          DefinitionKind
	StartLine     int
	EndLine       int
}

// FQN returns the cross-file identity of the definition.
func (d Definition) FQN() string {
	return d.File + ":" + d.QualifiedName
}

// Call records a call site. Caller is the qualified name of the enclosing
// definition, or empty when the call happens at file top level. Callee is
// the raw callee reference as written.
type Call struct {
	File   string
	Caller string
	Callee string
	Line   int
}

// EntryPoint marks a place where execution plausibly starts.
type EntryPoint struct {
	File      string
	Kind      string // main_function | main_guard | app_instance | export
	Name      string
	Line      int
	Framework string
}

// FileFacts holds everything an extractor learned about one file.
type FileFacts struct {
	Path        string
	Language    string
	Imports     []Import
	Definitions []Definition
	Calls       []Call
	EntryPoints []EntryPoint
	Cluster     string
}

// Issue captures a non-fatal per-file failure. Extraction failures never
// abort an analysis run; the file stays in the graph as an isolated node.
type Issue struct {
	File     string `json:"file"`
	Language string `json:"language,omitempty"`
	Severity string `json:"severity"` // warning | error
	Message  string `json:"message"`
}
