package lang

import "github.com/repomap-dev/repomap/internal/extract"

// GenericExtractor is the fallback for files no language claims. It
// extracts nothing but still classifies the file, so unsupported files
// stay visible in the map as isolated nodes.
type GenericExtractor struct{}

// NewGenericExtractor creates the fallback extractor.
func NewGenericExtractor() *GenericExtractor {
	return &GenericExtractor{}
}

func (g *GenericExtractor) Language() string {
	return "generic"
}

func (g *GenericExtractor) Extensions() []string {
	return nil
}

func (g *GenericExtractor) Extract(filename string, content []byte) (*extract.FileFacts, error) {
	cluster := classifyPath(filename)
	if cluster == "" {
		cluster = "other"
	}
	return &extract.FileFacts{
		Path:     filename,
		Language: "generic",
		Cluster:  cluster,
	}, nil
}
