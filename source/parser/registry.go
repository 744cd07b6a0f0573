package parser

import (
	"path/filepath"
	"sync"

	"github.com/c360studio/notegraph/source"
)

// Parser defines the interface for document parsers.
type Parser interface {
	// Parse parses a document and returns structured data.
	Parse(path string, content []byte) (*source.Document, error)

	// CanParse returns true if this parser handles the given file extension.
	CanParse(ext string) bool

	// Extension returns the primary file extension for this parser.
	Extension() string
}

// Registry manages document parsers.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]Parser // keyed by primary extension
}

// DefaultRegistry is the global parser registry with default parsers.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a new parser registry with default parsers.
func NewRegistry() *Registry {
	r := &Registry{
		parsers: make(map[string]Parser),
	}

	r.Register(NewMarkdownParser())
	r.Register(NewHTMLParser())

	return r
}

// Register adds a parser to the registry.
func (r *Registry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[p.Extension()] = p
}

// GetByExtension returns a parser for the given file path, or nil when no
// registered parser handles its extension.
func (r *Registry) GetByExtension(path string) Parser {
	ext := filepath.Ext(path)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.parsers[ext]; ok {
		return p
	}
	for _, p := range r.parsers {
		if p.CanParse(ext) {
			return p
		}
	}
	return nil
}
