// Package source provides document types, parsing, and file discovery for
// knowledge-base ingestion.
package source

import (
	"path/filepath"
	"strings"
)

// Document represents a parsed input document. It is created when a file is
// read, mutated by the processor (title resolution), and treated as immutable
// once handed to the graph assembler.
type Document struct {
	// Path is the document path relative to the scan root. It is the
	// document's unique key.
	Path string `json:"path"`

	// URI is the canonical document identifier, assigned at registration.
	URI string `json:"uri"`

	// Content is the raw document content including any frontmatter.
	Content string `json:"content"`

	// Frontmatter contains parsed YAML frontmatter if present.
	Frontmatter map[string]any `json:"frontmatter,omitempty"`

	// Body is the content without frontmatter. All extraction spans are
	// byte offsets into Body.
	Body string `json:"body"`

	// Title is the resolved display title. Empty until the processor
	// resolves it.
	Title string `json:"title,omitempty"`
}

// HasFrontmatter returns true if the document has parsed frontmatter.
func (d *Document) HasFrontmatter() bool {
	return len(d.Frontmatter) > 0
}

// FrontmatterTitle returns the frontmatter "title" value, or "".
func (d *Document) FrontmatterTitle() string {
	if !d.HasFrontmatter() {
		return ""
	}
	if title, ok := d.Frontmatter["title"].(string); ok {
		return strings.TrimSpace(title)
	}
	return ""
}

// FrontmatterStrings collects string values under the given frontmatter key.
// List values yield one string per element; a scalar string is split on
// commas, then whitespace.
func (d *Document) FrontmatterStrings(key string) []string {
	if !d.HasFrontmatter() {
		return nil
	}

	switch v := d.Frontmatter[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case string:
		return splitScalarList(v)
	default:
		return nil
	}
}

// splitScalarList splits a scalar frontmatter value on commas, falling back
// to whitespace when no commas are present.
func splitScalarList(s string) []string {
	var parts []string
	if strings.Contains(s, ",") {
		parts = strings.Split(s, ",")
	} else {
		parts = strings.Fields(s)
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// HumanizeFilename derives a display title from a file path: the base name
// without extension, with "-" and "_" separators replaced by spaces.
func HumanizeFilename(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.TrimSpace(name)
}
