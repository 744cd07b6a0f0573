package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultIncludes are the glob patterns scanned when none are configured.
var DefaultIncludes = []string{"**/*.md", "**/*.markdown", "**/*.html"}

// Scan walks root and returns the relative paths of files matching any
// include pattern and no exclude pattern, in stable sorted order. Patterns
// use doublestar syntax and match against slash-separated relative paths.
func Scan(root string, includes, excludes []string) ([]string, error) {
	if len(includes) == 0 {
		includes = DefaultIncludes
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() != "." && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !matchesAny(rel, includes) || matchesAny(rel, excludes) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

// ReadDocumentFile reads a document file under root by relative path.
func ReadDocumentFile(root, rel string) ([]byte, error) {
	return os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
}

// matchesAny reports whether the path matches any of the glob patterns.
// Invalid patterns never match.
func matchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}
