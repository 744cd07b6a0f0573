package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("# "+rel+"\n"), 0o644))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.md")
	writeFile(t, root, "notes/daily.md")
	writeFile(t, root, "notes/page.html")
	writeFile(t, root, "notes/raw.txt")
	writeFile(t, root, "node_modules/dep/readme.md")
	writeFile(t, root, ".obsidian/config.md")

	paths, err := Scan(root, []string{"**/*.md", "**/*.html"}, []string{"node_modules/**"})
	require.NoError(t, err)

	assert.Equal(t, []string{"index.md", "notes/daily.md", "notes/page.html"}, paths)
}

func TestScanDefaultIncludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md")
	writeFile(t, root, "b.markdown")
	writeFile(t, root, "c.html")
	writeFile(t, root, "d.txt")

	paths, err := Scan(root, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.md", "b.markdown", "c.html"}, paths)
}

func TestScanSkipsHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".git/objects/readme.md")
	writeFile(t, root, "visible.md")

	paths, err := Scan(root, []string{"**/*.md"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"visible.md"}, paths)
}

func TestReadDocumentFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes/daily.md")

	content, err := ReadDocumentFile(root, "notes/daily.md")
	require.NoError(t, err)
	assert.Equal(t, "# notes/daily.md\n", string(content))

	_, err = ReadDocumentFile(root, "missing.md")
	assert.Error(t, err)
}

func TestFrontmatterStrings(t *testing.T) {
	doc := &Document{Frontmatter: map[string]any{
		"list":    []any{"one", " two ", ""},
		"csv":     "alpha, beta,gamma",
		"words":   "alpha beta",
		"number":  42,
		"strings": []string{"x", "y"},
	}}

	assert.Equal(t, []string{"one", "two"}, doc.FrontmatterStrings("list"))
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, doc.FrontmatterStrings("csv"))
	assert.Equal(t, []string{"alpha", "beta"}, doc.FrontmatterStrings("words"))
	assert.Nil(t, doc.FrontmatterStrings("number"))
	assert.Equal(t, []string{"x", "y"}, doc.FrontmatterStrings("strings"))
	assert.Nil(t, doc.FrontmatterStrings("absent"))
}

func TestHumanizeFilename(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"notes/meeting-notes.md", "meeting notes"},
		{"project_plan.md", "project plan"},
		{"README.md", "README"},
		{"nested/dir/some_mixed-name.markdown", "some mixed name"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanizeFilename(tt.path))
		})
	}
}
