package scan_test

import (
	"path/filepath"
	"testing"

	"declutter/internal/scan"
	"declutter/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestExpandPlainFiles(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithDefault(t, dir)

	a := filepath.Join(dir, "notes.txt")
	b := filepath.Join(dir, "photo.jpg")
	files, problems := scan.Expand([]string{a, b}, scan.Options{})
	assert.Empty(t, problems)
	assert.Equal(t, []string{a, b}, files, "CLI order preserved")
}

func TestExpandMissingInput(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{"real.txt": "x"})

	files, problems := scan.Expand([]string{
		filepath.Join(dir, "ghost.txt"),
		filepath.Join(dir, "real.txt"),
	}, scan.Options{})

	assert.Len(t, problems, 1, "missing input reported")
	assert.Equal(t, []string{filepath.Join(dir, "real.txt")}, files, "run continues with the rest")
}

func TestExpandDirectoryNonRecursive(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"b.txt":        "x",
		"a.txt":        "x",
		"nested/c.txt": "x",
	})

	files, problems := scan.Expand([]string{dir}, scan.Options{})
	assert.Empty(t, problems)
	assert.Equal(t, []string{"a.txt", "b.txt"}, names(t, dir, files), "sorted, no descent")
}

func TestExpandRecursive(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"top.txt":            "x",
		"one/mid.txt":        "x",
		"one/two/bottom.txt": "x",
	})

	t.Run("unbounded", func(t *testing.T) {
		files, problems := scan.Expand([]string{dir}, scan.Options{Recursive: true})
		assert.Empty(t, problems)
		assert.Equal(t, []string{"one/mid.txt", "one/two/bottom.txt", "top.txt"}, names(t, dir, files))
	})

	t.Run("depth bound", func(t *testing.T) {
		files, _ := scan.Expand([]string{dir}, scan.Options{Depth: 2})
		assert.Equal(t, []string{"one/mid.txt", "top.txt"}, names(t, dir, files))
	})

	t.Run("depth implies recursion", func(t *testing.T) {
		files, _ := scan.Expand([]string{dir}, scan.Options{Depth: 3})
		assert.Contains(t, names(t, dir, files), "one/two/bottom.txt")
	})
}

func TestExpandExcludes(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"keep.txt":        "x",
		"partial.part":    "x",
		".git/config":     "x",
		"sub/other.part":  "x",
		"sub/wanted.jpg":  "x",
	})

	files, problems := scan.Expand([]string{dir}, scan.Options{
		Recursive: true,
		Exclude:   []string{"*.part", ".git"},
	})
	assert.Empty(t, problems)
	assert.Equal(t, []string{"keep.txt", "sub/wanted.jpg"}, names(t, dir, files))
}

func TestExpandBadExcludePattern(t *testing.T) {
	files, problems := scan.Expand([]string{t.TempDir()}, scan.Options{Exclude: []string{"[unclosed"}})
	assert.Nil(t, files)
	assert.Len(t, problems, 1)
}
