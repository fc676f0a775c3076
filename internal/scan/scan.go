// Package scan expands the CLI-supplied paths into the ordered working list
// the navigation loop walks. Files pass through as-is; directories expand to
// the files inside them, optionally descending with a depth bound, with
// exclude globs filtering what the expansion yields.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"declutter/internal/errors"
	"declutter/internal/log"

	"github.com/gobwas/glob"
)

// Options controls directory expansion. A Depth above zero implies
// recursion bounded to that many levels; Recursive with Depth zero descends
// without bound.
type Options struct {
	Recursive bool
	Depth     int
	Exclude   []string
}

// Expand resolves the input paths into an ordered list of absolute file
// paths. Inputs keep their CLI order; a directory's contents are sorted
// lexically. Inputs that do not exist (or cannot be read) are returned as
// errors for reporting and otherwise dropped, never fatal.
func Expand(paths []string, opts Options) ([]string, []error) {
	matchers, err := compileExcludes(opts.Exclude)
	if err != nil {
		return nil, []error{err}
	}

	var files []string
	var problems []error
	for _, input := range paths {
		info, err := os.Stat(input)
		if err != nil {
			problems = append(problems, errors.NewFileError("cannot access input path", input, errors.SourceMissing, err))
			continue
		}

		if !info.IsDir() {
			if !excluded(matchers, input) {
				files = append(files, absolute(input))
			}
			continue
		}

		expanded, err := expandDir(input, opts, matchers)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		files = append(files, expanded...)
	}
	return files, problems
}

func expandDir(dir string, opts Options, matchers []glob.Glob) ([]string, error) {
	maxDepth := opts.Depth
	if !opts.Recursive && opts.Depth == 0 {
		maxDepth = 1
	}

	root := filepath.Clean(dir)
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subdirectories are logged and skipped, matching the
			// advisory treatment of every other per-path problem
			log.Warn("cannot read %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		if excluded(matchers, path) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if maxDepth > 0 && depthOf(root, path) >= maxDepth {
				return fs.SkipDir
			}
			return nil
		}
		files = append(files, absolute(path))
		return nil
	})
	if err != nil {
		return nil, errors.NewFileError("cannot expand directory", dir, errors.SourceMissing, err)
	}
	sort.Strings(files)
	return files, nil
}

func depthOf(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}

func compileExcludes(patterns []string) ([]glob.Glob, error) {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid exclude pattern %q", pattern)
		}
		matchers = append(matchers, g)
	}
	return matchers, nil
}

// excluded matches a path against the exclude globs, on the base name and on
// the full slash path so both `*.part` and `**/node_modules/**` styles work.
func excluded(matchers []glob.Glob, path string) bool {
	base := filepath.Base(path)
	slashed := filepath.ToSlash(path)
	for _, g := range matchers {
		if g.Match(base) || g.Match(slashed) {
			return true
		}
	}
	return false
}

func absolute(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
