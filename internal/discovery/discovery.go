// Package discovery finds the Lua source files to lint.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/moby/patternmatcher"
)

// Finder selects files by include and exclude globs. Patterns use
// .dockerignore syntax: "**" matches any number of directories and a leading
// "!" re-includes a path. Patterns are matched against paths relative to the
// directory being walked.
type Finder struct {
	include *patternmatcher.PatternMatcher
	exclude *patternmatcher.PatternMatcher
}

// New creates a Finder.
func New(include, exclude []string) (*Finder, error) {
	inc, err := patternmatcher.New(include)
	if err != nil {
		return nil, fmt.Errorf("invalid include pattern: %w", err)
	}
	exc, err := patternmatcher.New(exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude pattern: %w", err)
	}
	return &Finder{include: inc, exclude: exc}, nil
}

// Find walks each path and returns the matching files, sorted and without
// duplicates. A path naming a file is returned as is, without consulting the
// patterns.
func (f *Finder) Find(paths ...string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("cannot lint %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil || rel == "." {
				return nil //nolint:nilerr // the root itself is never matched
			}
			if d.IsDir() {
				if f.excluded(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if f.Match(rel) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	slices.Sort(files)
	return files, nil
}

// Match reports whether the relative path rel is included and not excluded.
func (f *Finder) Match(rel string) bool {
	ok, err := f.include.MatchesOrParentMatches(rel)
	if err != nil || !ok {
		return false
	}
	return !f.excluded(rel)
}

func (f *Finder) excluded(rel string) bool {
	ok, err := f.exclude.MatchesOrParentMatches(rel)
	return err == nil && ok
}
