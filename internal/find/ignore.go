package scout

import (
	"fmt"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
)

// Excluder prunes traversal with gitignore-syntax rules. Paths are
// matched relative to the walk root with forward slashes; an excluded
// directory suppresses its entire subtree. A nil Excluder excludes
// nothing.
type Excluder struct {
	matcher gitignore.GitIgnore
}

// NewExcluderFromFile loads exclusion rules from a gitignore-syntax
// file.
func NewExcluderFromFile(path string) (*Excluder, error) {
	matcher, err := gitignore.NewFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPattern, path, err)
	}
	return &Excluder{matcher: matcher}, nil
}

// NewExcluder builds an Excluder from in-memory rules, one pattern per
// element.
func NewExcluder(patterns ...string) *Excluder {
	src := strings.NewReader(strings.Join(patterns, "\n"))
	return &Excluder{matcher: gitignore.New(src, "", nil)}
}

// Excluded reports whether the root-relative path is pruned by the
// rules. The root itself is never excluded.
func (e *Excluder) Excluded(rel string, isDir bool) bool {
	if e == nil || e.matcher == nil {
		return false
	}
	if rel == "" || rel == "." {
		return false
	}
	match := e.matcher.Relative(filepath.ToSlash(rel), isDir)
	return match != nil && match.Ignore()
}
