package scout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Filter decides whether a discovered entry is reported. Filters are
// immutable after construction and safe to evaluate concurrently from
// multiple workers. An entry is kept only when every installed filter
// matches it.
type Filter interface {
	Matches(entry Entry) bool
	Describe() string
}

// keep reports whether entry passes every filter.
func keep(filters []Filter, entry Entry) bool {
	for _, f := range filters {
		if !f.Matches(entry) {
			return false
		}
	}
	return true
}

// CombineMode selects how MultiNameFilter combines its patterns.
type CombineMode int

const (
	MatchAny CombineMode = iota // Keep entries matching at least one pattern
	MatchAll                    // Keep entries matching every pattern
)

// NameFilter matches an entry's base name against a glob pattern
// (*, ? and character classes). Matching is case-sensitive unless
// ignoreCase was requested, in which case both pattern and name are
// lowercased first. Patterns and names are NFC-normalized so composed
// and decomposed spellings compare equal.
type NameFilter struct {
	pattern    string
	ignoreCase bool
}

// NewNameFilter compiles a single glob pattern. Empty or malformed
// patterns fail with ErrInvalidPattern.
func NewNameFilter(pattern string, ignoreCase bool) (*NameFilter, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	p := norm.NFC.String(pattern)
	if ignoreCase {
		p = strings.ToLower(p)
	}
	if _, err := filepath.Match(p, ""); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, pattern, err)
	}
	return &NameFilter{pattern: p, ignoreCase: ignoreCase}, nil
}

// Matches compares the pattern against the entry's base name.
func (f *NameFilter) Matches(entry Entry) bool {
	name := norm.NFC.String(filepath.Base(entry.Path))
	if f.ignoreCase {
		name = strings.ToLower(name)
	}
	matched, err := filepath.Match(f.pattern, name)
	return err == nil && matched
}

// Describe returns a short label for logs and summaries.
func (f *NameFilter) Describe() string {
	if f.ignoreCase {
		return fmt.Sprintf("iname(%s)", f.pattern)
	}
	return fmt.Sprintf("name(%s)", f.pattern)
}

// MultiNameFilter combines several name patterns under one predicate.
// MatchAny keeps entries matching at least one pattern, MatchAll
// requires every pattern. An empty pattern list matches everything.
type MultiNameFilter struct {
	filters []*NameFilter
	mode    CombineMode
}

// NewMultiNameFilter compiles a pattern list. Any empty or malformed
// pattern fails the whole construction with ErrInvalidPattern before
// matching begins.
func NewMultiNameFilter(patterns []string, ignoreCase bool, mode CombineMode) (*MultiNameFilter, error) {
	filters := make([]*NameFilter, 0, len(patterns))
	for _, p := range patterns {
		f, err := NewNameFilter(p, ignoreCase)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return &MultiNameFilter{filters: filters, mode: mode}, nil
}

// Matches applies the combination mode across the pattern list.
func (f *MultiNameFilter) Matches(entry Entry) bool {
	if len(f.filters) == 0 {
		return true
	}
	for _, nf := range f.filters {
		if nf.Matches(entry) {
			if f.mode == MatchAny {
				return true
			}
		} else if f.mode == MatchAll {
			return false
		}
	}
	return f.mode == MatchAll
}

// Describe returns the pattern list joined by the combination mode.
func (f *MultiNameFilter) Describe() string {
	patterns := make([]string, len(f.filters))
	for i, nf := range f.filters {
		patterns[i] = nf.pattern
	}
	sep := " or "
	if f.mode == MatchAll {
		sep = " and "
	}
	return "names(" + strings.Join(patterns, sep) + ")"
}

// File type codes accepted by NewTypeFilter.
const (
	TypeCodeFile    = "f"
	TypeCodeDir     = "d"
	TypeCodeSymlink = "l"
)

// TypeFilter keeps entries of exactly one file type.
type TypeFilter struct {
	want EntryType
	code string
}

// NewTypeFilter maps a type code onto a filter. Codes other than f, d
// and l fail with ErrInvalidFileType.
func NewTypeFilter(code string) (*TypeFilter, error) {
	switch code {
	case TypeCodeFile:
		return &TypeFilter{want: TypeRegular, code: code}, nil
	case TypeCodeDir:
		return &TypeFilter{want: TypeDirectory, code: code}, nil
	case TypeCodeSymlink:
		return &TypeFilter{want: TypeSymlink, code: code}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want f, d or l)", ErrInvalidFileType, code)
	}
}

// Matches compares the entry's type tag.
func (f *TypeFilter) Matches(entry Entry) bool { return entry.Type == f.want }

// Describe returns the type code label.
func (f *TypeFilter) Describe() string { return "type(" + f.code + ")" }

// PathFormat is the display preference carried by a PathFormatFilter.
type PathFormat int

const (
	FormatAbsolute PathFormat = iota
	FormatRelative
)

// PathFormatFilter never rejects an entry. It rides the pipeline so
// the output stage can discover how paths should be rendered.
type PathFormatFilter struct {
	Format PathFormat
}

// NewPathFormatFilter wraps a display preference as a filter.
func NewPathFormatFilter(format PathFormat) *PathFormatFilter {
	return &PathFormatFilter{Format: format}
}

// Matches always reports true.
func (f *PathFormatFilter) Matches(Entry) bool { return true }

// Describe returns the display preference label.
func (f *PathFormatFilter) Describe() string {
	if f.Format == FormatRelative {
		return "format(relative)"
	}
	return "format(absolute)"
}

// SizeFilter bounds the size of regular files. Entries that are not
// regular files pass untouched; a negative bound is disabled.
type SizeFilter struct {
	Min int64
	Max int64
}

// NewSizeFilter bounds regular files to [minSize, maxSize] bytes.
// Pass a negative value to disable either bound.
func NewSizeFilter(minSize, maxSize int64) *SizeFilter {
	return &SizeFilter{Min: minSize, Max: maxSize}
}

// Matches stats the entry lazily. A regular file that cannot be
// stat'ed does not match.
func (f *SizeFilter) Matches(entry Entry) bool {
	if entry.Type != TypeRegular {
		return true
	}
	info, err := os.Lstat(entry.Path)
	if err != nil {
		return false
	}
	if f.Min >= 0 && info.Size() < f.Min {
		return false
	}
	if f.Max >= 0 && info.Size() > f.Max {
		return false
	}
	return true
}

// Describe returns the configured byte bounds.
func (f *SizeFilter) Describe() string {
	return fmt.Sprintf("size(%d..%d)", f.Min, f.Max)
}

// TimeFilter keeps entries whose modification time falls inside the
// window. A zero bound is disabled.
type TimeFilter struct {
	After  time.Time
	Before time.Time
}

// NewTimeFilter bounds entries to those modified inside the window.
func NewTimeFilter(after, before time.Time) *TimeFilter {
	return &TimeFilter{After: after, Before: before}
}

// Matches stats the entry lazily; an entry that cannot be stat'ed
// does not match.
func (f *TimeFilter) Matches(entry Entry) bool {
	info, err := os.Lstat(entry.Path)
	if err != nil {
		return false
	}
	if !f.After.IsZero() && info.ModTime().Before(f.After) {
		return false
	}
	if !f.Before.IsZero() && info.ModTime().After(f.Before) {
		return false
	}
	return true
}

// Describe returns the configured window.
func (f *TimeFilter) Describe() string {
	return fmt.Sprintf("mtime(%s..%s)", formatBound(f.After), formatBound(f.Before))
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return "*"
	}
	return t.Format(time.RFC3339)
}
