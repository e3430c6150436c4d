package find

import (
	"context"
	"time"

	internal "github.com/TFMV/scout/internal/find"
)

// Re-export the engine types from the internal package.
type (
	// Entry is one discovered filesystem object.
	Entry = internal.Entry

	// EntryType tags the kind of filesystem object an Entry refers to.
	EntryType = internal.EntryType

	// Result pairs an Entry with a traversal error for the streaming API.
	Result = internal.Result

	// Options is the immutable configuration snapshot for one traversal run.
	Options = internal.Options

	// ThreadConfig tunes how the parallel walker sizes its worker pool.
	ThreadConfig = internal.ThreadConfig

	// Sizer decides how many workers a parallel traversal should use.
	Sizer = internal.Sizer

	// Filter decides whether a discovered entry is reported.
	Filter = internal.Filter

	// CombineMode selects how MultiNameFilter combines its patterns.
	CombineMode = internal.CombineMode

	// NameFilter matches an entry's base name against a glob pattern.
	NameFilter = internal.NameFilter

	// MultiNameFilter combines several name patterns under one predicate.
	MultiNameFilter = internal.MultiNameFilter

	// TypeFilter keeps entries of exactly one file type.
	TypeFilter = internal.TypeFilter

	// PathFormat is the display preference carried by a PathFormatFilter.
	PathFormat = internal.PathFormat

	// PathFormatFilter never rejects an entry; it carries a display preference.
	PathFormatFilter = internal.PathFormatFilter

	// SizeFilter bounds the size of regular files.
	SizeFilter = internal.SizeFilter

	// TimeFilter keeps entries modified inside a time window.
	TimeFilter = internal.TimeFilter

	// Excluder prunes traversal with gitignore-syntax rules.
	Excluder = internal.Excluder

	// Finder wires Options, a walker variant and the filter pipeline.
	Finder = internal.Finder

	// LogLevel defines the verbosity of logging.
	LogLevel = internal.LogLevel
)

// Re-export the engine constants.
const (
	// Entry types
	TypeRegular   = internal.TypeRegular
	TypeDirectory = internal.TypeDirectory
	TypeSymlink   = internal.TypeSymlink
	TypeOther     = internal.TypeOther

	// Pattern combination modes
	MatchAny = internal.MatchAny
	MatchAll = internal.MatchAll

	// Type filter codes
	TypeCodeFile    = internal.TypeCodeFile
	TypeCodeDir     = internal.TypeCodeDir
	TypeCodeSymlink = internal.TypeCodeSymlink

	// Path display formats
	FormatAbsolute = internal.FormatAbsolute
	FormatRelative = internal.FormatRelative

	// Log levels
	LogLevelError = internal.LogLevelError
	LogLevelWarn  = internal.LogLevelWarn
	LogLevelInfo  = internal.LogLevelInfo
	LogLevelDebug = internal.LogLevelDebug
)

// Re-export the error sentinels.
var (
	ErrNotFound        = internal.ErrNotFound
	ErrPermission      = internal.ErrPermission
	ErrFilesystem      = internal.ErrFilesystem
	ErrInvalidPattern  = internal.ErrInvalidPattern
	ErrInvalidFileType = internal.ErrInvalidFileType
	ErrTraversal       = internal.ErrTraversal
)

// DefaultOptions returns the engine defaults: unlimited depth, links
// not followed, hidden entries excluded, permission errors tolerated.
func DefaultOptions() Options {
	return internal.DefaultOptions()
}

// DefaultThreadConfig returns the pool sizing defaults with the CPU
// count resolved at call time.
func DefaultThreadConfig() ThreadConfig {
	return internal.DefaultThreadConfig()
}

// NewFinder builds a Finder from options and a filter pipeline.
func NewFinder(opts Options, filters ...Filter) *Finder {
	return internal.NewFinder(opts, filters...)
}

// NewSizer returns a Sizer for the given tuning.
func NewSizer(cfg ThreadConfig) *Sizer {
	return internal.NewSizer(cfg)
}

// NewNameFilter compiles a single glob pattern.
func NewNameFilter(pattern string, ignoreCase bool) (*NameFilter, error) {
	return internal.NewNameFilter(pattern, ignoreCase)
}

// NewMultiNameFilter compiles a pattern list with a combination mode.
func NewMultiNameFilter(patterns []string, ignoreCase bool, mode CombineMode) (*MultiNameFilter, error) {
	return internal.NewMultiNameFilter(patterns, ignoreCase, mode)
}

// NewTypeFilter maps a type code (f, d or l) onto a filter.
func NewTypeFilter(code string) (*TypeFilter, error) {
	return internal.NewTypeFilter(code)
}

// NewPathFormatFilter wraps a display preference as a filter.
func NewPathFormatFilter(format PathFormat) *PathFormatFilter {
	return internal.NewPathFormatFilter(format)
}

// NewSizeFilter bounds regular files to [minSize, maxSize] bytes.
func NewSizeFilter(minSize, maxSize int64) *SizeFilter {
	return internal.NewSizeFilter(minSize, maxSize)
}

// NewTimeFilter bounds entries to those modified inside the window.
func NewTimeFilter(after, before time.Time) *TimeFilter {
	return internal.NewTimeFilter(after, before)
}

// NewExcluder builds an Excluder from in-memory gitignore rules.
func NewExcluder(patterns ...string) *Excluder {
	return internal.NewExcluder(patterns...)
}

// NewExcluderFromFile loads exclusion rules from a gitignore-syntax file.
func NewExcluderFromFile(path string) (*Excluder, error) {
	return internal.NewExcluderFromFile(path)
}

// Find walks root sequentially and returns the matching entries in
// deterministic pre-order.
func Find(ctx context.Context, root string, opts Options, filters ...Filter) ([]Entry, error) {
	return internal.Find(ctx, root, opts, filters...)
}

// FindParallel walks root with an adaptively sized worker pool. The
// result set matches Find; the order does not.
func FindParallel(ctx context.Context, root string, opts Options, filters ...Filter) ([]Entry, error) {
	return internal.FindParallel(ctx, root, opts, filters...)
}

// Stream walks root in parallel, delivering matches as they are
// found. The channel closes when the walk ends; a fatal error arrives
// as the final Result with Err set.
func Stream(ctx context.Context, root string, opts Options, filters ...Filter) <-chan Result {
	return internal.Stream(ctx, root, opts, filters...)
}
