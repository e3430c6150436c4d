package scout

import (
	"errors"
	"runtime"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel defines the verbosity of logging.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// ThreadConfig tunes how the parallel walker sizes its worker pool.
type ThreadConfig struct {
	MinThreads    int  // Floor on the worker count; always honored
	MaxThreads    int  // Ceiling on the worker count
	DirsPerThread int  // Directories one worker is expected to absorb
	AutoAdjust    bool // Recompute the count from the directory estimate each run
	NumCPU        int  // CPU count captured when the config was built
}

// DefaultThreadConfig returns the sizing defaults. The CPU count is
// resolved here, once, so sizing stays a pure function of its inputs.
func DefaultThreadConfig() ThreadConfig {
	n := runtime.NumCPU()
	return ThreadConfig{
		MinThreads:    2,
		MaxThreads:    n,
		DirsPerThread: 100,
		AutoAdjust:    true,
		NumCPU:        n,
	}
}

// Options is the immutable configuration snapshot for one traversal
// run. Build one with DefaultOptions, adjust fields, and hand it to a
// Finder; from then on it is read-only and shared by all workers.
type Options struct {
	// MaxDepth is the deepest directory level traversal may enter.
	// Children of a directory sitting at the bound are still listed;
	// they are just never entered. Negative means unlimited.
	MaxDepth int

	// FollowLinks makes traversal descend through directory symlinks.
	// Symlink entries are reported either way.
	FollowLinks bool

	// IncludeHidden keeps dot-prefixed entries. When false, a hidden
	// directory and everything below it is skipped.
	IncludeHidden bool

	// IgnorePermissionErrors skips unreadable items instead of
	// aborting the walk.
	IgnorePermissionErrors bool

	// IgnoreIOErrors skips items failing with other I/O errors
	// instead of aborting the walk.
	IgnoreIOErrors bool

	// Threads tunes the parallel walker's pool sizing.
	Threads ThreadConfig

	// Exclude holds optional gitignore-style pruning rules.
	Exclude *Excluder

	// Logger overrides the logger built from LogLevel.
	Logger   *zap.Logger
	LogLevel LogLevel
}

// DefaultOptions returns the engine defaults: unlimited depth, links
// not followed, hidden entries excluded, permission errors tolerated,
// other I/O errors fatal.
func DefaultOptions() Options {
	return Options{
		MaxDepth:               -1,
		IgnorePermissionErrors: true,
		Threads:                DefaultThreadConfig(),
		LogLevel:               LogLevelWarn,
	}
}

// unlimited reports whether no depth bound is set.
func (o Options) unlimited() bool { return o.MaxDepth < 0 }

// descend reports whether traversal may enter a directory whose own
// depth is childDepth.
func (o Options) descend(childDepth int) bool {
	return o.unlimited() || childDepth < o.MaxDepth
}

// ignorable reports whether a classified error is tolerated by the
// configured toggles. Permission failures follow
// IgnorePermissionErrors; every other traversal-time kind follows
// IgnoreIOErrors.
func (o Options) ignorable(err error) bool {
	if errors.Is(err, ErrPermission) {
		return o.IgnorePermissionErrors
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrFilesystem) || errors.Is(err, ErrTraversal) {
		return o.IgnoreIOErrors
	}
	return false
}

// logger returns the configured logger, building one from LogLevel
// when the caller did not supply one.
func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return newLogger(o.LogLevel)
}

// newLogger creates a zap logger with the specified log level.
func newLogger(level LogLevel) *zap.Logger {
	var config zap.Config

	switch level {
	case LogLevelError:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	case LogLevelWarn:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case LogLevelInfo:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case LogLevelDebug:
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
