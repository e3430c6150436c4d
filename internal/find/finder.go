package scout

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// streamBuffer is the result channel capacity used by Stream.
const streamBuffer = 128

// Finder is the composition root: it wires Options, a walker variant
// and the filter pipeline behind one API. A Finder is safe for
// concurrent use; each call is an independent run.
type Finder struct {
	opts    Options
	filters []Filter
	logger  *zap.Logger
	sizer   *Sizer
}

// NewFinder builds a Finder from options and an already constructed
// filter pipeline. An entry is reported only when every filter
// matches it.
func NewFinder(opts Options, filters ...Filter) *Finder {
	return &Finder{
		opts:    opts,
		filters: filters,
		logger:  opts.logger(),
		sizer:   NewSizer(opts.Threads),
	}
}

// Sizer exposes the pool sizing state for introspection.
func (f *Finder) Sizer() *Sizer { return f.sizer }

// runLogger tags one traversal invocation so concurrent runs can be
// told apart in the logs.
func (f *Finder) runLogger(root string) *zap.Logger {
	return f.logger.With(
		zap.String("run_id", uuid.NewString()[:8]),
		zap.String("root", root),
	)
}

// Find walks root sequentially and returns the matching entries in
// deterministic pre-order. On a non-tolerated error no entries are
// returned.
func (f *Finder) Find(ctx context.Context, root string) ([]Entry, error) {
	logger := f.runLogger(root)
	logger.Debug("starting sequential walk")

	w := newWalker(f.opts, root, logger)
	var matches []Entry
	err := w.walk(ctx, func(e Entry) {
		if keep(f.filters, e) {
			matches = append(matches, e)
		}
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("walk complete", zap.Int("matches", len(matches)))
	return matches, nil
}

// FindAll walks several roots sequentially and concatenates their
// matches in argument order. The first fatal error aborts the whole
// run.
func (f *Finder) FindAll(ctx context.Context, roots ...string) ([]Entry, error) {
	var all []Entry
	for _, root := range roots {
		matches, err := f.Find(ctx, root)
		if err != nil {
			return nil, err
		}
		all = append(all, matches...)
	}
	return all, nil
}

// FindParallel walks root with a worker pool sized from a directory
// pre-count. The result set matches Find for the same tree and
// options; the order does not.
func (f *Finder) FindParallel(ctx context.Context, root string) ([]Entry, error) {
	logger := f.runLogger(root)
	logger.Debug("starting parallel walk")

	w := newWalker(f.opts, root, logger)
	workers := f.size(ctx, w, logger)

	var mu sync.Mutex
	var matches []Entry
	err := w.walkParallel(ctx, workers, func(e Entry) {
		if keep(f.filters, e) {
			mu.Lock()
			matches = append(matches, e)
			mu.Unlock()
		}
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("walk complete", zap.Int("matches", len(matches)))
	return matches, nil
}

// Stream walks root in parallel, delivering matches as they are
// found. The channel closes when the walk ends; a fatal error arrives
// as the final Result with Err set, after any entries emitted before
// the failure. Callers must drain the channel or cancel ctx.
func (f *Finder) Stream(ctx context.Context, root string) <-chan Result {
	logger := f.runLogger(root)
	out := make(chan Result, streamBuffer)

	go func() {
		defer close(out)
		w := newWalker(f.opts, root, logger)
		workers := f.size(ctx, w, logger)
		err := w.walkParallel(ctx, workers, func(e Entry) {
			if !keep(f.filters, e) {
				return
			}
			select {
			case out <- Result{Entry: e}:
			case <-ctx.Done():
			}
		})
		if err != nil {
			select {
			case out <- Result{Err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return out
}

// size runs the directory pre-count and consults the sizing policy.
func (f *Finder) size(ctx context.Context, w *walker, logger *zap.Logger) int {
	dirs := w.countDirs(ctx)
	workers := f.sizer.Size(dirs)
	logger.Debug("sized worker pool", zap.Int("directories", dirs), zap.Int("workers", workers))
	return workers
}

// Find walks root sequentially with a one-shot Finder.
func Find(ctx context.Context, root string, opts Options, filters ...Filter) ([]Entry, error) {
	return NewFinder(opts, filters...).Find(ctx, root)
}

// FindParallel walks root in parallel with a one-shot Finder.
func FindParallel(ctx context.Context, root string, opts Options, filters ...Filter) ([]Entry, error) {
	return NewFinder(opts, filters...).FindParallel(ctx, root)
}

// Stream streams matches under root with a one-shot Finder.
func Stream(ctx context.Context, root string, opts Options, filters ...Filter) <-chan Result {
	return NewFinder(opts, filters...).Stream(ctx, root)
}
