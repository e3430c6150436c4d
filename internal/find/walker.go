package scout

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/karrick/godirwalk"
	"go.uber.org/zap"
)

// scratchPool recycles directory read buffers across visits.
var scratchPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 32*1024)
		return &buf
	},
}

// readDirents lists a directory through godirwalk with a pooled
// scratch buffer.
func readDirents(dir string) (godirwalk.Dirents, error) {
	buf := scratchPool.Get().(*[]byte)
	dirents, err := godirwalk.ReadDirents(dir, *buf)
	scratchPool.Put(buf)
	return dirents, err
}

// isHidden reports whether a base name starts with a dot.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// walker carries the state for one traversal run. The same instance
// backs the sequential and parallel variants; Options and the filter
// pipeline stay read-only throughout.
type walker struct {
	opts    Options
	root    string
	logger  *zap.Logger
	visited *visitSet // non-nil only when following links
}

func newWalker(opts Options, root string, logger *zap.Logger) *walker {
	w := &walker{opts: opts, root: filepath.Clean(root), logger: logger}
	if opts.FollowLinks {
		w.visited = newVisitSet()
	}
	return w
}

// prepare validates the root and seeds cycle tracking. A false return
// with a nil error means the walk has nothing to do: the root failed
// tolerably or is not a directory, and the root itself is never
// reported.
func (w *walker) prepare() (bool, error) {
	info, err := os.Stat(w.root)
	if err != nil {
		cerr := classify(w.root, err)
		if w.tolerate(cerr) {
			return false, nil
		}
		return false, cerr
	}
	if !info.IsDir() {
		return false, nil
	}
	if w.visited != nil {
		w.visited.enter(w.root, info)
	}
	return true, nil
}

// tolerate logs and absorbs an ignorable error, reporting whether the
// walk may continue past it.
func (w *walker) tolerate(err error) bool {
	if !w.opts.ignorable(err) {
		return false
	}
	w.logger.Warn("skipping path", zap.String("kind", kindName(err)), zap.Error(err))
	return true
}

// rel returns path relative to the walk root for exclusion matching.
func (w *walker) rel(path string) string {
	r, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return r
}

// skips reports whether a listed child is dropped outright, either as
// a hidden entry or by the exclusion rules. Dropping a directory
// suppresses its whole subtree.
func (w *walker) skips(name, path string, isDir bool) bool {
	if !w.opts.IncludeHidden && isHidden(name) {
		return true
	}
	if w.opts.Exclude != nil && w.opts.Exclude.Excluded(w.rel(path), isDir) {
		return true
	}
	return false
}

// examine builds the Entry for one listed child and decides whether
// traversal descends into it. depth is the child's own depth. When
// links are followed a symlink's type resolves to its target's; a
// returned error comes from that resolution and the Entry is valid
// regardless.
func (w *walker) examine(path string, depth int, dirent *godirwalk.Dirent) (Entry, bool, error) {
	entry := Entry{Path: path, Depth: depth, Type: typeOf(dirent.ModeType())}

	switch {
	case entry.Type == TypeDirectory:
		return entry, w.opts.descend(depth), nil
	case entry.Type == TypeSymlink && w.opts.FollowLinks:
		info, err := os.Stat(path)
		if err != nil {
			return entry, false, classify(path, err)
		}
		entry.Type = typeOf(info.Mode())
		if entry.Type != TypeDirectory || !w.opts.descend(depth) {
			return entry, false, nil
		}
		return entry, !w.visited.enter(path, info), nil
	}
	return entry, false, nil
}

// list reads and name-sorts a directory's children.
func (w *walker) list(dir string) (godirwalk.Dirents, error) {
	ents, err := readDirents(dir)
	if err != nil {
		return nil, classify(dir, err)
	}
	sort.Sort(ents)
	return ents, nil
}

// frame is one directory being visited on the sequential work stack.
// depth is the depth of the children listed from it; next indexes the
// child to process when the frame resumes.
type frame struct {
	path  string
	depth int
	ents  godirwalk.Dirents
	next  int
}

// walk runs the sequential traversal, calling emit for every
// discovered entry in deterministic pre-order: listings are sorted by
// name and a directory's subtree is visited before its later
// siblings. An explicit work stack keeps deep trees off the call
// stack. Cancellation is checked once per entry.
func (w *walker) walk(ctx context.Context, emit func(Entry)) error {
	ok, err := w.prepare()
	if !ok {
		return err
	}

	ents, err := w.list(w.root)
	if err != nil {
		if w.tolerate(err) {
			return nil
		}
		return err
	}

	stack := []*frame{{path: w.root, depth: 1, ents: ents}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		top := stack[len(stack)-1]
		if top.next >= len(top.ents) {
			stack = stack[:len(stack)-1]
			continue
		}
		dirent := top.ents[top.next]
		top.next++

		name := dirent.Name()
		path := filepath.Join(top.path, name)
		if w.skips(name, path, dirent.IsDir()) {
			continue
		}

		entry, descend, err := w.examine(path, top.depth, dirent)
		emit(entry)
		if err != nil {
			if w.tolerate(err) {
				continue
			}
			return err
		}
		if !descend {
			continue
		}

		childEnts, err := w.list(path)
		if err != nil {
			if w.tolerate(err) {
				continue
			}
			return err
		}
		stack = append(stack, &frame{path: path, depth: top.depth + 1, ents: childEnts})
	}
	return nil
}

// countDirs estimates how many directories the traversal will visit,
// honoring the same depth, hidden and exclusion bounds. Unreadable
// directories are simply not counted; the estimate only steers pool
// sizing.
func (w *walker) countDirs(ctx context.Context) int {
	type task struct {
		path  string
		depth int
	}

	count := 1 // the root
	stack := []task{{w.root, 1}}
	for len(stack) > 0 {
		if ctx.Err() != nil {
			break
		}
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ents, err := readDirents(t.path)
		if err != nil {
			continue
		}
		for _, dirent := range ents {
			if !dirent.IsDir() {
				continue
			}
			name := dirent.Name()
			path := filepath.Join(t.path, name)
			if w.skips(name, path, true) {
				continue
			}
			count++
			if w.opts.descend(t.depth) {
				stack = append(stack, task{path, t.depth + 1})
			}
		}
	}
	return count
}
