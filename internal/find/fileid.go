package scout

import (
	"os"
	"sync"
)

// fileIdent identifies one filesystem object for cycle detection.
// Unix platforms use the (device, inode) pair; elsewhere the resolved
// path string stands in.
type fileIdent struct {
	dev  uint64
	ino  uint64
	path string
}

// visitSet tracks directories already entered on the current run. It
// guards against symlink cycles when traversal follows links; state is
// per run, never shared across runs.
type visitSet struct {
	mu   sync.Mutex
	seen map[fileIdent]struct{}
}

func newVisitSet() *visitSet {
	return &visitSet{seen: make(map[fileIdent]struct{})}
}

// enter records the directory and reports whether it had already been
// entered. Objects without a resolvable identity are never treated as
// revisits.
func (v *visitSet) enter(path string, info os.FileInfo) bool {
	id, ok := fileID(path, info)
	if !ok {
		return false
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, dup := v.seen[id]; dup {
		return true
	}
	v.seen[id] = struct{}{}
	return false
}
