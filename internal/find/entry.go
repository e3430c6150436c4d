// Package scout implements depth-bounded filesystem discovery with a
// composable filter pipeline and an adaptively sized parallel walker.
package scout

import "os"

// EntryType tags the kind of filesystem object an Entry refers to.
type EntryType int

const (
	TypeRegular EntryType = iota
	TypeDirectory
	TypeSymlink
	TypeOther
)

// String returns the lowercase name of the type.
func (t EntryType) String() string {
	switch t {
	case TypeRegular:
		return "regular"
	case TypeDirectory:
		return "directory"
	case TypeSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// Entry is one discovered filesystem object. Entries are produced once
// per visited object and never mutated afterwards; they are safe to
// share across goroutines.
//
// Depth counts levels below the walk root: the root itself is depth 0
// and is never reported, its immediate children are depth 1. When
// symlinks are not followed, a symlink reports TypeSymlink rather than
// its target's type.
type Entry struct {
	Path  string    // Path as built from the walk root
	Depth int       // Levels below the root
	Type  EntryType // File type tag
}

// Result pairs an Entry with a traversal error for the streaming API.
// Exactly one of the two fields is meaningful.
type Result struct {
	Entry Entry
	Err   error
}

// typeOf maps a file mode's type bits onto an EntryType. The symlink
// bit is checked first so an unresolved link never reports its
// target's type.
func typeOf(mode os.FileMode) EntryType {
	switch {
	case mode&os.ModeSymlink != 0:
		return TypeSymlink
	case mode.IsDir():
		return TypeDirectory
	case mode.IsRegular():
		return TypeRegular
	default:
		return TypeOther
	}
}
