package scout

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Sentinel errors for every failure kind the engine can surface.
// Traversal and construction errors wrap one of these together with
// the offending path and cause; match with errors.Is.
var (
	ErrNotFound        = errors.New("path not found")
	ErrPermission      = errors.New("permission denied")
	ErrFilesystem      = errors.New("filesystem error")
	ErrInvalidPattern  = errors.New("invalid pattern")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrTraversal       = errors.New("traversal error")
)

// classify wraps a raw filesystem error with the sentinel matching its
// underlying cause. ELOOP surfaces when resolving a symlink chain that
// never terminates.
func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermission, path, err)
	case errors.Is(err, syscall.ELOOP):
		return fmt.Errorf("%w: %s: %w", ErrTraversal, path, err)
	default:
		return fmt.Errorf("%w: %s: %w", ErrFilesystem, path, err)
	}
}

// kindName returns the short name of a classified error's kind, used
// as a structured log field.
func kindName(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrPermission):
		return "permission_denied"
	case errors.Is(err, ErrInvalidPattern):
		return "invalid_pattern"
	case errors.Is(err, ErrInvalidFileType):
		return "invalid_file_type"
	case errors.Is(err, ErrTraversal):
		return "traversal"
	default:
		return "filesystem"
	}
}
