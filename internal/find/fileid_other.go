//go:build !unix

package scout

import (
	"os"
	"path/filepath"
)

// fileID falls back to the fully resolved path as the object identity
// on platforms without a usable (device, inode) pair.
func fileID(path string, _ os.FileInfo) (fileIdent, bool) {
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		return fileIdent{}, false
	}
	return fileIdent{path: real}, true
}
