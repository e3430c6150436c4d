//go:build unix

package scout

import (
	"os"
	"syscall"
)

// fileID returns the (device, inode) identity of a stat'ed object.
func fileID(path string, info os.FileInfo) (fileIdent, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileIdent{}, false
	}
	return fileIdent{dev: uint64(st.Dev), ino: uint64(st.Ino)}, true
}
