//go:build unix

package durt

import (
	"io/fs"
	"syscall"
)

// SupportsDevice reports whether Entry.Device carries a real filesystem id.
const SupportsDevice = true

// deviceID returns st_dev of the lstat result.
func deviceID(info fs.FileInfo) uint64 {
	if sys, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint64(sys.Dev) //nolint:unconvert,gosec // Dev is int32 on darwin
	}

	return 0
}
