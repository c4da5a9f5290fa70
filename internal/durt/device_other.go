//go:build !unix

package durt

import "io/fs"

// SupportsDevice reports whether Entry.Device carries a real filesystem id.
const SupportsDevice = false

func deviceID(fs.FileInfo) uint64 {
	return 0
}
