package durt

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

//nolint:gochecknoglobals // Lookup tables
var (
	decimalPrefixes = []string{"k", "M", "G", "T", "P", "E"}
	binaryPrefixes  = []string{"Ki", "Mi", "Gi", "Ti", "Pi", "Ei"}
)

// FormatSize renders size with decimal (kB, MB, ...) or binary (KiB, MiB, ...) prefixes.
// Unprefixed values are padded so that the "B" lines up with prefixed ones.
func FormatSize(size uint64, binary bool) string {
	base, prefixes, padding := float64(humanize.KByte), decimalPrefixes, "  "
	if binary {
		base, prefixes, padding = float64(humanize.KiByte), binaryPrefixes, "   "
	}

	value := float64(size)
	if value < base {
		return fmt.Sprintf("%d%sB", size, padding)
	}

	exp := -1
	for value >= base && exp < len(prefixes)-1 {
		value /= base
		exp++
	}

	return fmt.Sprintf("%.2f %sB", value, prefixes[exp])
}
