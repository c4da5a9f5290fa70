package durt

import (
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// ReportOptions configures how entries are filtered and ordered for display.
type ReportOptions struct {
	// Sort orders entries by ascending size.
	Sort bool
	// ByPath, together with Sort, orders entries by path instead of size.
	ByPath bool
	// Reverse reverses the final order.
	Reverse bool
	// MinPercentage omits entries below this percentage of the total (nil = keep all).
	MinPercentage *float64
}

// Row is one displayed entry.
type Row struct {
	// Path is the path as it was given.
	Path string `json:"path"`
	// Size is the size in bytes.
	Size uint64 `json:"size"`
	// Percentage is Size relative to the unique total.
	Percentage float64 `json:"percentage"`
}

// Report holds everything that is displayed for one invocation.
type Report struct {
	// Rows are the displayed entries in display order.
	Rows []Row `json:"entries"`
	// Omitted is the number of entries dropped by the minimum percentage.
	Omitted int `json:"omitted"`
	// Total is the unique total of all entries.
	Total uint64 `json:"total"`
}

// SameFilesystem keeps the entries living on the same filesystem as the first one.
func SameFilesystem(entries []Entry) []Entry {
	if len(entries) == 0 {
		return entries
	}

	first := entries[0].Device

	return lo.Filter(entries, func(entry Entry, _ int) bool {
		return entry.Device == first
	})
}

// comparePaths orders paths component by component, so "a/b" sorts before "a-b".
func comparePaths(a, b string) int {
	return slices.Compare(
		strings.Split(filepath.ToSlash(a), "/"),
		strings.Split(filepath.ToSlash(b), "/"),
	)
}

// Percentage returns size relative to total, or 0 for an empty total.
func Percentage(size, total uint64) float64 {
	if total == 0 {
		return 0
	}

	return 100.0 * float64(size) / float64(total)
}

// BuildReport orders and filters entries for display. total is the unique total.
// The input slice is left untouched.
func BuildReport(entries []Entry, total uint64, opt ReportOptions) Report {
	ordered := slices.Clone(entries)

	if opt.Sort {
		if opt.ByPath {
			sort.SliceStable(ordered, func(i, j int) bool {
				return comparePaths(ordered[i].Path, ordered[j].Path) < 0
			})
		} else {
			sort.SliceStable(ordered, func(i, j int) bool {
				return ordered[i].Size < ordered[j].Size
			})
		}
	}

	if opt.Reverse {
		ordered = lo.Reverse(ordered)
	}

	report := Report{
		Rows:  make([]Row, 0, len(ordered)),
		Total: total,
	}

	for _, entry := range ordered {
		pct := Percentage(entry.Size, total)

		if opt.MinPercentage != nil && pct < *opt.MinPercentage {
			report.Omitted++

			continue
		}

		report.Rows = append(report.Rows, Row{Path: entry.Path, Size: entry.Size, Percentage: pct})
	}

	return report
}
