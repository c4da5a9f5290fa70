package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/idelchi/durt/internal/durt"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// TableOptions selects the optional parts of the table.
type TableOptions struct {
	// Binary selects binary prefixes.
	Binary bool
	// Percentage adds the percentage column.
	Percentage bool
	// Total adds the separator and the total row.
	Total bool
}

// PrintJSON outputs the report in JSON format.
func PrintJSON(report durt.Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs the report as right-aligned size (and percentage) columns followed by the path.
//
// Every cell is tab-terminated except the last one, which tabwriter leaves
// unaligned; the padding on its left is therefore written out explicitly.
func PrintTable(report durt.Report, writer io.Writer, opt TableOptions) error {
	w := tabwriter.NewWriter(writer, 0, 0, TabSpacing, ' ', tabwriter.AlignRight)

	row := func(size, pct, text string) {
		if opt.Percentage {
			fmt.Fprintf(w, "%s\t%s\t  %s\n", size, pct, text)
		} else {
			fmt.Fprintf(w, "%s\t  %s\n", size, text)
		}
	}

	for _, r := range report.Rows {
		row(durt.FormatSize(r.Size, opt.Binary), fmt.Sprintf("(%5.2f%%)", r.Percentage), r.Path)
	}

	switch report.Omitted {
	case 0:
	case 1:
		row("", "", "(1 entry omitted)")
	default:
		row("", "", fmt.Sprintf("(%d entries omitted)", report.Omitted))
	}

	if opt.Total {
		width := 9
		if opt.Binary {
			width = 10
		}

		row(strings.Repeat("-", width), "", "")
		row(durt.FormatSize(report.Total, opt.Binary), "", "(total)")
	}

	return w.Flush()
}
