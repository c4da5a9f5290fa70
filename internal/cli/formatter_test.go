package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/durt/internal/durt"
)

func sampleReport() durt.Report {
	return durt.Report{
		Rows: []durt.Row{
			{Path: "small", Size: 100, Percentage: 6.25},
			{Path: "big", Size: 1500, Percentage: 93.75},
		},
		Total: 1600,
	}
}

func TestPrintTable_Total(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, PrintTable(sampleReport(), &buf, TableOptions{Total: true}))

	want := "     100  B  small\n" +
		"    1.50 kB  big\n" +
		"  ---------  \n" +
		"    1.60 kB  (total)\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintTable_Percentages(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, PrintTable(sampleReport(), &buf, TableOptions{Percentage: true, Binary: true}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "( 6.25%)  small"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "(93.75%)  big"), lines[1])
	assert.Contains(t, lines[1], "1.46 KiB")
}

func TestPrintTable_Omitted(t *testing.T) {
	report := sampleReport()

	var buf bytes.Buffer

	report.Omitted = 1
	require.NoError(t, PrintTable(report, &buf, TableOptions{}))
	assert.Contains(t, buf.String(), "  (1 entry omitted)\n")

	buf.Reset()

	report.Omitted = 3
	require.NoError(t, PrintTable(report, &buf, TableOptions{}))
	assert.Contains(t, buf.String(), "  (3 entries omitted)\n")
}

func TestPrintTable_BinarySeparator(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, PrintTable(durt.Report{}, &buf, TableOptions{Total: true, Binary: true}))

	assert.Contains(t, buf.String(), strings.Repeat("-", 10)+"  \n")
	assert.Contains(t, buf.String(), "0   B  (total)")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, PrintJSON(sampleReport(), &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.InDelta(t, 1600, decoded["total"], 0)
	assert.InDelta(t, 0, decoded["omitted"], 0)
	assert.Len(t, decoded["entries"], 2)
}
