package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/durt/internal/durt"
)

// run executes the command with an isolated configuration file holding cfg.
func run(t *testing.T, cfg string, args ...string) (string, string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))

	var stdout, stderr bytes.Buffer

	cmd := New("v1.2.3").Command()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", path}, args...))

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func tree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "b"), bytes.Repeat([]byte("x"), 4000), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "c"), bytes.Repeat([]byte("x"), 1000), 0o644))

	return root
}

func decode(t *testing.T, stdout string) durt.Report {
	t.Helper()

	var report durt.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))

	return report
}

func TestExecute_NoPathsPrintsHelp(t *testing.T) {
	stdout, _, err := run(t, "")
	require.NoError(t, err)

	assert.Contains(t, stdout, "durt calculates the size of files and directories")
	assert.Contains(t, stdout, "--by-path")
}

func TestExecute_Version(t *testing.T) {
	stdout, _, err := run(t, "", "--version")
	require.NoError(t, err)

	assert.Equal(t, "v1.2.3\n", stdout)
}

func TestExecute_UniqueTotal(t *testing.T) {
	root := tree(t)
	a := filepath.Join(root, "a")
	b := filepath.Join(root, "a", "b")
	c := filepath.Join(root, "c")

	stdout, stderr, err := run(t, "", "-o", "json", b, a, c)
	require.NoError(t, err)
	assert.Empty(t, stderr)

	report := decode(t, stdout)
	require.Len(t, report.Rows, 3)

	assert.Equal(t, uint64(4000), report.Rows[0].Size)
	assert.Equal(t, report.Rows[1].Size+1000, report.Total)
}

func TestExecute_MissingPathIsReported(t *testing.T) {
	root := tree(t)
	missing := filepath.Join(root, "missing")

	stdout, stderr, err := run(t, "", "-t", missing, filepath.Join(root, "c"))
	require.NoError(t, err)

	assert.Equal(t, missing+": no such file or directory\n", stderr)
	assert.NotContains(t, stdout, missing)
	assert.Contains(t, stdout, "1.00 kB  (total)")
}

func TestExecute_SortAndMin(t *testing.T) {
	root := tree(t)
	a := filepath.Join(root, "a")
	c := filepath.Join(root, "c")

	stdout, _, err := run(t, "", "-o", "json", "-s", "-r", "--min", "30", c, a)
	require.NoError(t, err)

	report := decode(t, stdout)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, a, report.Rows[0].Path)
	assert.Equal(t, 1, report.Omitted)
}

func TestExecute_ConfigAndFlagPrecedence(t *testing.T) {
	root := tree(t)
	c := filepath.Join(root, "c")

	stdout, _, err := run(t, "output: json\nbinary: true\n", c)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), decode(t, stdout).Total)

	stdout, _, err = run(t, "output: json\ntotal: true\n", "-o", "table", c)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1.00 kB  (total)")
}

func TestExecute_InvalidOutput(t *testing.T) {
	_, _, err := run(t, "", "-o", "yaml", ".")
	assert.ErrorContains(t, err, "invalid output format")
}

func TestExecute_MissingExplicitConfig(t *testing.T) {
	cmd := New("dev").Command()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "."})

	assert.ErrorContains(t, cmd.Execute(), "accessing config file")
}

func TestExecute_SameFilesystem(t *testing.T) {
	if !durt.SupportsDevice {
		t.Skip("no filesystem ids on this platform")
	}

	root := tree(t)

	stdout, _, err := run(t, "", "-o", "json", "-f", filepath.Join(root, "a"), filepath.Join(root, "c"))
	require.NoError(t, err)
	assert.Len(t, decode(t, stdout).Rows, 2)
}
