package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"statreport/domain/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "score,group\n10,A\n20,B\n,A\n40,A\n"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestColumnsCommand(t *testing.T) {
	path := writeFile(t, "sample.csv", sampleCSV)

	out, err := run(t, "columns", path, "--head", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "score")
	assert.Contains(t, out, "numeric")
	assert.Contains(t, out, "categorical")
	assert.Contains(t, out, "First rows")
}

func TestSummarizeCommand(t *testing.T) {
	path := writeFile(t, "sample.csv", sampleCSV)

	out, err := run(t, "summarize", path, "-n", "score", "-c", "group", "-p", "drop_rows")
	require.NoError(t, err)
	assert.Contains(t, out, "Sayısal İstatistikler")
	assert.Contains(t, out, "23.3333")
	assert.Contains(t, out, "66.67")
}

func TestSummarizeRejectsBadInput(t *testing.T) {
	path := writeFile(t, "sample.csv", sampleCSV)

	_, err := run(t, "summarize", path, "-n", "group")
	assert.Error(t, err)

	_, err = run(t, "summarize", path, "-p", "guess")
	assert.Error(t, err)

	_, err = run(t, "summarize", writeFile(t, "notes.txt", "x"))
	assert.Error(t, err)
}

func TestReportCommandWritesFiles(t *testing.T) {
	path := writeFile(t, "sample.csv", sampleCSV)
	dir := filepath.Join(t.TempDir(), "out")

	out, err := run(t, "report", path, "--all", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, report.DocumentFileName)

	for _, name := range []string{
		report.DocumentFileName,
		"score_histogram.png",
		"score_boxplot.png",
		"group_bar.png",
		"correlation_matrix.png",
	} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}

func TestSampleCommandFeedsReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.xlsx")

	out, err := run(t, "sample", path, "--rows", "40")
	require.NoError(t, err)
	assert.Contains(t, out, "40 rows")

	out, err = run(t, "summarize", path, "-n", "order_total", "-c", "country")
	require.NoError(t, err)
	assert.Contains(t, out, "order_total")

	_, err = run(t, "sample", filepath.Join(dir, "demo.txt"))
	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "demo.txt"))
	assert.True(t, os.IsNotExist(statErr))
}
