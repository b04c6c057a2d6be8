package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"
)

func TestMethodsAgree(t *testing.T) {
	for _, c := range corpora {
		t.Run(c.name, func(t *testing.T) {
			data := c.generate(2000, 7)
			require.NotEmpty(t, data)

			want, wantN, err := readFscan(c, data)
			require.NoError(t, err)
			require.Positive(t, wantN)

			for _, m := range methods {
				got, n, err := m.read(c, data)
				require.NoError(t, err, m.name)
				require.Equal(t, want, got, m.name)
				require.Equal(t, wantN, n, m.name)
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	c := corpora[0]
	require.Equal(t, c.generate(100, 3), c.generate(100, 3))
	require.NotEqual(t, c.generate(100, 3), c.generate(100, 4))
}

func TestRun_WritesReports(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer

	err := run(options{tokens: 500, seed: 1, runs: 1, outDir: dir}, &stdout, log.NewNopLogger())
	require.NoError(t, err)
	require.Contains(t, stdout.String(), "=== SUMMARY ===")

	csv, err := os.ReadFile(filepath.Join(dir, "results.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
	require.Len(t, lines, 1+len(corpora)*len(methods))

	md, err := os.ReadFile(filepath.Join(dir, "BENCH.md"))
	require.NoError(t, err)
	require.Contains(t, string(md), "| ints | fastin |")
}

func TestCommand_RejectsBadFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := newCommand(&stdout, &stderr)
	cmd.SetArgs([]string{"--runs", "0", "--out", t.TempDir()})
	require.ErrorContains(t, cmd.Execute(), "must be positive")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, io.ErrShortWrite
}

func TestWriteBuffered_ReportsWriteError(t *testing.T) {
	results := []CaseResult{{Corpus: "ints", Method: "fastin", Bytes: 10, Tokens: 2, Runs: 1}}

	err := writeBuffered(failingWriter{}, func(w io.Writer) { writeCSV(w, results) })
	require.ErrorIs(t, err, io.ErrShortWrite)

	var buf bytes.Buffer
	require.NoError(t, writeBuffered(&buf, func(w io.Writer) { writeMarkdown(w, results, options{tokens: 2, runs: 1}) }))
	require.Contains(t, buf.String(), "| ints | fastin |")
}
