// bench - fastin benchmark runner
//
// Compares the fastin reader against fmt.Fscan and bufio.Scanner + strconv
// on generated corpora:
//   - ints: signed 64-bit integers
//   - floats: decimals with up to six fractional digits
//   - mixed: "count then list" blocks of words and numbers
//
// Output: CSV and markdown summary
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// CaseResult is one (corpus, method) measurement.
type CaseResult struct {
	Corpus   string
	Method   string
	Bytes    int
	Tokens   int
	Runs     int
	Elapsed  time.Duration
	MBPerSec float64
	Checksum float64
}

type options struct {
	tokens int
	seed   uint64
	runs   int
	outDir string
}

func main() {
	if err := newCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := options{tokens: 200000, seed: 1, runs: 5, outDir: "."}
	cmd := &cobra.Command{
		Use:          "bench",
		Short:        "Compare fastin with fmt.Fscan and bufio.Scanner",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := level.NewFilter(log.NewLogfmtLogger(log.NewSyncWriter(stderr)), level.AllowInfo())
			return run(opts, stdout, logger)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.Flags().IntVar(&opts.tokens, "tokens", opts.tokens, "tokens per corpus")
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "corpus generator seed")
	cmd.Flags().IntVar(&opts.runs, "runs", opts.runs, "timed runs per method")
	cmd.Flags().StringVar(&opts.outDir, "out", opts.outDir, "directory for results.csv and BENCH.md")
	return cmd
}

func run(opts options, stdout io.Writer, logger log.Logger) error {
	if opts.tokens <= 0 || opts.runs <= 0 {
		return errors.New("--tokens and --runs must be positive")
	}

	level.Info(logger).Log("msg", "fastin benchmark runner", "tokens", opts.tokens, "runs", opts.runs, "seed", opts.seed)

	var results []CaseResult
	for _, corpus := range corpora {
		data := corpus.generate(opts.tokens, opts.seed)
		level.Info(logger).Log("msg", "generated corpus", "corpus", corpus.name, "bytes", len(data))

		var reference float64
		for i, m := range methods {
			res, err := measure(corpus, m, data, opts.runs)
			if err != nil {
				level.Warn(logger).Log("msg", "skip", "corpus", corpus.name, "method", m.name, "err", err)
				continue
			}
			if i == 0 {
				reference = res.Checksum
			} else if res.Checksum != reference {
				level.Warn(logger).Log("msg", "checksum mismatch", "corpus", corpus.name, "method", m.name,
					"got", res.Checksum, "want", reference)
			}
			results = append(results, res)
		}
	}

	csvPath := filepath.Join(opts.outDir, "results.csv")
	if err := writeFileWith(csvPath, func(w io.Writer) { writeCSV(w, results) }); err != nil {
		return err
	}
	level.Info(logger).Log("msg", "CSV written", "path", csvPath)

	mdPath := filepath.Join(opts.outDir, "BENCH.md")
	if err := writeFileWith(mdPath, func(w io.Writer) { writeMarkdown(w, results, opts) }); err != nil {
		return err
	}
	level.Info(logger).Log("msg", "Markdown written", "path", mdPath)

	writeSummary(stdout, results)
	return nil
}

func measure(c corpus, m method, data []byte, runs int) (CaseResult, error) {
	res := CaseResult{Corpus: c.name, Method: m.name, Bytes: len(data), Runs: runs}
	for i := 0; i < runs; i++ {
		start := time.Now()
		sum, n, err := m.read(c, data)
		res.Elapsed += time.Since(start)
		if err != nil {
			return res, err
		}
		res.Checksum = sum
		res.Tokens = n
	}
	if secs := res.Elapsed.Seconds(); secs > 0 {
		res.MBPerSec = float64(len(data)*runs) / secs / 1e6
	}
	return res, nil
}

func writeFileWith(path string, write func(io.Writer)) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if err := writeBuffered(f, write); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close output")
}

// writeBuffered runs write against a bufio.Writer on w. The first write
// error sticks in the buffer and is returned by Flush.
func writeBuffered(w io.Writer, write func(io.Writer)) error {
	bw := bufio.NewWriter(w)
	write(bw)
	return errors.Wrap(bw.Flush(), "write output")
}

func writeCSV(w io.Writer, results []CaseResult) {
	fmt.Fprintln(w, "corpus,method,bytes,tokens,runs,elapsed_ns,mb_per_sec,checksum")
	for _, r := range results {
		fmt.Fprintf(w, "%s,%s,%d,%d,%d,%d,%.1f,%g\n",
			r.Corpus, r.Method, r.Bytes, r.Tokens, r.Runs, r.Elapsed.Nanoseconds(), r.MBPerSec, r.Checksum)
	}
}

func writeMarkdown(w io.Writer, results []CaseResult, opts options) {
	fmt.Fprintf(w, "# fastin Benchmark Results\n\n")
	fmt.Fprintf(w, "**Tokens per corpus:** %d  \n", opts.tokens)
	fmt.Fprintf(w, "**Runs:** %d  \n", opts.runs)
	fmt.Fprintf(w, "**Seed:** %d  \n\n", opts.seed)

	fmt.Fprintf(w, "## Throughput\n\n")
	fmt.Fprintf(w, "| Corpus | Method | MB/s | Speedup vs fmt.Fscan |\n")
	fmt.Fprintf(w, "|--------|--------|------|----------------------|\n")

	baseline := map[string]float64{}
	for _, r := range results {
		if r.Method == "fmt.Fscan" {
			baseline[r.Corpus] = r.MBPerSec
		}
	}

	sorted := make([]CaseResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Corpus != sorted[j].Corpus {
			return sorted[i].Corpus < sorted[j].Corpus
		}
		return sorted[i].MBPerSec > sorted[j].MBPerSec
	})
	for _, r := range sorted {
		speedup := "-"
		if base := baseline[r.Corpus]; base > 0 {
			speedup = fmt.Sprintf("%.1fx", r.MBPerSec/base)
		}
		fmt.Fprintf(w, "| %s | %s | %.1f | %s |\n", r.Corpus, r.Method, r.MBPerSec, speedup)
	}

	fmt.Fprintf(w, "\n## Methodology\n\n")
	fmt.Fprintf(w, "- **fastin:** `fastin.NewReader` over `bytes.Reader`, default buffer\n")
	fmt.Fprintf(w, "- **fmt.Fscan:** `fmt.Fscan` over `bufio.Reader`\n")
	fmt.Fprintf(w, "- **bufio.Scanner:** `bufio.ScanWords` + `strconv`\n")
	fmt.Fprintf(w, "- Every method computes the same checksum; mismatches are logged.\n")
}

func writeSummary(w io.Writer, results []CaseResult) {
	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	for _, r := range results {
		fmt.Fprintf(w, "%-7s %-14s %8.1f MB/s  (%d tokens)\n", r.Corpus, r.Method, r.MBPerSec, r.Tokens)
	}
}
