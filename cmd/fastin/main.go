// fastin - whitespace token reader CLI
//
// Usage:
//
//	fastin sum [--type T] [file]       Read a count line, then that many tokens; print their sum
//	fastin tokens [--type T] [file]    Decode every token and print one per line
//	fastin lines [file]                Copy lines, normalizing CRLF to LF
//	fastin version                     Print version info
//
// Input may be gzip or zstd compressed; the encoding is detected from its
// first bytes unless --compression is given. If no file is given, reads
// from stdin.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Neumenon/fastin/fastin"
	"github.com/Neumenon/fastin/source"
)

const libVersion = "0.1.0"

func main() {
	cmd := newRootCommand(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the flags shared by every subcommand.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger log.Logger

	compression string
	bufferSize  int
	strict      bool
	logLevel    string
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, logger: log.NewNopLogger()}

	root := &cobra.Command{
		Use:          "fastin",
		Short:        "Decode whitespace-delimited tokens and lines",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.stderr, a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.compression, "compression", "auto", "input encoding: auto, none, gzip, zstd")
	flags.IntVar(&a.bufferSize, "buffer-size", source.DefaultBufferSize, "read buffer size in bytes")
	flags.BoolVar(&a.strict, "strict", false, "reject malformed numeric tokens")
	flags.StringVar(&a.logLevel, "log.level", "info", "log level: debug, info, warn, error")

	root.AddCommand(
		a.sumCommand(),
		a.tokensCommand(),
		a.linesCommand(),
		versionCommand(),
	)
	return root
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "fastin %s\n", libVersion)
			return err
		},
	}
}

func newLogger(w io.Writer, lvl string) (log.Logger, error) {
	var allow level.Option
	switch lvl {
	case "debug":
		allow = level.AllowDebug()
	case "info", "":
		allow = level.AllowInfo()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		return nil, errors.Errorf("invalid log level %q", lvl)
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, allow)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller), nil
}

// open resolves the optional file argument and wraps it in a Reader.
func (a *app) open(args []string) (*fastin.Reader, io.Closer, error) {
	c, ok := source.ParseCompression(a.compression)
	if !ok {
		return nil, nil, errors.Errorf("invalid compression %q", a.compression)
	}

	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	in, err := source.Open(path,
		source.WithCompression(c),
		source.WithStdin(a.stdin),
		source.WithBufferSize(a.bufferSize),
	)
	if err != nil {
		return nil, nil, err
	}
	level.Debug(a.logger).Log("msg", "opened input", "path", path, "compression", in.Compression())

	// Input is a Source, so the reader decodes straight from its buffer.
	var opts []fastin.Option
	if a.strict {
		opts = append(opts, fastin.WithStrict())
	}
	return fastin.NewReader(in, opts...), in, nil
}
