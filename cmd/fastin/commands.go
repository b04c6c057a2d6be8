package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Neumenon/fastin/fastin"
)

func (a *app) sumCommand() *cobra.Command {
	typeName := "int64"
	cmd := &cobra.Command{
		Use:   "sum [file]",
		Short: "Read a count line, then that many numbers, and print their sum",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := fastin.ParseKind(typeName)
			if !ok {
				return errors.Errorf("unknown type %q", typeName)
			}
			r, closer, err := a.open(args)
			if err != nil {
				return err
			}
			defer closer.Close()

			total, n, err := sum(r, kind)
			if err != nil {
				return err
			}
			level.Debug(a.logger).Log("msg", "summed tokens", "count", n, "type", kind)

			out := total.AppendText(nil)
			_, err = a.stdout.Write(append(out, '\n'))
			return err
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", typeName, "numeric type of the list items")
	return cmd
}

// sum reads the "count then list" shape: a line holding n, then n tokens.
func sum(r *fastin.Reader, kind fastin.Kind) (fastin.Value, int, error) {
	total := fastin.Value{Kind: kind}

	line, err := r.Line()
	if err == io.EOF {
		return total, 0, errors.New("missing count line")
	}
	if err != nil {
		return total, 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 0 {
		return total, 0, errors.Errorf("invalid count line %q", line)
	}

	for i := 0; i < n; i++ {
		v, err := r.Decode(kind)
		if err == io.EOF {
			return total, i, errors.Errorf("expected %d values, got %d", n, i)
		}
		if err != nil {
			return total, i, errors.Wrapf(err, "value %d", i+1)
		}
		total.Int += v.Int
		total.Uint += v.Uint
		total.Float += v.Float
	}
	return total, n, nil
}

func (a *app) tokensCommand() *cobra.Command {
	typeName := "bytes"
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Decode every token and print one per line",
		Long: `Decode every token and print one per line.

--type accepts any Go numeric type name, "byte" for single non-space
bytes, or "bytes" for raw tokens.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closer, err := a.open(args)
			if err != nil {
				return err
			}
			defer closer.Close()

			w := bufio.NewWriter(a.stdout)
			n, err := copyTokens(w, r, typeName)
			if flushErr := w.Flush(); err == nil {
				err = flushErr
			}
			level.Debug(a.logger).Log("msg", "copied tokens", "count", n, "type", typeName)
			return err
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", typeName, "token type")
	return cmd
}

// copyTokens writes each decoded token on its own line until end of stream.
func copyTokens(w *bufio.Writer, r *fastin.Reader, typeName string) (int, error) {
	var (
		buf  []byte
		err  error
		n    int
		next func() error
	)

	switch typeName {
	case "bytes", "string":
		next = func() error {
			buf, err = r.AppendToken(buf[:0])
			return err
		}
	case "byte":
		next = func() error {
			var c byte
			c, err = r.Byte()
			buf = append(buf[:0], c)
			return err
		}
	default:
		kind, ok := fastin.ParseKind(typeName)
		if !ok {
			return 0, errors.Errorf("unknown type %q", typeName)
		}
		next = func() error {
			var v fastin.Value
			v, err = r.Decode(kind)
			buf = v.AppendText(buf[:0])
			return err
		}
	}

	for {
		if err := next(); err == io.EOF {
			return n, nil
		} else if err != nil {
			return n, errors.Wrapf(err, "token %d", n+1)
		}
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return n, err
		}
		n++
	}
}

func (a *app) linesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lines [file]",
		Short: "Copy lines, normalizing CRLF to LF",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closer, err := a.open(args)
			if err != nil {
				return err
			}
			defer closer.Close()

			w := bufio.NewWriter(a.stdout)
			var (
				line  []byte
				count int
			)
			for {
				line, err = r.AppendLine(line[:0])
				if err == io.EOF {
					break
				}
				if err != nil {
					return err
				}
				count++
				if _, err := w.Write(append(line, '\n')); err != nil {
					return err
				}
			}
			level.Debug(a.logger).Log("msg", "copied lines", "count", count)
			return w.Flush()
		},
	}
}
