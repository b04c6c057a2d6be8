package source

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

// drain reads a Source to exhaustion, consuming k bytes of each view.
func drain(t *testing.T, src Source, k int) string {
	t.Helper()
	var out bytes.Buffer
	for {
		view, err := src.Fill()
		if err == io.EOF {
			return out.String()
		}
		require.NoError(t, err)
		require.NotEmpty(t, view)
		n := min(k, len(view))
		out.Write(view[:n])
		src.Consume(n)
	}
}

// ============================================================
// Chunked
// ============================================================

func TestChunked_Views(t *testing.T) {
	c := NewChunked([]byte("abcdefg"), 3)

	view, err := c.Fill()
	require.NoError(t, err)
	require.Equal(t, "abc", string(view))

	// A partial consume keeps the rest of the same view.
	c.Consume(1)
	view, err = c.Fill()
	require.NoError(t, err)
	require.Equal(t, "bc", string(view))

	c.Consume(2)
	view, err = c.Fill()
	require.NoError(t, err)
	require.Equal(t, "def", string(view))
	require.Equal(t, 4, c.Remaining())
}

func TestChunked_Drain(t *testing.T) {
	for _, chunk := range []int{0, 1, 2, 5, 100} {
		for _, k := range []int{1, 2, 1000} {
			require.Equal(t, "hello, world", drain(t, NewChunked([]byte("hello, world"), chunk), k))
		}
	}
}

func TestChunked_FailWith(t *testing.T) {
	c := NewChunked([]byte("x"), 0).FailWith(io.ErrClosedPipe)

	view, err := c.Fill()
	require.NoError(t, err)
	c.Consume(len(view))

	_, err = c.Fill()
	require.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestChunked_Read(t *testing.T) {
	c := NewChunked([]byte("abcdef"), 2)

	view, err := c.Fill()
	require.NoError(t, err)
	require.Equal(t, "ab", string(view))

	rest, err := io.ReadAll(c)
	require.NoError(t, err)
	require.Equal(t, "abcdef", string(rest))

	_, err = c.Fill()
	require.ErrorIs(t, err, io.EOF)
}

// ============================================================
// Buffered
// ============================================================

func TestBuffered_Drain(t *testing.T) {
	input := strings.Repeat("0123456789", 50)
	src := NewBuffered(iotest.HalfReader(strings.NewReader(input)), 16)
	require.Equal(t, input, drain(t, src, 7))
}

func TestBuffered_ReusesBufio(t *testing.T) {
	br := bufio.NewReaderSize(strings.NewReader("abc"), 4096)
	src := NewBuffered(br, 1024)
	require.Same(t, br, src.Bufio())

	require.Same(t, br, FromBufio(br).Bufio())
}

func TestBuffered_DeferredError(t *testing.T) {
	// The error arrives together with the last bytes; they must be served first.
	src := NewBuffered(iotest.DataErrReader(strings.NewReader("data")), 16)

	view, err := src.Fill()
	require.NoError(t, err)
	require.Equal(t, "data", string(view))
	src.Consume(len(view))

	_, err = src.Fill()
	require.ErrorIs(t, err, io.EOF)
}

func TestBuffered_Failure(t *testing.T) {
	src := NewBuffered(iotest.ErrReader(io.ErrUnexpectedEOF), 0)
	_, err := src.Fill()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

// ============================================================
// Open
// ============================================================

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func zstdBytes(t *testing.T, s string) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll([]byte(s), nil)
}

func TestOpen_Sniffing(t *testing.T) {
	const payload = "3\n1 2 3\n"
	tests := []struct {
		name string
		data []byte
		want Compression
	}{
		{"raw", []byte(payload), CompressionNone},
		{"gzip", gzipBytes(t, payload), CompressionGzip},
		{"zstd", zstdBytes(t, payload), CompressionZstd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Open(writeFile(t, "input", tt.data))
			require.NoError(t, err)
			defer in.Close()

			require.Equal(t, tt.want, in.Compression())
			got, err := io.ReadAll(in)
			require.NoError(t, err)
			require.Equal(t, payload, string(got))
		})
	}
}

func TestOpen_ForcedCompression(t *testing.T) {
	path := writeFile(t, "input.gz", gzipBytes(t, "x"))

	in, err := Open(path, WithCompression(CompressionNone))
	require.NoError(t, err)
	defer in.Close()
	got, err := io.ReadAll(in)
	require.NoError(t, err)
	require.Equal(t, gzipBytes(t, "x")[:2], got[:2])

	_, err = Open(writeFile(t, "plain", []byte("not gzip")), WithCompression(CompressionGzip))
	require.Error(t, err)
	require.Contains(t, err.Error(), "open gzip input")
}

func TestOpen_Stdin(t *testing.T) {
	for _, path := range []string{"", "-"} {
		in, err := Open(path, WithStdin(strings.NewReader("from stdin")), WithBufferSize(16))
		require.NoError(t, err)
		got, err := io.ReadAll(in)
		require.NoError(t, err)
		require.Equal(t, "from stdin", string(got))
		require.NoError(t, in.Close())
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_SniffFailure(t *testing.T) {
	_, err := NewInput(iotest.TimeoutReader(strings.NewReader("5 6")))
	require.ErrorIs(t, err, iotest.ErrTimeout)
	require.Contains(t, err.Error(), "sniff compression")

	_, err = Open("-", WithStdin(iotest.ErrReader(io.ErrUnexpectedEOF)))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestOpen_ShortInput(t *testing.T) {
	for _, data := range []string{"", "7", "\x1f"} {
		in, err := NewInput(strings.NewReader(data))
		require.NoError(t, err)
		require.Equal(t, CompressionNone, in.Compression())
		got, err := io.ReadAll(in)
		require.NoError(t, err)
		require.Equal(t, data, string(got))
	}
}

func TestInput_Source(t *testing.T) {
	const payload = "3\n1 2 3\n"
	var _ Source = (*Input)(nil)

	// Raw input is served from the buffer that was used for sniffing.
	in, err := NewInput(strings.NewReader(payload))
	require.NoError(t, err)
	require.Equal(t, len(payload), in.src.Bufio().Buffered())
	require.Equal(t, payload, drain(t, in, 2))

	in, err = NewInput(bytes.NewReader(gzipBytes(t, payload)), WithBufferSize(16))
	require.NoError(t, err)
	require.Equal(t, payload, drain(t, in, 3))
}

func TestNewInput(t *testing.T) {
	in, err := NewInput(bytes.NewReader(zstdBytes(t, "42")))
	require.NoError(t, err)
	defer in.Close()
	got, err := io.ReadAll(in)
	require.NoError(t, err)
	require.Equal(t, "42", string(got))
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionAuto, CompressionNone, CompressionGzip, CompressionZstd} {
		got, ok := ParseCompression(c.String())
		require.True(t, ok)
		require.Equal(t, c, got)
	}
	_, ok := ParseCompression("brotli")
	require.False(t, ok)
	require.Equal(t, "unknown(9)", Compression(9).String())
}
