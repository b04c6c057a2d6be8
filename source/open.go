package source

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Input is an opened, possibly decompressed, byte stream. It implements
// Source over a single buffer: for uncompressed input that is the buffer
// used for sniffing.
type Input struct {
	src         *Buffered
	closers     []func() error
	compression Compression
}

// OpenOption configures Open.
type OpenOption func(*openConfig)

type openConfig struct {
	compression Compression
	bufferSize  int
	stdin       io.Reader
}

// WithCompression forces a compression instead of sniffing (default: auto).
func WithCompression(c Compression) OpenOption {
	return func(cfg *openConfig) {
		cfg.compression = c
	}
}

// WithBufferSize sets the size of the input buffer (default: 64 KiB).
func WithBufferSize(n int) OpenOption {
	return func(cfg *openConfig) {
		cfg.bufferSize = n
	}
}

// WithStdin replaces os.Stdin as the stream used for "" and "-".
func WithStdin(r io.Reader) OpenOption {
	return func(cfg *openConfig) {
		cfg.stdin = r
	}
}

// Open opens path for reading. An empty path or "-" reads standard input,
// which is never closed by Input.Close.
func Open(path string, opts ...OpenOption) (*Input, error) {
	cfg := openConfig{
		compression: CompressionAuto,
		bufferSize:  DefaultBufferSize,
		stdin:       os.Stdin,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	in := &Input{}
	var raw io.Reader
	if path == "" || path == "-" {
		raw = cfg.stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open input")
		}
		in.closers = append(in.closers, f.Close)
		raw = f
	}

	if err := in.wrap(raw, cfg); err != nil {
		in.Close()
		return nil, errors.Wrapf(err, "open %s input", in.compression)
	}
	return in, nil
}

// NewInput wraps an arbitrary reader the same way Open wraps a file.
func NewInput(r io.Reader, opts ...OpenOption) (*Input, error) {
	cfg := openConfig{
		compression: CompressionAuto,
		bufferSize:  DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	in := &Input{}
	if err := in.wrap(r, cfg); err != nil {
		return nil, errors.Wrapf(err, "open %s input", in.compression)
	}
	return in, nil
}

func (in *Input) wrap(raw io.Reader, cfg openConfig) error {
	br := bufio.NewReaderSize(raw, cfg.bufferSize)

	c := cfg.compression
	if c == CompressionAuto {
		var err error
		if c, err = sniff(br); err != nil {
			return errors.Wrap(err, "sniff compression")
		}
	}
	in.compression = c

	switch c {
	case CompressionNone:
		in.src = FromBufio(br)
	case CompressionGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return err
		}
		in.closers = append(in.closers, zr.Close)
		in.src = NewBuffered(zr, cfg.bufferSize)
	case CompressionZstd:
		dec, err := zstd.NewReader(br)
		if err != nil {
			return err
		}
		in.closers = append(in.closers, func() error {
			dec.Close()
			return nil
		})
		in.src = NewBuffered(dec, cfg.bufferSize)
	default:
		return errors.Errorf("unsupported compression %s", c)
	}
	return nil
}

// sniff inspects the leading bytes without consuming them. A short or
// empty stream is not an error; a read failure is.
func sniff(br *bufio.Reader) (Compression, error) {
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return CompressionNone, err
	}
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return CompressionGzip, nil
	case bytes.HasPrefix(head, zstdMagic):
		return CompressionZstd, nil
	default:
		return CompressionNone, nil
	}
}

// Fill implements Source.
func (in *Input) Fill() ([]byte, error) {
	return in.src.Fill()
}

// Consume implements Source.
func (in *Input) Consume(n int) {
	in.src.Consume(n)
}

// Read implements io.Reader.
func (in *Input) Read(p []byte) (int, error) {
	return in.src.Read(p)
}

// Compression reports the encoding that was detected or forced.
func (in *Input) Compression() Compression {
	return in.compression
}

// Close releases the decompressor and the file, innermost first.
func (in *Input) Close() error {
	var first error
	for i := len(in.closers) - 1; i >= 0; i-- {
		if err := in.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	in.closers = nil
	return first
}
