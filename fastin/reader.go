package fastin

import (
	"fmt"
	"io"

	"github.com/Neumenon/fastin/source"
)

// Mode selects how malformed numeric tokens are handled.
type Mode uint8

const (
	// Fast skips bytes that cannot belong to a number and lets integer
	// overflow wrap. Intended for trusted input.
	Fast Mode = 0
	// Strict rejects such tokens with a *TokenError.
	Strict Mode = 1
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Fast:
		return "fast"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("unknown(%d)", m)
	}
}

// scratchSize bounds the token prefix kept for float slow paths and errors.
const scratchSize = 64

// Reader decodes whitespace-delimited tokens and lines from a Source.
//
// A token is a maximal run of bytes above 0x20. Numeric tokens are decoded
// straight from the source's buffer without allocating. End of stream is
// reported as io.EOF; source failures as *SourceError.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	src  source.Source
	buf  []byte // Current view from src.Fill
	pos  int    // Cursor into buf; len(buf) means refill needed
	mode Mode

	bufSize int

	err error // First failure other than io.EOF
	eof bool

	scratch [scratchSize]byte
	digits  [32]byte // "<mant>e<exp>" for the float slow path
	line    []byte
}

// Option configures a Reader.
type Option func(*Reader)

// WithBufferSize sets the buffer size used when NewReader has to wrap an
// io.Reader (default: 64 KiB).
func WithBufferSize(n int) Option {
	return func(r *Reader) {
		r.bufSize = n
	}
}

// WithMode sets the numeric decoding mode (default: Fast).
func WithMode(m Mode) Option {
	return func(r *Reader) {
		r.mode = m
	}
}

// WithStrict is shorthand for WithMode(Strict).
func WithStrict() Option {
	return WithMode(Strict)
}

// NewReader creates a Reader over rd. If rd already implements
// source.Source it is used directly, otherwise it is buffered.
func NewReader(rd io.Reader, opts ...Option) *Reader {
	r := &Reader{bufSize: source.DefaultBufferSize}
	for _, opt := range opts {
		opt(r)
	}
	if src, ok := rd.(source.Source); ok {
		r.src = src
	} else {
		r.src = source.NewBuffered(rd, r.bufSize)
	}
	return r
}

// NewSourceReader creates a Reader over an existing Source.
func NewSourceReader(src source.Source, opts ...Option) *Reader {
	r := &Reader{src: src, bufSize: source.DefaultBufferSize}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reset discards all state and switches to src. The mode is kept.
func (r *Reader) Reset(src source.Source) {
	r.src = src
	r.buf = nil
	r.pos = 0
	r.err = nil
	r.eof = false
}

// Mode returns the decoding mode.
func (r *Reader) Mode() Mode {
	return r.mode
}

// Err returns the first error other than end of stream seen by any read.
func (r *Reader) Err() error {
	return r.err
}

// EOF reports whether a read has hit end of stream.
func (r *Reader) EOF() bool {
	return r.eof
}

// More skips whitespace and reports whether another token follows.
func (r *Reader) More() bool {
	if err := r.skipSpace(); err != nil {
		r.note(err)
		return false
	}
	return true
}

// refill returns the consumed prefix to the source and fetches the next
// view. It returns io.EOF at exhaustion and *SourceError on failure.
func (r *Reader) refill() error {
	r.src.Consume(r.pos)
	r.pos = 0
	buf, err := r.src.Fill()
	if err != nil {
		r.buf = nil
		if err == io.EOF {
			return io.EOF
		}
		return &SourceError{Err: err}
	}
	r.buf = buf
	if len(buf) == 0 {
		return io.EOF
	}
	return nil
}

// skipSpace advances past bytes <= 0x20 until a token byte is buffered.
func (r *Reader) skipSpace() error {
	for {
		for r.pos < len(r.buf) {
			if r.buf[r.pos] > ' ' {
				return nil
			}
			r.pos++
		}
		if err := r.refill(); err != nil {
			return err
		}
	}
}

// note records err in the sticky state and returns it unchanged.
func (r *Reader) note(err error) error {
	switch {
	case err == nil:
	case err == io.EOF:
		r.eof = true
	case r.err == nil:
		r.err = err
	}
	return err
}
