package source

import (
	"bufio"
	"io"
)

// DefaultBufferSize is the buffer size used by NewBuffered when none is given.
const DefaultBufferSize = 64 * 1024

// Source is a sequential, re-fillable byte stream.
//
// Fill returns the bytes buffered but not yet consumed. It reads from the
// underlying stream only when that view is empty. At exhaustion it returns
// (nil, io.EOF); any other error is an I/O failure. The returned slice is
// valid until the next call to Fill or Consume.
//
// Consume marks the first n bytes of the last Fill view as consumed.
type Source interface {
	Fill() ([]byte, error)
	Consume(n int)
}

// Buffered adapts a *bufio.Reader to Source.
type Buffered struct {
	r *bufio.Reader
}

// NewBuffered wraps r in a Buffered source. If r is already a *bufio.Reader
// with at least size bytes of buffer it is used directly.
func NewBuffered(r io.Reader, size int) *Buffered {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Buffered{r: bufio.NewReaderSize(r, size)}
}

// FromBufio wraps an existing *bufio.Reader without re-buffering.
func FromBufio(r *bufio.Reader) *Buffered {
	return &Buffered{r: r}
}

// Fill implements Source.
func (b *Buffered) Fill() ([]byte, error) {
	if b.r.Buffered() == 0 {
		// Peek(1) forces a read; a deferred error surfaces only once
		// the buffer is drained.
		if _, err := b.r.Peek(1); err != nil {
			return nil, err
		}
	}
	return b.r.Peek(b.r.Buffered())
}

// Consume implements Source.
func (b *Buffered) Consume(n int) {
	if n > 0 {
		b.r.Discard(n)
	}
}

// Read implements io.Reader.
func (b *Buffered) Read(p []byte) (int, error) {
	return b.r.Read(p)
}

// Bufio returns the underlying buffered reader.
func (b *Buffered) Bufio() *bufio.Reader {
	return b.r
}
