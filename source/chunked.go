package source

import "io"

// Chunked serves an in-memory byte slice as a Source, handing out views of
// at most chunk bytes. It never copies and does not own data.
//
// A small chunk size forces tokens to straddle refills, which is how the
// reader's resume logic is exercised.
type Chunked struct {
	data  []byte
	off   int // First unconsumed byte
	end   int // End of the current view
	chunk int
	err   error // Returned instead of io.EOF once data is exhausted
}

// NewChunked returns a Chunked source over data. A chunk of 0 or less
// serves the whole slice as one view.
func NewChunked(data []byte, chunk int) *Chunked {
	if chunk <= 0 {
		chunk = len(data)
		if chunk == 0 {
			chunk = 1
		}
	}
	return &Chunked{data: data, chunk: chunk}
}

// FailWith makes the source report err instead of io.EOF after the data
// runs out.
func (c *Chunked) FailWith(err error) *Chunked {
	c.err = err
	return c
}

// Fill implements Source.
func (c *Chunked) Fill() ([]byte, error) {
	if c.off == c.end {
		if c.off >= len(c.data) {
			return nil, c.exhausted()
		}
		c.end = min(c.off+c.chunk, len(c.data))
	}
	return c.data[c.off:c.end], nil
}

// Consume implements Source.
func (c *Chunked) Consume(n int) {
	c.off = min(c.off+max(n, 0), c.end)
}

// Read implements io.Reader, so a Chunked can be handed to fastin.NewReader
// directly.
func (c *Chunked) Read(p []byte) (int, error) {
	if c.off >= len(c.data) {
		return 0, c.exhausted()
	}
	n := copy(p, c.data[c.off:])
	c.off += n
	c.end = max(c.end, c.off)
	return n, nil
}

func (c *Chunked) exhausted() error {
	if c.err != nil {
		return c.err
	}
	return io.EOF
}

// Remaining reports how many bytes have not been consumed.
func (c *Chunked) Remaining() int {
	return len(c.data) - c.off
}
