package fastin

import "io"

// Byte returns the first byte above 0x20, consuming it. It returns
// io.EOF when only whitespace remains.
func (r *Reader) Byte() (byte, error) {
	if err := r.skipSpace(); err != nil {
		return 0, r.note(err)
	}
	c := r.buf[r.pos]
	r.pos++
	return c, nil
}

// Token returns a freshly allocated copy of the next token.
func (r *Reader) Token() ([]byte, error) {
	tok, err := r.AppendToken(nil)
	if err != nil {
		return nil, err
	}
	return tok, nil
}

// Text returns the next token as a string.
func (r *Reader) Text() (string, error) {
	tok, err := r.AppendToken(r.line[:0])
	r.line = tok[:0]
	if err != nil {
		return "", err
	}
	return string(tok), nil
}

// AppendToken appends the next token to dst. At end of stream dst is
// returned unchanged with io.EOF.
func (r *Reader) AppendToken(dst []byte) ([]byte, error) {
	if err := r.skipSpace(); err != nil {
		return dst, r.note(err)
	}
	n0 := len(dst)
	for {
		start := r.pos
		i := start
		for i < len(r.buf) && r.buf[i] > ' ' {
			i++
		}
		dst = append(dst, r.buf[start:i]...)
		r.pos = i
		if i < len(r.buf) {
			return dst, nil
		}
		if err := r.refill(); err != nil {
			if err == io.EOF {
				return dst, nil
			}
			return dst[:n0], r.note(err)
		}
	}
}
