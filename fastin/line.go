package fastin

import (
	"bytes"
	"io"
	"strings"
)

// AppendLine appends the rest of the current line to dst, consuming the
// terminator. One trailing "\n", and a "\r" right before it, are dropped.
//
// An empty line yields (dst, nil). When the stream is already exhausted
// dst is returned unmodified with io.EOF. A final line without terminator
// is returned normally; the next call reports io.EOF.
func (r *Reader) AppendLine(dst []byte) ([]byte, error) {
	n0 := len(dst)
	read := false
	for {
		if r.pos == len(r.buf) {
			if err := r.refill(); err != nil {
				if err == io.EOF && read {
					return dst, nil
				}
				return dst[:n0], r.note(err)
			}
		}

		chunk := r.buf[r.pos:]
		read = true
		if i := bytes.IndexByte(chunk, '\n'); i >= 0 {
			dst = append(dst, chunk[:i]...)
			r.pos += i + 1
			// The '\r' may have arrived with the previous view.
			if len(dst) > n0 && dst[len(dst)-1] == '\r' {
				dst = dst[:len(dst)-1]
			}
			return dst, nil
		}
		dst = append(dst, chunk...)
		r.pos = len(r.buf)
	}
}

// Line returns the rest of the current line without its terminator.
func (r *Reader) Line() (string, error) {
	line, err := r.AppendLine(r.line[:0])
	r.line = line[:0]
	if err != nil {
		return "", err
	}
	return string(line), nil
}

// ReadLine appends the rest of the current line to sb and reports whether
// a line was read. It returns false at end of stream, leaving sb
// unmodified, and on source failure, which is then available from Err.
func (r *Reader) ReadLine(sb *strings.Builder) bool {
	line, err := r.AppendLine(r.line[:0])
	r.line = line[:0]
	if err != nil {
		return false
	}
	sb.Write(line)
	return true
}
