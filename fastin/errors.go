package fastin

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedToken is wrapped by TokenError in Strict mode for tokens
	// that are not well-formed decimal numbers.
	ErrMalformedToken = errors.New("fastin: malformed token")

	// ErrRange is wrapped by TokenError in Strict mode for values that do
	// not fit the requested type.
	ErrRange = errors.New("fastin: value out of range")

	// ErrSource matches every SourceError under errors.Is.
	ErrSource = errors.New("fastin: source failure")
)

// TokenError reports a token rejected in Strict mode. The token has been
// consumed; reading can continue with the next one.
type TokenError struct {
	Kind   Kind
	Token  string // Up to the first 64 bytes of the token
	Reason string
	Err    error // ErrMalformedToken or ErrRange
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("fastin: %s token %q: %s", e.Kind, e.Token, e.Reason)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// SourceError reports an I/O failure of the underlying source. It is never
// used for a clean end of stream, which is io.EOF.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string {
	return "fastin: read source: " + e.Err.Error()
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSource) hold for any SourceError.
func (e *SourceError) Is(target error) bool {
	return target == ErrSource
}
