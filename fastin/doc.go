// Package fastin implements a buffered, allocation-free token reader for
// whitespace-delimited input.
//
// fastin targets the input shapes of programming-contest and batch
// tooling: counts followed by lists of numbers, mixed with the occasional
// word or full line. It replaces fmt.Fscan with a single fused loop per
// call that skips whitespace, follows tokens across buffer refills and
// decodes digits straight from the buffer.
//
// # Tokens
//
// A token is a maximal run of bytes above 0x20 (space). Every byte at or
// below 0x20, including '\t', '\r' and '\n', separates tokens. No Unicode
// decoding is performed.
//
// # Reading
//
//	r := fastin.NewReader(os.Stdin)
//	n, err := fastin.Next[int](r)
//	xs, err := fastin.Slice[int64](r, n)
//	name, err := r.Text()
//	line, err := r.Line()
//
// The sticky accessors (Int, Float64, ...) drop the error and record it for
// Err, in the manner of bufio.Scanner.
//
// # End of stream
//
// Every read reports end of stream as io.EOF, so a literal 0 is never
// confused with exhausted input. Failures of the underlying source are
// reported as *SourceError and match ErrSource under errors.Is.
//
// # Modes
//
// Fast mode (the default) trusts its input: bytes that cannot be part of a
// number are skipped, integer overflow wraps, and a fraction on an integer
// token is truncated. Strict mode rejects such tokens with a *TokenError
// wrapping ErrMalformedToken or ErrRange.
//
// # Floats
//
// Float tokens accumulate their digits into an integer and divide once by
// 10^d, d being the number of digits after the point. This is exact up to
// 2^53 and 22 fractional digits; beyond that, and for tokens with an
// exponent, the token is handed to strconv.ParseFloat.
package fastin
