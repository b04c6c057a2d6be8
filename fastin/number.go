package fastin

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Reasons a token is rejected in Strict mode.
const (
	reasonUnexpected  = "unexpected byte"
	reasonSigned      = "sign on unsigned value"
	reasonNoDigits    = "no digits"
	reasonExpDigits   = "missing exponent digits"
	reasonOutOfRange  = "out of range"
)

// maxExp caps the accumulated exponent; anything larger is out of range
// for every float kind anyway.
const maxExp = 1 << 20

// Powers of ten exactly representable as float64.
var pow10 = [...]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10,
	1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19, 1e20,
	1e21, 1e22,
}

// number is a scanned numeric token awaiting conversion.
type number struct {
	mant     uint64 // Decimal digits accumulated, point ignored
	scale    int    // Digits after the point
	digits   int    // Mantissa digits
	n        int    // Token length in bytes
	expAt    int    // Offset of 'e'/'E', or -1
	expN     int    // Exponent digits
	exp      int    // Exponent value, capped at maxExp
	dropped  int    // Integer digits left out of mant once it is full
	neg      bool
	frac     bool
	expNeg   bool
	overflow bool // mant wrapped, or for floats stopped accumulating

	reason string // First rejection, empty if well-formed
	bad    byte
}

func (num *number) reject(reason string, c byte) {
	if num.reason == "" {
		num.reason = reason
		num.bad = c
	}
}

// Next decodes the next token as a T.
//
// Leading whitespace is skipped. The token is decoded in place; when it
// straddles a refill the accumulated state carries over. A leading '-'
// negates signed and float values, a '.' starts the fraction of a float
// and an 'e' exponent is accepted for floats.
//
// It returns (0, io.EOF) when the stream ends before a token starts and
// (0, *SourceError) on I/O failure. In Strict mode a malformed or
// out-of-range token yields a *TokenError; in Fast mode stray bytes are
// skipped and integer overflow wraps.
func Next[T Number](r *Reader) (T, error) {
	k := KindOf[T]()
	num, err := r.scanNumber(k)
	if err != nil {
		return 0, r.note(err)
	}
	v, err := convert[T](r, k, &num)
	return v, r.note(err)
}

func (r *Reader) scanNumber(k Kind) (number, error) {
	num := number{expAt: -1}
	if err := r.skipSpace(); err != nil {
		return num, err
	}

	isFloat := k.Class == Float
	for {
		buf := r.buf
		i := r.pos
		for ; i < len(buf); i++ {
			c := buf[i]
			if c <= ' ' {
				break
			}
			if num.n < scratchSize {
				r.scratch[num.n] = c
			}

			switch {
			case c >= '0' && c <= '9':
				if num.expAt >= 0 {
					num.expN++
					if num.exp < maxExp {
						num.exp = num.exp*10 + int(c-'0')
					}
					break
				}
				if num.frac && !isFloat {
					// Integer kinds truncate the fraction.
					break
				}
				d := uint64(c - '0')
				num.digits++
				if num.overflow && isFloat || num.mant > (math.MaxUint64-d)/10 {
					num.overflow = true
					if isFloat {
						// mant is full; later digits
						// only shift the decimal exponent.
						if !num.frac {
							num.dropped++
						}
						break
					}
				}
				num.mant = num.mant*10 + d
				if num.frac {
					num.scale++
				}
			case c == '-' || c == '+':
				switch {
				case num.n == 0 && c == '-' && k.Class == Unsigned:
					num.reject(reasonSigned, c)
				case num.n == 0:
					num.neg = c == '-'
				case num.expAt >= 0 && num.n == num.expAt+1:
					num.expNeg = c == '-'
				default:
					num.reject(reasonUnexpected, c)
				}
			case c == '.' && !num.frac && num.expAt < 0:
				num.frac = true
				if !isFloat {
					num.reject(reasonUnexpected, c)
				}
			case (c == 'e' || c == 'E') && isFloat && num.expAt < 0 && num.digits > 0:
				num.expAt = num.n
			default:
				num.reject(reasonUnexpected, c)
			}
			num.n++
		}
		r.pos = i
		if i < len(buf) {
			break
		}
		// The token touched the end of the view; it may continue.
		if err := r.refill(); err != nil {
			if err == io.EOF {
				break
			}
			return num, err
		}
	}

	if num.digits == 0 {
		num.reject(reasonNoDigits, 0)
	} else if num.expAt >= 0 && num.expN == 0 {
		num.reject(reasonExpDigits, 0)
	}
	return num, nil
}

func convert[T Number](r *Reader, k Kind, num *number) (T, error) {
	if r.mode == Strict {
		if num.reason != "" {
			return 0, r.tokenError(k, num, ErrMalformedToken)
		}
		if k.Class != Float && (num.overflow || num.mant > k.maxMagnitude(num.neg)) {
			num.reason = reasonOutOfRange
			return 0, r.tokenError(k, num, ErrRange)
		}
	}

	switch k.Class {
	case Signed:
		v := int64(num.mant)
		if num.neg {
			v = -v
		}
		return T(v), nil
	case Unsigned:
		return T(num.mant), nil
	default:
		f, err := r.decodeFloat(k, num)
		return T(f), err
	}
}

// decodeFloat divides the digit accumulator by 10^scale. Within float64's
// exact range that is a single correctly rounded operation. Otherwise the
// buffered token goes through strconv, or, for tokens longer than the
// scratch buffer, its leading significant digits and decimal exponent do.
func (r *Reader) decodeFloat(k Kind, num *number) (float64, error) {
	if num.expAt < 0 && !num.overflow && num.mant < 1<<53 && num.scale < len(pow10) {
		f := float64(num.mant)
		if num.scale > 0 {
			f /= pow10[num.scale]
		}
		if num.neg {
			f = -f
		}
		return f, nil
	}

	var s []byte
	if num.n <= scratchSize && num.reason == "" {
		s = r.scratch[:num.n]
	} else {
		s = num.compact(r.digits[:0])
	}
	f, err := strconv.ParseFloat(string(s), k.Bits)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// Fall back to the accumulated digits.
		s = num.compact(r.digits[:0])
		f, err = strconv.ParseFloat(string(s), k.Bits)
	}
	if err != nil && r.mode == Strict {
		num.reason = reasonOutOfRange
		return 0, r.tokenError(k, num, ErrRange)
	}
	if s[0] != '-' && num.neg {
		f = -f
	}
	return f, nil
}

// compact appends the magnitude of num as "<mant>e<exp>".
func (num *number) compact(dst []byte) []byte {
	exp := num.dropped - num.scale
	if num.expNeg {
		exp -= num.exp
	} else {
		exp += num.exp
	}
	dst = strconv.AppendUint(dst, num.mant, 10)
	dst = append(dst, 'e')
	return strconv.AppendInt(dst, int64(exp), 10)
}

func (r *Reader) tokenError(k Kind, num *number, err error) error {
	reason := num.reason
	if num.bad != 0 {
		reason = fmt.Sprintf("%s %q", reason, num.bad)
	}
	return &TokenError{
		Kind:   k,
		Token:  string(r.scratch[:min(num.n, scratchSize)]),
		Reason: reason,
		Err:    err,
	}
}

// Slice reads n tokens into a new slice.
func Slice[T Number](r *Reader, n int) ([]T, error) {
	out := make([]T, n)
	read, err := ReadInto(r, out)
	return out[:read], err
}

// ReadInto fills dst with consecutive tokens and returns how many were
// decoded before the first error.
func ReadInto[T Number](r *Reader, dst []T) (int, error) {
	for i := range dst {
		v, err := Next[T](r)
		if err != nil {
			return i, err
		}
		dst[i] = v
	}
	return len(dst), nil
}

// Sticky accessors. Each returns the zero value on failure; the failure is
// available from Err, or EOF for end of stream.

func (r *Reader) Int() int {
	v, _ := Next[int](r)
	return v
}

func (r *Reader) Int8() int8 {
	v, _ := Next[int8](r)
	return v
}

func (r *Reader) Int16() int16 {
	v, _ := Next[int16](r)
	return v
}

func (r *Reader) Int32() int32 {
	v, _ := Next[int32](r)
	return v
}

func (r *Reader) Int64() int64 {
	v, _ := Next[int64](r)
	return v
}

func (r *Reader) Uint() uint {
	v, _ := Next[uint](r)
	return v
}

func (r *Reader) Uint8() uint8 {
	v, _ := Next[uint8](r)
	return v
}

func (r *Reader) Uint16() uint16 {
	v, _ := Next[uint16](r)
	return v
}

func (r *Reader) Uint32() uint32 {
	v, _ := Next[uint32](r)
	return v
}

func (r *Reader) Uint64() uint64 {
	v, _ := Next[uint64](r)
	return v
}

func (r *Reader) Float32() float32 {
	v, _ := Next[float32](r)
	return v
}

func (r *Reader) Float64() float64 {
	v, _ := Next[float64](r)
	return v
}
