package fastin

import (
	"fmt"
	"strconv"
)

// Value is a decoded number whose type is only known at run time.
// Exactly one of Int, Uint or Float is meaningful, chosen by Kind.Class.
type Value struct {
	Kind  Kind
	Int   int64
	Uint  uint64
	Float float64
}

// AppendText appends the decimal form of v to dst.
func (v Value) AppendText(dst []byte) []byte {
	switch v.Kind.Class {
	case Signed:
		return strconv.AppendInt(dst, v.Int, 10)
	case Unsigned:
		return strconv.AppendUint(dst, v.Uint, 10)
	default:
		return strconv.AppendFloat(dst, v.Float, 'g', -1, v.Kind.Bits)
	}
}

// String returns the decimal form of v.
func (v Value) String() string {
	return string(v.AppendText(nil))
}

// Decode reads the next token as kind k. It is the run-time counterpart
// of Next for callers that pick the type from configuration.
func (r *Reader) Decode(k Kind) (Value, error) {
	switch k {
	case KindInt8:
		return decodeAs[int8](r)
	case KindInt16:
		return decodeAs[int16](r)
	case KindInt32:
		return decodeAs[int32](r)
	case KindInt64:
		return decodeAs[int64](r)
	case KindUint8:
		return decodeAs[uint8](r)
	case KindUint16:
		return decodeAs[uint16](r)
	case KindUint32:
		return decodeAs[uint32](r)
	case KindUint64:
		return decodeAs[uint64](r)
	case KindFloat32:
		return decodeAs[float32](r)
	case KindFloat64:
		return decodeAs[float64](r)
	default:
		return Value{Kind: k}, fmt.Errorf("fastin: unsupported kind %s", k)
	}
}

func decodeAs[T Number](r *Reader) (Value, error) {
	v, err := Next[T](r)
	val := Value{Kind: KindOf[T]()}
	switch val.Kind.Class {
	case Signed:
		val.Int = int64(v)
	case Unsigned:
		val.Uint = uint64(v)
	default:
		val.Float = float64(v)
	}
	return val, err
}
