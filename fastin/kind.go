package fastin

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"golang.org/x/exp/constraints"
)

// Number is the set of scalar types Next can decode.
type Number interface {
	constraints.Integer | constraints.Float
}

// Class is the numeric family of a Kind.
type Class uint8

const (
	Signed   Class = 0
	Unsigned Class = 1
	Float    Class = 2
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case Signed:
		return "signed"
	case Unsigned:
		return "unsigned"
	case Float:
		return "float"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// Kind describes a decodable numeric type: its class and bit width.
type Kind struct {
	Class Class
	Bits  int
}

// Predefined kinds.
var (
	KindInt8    = Kind{Signed, 8}
	KindInt16   = Kind{Signed, 16}
	KindInt32   = Kind{Signed, 32}
	KindInt64   = Kind{Signed, 64}
	KindUint8   = Kind{Unsigned, 8}
	KindUint16  = Kind{Unsigned, 16}
	KindUint32  = Kind{Unsigned, 32}
	KindUint64  = Kind{Unsigned, 64}
	KindFloat32 = Kind{Float, 32}
	KindFloat64 = Kind{Float, 64}
)

// KindOf returns the Kind of T. Named types report their underlying kind.
func KindOf[T Number]() Kind {
	switch any(T(0)).(type) {
	case int8:
		return KindInt8
	case int16:
		return KindInt16
	case int32:
		return KindInt32
	case int64:
		return KindInt64
	case int:
		return Kind{Signed, strconv.IntSize}
	case uint8:
		return KindUint8
	case uint16:
		return KindUint16
	case uint32:
		return KindUint32
	case uint64:
		return KindUint64
	case uint, uintptr:
		return Kind{Unsigned, strconv.IntSize}
	case float32:
		return KindFloat32
	case float64:
		return KindFloat64
	}
	return kindOfNamed(reflect.TypeOf((*T)(nil)).Elem())
}

func kindOfNamed(t reflect.Type) Kind {
	switch t.Kind() {
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int64:
		return KindInt64
	case reflect.Int:
		return Kind{Signed, strconv.IntSize}
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Uint64:
		return KindUint64
	case reflect.Uint, reflect.Uintptr:
		return Kind{Unsigned, strconv.IntSize}
	case reflect.Float32:
		return KindFloat32
	default:
		return KindFloat64
	}
}

// String returns the Go type name of the kind, e.g. "int32" or "float64".
func (k Kind) String() string {
	switch k.Class {
	case Signed:
		return "int" + strconv.Itoa(k.Bits)
	case Unsigned:
		return "uint" + strconv.Itoa(k.Bits)
	case Float:
		return "float" + strconv.Itoa(k.Bits)
	default:
		return fmt.Sprintf("unknown(%d/%d)", k.Class, k.Bits)
	}
}

// ParseKind parses a Go numeric type name. "int" and "uint" resolve to the
// platform width.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "int":
		return Kind{Signed, strconv.IntSize}, true
	case "uint", "usize":
		return Kind{Unsigned, strconv.IntSize}, true
	case "int8", "i8":
		return KindInt8, true
	case "int16", "i16":
		return KindInt16, true
	case "int32", "i32":
		return KindInt32, true
	case "int64", "i64":
		return KindInt64, true
	case "uint8", "u8":
		return KindUint8, true
	case "uint16", "u16":
		return KindUint16, true
	case "uint32", "u32":
		return KindUint32, true
	case "uint64", "u64":
		return KindUint64, true
	case "float32", "f32":
		return KindFloat32, true
	case "float64", "f64":
		return KindFloat64, true
	default:
		return Kind{}, false
	}
}

// maxMagnitude is the largest accumulated digit value representable by k,
// for the given sign. Floats have no integer bound.
func (k Kind) maxMagnitude(neg bool) uint64 {
	switch k.Class {
	case Signed:
		limit := uint64(1) << (k.Bits - 1)
		if neg {
			return limit
		}
		return limit - 1
	case Unsigned:
		if k.Bits >= 64 {
			return math.MaxUint64
		}
		return uint64(1)<<k.Bits - 1
	default:
		return math.MaxUint64
	}
}
