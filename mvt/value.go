package mvt

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/pdok/rastertile/mathhelp"
)

// Kind is the field of the Value message a property value is written to.
type Kind protowire.Number

// Only the numeric kinds a float64 sample can need.
const (
	KindDouble Kind = 3
	KindUint   Kind = 5
	KindSint   Kind = 6
)

// Value is a typed entry of a layer's value table. It is comparable, so equal
// numbers share one table entry.
type Value struct {
	Kind Kind
	bits uint64
}

// NewValue picks the narrowest encoding for f: integral numbers become
// sint (negative) or uint, everything else a double. Negative zero stays a
// double so its sign survives.
func NewValue(f float64) Value {
	switch {
	case !mathhelp.IsIntegral(f), f <= -(1 << 63), f >= 1<<64, f == 0 && math.Signbit(f):
		return Value{Kind: KindDouble, bits: math.Float64bits(f)}
	case f < 0:
		return Value{Kind: KindSint, bits: uint64(int64(f))}
	default:
		return Value{Kind: KindUint, bits: uint64(f)}
	}
}

func (v Value) encode() []byte {
	var b []byte
	num := protowire.Number(v.Kind)
	switch v.Kind {
	case KindDouble:
		b = protowire.AppendTag(b, num, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, v.bits)
	case KindSint:
		b = protowire.AppendTag(b, num, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(v.bits)))
	default:
		b = protowire.AppendTag(b, num, protowire.VarintType)
		b = protowire.AppendVarint(b, v.bits)
	}
	return b
}
