// Package morton interleaves tile columns and rows into Z-order keys.
// Within one zoom level, the four children of the tile with key z
// have keys 4z+0 .. 4z+3, so a quadtree can be walked with shifts only.
package morton

import (
	"fmt"
	"math"
)

type Z = uint64

// Q is a quadrant index inside a parent tile:
//
//	|-------|
//	| 0 | 1 |
//	|-------|
//	| 2 | 3 |
//	|-------|
//
// bit 0 is set for the eastern half, bit 1 for the southern half (rows grow southward).
type Q = uint8

const (
	East  Q = 0b01
	South Q = 0b10
)

var (
	masks = [...]uint64{
		0x5555555555555555,
		0x3333333333333333,
		0x0F0F0F0F0F0F0F0F,
		0x00FF00FF00FF00FF,
		0x0000FFFF0000FFFF,
		0x00000000FFFFFFFF,
	}
	shifts = [...]uint{1, 2, 4, 8, 16}
)

func spread(v uint64) uint64 {
	v &= masks[5]
	for i := len(shifts) - 1; i >= 0; i-- {
		v = (v | (v << shifts[i])) & masks[i]
	}
	return v
}

func compact(v uint64) uint64 {
	v &= masks[0]
	for i := range shifts {
		v = (v | (v >> shifts[i])) & masks[i+1]
	}
	return v
}

// ToZ interleaves x (even bits) and y (odd bits). ok is false when either does not fit in 32 bits.
func ToZ(x, y uint) (z Z, ok bool) {
	ok = x <= math.MaxUint32 && y <= math.MaxUint32
	return spread(uint64(x)) | spread(uint64(y))<<1, ok
}

func MustToZ(x, y uint) Z {
	z, ok := ToZ(x, y)
	if !ok {
		panic(fmt.Errorf(`cannot make Z out of %v and %v`, x, y))
	}
	return z
}

func FromZ(z Z) (x, y uint) {
	return uint(compact(z)), uint(compact(z >> 1))
}

// Child returns the key of quadrant q of z, one level deeper.
func Child(z Z, q Q) Z {
	return z<<2 | Z(q&0b11)
}
