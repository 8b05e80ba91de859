package morton

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToZ(t *testing.T) {
	tests := []struct {
		x, y uint
		want Z
		ok   bool
	}{
		{x: 0, y: 0, want: 0, ok: true},
		{x: 1, y: 0, want: 1, ok: true},
		{x: 0, y: 1, want: 2, ok: true},
		{x: 1, y: 1, want: 3, ok: true},
		{x: 2, y: 0, want: 4, ok: true},
		{x: 3, y: 5, want: 0b100111, ok: true},
		{x: math.MaxUint32, y: math.MaxUint32, want: math.MaxUint64, ok: true},
		{x: math.MaxUint32 + 1, y: 0, want: 0, ok: false},
	}
	for _, tt := range tests {
		got, ok := ToZ(tt.x, tt.y)
		assert.Equalf(t, tt.ok, ok, "ToZ(%d, %d) ok", tt.x, tt.y)
		if ok {
			assert.Equalf(t, tt.want, got, "ToZ(%d, %d)", tt.x, tt.y)
		}
	}
}

func TestFromZRoundTrip(t *testing.T) {
	for _, xy := range [][2]uint{{0, 0}, {1, 2}, {255, 0}, {12345, 67890}, {math.MaxUint32, 7}} {
		x, y := FromZ(MustToZ(xy[0], xy[1]))
		assert.Equal(t, xy[0], x)
		assert.Equal(t, xy[1], y)
	}
}

func TestChild(t *testing.T) {
	parent := MustToZ(3, 5)
	for q := Q(0); q < 4; q++ {
		child := Child(parent, q)
		x, y := FromZ(child)
		assert.Equal(t, 6+uint(q&East), x)
		assert.Equal(t, 10+uint((q&South)>>1), y)
	}
}

func TestMustToZPanics(t *testing.T) {
	assert.Panics(t, func() { MustToZ(math.MaxUint32+1, 0) })
}
