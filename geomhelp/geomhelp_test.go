package geomhelp

import (
	"testing"

	"github.com/go-spatial/geom"
	"github.com/stretchr/testify/assert"
)

func TestWktMustEncode(t *testing.T) {
	tests := []struct {
		name   string
		g      geom.Geometry
		maxLen uint
		want   string
	}{
		{name: "point", g: geom.Point{1, 2}, want: "POINT (1 2)"},
		{name: "truncated", g: geom.Point{1, 2}, maxLen: 8, want: "POINT..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WktMustEncode(tt.g, tt.maxLen))
		})
	}
}

func TestWktMustEncodeSlice(t *testing.T) {
	got := WktMustEncodeSlice([]geom.Point{{1, 2}, {3, 4}}, 0)
	assert.Equal(t, "POINT (1 2)\nPOINT (3 4)\n", got)
}

func TestExtentToPolygon(t *testing.T) {
	got := ExtentToPolygon(geom.Extent{0, 1, 2, 3})
	assert.Equal(t, geom.Polygon{{{0, 1}, {2, 1}, {2, 3}, {0, 3}}}, got)
}
