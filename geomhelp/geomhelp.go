package geomhelp

import (
	"strings"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/wkt"
	"github.com/muesli/reflow/truncate"
)

// WktMustEncode encodes g as WKT, cut off at maxLen characters (0 is unlimited).
func WktMustEncode(g geom.Geometry, maxLen uint) string {
	if maxLen == 0 {
		return wkt.MustEncode(g)
	}
	return truncate.StringWithTail(wkt.MustEncode(g), maxLen, "...")
}

// WktMustEncodeSlice encodes every geometry on a line of its own.
func WktMustEncodeSlice[G geom.Geometry](geoms []G, maxLen uint) string {
	var sb strings.Builder
	for i := range geoms {
		sb.WriteString(WktMustEncode(geoms[i], maxLen))
		sb.WriteString("\n")
	}
	return sb.String()
}

// ExtentToPolygon turns an extent into a closed ring, for drawing it.
func ExtentToPolygon(e geom.Extent) geom.Polygon {
	return geom.Polygon{{
		{e.MinX(), e.MinY()},
		{e.MaxX(), e.MinY()},
		{e.MaxX(), e.MaxY()},
		{e.MinX(), e.MaxY()},
	}}
}
