package intgeom

// Extent represents the minx, miny, maxx and maxy.
// maxX and maxY are exclusive.
type Extent [4]M

// MaxX is the larger of the x values.
func (e Extent) MaxX() M {
	return e[2]
}

// MinX  is the smaller of the x values.
func (e Extent) MinX() M {
	return e[0]
}

// MaxY is the larger of the y values.
func (e Extent) MaxY() M {
	return e[3]
}

// MinY is the smaller of the y values.
func (e Extent) MinY() M {
	return e[1]
}

// XSpan is the distance of the Extent in X
func (e Extent) XSpan() M {
	return e[2] - e[0]
}

// YSpan is the distance of the Extent in Y
func (e Extent) YSpan() M {
	return e[3] - e[1]
}

// Min returns the (minx, miny) corner.
func (e Extent) Min() Point {
	return Point{e[0], e[1]}
}

// ContainsPoint checks whether a point is contained in the extent,
// including the left and top edges but not the right and bottom edges.
func (e Extent) ContainsPoint(p Point) bool {
	return e.MinX() <= p[0] && p[0] < e.MaxX() &&
		e.MinY() <= p[1] && p[1] < e.MaxY()
}

// Grow returns the extent enlarged by b on every side.
func (e Extent) Grow(b M) Extent {
	return Extent{e[0] - b, e[1] - b, e[2] + b, e[3] + b}
}

// Quadrant returns one of the four equal parts of the extent.
// east and south select the right and lower halves.
func (e Extent) Quadrant(east, south bool) Extent {
	halfX := e.XSpan() / 2
	halfY := e.YSpan() / 2
	q := Extent{e[0], e[1], e[0] + halfX, e[1] + halfY}
	if east {
		q[0], q[2] = e[0]+halfX, e[2]
	}
	if south {
		q[1], q[3] = e[1]+halfY, e[3]
	}
	return q
}
