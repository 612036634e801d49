package geom

import "math"

// LineString is a run of straight segments.
type LineString struct {
	curve
}

// NewLineString builds a line from pts; the first point decides the
// ordinate flags.
func NewLineString(pts ...Point) *LineString {
	l := &LineString{}
	l.SetPoints(pts)
	return l
}

// LineStringFromSequence takes ownership of s, keeping its ordinate flags
// even when it is empty.
func LineStringFromSequence(s Sequence) *LineString {
	return &LineString{curve: curve{seq: s}}
}

func (l *LineString) Type() Type {
	return NewType(LineStringType, l.seq.hasZ, l.seq.hasM)
}

func (l *LineString) Clone() Geometry { return l.clone() }

func (l *LineString) clone() *LineString {
	return &LineString{curve: curve{seq: l.seq.clone()}}
}

// Length is the planar length; Z and M are ignored.
func (l *LineString) Length() float64 { return l.chordLength() }

func (l *LineString) SumUpArea() float64 { return l.shoelace() }

// Append adds the vertices of o. A first vertex of o equal to the current
// end point is skipped. The receiver keeps its ordinate flags, unless it
// was empty and unowned, in which case it takes those of o.
func (l *LineString) Append(o *LineString) {
	if o == nil || o.IsEmpty() {
		return
	}
	if l.IsEmpty() && !l.owned() {
		l.seq.setZ(o.seq.hasZ, 0)
		l.seq.setM(o.seq.hasM, 0)
	}
	start := 0
	if n := l.seq.Len(); n > 0 &&
		DoubleNear(l.seq.xs[n-1], o.seq.xs[0]) && DoubleNear(l.seq.ys[n-1], o.seq.ys[0]) {
		start = 1
	}
	for i := start; i < o.seq.Len(); i++ {
		l.seq.Append(o.seq.Point(i))
	}
	l.invalidate()
}

// Reversed returns a copy with the vertex order reversed.
func (l *LineString) Reversed() *LineString {
	c := l.clone()
	c.seq.reverse()
	return c
}

// ClosestSegment finds the segment nearest to p. It returns the squared
// planar distance, the closest point on that segment, the index of the
// vertex ending the segment and whether p lies left of the segment.
// A single vertex line reports the distance to that vertex and index 1; an
// empty line reports math.MaxFloat64 and index 0.
func (l *LineString) ClosestSegment(p Point, eps float64) (sqrDist float64, segPt Point, vertexAfter int, leftOf bool) {
	n := l.seq.Len()
	switch n {
	case 0:
		return math.MaxFloat64, Point{}, 0, false
	case 1:
		q := l.seq.Point(0)
		dx, dy := p.X()-q.X(), p.Y()-q.Y()
		return dx*dx + dy*dy, q, 1, false
	}
	sqrDist = math.MaxFloat64
	xs, ys := l.seq.xs, l.seq.ys
	for i := 1; i < n; i++ {
		d, cx, cy := SqrDistToSegment(p.X(), p.Y(), xs[i-1], ys[i-1], xs[i], ys[i], eps)
		if d < sqrDist {
			sqrDist = d
			segPt = XY(cx, cy)
			vertexAfter = i
			leftOf = leftOfLine(p.X(), p.Y(), xs[i-1], ys[i-1], xs[i], ys[i]) < 0
		}
	}
	return sqrDist, segPt, vertexAfter, leftOf
}

// VertexAngle is the bearing at vertex i in radians clockwise from north.
// Interior vertices average the adjacent segments. On a closed line both
// end vertices wrap around the ring.
func (l *LineString) VertexAngle(i int) float64 {
	n := l.seq.Len()
	if n < 2 || i < 0 || i >= n {
		return 0
	}
	xs, ys := l.seq.xs, l.seq.ys
	if i == 0 || i == n-1 {
		switch {
		case l.IsClosed() && n > 2:
			return averageAngle3(xs[n-2], ys[n-2], xs[0], ys[0], xs[1], ys[1])
		case i == 0:
			return LineAngle(xs[0], ys[0], xs[1], ys[1])
		default:
			return LineAngle(xs[n-2], ys[n-2], xs[n-1], ys[n-1])
		}
	}
	return averageAngle3(xs[i-1], ys[i-1], xs[i], ys[i], xs[i+1], ys[i+1])
}

// Centroid is the length-weighted mean of the segment midpoints. A line
// with zero length falls back to the vertex mean.
func (l *LineString) Centroid() Point {
	n := l.seq.Len()
	if n == 0 {
		return XY(0, 0)
	}
	xs, ys := l.seq.xs, l.seq.ys
	var sx, sy, total float64
	for i := 1; i < n; i++ {
		d := math.Hypot(xs[i]-xs[i-1], ys[i]-ys[i-1])
		sx += d * (xs[i] + xs[i-1]) / 2
		sy += d * (ys[i] + ys[i-1]) / 2
		total += d
	}
	if total == 0 {
		for i := range xs {
			sx += xs[i]
			sy += ys[i]
		}
		return XY(sx/float64(n), sy/float64(n))
	}
	return XY(sx/total, sy/total)
}
