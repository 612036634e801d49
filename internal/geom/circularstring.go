package geom

import "math"

// CircularString is a run of circular arcs. Vertices 2k, 2k+1 and 2k+2
// are the start, a point on the arc, and the end of arc k.
type CircularString struct {
	curve
}

func NewCircularString(pts ...Point) *CircularString {
	c := &CircularString{}
	c.SetPoints(pts)
	return c
}

// CircularStringFromSequence takes ownership of s.
func CircularStringFromSequence(s Sequence) *CircularString {
	return &CircularString{curve: curve{seq: s}}
}

func (c *CircularString) Type() Type {
	return NewType(CircularStringType, c.seq.hasZ, c.seq.hasM)
}

func (c *CircularString) Clone() Geometry { return c.clone() }

func (c *CircularString) clone() *CircularString {
	return &CircularString{curve: curve{seq: c.seq.clone()}}
}

func (c *CircularString) Reversed() *CircularString {
	r := c.clone()
	r.seq.reverse()
	return r
}

// Length follows each arc; collinear triples count as straight chords.
func (c *CircularString) Length() float64 {
	xs, ys := c.seq.xs, c.seq.ys
	var l float64
	for i := 0; i+2 < len(xs); i += 2 {
		r, sweep, _, ok := arcSweep(xs[i], ys[i], xs[i+1], ys[i+1], xs[i+2], ys[i+2])
		if !ok {
			l += math.Hypot(xs[i+2]-xs[i], ys[i+2]-ys[i])
			continue
		}
		l += r * sweep
	}
	return l
}

// SumUpArea adds the circular segment between each arc and its chord to the
// chord shoelace term.
func (c *CircularString) SumUpArea() float64 {
	xs, ys := c.seq.xs, c.seq.ys
	var sum float64
	for i := 0; i+2 < len(xs); i += 2 {
		r, sweep, ccw, ok := arcSweep(xs[i], ys[i], xs[i+1], ys[i+1], xs[i+2], ys[i+2])
		sum += 0.5 * (xs[i]*ys[i+2] - ys[i]*xs[i+2])
		if !ok {
			continue
		}
		seg := r * r / 2 * (sweep - math.Sin(sweep))
		if ccw {
			sum += seg
		} else {
			sum -= seg
		}
	}
	return sum
}

// BoundingBox includes the points where an arc crosses the axes of its
// circle, so bulging arcs are covered.
func (c *CircularString) BoundingBox() BBox {
	return c.box.get(func() BBox {
		xs, ys := c.seq.xs, c.seq.ys
		b := EmptyBBox()
		for i := range xs {
			b.Extend(xs[i], ys[i])
		}
		for i := 0; i+2 < len(xs); i += 2 {
			extendArc(&b, xs[i], ys[i], xs[i+1], ys[i+1], xs[i+2], ys[i+2])
		}
		return b
	})
}

func extendArc(b *BBox, x1, y1, x2, y2, x3, y3 float64) {
	r, sweep, ccw, ok := arcSweep(x1, y1, x2, y2, x3, y3)
	if !ok {
		return
	}
	var cx, cy float64
	if sweep == 2*math.Pi {
		cx, cy = (x1+x2)/2, (y1+y2)/2
	} else {
		cx, cy, _, _ = circleCenter(x1, y1, x2, y2, x3, y3)
	}
	a1 := math.Atan2(y1-cy, x1-cx)
	for k := 0; k < 4; k++ {
		a := float64(k) * math.Pi / 2
		var d float64
		if ccw {
			d = NormalizedAngle(a - a1)
		} else {
			d = NormalizedAngle(a1 - a)
		}
		if d <= sweep {
			b.Extend(cx+r*math.Cos(a), cy+r*math.Sin(a))
		}
	}
}
