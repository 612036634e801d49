package geom

import (
	"math"
)

// curve is the vertex storage and editing shared by LineString and
// CircularString. Its ordinate flags are those of seq.
type curve struct {
	node
	seq Sequence
	box lazy[BBox]
}

func (c *curve) invalidate() {
	c.box.reset()
	c.notifyOwner()
}

func (c *curve) NumPoints() int      { return c.seq.Len() }
func (c *curve) NumCoordinates() int { return c.seq.Len() }
func (c *curve) IsEmpty() bool       { return c.seq.Len() == 0 }

// PointAt returns vertex i. Out of range yields the 2D origin; bounds-check
// with NumPoints, or use Vertex.
func (c *curve) PointAt(i int) Point { return c.seq.Point(i) }

// Vertex is the strict form of PointAt.
func (c *curve) Vertex(i int) (Point, error) {
	if i < 0 || i >= c.seq.Len() {
		return Point{}, ErrIndex
	}
	return c.seq.Point(i), nil
}

func (c *curve) XAt(i int) float64 { return c.seq.XAt(i) }
func (c *curve) YAt(i int) float64 { return c.seq.YAt(i) }
func (c *curve) ZAt(i int) float64 { return c.seq.ZAt(i) }
func (c *curve) MAt(i int) float64 { return c.seq.MAt(i) }

func (c *curve) SetXAt(i int, v float64) { c.seq.SetXAt(i, v); c.invalidate() }
func (c *curve) SetYAt(i int, v float64) { c.seq.SetYAt(i, v); c.invalidate() }
func (c *curve) SetZAt(i int, v float64) { c.seq.SetZAt(i, v); c.invalidate() }
func (c *curve) SetMAt(i int, v float64) { c.seq.SetMAt(i, v); c.invalidate() }

func (c *curve) Points() []Point { return c.seq.Points() }

func (c *curve) StartPoint() Point { return c.seq.Point(0) }
func (c *curve) EndPoint() Point   { return c.seq.Point(c.seq.Len() - 1) }

// IsClosed compares the first and last vertex in 2D, plus Z when present.
func (c *curve) IsClosed() bool {
	n := c.seq.Len()
	if n == 0 {
		return false
	}
	if !DoubleNear(c.seq.xs[0], c.seq.xs[n-1]) || !DoubleNear(c.seq.ys[0], c.seq.ys[n-1]) {
		return false
	}
	return !c.seq.hasZ || DoubleNear(c.seq.zs[0], c.seq.zs[n-1])
}

// SetPoints replaces every vertex. The ordinate flags come from the first
// point, or stay as they are on an owned curve; points missing an ordinate
// get 0.
func (c *curve) SetPoints(pts []Point) {
	c.empty()
	if len(pts) > 0 && !c.owned() {
		c.seq.hasZ, c.seq.hasM = pts[0].Is3D(), pts[0].IsMeasure()
	}
	c.seq.Resize(len(pts))
	for i, p := range pts {
		c.seq.xs[i] = p.X()
		c.seq.ys[i] = p.Y()
		if c.seq.hasZ {
			c.seq.zs[i] = p.Z()
		}
		if c.seq.hasM {
			c.seq.ms[i] = p.M()
		}
	}
	c.invalidate()
}

// adoptFlags lets an empty unowned curve take its ordinate flags from p.
func (c *curve) adoptFlags(p Point) {
	if c.seq.Len() == 0 && !c.owned() {
		c.seq.setZ(p.Is3D(), 0)
		c.seq.setM(p.IsMeasure(), 0)
	}
}

// InsertVertex inserts p before vertex i, 0 <= i <= NumPoints.
func (c *curve) InsertVertex(i int, p Point) bool {
	if i < 0 || i > c.seq.Len() {
		return false
	}
	c.adoptFlags(p)
	c.seq.InsertAt(i, p)
	c.invalidate()
	return true
}

// MoveVertex sets the position of vertex i. Z and M change only when both
// the curve and p carry them.
func (c *curve) MoveVertex(i int, p Point) bool {
	if i < 0 || i >= c.seq.Len() {
		return false
	}
	c.seq.xs[i] = p.X()
	c.seq.ys[i] = p.Y()
	if c.seq.hasZ && p.Is3D() {
		c.seq.zs[i] = p.Z()
	}
	if c.seq.hasM && p.IsMeasure() {
		c.seq.ms[i] = p.M()
	}
	c.invalidate()
	return true
}

// DeleteVertex removes vertex i. A curve left with one vertex is cleared.
func (c *curve) DeleteVertex(i int) bool {
	if i < 0 || i >= c.seq.Len() {
		return false
	}
	c.seq.RemoveAt(i)
	if c.seq.Len() == 1 {
		c.empty()
	}
	c.invalidate()
	return true
}

// AddVertex appends p.
func (c *curve) AddVertex(p Point) {
	c.adoptFlags(p)
	c.seq.Append(p)
	c.invalidate()
}

func (c *curve) Clear() {
	c.empty()
	c.invalidate()
}

// empty drops every vertex. An unowned curve also goes back to 2D.
func (c *curve) empty() {
	if c.owned() {
		c.seq = NewSequence(c.seq.hasZ, c.seq.hasM)
		return
	}
	c.seq = Sequence{}
}

// Close appends the start point unless the curve is empty or closed.
func (c *curve) Close() {
	if c.seq.Len() == 0 || c.IsClosed() {
		return
	}
	c.AddVertex(c.StartPoint())
}

func (c *curve) BoundingBox() BBox {
	return c.box.get(func() BBox {
		b := EmptyBBox()
		for i := range c.seq.xs {
			b.Extend(c.seq.xs[i], c.seq.ys[i])
		}
		return b
	})
}

func (c *curve) CoordinateSequence() CoordinateSequence {
	return CoordinateSequence{{c.seq.Points()}}
}

func (c *curve) Area() float64      { return 0 }
func (c *curve) Perimeter() float64 { return 0 }

// AddZValue adds a Z ordinate set to z. Like the other ordinate changes it
// fails on a geometry that has an owner; change the owner instead.
func (c *curve) AddZValue(z float64) bool { return !c.owned() && c.addZ(z) }
func (c *curve) AddMValue(m float64) bool { return !c.owned() && c.addM(m) }
func (c *curve) DropZValue() bool         { return !c.owned() && c.dropZ() }
func (c *curve) DropMValue() bool         { return !c.owned() && c.dropM() }

func (c *curve) addZ(z float64) bool {
	if c.seq.hasZ {
		return false
	}
	c.seq.setZ(true, z)
	c.invalidate()
	return true
}

func (c *curve) addM(m float64) bool {
	if c.seq.hasM {
		return false
	}
	c.seq.setM(true, m)
	c.invalidate()
	return true
}

func (c *curve) dropZ() bool {
	if !c.seq.hasZ {
		return false
	}
	c.seq.setZ(false, 0)
	c.invalidate()
	return true
}

func (c *curve) dropM() bool {
	if !c.seq.hasM {
		return false
	}
	c.seq.setM(false, 0)
	c.invalidate()
	return true
}

func (c *curve) chordLength() float64 {
	var l float64
	for i := 1; i < c.seq.Len(); i++ {
		l += math.Hypot(c.seq.xs[i]-c.seq.xs[i-1], c.seq.ys[i]-c.seq.ys[i-1])
	}
	return l
}

// shoelace is the signed area term of the chords; counter-clockwise rings
// give a positive sum.
func (c *curve) shoelace() float64 {
	n := c.seq.Len()
	if n < 2 {
		return 0
	}
	var sum float64
	for i := 0; i < n-1; i++ {
		sum += 0.5 * (c.seq.xs[i]*c.seq.ys[i+1] - c.seq.ys[i]*c.seq.xs[i+1])
	}
	return sum
}
