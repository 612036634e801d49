package geom

// CompoundCurve chains LineString and CircularString segments. Each segment
// starts at the end vertex of the one before it; the shared vertex is
// stored in both segments but counted once.
type CompoundCurve struct {
	node
	hasZ, hasM bool
	curves     []Curve
	box        lazy[BBox]
}

func NewCompoundCurve(parts ...Curve) *CompoundCurve {
	c := &CompoundCurve{}
	for _, p := range parts {
		c.AddCurve(p)
	}
	return c
}

// NewCompoundCurveZM returns an empty compound curve with the given flags.
func NewCompoundCurveZM(hasZ, hasM bool) *CompoundCurve {
	return &CompoundCurve{hasZ: hasZ, hasM: hasM}
}

func (c *CompoundCurve) invalidate() {
	c.box.reset()
	c.notifyOwner()
}

func (c *CompoundCurve) Type() Type {
	return NewType(CompoundCurveType, c.hasZ, c.hasM)
}

// AddCurve appends a LineString or CircularString segment. The first
// segment of an empty unowned compound sets its ordinate flags; other
// segments are converted to match.
func (c *CompoundCurve) AddCurve(part Curve) bool {
	switch part.(type) {
	case *LineString, *CircularString:
	default:
		return false
	}
	if part.owned() {
		return false
	}
	if len(c.curves) == 0 && !c.owned() {
		t := part.Type()
		c.hasZ, c.hasM = t.HasZ(), t.HasM()
	} else {
		matchOrdinates(part, c.hasZ, c.hasM)
	}
	part.setOwner(c)
	c.curves = append(c.curves, part)
	c.invalidate()
	return true
}

// RemoveCurve detaches segment i.
func (c *CompoundCurve) RemoveCurve(i int) bool {
	if i < 0 || i >= len(c.curves) {
		return false
	}
	c.curves[i].setOwner(nil)
	c.curves = append(c.curves[:i], c.curves[i+1:]...)
	c.invalidate()
	return true
}

func (c *CompoundCurve) NumCurves() int { return len(c.curves) }

// CurveAt returns segment i, or nil when out of range.
func (c *CompoundCurve) CurveAt(i int) Curve {
	if i < 0 || i >= len(c.curves) {
		return nil
	}
	return c.curves[i]
}

func (c *CompoundCurve) NumPoints() int {
	n := 0
	for i, p := range c.curves {
		k := p.NumPoints()
		if i > 0 && k > 0 {
			k--
		}
		n += k
	}
	return n
}

func (c *CompoundCurve) NumCoordinates() int { return c.NumPoints() }

func (c *CompoundCurve) IsEmpty() bool { return c.NumPoints() == 0 }

func (c *CompoundCurve) Points() []Point {
	var out []Point
	for i, p := range c.curves {
		pts := p.Points()
		if i > 0 && len(pts) > 0 {
			pts = pts[1:]
		}
		out = append(out, pts...)
	}
	return out
}

// PointAt returns the i-th distinct vertex, or the 2D origin when out of
// range.
func (c *CompoundCurve) PointAt(i int) Point {
	if i < 0 {
		return XY(0, 0)
	}
	for k, p := range c.curves {
		off := 0
		if k > 0 {
			off = 1
		}
		n := p.NumPoints() - off
		if n < 0 {
			n = 0
		}
		if i < n {
			return p.PointAt(i + off)
		}
		i -= n
	}
	return XY(0, 0)
}

func (c *CompoundCurve) StartPoint() Point { return c.PointAt(0) }
func (c *CompoundCurve) EndPoint() Point   { return c.PointAt(c.NumPoints() - 1) }

func (c *CompoundCurve) IsClosed() bool {
	if c.NumPoints() == 0 {
		return false
	}
	s, e := c.StartPoint(), c.EndPoint()
	return DoubleNear(s.X(), e.X()) && DoubleNear(s.Y(), e.Y())
}

func (c *CompoundCurve) BoundingBox() BBox {
	return c.box.get(func() BBox {
		b := EmptyBBox()
		for _, p := range c.curves {
			b = b.Union(p.BoundingBox())
		}
		return b
	})
}

func (c *CompoundCurve) CoordinateSequence() CoordinateSequence {
	return CoordinateSequence{{c.Points()}}
}

func (c *CompoundCurve) Clone() Geometry {
	out := &CompoundCurve{hasZ: c.hasZ, hasM: c.hasM}
	for _, p := range c.curves {
		cp := p.Clone().(Curve)
		cp.setOwner(out)
		out.curves = append(out.curves, cp)
	}
	return out
}

func (c *CompoundCurve) Clear() {
	for _, p := range c.curves {
		p.setOwner(nil)
	}
	c.curves = nil
	if !c.owned() {
		c.hasZ, c.hasM = false, false
	}
	c.invalidate()
}

func (c *CompoundCurve) Length() float64 {
	var l float64
	for _, p := range c.curves {
		l += p.Length()
	}
	return l
}

func (c *CompoundCurve) SumUpArea() float64 {
	var s float64
	for _, p := range c.curves {
		s += p.SumUpArea()
	}
	return s
}

func (c *CompoundCurve) Area() float64      { return 0 }
func (c *CompoundCurve) Perimeter() float64 { return 0 }

func (c *CompoundCurve) addZ(z float64) bool {
	if c.hasZ {
		return false
	}
	c.hasZ = true
	for _, p := range c.curves {
		p.addZ(z)
	}
	c.invalidate()
	return true
}

func (c *CompoundCurve) addM(m float64) bool {
	if c.hasM {
		return false
	}
	c.hasM = true
	for _, p := range c.curves {
		p.addM(m)
	}
	c.invalidate()
	return true
}

func (c *CompoundCurve) dropZ() bool {
	if !c.hasZ {
		return false
	}
	c.hasZ = false
	for _, p := range c.curves {
		p.dropZ()
	}
	c.invalidate()
	return true
}

func (c *CompoundCurve) dropM() bool {
	if !c.hasM {
		return false
	}
	c.hasM = false
	for _, p := range c.curves {
		p.dropM()
	}
	c.invalidate()
	return true
}

func (c *CompoundCurve) AddZValue(z float64) bool { return !c.owned() && c.addZ(z) }
func (c *CompoundCurve) AddMValue(m float64) bool { return !c.owned() && c.addM(m) }
func (c *CompoundCurve) DropZValue() bool         { return !c.owned() && c.dropZ() }
func (c *CompoundCurve) DropMValue() bool         { return !c.owned() && c.dropM() }
