package geom

// GeometryCollection is an ordered list of exclusively owned children. Its
// type tag carries the concrete kind: GeometryCollection, MultiPoint,
// MultiLineString or MultiPolygon.
type GeometryCollection struct {
	node
	typ   Type
	geoms []Geometry
	box   lazy[BBox]
	seq   lazy[CoordinateSequence]
}

// NewCollection returns an empty collection of kind t including its
// ordinate flags. A non-collection kind yields a GeometryCollection.
func NewCollection(t Type) *GeometryCollection {
	if !t.IsMulti() {
		t = NewType(CollectionType, t.HasZ(), t.HasM())
	}
	return &GeometryCollection{typ: t}
}

func NewGeometryCollection(gs ...Geometry) *GeometryCollection {
	return newCollection(CollectionType, gs)
}

func NewMultiPoint(pts ...Point) *GeometryCollection {
	c := NewCollection(MultiPointType)
	for _, p := range pts {
		c.AddGeometry(NewPoint(p))
	}
	return c
}

func NewMultiLineString(ls ...*LineString) *GeometryCollection {
	gs := make([]Geometry, len(ls))
	for i, l := range ls {
		gs[i] = l
	}
	return newCollection(MultiLineStringType, gs)
}

func NewMultiPolygon(ps ...*Polygon) *GeometryCollection {
	gs := make([]Geometry, len(ps))
	for i, p := range ps {
		gs[i] = p
	}
	return newCollection(MultiPolygonType, gs)
}

func newCollection(t Type, gs []Geometry) *GeometryCollection {
	c := NewCollection(t)
	for _, g := range gs {
		c.AddGeometry(g)
	}
	return c
}

func (c *GeometryCollection) invalidate() {
	c.box.reset()
	c.seq.reset()
	c.notifyOwner()
}

func (c *GeometryCollection) Type() Type { return c.typ }

// accepts reports whether g may be a child of this kind of collection.
func (c *GeometryCollection) accepts(g Geometry) bool {
	want := c.typ.SingleType().Flat()
	return want == Unknown || g.Type().Flat() == want
}

// AddGeometry appends g. It fails for nil, for a child that already has an
// owner and for a kind the collection does not hold.
func (c *GeometryCollection) AddGeometry(g Geometry) bool {
	return c.InsertGeometry(g, len(c.geoms))
}

// InsertGeometry inserts g before index i, 0 <= i <= NumGeometries. The
// first child of an empty unowned collection sets its ordinate flags;
// children of multi kinds, and the first child of an owned collection, are
// converted to the collection's flags.
func (c *GeometryCollection) InsertGeometry(g Geometry, i int) bool {
	if g == nil || g.owned() || !c.accepts(g) {
		return false
	}
	if i < 0 || i > len(c.geoms) {
		return false
	}
	switch {
	case len(c.geoms) == 0 && !c.owned():
		t := g.Type()
		c.typ = NewType(c.typ, t.HasZ(), t.HasM())
	case len(c.geoms) == 0 || c.typ.Flat() != CollectionType:
		matchOrdinates(g, c.typ.HasZ(), c.typ.HasM())
	}
	g.setOwner(c)
	c.geoms = append(c.geoms, nil)
	copy(c.geoms[i+1:], c.geoms[i:])
	c.geoms[i] = g
	c.invalidate()
	return true
}

// RemoveGeometry detaches child i.
func (c *GeometryCollection) RemoveGeometry(i int) bool {
	if i < 0 || i >= len(c.geoms) {
		return false
	}
	c.geoms[i].setOwner(nil)
	c.geoms = append(c.geoms[:i], c.geoms[i+1:]...)
	c.invalidate()
	return true
}

func (c *GeometryCollection) NumGeometries() int { return len(c.geoms) }

// GeometryN returns child i, or nil when out of range.
func (c *GeometryCollection) GeometryN(i int) Geometry {
	if i < 0 || i >= len(c.geoms) {
		return nil
	}
	return c.geoms[i]
}

func (c *GeometryCollection) IsEmpty() bool {
	for _, g := range c.geoms {
		if !g.IsEmpty() {
			return false
		}
	}
	return true
}

func (c *GeometryCollection) NumCoordinates() int {
	n := 0
	for _, g := range c.geoms {
		n += g.NumCoordinates()
	}
	return n
}

func (c *GeometryCollection) BoundingBox() BBox {
	return c.box.get(func() BBox {
		b := EmptyBBox()
		for _, g := range c.geoms {
			b = b.Union(g.BoundingBox())
		}
		return b
	})
}

// CoordinateSequence concatenates the parts of every child. The result is
// cached; callers must not modify it.
func (c *GeometryCollection) CoordinateSequence() CoordinateSequence {
	return c.seq.get(func() CoordinateSequence {
		var out CoordinateSequence
		for _, g := range c.geoms {
			out = append(out, g.CoordinateSequence()...)
		}
		return out
	})
}

func (c *GeometryCollection) Clone() Geometry {
	out := &GeometryCollection{typ: c.typ}
	for _, g := range c.geoms {
		cg := g.Clone()
		cg.setOwner(out)
		out.geoms = append(out.geoms, cg)
	}
	return out
}

// Clear drops every child. The kind and flags are kept.
func (c *GeometryCollection) Clear() {
	for _, g := range c.geoms {
		g.setOwner(nil)
	}
	c.geoms = nil
	c.invalidate()
}

func (c *GeometryCollection) Length() float64 {
	var s float64
	for _, g := range c.geoms {
		s += g.Length()
	}
	return s
}

func (c *GeometryCollection) Area() float64 {
	var s float64
	for _, g := range c.geoms {
		s += g.Area()
	}
	return s
}

func (c *GeometryCollection) Perimeter() float64 {
	var s float64
	for _, g := range c.geoms {
		s += g.Perimeter()
	}
	return s
}

func (c *GeometryCollection) addZ(z float64) bool {
	if c.typ.HasZ() {
		return false
	}
	c.typ = c.typ.AddZ()
	for _, g := range c.geoms {
		g.addZ(z)
	}
	c.invalidate()
	return true
}

func (c *GeometryCollection) addM(m float64) bool {
	if c.typ.HasM() {
		return false
	}
	c.typ = c.typ.AddM()
	for _, g := range c.geoms {
		g.addM(m)
	}
	c.invalidate()
	return true
}

func (c *GeometryCollection) dropZ() bool {
	if !c.typ.HasZ() {
		return false
	}
	c.typ = c.typ.DropZ()
	for _, g := range c.geoms {
		g.dropZ()
	}
	c.invalidate()
	return true
}

func (c *GeometryCollection) dropM() bool {
	if !c.typ.HasM() {
		return false
	}
	c.typ = c.typ.DropM()
	for _, g := range c.geoms {
		g.dropM()
	}
	c.invalidate()
	return true
}

func (c *GeometryCollection) AddZValue(z float64) bool { return !c.owned() && c.addZ(z) }
func (c *GeometryCollection) AddMValue(m float64) bool { return !c.owned() && c.addM(m) }
func (c *GeometryCollection) DropZValue() bool         { return !c.owned() && c.dropZ() }
func (c *GeometryCollection) DropMValue() bool         { return !c.owned() && c.dropM() }
