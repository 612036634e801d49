package geom

import "math"

// Polygon is an exterior ring with optional holes. Rings are closed only
// by an explicit Close; the polygon does not close them on its own.
type Polygon struct {
	node
	hasZ, hasM bool
	exterior   *LineString
	interiors  []*LineString
	box        lazy[BBox]
}

// NewPolygon builds a polygon. Rings that are nil or already owned are
// skipped, and so are the holes when there is no exterior ring.
func NewPolygon(exterior *LineString, holes ...*LineString) *Polygon {
	p := &Polygon{}
	if exterior != nil {
		p.SetExteriorRing(exterior)
	}
	for _, h := range holes {
		p.AddInteriorRing(h)
	}
	return p
}

// NewPolygonZM returns an empty polygon with the given flags.
func NewPolygonZM(hasZ, hasM bool) *Polygon {
	return &Polygon{hasZ: hasZ, hasM: hasM}
}

func (p *Polygon) invalidate() {
	p.box.reset()
	p.notifyOwner()
}

func (p *Polygon) Type() Type { return NewType(PolygonType, p.hasZ, p.hasM) }

func (p *Polygon) ExteriorRing() *LineString { return p.exterior }

// SetExteriorRing replaces the shell. The polygon takes the ring's flags
// and converts the holes to match; an owned polygon converts the ring
// instead.
func (p *Polygon) SetExteriorRing(r *LineString) bool {
	if r == nil || r.owned() {
		return false
	}
	if p.exterior != nil {
		p.exterior.setOwner(nil)
	}
	if p.owned() {
		matchOrdinates(r, p.hasZ, p.hasM)
	} else {
		t := r.Type()
		p.hasZ, p.hasM = t.HasZ(), t.HasM()
		for _, h := range p.interiors {
			matchOrdinates(h, p.hasZ, p.hasM)
		}
	}
	r.setOwner(p)
	p.exterior = r
	p.invalidate()
	return true
}

func (p *Polygon) NumInteriorRings() int { return len(p.interiors) }

// InteriorRing returns hole i, or nil when out of range.
func (p *Polygon) InteriorRing(i int) *LineString {
	if i < 0 || i >= len(p.interiors) {
		return nil
	}
	return p.interiors[i]
}

// AddInteriorRing appends a hole, converting it to the polygon's flags. It
// fails while the polygon has no exterior ring.
func (p *Polygon) AddInteriorRing(r *LineString) bool {
	if r == nil || r.owned() || p.exterior == nil {
		return false
	}
	matchOrdinates(r, p.hasZ, p.hasM)
	r.setOwner(p)
	p.interiors = append(p.interiors, r)
	p.invalidate()
	return true
}

func (p *Polygon) RemoveInteriorRing(i int) bool {
	if i < 0 || i >= len(p.interiors) {
		return false
	}
	p.interiors[i].setOwner(nil)
	p.interiors = append(p.interiors[:i], p.interiors[i+1:]...)
	p.invalidate()
	return true
}

// Rings lists the exterior ring first, then the holes.
func (p *Polygon) Rings() []*LineString {
	if p.exterior == nil {
		return nil
	}
	return append([]*LineString{p.exterior}, p.interiors...)
}

func (p *Polygon) IsEmpty() bool { return p.exterior == nil || p.exterior.IsEmpty() }

func (p *Polygon) NumCoordinates() int {
	n := 0
	for _, r := range p.Rings() {
		n += r.NumPoints()
	}
	return n
}

func (p *Polygon) BoundingBox() BBox {
	return p.box.get(func() BBox {
		b := EmptyBBox()
		for _, r := range p.Rings() {
			b = b.Union(r.BoundingBox())
		}
		return b
	})
}

func (p *Polygon) CoordinateSequence() CoordinateSequence {
	part := make([][]Point, 0, len(p.interiors)+1)
	for _, r := range p.Rings() {
		part = append(part, r.Points())
	}
	return CoordinateSequence{part}
}

func (p *Polygon) Clone() Geometry {
	out := &Polygon{hasZ: p.hasZ, hasM: p.hasM}
	if p.exterior != nil {
		out.exterior = p.exterior.clone()
		out.exterior.setOwner(out)
	}
	for _, h := range p.interiors {
		c := h.clone()
		c.setOwner(out)
		out.interiors = append(out.interiors, c)
	}
	return out
}

func (p *Polygon) Clear() {
	for _, r := range p.Rings() {
		r.setOwner(nil)
	}
	p.exterior = nil
	p.interiors = nil
	if !p.owned() {
		p.hasZ, p.hasM = false, false
	}
	p.invalidate()
}

// Area is the shell area minus the hole areas, regardless of ring
// orientation.
func (p *Polygon) Area() float64 {
	if p.exterior == nil {
		return 0
	}
	a := math.Abs(p.exterior.SumUpArea())
	for _, h := range p.interiors {
		a -= math.Abs(h.SumUpArea())
	}
	return a
}

// Perimeter sums the lengths of all rings.
func (p *Polygon) Perimeter() float64 {
	var l float64
	for _, r := range p.Rings() {
		l += r.Length()
	}
	return l
}

func (p *Polygon) Length() float64 { return 0 }

func (p *Polygon) addZ(z float64) bool {
	if p.hasZ {
		return false
	}
	p.hasZ = true
	for _, r := range p.Rings() {
		r.addZ(z)
	}
	p.invalidate()
	return true
}

func (p *Polygon) addM(m float64) bool {
	if p.hasM {
		return false
	}
	p.hasM = true
	for _, r := range p.Rings() {
		r.addM(m)
	}
	p.invalidate()
	return true
}

func (p *Polygon) dropZ() bool {
	if !p.hasZ {
		return false
	}
	p.hasZ = false
	for _, r := range p.Rings() {
		r.dropZ()
	}
	p.invalidate()
	return true
}

func (p *Polygon) dropM() bool {
	if !p.hasM {
		return false
	}
	p.hasM = false
	for _, r := range p.Rings() {
		r.dropM()
	}
	p.invalidate()
	return true
}

func (p *Polygon) AddZValue(z float64) bool { return !p.owned() && p.addZ(z) }
func (p *Polygon) AddMValue(m float64) bool { return !p.owned() && p.addM(m) }
func (p *Polygon) DropZValue() bool         { return !p.owned() && p.dropZ() }
func (p *Polygon) DropMValue() bool         { return !p.owned() && p.dropM() }
