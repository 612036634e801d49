package geom

import "math"

// Point is a single vertex. As a value it is also what curve accessors
// return; as *Point it is a Geometry that can live in a MultiPoint.
type Point struct {
	node
	typ        Type
	x, y, z, m float64
}

func XY(x, y float64) Point { return Point{typ: PointType, x: x, y: y} }

func XYZ(x, y, z float64) Point { return Point{typ: PointType | FlagZ, x: x, y: y, z: z} }

func XYM(x, y, m float64) Point { return Point{typ: PointType | FlagM, x: x, y: y, m: m} }

func XYZM(x, y, z, m float64) Point {
	return Point{typ: PointType | FlagZ | FlagM, x: x, y: y, z: z, m: m}
}

// NewPoint returns p as a standalone geometry.
func NewPoint(p Point) *Point {
	p.parent = nil
	if p.typ == Unknown {
		p.typ = PointType
	}
	return &p
}

func (p Point) X() float64 { return p.x }
func (p Point) Y() float64 { return p.y }

// Z is 0 when the point has no Z ordinate.
func (p Point) Z() float64 {
	if !p.typ.HasZ() {
		return 0
	}
	return p.z
}

// M is 0 when the point has no M ordinate.
func (p Point) M() float64 {
	if !p.typ.HasM() {
		return 0
	}
	return p.m
}

func (p Point) Is3D() bool      { return p.typ.HasZ() }
func (p Point) IsMeasure() bool { return p.typ.HasM() }

func (p *Point) SetX(x float64) { p.x = x; p.invalidate() }
func (p *Point) SetY(y float64) { p.y = y; p.invalidate() }

// SetZ is a no-op on a point without Z.
func (p *Point) SetZ(z float64) {
	if !p.typ.HasZ() {
		return
	}
	p.z = z
	p.invalidate()
}

// SetM is a no-op on a point without M.
func (p *Point) SetM(m float64) {
	if !p.typ.HasM() {
		return
	}
	p.m = m
	p.invalidate()
}

// Equal compares kind, flags and present ordinates with DoubleNear.
func (p Point) Equal(o Point) bool {
	if p.Type() != o.Type() {
		return false
	}
	if !DoubleNear(p.x, o.x) || !DoubleNear(p.y, o.y) {
		return false
	}
	if p.typ.HasZ() && !DoubleNear(p.z, o.z) {
		return false
	}
	if p.typ.HasM() && !DoubleNear(p.m, o.m) {
		return false
	}
	return true
}

// Distance is the planar distance to o.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.x-o.x, p.y-o.y)
}

func (p Point) Type() Type {
	if p.typ == Unknown {
		return PointType
	}
	return p.typ
}

// A point always has a position, so it is never empty.
func (p *Point) IsEmpty() bool       { return false }
func (p *Point) NumCoordinates() int { return 1 }

func (p *Point) BoundingBox() BBox {
	return BBox{MinX: p.x, MinY: p.y, MaxX: p.x, MaxY: p.y}
}

func (p *Point) CoordinateSequence() CoordinateSequence {
	return CoordinateSequence{{{p.value()}}}
}

// value strips the owner link.
func (p Point) value() Point {
	p.parent = nil
	p.typ = p.Type()
	return p
}

func (p *Point) Clone() Geometry {
	c := p.value()
	return &c
}

// Clear moves the point to the 2D origin.
// Clear zeroes the ordinates. An unowned point also goes back to 2D.
func (p *Point) Clear() {
	if !p.owned() {
		p.typ = PointType
	}
	p.x, p.y, p.z, p.m = 0, 0, 0, 0
	p.invalidate()
}

func (p *Point) Length() float64    { return 0 }
func (p *Point) Area() float64      { return 0 }
func (p *Point) Perimeter() float64 { return 0 }

func (p *Point) addZ(z float64) bool {
	if p.typ.HasZ() {
		return false
	}
	p.typ = p.Type().AddZ()
	p.z = z
	p.invalidate()
	return true
}

func (p *Point) addM(m float64) bool {
	if p.typ.HasM() {
		return false
	}
	p.typ = p.Type().AddM()
	p.m = m
	p.invalidate()
	return true
}

func (p *Point) dropZ() bool {
	if !p.typ.HasZ() {
		return false
	}
	p.typ = p.typ.DropZ()
	p.z = 0
	p.invalidate()
	return true
}

func (p *Point) dropM() bool {
	if !p.typ.HasM() {
		return false
	}
	p.typ = p.typ.DropM()
	p.m = 0
	p.invalidate()
	return true
}

func (p *Point) invalidate() { p.notifyOwner() }

func (p *Point) AddZValue(z float64) bool { return !p.owned() && p.addZ(z) }
func (p *Point) AddMValue(m float64) bool { return !p.owned() && p.addM(m) }
func (p *Point) DropZValue() bool         { return !p.owned() && p.dropZ() }
func (p *Point) DropMValue() bool         { return !p.owned() && p.dropM() }
