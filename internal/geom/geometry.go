// Package geom is the in-memory geometry model: points, curves, polygons and
// collections with optional Z and M ordinates.
//
// Geometry is a closed set of variants (*Point, *LineString, *CircularString,
// *CompoundCurve, *Polygon, *GeometryCollection); callers dispatch with a type
// switch. Values cache derived state (bounding box, flattened coordinates) and
// are not safe for concurrent use, including concurrent reads, because reads
// may fill the cache. Clone before handing a geometry to another goroutine.
//
// Children are owned by exactly one parent. Adding a geometry that already
// has an owner fails; Clone always produces an unowned deep copy. An owned
// child keeps the ordinate flags its owner gave it: Z and M are added or
// dropped through the owner, which converts all of its children at once.
package geom

import (
	"github.com/pkg/errors"
)

// ErrIndex is returned by the strict accessors for an out of range index.
var ErrIndex = errors.New("geom: index out of range")

// CoordinateSequence is the flattened vertex list of a geometry, indexed by
// part, ring and vertex.
type CoordinateSequence [][][]Point

// Geometry is implemented by every geometry kind in this package.
type Geometry interface {
	Type() Type
	IsEmpty() bool
	// NumCoordinates counts all vertices, including ring closing vertices.
	NumCoordinates() int
	BoundingBox() BBox
	CoordinateSequence() CoordinateSequence
	// Clone returns an unowned deep copy.
	Clone() Geometry
	Clear()

	Length() float64
	Area() float64
	Perimeter() float64

	AddZValue(z float64) bool
	AddMValue(m float64) bool
	DropZValue() bool
	DropMValue() bool

	invalidate()
	setOwner(o owner)
	owned() bool
	// unchecked ordinate changes, used by owners on their children
	addZ(z float64) bool
	addM(m float64) bool
	dropZ() bool
	dropM() bool
}

// Curve is a geometry made of a connected run of vertices.
type Curve interface {
	Geometry
	NumPoints() int
	PointAt(i int) Point
	Points() []Point
	StartPoint() Point
	EndPoint() Point
	IsClosed() bool
	// SumUpArea is the signed area contribution used by polygon area.
	SumUpArea() float64
}

var (
	_ Curve    = (*LineString)(nil)
	_ Curve    = (*CircularString)(nil)
	_ Curve    = (*CompoundCurve)(nil)
	_ Geometry = (*Point)(nil)
	_ Geometry = (*Polygon)(nil)
	_ Geometry = (*GeometryCollection)(nil)
)

// matchOrdinates adds or drops Z and M on g so its flags equal hasZ, hasM.
// It bypasses the owner check, so only owners may call it on children.
func matchOrdinates(g Geometry, hasZ, hasM bool) {
	t := g.Type()
	switch {
	case hasZ && !t.HasZ():
		g.addZ(0)
	case !hasZ && t.HasZ():
		g.dropZ()
	}
	switch {
	case hasM && !t.HasM():
		g.addM(0)
	case !hasM && t.HasM():
		g.dropM()
	}
}

// Equal reports whether a and b have the same type, structure and
// ordinates, comparing ordinates with a few ULPs of tolerance.
func Equal(a, b Geometry) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	switch ga := a.(type) {
	case *Point:
		return ga.Equal(*b.(*Point))
	case *LineString:
		return ga.seq.equal(&b.(*LineString).seq)
	case *CircularString:
		return ga.seq.equal(&b.(*CircularString).seq)
	case *CompoundCurve:
		gb := b.(*CompoundCurve)
		if len(ga.curves) != len(gb.curves) {
			return false
		}
		for i := range ga.curves {
			if !Equal(ga.curves[i], gb.curves[i]) {
				return false
			}
		}
		return true
	case *Polygon:
		ra, rb := ga.Rings(), b.(*Polygon).Rings()
		if len(ra) != len(rb) {
			return false
		}
		for i := range ra {
			if !Equal(ra[i], rb[i]) {
				return false
			}
		}
		return true
	case *GeometryCollection:
		gb := b.(*GeometryCollection)
		if len(ga.geoms) != len(gb.geoms) {
			return false
		}
		for i := range ga.geoms {
			if !Equal(ga.geoms[i], gb.geoms[i]) {
				return false
			}
		}
		return true
	}
	return false
}
