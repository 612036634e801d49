// Package wkt encodes and decodes geometries as Well-Known Text.
package wkt

import (
	"strconv"
	"strings"

	"geomap/internal/geom"
)

// DefaultPrecision is enough significant digits to round trip a float64.
const DefaultPrecision = 17

// Marshal encodes g with DefaultPrecision.
func Marshal(g geom.Geometry) string {
	return MarshalPrecision(g, DefaultPrecision)
}

// MarshalPrecision encodes g with prec significant digits. A negative prec
// selects the shortest text that parses back to the same float64.
func MarshalPrecision(g geom.Geometry, prec int) string {
	if g == nil {
		return ""
	}
	b := &wktBuffer{prec: prec}
	b.writeGeometry(g, true)
	return b.String()
}

// TypeWord is the upper case type word with its ordinate suffix, for
// example "LINESTRING ZM".
func TypeWord(t geom.Type) string {
	w := strings.ToUpper(t.Name())
	switch {
	case t.HasZ() && t.HasM():
		return w + " ZM"
	case t.HasZ():
		return w + " Z"
	case t.HasM():
		return w + " M"
	}
	return w
}

type wktBuffer struct {
	strings.Builder
	prec int
}

func (b *wktBuffer) writeFloat(f float64) {
	var tmp [32]byte
	b.Write(strconv.AppendFloat(tmp[:0], f, 'g', b.prec, 64))
}

func (b *wktBuffer) writePoint(p geom.Point) {
	b.writeFloat(p.X())
	b.WriteByte(' ')
	b.writeFloat(p.Y())
	if p.Is3D() {
		b.WriteByte(' ')
		b.writeFloat(p.Z())
	}
	if p.IsMeasure() {
		b.WriteByte(' ')
		b.writeFloat(p.M())
	}
}

func (b *wktBuffer) withBrackets(fn func()) {
	b.WriteByte('(')
	fn()
	b.WriteByte(')')
}

func (b *wktBuffer) writeList(size int, fn func(i int)) {
	b.withBrackets(func() {
		for i := 0; i < size; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			fn(i)
		}
	})
}

func (b *wktBuffer) writePoints(pts []geom.Point) {
	b.writeList(len(pts), func(i int) { b.writePoint(pts[i]) })
}

func (b *wktBuffer) writeRings(rings []*geom.LineString) {
	b.writeList(len(rings), func(i int) {
		if rings[i].IsEmpty() {
			b.WriteString("EMPTY")
			return
		}
		b.writePoints(rings[i].Points())
	})
}

// writeGeometry writes g. named is false for parts whose type word is
// implied by the parent, such as the lines of a MULTILINESTRING.
func (b *wktBuffer) writeGeometry(g geom.Geometry, named bool) {
	if named {
		b.WriteString(TypeWord(g.Type()))
		b.WriteByte(' ')
	}
	if noParts(g) {
		b.WriteString("EMPTY")
		return
	}
	switch g := g.(type) {
	case *geom.Point:
		b.withBrackets(func() { b.writePoint(*g) })
	case *geom.LineString:
		b.writePoints(g.Points())
	case *geom.CircularString:
		b.writePoints(g.Points())
	case *geom.Polygon:
		b.writeRings(g.Rings())
	case *geom.CompoundCurve:
		b.writeList(g.NumCurves(), func(i int) {
			part := g.CurveAt(i)
			_, isLine := part.(*geom.LineString)
			b.writeGeometry(part, !isLine)
		})
	case *geom.GeometryCollection:
		nested := g.Type().Flat() == geom.CollectionType
		b.writeList(g.NumGeometries(), func(i int) {
			b.writeGeometry(g.GeometryN(i), nested)
		})
	}
}

// noParts reports whether g is written as EMPTY. A collection of empty
// children still lists them.
func noParts(g geom.Geometry) bool {
	switch g := g.(type) {
	case *geom.Point:
		return false
	case *geom.Polygon:
		return g.ExteriorRing() == nil
	case *geom.CompoundCurve:
		return g.NumCurves() == 0
	case *geom.GeometryCollection:
		return g.NumGeometries() == 0
	}
	return g.IsEmpty()
}
