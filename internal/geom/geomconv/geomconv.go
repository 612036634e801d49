// Package geomconv converts between geom values and github.com/twpayne/go-geom
// values, which back the GeoJSON writer and the cross-check tests.
package geomconv

import (
	"github.com/pkg/errors"
	gogeom "github.com/twpayne/go-geom"

	"geomap/internal/geom"
)

// ErrUnsupported is returned for kinds go-geom has no equivalent for, such
// as circular strings.
var ErrUnsupported = errors.New("geomconv: unsupported geometry")

func layout(t geom.Type) gogeom.Layout {
	switch {
	case t.HasZ() && t.HasM():
		return gogeom.XYZM
	case t.HasZ():
		return gogeom.XYZ
	case t.HasM():
		return gogeom.XYM
	}
	return gogeom.XY
}

func appendFlat(flat []float64, pts []geom.Point, l gogeom.Layout) []float64 {
	for _, p := range pts {
		flat = append(flat, p.X(), p.Y())
		if l.ZIndex() >= 0 {
			flat = append(flat, p.Z())
		}
		if l.MIndex() >= 0 {
			flat = append(flat, p.M())
		}
	}
	return flat
}

// To converts g to its go-geom counterpart.
func To(g geom.Geometry) (gogeom.T, error) {
	l := layout(g.Type())
	switch g := g.(type) {
	case *geom.Point:
		return gogeom.NewPointFlat(l, appendFlat(nil, []geom.Point{*g}, l)), nil
	case *geom.LineString:
		return gogeom.NewLineStringFlat(l, appendFlat(nil, g.Points(), l)), nil
	case *geom.Polygon:
		flat, ends := polygonFlat(g, l, nil)
		return gogeom.NewPolygonFlat(l, flat, ends), nil
	case *geom.GeometryCollection:
		return collectionTo(g, l)
	}
	return nil, errors.Wrapf(ErrUnsupported, "%s", g.Type())
}

func polygonFlat(p *geom.Polygon, l gogeom.Layout, flat []float64) ([]float64, []int) {
	var ends []int
	for _, r := range p.Rings() {
		flat = appendFlat(flat, r.Points(), l)
		ends = append(ends, len(flat))
	}
	return flat, ends
}

func collectionTo(c *geom.GeometryCollection, l gogeom.Layout) (gogeom.T, error) {
	n := c.NumGeometries()
	switch c.Type().Flat() {
	case geom.MultiPointType:
		var flat []float64
		for i := 0; i < n; i++ {
			flat = appendFlat(flat, []geom.Point{*c.GeometryN(i).(*geom.Point)}, l)
		}
		return gogeom.NewMultiPointFlat(l, flat), nil
	case geom.MultiLineStringType:
		var flat []float64
		var ends []int
		for i := 0; i < n; i++ {
			flat = appendFlat(flat, c.GeometryN(i).(*geom.LineString).Points(), l)
			ends = append(ends, len(flat))
		}
		return gogeom.NewMultiLineStringFlat(l, flat, ends), nil
	case geom.MultiPolygonType:
		var flat []float64
		var endss [][]int
		for i := 0; i < n; i++ {
			var ends []int
			flat, ends = polygonFlat(c.GeometryN(i).(*geom.Polygon), l, flat)
			endss = append(endss, ends)
		}
		return gogeom.NewMultiPolygonFlat(l, flat, endss), nil
	}
	gc := gogeom.NewGeometryCollection()
	for i := 0; i < n; i++ {
		part, err := To(c.GeometryN(i))
		if err != nil {
			return nil, err
		}
		if err := gc.Push(part); err != nil {
			return nil, errors.Wrap(err, "building geometry collection")
		}
	}
	return gc, nil
}

func points(flat []float64, l gogeom.Layout) []geom.Point {
	stride := l.Stride()
	if stride < 2 {
		return nil
	}
	zi, mi := l.ZIndex(), l.MIndex()
	out := make([]geom.Point, 0, len(flat)/stride)
	for i := 0; i+stride <= len(flat); i += stride {
		c := flat[i : i+stride]
		switch {
		case zi >= 0 && mi >= 0:
			out = append(out, geom.XYZM(c[0], c[1], c[zi], c[mi]))
		case zi >= 0:
			out = append(out, geom.XYZ(c[0], c[1], c[zi]))
		case mi >= 0:
			out = append(out, geom.XYM(c[0], c[1], c[mi]))
		default:
			out = append(out, geom.XY(c[0], c[1]))
		}
	}
	return out
}

func sequence(flat []float64, l gogeom.Layout) geom.Sequence {
	s := geom.NewSequence(l.ZIndex() >= 0, l.MIndex() >= 0)
	for _, p := range points(flat, l) {
		s.Append(p)
	}
	return s
}

func polygonFrom(p *gogeom.Polygon) *geom.Polygon {
	l := p.Layout()
	out := geom.NewPolygonZM(l.ZIndex() >= 0, l.MIndex() >= 0)
	for i := 0; i < p.NumLinearRings(); i++ {
		r := geom.LineStringFromSequence(sequence(p.LinearRing(i).FlatCoords(), l))
		if i == 0 {
			out.SetExteriorRing(r)
		} else {
			out.AddInteriorRing(r)
		}
	}
	return out
}

// From converts a go-geom value.
func From(t gogeom.T) (geom.Geometry, error) {
	l := t.Layout()
	flags := func(k geom.Type) geom.Type { return geom.NewType(k, l.ZIndex() >= 0, l.MIndex() >= 0) }
	switch t := t.(type) {
	case *gogeom.Point:
		pts := points(t.FlatCoords(), l)
		if len(pts) == 0 {
			return nil, errors.Wrap(ErrUnsupported, "empty point")
		}
		return geom.NewPoint(pts[0]), nil
	case *gogeom.LineString:
		return geom.LineStringFromSequence(sequence(t.FlatCoords(), l)), nil
	case *gogeom.LinearRing:
		return geom.LineStringFromSequence(sequence(t.FlatCoords(), l)), nil
	case *gogeom.Polygon:
		return polygonFrom(t), nil
	case *gogeom.MultiPoint:
		c := geom.NewCollection(flags(geom.MultiPointType))
		for _, p := range points(t.FlatCoords(), l) {
			c.AddGeometry(geom.NewPoint(p))
		}
		return c, nil
	case *gogeom.MultiLineString:
		c := geom.NewCollection(flags(geom.MultiLineStringType))
		for i := 0; i < t.NumLineStrings(); i++ {
			c.AddGeometry(geom.LineStringFromSequence(sequence(t.LineString(i).FlatCoords(), l)))
		}
		return c, nil
	case *gogeom.MultiPolygon:
		c := geom.NewCollection(flags(geom.MultiPolygonType))
		for i := 0; i < t.NumPolygons(); i++ {
			c.AddGeometry(polygonFrom(t.Polygon(i)))
		}
		return c, nil
	case *gogeom.GeometryCollection:
		c := geom.NewCollection(geom.CollectionType)
		for _, part := range t.Geoms() {
			g, err := From(part)
			if err != nil {
				return nil, err
			}
			c.AddGeometry(g)
		}
		return c, nil
	}
	return nil, errors.Wrapf(ErrUnsupported, "%T", t)
}
