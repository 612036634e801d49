// Package simplify reduces the vertex count of geometries for display at
// a given map scale. It never mutates its input and always returns a
// geometry the caller owns.
package simplify

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"geomap/internal/geom"
)

// Flag selects which simplifications may run.
type Flag uint

const (
	NoFlags Flag = 0
	// GeometrySimplification drops vertices with the selected algorithm.
	GeometrySimplification Flag = 1
	// EnvelopeReplacement replaces features smaller than the tolerance by
	// their envelope.
	EnvelopeReplacement Flag = 2
)

// Algorithm picks the vertex selection rule.
type Algorithm int

const (
	Distance Algorithm = iota
	SnapToGrid
	Visvalingam
)

var algorithmNames = []string{"distance", "snaptogrid", "visvalingam"}

func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return "unknown"
	}
	return algorithmNames[a]
}

// ParseAlgorithm accepts the String form, case-insensitively, plus "snap"
// and "grid" for SnapToGrid.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "distance":
		return Distance, nil
	case "snaptogrid", "snap", "grid":
		return SnapToGrid, nil
	case "visvalingam":
		return Visvalingam, nil
	}
	return 0, errors.Errorf("unknown simplification algorithm %q", s)
}

// IsGeneralizableByMapBoundingBox reports whether a feature with this
// envelope is smaller than tol in both directions.
func IsGeneralizableByMapBoundingBox(envelope geom.BBox, tol float64) bool {
	return envelope.Width() < tol && envelope.Height() < tol
}

// Geometry simplifies g against envelope and tol (in map units). isRing
// marks a curve that is a polygon ring; the ring is only treated as one
// when its first and last vertex match.
func Geometry(flags Flag, alg Algorithm, g geom.Geometry, envelope geom.BBox, tol float64, isRing bool) geom.Geometry {
	if g == nil {
		return nil
	}
	if flags&EnvelopeReplacement != 0 && IsGeneralizableByMapBoundingBox(envelope, tol) {
		return byBoundingBox(g, envelope, isRing)
	}
	if flags&GeometrySimplification == 0 {
		return g.Clone()
	}
	switch g := g.(type) {
	case *geom.LineString:
		return simplifyCurve(alg, g, envelope, tol, isRing)
	case *geom.CircularString:
		return simplifyCurve(alg, g, envelope, tol, isRing)
	case *geom.Polygon:
		ext := g.ExteriorRing()
		if ext == nil {
			return g.Clone()
		}
		out := geom.NewPolygonZM(g.Type().HasZ(), g.Type().HasM())
		out.SetExteriorRing(asRing(Geometry(flags, alg, ext, envelope, tol, true)))
		for i := 0; i < g.NumInteriorRings(); i++ {
			out.AddInteriorRing(asRing(Geometry(flags, alg, g.InteriorRing(i), envelope, tol, true)))
		}
		return out
	case *geom.GeometryCollection:
		out := geom.NewCollection(g.Type())
		for i := 0; i < g.NumGeometries(); i++ {
			out.AddGeometry(Geometry(flags, alg, g.GeometryN(i), envelope, tol, false))
		}
		return out
	}
	return g.Clone()
}

// asRing narrows a simplified ring back to a line string.
func asRing(g geom.Geometry) *geom.LineString {
	if l, ok := g.(*geom.LineString); ok {
		return l
	}
	return geom.NewLineString()
}

// byBoundingBox replaces g by envelope: a two point line for line kinds, a
// closed rectangle for rings and a rectangle polygon for area kinds.
// Geometries that are already as small as the replacement are cloned.
func byBoundingBox(g geom.Geometry, envelope geom.BBox, isRing bool) geom.Geometry {
	single := g.Type().SingleType().Flat()
	switch single {
	case geom.LineStringType, geom.CircularStringType:
		if isRing {
			if g.NumCoordinates() <= 5 {
				return g.Clone()
			}
			return withOrdinates(rectRing(envelope), g.Type())
		}
		if g.NumCoordinates() <= 2 {
			return g.Clone()
		}
		return withOrdinates(diagonal(envelope), g.Type())
	case geom.PolygonType:
		if g.NumCoordinates() <= 5 {
			return g.Clone()
		}
		return geom.NewPolygon(withOrdinates(rectRing(envelope), g.Type()))
	}
	return g.Clone()
}

func diagonal(b geom.BBox) *geom.LineString {
	return geom.NewLineString(geom.XY(b.MinX, b.MinY), geom.XY(b.MaxX, b.MaxY))
}

// withOrdinates gives a replacement line the Z and M of the geometry it
// stands in for, filled with 0.
func withOrdinates(l *geom.LineString, t geom.Type) *geom.LineString {
	if t.HasZ() {
		l.AddZValue(0)
	}
	if t.HasM() {
		l.AddMValue(0)
	}
	return l
}

func rectRing(b geom.BBox) *geom.LineString {
	return geom.NewLineString(
		geom.XY(b.MinX, b.MinY),
		geom.XY(b.MaxX, b.MinY),
		geom.XY(b.MaxX, b.MaxY),
		geom.XY(b.MinX, b.MaxY),
		geom.XY(b.MinX, b.MinY),
	)
}

// srcCurve is what simplifyCurve needs from a curve.
type srcCurve interface {
	geom.Curve
	XAt(i int) float64
	YAt(i int) float64
}

func simplifyCurve(alg Algorithm, src srcCurve, envelope geom.BBox, tol float64, isRing bool) geom.Geometry {
	n := src.NumPoints()
	if isRing {
		isRing = n > 0 && geom.DoubleNear(src.XAt(0), src.XAt(n-1)) && geom.DoubleNear(src.YAt(0), src.YAt(n-1))
	}
	minPoints := 2
	if isRing {
		minPoints = 4
	}
	if n <= minPoints {
		return src.Clone()
	}

	var keep []int
	var longSegments bool
	switch alg {
	case SnapToGrid:
		keep = snapToGrid(src, n, envelope, tol, isRing)
	case Visvalingam:
		minRetained := 2
		if isRing {
			minRetained = 5
		}
		keep = visvalingam(src, n, tol*tol, minRetained)
	default:
		keep, longSegments = distance(src, n, tol*tol, isRing)
	}

	if len(keep) < minPoints {
		if longSegments {
			return src.Clone()
		}
		b := src.BoundingBox()
		if isRing {
			return withOrdinates(rectRing(b), src.Type())
		}
		return withOrdinates(diagonal(b), src.Type())
	}

	seq := geom.NewSequence(src.Type().HasZ(), src.Type().HasM())
	for _, i := range keep {
		seq.Append(src.PointAt(i))
	}
	if isRing {
		last := seq.Len() - 1
		if !geom.DoubleNear(seq.XAt(last), seq.XAt(0)) || !geom.DoubleNear(seq.YAt(last), seq.YAt(0)) {
			seq.Append(seq.Point(0))
		}
	}
	if _, ok := src.(*geom.CircularString); ok {
		return geom.CircularStringFromSequence(seq)
	}
	return geom.LineStringFromSequence(seq)
}

// keepEnd reports whether vertex i of an open curve is one of the first
// two or last two vertices, which are always kept.
func keepEnd(i, n int, isRing bool) bool {
	return !isRing && (i == 1 || i >= n-2)
}

func distance(src srcCurve, n int, sqrTol float64, isRing bool) ([]int, bool) {
	keep := make([]int, 0, n)
	var lastX, lastY float64
	var longSegments bool
	for i := 0; i < n; i++ {
		x, y := src.XAt(i), src.YAt(i)
		long := false
		if i > 0 {
			dx, dy := x-lastX, y-lastY
			long = dx*dx+dy*dy > sqrTol
		}
		if i == 0 || long || keepEnd(i, n, isRing) {
			keep = append(keep, i)
			lastX, lastY = x, y
			longSegments = longSegments || long
		}
	}
	return keep, longSegments
}

func snapToGrid(src srcCurve, n int, envelope geom.BBox, tol float64, isRing bool) []int {
	var inv float64
	if tol != 0 {
		inv = 1 / (0.8 * tol)
	}
	cell := func(v, origin float64) float64 { return math.Floor((v-origin)*inv + 0.5) }
	keep := make([]int, 0, n)
	var lastX, lastY float64
	for i := 0; i < n; i++ {
		x, y := src.XAt(i), src.YAt(i)
		sameCell := cell(x, envelope.MinX) == cell(lastX, envelope.MinX) &&
			cell(y, envelope.MinY) == cell(lastY, envelope.MinY)
		if i == 0 || !sameCell || keepEnd(i, n, isRing) {
			keep = append(keep, i)
			lastX, lastY = x, y
		}
	}
	return keep
}

func visvalingam(src srcCurve, n int, sqrTol float64, minRetained int) []int {
	areas := effectiveAreas(src, n, minRetained, sqrTol)
	keep := make([]int, 0, n)
	for i, a := range areas {
		if a > sqrTol {
			keep = append(keep, i)
		}
	}
	return keep
}
