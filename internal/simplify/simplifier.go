package simplify

import (
	"math"

	"geomap/internal/geom"
)

// Simplifier holds the settings of one map render: which simplifications
// run, with which algorithm, at which tolerance in map units.
type Simplifier struct {
	Flags     Flag
	Algorithm Algorithm
	Tolerance float64
}

// Simplify skips geometries simplification cannot help (points, tiny
// geometries, vertices already further apart on average than twice the
// tolerance) and otherwise calls Geometry with g's own bounding box as
// envelope. The result is always a new geometry.
func (s Simplifier) Simplify(g geom.Geometry) geom.Geometry {
	if g == nil {
		return nil
	}
	if g.IsEmpty() || s.Flags == NoFlags {
		return g.Clone()
	}
	single := g.Type().SingleType().Flat()
	if single == geom.PointType {
		return g.Clone()
	}
	isPolygon := single == geom.PolygonType
	n := g.NumCoordinates()
	if (isPolygon && n <= 6) || (!isPolygon && n <= 3) {
		return g.Clone()
	}
	env := g.BoundingBox()
	if math.Max(env.Width(), env.Height())/float64(n) > s.Tolerance*2 {
		return g.Clone()
	}
	return Geometry(s.Flags, s.Algorithm, g, env, s.Tolerance, false)
}
