package wkt

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geomap/internal/geom"
)

func line(pts ...geom.Point) *geom.LineString { return geom.NewLineString(pts...) }

func square(x0, y0, x1, y1 float64) *geom.LineString {
	return line(geom.XY(x0, y0), geom.XY(x1, y0), geom.XY(x1, y1), geom.XY(x0, y1), geom.XY(x0, y0))
}

func TestMarshal(t *testing.T) {
	tests := []struct {
		name string
		g    geom.Geometry
		want string
	}{
		{"point", geom.NewPoint(geom.XY(1, 2)), "POINT (1 2)"},
		{"point zm", geom.NewPoint(geom.XYZM(1, 2, 3, 4)), "POINT ZM (1 2 3 4)"},
		{"line", line(geom.XY(0, 0), geom.XY(10, 0)), "LINESTRING (0 0, 10 0)"},
		{"line m", line(geom.XYM(0, 0, 5), geom.XYM(1, 1, 6)), "LINESTRING M (0 0 5, 1 1 6)"},
		{"empty line", geom.NewLineString(), "LINESTRING EMPTY"},
		{"empty polygon", geom.NewPolygon(nil), "POLYGON EMPTY"},
		{"polygon", geom.NewPolygon(square(0, 0, 1, 1)), "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))"},
		{"empty ring", geom.NewPolygon(geom.NewLineString()), "POLYGON (EMPTY)"},
		{
			"empty hole",
			geom.NewPolygon(square(0, 0, 1, 1), geom.NewLineString()),
			"POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0), EMPTY)",
		},
		{"multi point", geom.NewMultiPoint(geom.XY(1, 2), geom.XY(3, 4)), "MULTIPOINT ((1 2), (3 4))"},
		{"empty multi polygon", geom.NewCollection(geom.MultiPolygonType), "MULTIPOLYGON EMPTY"},
		{
			"compound",
			geom.NewCompoundCurve(
				geom.NewCircularString(geom.XY(0, 0), geom.XY(1, 1), geom.XY(2, 0)),
				line(geom.XY(2, 0), geom.XY(0, 0)),
			),
			"COMPOUNDCURVE (CIRCULARSTRING (0 0, 1 1, 2 0), (2 0, 0 0))",
		},
		{
			"collection",
			geom.NewGeometryCollection(geom.NewPoint(geom.XY(1, 1)), line(geom.XY(0, 0), geom.XY(1, 0))),
			"GEOMETRYCOLLECTION (POINT (1 1), LINESTRING (0 0, 1 0))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Marshal(tt.g))
		})
	}
	assert.Equal(t, "", Marshal(nil))
}

func TestMarshalPrecision(t *testing.T) {
	p := geom.NewPoint(geom.XY(1.0/3, 2.5))
	assert.Equal(t, "POINT (0.333333 2.5)", MarshalPrecision(p, 6))
	assert.Equal(t, "POINT (0.3333333333333333 2.5)", MarshalPrecision(p, -1))
}

func TestTypeWord(t *testing.T) {
	assert.Equal(t, "LINESTRING", TypeWord(geom.LineStringType))
	assert.Equal(t, "POLYGON Z", TypeWord(geom.PolygonType|geom.FlagZ))
	assert.Equal(t, "MULTIPOINT M", TypeWord(geom.MultiPointType|geom.FlagM))
	assert.Equal(t, "GEOMETRYCOLLECTION ZM", TypeWord(geom.CollectionType|geom.FlagZ|geom.FlagM))
}

func TestRoundTrip(t *testing.T) {
	samples := map[string]geom.Geometry{
		"point":       geom.NewPoint(geom.XY(1, 2)),
		"point zm":    geom.NewPoint(geom.XYZM(1, 2, 3, 4)),
		"line z":      line(geom.XYZ(0, 0, 1), geom.XYZ(1, 1, 2)),
		"line m":      line(geom.XYM(0, 0, 5), geom.XYM(1, 1, 6)),
		"empty line":  geom.NewLineString(),
		"circular":    geom.NewCircularString(geom.XY(0, 0), geom.XY(1, 1), geom.XY(2, 0)),
		"polygon":     geom.NewPolygon(square(0, 0, 10, 10), square(2, 2, 4, 4)),
		"empty poly":  geom.NewPolygon(nil),
		"multi point": geom.NewMultiPoint(geom.XYZ(1, 1, 1), geom.XYZ(2, 2, 2)),
		"multi line":  geom.NewMultiLineString(line(geom.XY(0, 0), geom.XY(1, 1)), line(geom.XY(2, 2), geom.XY(3, 3))),
		"multi poly":  geom.NewMultiPolygon(geom.NewPolygon(square(0, 0, 1, 1)), geom.NewPolygon(square(5, 5, 6, 6))),
		"empty multi": geom.NewCollection(geom.MultiLineStringType),
		"empty ring":  geom.NewPolygon(geom.NewLineString()),
		"empty part":  geom.NewMultiPolygon(geom.NewPolygon(geom.NewLineString())),
		"compound": geom.NewCompoundCurve(
			geom.NewCircularString(geom.XY(0, 0), geom.XY(1, 1), geom.XY(2, 0)),
			line(geom.XY(2, 0), geom.XY(0, 0)),
		),
		"collection": geom.NewGeometryCollection(
			geom.NewPoint(geom.XY(1, 1)),
			line(geom.XY(0, 0), geom.XY(1, 0)),
			geom.NewGeometryCollection(geom.NewPoint(geom.XY(9, 9))),
		),
		"awkward floats": line(geom.XY(0.1, 1.0/3), geom.XY(math.MaxFloat64, -0.0), geom.XY(1e-300, -123456.789)),
	}
	for name, g := range samples {
		t.Run(name, func(t *testing.T) {
			s := Marshal(g)
			got, err := Unmarshal(s)
			require.NoError(t, err, s)
			assert.True(t, geom.Equal(g, got), "%s decoded as %s", s, Marshal(got))
		})
	}
}

func TestRoundTripAfterChildEdits(t *testing.T) {
	poly := geom.NewPolygon(square(0, 0, 10, 10), square(2, 2, 4, 4))
	poly.ExteriorRing().AddZValue(7)
	poly.InteriorRing(0).SetPoints([]geom.Point{
		geom.XYM(2, 2, 1), geom.XYM(3, 2, 1), geom.XYM(3, 3, 1), geom.XYM(2, 2, 1),
	})

	lines := geom.NewMultiLineString(line(geom.XYZ(0, 0, 1), geom.XYZ(1, 1, 1)))
	lines.GeometryN(0).DropZValue()

	cc := geom.NewCompoundCurve(geom.NewCircularString(geom.XY(0, 0), geom.XY(1, 1), geom.XY(2, 0)))
	cc.CurveAt(0).AddMValue(3)

	pts := geom.NewMultiPoint(geom.XY(1, 1))
	pts.GeometryN(0).AddZValue(2)

	for _, g := range []geom.Geometry{poly, lines, cc, pts} {
		s := Marshal(g)
		got, err := Unmarshal(s)
		require.NoError(t, err, s)
		assert.True(t, geom.Equal(g, got), "%s decoded as %s", s, Marshal(got))
	}
}

func TestOrdinateInference(t *testing.T) {
	tests := []struct {
		in   string
		want geom.Type
	}{
		{"POINT (1 2)", geom.PointType},
		{"POINT (1 2 3)", geom.PointType | geom.FlagZ},
		{"POINT (1 2 3 4)", geom.PointType | geom.FlagZ | geom.FlagM},
		{"POINT M (1 2 3)", geom.PointType | geom.FlagM},
		{"POINTM (1 2 3)", geom.PointType | geom.FlagM},
		{"POINTZM (1 2 3 4)", geom.PointType | geom.FlagZ | geom.FlagM},
		{"LINESTRING Z (0 0 0, 1 1 1)", geom.LineStringType | geom.FlagZ},
		{"linestring (0 0 0, 1 1 1)", geom.LineStringType | geom.FlagZ},
		{"POLYGON Z EMPTY", geom.PolygonType | geom.FlagZ},
		{"MULTIPOLYGON EMPTY", geom.MultiPolygonType},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			g, err := Unmarshal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.Type())
		})
	}

	g, err := Unmarshal("POINT M (1 2 3)")
	require.NoError(t, err)
	p := g.(*geom.Point)
	assert.Equal(t, 3.0, p.M())
	assert.False(t, p.Is3D())
}

func TestUnmarshalForms(t *testing.T) {
	g, err := Unmarshal("  SRID=4326;POINT(1e2 -2.5E-1)  ")
	require.NoError(t, err)
	p := g.(*geom.Point)
	assert.Equal(t, 100.0, p.X())
	assert.Equal(t, -0.25, p.Y())

	bare, err := Unmarshal("MULTIPOINT (1 2, 3 4)")
	require.NoError(t, err)
	nested, err := Unmarshal("MULTIPOINT ((1 2), (3 4))")
	require.NoError(t, err)
	assert.True(t, geom.Equal(bare, nested))
	assert.Equal(t, 2, bare.(*geom.GeometryCollection).NumGeometries())

	g, err = Unmarshal("COMPOUNDCURVE ((0 0, 1 0), CIRCULARSTRING (1 0, 2 1, 3 0))")
	require.NoError(t, err)
	cc := g.(*geom.CompoundCurve)
	require.Equal(t, 2, cc.NumCurves())
	assert.Equal(t, geom.LineStringType, cc.CurveAt(0).Type())
	assert.Equal(t, geom.CircularStringType, cc.CurveAt(1).Type())
	assert.Equal(t, 4, cc.NumPoints())

	g, err = Unmarshal("GEOMETRYCOLLECTION (POINT (1 1), GEOMETRYCOLLECTION (LINESTRING (0 0, 1 1)))")
	require.NoError(t, err)
	c := g.(*geom.GeometryCollection)
	require.Equal(t, 2, c.NumGeometries())
	inner, ok := c.GeometryN(1).(*geom.GeometryCollection)
	require.True(t, ok)
	assert.Equal(t, geom.LineStringType, inner.GeometryN(0).Type())

	g, err = Unmarshal("POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0), (2 2, 4 2, 4 4, 2 2))")
	require.NoError(t, err)
	poly := g.(*geom.Polygon)
	assert.Equal(t, 1, poly.NumInteriorRings())
	assert.InDelta(t, 98, poly.Area(), 1e-9)
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrSyntax},
		{"POINT EMPTY", ErrSyntax},
		{"POINT (1)", ErrSyntax},
		{"POINT (1 2 3 4 5)", ErrSyntax},
		{"POINT (1 2", ErrSyntax},
		{"POINT (1 2) x", ErrSyntax},
		{"LINESTRING (0 0, 1 1 1)", ErrSyntax},
		{"LINESTRING Z (0 0, 1 1)", ErrSyntax},
		{"LINESTRING (0 0; 1 1)", ErrSyntax},
		{"POINT (1.2.3 4)", ErrSyntax},
		{"TRIANGLE ((0 0, 1 0, 0 1, 0 0))", ErrUnknownType},
		{"COMPOUNDCURVE (POLYGON ((0 0, 1 0, 0 1, 0 0)))", ErrUnknownType},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			g, err := Unmarshal(tt.in)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.Equal(t, tt.want, errors.Cause(err))
		})
	}
}
