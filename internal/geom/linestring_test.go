package geom

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(xy ...float64) *LineString {
	pts := make([]Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		pts = append(pts, XY(xy[i], xy[i+1]))
	}
	return NewLineString(pts...)
}

// freshBBox recomputes the box without the cache.
func freshBBox(g Geometry) BBox {
	return g.Clone().BoundingBox()
}

func TestLineStringCacheInvalidation(t *testing.T) {
	l := line(0, 0, 10, 0, 10, 10)
	require.Equal(t, BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, l.BoundingBox())

	steps := []struct {
		name string
		mut  func()
	}{
		{"insert", func() { require.True(t, l.InsertVertex(1, XY(-5, 3))) }},
		{"move", func() { require.True(t, l.MoveVertex(0, XY(2, -7))) }},
		{"delete", func() { require.True(t, l.DeleteVertex(1)) }},
		{"add", func() { l.AddVertex(XY(20, 20)) }},
		{"set x", func() { l.SetXAt(0, -30) }},
		{"set points", func() { l.SetPoints([]Point{XY(1, 1), XY(2, 3)}) }},
		{"append", func() { l.Append(line(2, 3, 40, -1)) }},
		{"add z", func() { require.True(t, l.AddZValue(4)) }},
		{"close", func() { l.Close() }},
	}
	for _, s := range steps {
		s.mut()
		assert.Equal(t, freshBBox(l), l.BoundingBox(), s.name)
	}
}

func TestOwnerCacheInvalidation(t *testing.T) {
	ring := line(0, 0, 4, 0, 4, 4, 0, 0)
	p := NewPolygon(ring)
	c := NewMultiPolygon(p)
	require.Equal(t, 4.0, c.BoundingBox().MaxX)
	require.Len(t, c.CoordinateSequence()[0][0], 4)

	ring.MoveVertex(1, XY(9, 0))
	assert.Equal(t, 9.0, p.BoundingBox().MaxX)
	assert.Equal(t, 9.0, c.BoundingBox().MaxX)
	assert.Equal(t, 9.0, c.CoordinateSequence()[0][0][1].X())
}

func TestDeleteVertexClearsSinglePoint(t *testing.T) {
	l := line(0, 0, 1, 1)
	require.True(t, l.DeleteVertex(0))
	assert.Equal(t, 0, l.NumPoints())
	assert.True(t, l.IsEmpty())
	assert.False(t, l.DeleteVertex(0))
}

func TestAppendSkipsSharedVertex(t *testing.T) {
	a := line(0, 0, 5, 5)
	b := line(5, 5, 6, 6)
	a.Append(b)
	require.Equal(t, 3, a.NumPoints())
	assert.Equal(t, []Point{XY(0, 0), XY(5, 5), XY(6, 6)}, a.Points())

	c := line(0, 0, 1, 0)
	c.Append(line(2, 0))
	assert.Equal(t, 3, c.NumPoints())
}

func TestAppendToEmptyTakesFlags(t *testing.T) {
	var l LineString
	l.Append(NewLineString(XYZ(1, 2, 3), XYZ(4, 5, 6)))
	assert.True(t, l.Type().HasZ())
	assert.Equal(t, 6.0, l.ZAt(1))
}

func TestAddZValueOnZLine(t *testing.T) {
	l := NewLineString(XYZ(0, 0, 1), XYZ(1, 1, 2))
	assert.False(t, l.AddZValue(7))
	assert.Equal(t, 1.0, l.ZAt(0))
	assert.Equal(t, 2.0, l.ZAt(1))

	require.True(t, l.AddMValue(3))
	assert.Equal(t, 3.0, l.MAt(1))
	assert.True(t, l.DropZValue())
	assert.Equal(t, 0.0, l.ZAt(0))
	assert.False(t, l.DropZValue())
}

func TestCloseIsIdempotent(t *testing.T) {
	for _, l := range []*LineString{
		line(0, 0, 1, 0, 1, 1),
		line(0, 0, 1, 0, 0, 0),
		line(3, 3),
		NewLineString(),
	} {
		l.Close()
		once := l.Clone()
		l.Close()
		assert.True(t, Equal(once, l), "%v", l.Points())
	}
	l := line(0, 0, 1, 0, 1, 1)
	l.Close()
	assert.True(t, l.IsClosed())
	assert.Equal(t, 4, l.NumPoints())
}

func TestIsClosedComparesZ(t *testing.T) {
	l := NewLineString(XYZ(0, 0, 0), XYZ(1, 0, 0), XYZ(0, 0, 1))
	assert.False(t, l.IsClosed())
	l.MoveVertex(2, XYZ(0, 0, 0))
	assert.True(t, l.IsClosed())
}

func TestPermissiveAndStrictAccessors(t *testing.T) {
	l := line(1, 2, 3, 4)
	assert.Equal(t, 0.0, l.XAt(5))
	assert.Equal(t, XY(0, 0), l.PointAt(-1))
	assert.Equal(t, 0.0, l.ZAt(0))
	l.SetXAt(9, 100)
	assert.Equal(t, []Point{XY(1, 2), XY(3, 4)}, l.Points())

	p, err := l.Vertex(1)
	require.NoError(t, err)
	assert.Equal(t, XY(3, 4), p)
	_, err = l.Vertex(2)
	assert.Equal(t, ErrIndex, errors.Cause(err))
}

func TestInsertVertexBounds(t *testing.T) {
	l := line(0, 0, 1, 1)
	assert.False(t, l.InsertVertex(3, XY(5, 5)))
	assert.False(t, l.InsertVertex(-1, XY(5, 5)))
	assert.True(t, l.InsertVertex(2, XY(5, 5)))
	assert.Equal(t, XY(5, 5), l.EndPoint())

	var e LineString
	assert.True(t, e.InsertVertex(0, XYM(1, 1, 9)))
	assert.True(t, e.Type().HasM())
}

func TestMoveVertexKeepsMissingOrdinates(t *testing.T) {
	l := NewLineString(XYZ(0, 0, 5), XYZ(1, 1, 6))
	l.MoveVertex(0, XY(2, 2))
	assert.Equal(t, XYZ(2, 2, 5), l.PointAt(0))
}

func TestSetPointsFlagsFromFirstPoint(t *testing.T) {
	l := NewLineString(XYZM(0, 0, 1, 2), XY(1, 1))
	assert.Equal(t, LineStringType|FlagZ|FlagM, l.Type())
	assert.Equal(t, XYZM(1, 1, 0, 0), l.PointAt(1))
}

func TestLengthAndArea(t *testing.T) {
	l := line(0, 0, 3, 0, 3, 4)
	assert.Equal(t, 7.0, l.Length())
	sq := line(0, 0, 2, 0, 2, 2, 0, 2, 0, 0)
	assert.Equal(t, 4.0, sq.SumUpArea())
	assert.Equal(t, -4.0, sq.Reversed().SumUpArea())
	assert.Equal(t, 0.0, sq.Area())
}

func TestClosestSegment(t *testing.T) {
	l := line(0, 0, 10, 0, 10, 10)
	d, pt, after, left := l.ClosestSegment(XY(5, 2), 1e-8)
	assert.Equal(t, 4.0, d)
	assert.Equal(t, XY(5, 0), pt)
	assert.Equal(t, 1, after)
	assert.True(t, left)

	d, _, after, _ = NewLineString().ClosestSegment(XY(1, 1), 1e-8)
	assert.Equal(t, math.MaxFloat64, d)
	assert.Equal(t, 0, after)

	d, _, after, _ = line(1, 1).ClosestSegment(XY(4, 5), 1e-8)
	assert.Equal(t, 25.0, d)
	assert.Equal(t, 1, after)
}

func TestVertexAngle(t *testing.T) {
	l := line(0, 0, 0, 10, 10, 10)
	assert.InDelta(t, 0, l.VertexAngle(0), 1e-12)
	assert.InDelta(t, math.Pi/4, l.VertexAngle(1), 1e-12)
	assert.InDelta(t, math.Pi/2, l.VertexAngle(2), 1e-12)

	ring := line(0, 0, 0, 10, 10, 10, 10, 0, 0, 0)
	// the closing vertex averages the west-going last leg with the
	// north-going first leg
	assert.InDelta(t, 7*math.Pi/4, ring.VertexAngle(0), 1e-12)
	assert.InDelta(t, ring.VertexAngle(0), ring.VertexAngle(4), 1e-12)
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, XY(2, 0), line(0, 0, 4, 0).Centroid())
	assert.Equal(t, XY(1, 1), line(1, 1, 1, 1).Centroid())
}
