// Package wkb encodes and decodes geometries as Well-Known Binary.
//
// The encoder writes host byte order and the extended type code: the kind
// id with Z flag 0x80000000 and M flag 0x40000000. The decoder also reads
// the other byte order, EWKB SRIDs and the ISO offset codes (1000 + kind
// for Z, 2000 + kind for M, 3000 + kind for ZM), which it normalizes to
// the flag form. Offset codes are never written.
package wkb

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"strings"

	"github.com/pkg/errors"

	"geomap/internal/geom"
)

const (
	markerSize   = 1
	typeSize     = 4
	countSize    = 4
	sridSize     = 4
	ordinateSize = 8

	headerSize = markerSize + typeSize
)

// Byte order markers.
const (
	XDR byte = 0 // big endian
	NDR byte = 1 // little endian
)

const sridFlag = 0x20000000

var (
	ErrTruncated     = errors.New("wkb: truncated input")
	ErrUnknownType   = errors.New("wkb: unknown geometry type")
	ErrTrailingBytes = errors.New("wkb: trailing bytes")
	ErrByteOrder     = errors.New("wkb: invalid byte order marker")
)

// hostMarker is the marker matching binary.NativeEndian.
var hostMarker = func() byte {
	if binary.NativeEndian.Uint16([]byte{1, 0}) == 1 {
		return NDR
	}
	return XDR
}()

// pointSize is the size of one vertex record. Size and Append both derive
// every vertex count from it.
func pointSize(t geom.Type) int { return ordinateSize * t.Stride() }

func sequenceSize(t geom.Type, n int) int { return countSize + n*pointSize(t) }

// Size is the exact number of bytes Marshal produces for g.
func Size(g geom.Geometry) int {
	if g == nil {
		return 0
	}
	t := g.Type()
	switch g := g.(type) {
	case *geom.Point:
		return headerSize + pointSize(t)
	case *geom.LineString:
		return headerSize + sequenceSize(t, g.NumPoints())
	case *geom.CircularString:
		return headerSize + sequenceSize(t, g.NumPoints())
	case *geom.Polygon:
		n := headerSize + countSize
		for _, r := range g.Rings() {
			n += sequenceSize(t, r.NumPoints())
		}
		return n
	case *geom.CompoundCurve:
		n := headerSize + countSize
		for i := 0; i < g.NumCurves(); i++ {
			n += Size(g.CurveAt(i))
		}
		return n
	case *geom.GeometryCollection:
		n := headerSize + countSize
		for i := 0; i < g.NumGeometries(); i++ {
			n += Size(g.GeometryN(i))
		}
		return n
	}
	return 0
}

// Marshal encodes g in host byte order.
func Marshal(g geom.Geometry) ([]byte, error) {
	if g == nil {
		return nil, errors.Wrap(ErrUnknownType, "nil geometry")
	}
	size := Size(g)
	buf := Append(make([]byte, 0, size), g)
	if len(buf) != size {
		return nil, errors.Errorf("wkb: encoded %d bytes for %s, expected %d", len(buf), g.Type(), size)
	}
	return buf, nil
}

// MarshalHex is Marshal rendered as upper case hex.
func MarshalHex(g geom.Geometry) (string, error) {
	b, err := Marshal(g)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// Append appends the encoding of g to dst.
func Append(dst []byte, g geom.Geometry) []byte {
	if g == nil {
		return dst
	}
	e := binary.NativeEndian
	t := g.Type()
	dst = append(dst, hostMarker)
	dst = e.AppendUint32(dst, uint32(t))
	switch g := g.(type) {
	case *geom.Point:
		dst = appendPoint(dst, t, g.X(), g.Y(), g.Z(), g.M())
	case *geom.LineString:
		dst = appendVertices(dst, t, g)
	case *geom.CircularString:
		dst = appendVertices(dst, t, g)
	case *geom.Polygon:
		rings := g.Rings()
		dst = e.AppendUint32(dst, uint32(len(rings)))
		for _, r := range rings {
			dst = appendVertices(dst, t, r)
		}
	case *geom.CompoundCurve:
		dst = e.AppendUint32(dst, uint32(g.NumCurves()))
		for i := 0; i < g.NumCurves(); i++ {
			dst = Append(dst, g.CurveAt(i))
		}
	case *geom.GeometryCollection:
		dst = e.AppendUint32(dst, uint32(g.NumGeometries()))
		for i := 0; i < g.NumGeometries(); i++ {
			dst = Append(dst, g.GeometryN(i))
		}
	}
	return dst
}

func appendPoint(dst []byte, t geom.Type, x, y, z, m float64) []byte {
	e := binary.NativeEndian
	dst = e.AppendUint64(dst, math.Float64bits(x))
	dst = e.AppendUint64(dst, math.Float64bits(y))
	if t.HasZ() {
		dst = e.AppendUint64(dst, math.Float64bits(z))
	}
	if t.HasM() {
		dst = e.AppendUint64(dst, math.Float64bits(m))
	}
	return dst
}

// vertices is the read side of LineString and CircularString.
type vertices interface {
	NumPoints() int
	XAt(i int) float64
	YAt(i int) float64
	ZAt(i int) float64
	MAt(i int) float64
}

func appendVertices(dst []byte, t geom.Type, s vertices) []byte {
	n := s.NumPoints()
	dst = binary.NativeEndian.AppendUint32(dst, uint32(n))
	for i := 0; i < n; i++ {
		dst = appendPoint(dst, t, s.XAt(i), s.YAt(i), s.ZAt(i), s.MAt(i))
	}
	return dst
}
