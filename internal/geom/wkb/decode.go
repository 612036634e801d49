package wkb

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"strings"

	"github.com/pkg/errors"

	"geomap/internal/geom"
)

// Unmarshal decodes a single geometry. The whole buffer must be consumed.
func Unmarshal(b []byte) (geom.Geometry, error) {
	g, _, err := Decode(b)
	return g, err
}

// UnmarshalHex decodes hex encoded WKB, ignoring surrounding space and an
// optional 0x prefix.
func UnmarshalHex(s string) (geom.Geometry, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "wkb: decoding hex")
	}
	return Unmarshal(b)
}

// Decode decodes a single geometry and returns its SRID, 0 when absent.
// The SRID comes from an EWKB header or from a bare 4 byte prefix in front
// of the byte order marker.
func Decode(b []byte) (geom.Geometry, uint32, error) {
	g, srid, err := decode(b)
	if err == nil {
		return g, srid, nil
	}
	if len(b) > sridSize && (b[sridSize] == XDR || b[sridSize] == NDR) {
		if pg, _, perr := decode(b[sridSize:]); perr == nil {
			return pg, byteOrder(b[sridSize]).Uint32(b[:sridSize]), nil
		}
	}
	return nil, 0, err
}

func byteOrder(marker byte) binary.ByteOrder {
	if marker == XDR {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func decode(b []byte) (geom.Geometry, uint32, error) {
	d := &decoder{buf: b}
	g, srid, err := d.geometry()
	if err != nil {
		return nil, 0, err
	}
	if d.off != len(d.buf) {
		return nil, 0, errors.Wrapf(ErrTrailingBytes, "%d bytes after %s", len(d.buf)-d.off, g.Type())
	}
	return g, srid, nil
}

type decoder struct {
	buf   []byte
	off   int
	order binary.ByteOrder
}

func (d *decoder) need(n int, what string) error {
	if n < 0 || len(d.buf)-d.off < n {
		return errors.Wrapf(ErrTruncated, "reading %s at offset %d", what, d.off)
	}
	return nil
}

func (d *decoder) uint32(what string) (uint32, error) {
	if err := d.need(4, what); err != nil {
		return 0, err
	}
	v := d.order.Uint32(d.buf[d.off:])
	d.off += 4
	return v, nil
}

func (d *decoder) float64() float64 {
	v := math.Float64frombits(d.order.Uint64(d.buf[d.off:]))
	d.off += ordinateSize
	return v
}

// parseType normalizes a wire type code into a geom.Type.
func parseType(code uint32) (t geom.Type, hasSRID bool, err error) {
	hasSRID = code&sridFlag != 0
	code &^= sridFlag
	hasZ := code&uint32(geom.FlagZ) != 0
	hasM := code&uint32(geom.FlagM) != 0
	code &^= uint32(geom.FlagZ | geom.FlagM)
	switch {
	case code >= 3000 && code < 4000:
		hasZ, hasM = true, true
		code -= 3000
	case code >= 2000 && code < 3000:
		hasM = true
		code -= 2000
	case code >= 1000 && code < 2000:
		hasZ = true
		code -= 1000
	}
	t = geom.NewType(geom.Type(code), hasZ, hasM)
	if code > uint32(geom.CompoundCurveType) || !t.Valid() {
		return geom.Unknown, false, errors.Wrapf(ErrUnknownType, "type code %d", code)
	}
	return t, hasSRID, nil
}

func (d *decoder) geometry() (geom.Geometry, uint32, error) {
	if err := d.need(markerSize, "byte order"); err != nil {
		return nil, 0, err
	}
	switch m := d.buf[d.off]; m {
	case XDR, NDR:
		d.order = byteOrder(m)
	default:
		return nil, 0, errors.Wrapf(ErrByteOrder, "0x%02x at offset %d", m, d.off)
	}
	d.off++
	code, err := d.uint32("type")
	if err != nil {
		return nil, 0, err
	}
	t, hasSRID, err := parseType(code)
	if err != nil {
		return nil, 0, err
	}
	var srid uint32
	if hasSRID {
		if srid, err = d.uint32("srid"); err != nil {
			return nil, 0, err
		}
	}
	g, err := d.body(t)
	if err != nil {
		return nil, 0, err
	}
	return g, srid, nil
}

func (d *decoder) body(t geom.Type) (geom.Geometry, error) {
	switch t.Flat() {
	case geom.PointType:
		if err := d.need(pointSize(t), "point"); err != nil {
			return nil, err
		}
		s := d.points(t, 1)
		return geom.NewPoint(s.Point(0)), nil
	case geom.LineStringType:
		s, err := d.sequence(t)
		if err != nil {
			return nil, err
		}
		return geom.LineStringFromSequence(s), nil
	case geom.CircularStringType:
		s, err := d.sequence(t)
		if err != nil {
			return nil, err
		}
		return geom.CircularStringFromSequence(s), nil
	case geom.PolygonType:
		return d.polygon(t)
	case geom.CompoundCurveType:
		return d.compound(t)
	default:
		return d.collection(t)
	}
}

// points reads n vertex records; the caller has checked the length.
func (d *decoder) points(t geom.Type, n int) geom.Sequence {
	s := geom.NewSequence(t.HasZ(), t.HasM())
	s.Resize(n)
	for i := 0; i < n; i++ {
		s.SetXAt(i, d.float64())
		s.SetYAt(i, d.float64())
		if t.HasZ() {
			s.SetZAt(i, d.float64())
		}
		if t.HasM() {
			s.SetMAt(i, d.float64())
		}
	}
	return s
}

func (d *decoder) sequence(t geom.Type) (geom.Sequence, error) {
	n, err := d.uint32("vertex count")
	if err != nil {
		return geom.Sequence{}, err
	}
	if uint64(n)*uint64(pointSize(t)) > uint64(len(d.buf)-d.off) {
		return geom.Sequence{}, errors.Wrapf(ErrTruncated, "%d vertices at offset %d", n, d.off)
	}
	return d.points(t, int(n)), nil
}

func (d *decoder) count(minPart int, what string) (int, error) {
	n, err := d.uint32(what)
	if err != nil {
		return 0, err
	}
	if uint64(n)*uint64(minPart) > uint64(len(d.buf)-d.off) {
		return 0, errors.Wrapf(ErrTruncated, "%d %s at offset %d", n, what, d.off)
	}
	return int(n), nil
}

func (d *decoder) polygon(t geom.Type) (geom.Geometry, error) {
	n, err := d.count(countSize, "rings")
	if err != nil {
		return nil, err
	}
	p := geom.NewPolygonZM(t.HasZ(), t.HasM())
	for i := 0; i < n; i++ {
		s, err := d.sequence(t)
		if err != nil {
			return nil, err
		}
		r := geom.LineStringFromSequence(s)
		if i == 0 {
			p.SetExteriorRing(r)
		} else {
			p.AddInteriorRing(r)
		}
	}
	return p, nil
}

func (d *decoder) compound(t geom.Type) (geom.Geometry, error) {
	n, err := d.count(headerSize+countSize, "curves")
	if err != nil {
		return nil, err
	}
	c := geom.NewCompoundCurveZM(t.HasZ(), t.HasM())
	for i := 0; i < n; i++ {
		g, _, err := d.geometry()
		if err != nil {
			return nil, err
		}
		part, ok := g.(geom.Curve)
		if !ok || !c.AddCurve(part) {
			return nil, errors.Wrapf(ErrUnknownType, "%s inside %s", g.Type(), t)
		}
	}
	return c, nil
}

func (d *decoder) collection(t geom.Type) (geom.Geometry, error) {
	n, err := d.count(headerSize, "parts")
	if err != nil {
		return nil, err
	}
	c := geom.NewCollection(t)
	for i := 0; i < n; i++ {
		g, _, err := d.geometry()
		if err != nil {
			return nil, err
		}
		if !c.AddGeometry(g) {
			return nil, errors.Wrapf(ErrUnknownType, "%s inside %s", g.Type(), t)
		}
	}
	return c, nil
}
