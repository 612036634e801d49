package wkt

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"geomap/internal/geom"
)

var (
	ErrSyntax      = errors.New("wkt: syntax error")
	ErrUnknownType = errors.New("wkt: unknown geometry type")
)

// Unmarshal parses one geometry. Ordinate flags come from a Z, M or ZM
// token, or, when absent, from the ordinate count of the first vertex.
// An EWKT "SRID=n;" prefix is skipped.
func Unmarshal(s string) (geom.Geometry, error) {
	s = strings.TrimSpace(s)
	if len(s) > 5 && strings.EqualFold(s[:5], "SRID=") {
		if i := strings.IndexByte(s, ';'); i >= 0 {
			s = s[i+1:]
		}
	}
	toks, err := lex(s)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	g, err := p.geometry()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf("unexpected %q after geometry", t.text)
	}
	return g, nil
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokWord
	tokNumber
	tokOpen
	tokClose
	tokComma
)

type token struct {
	kind tokKind
	text string
	num  float64
	pos  int
}

func lex(s string) ([]token, error) {
	var toks []token
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{kind: tokOpen, text: "(", pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokClose, text: ")", pos: i})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma, text: ",", pos: i})
			i++
		case isNumberStart(c):
			j := i + 1
			for j < len(s) && strings.IndexByte("0123456789.eE+-", s[j]) >= 0 {
				j++
			}
			v, err := strconv.ParseFloat(s[i:j], 64)
			if err != nil {
				return nil, errors.Wrapf(ErrSyntax, "bad number %q at offset %d", s[i:j], i)
			}
			toks = append(toks, token{kind: tokNumber, text: s[i:j], num: v, pos: i})
			i = j
		case unicode.IsLetter(rune(c)):
			j := i + 1
			for j < len(s) && unicode.IsLetter(rune(s[j])) {
				j++
			}
			toks = append(toks, token{kind: tokWord, text: strings.ToUpper(s[i:j]), pos: i})
			i = j
		default:
			return nil, errors.Wrapf(ErrSyntax, "unexpected %q at offset %d", c, i)
		}
	}
	return append(toks, token{kind: tokEOF, text: "end of input", pos: len(s)}), nil
}

func isNumberStart(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.'
}

// dims tracks the ordinate layout of one geometry. It is fixed by an
// explicit token or by the first vertex read.
type dims struct {
	set  bool
	z, m bool
}

func (d *dims) stride() int {
	n := 2
	if d.z {
		n++
	}
	if d.m {
		n++
	}
	return n
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrSyntax, "offset %d: "+format, append([]interface{}{p.peek().pos}, args...)...)
}

func (p *parser) expect(k tokKind, what string) error {
	if p.peek().kind != k {
		return p.errorf("expected %s, got %q", what, p.peek().text)
	}
	p.next()
	return nil
}

// empty consumes an EMPTY token if present.
func (p *parser) empty() bool {
	if t := p.peek(); t.kind == tokWord && t.text == "EMPTY" {
		p.next()
		return true
	}
	return false
}

// header reads the type word and an optional ordinate token.
func (p *parser) header() (geom.Type, dims, error) {
	t := p.next()
	if t.kind != tokWord {
		return geom.Unknown, dims{}, errors.Wrapf(ErrSyntax, "offset %d: expected type word, got %q", t.pos, t.text)
	}
	typ, explicit, ok := geom.ParseType(t.text)
	if !ok {
		return geom.Unknown, dims{}, errors.Wrapf(ErrUnknownType, "%q at offset %d", t.text, t.pos)
	}
	d := dims{set: explicit, z: typ.HasZ(), m: typ.HasM()}
	if !explicit {
		if w := p.peek(); w.kind == tokWord {
			switch w.text {
			case "Z":
				d = dims{set: true, z: true}
			case "M":
				d = dims{set: true, m: true}
			case "ZM":
				d = dims{set: true, z: true, m: true}
			}
			if d.set {
				p.next()
			}
		}
	}
	return typ.Flat(), d, nil
}

func (p *parser) geometry() (geom.Geometry, error) {
	flat, d, err := p.header()
	if err != nil {
		return nil, err
	}
	return p.body(flat, &d)
}

func (p *parser) body(flat geom.Type, d *dims) (geom.Geometry, error) {
	switch flat {
	case geom.PointType:
		if p.empty() {
			return nil, p.errorf("POINT EMPTY is not supported")
		}
		if err := p.expect(tokOpen, "'('"); err != nil {
			return nil, err
		}
		pt, err := p.point(d)
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokClose, "')'"); err != nil {
			return nil, err
		}
		return geom.NewPoint(pt), nil
	case geom.LineStringType:
		s, err := p.sequence(d)
		if err != nil {
			return nil, err
		}
		return geom.LineStringFromSequence(s), nil
	case geom.CircularStringType:
		s, err := p.sequence(d)
		if err != nil {
			return nil, err
		}
		return geom.CircularStringFromSequence(s), nil
	case geom.PolygonType:
		return p.polygon(d)
	case geom.CompoundCurveType:
		return p.compound(d)
	case geom.MultiPointType:
		return p.multiPoint(d)
	case geom.MultiLineStringType, geom.MultiPolygonType:
		return p.multi(flat, d)
	case geom.CollectionType:
		return p.collection(d)
	}
	return nil, errors.Wrapf(ErrUnknownType, "%s", flat)
}

// point reads one ordinate group.
func (p *parser) point(d *dims) (geom.Point, error) {
	var v [4]float64
	n := 0
	for p.peek().kind == tokNumber {
		if n == len(v) {
			return geom.Point{}, p.errorf("too many ordinates")
		}
		v[n] = p.next().num
		n++
	}
	if !d.set {
		switch n {
		case 2:
		case 3:
			d.z = true
		case 4:
			d.z, d.m = true, true
		default:
			return geom.Point{}, p.errorf("vertex with %d ordinates", n)
		}
		d.set = true
	}
	if n != d.stride() {
		return geom.Point{}, p.errorf("vertex with %d ordinates, want %d", n, d.stride())
	}
	switch {
	case d.z && d.m:
		return geom.XYZM(v[0], v[1], v[2], v[3]), nil
	case d.z:
		return geom.XYZ(v[0], v[1], v[2]), nil
	case d.m:
		return geom.XYM(v[0], v[1], v[2]), nil
	}
	return geom.XY(v[0], v[1]), nil
}

// list reads "( item, item, ... )" or EMPTY.
func (p *parser) list(item func() error) (empty bool, err error) {
	if p.empty() {
		return true, nil
	}
	if err := p.expect(tokOpen, "'('"); err != nil {
		return false, err
	}
	for {
		if err := item(); err != nil {
			return false, err
		}
		if p.peek().kind != tokComma {
			break
		}
		p.next()
	}
	return false, p.expect(tokClose, "')' or ','")
}

func (p *parser) sequence(d *dims) (geom.Sequence, error) {
	var pts []geom.Point
	_, err := p.list(func() error {
		pt, err := p.point(d)
		pts = append(pts, pt)
		return err
	})
	if err != nil {
		return geom.Sequence{}, err
	}
	s := geom.NewSequence(d.z, d.m)
	for _, pt := range pts {
		s.Append(pt)
	}
	return s, nil
}

func (p *parser) polygon(d *dims) (*geom.Polygon, error) {
	var rings []geom.Sequence
	_, err := p.list(func() error {
		s, err := p.sequence(d)
		rings = append(rings, s)
		return err
	})
	if err != nil {
		return nil, err
	}
	poly := geom.NewPolygonZM(d.z, d.m)
	for i, s := range rings {
		r := geom.LineStringFromSequence(s)
		if i == 0 {
			poly.SetExteriorRing(r)
		} else {
			poly.AddInteriorRing(r)
		}
	}
	return poly, nil
}

// compound parts are bare point lists for straight runs or a named
// CIRCULARSTRING.
func (p *parser) compound(d *dims) (geom.Geometry, error) {
	var parts []geom.Curve
	_, err := p.list(func() error {
		if t := p.peek(); t.kind == tokWord && t.text != "EMPTY" {
			flat, cd, err := p.header()
			if err != nil {
				return err
			}
			if flat != geom.LineStringType && flat != geom.CircularStringType {
				return errors.Wrapf(ErrUnknownType, "%s inside COMPOUNDCURVE", flat)
			}
			if cd.set {
				*d = cd
			}
			g, err := p.body(flat, d)
			if err != nil {
				return err
			}
			parts = append(parts, g.(geom.Curve))
			return nil
		}
		s, err := p.sequence(d)
		parts = append(parts, geom.LineStringFromSequence(s))
		return err
	})
	if err != nil {
		return nil, err
	}
	c := geom.NewCompoundCurveZM(d.z, d.m)
	for _, part := range parts {
		c.AddCurve(part)
	}
	return c, nil
}

// multiPoint accepts both "MULTIPOINT ((1 2), (3 4))" and "MULTIPOINT (1 2, 3 4)".
func (p *parser) multiPoint(d *dims) (geom.Geometry, error) {
	var pts []geom.Point
	_, err := p.list(func() error {
		paren := p.peek().kind == tokOpen
		if paren {
			p.next()
		}
		pt, err := p.point(d)
		if err != nil {
			return err
		}
		pts = append(pts, pt)
		if paren {
			return p.expect(tokClose, "')'")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	c := geom.NewCollection(geom.NewType(geom.MultiPointType, d.z, d.m))
	for _, pt := range pts {
		c.AddGeometry(geom.NewPoint(pt))
	}
	return c, nil
}

func (p *parser) multi(flat geom.Type, d *dims) (geom.Geometry, error) {
	var parts []geom.Geometry
	_, err := p.list(func() error {
		g, err := p.body(flat.SingleType(), d)
		parts = append(parts, g)
		return err
	})
	if err != nil {
		return nil, err
	}
	c := geom.NewCollection(geom.NewType(flat, d.z, d.m))
	for _, g := range parts {
		c.AddGeometry(g)
	}
	return c, nil
}

func (p *parser) collection(d *dims) (geom.Geometry, error) {
	var parts []geom.Geometry
	_, err := p.list(func() error {
		g, err := p.geometry()
		parts = append(parts, g)
		return err
	})
	if err != nil {
		return nil, err
	}
	c := geom.NewCollection(geom.NewType(geom.CollectionType, d.z, d.m))
	for _, g := range parts {
		c.AddGeometry(g)
	}
	return c, nil
}
