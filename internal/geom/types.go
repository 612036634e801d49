package geom

import "strings"

// Type is a geometry type tag: the base kind in the low byte plus independent
// Z and M flag bits. The flag values match the EWKB wire flags so the WKB
// encoder can write the tag as is.
type Type uint32

const (
	Unknown             Type = 0
	PointType           Type = 1
	LineStringType      Type = 2
	PolygonType         Type = 3
	MultiPointType      Type = 4
	MultiLineStringType Type = 5
	MultiPolygonType    Type = 6
	CollectionType      Type = 7
	CircularStringType  Type = 8
	CompoundCurveType   Type = 9
)

const (
	FlagZ Type = 0x80000000
	FlagM Type = 0x40000000

	kindMask Type = 0xff
)

// NewType builds a tag from a flat kind and the ordinate flags.
func NewType(flat Type, hasZ, hasM bool) Type {
	t := flat.Flat()
	if hasZ {
		t |= FlagZ
	}
	if hasM {
		t |= FlagM
	}
	return t
}

// Flat strips the ordinate flags.
func (t Type) Flat() Type { return t & kindMask }

func (t Type) HasZ() bool { return t&FlagZ != 0 }
func (t Type) HasM() bool { return t&FlagM != 0 }

func (t Type) AddZ() Type  { return t | FlagZ }
func (t Type) AddM() Type  { return t | FlagM }
func (t Type) DropZ() Type { return t &^ FlagZ }
func (t Type) DropM() Type { return t &^ FlagM }

// Stride is the number of ordinates stored per vertex.
func (t Type) Stride() int {
	n := 2
	if t.HasZ() {
		n++
	}
	if t.HasM() {
		n++
	}
	return n
}

// Valid reports whether the flat kind is one of the known kinds.
func (t Type) Valid() bool {
	f := t.Flat()
	return f >= PointType && f <= CompoundCurveType
}

// IsMulti reports whether t is a collection kind.
func (t Type) IsMulti() bool {
	switch t.Flat() {
	case MultiPointType, MultiLineStringType, MultiPolygonType, CollectionType:
		return true
	}
	return false
}

// IsCurve reports whether t stores a single vertex sequence.
func (t Type) IsCurve() bool {
	f := t.Flat()
	return f == LineStringType || f == CircularStringType
}

// SingleType maps a multi kind to its part kind, keeping the flags.
// GeometryCollection has no single kind and maps to Unknown.
func (t Type) SingleType() Type {
	flags := t &^ kindMask
	switch t.Flat() {
	case MultiPointType:
		return PointType | flags
	case MultiLineStringType:
		return LineStringType | flags
	case MultiPolygonType:
		return PolygonType | flags
	case CollectionType:
		return Unknown
	}
	return t
}

var typeNames = map[Type]string{
	PointType:           "Point",
	LineStringType:      "LineString",
	PolygonType:         "Polygon",
	MultiPointType:      "MultiPoint",
	MultiLineStringType: "MultiLineString",
	MultiPolygonType:    "MultiPolygon",
	CollectionType:      "GeometryCollection",
	CircularStringType:  "CircularString",
	CompoundCurveType:   "CompoundCurve",
}

// Name is the kind name without ordinate suffix, e.g. "LineString".
func (t Type) Name() string {
	if n, ok := typeNames[t.Flat()]; ok {
		return n
	}
	return "Unknown"
}

// String renders the kind with its ordinate suffix, e.g. "LineStringZM".
func (t Type) String() string {
	s := t.Name()
	if t.HasZ() {
		s += "Z"
	}
	if t.HasM() {
		s += "M"
	}
	return s
}

// ParseType resolves a WKT type word, case-insensitively. A glued
// ordinate suffix ("POINTZ", "LINESTRINGZM") sets the flags; explicit
// reports whether such a suffix was present.
func ParseType(word string) (t Type, explicit bool, ok bool) {
	w := strings.ToUpper(word)
	for flat, name := range typeNames {
		u := strings.ToUpper(name)
		if !strings.HasPrefix(w, u) {
			continue
		}
		switch w[len(u):] {
		case "":
			return flat, false, true
		case "Z":
			return flat | FlagZ, true, true
		case "M":
			return flat | FlagM, true, true
		case "ZM":
			return flat | FlagZ | FlagM, true, true
		}
	}
	return Unknown, false, false
}
