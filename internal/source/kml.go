package source

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"geomap/internal/geom"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlBoundary struct {
	Ring kmlCoords `xml:"LinearRing"`
}

type kmlPolygon struct {
	Outer kmlBoundary   `xml:"outerBoundaryIs"`
	Inner []kmlBoundary `xml:"innerBoundaryIs"`
}

type kmlMulti struct {
	Points   []kmlCoords  `xml:"Point"`
	Lines    []kmlCoords  `xml:"LineString"`
	Polygons []kmlPolygon `xml:"Polygon"`
	Multi    []kmlMulti   `xml:"MultiGeometry"`
}

type kmlPlacemark struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	kmlMulti
}

type kmlNode struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Folders    []kmlNode      `xml:"Folder"`
	Documents  []kmlNode      `xml:"Document"`
}

// parseKML extracts Placemark geometries from Documents and Folders at any
// depth. KML coordinates are "lon,lat[,alt]"; altitude becomes Z.
func parseKML(data []byte) ([]Feature, error) {
	var doc kmlNode
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "kml")
	}
	var out []Feature
	if err := doc.walk(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func (n *kmlNode) walk(out *[]Feature) error {
	for _, pm := range n.Placemarks {
		g, err := pm.geometry()
		if err != nil {
			return errors.Wrapf(err, "placemark %q", pm.Name)
		}
		if g == nil {
			continue
		}
		props := map[string]any{}
		if pm.Name != "" {
			props["name"] = pm.Name
		}
		if d := strings.TrimSpace(pm.Description); d != "" {
			props["description"] = d
		}
		*out = append(*out, Feature{Geometry: g, Properties: props})
	}
	for i := range n.Documents {
		if err := n.Documents[i].walk(out); err != nil {
			return err
		}
	}
	for i := range n.Folders {
		if err := n.Folders[i].walk(out); err != nil {
			return err
		}
	}
	return nil
}

// geometry returns the single geometry of m, a collection when it holds
// more than one, or nil when it holds none.
func (m *kmlMulti) geometry() (geom.Geometry, error) {
	var parts []geom.Geometry
	for _, c := range m.Points {
		pts, err := kmlPoints(c.Coordinates)
		if err != nil {
			return nil, err
		}
		if len(pts) > 0 {
			parts = append(parts, geom.NewPoint(pts[0]))
		}
	}
	for _, c := range m.Lines {
		pts, err := kmlPoints(c.Coordinates)
		if err != nil {
			return nil, err
		}
		parts = append(parts, geom.NewLineString(pts...))
	}
	for _, p := range m.Polygons {
		pg, err := p.polygon()
		if err != nil {
			return nil, err
		}
		parts = append(parts, pg)
	}
	for i := range m.Multi {
		g, err := m.Multi[i].geometry()
		if err != nil {
			return nil, err
		}
		if g != nil {
			parts = append(parts, g)
		}
	}
	switch len(parts) {
	case 0:
		return nil, nil
	case 1:
		return parts[0], nil
	}
	return collect(parts), nil
}

// collect builds the narrowest collection kind holding parts.
func collect(parts []geom.Geometry) *geom.GeometryCollection {
	kind := parts[0].Type().Flat()
	for _, g := range parts[1:] {
		if g.Type().Flat() != kind {
			kind = geom.Unknown
			break
		}
	}
	var c *geom.GeometryCollection
	switch kind {
	case geom.PointType:
		c = geom.NewCollection(geom.MultiPointType)
	case geom.LineStringType:
		c = geom.NewCollection(geom.MultiLineStringType)
	case geom.PolygonType:
		c = geom.NewCollection(geom.MultiPolygonType)
	default:
		c = geom.NewCollection(geom.CollectionType)
	}
	for _, g := range parts {
		c.AddGeometry(g)
	}
	return c
}

func (p *kmlPolygon) polygon() (*geom.Polygon, error) {
	pts, err := kmlPoints(p.Outer.Ring.Coordinates)
	if err != nil {
		return nil, err
	}
	pg := geom.NewPolygon(geom.NewLineString(pts...))
	for _, in := range p.Inner {
		hole, err := kmlPoints(in.Ring.Coordinates)
		if err != nil {
			return nil, err
		}
		pg.AddInteriorRing(geom.NewLineString(hole...))
	}
	return pg, nil
}

func kmlPoints(s string) ([]geom.Point, error) {
	fields := strings.Fields(s)
	out := make([]geom.Point, 0, len(fields))
	for _, tuple := range fields {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			return nil, errors.Errorf("bad coordinate tuple %q", tuple)
		}
		var f [3]float64
		for i := 0; i < len(vals) && i < 3; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(vals[i]), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "coordinate tuple %q", tuple)
			}
			f[i] = v
		}
		if len(vals) >= 3 {
			out = append(out, geom.XYZ(f[0], f[1], f[2]))
		} else {
			out = append(out, geom.XY(f[0], f[1]))
		}
	}
	return out, nil
}
