// Package source loads feature datasets from GeoJSON, CSV, KML, WKT and WKB
// files into geom values.
package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"geomap/internal/geom"
	"geomap/internal/geom/wkt"
)

// ErrUnsupported is returned by Load for an unknown file extension.
var ErrUnsupported = errors.New("unsupported file type")

// ErrNoFeatures is returned when a file parses but holds no geometry.
var ErrNoFeatures = errors.New("no geometries found")

// Feature is one geometry with its attributes.
type Feature struct {
	Geometry   geom.Geometry
	Properties map[string]any
}

// Dataset is the result of loading a file.
type Dataset struct {
	Path     string
	Features []Feature
	// Columns is the union of property keys in first-seen order.
	Columns []string
	BBox    geom.BBox
}

// Extensions lists the file extensions Load understands.
var Extensions = []string{".geojson", ".json", ".csv", ".kml", ".wkt", ".wkb"}

// Supported reports whether Load handles path's extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads path, choosing the format by extension.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	var features []Feature
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		features, err = parseGeoJSON(data)
	case ".csv":
		features, err = parseCSV(data)
	case ".kml":
		features, err = parseKML(data)
	case ".wkt":
		features, err = parseWKTLines(string(data))
	case ".wkb":
		features, err = parseWKB(data)
	default:
		return nil, errors.Wrapf(ErrUnsupported, "%q", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", filepath.Base(path))
	}
	ds, err := NewDataset(features)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", filepath.Base(path))
	}
	ds.Path = path
	return ds, nil
}

// ParseWKT parses pasted text: one geometry, or one geometry per line.
func ParseWKT(text string) (*Dataset, error) {
	features, err := parseWKTLines(text)
	if err != nil {
		return nil, err
	}
	return NewDataset(features)
}

// NewDataset computes the columns and extent of features.
func NewDataset(features []Feature) (*Dataset, error) {
	if len(features) == 0 {
		return nil, ErrNoFeatures
	}
	ds := &Dataset{Features: features, BBox: geom.EmptyBBox()}
	seen := map[string]bool{}
	for _, f := range features {
		ds.BBox = ds.BBox.Union(f.Geometry.BoundingBox())
		keys := make([]string, 0, len(f.Properties))
		for k := range f.Properties {
			if !seen[k] {
				keys = append(keys, k)
			}
		}
		// map order is random; keep new keys of one feature stable
		sort.Strings(keys)
		for _, k := range keys {
			seen[k] = true
			ds.Columns = append(ds.Columns, k)
		}
	}
	return ds, nil
}

// NumCoordinates sums the vertices of every feature.
func (d *Dataset) NumCoordinates() int {
	n := 0
	for _, f := range d.Features {
		n += f.Geometry.NumCoordinates()
	}
	return n
}

func parseWKTLines(text string) ([]Feature, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("empty wkt")
	}
	if g, err := wkt.Unmarshal(text); err == nil {
		return []Feature{{Geometry: g}}, nil
	}
	var out []Feature
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		g, err := wkt.Unmarshal(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", i+1)
		}
		out = append(out, Feature{Geometry: g})
	}
	return out, nil
}
