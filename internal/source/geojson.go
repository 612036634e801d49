package source

import (
	"bytes"
	"encoding/json"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
	ggeojson "github.com/twpayne/go-geom/encoding/geojson"

	"geomap/internal/geom"
	"geomap/internal/geom/geomconv"
)

// featureMembers has the fields of a GeoJSON feature without its methods,
// so decoding is plain encoding/json.
type featureMembers geojson.Feature

// geojsonFeature keeps the geometry member raw so it can be decoded by
// go-geom; the id, bbox and properties land in the embedded members.
type geojsonFeature struct {
	featureMembers
	Geometry json.RawMessage `json:"geometry"`
}

type geojsonCollection struct {
	Features []*geojsonFeature `json:"features"`
}

// parseGeoJSON accepts a FeatureCollection, a single Feature or a bare
// geometry.
func parseGeoJSON(data []byte) ([]Feature, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, errors.Wrap(err, "invalid geojson")
	}
	var feats []*geojsonFeature
	switch head.Type {
	case "FeatureCollection":
		var fc geojsonCollection
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, errors.Wrap(err, "invalid feature collection")
		}
		feats = fc.Features
	case "Feature":
		var f geojsonFeature
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(err, "invalid feature")
		}
		feats = []*geojsonFeature{&f}
	case "":
		return nil, errors.New("invalid geojson: missing type")
	default:
		feats = []*geojsonFeature{{Geometry: data}}
	}
	out := make([]Feature, 0, len(feats))
	for i, f := range feats {
		if f == nil {
			continue
		}
		g, err := decodeGeometry(f.Geometry)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d", i)
		}
		if g == nil {
			continue
		}
		out = append(out, Feature{Geometry: g, Properties: f.Properties})
	}
	return out, nil
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// decodeGeometry converts one GeoJSON geometry through go-geom. A third
// ordinate becomes Z, a fourth M. A null geometry, and a null member of a
// GeometryCollection, decode to nil.
func decodeGeometry(raw json.RawMessage) (geom.Geometry, error) {
	if isNull(raw) {
		return nil, nil
	}
	var gg ggeojson.Geometry
	if err := json.Unmarshal(raw, &gg); err != nil {
		return nil, errors.Wrap(err, "invalid geometry")
	}
	if gg.Type == "GeometryCollection" {
		var parts []json.RawMessage
		if gg.Geometries != nil {
			if err := json.Unmarshal(*gg.Geometries, &parts); err != nil {
				return nil, errors.Wrap(err, "invalid geometry collection")
			}
		}
		c := geom.NewCollection(geom.CollectionType)
		for _, part := range parts {
			pg, err := decodeGeometry(part)
			if err != nil {
				return nil, err
			}
			if pg != nil {
				c.AddGeometry(pg)
			}
		}
		return c, nil
	}
	t, err := gg.Decode()
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s geometry", gg.Type)
	}
	return geomconv.From(t)
}
