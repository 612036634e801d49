package source

import (
	"github.com/pkg/errors"
	ggeojson "github.com/twpayne/go-geom/encoding/geojson"

	"geomap/internal/geom/geomconv"
)

// EncodeGeoJSON writes features as a GeoJSON FeatureCollection. Curve
// kinds GeoJSON cannot express fail with geomconv.ErrUnsupported.
func EncodeGeoJSON(features []Feature) ([]byte, error) {
	fc := &ggeojson.FeatureCollection{}
	for i, f := range features {
		t, err := geomconv.To(f.Geometry)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d", i)
		}
		fc.Features = append(fc.Features, &ggeojson.Feature{
			Geometry:   t,
			Properties: f.Properties,
		})
	}
	b, err := fc.MarshalJSON()
	return b, errors.Wrap(err, "encoding geojson")
}
