package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geomap/internal/geom"
	"geomap/internal/geom/geomconv"
	"geomap/internal/geom/wkb"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

const featureCollection = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "a", "pop": 12},
     "geometry": {"type": "Point", "coordinates": [1, 2]}},
    {"type": "Feature", "properties": {"name": "b", "kind": "road"},
     "geometry": {"type": "LineString", "coordinates": [[0, 0, 5], [10, 10, 6]]}},
    {"type": "Feature", "properties": null,
     "geometry": {"type": "Polygon", "coordinates": [
       [[0, 0], [20, 0], [20, 20], [0, 20], [0, 0]],
       [[5, 5], [10, 5], [10, 10], [5, 5]]]}},
    {"type": "Feature", "properties": {}, "geometry": null}
  ]
}`

func TestLoadGeoJSON(t *testing.T) {
	ds, err := Load(writeFile(t, "data.geojson", []byte(featureCollection)))
	require.NoError(t, err)
	require.Len(t, ds.Features, 3)

	assert.Equal(t, []string{"name", "pop", "kind"}, ds.Columns)
	assert.Equal(t, geom.BBox{MinX: 0, MinY: 0, MaxX: 20, MaxY: 20}, ds.BBox)
	assert.Equal(t, 1+2+9, ds.NumCoordinates())

	assert.Equal(t, 12.0, ds.Features[0].Properties["pop"])
	assert.Equal(t, geom.LineStringType|geom.FlagZ, ds.Features[1].Geometry.Type())
	poly := ds.Features[2].Geometry.(*geom.Polygon)
	assert.Equal(t, 1, poly.NumInteriorRings())
	assert.InDelta(t, 400-12.5, poly.Area(), 1e-9)
}

func TestLoadGeoJSONForms(t *testing.T) {
	ds, err := Load(writeFile(t, "one.json", []byte(`{"type":"Feature","properties":{"id":7},"geometry":{"type":"MultiPoint","coordinates":[[1,1],[2,2]]}}`)))
	require.NoError(t, err)
	require.Len(t, ds.Features, 1)
	assert.Equal(t, geom.MultiPointType, ds.Features[0].Geometry.Type())

	ds, err = Load(writeFile(t, "bare.geojson", []byte(`{"type":"GeometryCollection","geometries":[
		{"type":"Point","coordinates":[1,1]},
		{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]]]}]}`)))
	require.NoError(t, err)
	c := ds.Features[0].Geometry.(*geom.GeometryCollection)
	require.Equal(t, 2, c.NumGeometries())
	assert.Equal(t, geom.MultiPolygonType, c.GeometryN(1).Type())

	_, err = Load(writeFile(t, "empty.geojson", []byte(`{"type":"FeatureCollection","features":[]}`)))
	assert.Equal(t, ErrNoFeatures, errors.Cause(err))

	_, err = Load(writeFile(t, "bad.geojson", []byte(`{"features":[]}`)))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "broken.geojson", []byte(`{"type":`)))
	assert.Error(t, err)
}

func TestParseGeoJSONSkipsNulls(t *testing.T) {
	feats, err := parseGeoJSON([]byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"id":1},"geometry":null},
		null,
		{"type":"Feature","properties":{"id":2},"geometry":{"type":"GeometryCollection","geometries":[
			null,
			{"type":"Point","coordinates":[1,2]}]}}]}`))
	require.NoError(t, err)
	require.Len(t, feats, 1)
	assert.Equal(t, 2.0, feats[0].Properties["id"])
	c := feats[0].Geometry.(*geom.GeometryCollection)
	require.Equal(t, 1, c.NumGeometries())
	assert.Equal(t, geom.XY(1, 2), *c.GeometryN(0).(*geom.Point))
}

func TestParseGeoJSONOrdinates(t *testing.T) {
	feats, err := parseGeoJSON([]byte(`{"type":"LineString","coordinates":[[0,0,1,2],[1,1,3,4]]}`))
	require.NoError(t, err)
	require.Len(t, feats, 1)
	l := feats[0].Geometry.(*geom.LineString)
	assert.Equal(t, geom.LineStringType|geom.FlagZ|geom.FlagM, l.Type())
	assert.Equal(t, geom.XYZM(1, 1, 3, 4), l.PointAt(1))

	_, err = parseGeoJSON([]byte(`{"type":"Feature","geometry":{"type":"Polygon","coordinates":"x"}}`))
	assert.Error(t, err)
}

func TestLoadCSVLatLon(t *testing.T) {
	data := "name,lat,lon,alt\nA,10,20,5\nB,bad,1,2\nC,11,21,\n"
	ds, err := Load(writeFile(t, "points.csv", []byte(data)))
	require.NoError(t, err)
	require.Len(t, ds.Features, 2)

	assert.Equal(t, []string{"name"}, ds.Columns)
	a := ds.Features[0].Geometry.(*geom.Point)
	assert.Equal(t, geom.XYZ(20, 10, 5), *a)
	c := ds.Features[1].Geometry.(*geom.Point)
	assert.Equal(t, geom.XY(21, 11), *c)
	assert.Equal(t, "C", ds.Features[1].Properties["name"])
}

func TestLoadCSVWKT(t *testing.T) {
	data := "id,WKT,note\n1,\"LINESTRING (0 0, 1 1)\",first\n2,\"POINT (5 5)\",\n3,,skipped\n"
	ds, err := Load(writeFile(t, "shapes.csv", []byte(data)))
	require.NoError(t, err)
	require.Len(t, ds.Features, 2)
	assert.Equal(t, []string{"id", "note"}, ds.Columns)
	assert.Equal(t, 1.0, ds.Features[0].Properties["id"])
	assert.Equal(t, "first", ds.Features[0].Properties["note"])
	assert.Equal(t, geom.LineStringType, ds.Features[0].Geometry.Type())

	_, err = Load(writeFile(t, "bad.csv", []byte("wkt\nLINESTRING (0 0,\n")))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "nogeom.csv", []byte("a,b\n1,2\n")))
	assert.Error(t, err)
}

const kmlDoc = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Placemark>
      <name>summit</name>
      <description> top </description>
      <Point><coordinates>8.5,47.3,1200</coordinates></Point>
    </Placemark>
    <Folder>
      <Placemark>
        <name>trails</name>
        <MultiGeometry>
          <LineString><coordinates>0,0 1,1</coordinates></LineString>
          <LineString><coordinates>2,2 3,3 4,2</coordinates></LineString>
        </MultiGeometry>
      </Placemark>
      <Placemark>
        <name>lake</name>
        <Polygon>
          <outerBoundaryIs><LinearRing><coordinates>
            0,0 10,0 10,10 0,10 0,0
          </coordinates></LinearRing></outerBoundaryIs>
          <innerBoundaryIs><LinearRing><coordinates>
            2,2 4,2 4,4 2,2
          </coordinates></LinearRing></innerBoundaryIs>
        </Polygon>
      </Placemark>
      <Placemark><name>nothing</name></Placemark>
    </Folder>
  </Document>
</kml>`

func TestLoadKML(t *testing.T) {
	ds, err := Load(writeFile(t, "map.kml", []byte(kmlDoc)))
	require.NoError(t, err)
	require.Len(t, ds.Features, 3)

	summit := ds.Features[0]
	assert.Equal(t, geom.XYZ(8.5, 47.3, 1200), *summit.Geometry.(*geom.Point))
	assert.Equal(t, "top", summit.Properties["description"])

	trails := ds.Features[1].Geometry.(*geom.GeometryCollection)
	assert.Equal(t, geom.MultiLineStringType, trails.Type())
	assert.Equal(t, 5, trails.NumCoordinates())

	lake := ds.Features[2].Geometry.(*geom.Polygon)
	assert.InDelta(t, 98, lake.Area(), 1e-9)
	assert.Equal(t, "lake", ds.Features[2].Properties["name"])

	_, err = Load(writeFile(t, "bad.kml", []byte(`<kml><Placemark><Point><coordinates>1</coordinates></Point></Placemark></kml>`)))
	assert.Error(t, err)
}

func TestCollect(t *testing.T) {
	mixed := collect([]geom.Geometry{geom.NewPoint(geom.XY(0, 0)), geom.NewLineString(geom.XY(0, 0), geom.XY(1, 1))})
	assert.Equal(t, geom.CollectionType, mixed.Type())

	pts := collect([]geom.Geometry{geom.NewPoint(geom.XY(0, 0)), geom.NewPoint(geom.XY(1, 1))})
	assert.Equal(t, geom.MultiPointType, pts.Type())
}

func TestLoadWKTFile(t *testing.T) {
	ds, err := Load(writeFile(t, "shapes.wkt", []byte("POINT (1 1)\n# comment\n\nLINESTRING (0 0, 2 2)\n")))
	require.NoError(t, err)
	require.Len(t, ds.Features, 2)
	assert.Equal(t, geom.BBox{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}, ds.BBox)

	_, err = Load(writeFile(t, "bad.wkt", []byte("POINT (1 1)\nLINESTRING (0 0,\n")))
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "line 2"), err.Error())
}

func TestLoadWKB(t *testing.T) {
	l := geom.NewLineString(geom.XY(0, 0), geom.XY(3, 4))
	raw, err := wkb.Marshal(l)
	require.NoError(t, err)

	ds, err := Load(writeFile(t, "line.wkb", raw))
	require.NoError(t, err)
	require.Len(t, ds.Features, 1)
	assert.True(t, geom.Equal(l, ds.Features[0].Geometry))
	assert.Nil(t, ds.Features[0].Properties)

	pt := geom.NewPoint(geom.XYZ(1, 2, 3))
	hexPt, err := wkb.MarshalHex(pt)
	require.NoError(t, err)
	hexLine, err := wkb.MarshalHex(l)
	require.NoError(t, err)
	ds, err = Load(writeFile(t, "rows.wkb", []byte(hexPt+"\n"+strings.ToLower(hexLine)+"\n")))
	require.NoError(t, err)
	require.Len(t, ds.Features, 2)
	assert.True(t, geom.Equal(pt, ds.Features[0].Geometry))

	_, err = Load(writeFile(t, "short.wkb", raw[:7]))
	assert.Equal(t, wkb.ErrTruncated, errors.Cause(err))
}

func TestSRIDProperty(t *testing.T) {
	assert.Nil(t, sridProps(0))
	assert.Equal(t, map[string]any{"srid": uint32(4326)}, sridProps(4326))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeFile(t, "notes.txt", []byte("hello")))
	assert.Equal(t, ErrUnsupported, errors.Cause(err))

	_, err = Load(filepath.Join(t.TempDir(), "missing.geojson"))
	assert.Error(t, err)

	assert.True(t, Supported("a/b/C.GeoJSON"))
	assert.False(t, Supported("a.shp"))
}

func TestParseWKT(t *testing.T) {
	ds, err := ParseWKT("POLYGON ((0 0, 1 0,\n 1 1, 0 0))")
	require.NoError(t, err)
	require.Len(t, ds.Features, 1)
	assert.Equal(t, geom.PolygonType, ds.Features[0].Geometry.Type())

	ds, err = ParseWKT("POINT (5 5)\nPOINT (6 7)")
	require.NoError(t, err)
	assert.Len(t, ds.Features, 2)
	assert.Equal(t, 2, ds.NumCoordinates())

	_, err = ParseWKT("   ")
	assert.Error(t, err)
	_, err = ParseWKT("# only a comment")
	assert.Equal(t, ErrNoFeatures, errors.Cause(err))
}

func TestEncodeGeoJSON(t *testing.T) {
	features := []Feature{
		{Geometry: geom.NewPoint(geom.XY(1, 2)), Properties: map[string]any{"name": "a"}},
		{Geometry: geom.NewPolygon(geom.NewLineString(geom.XY(0, 0), geom.XY(4, 0), geom.XY(4, 4), geom.XY(0, 0)))},
		{Geometry: geom.NewMultiLineString(
			geom.NewLineString(geom.XYZ(0, 0, 1), geom.XYZ(1, 1, 2)),
		)},
	}
	b, err := EncodeGeoJSON(features)
	require.NoError(t, err)

	back, err := parseGeoJSON(b)
	require.NoError(t, err)
	require.Len(t, back, len(features))
	for i := range features {
		assert.True(t, geom.Equal(features[i].Geometry, back[i].Geometry), "feature %d", i)
	}
	assert.Equal(t, "a", back[0].Properties["name"])

	_, err = EncodeGeoJSON([]Feature{{Geometry: geom.NewCircularString(geom.XY(0, 0), geom.XY(1, 1), geom.XY(2, 0))}})
	assert.Equal(t, geomconv.ErrUnsupported, errors.Cause(err))
}
