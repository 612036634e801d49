package source

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"geomap/internal/geom"
	"geomap/internal/geom/wkt"
)

// parseCSV reads rows with either a WKT column (wkt, geometry, geom) or a
// latitude/longitude pair (lat|latitude|y and lon|lng|long|longitude|x,
// case-insensitive). An optional z|alt|altitude|elevation column adds Z.
// The other columns become properties; numeric cells are stored as float64.
func parseCSV(data []byte) ([]Feature, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "csv")
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	header := recs[0]
	idxWKT, idxLat, idxLon, idxZ := -1, -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "wkt", "geometry", "geom":
			if idxWKT == -1 {
				idxWKT = i
			}
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		case "z", "alt", "altitude", "elevation":
			if idxZ == -1 {
				idxZ = i
			}
		}
	}
	if idxWKT == -1 && (idxLat == -1 || idxLon == -1) {
		return nil, errors.New("csv: no wkt or latitude/longitude columns found")
	}
	geomCol := func(i int) bool {
		if idxWKT != -1 {
			return i == idxWKT
		}
		return i == idxLat || i == idxLon || i == idxZ
	}

	var out []Feature
	for n, row := range recs[1:] {
		var g geom.Geometry
		if idxWKT != -1 {
			if idxWKT >= len(row) || strings.TrimSpace(row[idxWKT]) == "" {
				continue
			}
			g, err = wkt.Unmarshal(row[idxWKT])
			if err != nil {
				return nil, errors.Wrapf(err, "csv row %d", n+2)
			}
		} else {
			if idxLon >= len(row) || idxLat >= len(row) {
				continue
			}
			lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
			lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
			if err1 != nil || err2 != nil {
				continue
			}
			p := geom.XY(lon, lat)
			if idxZ != -1 && idxZ < len(row) {
				if z, err := strconv.ParseFloat(strings.TrimSpace(row[idxZ]), 64); err == nil {
					p = geom.XYZ(lon, lat, z)
				}
			}
			g = geom.NewPoint(p)
		}
		props := map[string]any{}
		for i, cell := range row {
			if i >= len(header) || geomCol(i) {
				continue
			}
			props[strings.TrimSpace(header[i])] = cellValue(cell)
		}
		out = append(out, Feature{Geometry: g, Properties: props})
	}
	if len(out) == 0 {
		return nil, errors.New("csv: no valid rows parsed")
	}
	return out, nil
}

func cellValue(s string) any {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
