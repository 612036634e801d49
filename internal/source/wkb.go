package source

import (
	"strings"

	"github.com/pkg/errors"

	"geomap/internal/geom/wkb"
)

// parseWKB reads either one raw WKB geometry or hex WKB, one geometry per
// line.
func parseWKB(data []byte) ([]Feature, error) {
	if !isHexText(data) {
		g, srid, err := wkb.Decode(data)
		if err != nil {
			return nil, err
		}
		return []Feature{{Geometry: g, Properties: sridProps(srid)}}, nil
	}
	var out []Feature
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		g, err := wkb.UnmarshalHex(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", i+1)
		}
		out = append(out, Feature{Geometry: g})
	}
	return out, nil
}

func sridProps(srid uint32) map[string]any {
	if srid == 0 {
		return nil
	}
	return map[string]any{"srid": srid}
}

func isHexText(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	for _, c := range data {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		case c == '\n' || c == '\r' || c == ' ' || c == '\t' || c == 'x' || c == 'X':
		default:
			return false
		}
	}
	return true
}
