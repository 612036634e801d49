package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"geomap/internal/geom/wkb"
	"geomap/internal/geom/wkt"
	"geomap/internal/source"
)

// Output formats accepted by --output.
const (
	formatWKT     = "wkt"
	formatWKB     = "wkb"
	formatGeoJSON = "geojson"
)

// write encodes features to w: WKT or hex WKB one geometry per line, or a
// single GeoJSON FeatureCollection.
func write(w io.Writer, features []source.Feature, format string, precision int) error {
	switch strings.ToLower(format) {
	case formatWKT, "":
		for _, f := range features {
			if _, err := fmt.Fprintln(w, wkt.MarshalPrecision(f.Geometry, precision)); err != nil {
				return err
			}
		}
		return nil
	case formatWKB:
		for i, f := range features {
			h, err := wkb.MarshalHex(f.Geometry)
			if err != nil {
				return errors.Wrapf(err, "feature %d", i)
			}
			if _, err := fmt.Fprintln(w, h); err != nil {
				return err
			}
		}
		return nil
	case formatGeoJSON:
		b, err := source.EncodeGeoJSON(features)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	return errors.Errorf("unknown output format %q, want one of [wkt, wkb, geojson]", format)
}

func outputFlags(sc *SubCommand) {
	flag := sc.Cmd.Flags()
	flag.String("output", formatWKT, "Output format, one of [wkt, wkb, geojson].")
	flag.Int("precision", wkt.DefaultPrecision,
		"Significant digits for WKT output; -1 prints the shortest exact form.")
}
