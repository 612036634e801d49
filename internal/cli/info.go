package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"geomap/internal/geom/wkb"
	"geomap/internal/source"
)

// Info is the sub-command invoked when running "geomap info".
var Info = newInfo()

func newInfo() *SubCommand {
	sc := &SubCommand{EnvPrefix: envPrefix}
	sc.Cmd = &cobra.Command{
		Use:   "info <file>",
		Short: "Print type, vertex count, extent and WKB size per feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := source.Load(args[0])
			if err != nil {
				return err
			}
			return printInfo(cmd.OutOrStdout(), ds)
		},
	}
	return sc
}

func printInfo(out io.Writer, ds *source.Dataset) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\ttype\tvertices\tbbox\twkb")
	var total int
	for i, f := range ds.Features {
		g := f.Geometry
		b := g.BoundingBox()
		size := wkb.Size(g)
		total += size
		fmt.Fprintf(w, "%d\t%s\t%s\t[%g %g %g %g]\t%s\n", i+1, g.Type(),
			humanize.Comma(int64(g.NumCoordinates())), b.MinX, b.MinY, b.MaxX, b.MaxY,
			humanize.Bytes(uint64(size)))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	b := ds.BBox
	_, err := fmt.Fprintf(out, "%d features, %s vertices, extent [%g %g %g %g], %s as WKB\n",
		len(ds.Features), humanize.Comma(int64(ds.NumCoordinates())),
		b.MinX, b.MinY, b.MaxX, b.MaxY, humanize.Bytes(uint64(total)))
	return err
}
