package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"geomap/internal/simplify"
	"geomap/internal/source"
)

// Simplify is the sub-command invoked when running "geomap simplify".
var Simplify = newSimplify()

func newSimplify() *SubCommand {
	sc := &SubCommand{EnvPrefix: envPrefix}
	sc.Cmd = &cobra.Command{
		Use:   "simplify <file>",
		Short: "Simplify every feature at a tolerance in map units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSettings(sc.Conf, true)
			if err != nil {
				return err
			}
			log, err := newLogger(sc.Conf)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ds, err := source.Load(args[0])
			if err != nil {
				return err
			}
			out, err := simplifyAll(cmd.Context(), ds.Features, s)
			if err != nil {
				return err
			}
			before, after := ds.NumCoordinates(), 0
			for _, f := range out {
				after += f.Geometry.NumCoordinates()
			}
			log.Info("simplified", zap.String("path", args[0]),
				zap.Stringer("algorithm", s.algorithm), zap.Float64("tolerance", s.tolerance),
				zap.Int("before", before), zap.Int("after", after))
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s -> %s vertices (%.1f%%)\n", s.algorithm,
				humanize.Comma(int64(before)), humanize.Comma(int64(after)),
				100*float64(after)/float64(max(before, 1)))
			return write(cmd.OutOrStdout(), out,
				sc.Conf.GetString("output"), sc.Conf.GetInt("precision"))
		},
	}
	outputFlags(sc)
	return sc
}

// simplifyAll runs simplify.Geometry on every feature with the feature's own
// bounding box as envelope. Properties are shared with the input. Features
// without a geometry are dropped.
func simplifyAll(ctx context.Context, features []source.Feature, s settings) ([]source.Feature, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	workers := s.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]source.Feature, len(features))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range features {
		if f.Geometry == nil {
			continue
		}
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sg := simplify.Geometry(s.flags, s.algorithm, f.Geometry,
				f.Geometry.BoundingBox(), s.tolerance, false)
			out[i] = source.Feature{Geometry: sg, Properties: f.Properties}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	kept := out[:0]
	for _, f := range out {
		if f.Geometry != nil {
			kept = append(kept, f)
		}
	}
	return kept, nil
}
