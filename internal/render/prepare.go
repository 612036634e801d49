package render

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"geomap/internal/geom"
	"geomap/internal/simplify"
	"geomap/internal/source"
)

// Options controls simplification during Prepare. Tolerance is in
// micro-pixels and is converted to map units through the viewport.
type Options struct {
	Flags     simplify.Flag
	Algorithm simplify.Algorithm
	Tolerance float64
	Workers   int
}

// Path is a run of projected micro-pixel coordinates.
type Path [][2]int

// Frame is one render's worth of projected geometry.
type Frame struct {
	Points   Path
	Lines    []Path
	Polygons [][]Path // rings per polygon, exterior first

	// Vertex counts before and after simplification.
	Before, After int
}

type prepared struct {
	points   Path
	lines    []Path
	polygons [][]Path
	before   int
	after    int
}

// Prepare simplifies every feature concurrently and projects the result.
// Features are only read; the simplifier always returns new geometries.
func Prepare(ctx context.Context, features []source.Feature, vp Viewport, opts Options) (*Frame, error) {
	s := simplify.Simplifier{
		Flags:     opts.Flags,
		Algorithm: opts.Algorithm,
		Tolerance: opts.Tolerance * vp.MapUnitsPerPixel(),
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]prepared, len(features))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range features {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f := features[i].Geometry
			if f == nil {
				return nil
			}
			sg := s.Simplify(f)
			p := &out[i]
			p.before = f.NumCoordinates()
			p.after = sg.NumCoordinates()
			p.flatten(sg, vp)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "preparing frame")
	}
	fr := &Frame{}
	for _, p := range out {
		fr.Points = append(fr.Points, p.points...)
		fr.Lines = append(fr.Lines, p.lines...)
		fr.Polygons = append(fr.Polygons, p.polygons...)
		fr.Before += p.before
		fr.After += p.after
	}
	return fr, nil
}

func (p *prepared) flatten(g geom.Geometry, vp Viewport) {
	switch g := g.(type) {
	case *geom.Point:
		if x, y, ok := vp.Project(g.X(), g.Y()); ok {
			p.points = append(p.points, [2]int{x, y})
		}
	case *geom.Polygon:
		var rings []Path
		for _, r := range g.Rings() {
			if path := project(r.Points(), vp); len(path) >= 3 {
				rings = append(rings, path)
			}
		}
		if len(rings) > 0 {
			p.polygons = append(p.polygons, rings)
		}
	case geom.Curve:
		if path := project(g.Points(), vp); len(path) > 0 {
			p.lines = append(p.lines, path)
		}
	case *geom.GeometryCollection:
		for i := 0; i < g.NumGeometries(); i++ {
			p.flatten(g.GeometryN(i), vp)
		}
	}
}

func project(pts []geom.Point, vp Viewport) Path {
	out := make(Path, 0, len(pts))
	for _, pt := range pts {
		if x, y, ok := vp.Project(pt.X(), pt.Y()); ok {
			out = append(out, [2]int{x, y})
		}
	}
	return out
}

// Nearest returns the frame vertex closest to micro-pixel (mx, my).
func (f *Frame) Nearest(mx, my int) ([2]int, bool) {
	best := -1
	var at [2]int
	visit := func(q [2]int) {
		dx, dy := q[0]-mx, q[1]-my
		if d := dx*dx + dy*dy; best < 0 || d < best {
			best, at = d, q
		}
	}
	for _, q := range f.Points {
		visit(q)
	}
	for _, l := range f.Lines {
		for _, q := range l {
			visit(q)
		}
	}
	for _, poly := range f.Polygons {
		for _, r := range poly {
			for _, q := range r {
				visit(q)
			}
		}
	}
	return at, best >= 0
}
