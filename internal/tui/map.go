package tui

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"geomap/internal/geom"
	"geomap/internal/geom/wkb"
	"geomap/internal/geom/wkt"
	"geomap/internal/render"
)

// refreshFrame re-simplifies and re-projects the dataset for the current
// viewport. Call it after any change to data, zoom, pan, size or options.
func (m *Model) refreshFrame() {
	if m.data == nil || m.width == 0 {
		m.frame = nil
		return
	}
	fr, err := render.Prepare(context.Background(), m.data.Features, m.viewport(), m.renderOptions())
	if err != nil {
		m.log.Error("render", zap.Error(err))
		m.status = "render error: " + err.Error()
		m.frame = nil
		return
	}
	m.frame = fr
	m.log.Debug("frame", zap.Int("before", fr.Before), zap.Int("after", fr.After),
		zap.Float64("zoom", m.zoom))
}

func (m Model) renderMap(w, h int) string {
	c := render.NewCanvas(w, h)
	if m.frame != nil {
		c.Draw(m.frame, m.layers)
	}
	lines := c.Lines()
	// Hover highlight: draw an orange circle at the hovered vertex cell
	if m.hovering {
		cx := m.hoverMicX / 2
		cy := m.hoverMicY / 4
		if cy >= 0 && cy < len(lines) {
			r := []rune(lines[cy])
			if cx >= 0 && cx < len(r) {
				circle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("◯")
				lines[cy] = string(r[:cx]) + circle + string(r[cx+1:])
			}
		}
	}
	return strings.Join(lines, "\n")
}

// inspectNearest finds the feature vertex closest to the viewport center.
func (m Model) inspectNearest() (feature int, vertex geom.Point, ok bool) {
	if m.data == nil {
		return 0, geom.Point{}, false
	}
	vp := m.viewport()
	cx, cy := vp.Width, vp.Height*2
	best := math.MaxInt
	for i, f := range m.data.Features {
		for _, part := range f.Geometry.CoordinateSequence() {
			for _, ring := range part {
				for _, p := range ring {
					sx, sy, ok := vp.Project(p.X(), p.Y())
					if !ok {
						continue
					}
					dx, dy := sx-cx, sy-cy
					if d := dx*dx + dy*dy; d < best {
						best, feature, vertex = d, i, p
					}
				}
			}
		}
	}
	return feature, vertex, best != math.MaxInt
}

func (m Model) inspectText(i int, p geom.Point) string {
	f := m.data.Features[i]
	g := f.Geometry
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<pasted>"
	}
	b := g.BoundingBox()
	preview := wkt.MarshalPrecision(g, 6)
	if len(preview) > 40 {
		preview = preview[:37] + "..."
	}
	meta := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("feature: %d of %d", i+1, len(m.data.Features)),
		fmt.Sprintf("type: %s", g.Type()),
		fmt.Sprintf("vertices: %s", humanize.Comma(int64(g.NumCoordinates()))),
		fmt.Sprintf("wkb size: %s", humanize.Bytes(uint64(wkb.Size(g)))),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", b.MinX, b.MinY, b.MaxX, b.MaxY),
		fmt.Sprintf("nearest: x=%.6f y=%.6f", p.X(), p.Y()),
		"wkt: " + preview,
	}
	if s := g.Length(); s > 0 {
		meta = append(meta, fmt.Sprintf("length: %.6g", s))
	}
	if a := g.Area(); a > 0 {
		meta = append(meta, fmt.Sprintf("area: %.6g", a))
	}
	return strings.Join(meta, "\n")
}
