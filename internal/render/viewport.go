// Package render turns features into projected braille paths for the
// terminal map.
package render

import (
	"math"

	"geomap/internal/geom"
)

// Viewport maps data coordinates onto a grid of terminal cells. Every cell
// holds a 2x4 braille micro-grid; zoom scales around the data center and
// offsets pan by whole cells.
type Viewport struct {
	BBox             geom.BBox
	Zoom             float64
	OffsetX, OffsetY int
	Width, Height    int
}

// frame returns the data box with zero-sized axes widened to one unit so
// single points and axis-parallel lines still project.
func (v Viewport) frame() (minX, minY, w, h float64, ok bool) {
	b := v.BBox
	if b.IsEmpty() || v.Width <= 1 || v.Height <= 1 {
		return 0, 0, 0, 0, false
	}
	w, h = b.Width(), b.Height()
	minX, minY = b.MinX, b.MinY
	if w == 0 {
		w, minX = 1, minX-0.5
	}
	if h == 0 {
		h, minY = 1, minY-0.5
	}
	return minX, minY, w, h, true
}

func (v Viewport) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// Project maps x/y to braille micro-pixel coordinates.
func (v Viewport) Project(x, y float64) (int, int, bool) {
	minX, minY, w, h, ok := v.frame()
	if !ok {
		return 0, 0, false
	}
	nx := (x - minX) / w
	ny := (y - minY) / h
	zx := 0.5 + (nx-0.5)*v.zoom()
	zy := 0.5 + (ny-0.5)*v.zoom()
	sx := int(math.Floor(zx*float64(v.Width*2-1))) + v.OffsetX*2
	sy := int(math.Floor((1.0-zy)*float64(v.Height*4-1))) + v.OffsetY*4
	return sx, sy, true
}

// ProjectCell maps x/y to a terminal cell.
func (v Viewport) ProjectCell(x, y float64) (int, int, bool) {
	mx, my, ok := v.Project(x, y)
	if !ok {
		return 0, 0, false
	}
	return floorDiv(mx, 2), floorDiv(my, 4), true
}

// Unproject converts a cell coordinate back to data coordinates.
func (v Viewport) Unproject(cx, cy int) (float64, float64, bool) {
	minX, minY, w, h, ok := v.frame()
	if !ok {
		return 0, 0, false
	}
	zx := float64(cx-v.OffsetX) / float64(v.Width-1)
	zy := 1.0 - float64(cy-v.OffsetY)/float64(v.Height-1)
	nx := 0.5 + (zx-0.5)/v.zoom()
	ny := 0.5 + (zy-0.5)/v.zoom()
	return minX + nx*w, minY + ny*h, true
}

// MapUnitsPerPixel is the data distance covered by one micro-pixel along
// the coarser axis.
func (v Viewport) MapUnitsPerPixel() float64 {
	_, _, w, h, ok := v.frame()
	if !ok {
		return 0
	}
	ux := w / v.zoom() / float64(v.Width*2-1)
	uy := h / v.zoom() / float64(v.Height*4-1)
	return math.Max(ux, uy)
}

// Extent is the data box currently visible.
func (v Viewport) Extent() geom.BBox {
	b := geom.EmptyBBox()
	x0, y0, ok := v.Unproject(0, 0)
	if !ok {
		return b
	}
	x1, y1, _ := v.Unproject(v.Width-1, v.Height-1)
	b.Extend(x0, y0)
	b.Extend(x1, y1)
	return b
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
