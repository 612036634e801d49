package render

import (
	"sort"
)

// Layers selects what Draw renders.
type Layers struct {
	Points, Lines, Polygons bool
}

// AllLayers turns every layer on.
var AllLayers = Layers{Points: true, Lines: true, Polygons: true}

// Canvas is a braille buffer of w x h cells.
type Canvas struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func NewCanvas(w, h int) *Canvas {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &Canvas{w: w, h: h, m: m}
}

var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// Set sets a micro-pixel at micro coords (2x4 per cell).
func (c *Canvas) Set(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= c.h || cx >= c.w {
		return
	}
	c.m[cy][cx] |= brailleBits[mx%2][my%4]
}

// Line draws a segment on the micro-grid using Bresenham.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Fill paints the inside of rings with the even-odd rule, so holes stay
// open.
func (c *Canvas) Fill(rings []Path) {
	for y := 0; y < c.h*4; y++ {
		var xs []int
		for _, r := range rings {
			for i := range r {
				a, b := r[i], r[(i+1)%len(r)]
				if a[1] == b[1] {
					continue
				}
				if (y >= a[1] && y < b[1]) || (y >= b[1] && y < a[1]) {
					t := float64(y-a[1]) / float64(b[1]-a[1])
					xs = append(xs, int(float64(a[0])+t*float64(b[0]-a[0])))
				}
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := max(0, xs[i]); x <= xs[i+1] && x < c.w*2; x++ {
				c.Set(x, y)
			}
		}
	}
}

func (c *Canvas) polyline(p Path, closed bool) {
	for i := 1; i < len(p); i++ {
		c.Line(p[i-1][0], p[i-1][1], p[i][0], p[i][1])
	}
	if closed && len(p) > 2 {
		c.Line(p[len(p)-1][0], p[len(p)-1][1], p[0][0], p[0][1])
	}
	if len(p) == 1 {
		c.Set(p[0][0], p[0][1])
	}
}

// Draw renders the enabled layers of f: polygons filled then outlined,
// lines, then points.
func (c *Canvas) Draw(f *Frame, l Layers) {
	if l.Polygons {
		for _, poly := range f.Polygons {
			c.Fill(poly)
			for _, r := range poly {
				c.polyline(r, true)
			}
		}
	}
	if l.Lines {
		for _, p := range f.Lines {
			c.polyline(p, false)
		}
	}
	if l.Points {
		for _, q := range f.Points {
			c.Set(q[0], q[1])
		}
	}
}

// Lines returns one string per cell row; empty cells are spaces.
func (c *Canvas) Lines() []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		row := make([]rune, c.w)
		for x := 0; x < c.w; x++ {
			if mask := c.m[y][x]; mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
