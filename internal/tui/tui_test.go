package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geomap/internal/simplify"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func denseLine() string {
	var b strings.Builder
	b.WriteString("LINESTRING (")
	for i := 0; i < 500; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d %d", i, i%2)
	}
	b.WriteString(")")
	return b.String()
}

func resize(t *testing.T, m Model, w, h int) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(Model)
}

func TestCycleAlgorithm(t *testing.T) {
	m := New(Config{})
	assert.Equal(t, "off", m.simplifyLabel())

	var seen []string
	for i := 0; i < 4; i++ {
		m.handleKey("s")
		seen = append(seen, m.simplifyLabel())
	}
	assert.Equal(t, []string{"distance", "snaptogrid", "visvalingam", "off"}, seen)
	assert.Equal(t, "simplify: off", m.status)
}

func TestToleranceKeys(t *testing.T) {
	m := New(Config{})
	assert.Equal(t, 1.0, m.tolerance)

	for i := 0; i < 20; i++ {
		m.handleKey("]")
	}
	assert.Equal(t, float64(maxTolerance), m.tolerance)
	for i := 0; i < 40; i++ {
		m.handleKey("[")
	}
	assert.Equal(t, minTolerance, m.tolerance)
}

func TestLayerKeys(t *testing.T) {
	m := New(Config{})
	m.handleKey("1")
	assert.False(t, m.layers.Points)
	assert.True(t, m.layers.Lines)

	m.handleKey("l")
	assert.True(t, m.layers.Points && m.layers.Lines && m.layers.Polygons)
	m.handleKey("l")
	assert.False(t, m.layers.Points || m.layers.Lines || m.layers.Polygons)

	assert.True(t, m.handleKey("q"))
	assert.False(t, m.handleKey("e"))
	assert.True(t, m.envelope)
}

func TestLoadAndRender(t *testing.T) {
	path := writeFile(t, "line.wkt", denseLine())
	m := resize(t, NewWithPath(Config{}, path), 80, 24)

	require.NotNil(t, m.data)
	require.NotNil(t, m.frame)
	assert.Equal(t, 500, m.frame.Before)
	assert.Equal(t, 500, m.frame.After)
	assert.Contains(t, m.status, "LineString=1")

	assert.Contains(t, m.View(), "geomap")
	assert.Contains(t, m.simplifyStatus(), "simplify=off tol=1.00px vertices 500→500")

	m.handleKey("s")
	assert.Less(t, m.frame.After, m.frame.Before)
	after := m.frame.After

	m.handleKey("]")
	m.handleKey("]")
	assert.LessOrEqual(t, m.frame.After, after)

	m.handleKey("+")
	assert.InDelta(t, 1.2, m.zoom, 1e-9)
	m.handleKey("right")
	assert.Equal(t, 2, m.offsetX)
}

func TestConfigSimplify(t *testing.T) {
	path := writeFile(t, "line.wkt", denseLine())
	cfg := Config{Simplify: true, Algorithm: simplify.Visvalingam, Tolerance: 2}
	m := resize(t, NewWithPath(cfg, path), 80, 24)
	require.NotNil(t, m.frame)
	assert.Less(t, m.frame.After, 500)
	assert.Contains(t, m.simplifyStatus(), "simplify=visvalingam tol=2.00px")
}

func TestLoadError(t *testing.T) {
	m := NewWithPath(Config{}, filepath.Join(t.TempDir(), "missing.geojson"))
	assert.Nil(t, m.data)
	assert.True(t, strings.HasPrefix(m.status, "load error: "), m.status)
}

func TestPaste(t *testing.T) {
	m := resize(t, New(Config{}), 80, 24)
	m.handleKey("p")
	require.True(t, m.pasteMode)

	m.ta.SetValue("POINT (1 2)\nPOINT (3 4)")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.False(t, m.pasteMode)
	require.NotNil(t, m.data)
	assert.Len(t, m.data.Features, 2)
	assert.Equal(t, "rendered WKT  counts: Point=2", m.status)
	require.NotNil(t, m.frame)
	assert.Len(t, m.frame.Points, 2)

	m.handleKey("p")
	m.ta.SetValue("NOT WKT")
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.True(t, m.pasteMode)
	assert.True(t, strings.HasPrefix(m.status, "wkt error: "), m.status)
	assert.Len(t, m.data.Features, 2)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	assert.False(t, m.pasteMode)
}

func TestAttributes(t *testing.T) {
	path := writeFile(t, "points.csv", "name,lat,lon,rank\nA,1,2,1\nB,3,4,true\n")
	m := resize(t, NewWithPath(Config{}, path), 100, 30)
	m.handleKey("a")
	require.True(t, m.showAttrs)
	assert.Len(t, m.tbl.Rows(), 2)
	assert.Equal(t, []string{"1", "Point", "A", "1"}, []string(m.tbl.Rows()[0]))
	assert.Equal(t, "true", m.tbl.Rows()[1][3])

	bare := writeFile(t, "shapes.wkt", "POINT (1 1)")
	m = resize(t, NewWithPath(Config{}, bare), 100, 30)
	m.handleKey("a")
	assert.False(t, m.showAttrs)
	assert.Equal(t, "no attributes for current dataset", m.status)
}

func TestInspect(t *testing.T) {
	m := New(Config{})
	m.handleKey("i")
	assert.Equal(t, "no feature nearby", m.inspectPopup)

	path := writeFile(t, "poly.wkt", "POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))")
	m = resize(t, NewWithPath(Config{}, path), 80, 24)
	m.handleKey("i")
	assert.Contains(t, m.inspectPopup, "type: Polygon")
	assert.Contains(t, m.inspectPopup, "wkb size: 93 B")
	assert.Contains(t, m.inspectPopup, "area: 100")

	m.handleKey("esc")
	assert.Empty(t, m.inspectPopup)
}

func TestHover(t *testing.T) {
	path := writeFile(t, "line.wkt", "LINESTRING (0 0, 10 10)")
	m := resize(t, NewWithPath(Config{}, path), 80, 24)

	next, _ := m.Update(tea.MouseMsg{X: 0, Y: 1})
	m = next.(Model)
	require.True(t, m.hovering)
	require.True(t, m.hoverHasGeo)
	assert.InDelta(t, 0, m.hoverLon, 1e-9)
	assert.InDelta(t, 10, m.hoverLat, 1e-9)
	assert.Contains(t, m.hoverStatus(), "x=0.00000 y=10.00000")

	next, _ = m.Update(tea.MouseMsg{X: 0, Y: 0})
	m = next.(Model)
	assert.False(t, m.hovering)
	assert.Empty(t, m.hoverStatus())
}

func TestViewBeforeResize(t *testing.T) {
	assert.Empty(t, New(Config{}).View())
}
