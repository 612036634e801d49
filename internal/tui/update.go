package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"geomap/internal/simplify"
	"geomap/internal/source"
)

const (
	minTolerance = 0.25
	maxTolerance = 64
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			_, _, _, h := m.mapRect()
			m.l.SetSize(sidebarWidth-2, h-2)
		}
		m.refreshFrame()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.handleKey(msg.String()) {
			return m, tea.Quit
		}
	case tea.MouseMsg:
		m.updateHover(msg.X, msg.Y)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		ds, err := source.ParseWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.selPath = ""
		m.setData(ds)
		m.status = "rendered WKT  " + m.counts()
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// handleKey applies a view-mode key and reports whether to quit.
func (m *Model) handleKey(key string) bool {
	redraw := false
	switch key {
	case "ctrl+c", "q":
		return true
	case "1":
		m.layers.Points = !m.layers.Points
		m.status = fmt.Sprintf("points: %v", m.layers.Points)
	case "2":
		m.layers.Lines = !m.layers.Lines
		m.status = fmt.Sprintf("lines: %v", m.layers.Lines)
	case "3":
		m.layers.Polygons = !m.layers.Polygons
		m.status = fmt.Sprintf("polys: %v", m.layers.Polygons)
	case "l":
		// toggle all layers
		all := m.layers.Points && m.layers.Lines && m.layers.Polygons
		m.layers.Points, m.layers.Lines, m.layers.Polygons = !all, !all, !all
		m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.layers.Points, m.layers.Lines, m.layers.Polygons)
	case "+", "=":
		if m.zoom < 64 {
			m.zoom *= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			redraw = true
		}
	case "-", "_":
		if m.zoom > 0.05 {
			m.zoom /= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			redraw = true
		}
	case "s":
		m.cycleAlgorithm()
		redraw = true
	case "e":
		m.envelope = !m.envelope
		m.status = fmt.Sprintf("envelope replacement: %v", m.envelope)
		redraw = true
	case "[":
		m.tolerance = max(minTolerance, m.tolerance/1.5)
		m.status = fmt.Sprintf("tolerance: %.2fpx", m.tolerance)
		redraw = true
	case "]":
		m.tolerance = min(maxTolerance, m.tolerance*1.5)
		m.status = fmt.Sprintf("tolerance: %.2fpx", m.tolerance)
		redraw = true
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			_, _, _, h := m.mapRect()
			m.l.SetSize(sidebarWidth-2, h-2)
		}
		redraw = true
	case "p":
		m.pasteMode = !m.pasteMode
		if m.pasteMode {
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		} else {
			m.status = "view mode"
			m.ta.Blur()
		}
	case "h":
		m.helpVisible = !m.helpVisible
	case "a":
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrsFromCurrent()
		}
	case "i":
		if i, p, ok := m.inspectNearest(); ok {
			m.inspectPopup = m.inspectText(i, p)
			m.status = "inspect popup"
		} else {
			m.inspectPopup = "no feature nearby"
			m.status = m.inspectPopup
		}
	case "esc":
		m.inspectPopup = ""
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
	case "up":
		m.offsetY--
		redraw = true
	case "down":
		m.offsetY++
		redraw = true
	case "left":
		m.offsetX -= 2
		redraw = true
	case "right":
		m.offsetX += 2
		redraw = true
	}
	if redraw {
		m.refreshFrame()
	}
	return false
}

// cycleAlgorithm steps off -> distance -> snap -> visvalingam -> off.
func (m *Model) cycleAlgorithm() {
	switch {
	case !m.simplifyOn:
		m.simplifyOn, m.algorithm = true, simplify.Distance
	case m.algorithm == simplify.Distance:
		m.algorithm = simplify.SnapToGrid
	case m.algorithm == simplify.SnapToGrid:
		m.algorithm = simplify.Visvalingam
	default:
		m.simplifyOn = false
	}
	m.status = "simplify: " + m.simplifyLabel()
	m.log.Info("simplification changed", zap.Bool("on", m.simplifyOn),
		zap.Stringer("algorithm", m.algorithm), zap.Float64("tolerance", m.tolerance))
}

func (m Model) simplifyLabel() string {
	if !m.simplifyOn {
		return "off"
	}
	return m.algorithm.String()
}

// updateHover tracks the mouse over the map area.
func (m *Model) updateHover(x, y int) {
	ox, oy, w, h := m.mapRect()
	if x < ox || x >= ox+w || y < oy || y >= oy+h {
		m.hovering = false
		m.hoverHasGeo = false
		return
	}
	m.hovering = true
	cx, cy := x-ox, y-oy
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.viewport().Unproject(cx, cy)
	// snap the marker to the nearest drawn vertex
	m.hoverMicX, m.hoverMicY = cx*2, cy*4
	if m.frame != nil {
		if at, ok := m.frame.Nearest(cx*2, cy*4); ok {
			m.hoverMicX, m.hoverMicY = at[0], at[1]
		}
	}
}
