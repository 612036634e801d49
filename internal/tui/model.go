package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"geomap/internal/render"
	"geomap/internal/simplify"
	"geomap/internal/source"
)

// Config carries the startup settings of the viewer.
type Config struct {
	Simplify  bool
	Algorithm simplify.Algorithm
	Envelope  bool
	// Tolerance is in braille micro-pixels.
	Tolerance float64
	Workers   int
	Logger    *zap.Logger
}

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string
	log    *zap.Logger

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	data  *source.Dataset
	frame *render.Frame

	// simplification
	simplifyOn bool
	algorithm  simplify.Algorithm
	envelope   bool
	tolerance  float64
	workers    int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	layers render.Layers

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// attributes table
	showAttrs bool
	tbl       table.Model
}

func New(cfg Config) Model {
	m := Model{
		helpVisible: true,
		zoom:        1.0,
		status:      "geomap ready",
		log:         cfg.Logger,
		layers:      render.AllLayers,
		simplifyOn:  cfg.Simplify,
		algorithm:   cfg.Algorithm,
		envelope:    cfg.Envelope,
		tolerance:   cfg.Tolerance,
		workers:     cfg.Workers,
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.tolerance <= 0 {
		m.tolerance = 1
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here, one geometry per line. Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// columns are set per dataset
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(cfg Config, path string) Model {
	m := New(cfg)
	m.loadPath(path)
	return m
}

// Run starts the viewer on the alternate screen, optionally opening path.
func Run(cfg Config, path string) error {
	var m Model
	if path != "" {
		m = NewWithPath(cfg, path)
	} else {
		m = New(cfg)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

// mapRect is the origin and size of the map canvas in terminal cells.
func (m Model) mapRect() (x, y, w, h int) {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	w = contentWidth - 1
	if m.showSidebar {
		w -= sidebarWidth
		x = sidebarWidth + 1
	}
	return x, headerHeight, max(10, w), contentHeight
}

func (m Model) viewport() render.Viewport {
	_, _, w, h := m.mapRect()
	vp := render.Viewport{Zoom: m.zoom, OffsetX: m.offsetX, OffsetY: m.offsetY, Width: w, Height: h}
	if m.data != nil {
		vp.BBox = m.data.BBox
	}
	return vp
}

func (m Model) renderOptions() render.Options {
	var flags simplify.Flag
	if m.simplifyOn {
		flags |= simplify.GeometrySimplification
	}
	if m.envelope {
		flags |= simplify.EnvelopeReplacement
	}
	return render.Options{
		Flags:     flags,
		Algorithm: m.algorithm,
		Tolerance: m.tolerance,
		Workers:   m.workers,
	}
}
