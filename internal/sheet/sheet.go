// Copyright (c) Liam Stanley <liam@liam.sh>. All rights reserved. Use of
// this source code is governed by the MIT license that can be found in
// the LICENSE file.

package sheet

import (
	"math"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"

	"github.com/rileylov/gosheet/internal/drawer"
)

const (
	minWidthChars = 35 // narrowest side panel in cells
	maxProportion = 0.70
	wheelLines    = 3
)

// CopiedMsg reports the result of copying an item to the clipboard.
type CopiedMsg struct {
	Value string
	Err   error
}

// Options configure a Sheet.
type Options struct {
	Title        string
	Items        []Item
	Panel        drawer.Options
	CellWidth    float64 // px per terminal column
	CellHeight   float64 // px per terminal row
	BottomOffset int     // rows kept free below a bottom sheet
	Logger       *zap.Logger

	OnClose    func()
	OnMinimize func()
	OnRestore  func()
}

// Sheet renders a drawer.Panel in the terminal and feeds it mouse input. It
// is the panel's Host and Capturer.
type Sheet struct {
	id           string
	panel        *drawer.Panel
	keys         KeyMap
	log          *zap.Logger
	cellW, cellH float64
	bottomOffset int
	width        int
	height       int

	dragHandler *DragHandler
	capture     *zoneCapturer
	header      *header
	list        *list
	footer      *footer

	pressInBody bool
	scrolled    bool
	lastRow     int
}

// New returns a closed sheet.
func New(o Options) *Sheet {
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Sheet{
		id:           zone.NewPrefix(),
		keys:         DefaultKeyMap(),
		log:          log,
		cellW:        o.CellWidth,
		cellH:        o.CellHeight,
		bottomOffset: o.BottomOffset,
		dragHandler:  NewDragHandler(o.CellWidth, o.CellHeight),
		capture:      &zoneCapturer{},
		header:       newHeader(o.Title),
		list:         newList(o.Items),
		footer:       newFooter(),
	}
	s.panel = drawer.NewPanel(s, o.Panel,
		drawer.WithLogger(log),
		drawer.WithCapturer(s.capture),
		drawer.WithOnClose(func() {
			s.header.filter.Blur()
			s.footer.status = ""
			call(o.OnClose)
		}),
		drawer.WithOnMinimize(func() {
			s.footer.status = "minimized"
			call(o.OnMinimize)
		}),
		drawer.WithOnRestore(func() {
			s.footer.status = ""
			call(o.OnRestore)
		}),
	)
	return s
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// Panel exposes the underlying state machine.
func (s *Sheet) Panel() *drawer.Panel { return s.panel }

// SetItems replaces the body rows.
func (s *Sheet) SetItems(items []Item) {
	s.list.setItems(items)
	s.layout()
}

// SetStatus shows a message in the footer.
func (s *Sheet) SetStatus(status string) { s.footer.status = status }

// ToggleDebug switches the footer between key help and live drag values.
func (s *Sheet) ToggleDebug() { s.footer.debug = !s.footer.debug }

// Reconfigure applies new panel options and cell metrics. A live gesture is
// abandoned.
func (s *Sheet) Reconfigure(opts drawer.Options, cellW, cellH float64, bottomOffset int) {
	s.dragHandler.Abort()
	s.panel.Configure(opts)
	s.cellW, s.cellH = cellW, cellH
	s.dragHandler.SetCellSize(cellW, cellH)
	s.bottomOffset = bottomOffset
	s.layout()
}

// ViewportHeight implements drawer.Host.
func (s *Sheet) ViewportHeight() float64 {
	return float64(max(0, s.height-s.bottomOffset)) * s.cellH
}

// PanelWidth implements drawer.Host.
func (s *Sheet) PanelWidth() float64 {
	return float64(s.sideCols()) * s.cellW
}

// ScrollBody implements drawer.Host.
func (s *Sheet) ScrollBody() (drawer.ScrollMetrics, bool) {
	if s.list.viewport.Height <= 0 {
		return drawer.ScrollMetrics{}, false
	}
	return s.list.metrics(s.cellH), true
}

// sideCols is the resting width of a left or right panel.
func (s *Sheet) sideCols() int {
	var proportion float64
	switch s.panel.Options().Size {
	case drawer.SizeS:
		proportion = 0.30
	case drawer.SizeM:
		proportion = 0.40
	case drawer.SizeL:
		proportion = 0.50
	case drawer.SizeXL:
		proportion = 0.60
	default:
		return s.width
	}
	cols := int(float64(s.width) * proportion)
	cols = min(max(cols, minWidthChars), int(float64(s.width)*maxProportion))
	if cols > s.width || s.width < minWidthChars {
		return s.width
	}
	return cols
}

// panelSize is the visible size of the panel in cells after the drag state
// is applied.
func (s *Sheet) panelSize() (cols, rows int) {
	if !s.panel.IsOpen() {
		return 0, 0
	}
	d := s.panel.DragState()
	extent := s.panel.PresentedExtent() * d.Scale
	if s.panel.Side().Vertical() {
		rows = int(math.Round(extent/s.cellH)) - int(math.Round(d.Offset/s.cellH))
		return s.width, min(max(rows, 0), max(0, s.height-s.bottomOffset))
	}
	cols = int(math.Round(extent/s.cellW)) - int(math.Round(d.Offset/s.cellW))
	return min(max(cols, 0), s.width), s.height
}

// chrome splits the panel's rows between its parts.
type chrome struct {
	grip, header, footer bool
	body                 int
}

func (s *Sheet) chrome(rows int) chrome {
	var c chrome
	if rows > 0 && s.panel.ShowsDragIndicator() {
		c.grip = true
		rows--
	}
	if rows > 0 {
		c.header = true
		rows--
	}
	if rows >= 2 {
		c.footer = true
		rows--
	}
	if s.panel.Mode() == drawer.ModeMinimized && !s.panel.DragState().Dragging {
		rows = 0
	}
	c.body = rows
	return c
}

// layout sizes the children for the current panel state.
func (s *Sheet) layout() {
	cols, rows := s.panelSize()
	opts := s.panel.Options()
	s.header.width = cols
	s.header.setButtons(
		opts.MinimizeMode && opts.Side.Vertical() && s.panel.Mode() != drawer.ModeMinimized,
		opts.Dismissible,
	)
	s.footer.width = cols
	s.list.setSize(cols, s.chrome(rows).body)
}

func (s *Sheet) zones() targetZones {
	return targetZones{
		panel:       s.panelZone(),
		body:        s.list.id,
		interactive: s.header.interactiveZones(),
		ignore:      []string{s.footer.id},
	}
}

func (s *Sheet) panelZone() string {
	return s.id + "panel"
}

func (s *Sheet) Init() tea.Cmd {
	return nil
}

func (s *Sheet) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	case tea.KeyMsg:
		cmd = s.handleKey(msg)
	case tea.MouseMsg:
		cmd = s.handleMouse(msg)
	case CopiedMsg:
		if msg.Err != nil {
			s.footer.status = "couldn't write to clipboard"
			s.log.Warn("clipboard write failed", zap.Error(msg.Err))
		} else {
			s.footer.status = "copied " + msg.Value
		}
	default:
		s.header, cmd = s.header.Update(msg)
	}
	s.layout()
	return s, cmd
}

func (s *Sheet) handleKey(msg tea.KeyMsg) tea.Cmd {
	if !s.panel.IsOpen() {
		return nil
	}
	if s.header.filter.Focused() {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			s.header.filter.Blur()
			return nil
		}
		var cmd tea.Cmd
		s.header, cmd = s.header.Update(msg)
		if v := s.header.filter.Value(); v != s.list.query {
			s.list.filter(v)
		}
		return cmd
	}
	switch {
	case key.Matches(msg, s.keys.Dismiss):
		s.panel.Dismiss()
	case key.Matches(msg, s.keys.Minimize):
		s.panel.Minimize()
	case key.Matches(msg, s.keys.Up):
		s.list.move(-1)
	case key.Matches(msg, s.keys.Down):
		s.list.move(1)
	case key.Matches(msg, s.keys.Filter):
		return s.header.filter.Focus()
	case key.Matches(msg, s.keys.Copy):
		if it, ok := s.list.selected(); ok {
			return copyCmd(it.value())
		}
	}
	return nil
}

func copyCmd(value string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Value: value, Err: clipboard.WriteAll(value)}
	}
}

func (s *Sheet) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !s.panel.IsOpen() {
		s.dragHandler.Abort()
		return nil
	}
	if s.dragHandler.IsPressed() && !zone.Enabled() {
		s.dragHandler.Abort()
		s.panel.CaptureLost()
		return nil
	}

	ev, action := s.dragHandler.HandleMouseEvent(msg, s.zones(), time.Now())
	switch action {
	case actionBackdrop:
		s.panel.BackdropClick()
	case actionWheel:
		if s.panel.BodyScrollEnabled() && zone.Get(s.list.id).InBounds(msg) {
			if msg.Button == tea.MouseButtonWheelUp {
				s.list.scroll(-wheelLines)
			} else {
				s.list.scroll(wheelLines)
			}
		}
	case actionPointer:
		return s.handlePointer(msg, ev)
	}
	return nil
}

func (s *Sheet) handlePointer(msg tea.MouseMsg, ev drawer.PointerEvent) tea.Cmd {
	switch ev.Phase {
	case drawer.PhaseStart:
		s.pressInBody = ev.Target != nil && ev.Target.InScrollableBody()
		s.scrolled = false
		s.lastRow = msg.Y
		s.panel.HandlePointer(ev)
	case drawer.PhaseMove:
		// Without capture, motion outside the panel is lost.
		if !s.capture.held && !zone.Get(s.panelZone()).InBounds(msg) {
			return nil
		}
		s.panel.HandlePointer(ev)
		if !s.panel.Committed() && s.pressInBody && s.panel.BodyScrollEnabled() && msg.Y != s.lastRow {
			s.list.scroll(s.lastRow - msg.Y)
			s.scrolled = true
		}
		s.lastRow = msg.Y
	case drawer.PhaseEnd:
		committed := s.panel.Committed()
		s.panel.HandlePointer(ev)
		if !committed && !s.scrolled {
			return s.click(msg)
		}
	}
	return nil
}

// click handles a press and release that never became a drag.
func (s *Sheet) click(msg tea.MouseMsg) tea.Cmd {
	action, cmd := s.header.click(msg)
	switch action {
	case headerMinimize:
		s.panel.Minimize()
		return nil
	case headerClose:
		s.panel.Dismiss()
		return nil
	}
	if cmd != nil {
		return cmd
	}
	if z := zone.Get(s.list.id); z.InBounds(msg) {
		_, y := z.Pos(msg)
		s.list.selectAt(y)
	}
	return nil
}

func (s *Sheet) View() string {
	return s.Compose("")
}

// Compose draws the panel over background, dimming whatever the panel does
// not cover.
func (s *Sheet) Compose(background string) string {
	// The panel may have been opened or closed through a Registry since the
	// last Update.
	s.layout()
	lines := fitLines(background, s.width, s.height)
	if !s.panel.IsOpen() {
		return strings.Join(lines, "\n")
	}

	opacity := 0.0
	if s.panel.Mode() != drawer.ModeMinimized {
		opacity = s.panel.DragState().BackdropOpacity()
	}
	backdrop := lipgloss.NewStyle().Faint(opacity > 0).Background(backdropColor(opacity))
	for i, l := range lines {
		lines[i] = backdrop.Render(ansi.Strip(l))
	}

	cols, rows := s.panelSize()
	if rows == 0 || cols == 0 {
		return strings.Join(lines, "\n")
	}
	panel := strings.Split(s.renderPanel(cols, rows), "\n")

	switch s.panel.Side() {
	case drawer.SideBottom:
		top := s.height - s.bottomOffset - rows
		copy(lines[max(top, 0):], panel)
	case drawer.SideTop:
		copy(lines, panel)
	case drawer.SideLeft:
		for i := range lines {
			if i < len(panel) {
				lines[i] = panel[i] + backdrop.Render(ansi.Cut(ansi.Strip(lines[i]), cols, s.width))
			}
		}
	case drawer.SideRight:
		for i := range lines {
			if i < len(panel) {
				lines[i] = backdrop.Render(ansi.Truncate(ansi.Strip(lines[i]), s.width-cols, "")) + panel[i]
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (s *Sheet) renderPanel(cols, rows int) string {
	c := s.chrome(rows)
	var parts []string
	if c.grip {
		parts = append(parts, s.renderGrip(cols))
	}
	if c.header {
		parts = append(parts, s.header.View())
	}
	if c.body > 0 {
		parts = append(parts, s.list.View())
	}
	if c.footer {
		parts = append(parts, s.footer.View(s.panel, s.keys))
	}
	body := panelStyle.Width(cols).Height(rows).Render(strings.Join(parts, "\n"))
	return zone.Mark(s.panelZone(), body)
}

// renderGrip draws the drag indicator, filled in proportion to the drag's
// progress.
func (s *Sheet) renderGrip(cols int) string {
	const width = 8
	filled := int(math.Round(s.panel.DragState().Progress * width))
	filled = min(max(filled, 0), width)
	grip := gripProgressStyle.Render(strings.Repeat("━", filled)) +
		gripStyle.Render(strings.Repeat("━", width-filled))
	return lipgloss.PlaceHorizontal(cols, lipgloss.Center, grip)
}

// fitLines pads or truncates s to exactly height lines of width cells.
func fitLines(s string, width, height int) []string {
	src := strings.Split(s, "\n")
	out := make([]string, height)
	for i := range out {
		var l string
		if i < len(src) {
			l = ansi.Truncate(src[i], width, "")
		}
		if w := ansi.StringWidth(l); w < width {
			l += strings.Repeat(" ", width-w)
		}
		out[i] = l
	}
	return out
}
