package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"

	"github.com/rileylov/gosheet/internal/config"
	"github.com/rileylov/gosheet/internal/drawer"
	"github.com/rileylov/gosheet/internal/sheet"
)

const (
	filesSheet = "files"
	helpSheet  = "help"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"})
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#969B86", Dark: "#696969"})
)

type configReloadedMsg struct {
	cfg config.Config
}

type model struct {
	width    int
	height   int
	dir      string
	siUnit   bool
	status   string
	registry *drawer.Registry
	sheets   map[string]*sheet.Sheet
	log      *zap.Logger
}

func newModel(cfg config.Config, dir string, log *zap.Logger) (*model, error) {
	opts, err := cfg.PanelOptions()
	if err != nil {
		return nil, err
	}
	m := &model{
		dir:      dir,
		registry: drawer.NewRegistry(),
		sheets:   make(map[string]*sheet.Sheet),
		log:      log,
	}
	m.addSheet(filesSheet, dir, opts, cfg, nil)
	m.addSheet(helpSheet, "keys", opts, cfg, helpItems())
	return m, nil
}

func (m *model) addSheet(id, title string, opts drawer.Options, cfg config.Config, items []sheet.Item) {
	s := sheet.New(sheet.Options{
		Title:        title,
		Items:        items,
		Panel:        opts,
		CellWidth:    cfg.Terminal.CellWidthPx,
		CellHeight:   cfg.Terminal.CellHeightPx,
		BottomOffset: cfg.Drawer.BottomOffset,
		Logger:       m.log.With(zap.String("sheet", id)),
		OnClose:      func() { m.status = id + " closed" },
		OnMinimize:   func() { m.status = id + " minimized" },
		OnRestore:    func() { m.status = id + " restored" },
	})
	m.sheets[id] = s
	m.registry.Register(id, s.Panel())
}

func helpItems() []sheet.Item {
	keys := sheet.DefaultKeyMap()
	items := []sheet.Item{
		{Icon: "⌨", Title: "f", Detail: "open files"},
		{Icon: "⌨", Title: "?", Detail: "open this help"},
		{Icon: "⌨", Title: "ctrl+s", Detail: "toggle SI units"},
		{Icon: "⌨", Title: "ctrl+d", Detail: "toggle drag debug"},
		{Icon: "⌨", Title: "ctrl+e", Detail: "toggle mouse zones"},
		{Icon: "⌨", Title: "ctrl+c", Detail: "quit"},
	}
	for _, group := range keys.FullHelp() {
		for _, b := range group {
			items = append(items, sheet.Item{Icon: "⌨", Title: b.Help().Key, Detail: b.Help().Desc})
		}
	}
	return items
}

// active returns the sheet whose panel is open.
func (m *model) active() (*sheet.Sheet, bool) {
	var found *sheet.Sheet
	m.registry.Each(func(id string, p *drawer.Panel) {
		if found == nil && p.IsOpen() {
			found = m.sheets[id]
		}
	})
	return found, found != nil
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		loadDir(m.dir, m.siUnit),
		textinput.Blink,
	)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.broadcast(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+e":
			zone.SetEnabled(!zone.Enabled())
			return m, nil
		case "ctrl+d":
			for _, s := range m.sheets {
				s.ToggleDebug()
			}
			return m, nil
		case "ctrl+s":
			m.siUnit = !m.siUnit
			return m, loadDir(m.dir, m.siUnit)
		}
		if s, ok := m.active(); ok {
			_, cmd := s.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "f":
			m.open(filesSheet)
		case "?":
			m.open(helpSheet)
		}
		return m, nil

	case tea.MouseMsg:
		if s, ok := m.active(); ok {
			_, cmd := s.Update(msg)
			return m, cmd
		}
		return m, nil

	case configReloadedMsg:
		opts, err := msg.cfg.PanelOptions()
		if err != nil {
			m.log.Warn("ignoring reloaded config", zap.Error(err))
			return m, nil
		}
		for _, s := range m.sheets {
			s.Reconfigure(opts, msg.cfg.Terminal.CellWidthPx, msg.cfg.Terminal.CellHeightPx, msg.cfg.Drawer.BottomOffset)
		}
		m.status = "config reloaded"
		return m, nil

	case dirLoadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("couldn't list %s: %v", m.dir, msg.err)
			m.log.Error("list dir failed", zap.String("dir", m.dir), zap.Error(msg.err))
			return m, nil
		}
		m.sheets[filesSheet].SetItems(msg.items)
		return m, nil

	case sheet.CopiedMsg:
		if s, ok := m.active(); ok {
			_, cmd := s.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	return m, m.broadcast(msg)
}

func (m *model) open(id string) {
	if m.registry.Open(id) {
		m.status = ""
		m.log.Debug("sheet opened", zap.String("sheet", id))
	}
}

func (m *model) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, s := range m.sheets {
		_, cmd := s.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *model) background() string {
	lines := []string{
		titleStyle.Render("gosheet") + "  " + m.dir,
		"",
		hintStyle.Render("f files | ? help | drag the sheet to resize or dismiss it"),
	}
	if m.status != "" {
		lines = append(lines, "", m.status)
	}
	return strings.Join(lines, "\n")
}

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if s, ok := m.active(); ok {
		return zone.Scan(s.Compose(m.background()))
	}
	return zone.Scan(lipgloss.NewStyle().Width(m.width).Height(m.height).MaxHeight(m.height).Render(m.background()))
}

func main() {
	cfg, v, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	log, err := config.NewLogger(cfg.Log)
	if err != nil {
		fmt.Println("Error creating logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// Initialize a global zone manager, so we don't have to pass around the manager
	// throughout components.
	zone.NewGlobal()

	dir, err := os.Getwd()
	if err != nil {
		fmt.Println("Error reading working directory:", err)
		os.Exit(1)
	}
	m, err := newModel(cfg, dir, log)
	if err != nil {
		fmt.Println("Error building sheets:", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if v.ConfigFileUsed() != "" {
		config.Watch(v, log, func(c config.Config) {
			p.Send(configReloadedMsg{c})
		})
	}
	if _, err := p.Run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}
