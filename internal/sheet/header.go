// Copyright (c) Liam Stanley <liam@liam.sh>. All rights reserved. Use of
// this source code is governed by the MIT license that can be found in
// the LICENSE file.

package sheet

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

var (
	headerStyle = lipgloss.NewStyle().
			Background(subtle).
			Foreground(lipgloss.AdaptiveColor{Light: "#333", Dark: "#FFF"}).
			Height(1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight).
			Background(subtle).
			PaddingLeft(1)

	headerButtonStyle = lipgloss.NewStyle().
				Background(highlight).
				Foreground(lipgloss.AdaptiveColor{Light: "#FFF", Dark: "#FFF"}).
				Margin(0, 1).
				Padding(0, 1)
)

// headerAction is what a click on a header button asks for.
type headerAction int

const (
	headerNone headerAction = iota
	headerMinimize
	headerClose
)

type headerButton struct {
	label  string
	action headerAction
}

type header struct {
	id      string
	width   int
	title   string
	filter  textinput.Model
	buttons []headerButton
}

func newHeader(title string) *header {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 16

	return &header{
		id:     zone.NewPrefix(),
		title:  title,
		filter: ti,
	}
}

// setButtons replaces the visible buttons.
func (h *header) setButtons(minimize, closable bool) {
	h.buttons = h.buttons[:0]
	if minimize {
		h.buttons = append(h.buttons, headerButton{label: "_", action: headerMinimize})
	}
	if closable {
		h.buttons = append(h.buttons, headerButton{label: "×", action: headerClose})
	}
}

func (h *header) Update(msg tea.Msg) (*header, tea.Cmd) {
	var cmd tea.Cmd
	h.filter, cmd = h.filter.Update(msg)
	return h, cmd
}

// click resolves a completed click. Clicking the filter focuses it.
func (h *header) click(msg tea.MouseMsg) (headerAction, tea.Cmd) {
	for i, b := range h.buttons {
		if zone.Get(h.buttonID(i)).InBounds(msg) {
			return b.action, nil
		}
	}
	if zone.Get(h.filterID()).InBounds(msg) {
		return headerNone, h.filter.Focus()
	}
	return headerNone, nil
}

// interactiveZones are the header's controls.
func (h *header) interactiveZones() []string {
	ids := []string{h.filterID()}
	for i := range h.buttons {
		ids = append(ids, h.buttonID(i))
	}
	return ids
}

func (h *header) View() string {
	var buttonViews []string
	for i, button := range h.buttons {
		buttonViews = append(buttonViews, zone.Mark(h.buttonID(i), headerButtonStyle.Render(button.label)))
	}
	buttonsSection := lipgloss.JoinHorizontal(lipgloss.Center, buttonViews...)
	buttonsWidth := lipgloss.Width(buttonsSection)

	filter := zone.Mark(h.filterID(), h.filter.View())
	filterWidth := lipgloss.Width(filter)
	if filterWidth+buttonsWidth > h.width {
		filter, filterWidth = "", 0
	}

	maxTitleWidth := h.width - buttonsWidth - filterWidth - 2
	if maxTitleWidth < 0 {
		maxTitleWidth = 0
	}
	title := titleStyle.Render(truncate(h.title, maxTitleWidth))

	spacingWidth := h.width - lipgloss.Width(title) - filterWidth - buttonsWidth
	if spacingWidth < 0 {
		spacingWidth = 0
	}
	spacing := lipgloss.NewStyle().Background(subtle).Width(spacingWidth).Render("")
	content := lipgloss.JoinHorizontal(lipgloss.Center, title, spacing, filter, buttonsSection)
	return headerStyle.Width(h.width).Render(content)
}

func (h *header) buttonID(index int) string {
	return h.id + "button_" + strconv.Itoa(index)
}

func (h *header) filterID() string {
	return h.id + "filter"
}

// truncate shortens s with an ellipsis so it fits in width cells.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
