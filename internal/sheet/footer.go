// Copyright (c) Liam Stanley <liam@liam.sh>. All rights reserved. Use of
// this source code is governed by the MIT license that can be found in
// the LICENSE file.

package sheet

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rileylov/gosheet/internal/drawer"
)

var (
	footerStyle = lipgloss.NewStyle().
			Background(subtle).
			Foreground(lipgloss.AdaptiveColor{Light: "#666", Dark: "#AAA"}).
			Height(1)

	debugStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999", Dark: "#666"})
)

// footer is the status line. Presses on it never start a drag.
type footer struct {
	id     string
	width  int
	status string
	debug  bool
	help   help.Model
}

func newFooter() *footer {
	return &footer{
		id:   zone.NewPrefix() + "footer",
		help: help.New(),
	}
}

func (f *footer) View(p *drawer.Panel, keys KeyMap) string {
	content := f.help.ShortHelpView(keys.ShortHelp())
	if f.debug {
		d := p.DragState()
		mouse := "off"
		if zone.Enabled() {
			mouse = "on"
		}
		content = fmt.Sprintf("%s | drag=%t off=%.0f p=%.2f s=%.3f v=%.2f | mouse %s",
			p.Mode(), d.Dragging, d.Offset, d.Progress, d.Scale, d.Velocity, mouse)
	}
	if f.status != "" {
		content = f.status + " | " + content
	}
	return zone.Mark(f.id, footerStyle.Width(f.width).MaxWidth(f.width).Render(debugStyle.Render(content)))
}
