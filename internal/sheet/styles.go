// Copyright (c) Liam Stanley <liam@liam.sh>. All rights reserved. Use of
// this source code is governed by the MIT license that can be found in
// the LICENSE file.

package sheet

import "github.com/charmbracelet/lipgloss"

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	panelStyle = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#1E1E1E"})

	gripStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#585858"})

	gripProgressStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#3B82F6"})

	// backdropShades go from transparent to fully dimmed.
	backdropShades = []lipgloss.AdaptiveColor{
		{Light: "#F5F5F5", Dark: "#101010"},
		{Light: "#E0E0E0", Dark: "#161616"},
		{Light: "#C8C8C8", Dark: "#1C1C1C"},
		{Light: "#B0B0B0", Dark: "#222222"},
		{Light: "#989898", Dark: "#282828"},
	}
)

// backdropColor picks a shade for an opacity in [0,1].
func backdropColor(opacity float64) lipgloss.AdaptiveColor {
	i := int(opacity * float64(len(backdropShades)-1))
	if i < 0 {
		i = 0
	}
	if i >= len(backdropShades) {
		i = len(backdropShades) - 1
	}
	return backdropShades[i]
}
