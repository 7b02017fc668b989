// Copyright (c) Liam Stanley <liam@liam.sh>. All rights reserved. Use of
// this source code is governed by the MIT license that can be found in
// the LICENSE file.

package sheet

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rileylov/gosheet/internal/drawer"
)

// mousePointerID is the only pointer a terminal reports.
const mousePointerID = 1

// pressState represents whether the left button is held on the panel.
type pressState int

const (
	pressIdle pressState = iota
	pressHeld
)

// mouseAction tells the sheet what a mouse message turned into.
type mouseAction int

const (
	actionNone mouseAction = iota
	actionPointer
	actionBackdrop
	actionWheel
)

// targetZones names the zones a press is resolved against.
type targetZones struct {
	panel       string
	body        string
	interactive []string
	ignore      []string
}

// target answers the drawer's questions about the zone under msg.
func (z targetZones) target(msg tea.MouseMsg) drawer.TargetFlags {
	var f drawer.TargetFlags
	for _, id := range z.interactive {
		if zone.Get(id).InBounds(msg) {
			f.IsInteractive = true
			break
		}
	}
	for _, id := range z.ignore {
		if zone.Get(id).InBounds(msg) {
			f.Ignore = true
			break
		}
	}
	f.InBody = z.body != "" && zone.Get(z.body).InBounds(msg)
	return f
}

// DragHandler turns terminal mouse messages into drawer pointer events.
type DragHandler struct {
	state pressState
	cellW float64
	cellH float64
}

// NewDragHandler creates a drag handler for the given cell size in px.
func NewDragHandler(cellW, cellH float64) *DragHandler {
	return &DragHandler{
		state: pressIdle,
		cellW: cellW,
		cellH: cellH,
	}
}

// HandleMouseEvent translates msg. Only a left press inside the panel starts
// a pointer stream; a left press elsewhere is a backdrop click.
func (d *DragHandler) HandleMouseEvent(msg tea.MouseMsg, z targetZones, now time.Time) (drawer.PointerEvent, mouseAction) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			return drawer.PointerEvent{}, actionWheel
		case tea.MouseButtonLeft:
			if !zone.Get(z.panel).InBounds(msg) {
				return drawer.PointerEvent{}, actionBackdrop
			}
			d.state = pressHeld
			return d.event(drawer.PhaseStart, msg, z.target(msg), now), actionPointer
		}
	case tea.MouseActionMotion:
		if d.state == pressHeld {
			return d.event(drawer.PhaseMove, msg, nil, now), actionPointer
		}
	case tea.MouseActionRelease:
		// Some terminals do not report which button was released.
		if d.state == pressHeld {
			d.state = pressIdle
			return d.event(drawer.PhaseEnd, msg, nil, now), actionPointer
		}
	}
	return drawer.PointerEvent{}, actionNone
}

// IsPressed returns true while the left button is held.
func (d *DragHandler) IsPressed() bool {
	return d.state == pressHeld
}

// Abort forgets a held press without producing an event.
func (d *DragHandler) Abort() {
	d.state = pressIdle
}

// SetCellSize updates the px size of one terminal cell.
func (d *DragHandler) SetCellSize(cellW, cellH float64) {
	d.cellW = cellW
	d.cellH = cellH
}

func (d *DragHandler) event(phase drawer.Phase, msg tea.MouseMsg, target drawer.Target, now time.Time) drawer.PointerEvent {
	return drawer.PointerEvent{
		Phase:     phase,
		X:         float64(msg.X) * d.cellW,
		Y:         float64(msg.Y) * d.cellH,
		PointerID: mousePointerID,
		Target:    target,
		Time:      now,
	}
}
