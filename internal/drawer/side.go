package drawer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSide = errors.New("unknown side")
	ErrUnknownSize = errors.New("unknown size class")
)

// Side is the edge a panel is anchored to.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Vertical reports whether the panel slides along the y axis.
func (s Side) Vertical() bool {
	return s == SideTop || s == SideBottom
}

// closingSign is the sign that turns a raw axis displacement into a closing
// delta: positive always means "toward closed".
func (s Side) closingSign() float64 {
	switch s {
	case SideLeft, SideTop:
		return -1
	default:
		return 1
	}
}

// ParseSide maps a config string onto a Side.
func ParseSide(v string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	case "top":
		return SideTop, nil
	case "bottom", "":
		return SideBottom, nil
	}
	return 0, fmt.Errorf("parse side %q: %w", v, ErrUnknownSide)
}

// SizeClass selects the dock extent of a vertical panel.
type SizeClass int

const (
	SizeS SizeClass = iota
	SizeM
	SizeL
	SizeXL
	SizeFullscreen
)

func (c SizeClass) String() string {
	switch c {
	case SizeS:
		return "s"
	case SizeM:
		return "m"
	case SizeL:
		return "l"
	case SizeXL:
		return "xl"
	case SizeFullscreen:
		return "fullscreen"
	}
	return fmt.Sprintf("SizeClass(%d)", int(c))
}

// dockFraction is the share of the viewport the panel occupies at rest.
func (c SizeClass) dockFraction() float64 {
	switch c {
	case SizeS:
		return 0.55
	case SizeL:
		return 0.75
	case SizeXL:
		return 0.88
	case SizeFullscreen:
		return 1.0
	default:
		return 0.65
	}
}

// ParseSizeClass maps a config string onto a SizeClass.
func ParseSizeClass(v string) (SizeClass, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "s":
		return SizeS, nil
	case "m", "":
		return SizeM, nil
	case "l":
		return SizeL, nil
	case "xl":
		return SizeXL, nil
	case "fullscreen", "full":
		return SizeFullscreen, nil
	}
	return 0, fmt.Errorf("parse size %q: %w", v, ErrUnknownSize)
}
