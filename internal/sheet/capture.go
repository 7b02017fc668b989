package sheet

import (
	"errors"

	zone "github.com/lrstanley/bubblezone"
)

var errZonesDisabled = errors.New("mouse zones disabled")

// zoneCapturer keeps motion flowing to the panel while the pointer is outside
// its zone. It needs zone tracking to be on, since without it the sheet
// cannot tell where the panel is.
type zoneCapturer struct {
	held bool
}

func (c *zoneCapturer) Acquire(int) error {
	if !zone.Enabled() {
		return errZonesDisabled
	}
	c.held = true
	return nil
}

func (c *zoneCapturer) Release(int) error {
	c.held = false
	return nil
}
