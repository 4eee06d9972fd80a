package window

import "github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"

// DefaultTaskbarHeight is the height of the taskbar strip along the bottom edge
const DefaultTaskbarHeight = 48

// Viewport is the size of the desktop surface in pixels
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Frame computes the on-screen rectangle of w.
// A maximized window fills the viewport above the taskbar; otherwise the
// stored geometry is used with percentage dimensions resolved against the
// same area. The stored geometry itself is never changed.
func Frame(w types.Window, vp Viewport, taskbarHeight int) types.Rect {
	available := vp.Height - taskbarHeight
	if available < 0 {
		available = 0
	}

	if w.IsMaximized {
		return types.Rect{X: 0, Y: 0, Width: vp.Width, Height: available}
	}

	return types.Rect{
		X:      w.Position.X,
		Y:      w.Position.Y,
		Width:  w.Size.Width.Resolve(vp.Width),
		Height: w.Size.Height.Resolve(available),
	}
}
