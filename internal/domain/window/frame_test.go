package window

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

func TestFrame(t *testing.T) {
	vp := Viewport{Width: 1280, Height: 800}

	tests := []struct {
		name string
		win  types.Window
		want types.Rect
	}{
		{
			name: "stored pixel geometry",
			win: types.Window{
				Position: types.Position{X: 120, Y: 80},
				Size:     types.FixedSize(500, 400),
			},
			want: types.Rect{X: 120, Y: 80, Width: 500, Height: 400},
		},
		{
			name: "maximized fills area above taskbar",
			win: types.Window{
				IsMaximized: true,
				Position:    types.Position{X: 120, Y: 80},
				Size:        types.FixedSize(500, 400),
			},
			want: types.Rect{X: 0, Y: 0, Width: 1280, Height: 752},
		},
		{
			name: "percentage dimensions",
			win: types.Window{
				Position: types.Position{X: 10, Y: 10},
				Size:     types.Size{Width: types.Percent(50), Height: types.Percent(100)},
			},
			want: types.Rect{X: 10, Y: 10, Width: 640, Height: 752},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Frame(tt.win, vp, DefaultTaskbarHeight))
		})
	}
}

func TestFrameTinyViewport(t *testing.T) {
	w := types.Window{IsMaximized: true}
	got := Frame(w, Viewport{Width: 100, Height: 20}, DefaultTaskbarHeight)
	assert.Equal(t, 0, got.Height)
}
