package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Position is the top-left corner of a window on the desktop surface
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Dimension is a window extent: either a pixel count or a CSS-style length
// such as "100%". On the wire it is a JSON number or a JSON string.
type Dimension struct {
	Pixels int
	Expr   string
}

// Px returns a pixel dimension
func Px(n int) Dimension {
	return Dimension{Pixels: n}
}

// Percent returns a percentage dimension ("75%")
func Percent(p float64) Dimension {
	return Dimension{Expr: strconv.FormatFloat(p, 'f', -1, 64) + "%"}
}

// IsPixels reports whether d is a plain pixel value
func (d Dimension) IsPixels() bool {
	return d.Expr == ""
}

// Resolve converts d to pixels relative to the available extent.
// Percentages resolve against available; pixel values are returned as-is.
// Expressions that are not percentages fall back to available.
func (d Dimension) Resolve(available int) int {
	if d.IsPixels() {
		return d.Pixels
	}
	expr := strings.TrimSpace(d.Expr)
	if pct, ok := strings.CutSuffix(expr, "%"); ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(pct), 64); err == nil {
			return int(float64(available) * v / 100)
		}
	}
	if px, ok := strings.CutSuffix(expr, "px"); ok {
		if v, err := strconv.Atoi(strings.TrimSpace(px)); err == nil {
			return v
		}
	}
	return available
}

func (d Dimension) String() string {
	if d.IsPixels() {
		return strconv.Itoa(d.Pixels)
	}
	return d.Expr
}

// MarshalJSON encodes pixel values as numbers and expressions as strings
func (d Dimension) MarshalJSON() ([]byte, error) {
	if d.IsPixels() {
		return []byte(strconv.Itoa(d.Pixels)), nil
	}
	return json.Marshal(d.Expr)
}

// UnmarshalJSON accepts a JSON integer or a non-empty JSON string.
// null, fractions and integers that do not fit an int are rejected.
func (d *Dimension) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("dimension: null is not a size")
	}
	if len(data) > 0 && data[0] == '"' {
		var expr string
		if err := json.Unmarshal(data, &expr); err != nil {
			return err
		}
		if expr == "" {
			return fmt.Errorf("dimension: empty string")
		}
		*d = Dimension{Expr: expr}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("dimension: %w", err)
	}
	px, err := strconv.ParseInt(n.String(), 10, strconv.IntSize)
	if err != nil {
		return fmt.Errorf("dimension: %s is not an integer pixel count", n)
	}
	*d = Dimension{Pixels: int(px)}
	return nil
}

// Size is the width and height of a window when it is not maximized
type Size struct {
	Width  Dimension `json:"width"`
	Height Dimension `json:"height"`
}

// FixedSize returns a pixel size
func FixedSize(width, height int) Size {
	return Size{Width: Px(width), Height: Px(height)}
}

// Rect is a resolved on-screen rectangle
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Payload is opaque data forwarded to a window's panel content.
// A nil payload means "no payload"; an empty non-nil payload still counts.
type Payload map[string]interface{}

// Window represents one open application window
type Window struct {
	ID          string     `json:"id"`
	App         Descriptor `json:"app"`
	ZIndex      int        `json:"z_index"`
	IsMinimized bool       `json:"is_minimized"`
	IsMaximized bool       `json:"is_maximized"`
	Position    Position   `json:"position"`
	Size        Size       `json:"size"`
	Payload     Payload    `json:"payload,omitempty"`
}

// Stats contains window manager statistics
type Stats struct {
	TotalWindows     int     `json:"total_windows"`
	VisibleWindows   int     `json:"visible_windows"`
	MinimizedWindows int     `json:"minimized_windows"`
	MaximizedWindows int     `json:"maximized_windows"`
	FocusedWindowID  *string `json:"focused_window_id,omitempty"`
	NextZIndex       int     `json:"next_z_index"`
	StartMenuOpen    bool    `json:"start_menu_open"`
}

// Snapshot is a consistent view of a window manager's state.
// Windows are ordered bottom to top by ZIndex.
type Snapshot struct {
	Windows       []Window `json:"windows"`
	NextZIndex    int      `json:"next_z_index"`
	StartMenuOpen bool     `json:"start_menu_open"`
	Revision      uint64   `json:"revision"`
}
