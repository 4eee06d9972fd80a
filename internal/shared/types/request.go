package types

// OpenRequest opens an application window
type OpenRequest struct {
	AppID   string  `json:"app_id" binding:"required"`
	Payload Payload `json:"payload,omitempty"`
}

// GeometryRequest moves and/or resizes a window
type GeometryRequest struct {
	Position *Position `json:"position,omitempty"`
	Size     *Size     `json:"size,omitempty"`
}

// StartMenuRequest sets the start menu visibility
type StartMenuRequest struct {
	Open bool `json:"open"`
}

// OpenFileRequest opens a file from the desktop file system
type OpenFileRequest struct {
	Path string `json:"path" binding:"required"`
}

// WSMessage represents a WebSocket command from the render layer
type WSMessage struct {
	Type     string    `json:"type"`
	AppID    string    `json:"app_id,omitempty"`
	WindowID string    `json:"window_id,omitempty"`
	Payload  Payload   `json:"payload,omitempty"`
	Position *Position `json:"position,omitempty"`
	Size     *Size     `json:"size,omitempty"`
	Open     *bool     `json:"open,omitempty"`
}
