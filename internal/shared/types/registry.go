package types

// Descriptor is the static metadata of an application in the registry.
// Panel is an opaque handle for the panel content, resolved by the render layer.
type Descriptor struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Icon            string `json:"icon"`
	Panel           string `json:"panel"`
	Pinned          bool   `json:"pinned"`
	Desktop         bool   `json:"desktop"`
	DefaultSize     *Size  `json:"default_size,omitempty"`
	FileAssociation string `json:"file_association,omitempty"`
}

// RegistryStats contains registry statistics
type RegistryStats struct {
	TotalApps   int `json:"total_apps"`
	PinnedApps  int `json:"pinned_apps"`
	DesktopApps int `json:"desktop_apps"`
	FileTypes   int `json:"file_types"`
}
