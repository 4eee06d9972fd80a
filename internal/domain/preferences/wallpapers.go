package preferences

import "github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"

// DefaultWallpaper is the wallpaper used until the user picks another
const DefaultWallpaper = "desktop-wallpaper"

// Wallpapers is the selectable wallpaper catalogue
var Wallpapers = []types.Wallpaper{
	{ID: DefaultWallpaper, ImageURL: "/images/desktop-wallpaper.jpg", Description: "Default desktop"},
	{ID: "wallpaper-2", ImageURL: "https://images.unsplash.com/photo-1691231543975-1f1627c27d35?fm=jpg&q=80&w=1080", Description: "Abstract waves"},
	{ID: "wallpaper-3", ImageURL: "https://images.unsplash.com/photo-1688649429715-3974c2d8479a?fm=jpg&q=80&w=1080", Description: "Abstract glass"},
	{ID: "wallpaper-4", ImageURL: "https://images.unsplash.com/photo-1688649429715-3974c2d8479a?fm=jpg&q=80&w=1080&sat=-100", Description: "Abstract glass, muted"},
	{ID: "wallpaper-5", ImageURL: "https://images.unsplash.com/photo-1554189097-90d3b64ea3b4?fm=jpg&q=80&w=1080", Description: "Gradient"},
	{ID: "wallpaper-6", ImageURL: "https://images.unsplash.com/photo-1558591710-4b4a1ae0f04d?fm=jpg&q=80&w=1080", Description: "Abstract shapes"},
}

// FindWallpaper returns the wallpaper with the given id
func FindWallpaper(id string) (types.Wallpaper, bool) {
	for _, w := range Wallpapers {
		if w.ID == id {
			return w, true
		}
	}
	return types.Wallpaper{}, false
}
