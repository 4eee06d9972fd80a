package registry

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/utils"
)

var (
	// ErrDuplicateID is returned when a catalogue lists the same id twice
	ErrDuplicateID = errors.New("duplicate application id")
	// ErrInvalidDescriptor is returned for descriptors that fail validation
	ErrInvalidDescriptor = errors.New("invalid application descriptor")
)

// Registry is the application catalogue. Descriptors are stored by value,
// so callers can never mutate registry contents.
type Registry struct {
	mu    sync.RWMutex
	apps  []types.Descriptor
	index map[string]int
}

// New creates a registry holding the given descriptors
func New(descs ...types.Descriptor) (*Registry, error) {
	r := &Registry{index: make(map[string]int)}
	if len(descs) > 0 {
		if err := r.Replace(descs); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Lookup returns the descriptor for appID
func (r *Registry) Lookup(appID string) (types.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[appID]
	if !ok {
		return types.Descriptor{}, false
	}
	return r.apps[i], true
}

// List returns all descriptors in catalogue order
func (r *Registry) List() []types.Descriptor {
	return r.filter(func(types.Descriptor) bool { return true })
}

// Pinned returns the descriptors shown in the taskbar and start menu
func (r *Registry) Pinned() []types.Descriptor {
	return r.filter(func(d types.Descriptor) bool { return d.Pinned })
}

// Desktop returns the descriptors shown as desktop icons
func (r *Registry) Desktop() []types.Descriptor {
	return r.filter(func(d types.Descriptor) bool { return d.Desktop })
}

// ResolveFile returns the id of the first application associated with
// fileName's extension. Matching is case-insensitive.
func (r *Registry) ResolveFile(fileName string) (string, bool) {
	ext := strings.ToLower(path.Ext(fileName))
	if ext == "" {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.apps {
		if d.FileAssociation != "" && strings.ToLower(d.FileAssociation) == ext {
			return d.ID, true
		}
	}
	return "", false
}

// Replace atomically swaps the catalogue. On error the registry is unchanged.
// Windows already open keep the descriptor they were created with.
func (r *Registry) Replace(descs []types.Descriptor) error {
	index, err := Validate(descs)
	if err != nil {
		return err
	}

	apps := make([]types.Descriptor, len(descs))
	copy(apps, descs)

	r.mu.Lock()
	r.apps = apps
	r.index = index
	r.mu.Unlock()
	return nil
}

// Len returns the number of registered applications
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.apps)
}

// Stats returns registry statistics
func (r *Registry) Stats() types.RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := types.RegistryStats{TotalApps: len(r.apps)}
	exts := make(map[string]struct{})
	for _, d := range r.apps {
		if d.Pinned {
			stats.PinnedApps++
		}
		if d.Desktop {
			stats.DesktopApps++
		}
		if d.FileAssociation != "" {
			exts[strings.ToLower(d.FileAssociation)] = struct{}{}
		}
	}
	stats.FileTypes = len(exts)
	return stats
}

func (r *Registry) filter(keep func(types.Descriptor) bool) []types.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]types.Descriptor, 0, len(r.apps))
	for _, d := range r.apps {
		if keep(d) {
			result = append(result, d)
		}
	}
	return result
}

// Validate checks every descriptor and returns an id -> position index
func Validate(descs []types.Descriptor) (map[string]int, error) {
	index := make(map[string]int, len(descs))
	for i, d := range descs {
		if err := validateDescriptor(d); err != nil {
			return nil, err
		}
		if _, dup := index[d.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, d.ID)
		}
		index[d.ID] = i
	}
	return index, nil
}

// Merge overlays extra onto base by id. Matching ids replace the base entry
// in place; new ids are appended in the order given.
func Merge(base, extra []types.Descriptor) []types.Descriptor {
	result := make([]types.Descriptor, len(base))
	copy(result, base)

	pos := make(map[string]int, len(result))
	for i, d := range result {
		pos[d.ID] = i
	}
	for _, d := range extra {
		if i, ok := pos[d.ID]; ok {
			result[i] = d
			continue
		}
		pos[d.ID] = len(result)
		result = append(result, d)
	}
	return result
}

func validateDescriptor(d types.Descriptor) error {
	if err := utils.ValidateID(d.ID, "app id", true); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	if err := utils.ValidateTitle(d.Title, "title"); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDescriptor, d.ID, err)
	}
	if err := utils.ValidateExtension(d.FileAssociation); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDescriptor, d.ID, err)
	}
	if d.DefaultSize != nil {
		if d.DefaultSize.Width.IsPixels() && d.DefaultSize.Width.Pixels <= 0 ||
			d.DefaultSize.Height.IsPixels() && d.DefaultSize.Height.Pixels <= 0 {
			return fmt.Errorf("%w: %s: default size must be positive", ErrInvalidDescriptor, d.ID)
		}
	}
	return nil
}
