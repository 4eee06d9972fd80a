package registry

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/bytedance/sonic"
	"github.com/charlievieth/fastwalk"
	"github.com/goccy/go-yaml"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ManifestPattern selects manifest files inside a manifest directory
const ManifestPattern = "**/*.{yaml,yml,toml,json}"

// manifest is the on-disk form of a descriptor
type manifest struct {
	ID              string        `yaml:"id" toml:"id" json:"id"`
	Title           string        `yaml:"title" toml:"title" json:"title"`
	Icon            string        `yaml:"icon" toml:"icon" json:"icon"`
	Panel           string        `yaml:"panel" toml:"panel" json:"panel"`
	Pinned          bool          `yaml:"pinned" toml:"pinned" json:"pinned"`
	Desktop         bool          `yaml:"desktop" toml:"desktop" json:"desktop"`
	DefaultSize     *manifestSize `yaml:"default_size" toml:"default_size" json:"default_size"`
	FileAssociation string        `yaml:"file_association" toml:"file_association" json:"file_association"`
}

// manifestSize holds numbers or strings ("75%") as decoded by each format
type manifestSize struct {
	Width  interface{} `yaml:"width" toml:"width" json:"width"`
	Height interface{} `yaml:"height" toml:"height" json:"height"`
}

// catalogFile is a manifest file listing several apps
type catalogFile struct {
	Apps []manifest `yaml:"apps" toml:"apps" json:"apps"`
}

var sanitizer = bluemonday.StrictPolicy()

// Seeder loads the default catalogue plus an optional manifest directory
// into a Registry
type Seeder struct {
	registry *Registry
	dir      string
	logger   *logging.Logger
}

// NewSeeder creates a seeder. dir may be empty to use only the defaults.
func NewSeeder(registry *Registry, dir string, logger *logging.Logger) *Seeder {
	return &Seeder{
		registry: registry,
		dir:      dir,
		logger:   logging.OrNop(logger).Named("registry"),
	}
}

// Dir returns the manifest directory
func (s *Seeder) Dir() string {
	return s.dir
}

// Seed rebuilds the catalogue from the defaults and the manifest directory.
// Manifests override defaults with the same id and append new ones.
func (s *Seeder) Seed(ctx context.Context) error {
	descs, err := LoadDefaults()
	if err != nil {
		return err
	}

	if s.dir != "" {
		extra, err := LoadDir(ctx, s.dir, s.logger)
		if err != nil {
			return err
		}
		descs = Merge(descs, extra)
	}

	if err := s.registry.Replace(descs); err != nil {
		return fmt.Errorf("failed to install catalogue: %w", err)
	}

	stats := s.registry.Stats()
	s.logger.Info("Catalogue loaded",
		zap.Int("apps", stats.TotalApps),
		zap.Int("pinned", stats.PinnedApps),
		zap.Int("desktop", stats.DesktopApps),
		zap.String("manifest_dir", s.dir))
	return nil
}

// LoadDefaults parses the embedded default catalogue
func LoadDefaults() ([]types.Descriptor, error) {
	descs, err := decodeManifests(".yaml", defaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("default catalogue: %w", err)
	}
	return descs, nil
}

// LoadDir walks dir and loads every manifest matching ManifestPattern.
// Files are applied in lexical path order so results are deterministic.
// Unreadable or malformed manifests are logged and skipped.
func LoadDir(ctx context.Context, dir string, logger *logging.Logger) ([]types.Descriptor, error) {
	logger = logging.OrNop(logger)

	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Manifest directory not found", zap.String("dir", dir))
			return nil, nil
		}
		return nil, fmt.Errorf("manifest directory: %w", err)
	}

	var (
		mu    sync.Mutex
		paths []string
	)
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, dir, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return nil
		}
		if ok, _ := doublestar.Match(ManifestPattern, filepath.ToSlash(rel)); !ok {
			return nil
		}

		mu.Lock()
		paths = append(paths, p)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk manifests: %w", err)
	}

	sort.Strings(paths)

	var result []types.Descriptor
	for _, p := range paths {
		descs, err := LoadFile(p)
		if err != nil {
			logger.Warn("Manifest skipped", zap.String("path", p), zap.Error(err))
			continue
		}
		result = Merge(result, descs)
		logger.Debug("Manifest loaded", zap.String("path", p), zap.Int("apps", len(descs)))
	}
	return result, nil
}

// LoadFile parses one manifest file. The format is chosen by extension.
func LoadFile(path string) ([]types.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return decodeManifests(strings.ToLower(filepath.Ext(path)), data)
}

// decodeManifests accepts either {apps: [...]} or a single app document
func decodeManifests(ext string, data []byte) ([]types.Descriptor, error) {
	unmarshal, err := unmarshalerFor(ext)
	if err != nil {
		return nil, err
	}

	var file catalogFile
	if err := unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s manifest: %w", ext, err)
	}

	manifests := file.Apps
	if len(manifests) == 0 {
		var single manifest
		if err := unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("parse %s manifest: %w", ext, err)
		}
		manifests = []manifest{single}
	}

	descs := make([]types.Descriptor, 0, len(manifests))
	for _, m := range manifests {
		d, err := m.descriptor()
		if err != nil {
			return nil, err
		}
		descs = append(descs, d)
	}

	if _, err := Validate(descs); err != nil {
		return nil, err
	}
	return descs, nil
}

func unmarshalerFor(ext string) (func([]byte, interface{}) error, error) {
	switch ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal, nil
	case ".toml":
		return toml.Unmarshal, nil
	case ".json":
		return sonic.Unmarshal, nil
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", ext)
	}
}

func (m manifest) descriptor() (types.Descriptor, error) {
	d := types.Descriptor{
		ID:              strings.TrimSpace(m.ID),
		Title:           sanitize(m.Title),
		Icon:            sanitize(m.Icon),
		Panel:           strings.TrimSpace(m.Panel),
		Pinned:          m.Pinned,
		Desktop:         m.Desktop,
		FileAssociation: strings.ToLower(strings.TrimSpace(m.FileAssociation)),
	}
	if d.Panel == "" {
		d.Panel = d.ID
	}

	if m.DefaultSize != nil {
		w, err := toDimension(m.DefaultSize.Width)
		if err != nil {
			return types.Descriptor{}, fmt.Errorf("%w: %s: width: %v", ErrInvalidDescriptor, d.ID, err)
		}
		h, err := toDimension(m.DefaultSize.Height)
		if err != nil {
			return types.Descriptor{}, fmt.Errorf("%w: %s: height: %v", ErrInvalidDescriptor, d.ID, err)
		}
		d.DefaultSize = &types.Size{Width: w, Height: h}
	}
	return d, nil
}

// sanitize strips markup from text displayed by the shell
func sanitize(s string) string {
	return strings.TrimSpace(sanitizer.Sanitize(s))
}

func toDimension(v interface{}) (types.Dimension, error) {
	switch n := v.(type) {
	case int:
		return types.Px(n), nil
	case int64:
		return types.Px(int(n)), nil
	case uint64:
		return types.Px(int(n)), nil
	case float64:
		return types.Px(int(n)), nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return types.Dimension{}, fmt.Errorf("empty dimension")
		}
		if px, err := strconv.Atoi(s); err == nil {
			return types.Px(px), nil
		}
		return types.Dimension{Expr: s}, nil
	case nil:
		return types.Dimension{}, fmt.Errorf("missing dimension")
	default:
		return types.Dimension{}, fmt.Errorf("unsupported dimension %T", v)
	}
}
