package adapter

import (
	"context"
	"errors"
	"fmt"
	"image"
	// Register decoders for the sprite formats content packs ship.
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	m "modepack.dev/pkg/modepack/internal/model"
)

// DefaultImageCacheSize bounds the number of decoded sprites kept in memory.
const DefaultImageCacheSize = 64

var (
	// ErrGamemodeNotInBundle is returned when a bundle does not ship the requested gamemode.
	ErrGamemodeNotInBundle = errors.New("gamemode not found in bundle")
	// ErrUnknownLevel is returned when a ready-made gamemode references a missing level.
	ErrUnknownLevel = errors.New("unknown level")
)

// ProgressReporter receives the completion fraction of a long-running load.
type ProgressReporter interface {
	Report(fraction float64)
}

// AssetProvider resolves image paths and asset bundles to concrete content.
//
//nolint:interfacebloat // Mirrors the operations a content pack can request.
type AssetProvider interface {
	// LoadImage decodes the sprite at path.
	LoadImage(ctx context.Context, path m.Path) (*m.Sprite, error)

	// LoadBundle opens and decodes the bundle at path.
	LoadBundle(ctx context.Context, path m.Path, progress ProgressReporter) (*m.BundleHandle, error)

	// LoadLevelsFromBundle loads every level a bundle contains, in manifest order.
	LoadLevelsFromBundle(ctx context.Context, bundle *m.BundleHandle, progress ProgressReporter) ([]m.Level, error)

	// LoadGamemodeFromBundle builds the ready-made gamemode a bundle ships under name.
	LoadGamemodeFromBundle(ctx context.Context, bundle *m.BundleHandle, name string, progress ProgressReporter) (m.Gamemode, error)

	// FindLevelsByName returns the level called name plus its "name_" family.
	FindLevelsByName(name string) []m.Level

	// BuiltinLevels returns the pre-existing level catalog.
	BuiltinLevels() []m.Level
}

// LocalAssetAdapter loads sprites and YAML bundle manifests from disk.
type LocalAssetAdapter struct {
	images  *lru.Cache[m.Path, m.Sprite]
	builtin []m.Level

	mu     sync.RWMutex
	levels []m.Level
	byName map[string]struct{}
}

// NewLocalAssetAdapter creates an adapter that knows the given built-in
// levels and caches up to cacheSize decoded sprites.
func NewLocalAssetAdapter(builtin []m.Level, cacheSize int) (*LocalAssetAdapter, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultImageCacheSize
	}

	images, err := lru.New[m.Path, m.Sprite](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create image cache: %w", err)
	}

	a := &LocalAssetAdapter{
		images: images,
		byName: make(map[string]struct{}, len(builtin)),
	}

	for _, level := range builtin {
		level.Origin = m.OriginBuiltin
		if a.remember(level) {
			a.builtin = append(a.builtin, level)
		}
	}

	return a, nil
}

// LoadImage decodes the header of a PNG or JPEG sprite.
func (a *LocalAssetAdapter) LoadImage(ctx context.Context, path m.Path) (*m.Sprite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if sprite, ok := a.images.Get(path); ok {
		return &sprite, nil
	}

	// #nosec G304 - sprite paths are resolved inside a content pack's Assets folder
	f, err := os.Open(string(path))
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}

	defer func() { _ = f.Close() }()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	sprite := m.Sprite{
		Path:   path,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
	a.images.Add(path, sprite)

	return &sprite, nil
}

// LoadBundle reads the bundle at path, reporting the fraction of bytes read.
func (a *LocalAssetAdapter) LoadBundle(ctx context.Context, path m.Path, progress ProgressReporter) (*m.BundleHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - bundle paths are resolved inside a content pack's Assets folder
	f, err := os.Open(string(path))
	if err != nil {
		return nil, fmt.Errorf("open bundle %s: %w", path, err)
	}

	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat bundle %s: %w", path, err)
	}

	data, err := io.ReadAll(&progressReader{reader: f, size: info.Size(), progress: progress})
	if err != nil {
		return nil, fmt.Errorf("read bundle %s: %w", path, err)
	}

	manifest, err := decodeManifest(data)
	if err != nil {
		return nil, fmt.Errorf("bundle %s: %w", path, err)
	}

	manifest.Name = bundleName(manifest, path)
	report(progress, 1)

	slog.Debug("Loaded bundle", "path", path, "levels", len(manifest.Levels), "gamemodes", len(manifest.Gamemodes))

	return &m.BundleHandle{
		Path:     path,
		Dir:      m.Path(filepath.Dir(string(path))),
		Manifest: manifest,
	}, nil
}

// LoadLevelsFromBundle turns the manifest's level entries into Levels and makes
// them visible to FindLevelsByName. Names already known keep their first entry.
func (a *LocalAssetAdapter) LoadLevelsFromBundle(ctx context.Context, bundle *m.BundleHandle, progress ProgressReporter) ([]m.Level, error) {
	if bundle == nil {
		return nil, fmt.Errorf("%w: nil bundle", ErrInvalidBundle)
	}

	entries := bundle.Manifest.Levels
	levels := make([]m.Level, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, dup := seen[entry.Name]; dup {
			slog.Warn("Duplicate level in bundle", "bundle", bundle.Manifest.Name, "level", entry.Name)
			continue
		}

		seen[entry.Name] = struct{}{}

		level := m.Level{
			Name:   entry.Name,
			Scene:  entry.Scene,
			Origin: m.OriginBundle,
			Bundle: bundle.Manifest.Name,
		}
		levels = append(levels, level)

		a.mu.Lock()
		a.remember(level)
		a.mu.Unlock()

		report(progress, float64(i+1)/float64(len(entries)))
	}

	report(progress, 1)

	return levels, nil
}

// LoadGamemodeFromBundle resolves the named ready-made gamemode against the
// levels this adapter knows.
func (a *LocalAssetAdapter) LoadGamemodeFromBundle(ctx context.Context, bundle *m.BundleHandle, name string, progress ProgressReporter) (m.Gamemode, error) {
	if bundle == nil {
		return m.Gamemode{}, fmt.Errorf("%w: nil bundle", ErrInvalidBundle)
	}

	def, ok := findBundleGamemode(bundle.Manifest, name)
	if !ok {
		return m.Gamemode{}, fmt.Errorf("%w: %q in %s", ErrGamemodeNotInBundle, name, bundle.Manifest.Name)
	}

	regions := make([]m.Region, 0, len(def.Regions))

	for i, regionDef := range def.Regions {
		if err := ctx.Err(); err != nil {
			return m.Gamemode{}, err
		}

		region, err := a.resolveBundleRegion(regionDef)
		if err != nil {
			return m.Gamemode{}, fmt.Errorf("gamemode %q: %w", name, err)
		}

		regions = append(regions, region)
		report(progress, float64(i+1)/float64(len(def.Regions)+1))
	}

	gm := m.Gamemode{
		Name:       def.Name,
		IntroText:  def.IntroText,
		IsEndless:  def.IsEndless,
		HasPerks:   def.HasPerks,
		HasRevives: def.HasRevives,
		GameType:   def.GameType,
		Regions:    regions,
		CapsuleArt: a.loadBundleArt(ctx, bundle, def.CapsuleArt),
		ScreenArt:  a.loadBundleArt(ctx, bundle, def.ScreenArt),
	}

	report(progress, 1)

	return gm, nil
}

// FindLevelsByName returns the exact match plus every "name_" variant, in the
// order the levels became known.
func (a *LocalAssetAdapter) FindLevelsByName(name string) []m.Level {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return FilterLevelFamily(a.levels, name)
}

// BuiltinLevels returns a copy of the pre-existing catalog.
func (a *LocalAssetAdapter) BuiltinLevels() []m.Level {
	out := make([]m.Level, len(a.builtin))
	copy(out, a.builtin)

	return out
}

// FilterLevelFamily selects the level called name and its "name_" family.
func FilterLevelFamily(levels []m.Level, name string) []m.Level {
	if name == "" {
		return nil
	}

	var matches []m.Level

	for _, level := range levels {
		if level.Name == name || strings.HasPrefix(level.Name, name+"_") {
			matches = append(matches, level)
		}
	}

	return matches
}

// remember records level unless its name is already known. Callers hold mu
// once the adapter is shared.
func (a *LocalAssetAdapter) remember(level m.Level) bool {
	if _, ok := a.byName[level.Name]; ok {
		return false
	}

	a.byName[level.Name] = struct{}{}
	a.levels = append(a.levels, level)

	return true
}

func (a *LocalAssetAdapter) resolveBundleRegion(def m.BundleRegion) (m.Region, error) {
	region := m.Region{Name: def.Name, Subregions: make([]m.Subregion, 0, len(def.Subregions))}

	for _, subDef := range def.Subregions {
		sub := m.Subregion{Name: subDef.Name}

		for _, levelName := range subDef.Levels {
			matches := a.FindLevelsByName(levelName)
			if len(matches) == 0 {
				return m.Region{}, fmt.Errorf("%w: %q in %s/%s", ErrUnknownLevel, levelName, def.Name, subDef.Name)
			}

			sub.Levels = append(sub.Levels, matches...)
		}

		region.Subregions = append(region.Subregions, sub)
	}

	return region, nil
}

func (a *LocalAssetAdapter) loadBundleArt(ctx context.Context, bundle *m.BundleHandle, rel string) *m.Sprite {
	if rel == "" {
		return nil
	}

	path := m.Path(filepath.Join(string(bundle.Dir), rel))

	sprite, err := a.LoadImage(ctx, path)
	if err != nil {
		slog.Warn("Failed to load bundle art", "bundle", bundle.Manifest.Name, "path", path, "error", err)
		return nil
	}

	return sprite
}

func findBundleGamemode(manifest m.BundleManifest, name string) (m.BundleGamemode, bool) {
	for _, gm := range manifest.Gamemodes {
		if gm.Name == name {
			return gm, true
		}
	}

	return m.BundleGamemode{}, false
}

func report(progress ProgressReporter, fraction float64) {
	if progress == nil {
		return
	}

	progress.Report(fraction)
}
