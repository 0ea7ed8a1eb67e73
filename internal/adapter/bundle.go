package adapter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "modepack.dev/pkg/modepack/internal/model"
)

// ErrInvalidBundle is returned when a bundle manifest cannot be used.
var ErrInvalidBundle = errors.New("invalid bundle")

// decodeManifest parses a YAML bundle manifest and checks its level entries.
func decodeManifest(data []byte) (m.BundleManifest, error) {
	var manifest m.BundleManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return m.BundleManifest{}, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
	}

	for i, level := range manifest.Levels {
		if level.Name == "" {
			return m.BundleManifest{}, fmt.Errorf("%w: level #%d has no name", ErrInvalidBundle, i)
		}
	}

	return manifest, nil
}

// LoadLevelCatalogFile reads the built-in level catalog from a YAML file that
// uses the bundle manifest layout (only the levels list is read).
func LoadLevelCatalogFile(path m.Path) ([]m.Level, error) {
	// #nosec G304 - catalog path comes from the user's configuration
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read level catalog %s: %w", path, err)
	}

	manifest, err := decodeManifest(data)
	if err != nil {
		return nil, fmt.Errorf("decode level catalog %s: %w", path, err)
	}

	levels := make([]m.Level, 0, len(manifest.Levels))
	for _, level := range manifest.Levels {
		levels = append(levels, m.Level{
			Name:   level.Name,
			Scene:  level.Scene,
			Origin: m.OriginBuiltin,
		})
	}

	return levels, nil
}

// bundleName falls back to the file name when the manifest carries none.
func bundleName(manifest m.BundleManifest, path m.Path) string {
	if manifest.Name != "" {
		return manifest.Name
	}

	return filepath.Base(string(path))
}

// progressReader reports the fraction of size consumed so far.
type progressReader struct {
	reader   io.Reader
	size     int64
	read     int64
	progress ProgressReporter
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.read += int64(n)

	if r.size > 0 {
		report(r.progress, float64(r.read)/float64(r.size))
	}

	return n, err
}
