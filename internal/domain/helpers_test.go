package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"modepack.dev/pkg/modepack/internal/adapter"
	"modepack.dev/pkg/modepack/internal/controller"
	m "modepack.dev/pkg/modepack/internal/model"
)

// recordingSink collects registrations and can be told to fail or panic.
type recordingSink struct {
	mu            sync.Mutex
	registrations []controller.Registration
	failFor       string
	panicFor      string
}

func (s *recordingSink) RegisterGamemode(_ context.Context, gamemode m.Gamemode, category string, artPool []m.Sprite, author *string) error {
	if gamemode.Name == s.panicFor {
		panic("sink exploded")
	}

	if gamemode.Name == s.failFor {
		return fmt.Errorf("sink refused %s", gamemode.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.registrations = append(s.registrations, controller.Registration{
		Gamemode: gamemode,
		Category: category,
		ArtPool:  artPool,
		Author:   author,
	})

	return nil
}

func (s *recordingSink) byName(name string) (controller.Registration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, registration := range s.registrations {
		if registration.Gamemode.Name == name {
			return registration, true
		}
	}

	return controller.Registration{}, false
}

type testEnv struct {
	root     string
	sink     *recordingSink
	progress *Progress
	pipeline Pipeline
}

func newTestEnv(t *testing.T, builtin []m.Level) *testEnv {
	t.Helper()

	assets, err := adapter.NewLocalAssetAdapter(builtin, 8)
	require.NoError(t, err)

	fsAdapter := adapter.NewLocalSourceFSAdapter()
	env := &testEnv{
		root:     t.TempDir(),
		sink:     &recordingSink{},
		progress: NewProgress(),
	}
	orch := NewOrchestrator(fsAdapter, assets, env.sink, env.progress, NewArtSelector(42))
	env.pipeline = NewPipeline(fsAdapter, orch)

	return env
}

func (e *testEnv) scan(t *testing.T, parallel int) m.ScanReport {
	t.Helper()

	report, err := e.pipeline.Scan(context.Background(), ScanArgs{
		Roots:    []m.Path{m.Path(e.root)},
		Parallel: parallel,
	})
	require.NoError(t, err)

	return report
}

// writePack creates <root>/<name>/config.json from config plus Assets files.
func writePack(t *testing.T, root, name string, config any, assets map[string][]byte) string {
	t.Helper()

	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, m.AssetsDirName), 0o755))

	var data []byte

	switch c := config.(type) {
	case string:
		data = []byte(c)
	default:
		var err error
		data, err = json.Marshal(c)
		require.NoError(t, err)
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, m.ConfigFileName), data, 0o644))

	for rel, content := range assets {
		require.NoError(t, os.WriteFile(filepath.Join(dir, m.AssetsDirName, rel), content, 0o644))
	}

	return dir
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	require.NoError(t, err)

	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, width, height))))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return data
}

func resultFor(t *testing.T, report m.ScanReport, name string) m.SourceResult {
	t.Helper()

	for _, result := range report.Results {
		if result.Source.Name == name {
			return result
		}
	}

	require.FailNow(t, "no result for source", name)

	return m.SourceResult{}
}

func levelNames(levels []m.Level) []string {
	names := make([]string, 0, len(levels))
	for _, level := range levels {
		names = append(names, level.Name)
	}

	return names
}

func strPtr(s string) *string {
	return &s
}

func standardConfig(name string, regions ...map[string]any) map[string]any {
	if regions == nil {
		regions = []map[string]any{}
	}

	return map[string]any{
		"gamemodeName": name,
		"capsuleIcon":  "capsule.png",
		"screenIcon":   "screen.png",
		"regions":      regions,
	}
}

func region(name string, subregions ...map[string]any) map[string]any {
	return map[string]any{"regionName": name, "subregions": subregions}
}
