package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"modepack.dev/pkg/modepack/internal/adapter"
	m "modepack.dev/pkg/modepack/internal/model"
)

// ScanArgs contains the arguments for scanning content packs.
type ScanArgs struct {
	// LocalRoot is created when missing and scanned first.
	LocalRoot m.Path
	// Roots are externally managed folders scanned after LocalRoot.
	Roots []m.Path
	// Parallel bounds how many Sources load at once. Values below 1 mean 1.
	Parallel int
}

func (a ScanArgs) allRoots() []m.Path {
	roots := make([]m.Path, 0, len(a.Roots)+1)
	if a.LocalRoot != "" {
		roots = append(roots, a.LocalRoot)
	}

	return append(roots, a.Roots...)
}

// Pipeline discovers Sources under the scan roots and fans them out to the
// Orchestrator.
type Pipeline interface {
	// Discover lists every Source under roots, in root order then name order.
	Discover(ctx context.Context, roots []m.Path) ([]m.Source, error)
	// Scan loads every discovered Source. It fails only when ctx is done.
	Scan(ctx context.Context, args ScanArgs) (m.ScanReport, error)
	// Inspect classifies and validates every discovered Source.
	Inspect(ctx context.Context, roots []m.Path) ([]m.SourceResult, error)
}

type pipeline struct {
	adapter.SourceFSAdapter
	Orchestrator
}

// NewPipeline creates a Pipeline backed by the given filesystem and orchestrator.
func NewPipeline(fsAdapter adapter.SourceFSAdapter, orchestrator Orchestrator) Pipeline {
	return &pipeline{
		SourceFSAdapter: fsAdapter,
		Orchestrator:    orchestrator,
	}
}

func (p *pipeline) Discover(ctx context.Context, roots []m.Path) ([]m.Source, error) {
	var sources []m.Source

	seen := make(map[m.Path]struct{}, len(roots))

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, dup := seen[root]; dup {
			continue
		}

		seen[root] = struct{}{}

		found, err := p.discoverRoot(ctx, root)
		if err != nil {
			return nil, err
		}

		sources = append(sources, found...)
	}

	return sources, nil
}

func (p *pipeline) discoverRoot(ctx context.Context, root m.Path) ([]m.Source, error) {
	dirs, err := p.ListDirs(ctx, root)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("Skipping missing content root", "root", root)
		} else {
			slog.Warn("Failed to list content root", "root", root, "error", err)
		}

		return nil, nil
	}

	sources := make([]m.Source, 0, len(dirs))

	for _, dir := range dirs {
		configPath := p.JoinPath(ctx, string(dir), m.ConfigFileName)

		info, err := p.FileInfo(ctx, configPath)
		if err != nil || info.IsDir() {
			slog.Debug("Skipping folder without config", "dir", dir)
			continue
		}

		shortPath, err := p.RelPath(ctx, root, configPath)
		if err != nil {
			shortPath = configPath
		}

		sources = append(sources, m.Source{
			Root: root,
			Dir:  dir,
			Name: filepath.Base(string(dir)),
			Config: m.File{
				ShortPath: shortPath,
				FullPath:  configPath,
			},
		})
	}

	return sources, nil
}

func (p *pipeline) Scan(ctx context.Context, args ScanArgs) (m.ScanReport, error) {
	if args.LocalRoot != "" {
		if err := p.MkdirAll(ctx, args.LocalRoot); err != nil {
			slog.Warn("Failed to create gamemodes folder", "root", args.LocalRoot, "error", err)
		}
	}

	sources, err := p.Discover(ctx, args.allRoots())
	if err != nil {
		return m.ScanReport{}, fmt.Errorf("discover sources: %w", err)
	}

	slog.Info("Discovered sources", "count", len(sources), "parallel", max(args.Parallel, 1))

	results := make([]m.SourceResult, len(sources))

	var group errgroup.Group
	group.SetLimit(max(args.Parallel, 1))

	for i, source := range sources {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = m.SourceResult{Source: source, Status: m.StatusFailed, Err: err}
				return nil
			}

			results[i] = p.LoadSource(ctx, source)

			return nil
		})
	}

	_ = group.Wait()

	report := m.ScanReport{Results: results}
	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("scan interrupted: %w", err)
	}

	return report, nil
}

func (p *pipeline) Inspect(ctx context.Context, roots []m.Path) ([]m.SourceResult, error) {
	sources, err := p.Discover(ctx, roots)
	if err != nil {
		return nil, fmt.Errorf("discover sources: %w", err)
	}

	results := make([]m.SourceResult, 0, len(sources))

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		results = append(results, p.InspectSource(ctx, source))
	}

	return results, nil
}
