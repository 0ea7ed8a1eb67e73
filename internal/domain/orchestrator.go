package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"modepack.dev/pkg/modepack/internal/adapter"
	"modepack.dev/pkg/modepack/internal/controller"
	m "modepack.dev/pkg/modepack/internal/model"
)

// Art slots tracked by the ArtSelector.
const (
	slotCapsule = "capsule"
	slotScreen  = "screen"
)

// Orchestrator drives a single Source from its config document to a
// registered Gamemode. Every failure stays local to the Source and is
// reported in the returned result.
type Orchestrator interface {
	// LoadSource classifies, validates, loads, assembles and registers source.
	LoadSource(ctx context.Context, source m.Source) m.SourceResult
	// InspectSource classifies and validates source without loading anything.
	InspectSource(ctx context.Context, source m.Source) m.SourceResult
}

type orchestrator struct {
	fsAdapter adapter.SourceFSAdapter
	assets    adapter.AssetProvider
	sink      controller.Sink
	validator Validator
	catalog   *LevelCatalog
	progress  *Progress
	art       *ArtSelector
}

// NewOrchestrator constructs an Orchestrator. The level catalog is seeded
// with the provider's built-in levels so they always take precedence over
// levels loaded from bundles.
func NewOrchestrator(
	fsAdapter adapter.SourceFSAdapter,
	assets adapter.AssetProvider,
	sink controller.Sink,
	progress *Progress,
	art *ArtSelector,
) Orchestrator {
	return &orchestrator{
		fsAdapter: fsAdapter,
		assets:    assets,
		sink:      sink,
		validator: NewValidator(fsAdapter),
		catalog:   NewLevelCatalog(assets.BuiltinLevels()),
		progress:  progress,
		art:       art,
	}
}

// sourceRun carries the state of one Source through the load steps.
type sourceRun struct {
	source   m.Source
	result   *m.SourceResult
	phases   []*PhaseReporter
	finished bool
}

func (r *sourceRun) warn(err error) {
	r.result.Warnings = append(r.result.Warnings, err)
	slog.Warn("Content warning", "source", r.source.Name, "error", err)
}

func (r *sourceRun) phaseNames() []string {
	names := make([]string, 0, len(r.phases))
	for _, phase := range r.phases {
		names = append(names, phase.Name())
	}

	return names
}

func (to *orchestrator) LoadSource(ctx context.Context, source m.Source) (result m.SourceResult) {
	result = m.SourceResult{Source: source, Status: m.StatusFailed}
	run := &sourceRun{source: source, result: &result}

	defer func() {
		if r := recover(); r != nil {
			result.Status = m.StatusFailed
			result.Gamemode = ""
			result.Err = fmt.Errorf("panic while loading %s: %v", source.Name, r)
			slog.Error("Recovered panic while loading source", "source", source.Name, "panic", r)
		}

		if !run.finished && len(run.phases) > 0 {
			to.progress.Retire(run.phaseNames()...)
		}
	}()

	kind, doc, err := to.readAndClassify(ctx, source)
	result.Kind = kind

	if err != nil {
		return to.fail(run, err)
	}

	switch kind {
	case m.KindStandard:
		err = to.loadStandard(ctx, run, doc)
	case m.KindPremade:
		err = to.loadPremade(ctx, run, doc)
	case m.KindUnknown:
		result.Status = m.StatusSkipped
		result.Err = fmt.Errorf("%w: %s matches no config schema", ErrUnknownConfig, source.Config.ShortPath)
		slog.Warn("Skipping source with unknown config", "source", source.Name, "config", source.Config.FullPath)

		return result
	}

	if err != nil {
		return to.fail(run, err)
	}

	run.finished = true
	result.Status = m.StatusRegistered

	slog.Info("Registered gamemode", "source", source.Name, "gamemode", result.Gamemode, "warnings", len(result.Warnings))

	return result
}

func (to *orchestrator) InspectSource(ctx context.Context, source m.Source) m.SourceResult {
	result := m.SourceResult{Source: source, Status: m.StatusFailed}

	kind, doc, err := to.readAndClassify(ctx, source)
	result.Kind = kind

	if err != nil {
		result.Err = err
		return result
	}

	switch kind {
	case m.KindStandard:
		var def m.GamemodeDefinition

		def, err = to.validator.ValidateStandard(ctx, source, doc)
		result.Gamemode = def.Name
	case m.KindPremade:
		var def m.PremadeGamemodeDefinition

		def, err = to.validator.ValidatePremade(ctx, source, doc)
		result.Gamemode = def.Name
	case m.KindUnknown:
		result.Status = m.StatusSkipped
		result.Err = fmt.Errorf("%w: %s matches no config schema", ErrUnknownConfig, source.Config.ShortPath)

		return result
	}

	if err != nil {
		result.Gamemode = ""
		result.Err = err

		return result
	}

	result.Status = m.StatusValid

	return result
}

func (to *orchestrator) readAndClassify(ctx context.Context, source m.Source) (m.ConfigKind, m.Document, error) {
	if err := ctx.Err(); err != nil {
		return m.KindUnknown, m.Document{}, err
	}

	data, err := to.fsAdapter.ReadFile(ctx, source.Config.FullPath)
	if err != nil {
		return m.KindUnknown, m.Document{}, fmt.Errorf("%w: %w", ErrSourceIO, err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return m.KindUnknown, m.Document{}, err
	}

	return Classify(doc), doc, nil
}

func (to *orchestrator) fail(run *sourceRun, err error) m.SourceResult {
	run.result.Status = m.StatusFailed
	run.result.Gamemode = ""
	run.result.Err = err

	slog.Error("Failed to load source", "source", run.source.Name, "dir", run.source.Dir, "error", err)

	return *run.result
}

// registerPhases announces the Source's phases before any load starts.
func (to *orchestrator) registerPhases(run *sourceRun, gamemode string, labels ...string) {
	to.progress.Expect(len(labels))

	for _, label := range labels {
		name := fmt.Sprintf("%s for %q [%s]", label, gamemode, run.source.Name)
		run.phases = append(run.phases, to.progress.Phase(name))
	}
}

func (to *orchestrator) loadStandard(ctx context.Context, run *sourceRun, doc m.Document) error {
	def, err := to.validator.ValidateStandard(ctx, run.source, doc)
	if err != nil {
		return err
	}

	to.registerPhases(run, def.Name, "Loading Levels", "Loading Gamemode")
	levelsPhase, gamemodePhase := run.phases[0], run.phases[1]

	if def.AssetBundleFileName != nil {
		if err := to.loadStandardBundle(ctx, run, *def.AssetBundleFileName, levelsPhase); err != nil {
			return err
		}
	}

	levelsPhase.Complete()

	capsule := to.loadArt(ctx, run, def.CapsuleIcon)
	screen := to.loadArt(ctx, run, def.ScreenIcon)

	gamemodePhase.Report(0.25)

	regions, warnings := ComposeRegions(def.Regions, to.catalog)
	for _, warning := range warnings {
		run.warn(warning)
	}

	gamemodePhase.Report(0.75)

	category := m.StringOr(def.Category, m.DefaultCategory)

	gamemode, err := NewGamemode(def.Name, regions,
		WithAuthor(def.Author),
		WithCategory(category),
		WithIntroText(def.IntroText),
		WithEndless(def.IsEndless),
		WithPerks(def.HasPerks),
		WithRevives(def.HasRevives),
		WithCapsuleArt(capsule),
		WithScreenArt(screen),
		WithGameType(m.StringOr(def.GameType, m.DefaultGameType)),
	)
	if err != nil {
		return err
	}

	if err := to.register(ctx, run, gamemode, category, nil); err != nil {
		return err
	}

	gamemodePhase.Complete()

	return nil
}

func (to *orchestrator) loadStandardBundle(ctx context.Context, run *sourceRun, fileName string, phase *PhaseReporter) error {
	path := to.fsAdapter.JoinPath(ctx, string(run.source.AssetsDir()), fileName)

	bundle, err := to.assets.LoadBundle(ctx, path, scaledReporter{target: phase, from: 0, to: 0.5})
	if err != nil {
		return fmt.Errorf("%w: load bundle: %w", ErrSourceIO, err)
	}

	levels, err := to.assets.LoadLevelsFromBundle(ctx, bundle, scaledReporter{target: phase, from: 0.5, to: 1})
	if err != nil {
		return fmt.Errorf("%w: load bundle levels: %w", ErrSourceIO, err)
	}

	added := to.catalog.Merge(levels)
	slog.Debug("Merged bundle levels", "source", run.source.Name, "bundle", bundle.Manifest.Name, "levels", len(levels), "added", added)

	return nil
}

func (to *orchestrator) loadPremade(ctx context.Context, run *sourceRun, doc m.Document) error {
	def, err := to.validator.ValidatePremade(ctx, run.source, doc)
	if err != nil {
		return err
	}

	to.registerPhases(run, def.Name, "Loading Assets", "Loading Levels", "Loading Gamemode")
	assetsPhase, levelsPhase, gamemodePhase := run.phases[0], run.phases[1], run.phases[2]

	path := to.fsAdapter.JoinPath(ctx, string(run.source.AssetsDir()), def.AssetBundle)

	bundle, err := to.assets.LoadBundle(ctx, path, assetsPhase)
	if err != nil {
		return fmt.Errorf("%w: load bundle: %w", ErrSourceIO, err)
	}

	assetsPhase.Complete()

	levels, err := to.assets.LoadLevelsFromBundle(ctx, bundle, levelsPhase)
	if err != nil {
		return fmt.Errorf("%w: load bundle levels: %w", ErrSourceIO, err)
	}

	to.catalog.Merge(levels)
	levelsPhase.Complete()

	base, err := to.assets.LoadGamemodeFromBundle(ctx, bundle, def.Name, scaledReporter{target: gamemodePhase, from: 0, to: 0.8})
	if err != nil {
		return fmt.Errorf("%w: load gamemode: %w", ErrSourceIO, err)
	}

	capsule, capsulePool := to.selectArt(ctx, run, slotCapsule, def.CapsuleArts)
	if capsule == nil {
		capsule = base.CapsuleArt
	}

	screen, screenPool := to.selectArt(ctx, run, slotScreen, def.ScreenArts)
	if screen == nil {
		screen = base.ScreenArt
	}

	category := m.StringOr(def.Category, m.DefaultCategory)

	gamemode, err := NewGamemode(base.Name, base.Regions,
		WithAuthor(def.Author),
		WithCategory(category),
		WithIntroText(base.IntroText),
		WithEndless(base.IsEndless),
		WithPerks(base.HasPerks),
		WithRevives(base.HasRevives),
		WithCapsuleArt(capsule),
		WithScreenArt(screen),
		WithScreenArtPool(screenPool),
		WithGameType(base.GameType),
	)
	if err != nil {
		return err
	}

	if err := to.register(ctx, run, gamemode, category, capsulePool); err != nil {
		return err
	}

	gamemodePhase.Complete()

	return nil
}

// selectArt loads the configured art paths. A single path is used as is;
// several form a pool out of which one sprite is chosen for slot.
func (to *orchestrator) selectArt(ctx context.Context, run *sourceRun, slot string, paths []string) (*m.Sprite, []m.Sprite) {
	switch len(paths) {
	case 0:
		return nil, nil
	case 1:
		return to.loadArt(ctx, run, paths[0]), nil
	}

	pool := make([]m.Sprite, 0, len(paths))

	for _, path := range paths {
		if sprite := to.loadArt(ctx, run, path); sprite != nil {
			pool = append(pool, *sprite)
		}
	}

	if len(pool) == 0 {
		return nil, nil
	}

	chosen := pool[to.art.Choose(slot+"/"+run.source.Name, len(pool))]

	return &chosen, pool
}

// loadArt resolves rel against the Source's Assets folder. Failures are warnings.
func (to *orchestrator) loadArt(ctx context.Context, run *sourceRun, rel string) *m.Sprite {
	if rel == "" {
		return nil
	}

	path := to.fsAdapter.JoinPath(ctx, string(run.source.AssetsDir()), rel)

	sprite, err := to.assets.LoadImage(ctx, path)
	if err != nil {
		run.warn(fmt.Errorf("%w: art %s: %w", ErrResolution, rel, err))
		return nil
	}

	return sprite
}

func (to *orchestrator) register(ctx context.Context, run *sourceRun, gamemode m.Gamemode, category string, artPool []m.Sprite) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := to.sink.RegisterGamemode(ctx, gamemode, category, artPool, gamemode.Author); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		return fmt.Errorf("%w: %w", ErrRegistration, err)
	}

	run.result.Gamemode = gamemode.Name

	return nil
}
