// Package cmd provides the root command and CLI setup for modepack.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"modepack.dev/pkg/modepack/internal/adapter"
	"modepack.dev/pkg/modepack/internal/controller"
	"modepack.dev/pkg/modepack/internal/domain"
	m "modepack.dev/pkg/modepack/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var assetProvider adapter.AssetProvider
var progressTracker *domain.Progress
var artSelector *domain.ArtSelector
var orchestrator domain.Orchestrator
var pipeline domain.Pipeline
var workflow domain.Workflow
var ui controller.UI

var pluginsDirFlag string
var builtinLevelsFlag string
var logFileFlag string
var verboseFlag bool
var noTUIFlag bool

func init() {
	configureRootFlags(rootCmd)

	fsAdapter = adapter.NewLocalSourceFSAdapter()
}

const rootsHelp = `Without arguments the local gamemodes folder (created when missing) and the
configured plugins folder are scanned. Every immediate subfolder holding a
config.json is one content pack.`

const rootLongDescription = `Modepack discovers game-mode content packs on disk, validates their
config.json, loads their art and asset bundles, resolves their level trees
and registers the resulting gamemodes.

` + rootsHelp

const scanLongDescription = `Load every content pack under the given roots and register its gamemode.

` + rootsHelp

const listLongDescription = `Classify and validate every content pack without loading it.

` + rootsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modepack",
		Short: "Game-mode content pack loader",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&pluginsDirFlag, pluginsDirFlagName, viper.GetString(pluginsDirConfigKey), "externally managed plugins folder to scan")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(pluginsDirFlagName), pluginsDirConfigKey)

	cmd.PersistentFlags().StringVar(&builtinLevelsFlag, builtinLevelsFlagName, viper.GetString(builtinLevelsConfigKey), "YAML file listing the built-in levels")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(builtinLevelsFlagName), builtinLevelsConfigKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().BoolVar(&noTUIFlag, noTUIFlagName, false, "always print plain text output")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// workflowFor returns the shared workflow, wiring it on first use.
func workflowFor(cmd *cobra.Command) (domain.Workflow, error) {
	if workflow != nil {
		return workflow, nil
	}

	if err := wireDependencies(cmd); err != nil {
		return nil, err
	}

	return workflow, nil
}

func wireDependencies(cmd *cobra.Command) error {
	builtin, err := loadBuiltinLevels(viper.GetString(builtinLevelsConfigKey))
	if err != nil {
		return err
	}

	assets, err := adapter.NewLocalAssetAdapter(builtin, viper.GetInt(imageCacheSizeConfigKey))
	if err != nil {
		return fmt.Errorf("create asset provider: %w", err)
	}

	assetProvider = assets
	progressTracker = domain.NewProgress()
	artSelector = domain.NewArtSelector(artSeed(viper.GetUint64(artSeedConfigKey)))
	ui = controller.NewUI(cmd, viper.GetBool(tuiConfigKey) && !noTUIFlag)
	orchestrator = domain.NewOrchestrator(fsAdapter, assetProvider, ui, progressTracker, artSelector)
	pipeline = domain.NewPipeline(fsAdapter, orchestrator)
	workflow = domain.NewWorkflow(pipeline, ui, progressTracker)

	return nil
}

func loadBuiltinLevels(path string) ([]m.Level, error) {
	if path == "" {
		return nil, nil
	}

	levels, err := adapter.LoadLevelCatalogFile(m.Path(path))
	if err != nil {
		return nil, fmt.Errorf("load built-in levels: %w", err)
	}

	return levels, nil
}

// artSeed keeps a configured seed and derives one from the clock for 0.
func artSeed(configured uint64) uint64 {
	if configured != 0 {
		return configured
	}

	return uint64(time.Now().UnixNano())
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// scanRoots returns the local root and the remaining roots for a command.
// Explicit arguments replace the configured folders.
func scanRoots(args []string) (m.Path, []m.Path) {
	if len(args) > 0 {
		return "", parsePaths(args)
	}

	var roots []m.Path
	if dir := viper.GetString(pluginsDirConfigKey); dir != "" {
		roots = append(roots, m.Path(dir))
	}

	return m.Path(viper.GetString(gamemodesDirConfigKey)), roots
}
