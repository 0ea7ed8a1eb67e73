package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"modepack.dev/pkg/modepack/internal/domain"
)

var scanParallelFlag int
var seedFlag uint64

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [roots...]",
		Short: "Load content packs and register their gamemodes",
		Long:  scanLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := workflowFor(cmd)
			if err != nil {
				return err
			}

			localRoot, roots := scanRoots(args)

			return wf.Scan(cmd.Context(), domain.ScanArgs{
				LocalRoot: localRoot,
				Roots:     roots,
				Parallel:  viper.GetInt(scanParallelConfigKey),
			})
		},
	}

	configureScanFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func configureScanFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&scanParallelFlag, scanParallelFlagName, "p", viper.GetInt(scanParallelConfigKey), "number of content packs loaded at once")
	bindFlagToConfig(cmd.Flags().Lookup(scanParallelFlagName), scanParallelConfigKey)

	cmd.Flags().Uint64Var(&seedFlag, seedFlagName, viper.GetUint64(artSeedConfigKey), "seed for art selection (0 picks one from the clock)")
	bindFlagToConfig(cmd.Flags().Lookup(seedFlagName), artSeedConfigKey)
}
