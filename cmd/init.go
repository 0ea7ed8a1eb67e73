package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	m "modepack.dev/pkg/modepack/internal/model"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default modepack.yaml and the local gamemodes folder",
		Long: `Create a modepack.yaml in the current working directory populated with the
current CLI defaults so it can be edited manually, and create the local
gamemodes folder content packs are dropped into.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			if err := viper.SafeWriteConfigAs(targetPath); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			gamemodesDir := m.Path(viper.GetString(gamemodesDirConfigKey))
			if err := fsAdapter.MkdirAll(cmd.Context(), gamemodesDir); err != nil {
				return fmt.Errorf("failed to create gamemodes folder: %w", err)
			}

			cmd.Printf("Wrote %s\nContent packs go into %s\n", targetPath, gamemodesDir)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
