package cmd

import (
	"github.com/spf13/cobra"

	"modepack.dev/pkg/modepack/internal/domain"
	m "modepack.dev/pkg/modepack/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [roots...]",
		Short: "List content packs and whether they validate",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := workflowFor(cmd)
			if err != nil {
				return err
			}

			localRoot, roots := scanRoots(args)
			if localRoot != "" {
				roots = append([]m.Path{localRoot}, roots...)
			}

			return wf.List(cmd.Context(), domain.ListArgs{Roots: roots})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
