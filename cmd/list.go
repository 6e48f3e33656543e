package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"compaug.dev/pkg/compaug/internal/domain"
	m "compaug.dev/pkg/compaug/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [input]",
		Short: "List images and variant counts without generating",
		Long:  listLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Plan(cmd.Context(), domain.PlanArgs{
				Input:       inputPath(args),
				Output:      m.Path(viper.GetString(outputConfigKey)),
				Backgrounds: m.Path(viper.GetString(backgroundsConfigKey)),
				Ignore:      ignoreEntries(),
				Geometric:   viper.GetBool(geometricConfigKey),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
