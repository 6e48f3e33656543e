package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"compaug.dev/pkg/compaug/internal/domain"
	m "compaug.dev/pkg/compaug/internal/model"
)

var outputFlag string
var backgroundsFlag string
var runParallelFlag int
var seedFlag int64
var annotationFormatFlag string
var labelFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [input]",
		Short: "Generate the augmented dataset",
		Long:  runLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Run(cmd.Context(), domain.RunArgs{
				Input:            inputPath(args),
				Output:           m.Path(viper.GetString(outputConfigKey)),
				Backgrounds:      m.Path(viper.GetString(backgroundsConfigKey)),
				Ignore:           ignoreEntries(),
				Parallel:         viper.GetInt(runParallelConfigKey),
				Seed:             viper.GetInt64(runSeedConfigKey),
				Geometric:        viper.GetBool(geometricConfigKey),
				Label:            viper.GetString(annotationLabelConfigKey),
				AnnotationFormat: viper.GetString(annotationFormatConfigKey),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFlag, outputFlagName, "o", defaultOutput, "directory receiving the generated images and annotations")
	bindFlagToConfig(cmd.Flags().Lookup(outputFlagName), outputConfigKey)

	cmd.Flags().StringVar(&backgroundsFlag, backgroundsFlagName, defaultBackgrounds, "directory holding the background images")
	bindFlagToConfig(cmd.Flags().Lookup(backgroundsFlagName), backgroundsConfigKey)

	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", defaultRunParallel, "number of variants produced concurrently")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.Flags().Int64Var(&seedFlag, seedFlagName, defaultSeed, "random seed for background choice and placement (0 = time based)")
	bindFlagToConfig(cmd.Flags().Lookup(seedFlagName), runSeedConfigKey)

	cmd.Flags().StringVar(&annotationFormatFlag, annotationFormatFlagName, defaultAnnotationFormat, "annotation sidecar format: xml or yaml")
	bindFlagToConfig(cmd.Flags().Lookup(annotationFormatFlagName), annotationFormatConfigKey)

	cmd.Flags().StringVar(&labelFlag, labelFlagName, defaultAnnotationLabel, "object name written into every annotation")
	bindFlagToConfig(cmd.Flags().Lookup(labelFlagName), annotationLabelConfigKey)
}
