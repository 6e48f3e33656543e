// Package cmd provides the root command and CLI setup for compaug.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"compaug.dev/pkg/compaug/internal/adapter"
	"compaug.dev/pkg/compaug/internal/controller"
	"compaug.dev/pkg/compaug/internal/domain"
	m "compaug.dev/pkg/compaug/internal/model"
)

var fsAdapter adapter.FSAdapter
var imageAdapter adapter.ImageAdapter
var workflow domain.Workflow
var ui controller.UI

var inputFlag string
var ignoreFlag []string
var geometricFlag bool
var logFileFlag string
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	images, err := adapter.NewLocalImageAdapter(adapter.DefaultBackgroundCacheSize)
	cobra.CheckErr(err)

	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalFSAdapter()
	imageAdapter = images
	workflow = domain.NewWorkflow(fsAdapter, imageAdapter, ui)
}

const inputHelp = `The input may be a directory, walked recursively, or a single image.
Entries named .git or node_modules are never visited; --ignore adds bare
names (matched anywhere) or paths (matched with everything below them).`

const rootLongDescription = `Compaug generates synthetic training images for object detection. Every
component image found under the input is composited onto random background
images, swept across brightness, saturation, hue and contrast, and written
to the output directory together with a Pascal VOC annotation describing
where the component was placed.

` + inputHelp

const runLongDescription = `Generate the augmented dataset for the given input (default: current directory).

` + inputHelp

const listLongDescription = `List the images that would be augmented and how many variants each produces.

` + inputHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compaug",
		Short: "Synthetic image augmentation for object detection datasets",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
}

// newRootCmd builds a root command with its persistent flags. Subcommands
// are added by the caller.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&inputFlag, inputFlagName, "i", defaultInput, "directory or image to augment")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(inputFlagName), inputConfigKey)

	cmd.PersistentFlags().StringSliceVar(&ignoreFlag, ignoreFlagName, nil, "comma separated names or paths to skip (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(ignoreFlagName), ignoreConfigKey)

	cmd.PersistentFlags().BoolVar(&geometricFlag, geometricFlagName, defaultGeometric, "also write rotated and mirrored copies of every component")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(geometricFlagName), geometricConfigKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "log file path (default "+defaultLogFilename+")")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
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
// An interrupt stops the walk before the next file.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// inputPath returns the positional input when given, the configured one otherwise.
func inputPath(args []string) m.Path {
	if len(args) > 0 && args[0] != "" {
		return m.Path(args[0])
	}

	return m.Path(viper.GetString(inputConfigKey))
}
