package cmd

import (
	"github.com/spf13/cobra"

	"github.com/datasetlab/cocokit/pkg/bundle"
	"github.com/datasetlab/cocokit/pkg/coco"
	"github.com/datasetlab/cocokit/pkg/logging"
)

var cpFlags struct {
	outputDir     string
	absolutePaths bool
}

// cpCmd represents the cp command.
var cpCmd = &cobra.Command{
	Use:   "cp <dataset.json>",
	Short: "Copy a dataset and its images into one directory",
	Long: `Cp copies every image of a dataset into <output-dir>/images and
writes the dataset file, with image paths rewritten, into <output-dir>.
The resulting directory is self-contained and can be moved or archived
as a unit. Images that cannot be found are skipped with a warning.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		f, err := coco.Load(ctx, args[0])
		if err != nil {
			return err
		}

		var opts []bundle.Option
		if cpFlags.absolutePaths {
			opts = append(opts, bundle.WithAbsolutePaths())
		}
		bundler, err := bundle.New(opts...)
		if err != nil {
			return err
		}

		res, err := bundler.Dataset(ctx, f, args[0], cpFlags.outputDir)
		if err != nil {
			return err
		}

		outPath := bundle.OutputDatasetPath(args[0], cpFlags.outputDir)
		if err := coco.Save(ctx, outPath, res.File); err != nil {
			return err
		}
		logging.Info().
			Str("output", outPath).
			Int("copied", res.Copied).
			Int("missing", len(res.Missing)).
			Msg("bundled dataset")
		return nil
	},
}

func init() {
	cpCmd.Flags().StringVarP(&cpFlags.outputDir, "output-dir-path", "p", "coco-dataset",
		"Output directory path")
	cpCmd.Flags().BoolVarP(&cpFlags.absolutePaths, "absolute-paths", "a", false,
		"Record absolute paths for the copied images")

	rootCmd.AddCommand(cpCmd)
}
