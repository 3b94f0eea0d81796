package cmd

import (
	"github.com/spf13/cobra"

	"github.com/datasetlab/cocokit/pkg/coco"
	"github.com/datasetlab/cocokit/pkg/logging"
	"github.com/datasetlab/cocokit/pkg/merge"
)

var mergeFlags struct {
	output        string
	reassign      bool
	versionString string
	description   string
}

// mergeCmd represents the merge command.
var mergeCmd = &cobra.Command{
	Use:   "merge <dataset.json>...",
	Short: "Merge dataset files into one",
	Long: `Merge combines multiple dataset files into a single dataset,
reconciling category, license, image, and annotation ids.

Categories and licenses with identical content are collapsed into one
record. Images whose ids clash are dropped with a warning unless
--reassign-clashing-ids is set, in which case they receive fresh ids.
Annotation ids are always made unique.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		files, err := coco.LoadAll(ctx, args)
		if err != nil {
			return err
		}
		inputs := make([]merge.Input, len(files))
		for i, f := range files {
			inputs[i] = merge.Input{Path: args[i], File: f}
		}

		opts := []merge.Option{
			merge.WithVersion(mergeFlags.versionString),
			merge.WithDescription(mergeFlags.description),
		}
		if mergeFlags.reassign {
			opts = append(opts, merge.WithReassignClashingIDs())
		}

		merger, err := merge.New(opts...)
		if err != nil {
			return err
		}
		res, err := merger.Datasets(ctx, inputs)
		if err != nil {
			return err
		}

		if err := coco.Save(ctx, mergeFlags.output, res.File); err != nil {
			return err
		}
		logging.Info().
			Str("output", mergeFlags.output).
			Int("images", len(res.File.Images)).
			Int("annotations", len(res.File.Annotations)).
			Int("dropped_images", len(res.Dropped)).
			Msg("merged datasets")
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeFlags.output, "output-path", "p", "merged.json",
		"JSON output path")
	mergeCmd.Flags().BoolVarP(&mergeFlags.reassign, "reassign-clashing-ids", "r", false,
		"Reassign clashing image ids instead of dropping the later image")
	mergeCmd.Flags().StringVar(&mergeFlags.versionString, "version-string", merge.DefaultVersion,
		"Version string for the output info section")
	mergeCmd.Flags().StringVar(&mergeFlags.description, "description", "",
		"Description for the output info section")

	rootCmd.AddCommand(mergeCmd)
}
