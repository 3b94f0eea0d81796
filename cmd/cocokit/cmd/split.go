package cmd

import (
	"github.com/spf13/cobra"

	"github.com/datasetlab/cocokit/pkg/coco"
	"github.com/datasetlab/cocokit/pkg/logging"
	"github.com/datasetlab/cocokit/pkg/split"
)

var splitFlags struct {
	output        string
	count         int
	offset        int
	shuffle       bool
	seed          int64
	blacklist     []string
	annotatedOnly bool
	absolutePaths bool
}

// splitCmd represents the split command.
var splitCmd = &cobra.Command{
	Use:   "split <dataset.json>",
	Short: "Extract a subset of a dataset",
	Long: `Split selects images from a dataset and writes them, with their
annotations, to a new dataset file. Selection is by ascending image id
unless shuffling is requested; a fixed seed makes a shuffled split
reproducible.

Blacklist files exclude images already used by other splits:

  cocokit split dataset.json -p val.json -c 10000 --shuffle-seed 7
  cocokit split dataset.json -p test.json -c 20000 -b val.json
  cocokit split dataset.json -p train.json -b test.json -b val.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		f, err := coco.Load(ctx, args[0])
		if err != nil {
			return err
		}

		var opts []split.Option
		if cmd.Flags().Changed("count") {
			opts = append(opts, split.WithCount(splitFlags.count))
		}
		if splitFlags.offset > 0 {
			opts = append(opts, split.WithOffset(splitFlags.offset))
		}
		if cmd.Flags().Changed("shuffle-seed") {
			opts = append(opts, split.WithShuffleSeed(splitFlags.seed))
		} else if splitFlags.shuffle {
			opts = append(opts, split.WithShuffle())
		}
		if splitFlags.annotatedOnly {
			opts = append(opts, split.WithAnnotatedOnly())
		}
		if splitFlags.absolutePaths {
			opts = append(opts, split.WithAbsolutePaths())
		}
		if len(splitFlags.blacklist) > 0 {
			blacklisted, err := coco.LoadAll(ctx, splitFlags.blacklist)
			if err != nil {
				return err
			}
			opts = append(opts, split.WithBlacklistIDs(split.BlacklistIDs(blacklisted...)))
		}

		splitter, err := split.New(opts...)
		if err != nil {
			return err
		}
		out, err := splitter.Dataset(ctx, f, args[0], splitFlags.output)
		if err != nil {
			return err
		}

		if err := coco.Save(ctx, splitFlags.output, out); err != nil {
			return err
		}
		logging.Info().
			Str("output", splitFlags.output).
			Int("images", len(out.Images)).
			Int("annotations", len(out.Annotations)).
			Msg("wrote split")
		return nil
	},
}

func init() {
	splitCmd.Flags().StringVarP(&splitFlags.output, "output-path", "p", "split.json",
		"JSON output path")
	splitCmd.Flags().IntVarP(&splitFlags.count, "count", "c", 0,
		"Number of images in the split (default: all remaining)")
	splitCmd.Flags().IntVar(&splitFlags.offset, "offset", 0,
		"Index to start at, in ascending image id order (conflicts with shuffling)")
	splitCmd.Flags().BoolVar(&splitFlags.shuffle, "shuffle", false,
		"Shuffle images before selecting")
	splitCmd.Flags().Int64Var(&splitFlags.seed, "shuffle-seed", 0,
		"Shuffle with a fixed seed for a reproducible split")
	splitCmd.Flags().StringArrayVarP(&splitFlags.blacklist, "blacklist-file", "b", nil,
		"Dataset files whose images are excluded (repeatable)")
	splitCmd.Flags().BoolVar(&splitFlags.annotatedOnly, "annotated-only", false,
		"Include only images that have at least one annotation")
	splitCmd.Flags().BoolVarP(&splitFlags.absolutePaths, "absolute-paths", "a", false,
		"Record absolute image paths instead of paths relative to the output file")

	rootCmd.AddCommand(splitCmd)
}
