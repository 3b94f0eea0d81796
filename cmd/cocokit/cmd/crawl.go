package cmd

import (
	"github.com/spf13/cobra"

	"github.com/datasetlab/cocokit/pkg/coco"
	"github.com/datasetlab/cocokit/pkg/crawl"
	"github.com/datasetlab/cocokit/pkg/logging"
)

var crawlFlags struct {
	output        string
	versionString string
	absolutePaths bool
}

// crawlCmd represents the crawl command.
var crawlCmd = &cobra.Command{
	Use:   "crawl <directory>...",
	Short: "Build a dataset from image files on disk",
	Long: `Crawl walks the given directories, finds every image file, and
writes a dataset describing them. Image dimensions are read from the
file headers; files whose dimensions cannot be determined are recorded
with width and height 0.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		opts := []crawl.Option{crawl.WithVersion(crawlFlags.versionString)}
		if crawlFlags.absolutePaths {
			opts = append(opts, crawl.WithAbsolutePaths())
		}
		crawler, err := crawl.New(opts...)
		if err != nil {
			return err
		}

		f, err := crawler.Directories(ctx, args, crawlFlags.output)
		if err != nil {
			return err
		}
		if err := coco.Save(ctx, crawlFlags.output, f); err != nil {
			return err
		}
		logging.Info().
			Str("output", crawlFlags.output).
			Int("images", len(f.Images)).
			Msg("crawled directories")
		return nil
	},
}

func init() {
	crawlCmd.Flags().StringVarP(&crawlFlags.output, "output-path", "p", "coco.json",
		"JSON output path")
	crawlCmd.Flags().StringVar(&crawlFlags.versionString, "version-string", "1.0.0",
		"Version string for the output info section")
	crawlCmd.Flags().BoolVarP(&crawlFlags.absolutePaths, "absolute-paths", "a", false,
		"Record absolute image paths instead of paths relative to the output file")

	rootCmd.AddCommand(crawlCmd)
}
