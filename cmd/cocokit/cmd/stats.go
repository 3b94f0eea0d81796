package cmd

import (
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/datasetlab/cocokit/internal/cmd/globals"
	"github.com/datasetlab/cocokit/internal/cmd/output"
	"github.com/datasetlab/cocokit/pkg/coco"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats <dataset.json>",
	Short: "Show record counts for a dataset",
	Long: `Stats reports how many images, annotations, categories, and
licenses a dataset contains, with annotations and categories broken
down by type.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		f, err := coco.Load(ctx, args[0])
		if err != nil {
			return err
		}
		stats := coco.Summarize(f)

		flags, err := globals.Parse(cmd)
		if err != nil {
			return err
		}
		if _, err := output.ParseFormat(flags.Output); err != nil {
			return err
		}
		format := output.DetectFormat(flags.Output)
		formatter := output.NewFormatter(format)

		if format == output.FormatTable {
			return formatter.Format(os.Stdout, statsTable(stats))
		}
		return formatter.Format(os.Stdout, stats)
	},
}

// statsTable lays the summary out as count rows, annotation and
// category kinds sorted for stable output.
func statsTable(stats coco.Stats) output.Data {
	data := output.Data{
		Headers:         []string{"Record", "Count"},
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignRight},
	}
	addRow := func(name string, count int64) {
		data.Rows = append(data.Rows, []string{name, formatCount(count)})
	}

	addRow("Images", stats.Images)
	addRow("Annotations", stats.Annotations)
	annKinds := make([]string, 0, len(stats.AnnotationsByKind))
	for kind := range stats.AnnotationsByKind {
		annKinds = append(annKinds, string(kind))
	}
	sort.Strings(annKinds)
	for _, kind := range annKinds {
		addRow("  "+kind, stats.AnnotationsByKind[coco.AnnotationKind(kind)])
	}

	addRow("Categories", stats.Categories)
	catKinds := make([]string, 0, len(stats.CategoriesByKind))
	for kind := range stats.CategoriesByKind {
		catKinds = append(catKinds, string(kind))
	}
	sort.Strings(catKinds)
	for _, kind := range catKinds {
		addRow("  "+kind, stats.CategoriesByKind[coco.CategoryKind(kind)])
	}

	addRow("Licenses", stats.Licenses)
	return data
}

func formatCount(n int64) string {
	return strconv.FormatInt(n, 10)
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
