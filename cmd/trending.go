package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tubescout/internal/app"
	"tubescout/internal/app/model"
	"tubescout/internal/ui"
)

var (
	trendingParams app.TrendingParams
	trendingOut    outputFlags
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Show the most popular videos in a region",
	Long: `Fetch the trending chart for a region, optionally narrowed to a category
and a title keyword, and print it as a sortable table.`,
	RunE: runTrending,
}

func init() {
	f := trendingCmd.Flags()
	f.StringVarP(&trendingParams.Region, "region", "r", "", "Two letter region code (default from config)")
	f.StringVarP(&trendingParams.Category, "category", "c", "", "Category ID, or \"all\"")
	f.StringVarP(&trendingParams.Keyword, "keyword", "k", "", "Keep titles containing this keyword")
	f.StringVarP(&trendingParams.SortBy, "sort", "s", "", "Sort by views, likes, published, duration or title")
	f.IntVarP(&trendingParams.Max, "max", "n", 0, "Videos to fetch, up to 50")
	trendingOut.register(trendingCmd)
	rootCmd.AddCommand(trendingCmd)
}

func runTrending(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, cleanup, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if trendingOut.interactive {
		categories, err := svc.Categories(ctx, trendingParams.Region)
		if err != nil {
			fmt.Println(ui.WarnStyle.Render(fmt.Sprintf("Categories unavailable: %v", err)))
		}
		if err := ui.AskTrending(&trendingParams, categories); err != nil {
			return err
		}
	}

	res, err := fetch("Fetching trending videos", func() (*model.TableResult, error) {
		return svc.Trending(ctx, trendingParams)
	})
	if err != nil {
		return err
	}
	return renderTable(ctx, svc, &trendingOut, "Trending", res)
}
