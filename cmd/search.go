package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"tubescout/internal/app"
	"tubescout/internal/app/model"
	"tubescout/internal/ui"
)

var (
	searchParams app.SearchParams
	searchOut    outputFlags
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search videos and join their statistics",
	Long: `Search videos by keyword, walking result pages up to the configured cap,
then look up views, likes and duration for every hit in batches.`,
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringVarP(&searchParams.Order, "order", "o", "relevance", "Order: relevance, date, viewCount or rating")
	f.StringVarP(&searchParams.Region, "region", "r", "", "Two letter region code")
	f.IntVarP(&searchParams.PublishedWithinDays, "days", "d", 0, "Only videos published in the last N days")
	f.IntVarP(&searchParams.Max, "max", "n", 0, "Maximum results (default from config)")
	f.StringVarP(&searchParams.SortBy, "sort", "s", "", "Sort by views, likes, published, duration or title")
	searchOut.register(searchCmd)
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	searchParams.Query = strings.Join(args, " ")

	svc, cleanup, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if searchOut.interactive {
		if err := ui.AskSearch(&searchParams); err != nil {
			return err
		}
	}

	res, err := fetch("Searching", func() (*model.TableResult, error) {
		return svc.Search(ctx, searchParams)
	})
	if err != nil {
		return err
	}
	return renderTable(ctx, svc, &searchOut, "Results for "+searchParams.Query, res)
}
