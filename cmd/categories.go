package cmd

import (
	"github.com/spf13/cobra"

	"tubescout/internal/table"
	"tubescout/internal/youtube"
)

var categoriesRegion string

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List assignable video categories for a region",
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().StringVarP(&categoriesRegion, "region", "r", "", "Two letter region code")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, cleanup, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	categories, err := fetch("Fetching categories", func() ([]youtube.Category, error) {
		return svc.Categories(ctx, categoriesRegion)
	})
	if err != nil {
		return err
	}

	records := make([]table.Record, 0, len(categories))
	for _, c := range categories {
		records = append(records, table.Record{
			{Name: "ID", Value: c.ID},
			{Name: "Category", Value: c.Title},
		})
	}
	printTable("Categories", records)
	return nil
}
