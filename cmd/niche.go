package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tubescout/internal/app"
	"tubescout/internal/app/model"
	"tubescout/internal/ui"
)

var (
	nicheParams app.NicheParams
	nicheOut    outputFlags
	nichePick   bool
)

var nicheCmd = &cobra.Command{
	Use:   "niche [keyword]",
	Short: "Find small channels with outsized views",
	Long: `Search recent videos for a keyword and keep channels under the subscriber
and total view limits, ranked by views per subscriber.`,
	RunE: runNiche,
}

func init() {
	f := nicheCmd.Flags()
	f.Uint64Var(&nicheParams.MaxSubscribers, "max-subs", 0, "Subscriber limit (default from config)")
	f.Uint64Var(&nicheParams.MaxTotalViews, "max-views", 0, "Total channel view limit (default from config)")
	f.IntVar(&nicheParams.MaxAgeMonths, "months", 0, "Only videos published in the last N months")
	f.IntVar(&nicheParams.ResultCap, "cap", 0, "Search results to scan")
	f.BoolVar(&nichePick, "pick", false, "Pick a candidate and open its channel")
	nicheOut.register(nicheCmd)
	rootCmd.AddCommand(nicheCmd)
}

func runNiche(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	nicheParams.Keyword = strings.Join(args, " ")

	svc, cleanup, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if nicheOut.interactive || nicheParams.Keyword == "" {
		if err := ui.AskNiche(&nicheParams); err != nil {
			return err
		}
	}

	res, err := fetch("Scanning niche", func() (*model.NicheResult, error) {
		return svc.Niche(ctx, nicheParams)
	})
	if err != nil {
		return err
	}
	if err := renderNiche(ctx, svc, &nicheOut, res); err != nil {
		return err
	}

	if nichePick {
		return follow(ctx, svc, &nicheOut, res.Intents)
	}
	return nil
}

func renderNiche(ctx context.Context, svc *app.Service, o *outputFlags, res *model.NicheResult) error {
	printTable("Niche candidates", res.Records())
	printMessage(res.Message)
	printChart(o, "Views per subscriber", res.Series)
	return exportRecords(ctx, svc, o, "niche", res.Records())
}
