package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tubescout/internal/app"
	"tubescout/internal/app/model"
	"tubescout/internal/table"
	"tubescout/internal/ui"
)

var (
	channelParams app.ChannelParams
	channelOut    outputFlags
)

var channelCmd = &cobra.Command{
	Use:   "channel [channel-id]",
	Short: "Show a channel's summary, top videos and uploads",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runChannel,
}

func init() {
	f := channelCmd.Flags()
	f.IntVarP(&channelParams.Page, "page", "p", 1, "Uploads page to show")
	f.IntVar(&channelParams.PageSize, "page-size", 0, "Uploads per page (default from config)")
	f.StringVarP(&channelParams.SortBy, "sort", "s", "", "Sort uploads by views, likes, published, duration or title")
	channelOut.register(channelCmd)
	rootCmd.AddCommand(channelCmd)
}

func runChannel(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if len(args) > 0 {
		channelParams.ID = args[0]
	}

	svc, cleanup, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if channelOut.interactive || channelParams.ID == "" {
		if err := ui.AskChannel(&channelParams); err != nil {
			return err
		}
	}

	res, err := fetch("Fetching channel", func() (*model.ChannelResult, error) {
		return svc.Channel(ctx, channelParams)
	})
	if err != nil {
		return err
	}
	return renderChannel(ctx, svc, &channelOut, res)
}

func renderChannel(ctx context.Context, svc *app.Service, o *outputFlags, res *model.ChannelResult) error {
	if res.Summary.ChannelID == "" {
		printMessage(res.Message)
		return nil
	}

	printTable("Channel", []table.Record{res.Summary.Record()})
	printTable("Top videos", table.Records(res.TopVideos))
	printChart(o, "Top videos by views", res.Series)
	printTable(fmt.Sprintf("Uploads (page %d of %d, %d total)", res.Page, res.PageCount, res.TotalUploads), table.Records(res.Uploads))
	printMessage(res.Message)

	return exportVideos(ctx, svc, o, "channel-uploads", res.Uploads)
}
