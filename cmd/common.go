package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tubescout/internal/app"
	"tubescout/internal/app/model"
	"tubescout/internal/export"
	"tubescout/internal/table"
	"tubescout/internal/ui"
	"tubescout/pkg/config"
)

// outputFlags are shared by every command that prints a table.
type outputFlags struct {
	export      string
	chart       bool
	interactive bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.export, "export", "e", "", "Export the table as csv, json or rss")
	cmd.Flags().BoolVar(&o.chart, "chart", false, "Draw a bar chart under the table")
	cmd.Flags().BoolVarP(&o.interactive, "interactive", "i", false, "Fill parameters in a form")
}

func (o *outputFlags) format() (export.Format, bool, error) {
	if o.export == "" {
		return "", false, nil
	}
	f, err := export.ParseFormat(o.export)
	if err != nil {
		return "", false, err
	}
	return f, true, nil
}

func loadService(ctx context.Context) (*app.Service, func(), error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	result, err := app.BuildService(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := result.Close(); err != nil {
			slog.Warn("Failed to close clients", "error", err)
		}
	}
	return result.Service, cleanup, nil
}

// fetch runs fn under a spinner.
func fetch[T any](title string, fn func() (T, error)) (T, error) {
	var out T
	err := ui.RunWithSpinner(title, func() error {
		var err error
		out, err = fn()
		return err
	})
	return out, err
}

func printMessage(msg string) {
	if msg != "" {
		fmt.Println(ui.WarnStyle.Render(msg))
	}
}

func printTable(title string, records []table.Record) {
	if len(records) == 0 {
		return
	}
	fmt.Println(ui.TitleStyle.Render(title))
	fmt.Println(ui.Table(records))
}

func printChart(o *outputFlags, title string, s export.Series) {
	if !o.chart {
		return
	}
	fmt.Println(ui.BarChart(title, s.Top(15)))
}

func exportVideos(ctx context.Context, svc *app.Service, o *outputFlags, kind string, rows []table.VideoRecord) error {
	f, ok, err := o.format()
	if err != nil || !ok {
		return err
	}
	location, err := svc.ExportVideos(ctx, kind, f, rows)
	if err != nil {
		return err
	}
	fmt.Println(ui.SuccessStyle.Render("✓ Exported to " + location))
	return nil
}

func exportRecords(ctx context.Context, svc *app.Service, o *outputFlags, kind string, records []table.Record) error {
	f, ok, err := o.format()
	if err != nil || !ok {
		return err
	}
	location, err := svc.ExportRecords(ctx, kind, f, records)
	if err != nil {
		return err
	}
	fmt.Println(ui.SuccessStyle.Render("✓ Exported to " + location))
	return nil
}

func renderTable(ctx context.Context, svc *app.Service, o *outputFlags, title string, res *model.TableResult) error {
	printTable(title, res.Records())
	printMessage(res.Message)
	printChart(o, "Views", res.Series)
	return exportVideos(ctx, svc, o, res.Kind, res.Rows)
}

// follow lets the user pick one of intents and renders the view it opens.
func follow(ctx context.Context, svc *app.Service, o *outputFlags, intents []model.Intent) error {
	if len(intents) == 0 {
		return nil
	}
	intent, err := ui.PickIntent("Open", intents)
	if err != nil {
		return err
	}

	res, err := fetch("Loading "+string(intent.Target), func() (any, error) {
		return svc.Open(ctx, intent)
	})
	if err != nil {
		return err
	}

	switch r := res.(type) {
	case *model.TableResult:
		return renderTable(ctx, svc, o, "Results for "+intent.Seed, r)
	case *model.ChannelResult:
		return renderChannel(ctx, svc, o, r)
	case *model.NicheResult:
		return renderNiche(ctx, svc, o, r)
	case *model.IdeasResult:
		return renderIdeas(ctx, svc, o, r)
	default:
		return fmt.Errorf("unexpected result %T", res)
	}
}
