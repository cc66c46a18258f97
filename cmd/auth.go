package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2/google"

	"tubescout/internal/table"
	"tubescout/internal/ui"
	"tubescout/internal/uploadsvc"
	"tubescout/pkg/config"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Check credentials and authorize upload channels",
	Long:  `Check which services are configured and connect channels to the upload service.`,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check configuration status for all services",
	RunE:  runAuthStatus,
}

var authChannelCmd = &cobra.Command{
	Use:   "channel [hint]",
	Short: "Authorize a channel with the upload service",
	Long:  `Open the upload service's consent page in a browser, optionally hinting which channel to connect.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAuthChannel,
}

var authChannelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List channels authorized with the upload service",
	RunE:  runAuthChannels,
}

func init() {
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authChannelCmd)
	authCmd.AddCommand(authChannelsCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	fmt.Println(ui.InfoStyle.Render("\nService Configuration Status:\n"))

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Println(ui.ErrorStyle.Render(fmt.Sprintf("✗ Config: %v", err)))
		fmt.Println(ui.InfoStyle.Render("  Run: tubescout setup"))
		fmt.Println()
		return nil
	}

	fmt.Println(ui.SuccessStyle.Render("✓ YouTube Data API: key configured"))

	if cfg.GroqAPIKey != "" {
		fmt.Println(ui.SuccessStyle.Render("✓ Groq: API key configured"))
	} else {
		fmt.Println(ui.InfoStyle.Render("○ Groq: not configured, idea suggestions disabled (optional)"))
	}

	if cfg.GCSBucket != "" {
		if hasDefaultCredentials(ctx) {
			fmt.Println(ui.SuccessStyle.Render("✓ Cloud Storage: exporting to gs://" + cfg.GCSBucket))
		} else {
			fmt.Println(ui.ErrorStyle.Render("✗ Cloud Storage: GCS_BUCKET set, but no application default credentials"))
			fmt.Println(ui.InfoStyle.Render("  Run: gcloud auth application-default login"))
		}
	} else {
		fmt.Println(ui.InfoStyle.Render("○ Cloud Storage: not configured, exporting to " + cfg.Export.Dir))
	}

	if cfg.Upload.BaseURL != "" {
		if _, err := uploadsvc.NewClient(ctx, cfg.Upload.BaseURL, cfg.UploadServiceToken).Channels(ctx); err != nil {
			fmt.Println(ui.ErrorStyle.Render(fmt.Sprintf("✗ Upload service: %v", err)))
		} else {
			fmt.Println(ui.SuccessStyle.Render("✓ Upload service: reachable at " + cfg.Upload.BaseURL))
		}
	} else {
		fmt.Println(ui.InfoStyle.Render("○ Upload service: not configured (optional)"))
	}

	fmt.Println()
	return nil
}

func hasDefaultCredentials(ctx context.Context) bool {
	_, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	return err == nil
}

func runAuthChannel(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, cleanup, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	var hint string
	if len(args) > 0 {
		hint = args[0]
	}

	authURL, err := svc.Authorize(ctx, hint)
	if err != nil {
		return err
	}

	fmt.Println(ui.InfoStyle.Render("\nOpening browser for channel authorization..."))
	fmt.Println(ui.InfoStyle.Render("If browser doesn't open, visit:\n" + authURL))
	if err := browser.OpenURL(authURL); err != nil {
		fmt.Fprintln(os.Stderr, ui.WarnStyle.Render(fmt.Sprintf("Could not open browser: %v", err)))
	}
	fmt.Println(ui.InfoStyle.Render("\nRun `tubescout auth channels` once consent is complete."))
	return nil
}

func runAuthChannels(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, cleanup, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	channels, err := fetch("Fetching authorized channels", func() ([]uploadsvc.Channel, error) {
		return svc.UploadChannels(ctx)
	})
	if err != nil {
		return err
	}
	if len(channels) == 0 {
		printMessage("No channels authorized yet. Run: tubescout auth channel")
		return nil
	}

	records := make([]table.Record, 0, len(channels))
	for _, ch := range channels {
		records = append(records, table.Record{
			{Name: "Channel ID", Value: ch.ID},
			{Name: "Title", Value: ch.Title},
		})
	}
	printTable("Authorized channels", records)
	return nil
}
