package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"tubescout/internal/app"
	"tubescout/internal/ui"
)

var (
	uploadParams      app.UploadParams
	uploadTags        string
	uploadInteractive bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a video through the upload service",
	Long: `Send a local video file to the upload service's signed storage URL and
publish it to an authorized channel with the given metadata.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpload,
}

func init() {
	f := uploadCmd.Flags()
	f.StringVarP(&uploadParams.Title, "title", "t", "", "Video title")
	f.StringVarP(&uploadParams.Description, "description", "d", "", "Video description")
	f.StringVar(&uploadParams.ChannelID, "channel", "", "Authorized channel to publish to")
	f.StringVar(&uploadParams.Privacy, "privacy", "", "private, unlisted or public (default from config)")
	f.StringVar(&uploadParams.CategoryID, "category", "", "Category ID")
	f.StringVar(&uploadTags, "tags", "", "Comma separated tags")
	f.BoolVarP(&uploadInteractive, "interactive", "i", false, "Fill metadata in a form")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if len(args) > 0 {
		uploadParams.File = args[0]
	}
	uploadParams.Tags = ui.SplitTags(uploadTags)

	svc, cleanup, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if uploadInteractive || uploadParams.File == "" || uploadParams.Title == "" {
		if err := ui.AskUpload(&uploadParams); err != nil {
			return err
		}
	}

	reply, err := fetch("Uploading "+uploadParams.File, func() (json.RawMessage, error) {
		return svc.UploadVideo(ctx, uploadParams)
	})
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, reply, "", "  "); err != nil {
		fmt.Println(string(reply))
		return nil
	}
	fmt.Println(ui.InfoStyle.Render(pretty.String()))
	return nil
}
