package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tubescout/internal/app"
	"tubescout/internal/app/model"
	"tubescout/internal/ideas"
	"tubescout/internal/llm"
	"tubescout/internal/table"
	"tubescout/internal/ui"
)

var (
	ideasParams  app.IdeasParams
	ideasOut     outputFlags
	ideasPick    bool
	ideasSuggest int
)

var ideasCmd = &cobra.Command{
	Use:   "ideas",
	Short: "Rank recurring words in trending titles",
	Long: `Count words of four or more letters across trending titles, show the
category mix, and optionally ask the language model for video ideas built on
the top words.`,
	RunE: runIdeas,
}

func init() {
	f := ideasCmd.Flags()
	f.StringVarP(&ideasParams.Region, "region", "r", "", "Two letter region code")
	f.StringVarP(&ideasParams.Category, "category", "c", "", "Category ID, or \"all\"")
	f.IntVarP(&ideasParams.TopN, "top", "n", 0, "Words to show (default from config)")
	f.BoolVar(&ideasPick, "pick", false, "Pick a word and search for it")
	f.IntVar(&ideasSuggest, "suggest", 0, "Ask the language model for N video ideas")
	ideasOut.register(ideasCmd)
	rootCmd.AddCommand(ideasCmd)
}

func runIdeas(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, cleanup, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if ideasOut.interactive {
		categories, err := svc.Categories(ctx, ideasParams.Region)
		if err != nil {
			fmt.Println(ui.WarnStyle.Render(fmt.Sprintf("Categories unavailable: %v", err)))
		}
		if err := ui.AskIdeas(&ideasParams, categories); err != nil {
			return err
		}
	}

	res, err := fetch("Ranking title words", func() (*model.IdeasResult, error) {
		return svc.Ideas(ctx, ideasParams)
	})
	if err != nil {
		return err
	}
	if err := renderIdeas(ctx, svc, &ideasOut, res); err != nil {
		return err
	}

	if ideasSuggest > 0 && len(res.Words) > 0 {
		if err := suggest(ctx, svc, res.Words, ideasSuggest); err != nil {
			return err
		}
	}

	if ideasPick {
		return follow(ctx, svc, &ideasOut, res.Intents)
	}
	return nil
}

func renderIdeas(ctx context.Context, svc *app.Service, o *outputFlags, res *model.IdeasResult) error {
	printTable("Recurring words", res.Records())
	printTable("Categories", res.CategoryRecords())
	printMessage(res.Message)
	printChart(o, "Word frequency", res.Series)
	return exportRecords(ctx, svc, o, "ideas", res.Records())
}

func suggest(ctx context.Context, svc *app.Service, words []ideas.WordCount, count int) error {
	list := make([]string, 0, len(words))
	for _, w := range words {
		list = append(list, w.Word)
	}

	out, err := fetch("Asking for ideas", func() ([]llm.Idea, error) {
		return svc.SuggestIdeas(ctx, list, count)
	})
	if err != nil {
		return err
	}

	records := make([]table.Record, 0, len(out))
	for _, idea := range out {
		records = append(records, table.Record{
			{Name: "Title", Value: idea.Title},
			{Name: "Hook", Value: idea.Hook},
			{Name: "Keywords", Value: strings.Join(idea.Keywords, ", ")},
		})
	}
	printTable("Video ideas", records)
	return nil
}
