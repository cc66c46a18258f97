package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"tubescout/internal/app"
	"tubescout/internal/app/model"
	"tubescout/internal/table"
	"tubescout/internal/youtube"
)

var sortOptions = []huh.Option[string]{
	huh.NewOption("API order", string(table.SortNone)),
	huh.NewOption("Views", string(table.SortViews)),
	huh.NewOption("Likes", string(table.SortLikes)),
	huh.NewOption("Newest", string(table.SortPublished)),
	huh.NewOption("Duration", string(table.SortDuration)),
	huh.NewOption("Title", string(table.SortTitle)),
}

func categoryOptions(categories []youtube.Category) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("All categories", table.AllCategories)}
	for _, c := range categories {
		opts = append(opts, huh.NewOption(c.Title, c.ID))
	}
	return opts
}

func AskTrending(p *app.TrendingParams, categories []youtube.Category) error {
	if p.Category == "" {
		p.Category = table.AllCategories
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Region").
				Description("Two letter country code").
				Placeholder("US").
				Value(&p.Region),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions(categories)...).
				Value(&p.Category),
			huh.NewInput().
				Title("Title keyword").
				Description("Leave empty to keep every video").
				Value(&p.Keyword),
			huh.NewSelect[string]().
				Title("Sort by").
				Options(sortOptions...).
				Value(&p.SortBy),
		),
	).Run()
}

func AskSearch(p *app.SearchParams) error {
	days := strconv.Itoa(p.PublishedWithinDays)
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search").
				Value(&p.Query).
				Validate(Required("Search")),
			huh.NewSelect[string]().
				Title("Order").
				Options(
					huh.NewOption("Relevance", "relevance"),
					huh.NewOption("View count", "viewCount"),
					huh.NewOption("Date", "date"),
					huh.NewOption("Rating", "rating"),
				).
				Value(&p.Order),
			huh.NewInput().
				Title("Published within days").
				Description("0 for any time").
				Value(&days).
				Validate(nonNegativeInt),
			huh.NewSelect[string]().
				Title("Sort by").
				Options(sortOptions...).
				Value(&p.SortBy),
		),
	).Run(); err != nil {
		return err
	}
	p.PublishedWithinDays, _ = strconv.Atoi(strings.TrimSpace(days))
	return nil
}

func AskChannel(p *app.ChannelParams) error {
	return huh.NewInput().
		Title("Channel ID").
		Placeholder("UC_x5XG1OV2P6uZZ5FSM9Ttw").
		Value(&p.ID).
		Validate(Required("Channel ID")).
		Run()
}

func AskNiche(p *app.NicheParams) error {
	subs := strconv.FormatUint(p.MaxSubscribers, 10)
	views := strconv.FormatUint(p.MaxTotalViews, 10)
	months := strconv.Itoa(p.MaxAgeMonths)

	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Keyword").
				Value(&p.Keyword).
				Validate(Required("Keyword")),
			huh.NewInput().
				Title("Max subscribers").
				Description("0 uses the configured default").
				Value(&subs).
				Validate(nonNegativeInt),
			huh.NewInput().
				Title("Max total views").
				Value(&views).
				Validate(nonNegativeInt),
			huh.NewInput().
				Title("Max video age (months)").
				Value(&months).
				Validate(nonNegativeInt),
		),
	).Run(); err != nil {
		return err
	}

	p.MaxSubscribers, _ = strconv.ParseUint(strings.TrimSpace(subs), 10, 64)
	p.MaxTotalViews, _ = strconv.ParseUint(strings.TrimSpace(views), 10, 64)
	p.MaxAgeMonths, _ = strconv.Atoi(strings.TrimSpace(months))
	return nil
}

func AskIdeas(p *app.IdeasParams, categories []youtube.Category) error {
	if p.Category == "" {
		p.Category = table.AllCategories
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Region").
				Placeholder("US").
				Value(&p.Region),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions(categories)...).
				Value(&p.Category),
		),
	).Run()
}

func AskUpload(p *app.UploadParams) error {
	tags := strings.Join(p.Tags, ", ")
	if p.Privacy == "" {
		p.Privacy = "private"
	}

	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Video file").
				Value(&p.File).
				Validate(Required("Video file")),
			huh.NewInput().
				Title("Title").
				Value(&p.Title).
				Validate(Required("Title")),
			huh.NewText().
				Title("Description").
				Value(&p.Description),
			huh.NewInput().
				Title("Tags").
				Description("Comma separated").
				Value(&tags),
			huh.NewSelect[string]().
				Title("Privacy").
				Options(
					huh.NewOption("Private", "private"),
					huh.NewOption("Unlisted", "unlisted"),
					huh.NewOption("Public", "public"),
				).
				Value(&p.Privacy),
		),
	).Run(); err != nil {
		return err
	}

	p.Tags = SplitTags(tags)
	return nil
}

// PickIntent lets the user choose one of intents.
func PickIntent(title string, intents []model.Intent) (model.Intent, error) {
	if len(intents) == 0 {
		return model.Intent{}, errors.New("nothing to pick from")
	}

	opts := make([]huh.Option[int], 0, len(intents))
	for i, in := range intents {
		label := in.Label
		if label == "" {
			label = in.Seed
		}
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s → %s", label, in.Target), i))
	}

	var choice int
	if err := huh.NewSelect[int]().
		Title(title).
		Options(opts...).
		Value(&choice).
		Run(); err != nil {
		return model.Intent{}, err
	}
	return intents[choice], nil
}

// SplitTags splits a comma separated list, dropping empty entries.
func SplitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func Required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func nonNegativeInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err != nil || n < 0 {
		return errors.New("enter a whole number, 0 or more")
	}
	return nil
}
