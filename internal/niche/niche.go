// Package niche discovers small channels behind popular recent videos for a
// keyword.
package niche

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	yt "google.golang.org/api/youtube/v3"

	"tubescout/internal/table"
	"tubescout/internal/youtube"
)

const (
	pageSize       = 50
	daysPerMonth   = 30
	channelURLBase = "https://www.youtube.com/channel/"
)

// DefaultFacelessKeywords mark channels whose content likely has no
// on-camera host.
var DefaultFacelessKeywords = []string{
	"compilation", "animation", "gameplay", "tutorial",
	"music", "sound", "relax", "asmr", "lofi",
}

// Source is the subset of the API client used by discovery.
type Source interface {
	SearchPage(ctx context.Context, q youtube.SearchQuery, pageToken string) (*youtube.SearchPage, error)
	Channels(ctx context.Context, ids []string) (map[string]*yt.Channel, error)
}

type Params struct {
	Keyword        string
	MaxSubscribers uint64
	MaxTotalViews  uint64
	MaxAgeMonths   int
	ResultCap      int
	// FacelessKeywords overrides DefaultFacelessKeywords when set.
	FacelessKeywords []string
}

type Candidate struct {
	ChannelID        string  `json:"channel_id"`
	Title            string  `json:"title"`
	SubscriberCount  uint64  `json:"subscriber_count"`
	TotalViewCount   uint64  `json:"total_view_count"`
	ViewsPerSub      float64 `json:"views_per_subscriber"`
	IsFacelessLikely bool    `json:"faceless_likely"`
	Link             string  `json:"link"`
}

// Record returns the candidate as ordered named fields.
func (c Candidate) Record() table.Record {
	faceless := "no"
	if c.IsFacelessLikely {
		faceless = "yes"
	}
	return table.Record{
		{Name: "Channel", Value: c.Title},
		{Name: "Channel ID", Value: c.ChannelID},
		{Name: "Subscribers", Value: fmt.Sprintf("%d", c.SubscriberCount)},
		{Name: "Total Views", Value: fmt.Sprintf("%d", c.TotalViewCount)},
		{Name: "Views/Subscriber", Value: fmt.Sprintf("%.2f", c.ViewsPerSub)},
		{Name: "Faceless", Value: faceless},
		{Name: "Link", Value: c.Link},
	}
}

type Discoverer struct {
	source Source
	now    func() time.Time
}

func NewDiscoverer(source Source) *Discoverer {
	return &Discoverer{source: source, now: time.Now}
}

// Discover searches for the most viewed videos on keyword published within
// MaxAgeMonths and returns the distinct channels behind them that stay under
// both thresholds, smallest first. Each channel is evaluated once, using the
// first result it appears in. A failed or empty page ends pagination with
// what was collected so far.
func (d *Discoverer) Discover(ctx context.Context, p Params) []Candidate {
	items := d.collect(ctx, p)

	var order []string
	seen := make(map[string]bool)
	for _, item := range items {
		id := item.ChannelID()
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		order = append(order, id)
	}

	channels, err := d.source.Channels(ctx, order)
	if err != nil {
		slog.Warn("Channel lookup failed, continuing with partial results", "error", err, "resolved", len(channels))
	}

	keywords := p.FacelessKeywords
	if len(keywords) == 0 {
		keywords = DefaultFacelessKeywords
	}

	candidates := make([]Candidate, 0, len(order))
	for _, id := range order {
		ch := channels[id]
		if ch == nil || ch.Statistics == nil {
			continue
		}
		subs := ch.Statistics.SubscriberCount
		views := ch.Statistics.ViewCount
		if subs > p.MaxSubscribers || views > p.MaxTotalViews {
			continue
		}

		var title, description string
		if ch.Snippet != nil {
			title = ch.Snippet.Title
			description = ch.Snippet.Description
		}

		candidates = append(candidates, Candidate{
			ChannelID:        id,
			Title:            title,
			SubscriberCount:  subs,
			TotalViewCount:   views,
			ViewsPerSub:      Ratio(views, subs),
			IsFacelessLikely: FacelessLikely(title+" "+description, keywords),
			Link:             channelURLBase + id,
		})
	}

	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		return cmp.Compare(a.SubscriberCount, b.SubscriberCount)
	})

	slog.Info("Niche discovery finished",
		"keyword", p.Keyword,
		"results", len(items),
		"channels", len(order),
		"candidates", len(candidates),
	)
	return candidates
}

func (d *Discoverer) collect(ctx context.Context, p Params) []table.Item {
	query := youtube.SearchQuery{
		Query:          p.Keyword,
		Order:          "viewCount",
		PublishedAfter: PublishedAfter(d.now(), p.MaxAgeMonths),
		MaxResults:     pageSize,
	}

	var items []table.Item
	token := ""
	for len(items) < p.ResultCap {
		page, err := d.source.SearchPage(ctx, query, token)
		if err != nil {
			slog.Warn("Search page failed, stopping pagination", "error", err, "collected", len(items))
			break
		}
		if len(page.Items) == 0 {
			break
		}
		for _, r := range page.Items {
			if len(items) == p.ResultCap {
				break
			}
			items = append(items, table.SearchItem(r))
		}
		if page.NextPageToken == "" {
			break
		}
		token = page.NextPageToken
	}
	return items
}

// PublishedAfter returns now minus 30 days per month.
func PublishedAfter(now time.Time, months int) time.Time {
	return now.AddDate(0, 0, -daysPerMonth*months)
}

// Ratio returns views/subs, or 0 when subs is 0.
func Ratio(views, subs uint64) float64 {
	if subs == 0 {
		return 0
	}
	return float64(views) / float64(subs)
}

// FacelessLikely reports whether text contains any keyword after case folding.
func FacelessLikely(text string, keywords []string) bool {
	folder := cases.Fold()
	folded := folder.String(text)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(folded, folder.String(kw)) {
			return true
		}
	}
	return false
}
