package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	yt "google.golang.org/api/youtube/v3"

	"tubescout/internal/app/model"
	"tubescout/internal/export"
	"tubescout/internal/ideas"
	"tubescout/internal/llm"
	"tubescout/internal/niche"
	"tubescout/internal/table"
	"tubescout/internal/youtube"
)

const (
	msgNoVideos     = "No videos matched your filters."
	msgNoCandidates = "No candidates found."
	msgNoWords      = "No recurring words found."
)

func (s *Service) Trending(ctx context.Context, p TrendingParams) (*model.TableResult, error) {
	p.Region = strings.ToUpper(strings.TrimSpace(p.Region))
	p.Keyword = strings.TrimSpace(p.Keyword)
	if err := checkParams(p); err != nil {
		return nil, err
	}
	sortBy, err := parseSort(p.SortBy)
	if err != nil {
		return nil, err
	}

	region := s.region(p.Region)
	videos, err := s.api.Trending(ctx, youtube.TrendingQuery{
		Region:     region,
		MaxResults: int64(orDefault(p.Max, s.cfg.YouTube.MaxResults)),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch trending videos: %w", err)
	}

	items := make([]table.Item, 0, len(videos))
	for _, v := range videos {
		items = append(items, table.TrendingItem(v))
	}

	rows := table.Build(items, nil, table.Options{
		Keyword:  p.Keyword,
		Category: p.Category,
		SortBy:   sortBy,
	})
	slog.Info("Built trending table", "region", region, "fetched", len(videos), "rows", len(rows))

	return newTableResult("trending", rows), nil
}

func (s *Service) Search(ctx context.Context, p SearchParams) (*model.TableResult, error) {
	p.Query = strings.TrimSpace(p.Query)
	p.Region = strings.ToUpper(strings.TrimSpace(p.Region))
	if err := checkParams(p); err != nil {
		return nil, err
	}
	sortBy, err := parseSort(p.SortBy)
	if err != nil {
		return nil, err
	}

	query := youtube.SearchQuery{
		Query:      p.Query,
		Order:      p.Order,
		Region:     p.Region,
		MaxResults: youtube.MaxBatch,
	}
	if p.PublishedWithinDays > 0 {
		query.PublishedAfter = s.now().AddDate(0, 0, -p.PublishedWithinDays)
	}

	results, err := s.collectSearch(ctx, query, orDefault(p.Max, s.cfg.YouTube.SearchCap))
	if err != nil {
		return nil, err
	}

	items := make([]table.Item, 0, len(results))
	for _, r := range results {
		items = append(items, table.SearchItem(r))
	}

	stats, message := s.lookupStats(ctx, items)
	rows := table.Build(items, stats, table.Options{SortBy: sortBy})
	slog.Info("Built search table", "query", p.Query, "results", len(results), "rows", len(rows))

	res := newTableResult("search", rows)
	if message != "" {
		res.Message = message
	}
	return res, nil
}

// collectSearch pages through search results until limit results are
// collected. A failure after the first page keeps what was collected.
func (s *Service) collectSearch(ctx context.Context, q youtube.SearchQuery, limit int) ([]*yt.SearchResult, error) {
	var results []*yt.SearchResult
	token := ""
	for len(results) < limit {
		page, err := s.api.SearchPage(ctx, q, token)
		if err != nil {
			if len(results) == 0 {
				return nil, fmt.Errorf("search videos: %w", err)
			}
			slog.Warn("Search page failed, keeping partial results", "error", err, "collected", len(results))
			break
		}
		for _, r := range page.Items {
			if len(results) == limit {
				break
			}
			results = append(results, r)
		}
		if page.NextPageToken == "" || len(page.Items) == 0 {
			break
		}
		token = page.NextPageToken
	}
	return results, nil
}

// lookupStats builds one statistics lookup for every item. On failure the
// rows keep zero counts and the returned message says so.
func (s *Service) lookupStats(ctx context.Context, items []table.Item) (table.StatsLookup, string) {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if id := it.ID(); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, ""
	}

	stats, err := s.api.VideoStats(ctx, ids)
	if err != nil {
		slog.Warn("Statistics lookup failed", "error", err, "resolved", len(stats))
		return stats, "Some statistics could not be loaded: " + youtube.Message(err)
	}
	return stats, ""
}

func (s *Service) Channel(ctx context.Context, p ChannelParams) (*model.ChannelResult, error) {
	p.ID = strings.TrimSpace(p.ID)
	if err := checkParams(p); err != nil {
		return nil, err
	}
	sortBy, err := parseSort(p.SortBy)
	if err != nil {
		return nil, err
	}
	if sortBy == table.SortNone {
		sortBy = table.SortPublished
	}

	ch, err := s.api.Channel(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch channel: %w", err)
	}
	if ch == nil {
		return &model.ChannelResult{Message: fmt.Sprintf("Channel %s not found.", p.ID)}, nil
	}

	res := &model.ChannelResult{Summary: summarize(ch)}

	top, err := s.topVideos(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	res.TopVideos = top
	res.Series = export.ViewsSeries(top)

	uploads, message := s.uploads(ctx, res.Summary.UploadsPlaylistID, sortBy)
	res.TotalUploads = len(uploads)
	res.Message = message

	pageSize := orDefault(p.PageSize, s.cfg.Channel.PageSize)
	res.PageCount = table.PageCount(len(uploads), pageSize)
	requested := orDefault(p.Page, 1)
	res.Page = table.ClampPage(requested, len(uploads), pageSize)
	if res.Page != requested && res.Message == "" {
		res.Message = fmt.Sprintf("Page %d is out of range, showing page %d of %d.", requested, res.Page, res.PageCount)
	}
	if page, err := table.Paginate(uploads, pageSize, res.Page); err == nil {
		res.Uploads = page
	}

	slog.Info("Built channel view", "channel", p.ID, "uploads", len(uploads), "page", res.Page, "pages", res.PageCount)
	return res, nil
}

func (s *Service) topVideos(ctx context.Context, channelID string) ([]table.VideoRecord, error) {
	page, err := s.api.SearchPage(ctx, youtube.SearchQuery{
		ChannelID:  channelID,
		Order:      "viewCount",
		MaxResults: int64(s.cfg.Channel.TopVideos),
	}, "")
	if err != nil {
		return nil, fmt.Errorf("fetch top videos: %w", err)
	}

	items := make([]table.Item, 0, len(page.Items))
	for _, r := range page.Items {
		items = append(items, table.SearchItem(r))
	}
	stats, _ := s.lookupStats(ctx, items)
	return table.Build(items, stats, table.Options{SortBy: table.SortViews}), nil
}

// uploads walks the uploads playlist up to the configured limit. Failures
// keep the items fetched so far and are reported as a message.
func (s *Service) uploads(ctx context.Context, playlistID string, sortBy table.SortField) ([]table.VideoRecord, string) {
	if playlistID == "" {
		return nil, ""
	}

	limit := s.cfg.Channel.UploadsLimit
	var items []table.Item
	var message string
	token := ""
	for len(items) < limit {
		page, err := s.api.PlaylistPage(ctx, playlistID, token, youtube.MaxBatch)
		if err != nil {
			slog.Warn("Uploads page failed", "error", err, "collected", len(items))
			message = "Uploads list is incomplete: " + youtube.Message(err)
			break
		}
		for _, it := range page.Items {
			if len(items) == limit {
				break
			}
			items = append(items, table.PlaylistEntry(it))
		}
		if page.NextPageToken == "" || len(page.Items) == 0 {
			break
		}
		token = page.NextPageToken
	}

	stats, statsMessage := s.lookupStats(ctx, items)
	if message == "" {
		message = statsMessage
	}
	return table.Build(items, stats, table.Options{SortBy: sortBy}), message
}

func summarize(ch *yt.Channel) model.ChannelSummary {
	sum := model.ChannelSummary{ChannelID: ch.Id}
	if sn := ch.Snippet; sn != nil {
		sum.Title = sn.Title
		sum.Description = sn.Description
		if sn.Thumbnails != nil {
			for _, th := range []*yt.Thumbnail{sn.Thumbnails.High, sn.Thumbnails.Medium, sn.Thumbnails.Default} {
				if th != nil && th.Url != "" {
					sum.ThumbnailURL = th.Url
					break
				}
			}
		}
	}
	if st := ch.Statistics; st != nil {
		if !st.HiddenSubscriberCount {
			sum.SubscriberCount = model.KnownCount(st.SubscriberCount)
		}
		sum.TotalViewCount = model.KnownCount(st.ViewCount)
		sum.VideoCount = model.KnownCount(st.VideoCount)
	}
	if cd := ch.ContentDetails; cd != nil && cd.RelatedPlaylists != nil {
		sum.UploadsPlaylistID = cd.RelatedPlaylists.Uploads
	}
	return sum
}

func (s *Service) Niche(ctx context.Context, p NicheParams) (*model.NicheResult, error) {
	p.Keyword = strings.TrimSpace(p.Keyword)
	if err := checkParams(p); err != nil {
		return nil, err
	}

	cfg := s.cfg.Niche
	params := niche.Params{
		Keyword:          p.Keyword,
		MaxSubscribers:   orDefault(p.MaxSubscribers, cfg.MaxSubscribers),
		MaxTotalViews:    orDefault(p.MaxTotalViews, cfg.MaxTotalViews),
		MaxAgeMonths:     orDefault(p.MaxAgeMonths, cfg.MaxAgeMonths),
		ResultCap:        orDefault(p.ResultCap, cfg.ResultCap),
		FacelessKeywords: cfg.FacelessKeywords,
	}

	candidates := s.niche.Discover(ctx, params)

	res := &model.NicheResult{Candidates: candidates}
	for _, c := range candidates {
		res.Intents = append(res.Intents, model.Intent{Target: model.ViewChannel, Seed: c.ChannelID, Label: c.Title})
	}
	res.Series = export.NewSeries(candidates,
		func(c niche.Candidate) string { return c.Title },
		func(c niche.Candidate) float64 { return c.ViewsPerSub },
	)
	if len(candidates) == 0 {
		res.Message = msgNoCandidates
	}
	return res, nil
}

func (s *Service) Ideas(ctx context.Context, p IdeasParams) (*model.IdeasResult, error) {
	p.Region = strings.ToUpper(strings.TrimSpace(p.Region))
	if err := checkParams(p); err != nil {
		return nil, err
	}

	trending, err := s.Trending(ctx, TrendingParams{Region: p.Region, Category: p.Category})
	if err != nil {
		return nil, err
	}

	res := &model.IdeasResult{
		Words: ideas.Rank(ideas.Titles(trending.Rows), orDefault(p.TopN, s.cfg.Ideas.TopWords)),
	}

	names := make(map[string]string)
	categories, err := s.api.Categories(ctx, s.region(p.Region))
	if err != nil {
		slog.Warn("Category lookup failed, showing ids", "error", err)
	}
	for _, c := range categories {
		names[c.ID] = c.Title
	}
	res.Categories = ideas.CountCategories(trending.Rows, names)

	for _, w := range res.Words {
		res.Intents = append(res.Intents, model.Intent{Target: model.ViewSearch, Seed: w.Word, Label: w.Word})
	}
	res.Series = export.NewSeries(res.Words,
		func(w ideas.WordCount) string { return w.Word },
		func(w ideas.WordCount) float64 { return float64(w.Count) },
	)
	if len(res.Words) == 0 {
		res.Message = msgNoWords
	}
	return res, nil
}

// SuggestIdeas asks the language model for video ideas built on words.
func (s *Service) SuggestIdeas(ctx context.Context, words []string, count int) ([]llm.Idea, error) {
	if s.llm == nil {
		return nil, ErrLLMDisabled
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: words are required", ErrInvalidParams)
	}
	out, err := s.llm.SuggestIdeas(ctx, words, orDefault(count, s.cfg.Ideas.SuggestCount))
	if err != nil {
		return nil, fmt.Errorf("suggest ideas: %w", err)
	}
	return out, nil
}

func (s *Service) Categories(ctx context.Context, region string) ([]youtube.Category, error) {
	region = strings.ToUpper(strings.TrimSpace(region))
	if err := checkParams(IdeasParams{Region: region}); err != nil {
		return nil, err
	}
	categories, err := s.api.Categories(ctx, s.region(region))
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return categories, nil
}

// Open runs the action an intent points at with its seed and default
// parameters.
func (s *Service) Open(ctx context.Context, intent model.Intent) (any, error) {
	switch intent.Target {
	case model.ViewSearch:
		return s.Search(ctx, SearchParams{Query: intent.Seed})
	case model.ViewChannel:
		return s.Channel(ctx, ChannelParams{ID: intent.Seed})
	case model.ViewNiche:
		return s.Niche(ctx, NicheParams{Keyword: intent.Seed})
	case model.ViewTrending:
		return s.Trending(ctx, TrendingParams{Region: intent.Seed})
	case model.ViewIdeas:
		return s.Ideas(ctx, IdeasParams{Region: intent.Seed})
	default:
		return nil, fmt.Errorf("%w: unknown view %q", ErrInvalidParams, intent.Target)
	}
}

func (s *Service) region(r string) string {
	if r != "" {
		return r
	}
	return s.cfg.YouTube.Region
}

func newTableResult(kind string, rows []table.VideoRecord) *model.TableResult {
	res := &model.TableResult{
		Kind:   kind,
		Rows:   rows,
		Series: export.ViewsSeries(rows),
	}
	if len(rows) == 0 {
		res.Message = msgNoVideos
	}
	return res
}

func parseSort(s string) (table.SortField, error) {
	f, err := table.ParseSortField(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return f, nil
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
