// Package youtube wraps the video platform's Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"tubescout/internal/metrics"
	"tubescout/internal/table"
)

const (
	// MaxBatch is the most ids or results the API accepts per call.
	MaxBatch       = 50
	defaultTimeout = 30 * time.Second
)

var videoParts = []string{"snippet", "statistics", "contentDetails"}

type Config struct {
	APIKey string
	// Endpoint overrides the API base URL, mostly for tests.
	Endpoint   string
	HTTPClient *http.Client
}

type Client struct {
	svc *yt.Service
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: defaultTimeout}
	}
	next := base.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	httpClient := &http.Client{
		Timeout: base.Timeout,
		Transport: promhttp.InstrumentRoundTripperCounter(metrics.APIRequests, &keyTransport{
			key:  cfg.APIKey,
			next: next,
		}),
	}

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &Client{svc: svc}, nil
}

type keyTransport struct {
	key  string
	next http.RoundTripper
}

func (t *keyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.key == "" {
		return t.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	q := r.URL.Query()
	q.Set("key", t.key)
	r.URL.RawQuery = q.Encode()
	return t.next.RoundTrip(r)
}

type TrendingQuery struct {
	Region     string
	CategoryID string
	MaxResults int64
}

func (c *Client) Trending(ctx context.Context, q TrendingQuery) ([]*yt.Video, error) {
	call := c.svc.Videos.List(videoParts).
		Chart("mostPopular").
		MaxResults(clampResults(q.MaxResults))
	if q.Region != "" {
		call = call.RegionCode(q.Region)
	}
	if q.CategoryID != "" {
		call = call.VideoCategoryId(q.CategoryID)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list trending videos: %w", err)
	}

	slog.Debug("Fetched trending videos", "region", q.Region, "count", len(resp.Items))
	return resp.Items, nil
}

type SearchQuery struct {
	Query          string
	ChannelID      string
	Order          string
	Region         string
	PublishedAfter time.Time
	MaxResults     int64
}

type SearchPage struct {
	Items         []*yt.SearchResult
	NextPageToken string
}

func (c *Client) SearchPage(ctx context.Context, q SearchQuery, pageToken string) (*SearchPage, error) {
	call := c.svc.Search.List([]string{"snippet"}).
		Type("video").
		MaxResults(clampResults(q.MaxResults))
	if q.Query != "" {
		call = call.Q(q.Query)
	}
	if q.ChannelID != "" {
		call = call.ChannelId(q.ChannelID)
	}
	if q.Order != "" {
		call = call.Order(q.Order)
	}
	if q.Region != "" {
		call = call.RegionCode(q.Region)
	}
	if !q.PublishedAfter.IsZero() {
		call = call.PublishedAfter(q.PublishedAfter.UTC().Format(time.RFC3339))
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}

	return &SearchPage{Items: resp.Items, NextPageToken: resp.NextPageToken}, nil
}

// VideoStats looks up statistics and content details for ids, at most
// MaxBatch ids per call.
func (c *Client) VideoStats(ctx context.Context, ids []string) (table.StatsLookup, error) {
	lookup := make(table.StatsLookup, len(ids))
	for _, batch := range Batches(ids, MaxBatch) {
		resp, err := c.svc.Videos.List(videoParts).
			Id(batch...).
			MaxResults(MaxBatch).
			Context(ctx).
			Do()
		if err != nil {
			return lookup, fmt.Errorf("list video statistics: %w", err)
		}
		for _, v := range resp.Items {
			lookup[v.Id] = v
		}
	}
	return lookup, nil
}

// Channel returns the channel with id, or nil when it does not exist.
func (c *Client) Channel(ctx context.Context, id string) (*yt.Channel, error) {
	channels, err := c.Channels(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	return channels[id], nil
}

func (c *Client) Channels(ctx context.Context, ids []string) (map[string]*yt.Channel, error) {
	out := make(map[string]*yt.Channel, len(ids))
	for _, batch := range Batches(ids, MaxBatch) {
		resp, err := c.svc.Channels.List([]string{"snippet", "statistics", "contentDetails"}).
			Id(batch...).
			MaxResults(MaxBatch).
			Context(ctx).
			Do()
		if err != nil {
			return out, fmt.Errorf("list channels: %w", err)
		}
		for _, ch := range resp.Items {
			out[ch.Id] = ch
		}
	}
	return out, nil
}

type PlaylistPage struct {
	Items         []*yt.PlaylistItem
	NextPageToken string
}

func (c *Client) PlaylistPage(ctx context.Context, playlistID, pageToken string, max int64) (*PlaylistPage, error) {
	call := c.svc.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(clampResults(max))
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list playlist items: %w", err)
	}

	return &PlaylistPage{Items: resp.Items, NextPageToken: resp.NextPageToken}, nil
}

type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (c *Client) Categories(ctx context.Context, region string) ([]Category, error) {
	call := c.svc.VideoCategories.List([]string{"snippet"})
	if region != "" {
		call = call.RegionCode(region)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list video categories: %w", err)
	}

	categories := make([]Category, 0, len(resp.Items))
	for _, item := range resp.Items {
		cat := Category{ID: item.Id}
		if item.Snippet != nil {
			cat.Title = item.Snippet.Title
		}
		categories = append(categories, cat)
	}
	return categories, nil
}

// Batches splits ids into consecutive groups of at most size.
func Batches(ids []string, size int) [][]string {
	if size <= 0 {
		size = MaxBatch
	}
	var out [][]string
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		out = append(out, ids[start:end])
	}
	return out
}

// StatusCode returns the HTTP status carried by an API error, or 0.
func StatusCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

// Message returns a short human readable description of an API error.
func Message(err error) string {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return fmt.Sprintf("video API returned %d: %s", apiErr.Code, apiErr.Message)
		}
		return fmt.Sprintf("video API returned %d", apiErr.Code)
	}
	return err.Error()
}

func clampResults(n int64) int64 {
	if n <= 0 || n > MaxBatch {
		return MaxBatch
	}
	return n
}
