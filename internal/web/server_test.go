package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yt "google.golang.org/api/youtube/v3"

	"tubescout/internal/app"
	"tubescout/internal/table"
	"tubescout/internal/youtube"
	"tubescout/pkg/config"
)

type fakeAPI struct {
	trending    []*yt.Video
	trendingErr error
	channels    map[string]*yt.Channel
	categories  []youtube.Category
	calls       int
}

func (f *fakeAPI) Trending(ctx context.Context, q youtube.TrendingQuery) ([]*yt.Video, error) {
	f.calls++
	return f.trending, f.trendingErr
}

func (f *fakeAPI) SearchPage(ctx context.Context, q youtube.SearchQuery, token string) (*youtube.SearchPage, error) {
	f.calls++
	return &youtube.SearchPage{}, nil
}

func (f *fakeAPI) VideoStats(ctx context.Context, ids []string) (table.StatsLookup, error) {
	f.calls++
	return nil, nil
}

func (f *fakeAPI) Channel(ctx context.Context, id string) (*yt.Channel, error) {
	f.calls++
	return f.channels[id], nil
}

func (f *fakeAPI) Channels(ctx context.Context, ids []string) (map[string]*yt.Channel, error) {
	f.calls++
	return f.channels, nil
}

func (f *fakeAPI) PlaylistPage(ctx context.Context, playlistID, token string, max int64) (*youtube.PlaylistPage, error) {
	f.calls++
	return &youtube.PlaylistPage{}, nil
}

func (f *fakeAPI) Categories(ctx context.Context, region string) ([]youtube.Category, error) {
	f.calls++
	return f.categories, nil
}

func video(id, title, category string, views uint64) *yt.Video {
	return &yt.Video{
		Id: id,
		Snippet: &yt.VideoSnippet{
			Title:        title,
			ChannelTitle: "Channel " + id,
			ChannelId:    "UC" + id,
			PublishedAt:  "2024-03-01T10:00:00Z",
			CategoryId:   category,
		},
		Statistics:     &yt.VideoStatistics{ViewCount: views},
		ContentDetails: &yt.VideoContentDetails{Duration: "PT4M13S"},
	}
}

func newTestServer(api *fakeAPI) *Server {
	cfg := &config.Config{
		YouTube: config.YouTubeConfig{Region: "US", MaxResults: 50, SearchCap: 100},
		Niche:   config.NicheConfig{MaxSubscribers: 1000, MaxTotalViews: 100000, MaxAgeMonths: 6, ResultCap: 100},
		Ideas:   config.IdeasConfig{TopWords: 10, SuggestCount: 3},
		Channel: config.ChannelConfig{PageSize: 10, TopVideos: 10, UploadsLimit: 100},
	}
	s := NewServer(app.NewService(app.ServiceOptions{Config: cfg, API: api}))
	s.now = func() time.Time { return time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC) }
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestServer(&fakeAPI{}), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestTrendingJSON(t *testing.T) {
	api := &fakeAPI{trending: []*yt.Video{
		video("a", "Gato loco", "10", 100),
		video("b", "Perro feliz", "20", 500),
		video("c", "Gato feliz", "10", 300),
	}}
	rec := get(t, newTestServer(api), "/api/trending?keyword=gato&sort=views")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Rows   []map[string]string `json:"rows"`
		Series struct {
			Labels []string  `json:"labels"`
			Values []float64 `json:"values"`
		} `json:"series"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Rows, 2)
	assert.Equal(t, "Gato feliz", body.Rows[0]["Title"])
	assert.Equal(t, "Gato loco", body.Rows[1]["Title"])
	assert.Equal(t, []float64{300, 100}, body.Series.Values)
	assert.Empty(t, body.Message)
}

func TestTrendingEmptyHasMessage(t *testing.T) {
	rec := get(t, newTestServer(&fakeAPI{}), "/api/trending")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No videos matched")
}

func TestTrendingCSVDownload(t *testing.T) {
	api := &fakeAPI{trending: []*yt.Video{video("a", "Gato loco", "10", 100)}}
	rec := get(t, newTestServer(api), "/api/trending?format=csv")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "trending-20240630-000000-")
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Title,Channel"))
	assert.Contains(t, lines[1], "Gato loco")
}

func TestTrendingRSSDownload(t *testing.T) {
	api := &fakeAPI{trending: []*yt.Video{video("a", "Gato loco", "10", 100)}}
	rec := get(t, newTestServer(api), "/api/trending?format=rss")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<rss")
	assert.Contains(t, rec.Body.String(), "Gato loco")
}

func TestBadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "badRegion", target: "/api/trending?region=USA"},
		{name: "badSort", target: "/api/trending?sort=colour"},
		{name: "notANumber", target: "/api/trending?max=lots"},
		{name: "badFormat", target: "/api/trending?format=xlsx"},
		{name: "missingQuery", target: "/api/search"},
		{name: "missingKeyword", target: "/api/niche"},
		{name: "rssForWords", target: "/api/ideas?format=rss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestServer(&fakeAPI{}), tt.target)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestInvalidParamsMakeNoRemoteCalls(t *testing.T) {
	api := &fakeAPI{}
	rec := get(t, newTestServer(api), "/api/search?q=%20%20")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, api.calls)
}

func TestRemoteFailureIsBadGateway(t *testing.T) {
	api := &fakeAPI{trendingErr: errors.New("quota exceeded")}
	rec := get(t, newTestServer(api), "/api/trending")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "quota exceeded")
}

func TestChannelNotFound(t *testing.T) {
	rec := get(t, newTestServer(&fakeAPI{}), "/api/channels/UCmissing")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Channel UCmissing not found.")
}

func TestIdeas(t *testing.T) {
	api := &fakeAPI{
		trending: []*yt.Video{
			video("a", "Gato loco feliz", "10", 100),
			video("b", "Gato feliz", "10", 100),
			video("c", "Perro", "20", 100),
		},
		categories: []youtube.Category{{ID: "10", Title: "Music"}},
	}
	rec := get(t, newTestServer(api), "/api/ideas")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Rows []struct {
			Word  string `json:"Word"`
			Count string `json:"Count"`
		} `json:"rows"`
		Intents []struct {
			Target string `json:"target_view"`
			Seed   string `json:"seed"`
		} `json:"intents"`
		Categories []map[string]string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Rows)
	assert.Equal(t, "gato", body.Rows[0].Word)
	require.NotEmpty(t, body.Intents)
	assert.Equal(t, "search", body.Intents[0].Target)
	assert.Equal(t, "gato", body.Intents[0].Seed)
	assert.NotEmpty(t, body.Categories)
}

func TestSuggestDisabled(t *testing.T) {
	s := newTestServer(&fakeAPI{})
	req := httptest.NewRequest(http.MethodPost, "/api/ideas/suggest", strings.NewReader(`{"words":["gato"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestOpenUnknownView(t *testing.T) {
	s := newTestServer(&fakeAPI{})
	req := httptest.NewRequest(http.MethodPost, "/api/open", strings.NewReader(`{"target_view":"nowhere","seed":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(&fakeAPI{})
	get(t, s, "/healthz")

	rec := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `tubescout_http_requests_total{code="200",route="/healthz"}`)
}
