// Package app runs the dashboard actions on top of the video API.
package app

import (
	"context"
	"time"

	yt "google.golang.org/api/youtube/v3"

	"tubescout/internal/llm"
	"tubescout/internal/niche"
	"tubescout/internal/storage"
	"tubescout/internal/table"
	"tubescout/internal/uploadsvc"
	"tubescout/internal/youtube"
	"tubescout/pkg/config"
)

// VideoAPI is the remote content API used by the actions.
type VideoAPI interface {
	Trending(ctx context.Context, q youtube.TrendingQuery) ([]*yt.Video, error)
	SearchPage(ctx context.Context, q youtube.SearchQuery, pageToken string) (*youtube.SearchPage, error)
	VideoStats(ctx context.Context, ids []string) (table.StatsLookup, error)
	Channel(ctx context.Context, id string) (*yt.Channel, error)
	Channels(ctx context.Context, ids []string) (map[string]*yt.Channel, error)
	PlaylistPage(ctx context.Context, playlistID, pageToken string, max int64) (*youtube.PlaylistPage, error)
	Categories(ctx context.Context, region string) ([]youtube.Category, error)
}

type Service struct {
	cfg    *config.Config
	api    VideoAPI
	niche  *niche.Discoverer
	llm    llm.Client
	sink   storage.Sink
	upload *uploadsvc.Client
	now    func() time.Time
}

type ServiceOptions struct {
	Config *config.Config
	API    VideoAPI
	LLM    llm.Client
	Sink   storage.Sink
	Upload *uploadsvc.Client
}

func NewService(opts ServiceOptions) *Service {
	return &Service{
		cfg:    opts.Config,
		api:    opts.API,
		niche:  niche.NewDiscoverer(opts.API),
		llm:    opts.LLM,
		sink:   opts.Sink,
		upload: opts.Upload,
		now:    time.Now,
	}
}

func (s *Service) Config() *config.Config {
	return s.cfg
}

func (s *Service) LLM() llm.Client {
	return s.llm
}

func (s *Service) Sink() storage.Sink {
	return s.sink
}

func (s *Service) Upload() *uploadsvc.Client {
	return s.upload
}
