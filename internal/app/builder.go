package app

import (
	"context"
	"fmt"
	"log/slog"

	"tubescout/internal/llm"
	"tubescout/internal/llm/groq"
	"tubescout/internal/storage"
	"tubescout/internal/uploadsvc"
	"tubescout/internal/youtube"
	"tubescout/pkg/config"
	"tubescout/pkg/prompts"
)

type BuildResult struct {
	Service *Service
	// Close releases clients that hold connections.
	Close func() error
}

func BuildService(ctx context.Context, cfg *config.Config) (*BuildResult, error) {
	api, err := youtube.NewClient(ctx, youtube.Config{
		APIKey:   cfg.YouTubeAPIKey,
		Endpoint: cfg.YouTube.Endpoint,
	})
	if err != nil {
		return nil, err
	}

	var llmClient llm.Client
	if cfg.GroqAPIKey != "" {
		p, err := prompts.Load()
		if err != nil {
			return nil, err
		}
		client, err := groq.NewClient(cfg.GroqAPIKey, cfg.Groq.Model, cfg.YouTube.Region, p)
		if err != nil {
			return nil, err
		}
		llmClient = client
	} else {
		slog.Debug("GROQ_API_KEY not set, idea suggestions disabled")
	}

	closeFn := func() error { return nil }
	var sink storage.Sink
	if cfg.GCSBucket != "" {
		gcs, err := storage.NewGCSStorage(ctx, cfg.GCSBucket, cfg.Export.Prefix)
		if err != nil {
			return nil, fmt.Errorf("export bucket: %w", err)
		}
		sink = gcs
		closeFn = gcs.Close
	} else {
		sink = storage.NewLocalStorage(cfg.Export.Dir)
	}

	var upload *uploadsvc.Client
	if cfg.Upload.BaseURL != "" {
		upload = uploadsvc.NewClient(ctx, cfg.Upload.BaseURL, cfg.UploadServiceToken)
	}

	svc := NewService(ServiceOptions{
		Config: cfg,
		API:    api,
		LLM:    llmClient,
		Sink:   sink,
		Upload: upload,
	})

	return &BuildResult{Service: svc, Close: closeFn}, nil
}
