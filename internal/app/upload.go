package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"tubescout/internal/uploadsvc"
)

// Authorize returns the consent link for a channel hint.
func (s *Service) Authorize(ctx context.Context, channelHint string) (string, error) {
	if s.upload == nil {
		return "", ErrUploadDisabled
	}
	return s.upload.Authorize(ctx, strings.TrimSpace(channelHint))
}

func (s *Service) UploadChannels(ctx context.Context) ([]uploadsvc.Channel, error) {
	if s.upload == nil {
		return nil, ErrUploadDisabled
	}
	return s.upload.Channels(ctx)
}

// UploadVideo sends a local file to a signed target and publishes it with
// the given metadata. The service's reply is returned unmodified.
func (s *Service) UploadVideo(ctx context.Context, p UploadParams) (json.RawMessage, error) {
	if err := checkParams(p); err != nil {
		return nil, err
	}
	if s.upload == nil {
		return nil, ErrUploadDisabled
	}

	contentType := mime.TypeByExtension(filepath.Ext(p.File))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	target, err := s.upload.UploadURL(ctx, filepath.Base(p.File), contentType)
	if err != nil {
		return nil, err
	}
	if err := s.upload.PutFile(ctx, target.UploadURL, p.File, contentType); err != nil {
		return nil, err
	}
	slog.Info("Uploaded video file", "file", p.File, "storage_path", target.StoragePath)

	privacy := p.Privacy
	if privacy == "" {
		privacy = s.cfg.Upload.PrivacyStatus
	}

	reply, err := s.upload.Publish(ctx, uploadsvc.Metadata{
		ChannelID:   p.ChannelID,
		Title:       p.Title,
		Description: p.Description,
		Privacy:     privacy,
		Tags:        p.Tags,
		CategoryID:  p.CategoryID,
		StoragePath: target.StoragePath,
	})
	if err != nil {
		return nil, fmt.Errorf("publish %s: %w", filepath.Base(p.File), err)
	}
	return reply, nil
}
