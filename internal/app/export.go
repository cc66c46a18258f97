package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tubescout/internal/export"
	"tubescout/internal/table"
)

var errRSSNeedsVideos = errors.New("rss export is only available for video tables")

// ExportVideos writes video rows in format f through the configured sink and
// returns where the file was stored.
func (s *Service) ExportVideos(ctx context.Context, kind string, f export.Format, rows []table.VideoRecord) (string, error) {
	if f != export.FormatRSS {
		return s.ExportRecords(ctx, kind, f, table.Records(rows))
	}

	var buf bytes.Buffer
	info := export.FeedInfo{
		Title:       "tubescout " + kind,
		Description: fmt.Sprintf("%d videos", len(rows)),
		Link:        "https://www.youtube.com/",
	}
	if err := export.RSS(&buf, info, rows, s.now()); err != nil {
		return "", err
	}
	return s.save(ctx, kind, f, buf.Bytes())
}

// ExportRecords writes records as CSV or JSON through the configured sink.
func (s *Service) ExportRecords(ctx context.Context, kind string, f export.Format, records []table.Record) (string, error) {
	var buf bytes.Buffer
	switch f {
	case export.FormatCSV:
		if err := export.CSV(&buf, records); err != nil {
			return "", err
		}
	case export.FormatJSON:
		if err := export.JSON(&buf, records); err != nil {
			return "", err
		}
	case export.FormatRSS:
		return "", fmt.Errorf("%w: %v", ErrInvalidParams, errRSSNeedsVideos)
	default:
		return "", fmt.Errorf("%w: unknown export format %q", ErrInvalidParams, f)
	}
	return s.save(ctx, kind, f, buf.Bytes())
}

func (s *Service) save(ctx context.Context, kind string, f export.Format, data []byte) (string, error) {
	if s.sink == nil {
		return "", errors.New("no export sink configured")
	}
	name := export.FileName(kind, f, s.now())
	location, err := s.sink.Save(ctx, name, data)
	if err != nil {
		return "", fmt.Errorf("save export: %w", err)
	}
	slog.Info("Exported table", "kind", kind, "format", f, "location", location, "bytes", len(data))
	return location, nil
}
