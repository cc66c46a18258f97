package export

import (
	"fmt"
	"io"
	"time"

	"github.com/gorilla/feeds"

	"tubescout/internal/table"
)

type FeedInfo struct {
	Title       string
	Description string
	Link        string
}

// RSS writes rows as an RSS 2.0 feed, one item per video.
func RSS(w io.Writer, info FeedInfo, rows []table.VideoRecord, now time.Time) error {
	feed := &feeds.Feed{
		Title:       info.Title,
		Description: info.Description,
		Link:        &feeds.Link{Href: info.Link},
		Created:     now,
		Updated:     now,
	}

	for _, r := range rows {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       r.Title,
			Link:        &feeds.Link{Href: r.Link, Rel: "alternate", Type: "text/html"},
			Id:          r.Link,
			Author:      &feeds.Author{Name: r.ChannelTitle},
			Description: fmt.Sprintf("%s | %d views | %d likes | %s", r.ChannelTitle, r.Views, r.Likes, r.Duration),
			Created:     r.Published,
		})
	}

	if err := feed.WriteRss(w); err != nil {
		return fmt.Errorf("write rss: %w", err)
	}
	return nil
}
