package model

import (
	"encoding/json"
	"strconv"

	"tubescout/internal/export"
	"tubescout/internal/ideas"
	"tubescout/internal/niche"
	"tubescout/internal/table"
)

type View string

const (
	ViewTrending View = "trending"
	ViewSearch   View = "search"
	ViewChannel  View = "channel"
	ViewNiche    View = "niche"
	ViewIdeas    View = "ideas"
)

// Intent asks a front end to open Target seeded with Seed.
type Intent struct {
	Target View   `json:"target_view"`
	Seed   string `json:"seed"`
	Label  string `json:"label,omitempty"`
}

// Count is a statistic the platform may hide.
type Count struct {
	Value uint64
	Known bool
}

func KnownCount(v uint64) Count {
	return Count{Value: v, Known: true}
}

func (c Count) String() string {
	if !c.Known {
		return "N/A"
	}
	return strconv.FormatUint(c.Value, 10)
}

func (c Count) MarshalJSON() ([]byte, error) {
	if !c.Known {
		return json.Marshal("N/A")
	}
	return json.Marshal(c.Value)
}

type TableResult struct {
	Kind    string
	Rows    []table.VideoRecord
	Series  export.Series
	Message string
}

func (r *TableResult) Records() []table.Record {
	return table.Records(r.Rows)
}

type ChannelSummary struct {
	ChannelID         string `json:"channel_id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	SubscriberCount   Count  `json:"subscriber_count"`
	TotalViewCount    Count  `json:"total_view_count"`
	VideoCount        Count  `json:"video_count"`
	ThumbnailURL      string `json:"thumbnail_url"`
	UploadsPlaylistID string `json:"uploads_playlist_id"`
}

func (s ChannelSummary) Record() table.Record {
	return table.Record{
		{Name: "Channel", Value: s.Title},
		{Name: "Channel ID", Value: s.ChannelID},
		{Name: "Subscribers", Value: s.SubscriberCount.String()},
		{Name: "Total Views", Value: s.TotalViewCount.String()},
		{Name: "Videos", Value: s.VideoCount.String()},
		{Name: "Thumbnail", Value: s.ThumbnailURL},
	}
}

type ChannelResult struct {
	Summary      ChannelSummary
	TopVideos    []table.VideoRecord
	Uploads      []table.VideoRecord
	TotalUploads int
	Page         int
	PageCount    int
	Series       export.Series
	Message      string
}

type NicheResult struct {
	Candidates []niche.Candidate
	Intents    []Intent
	Series     export.Series
	Message    string
}

func (r *NicheResult) Records() []table.Record {
	out := make([]table.Record, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		out = append(out, c.Record())
	}
	return out
}

type IdeasResult struct {
	Words      []ideas.WordCount
	Categories []ideas.CategoryCount
	Intents    []Intent
	Series     export.Series
	Message    string
}

func (r *IdeasResult) Records() []table.Record {
	out := make([]table.Record, 0, len(r.Words))
	for _, w := range r.Words {
		out = append(out, w.Record())
	}
	return out
}

func (r *IdeasResult) CategoryRecords() []table.Record {
	out := make([]table.Record, 0, len(r.Categories))
	for _, c := range r.Categories {
		out = append(out, c.Record())
	}
	return out
}
