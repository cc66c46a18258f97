// Package table turns raw video API items into flat rows and assembles them
// into filtered, sorted and paginated result tables.
package table

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"google.golang.org/api/youtube/v3"

	"tubescout/internal/duration"
)

const (
	watchURL   = "https://www.youtube.com/watch?v="
	dateLayout = "2006-01-02"
)

// Kind tags the shape of a raw item. It is decided where the item was fetched
// and never inferred from the payload.
type Kind int

const (
	KindTrending Kind = iota
	KindSearch
	KindPlaylistItem
)

func (k Kind) String() string {
	switch k {
	case KindTrending:
		return "trending"
	case KindSearch:
		return "search"
	case KindPlaylistItem:
		return "playlist_item"
	default:
		return "unknown"
	}
}

// Item is one raw API item together with its kind.
type Item struct {
	Kind     Kind
	video    *youtube.Video
	search   *youtube.SearchResult
	playlist *youtube.PlaylistItem
}

func TrendingItem(v *youtube.Video) Item {
	return Item{Kind: KindTrending, video: v}
}

func SearchItem(r *youtube.SearchResult) Item {
	return Item{Kind: KindSearch, search: r}
}

func PlaylistEntry(p *youtube.PlaylistItem) Item {
	return Item{Kind: KindPlaylistItem, playlist: p}
}

// ID returns the video identifier of the item, or "" when it has none.
func (it Item) ID() string {
	switch it.Kind {
	case KindTrending:
		if it.video != nil {
			return it.video.Id
		}
	case KindSearch:
		if it.search != nil && it.search.Id != nil {
			return it.search.Id.VideoId
		}
	case KindPlaylistItem:
		if it.playlist != nil && it.playlist.ContentDetails != nil {
			return it.playlist.ContentDetails.VideoId
		}
	}
	return ""
}

// ChannelID returns the channel that owns the item's video.
func (it Item) ChannelID() string {
	switch it.Kind {
	case KindTrending:
		if it.video != nil && it.video.Snippet != nil {
			return it.video.Snippet.ChannelId
		}
	case KindSearch:
		if it.search == nil {
			return ""
		}
		if it.search.Snippet != nil && it.search.Snippet.ChannelId != "" {
			return it.search.Snippet.ChannelId
		}
		if it.search.Id != nil {
			return it.search.Id.ChannelId
		}
	case KindPlaylistItem:
		if it.playlist != nil && it.playlist.Snippet != nil {
			if it.playlist.Snippet.VideoOwnerChannelId != "" {
				return it.playlist.Snippet.VideoOwnerChannelId
			}
			return it.playlist.Snippet.ChannelId
		}
	}
	return ""
}

// StatsLookup maps a video id to the video resource carrying its statistics
// and content details. It is built once per batch.
type StatsLookup map[string]*youtube.Video

func (s StatsLookup) Get(id string) *youtube.Video {
	if s == nil {
		return nil
	}
	return s[id]
}

// VideoRecord is a flattened video row.
type VideoRecord struct {
	VideoID         string
	Title           string
	ChannelTitle    string
	ChannelID       string
	Published       time.Time
	Views           uint64
	Likes           uint64
	Duration        string
	DurationSeconds int
	Link            string
	CategoryID      string
}

// Project flattens item, joining statistics from stats when present. Missing
// fields fall back to zero counts and an empty duration.
func Project(item Item, stats StatsLookup) VideoRecord {
	id := item.ID()
	rec := VideoRecord{
		VideoID:   id,
		ChannelID: item.ChannelID(),
	}
	if id != "" {
		rec.Link = watchURL + id
	}

	var detail *youtube.Video
	switch item.Kind {
	case KindTrending:
		detail = item.video
		if s := stats.Get(id); s != nil {
			detail = s
		}
		if item.video != nil && item.video.Snippet != nil {
			sn := item.video.Snippet
			rec.Title = sn.Title
			rec.ChannelTitle = sn.ChannelTitle
			rec.Published = parseDate(sn.PublishedAt)
			rec.CategoryID = sn.CategoryId
		}
	case KindSearch:
		detail = stats.Get(id)
		if item.search != nil && item.search.Snippet != nil {
			sn := item.search.Snippet
			rec.Title = sn.Title
			rec.ChannelTitle = sn.ChannelTitle
			rec.Published = parseDate(sn.PublishedAt)
		}
	case KindPlaylistItem:
		detail = stats.Get(id)
		if item.playlist != nil {
			if sn := item.playlist.Snippet; sn != nil {
				rec.Title = sn.Title
				rec.ChannelTitle = sn.VideoOwnerChannelTitle
				if rec.ChannelTitle == "" {
					rec.ChannelTitle = sn.ChannelTitle
				}
				rec.Published = parseDate(sn.PublishedAt)
			}
			if cd := item.playlist.ContentDetails; cd != nil && cd.VideoPublishedAt != "" {
				rec.Published = parseDate(cd.VideoPublishedAt)
			}
		}
	}

	if detail != nil {
		if detail.Statistics != nil {
			rec.Views = detail.Statistics.ViewCount
			rec.Likes = detail.Statistics.LikeCount
		}
		if detail.ContentDetails != nil {
			rec.Duration = duration.Humanize(detail.ContentDetails.Duration)
			rec.DurationSeconds = duration.Seconds(detail.ContentDetails.Duration)
		}
		if rec.CategoryID == "" && detail.Snippet != nil {
			rec.CategoryID = detail.Snippet.CategoryId
		}
	}

	return rec
}

// Record returns the row as ordered named fields.
func (v VideoRecord) Record() Record {
	return Record{
		{Name: "Title", Value: v.Title},
		{Name: "Channel", Value: v.ChannelTitle},
		{Name: "Channel ID", Value: v.ChannelID},
		{Name: "Published", Value: formatDate(v.Published)},
		{Name: "Views", Value: strconv.FormatUint(v.Views, 10)},
		{Name: "Likes", Value: strconv.FormatUint(v.Likes, 10)},
		{Name: "Duration", Value: v.Duration},
		{Name: "Category", Value: v.CategoryID},
		{Name: "Link", Value: v.Link},
	}
}

// Records converts rows in order.
func Records(rows []VideoRecord) []Record {
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Record())
	}
	return out
}

type Field struct {
	Name  string
	Value string
}

// Record is an ordered list of named fields.
type Record []Field

func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

func (r Record) Values() []string {
	values := make([]string, len(r))
	for i, f := range r {
		values[i] = f.Value
	}
	return values
}

func (r Record) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// MarshalJSON encodes the record as an object with fields in order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		if len(s) < len(dateLayout) {
			return time.Time{}
		}
		t, err = time.Parse(dateLayout, s[:len(dateLayout)])
		if err != nil {
			return time.Time{}
		}
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
