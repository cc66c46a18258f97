package table

import (
	"encoding/json"
	"testing"
	"time"

	"google.golang.org/api/youtube/v3"
)

func trendingVideo(id, title, category string, views, likes uint64, dur string) *youtube.Video {
	return &youtube.Video{
		Id: id,
		Snippet: &youtube.VideoSnippet{
			Title:        title,
			ChannelTitle: "Channel " + id,
			ChannelId:    "UC" + id,
			PublishedAt:  "2024-03-05T17:04:00Z",
			CategoryId:   category,
		},
		Statistics:     &youtube.VideoStatistics{ViewCount: views, LikeCount: likes},
		ContentDetails: &youtube.VideoContentDetails{Duration: dur},
	}
}

func TestProjectTrending(t *testing.T) {
	rec := Project(TrendingItem(trendingVideo("abc", "Hello", "10", 1500, 20, "PT4M13S")), nil)

	if rec.VideoID != "abc" {
		t.Errorf("VideoID = %q, want abc", rec.VideoID)
	}
	if rec.Title != "Hello" || rec.ChannelTitle != "Channel abc" || rec.ChannelID != "UCabc" {
		t.Errorf("snippet fields = %+v", rec)
	}
	if rec.Views != 1500 || rec.Likes != 20 {
		t.Errorf("counts = %d/%d, want 1500/20", rec.Views, rec.Likes)
	}
	if rec.Duration != "4:13" || rec.DurationSeconds != 253 {
		t.Errorf("duration = %q (%ds), want 4:13 (253s)", rec.Duration, rec.DurationSeconds)
	}
	if want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC); !rec.Published.Equal(want) {
		t.Errorf("Published = %v, want %v", rec.Published, want)
	}
	if rec.Link != "https://www.youtube.com/watch?v=abc" {
		t.Errorf("Link = %q", rec.Link)
	}
	if rec.CategoryID != "10" {
		t.Errorf("CategoryID = %q, want 10", rec.CategoryID)
	}
}

func TestProjectSearchJoinsStats(t *testing.T) {
	result := &youtube.SearchResult{
		Id: &youtube.ResourceId{Kind: "youtube#video", VideoId: "vid1"},
		Snippet: &youtube.SearchResultSnippet{
			Title:        "Found it",
			ChannelId:    "UCx",
			ChannelTitle: "X",
			PublishedAt:  "2023-12-31T23:59:59Z",
		},
	}
	stats := StatsLookup{"vid1": trendingVideo("vid1", "", "22", 42, 7, "PT1H2M3S")}

	rec := Project(SearchItem(result), stats)
	if rec.VideoID != "vid1" || rec.ChannelID != "UCx" {
		t.Errorf("ids = %q/%q", rec.VideoID, rec.ChannelID)
	}
	if rec.Views != 42 || rec.Likes != 7 || rec.Duration != "1:02:03" {
		t.Errorf("joined stats = %d/%d/%q", rec.Views, rec.Likes, rec.Duration)
	}
	if rec.CategoryID != "22" {
		t.Errorf("CategoryID = %q, want 22", rec.CategoryID)
	}
}

func TestProjectMissingFieldsDefault(t *testing.T) {
	tests := []struct {
		name string
		item Item
	}{
		{name: "emptySearch", item: SearchItem(&youtube.SearchResult{})},
		{name: "nilSearch", item: SearchItem(nil)},
		{name: "emptyPlaylist", item: PlaylistEntry(&youtube.PlaylistItem{})},
		{name: "bareTrending", item: TrendingItem(&youtube.Video{Id: "x"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Project(tt.item, StatsLookup{})
			if rec.Views != 0 || rec.Likes != 0 || rec.Duration != "" {
				t.Errorf("defaults = %d/%d/%q, want 0/0/\"\"", rec.Views, rec.Likes, rec.Duration)
			}
		})
	}
}

func TestProjectPlaylistItem(t *testing.T) {
	p := &youtube.PlaylistItem{
		Snippet: &youtube.PlaylistItemSnippet{
			Title:                  "Upload",
			ChannelId:              "UCplaylistOwner",
			ChannelTitle:           "Owner",
			VideoOwnerChannelId:    "UCvideoOwner",
			VideoOwnerChannelTitle: "Video Owner",
			PublishedAt:            "2024-01-10T00:00:00Z",
		},
		ContentDetails: &youtube.PlaylistItemContentDetails{
			VideoId:          "pv1",
			VideoPublishedAt: "2024-01-02T10:00:00Z",
		},
	}

	rec := Project(PlaylistEntry(p), StatsLookup{"pv1": trendingVideo("pv1", "", "", 9, 1, "PT30S")})
	if rec.VideoID != "pv1" || rec.ChannelID != "UCvideoOwner" || rec.ChannelTitle != "Video Owner" {
		t.Errorf("ids = %+v", rec)
	}
	if want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC); !rec.Published.Equal(want) {
		t.Errorf("Published = %v, want %v", rec.Published, want)
	}
	if rec.Duration != "0:30" || rec.Views != 9 {
		t.Errorf("stats = %q/%d", rec.Duration, rec.Views)
	}
}

func TestKindDecidesShape(t *testing.T) {
	// A search result whose resource id only names a channel has no video id,
	// even though the snippet looks like a video.
	r := &youtube.SearchResult{
		Id:      &youtube.ResourceId{Kind: "youtube#channel", ChannelId: "UCc"},
		Snippet: &youtube.SearchResultSnippet{Title: "A channel"},
	}
	item := SearchItem(r)
	if item.ID() != "" {
		t.Errorf("ID() = %q, want empty", item.ID())
	}
	if item.ChannelID() != "UCc" {
		t.Errorf("ChannelID() = %q, want UCc", item.ChannelID())
	}
}

func TestMalformedDurationPassesThrough(t *testing.T) {
	rec := Project(TrendingItem(trendingVideo("a", "t", "", 0, 0, "P0D")), nil)
	if rec.Duration != "P0D" {
		t.Errorf("Duration = %q, want P0D", rec.Duration)
	}
	if rec.DurationSeconds != 0 {
		t.Errorf("DurationSeconds = %d, want 0", rec.DurationSeconds)
	}
}

func TestRecordOrderAndJSON(t *testing.T) {
	rec := Project(TrendingItem(trendingVideo("abc", "Hi", "10", 5, 1, "PT5S")), nil).Record()

	wantNames := []string{"Title", "Channel", "Channel ID", "Published", "Views", "Likes", "Duration", "Category", "Link"}
	names := rec.Names()
	if len(names) != len(wantNames) {
		t.Fatalf("Names() = %v", names)
	}
	for i := range wantNames {
		if names[i] != wantNames[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], wantNames[i])
		}
	}

	if v, ok := rec.Get("Published"); !ok || v != "2024-03-05" {
		t.Errorf("Get(Published) = %q, %v", v, ok)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"Title":"Hi","Channel":"Channel abc","Channel ID":"UCabc","Published":"2024-03-05","Views":"5","Likes":"1","Duration":"0:05","Category":"10","Link":"https://www.youtube.com/watch?v=abc"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s\nwant %s", data, want)
	}
}
