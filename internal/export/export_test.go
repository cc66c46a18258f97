package export

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"time"

	"tubescout/internal/table"
)

func sampleRows() []table.VideoRecord {
	return []table.VideoRecord{
		{
			VideoID:      "a1",
			Title:        "Gato, loco",
			ChannelTitle: "Canal Uno",
			ChannelID:    "UC1",
			Published:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Views:        1500,
			Likes:        20,
			Duration:     "4:13",
			Link:         "https://www.youtube.com/watch?v=a1",
			CategoryID:   "10",
		},
		{
			VideoID:      "b2",
			Title:        "Plain",
			ChannelTitle: "Canal Dos",
			ChannelID:    "UC2",
			Views:        7,
			Link:         "https://www.youtube.com/watch?v=b2",
		},
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, table.Records(sampleRows())); err != nil {
		t.Fatalf("CSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("CSV() wrote %d lines, want 3:\n%s", len(lines), buf.String())
	}

	wantHeader := "Title,Channel,Channel ID,Published,Views,Likes,Duration,Category,Link"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}
	wantRow := `"Gato, loco",Canal Uno,UC1,2024-03-01,1500,20,4:13,10,https://www.youtube.com/watch?v=a1`
	if lines[1] != wantRow {
		t.Errorf("row = %q, want %q", lines[1], wantRow)
	}
}

func TestCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, nil); err != nil {
		t.Fatalf("CSV() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("CSV() wrote %q, want nothing", buf.String())
	}
}

func TestJSONKeepsFieldOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, table.Records(sampleRows()[:1])); err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	out := buf.String()
	if strings.Index(out, `"Title"`) > strings.Index(out, `"Link"`) {
		t.Errorf("JSON() lost field order:\n%s", out)
	}

	var decoded []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded[0]["Views"] != "1500" {
		t.Errorf("Views = %q, want 1500", decoded[0]["Views"])
	}
}

func TestJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, nil); err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("JSON() = %q, want []", got)
	}
}

func TestRSS(t *testing.T) {
	var buf bytes.Buffer
	info := FeedInfo{Title: "Trending US", Description: "Most popular", Link: "https://www.youtube.com/feed/trending"}
	if err := RSS(&buf, info, sampleRows(), time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("RSS() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"<rss", "Trending US", "Gato, loco", "https://www.youtube.com/watch?v=b2"} {
		if !strings.Contains(out, want) {
			t.Errorf("RSS() missing %q", want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "csv", want: FormatCSV},
		{in: " JSON ", want: FormatJSON},
		{in: "rss", want: FormatRSS},
		{in: "xlsx", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 3, 2, 15, 4, 5, 0, time.UTC)
	got := FileName("trending", FormatRSS, now)

	pattern := regexp.MustCompile(`^trending-20240302-150405-[0-9a-f]{8}\.xml$`)
	if !pattern.MatchString(got) {
		t.Errorf("FileName() = %q", got)
	}
	if FileName("trending", FormatCSV, now) == FileName("trending", FormatCSV, now) {
		t.Error("FileName() returned the same name twice")
	}
}

func TestSeriesAligned(t *testing.T) {
	s := ViewsSeries(sampleRows())
	if len(s.Labels) != len(s.Values) {
		t.Fatalf("labels %d != values %d", len(s.Labels), len(s.Values))
	}
	if s.Labels[1] != "Plain" || s.Values[1] != 7 {
		t.Errorf("point 1 = (%q, %v), want (Plain, 7)", s.Labels[1], s.Values[1])
	}

	top := s.Top(1)
	if top.Len() != 1 || len(top.Values) != 1 || top.Labels[0] != "Gato, loco" {
		t.Errorf("Top(1) = %+v", top)
	}
	if s.Top(0).Len() != 2 {
		t.Errorf("Top(0) should keep every point")
	}
}
