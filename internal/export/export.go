// Package export serializes result tables for download and charting.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"tubescout/internal/table"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatRSS  Format = "rss"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatRSS:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

func (f Format) Ext() string {
	if f == FormatRSS {
		return "xml"
	}
	return string(f)
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatRSS:
		return "application/rss+xml"
	default:
		return "application/json"
	}
}

// CSV writes a header row from the first record's field names followed by
// one row per record. Nothing is written for an empty table.
func CSV(w io.Writer, records []table.Record) error {
	if len(records) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(records[0].Names()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Values()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// JSON writes records as an indented array of ordered objects.
func JSON(w io.Writer, records []table.Record) error {
	if records == nil {
		records = []table.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// FileName returns "<kind>-<yyyymmdd-hhmmss>-<id>.<ext>" where id is the first
// eight characters of a random UUID.
func FileName(kind string, f Format, now time.Time) string {
	id := uuid.NewString()[:8]
	return fmt.Sprintf("%s-%s-%s.%s", kind, now.UTC().Format("20060102-150405"), id, f.Ext())
}
