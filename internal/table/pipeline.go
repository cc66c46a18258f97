package table

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// AllCategories is the category filter value that matches every row.
const AllCategories = "all"

var ErrPageOutOfRange = errors.New("page out of range")

type SortField string

const (
	SortNone      SortField = ""
	SortViews     SortField = "views"
	SortLikes     SortField = "likes"
	SortPublished SortField = "published"
	SortDuration  SortField = "duration"
	SortTitle     SortField = "title"
)

var sortFields = []SortField{SortNone, SortViews, SortLikes, SortPublished, SortDuration, SortTitle}

func ParseSortField(s string) (SortField, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	if f == "date" {
		return SortPublished, nil
	}
	if slices.Contains(sortFields, f) {
		return f, nil
	}
	return SortNone, fmt.Errorf("unknown sort field %q", s)
}

type Options struct {
	Keyword  string
	Category string
	SortBy   SortField
}

// Build projects items, keeps those matching opts and sorts them. Without a
// sort field the API order is kept.
func Build(items []Item, stats StatsLookup, opts Options) []VideoRecord {
	rows := make([]VideoRecord, 0, len(items))
	for _, item := range items {
		rows = append(rows, Project(item, stats))
	}
	rows = Filter(rows, opts)
	Sort(rows, opts.SortBy)
	return rows
}

// Filter keeps rows whose title contains opts.Keyword (case-insensitive) and
// whose category equals opts.Category.
func Filter(rows []VideoRecord, opts Options) []VideoRecord {
	keyword := strings.ToLower(strings.TrimSpace(opts.Keyword))
	category := strings.TrimSpace(opts.Category)
	matchAllCategories := category == "" || category == AllCategories

	out := make([]VideoRecord, 0, len(rows))
	for _, r := range rows {
		if keyword != "" && !strings.Contains(strings.ToLower(r.Title), keyword) {
			continue
		}
		if !matchAllCategories && r.CategoryID != category {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Sort orders rows in place. Counts and duration sort descending, published
// sorts newest first, title sorts ascending. Ties keep input order.
func Sort(rows []VideoRecord, field SortField) {
	var less func(a, b VideoRecord) int
	switch field {
	case SortViews:
		less = func(a, b VideoRecord) int { return cmp.Compare(b.Views, a.Views) }
	case SortLikes:
		less = func(a, b VideoRecord) int { return cmp.Compare(b.Likes, a.Likes) }
	case SortDuration:
		less = func(a, b VideoRecord) int { return cmp.Compare(b.DurationSeconds, a.DurationSeconds) }
	case SortPublished:
		less = func(a, b VideoRecord) int { return b.Published.Compare(a.Published) }
	case SortTitle:
		less = func(a, b VideoRecord) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	default:
		return
	}
	slices.SortStableFunc(rows, less)
}

// PageCount returns the number of pages of size pageSize needed for n rows.
// An empty table still has one (empty) page.
func PageCount(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate returns the 1-based page of rows. Callers clamp page to
// [1, PageCount]; anything else yields ErrPageOutOfRange.
func Paginate(rows []VideoRecord, pageSize, page int) ([]VideoRecord, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}
	last := PageCount(len(rows), pageSize)
	if page < 1 || page > last {
		return nil, fmt.Errorf("page %d of %d: %w", page, last, ErrPageOutOfRange)
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(rows))
	return rows[start:end], nil
}

// ClampPage limits page to the valid range for n rows.
func ClampPage(page, n, pageSize int) int {
	return max(1, min(page, PageCount(n, pageSize)))
}
