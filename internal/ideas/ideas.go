// Package ideas ranks recurring words in video titles.
package ideas

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"tubescout/internal/table"
)

// MinWordLength is the shortest word kept in a ranking.
const MinWordLength = 4

const trailingPunct = ".,!?"

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

func (w WordCount) Record() table.Record {
	return table.Record{
		{Name: "Word", Value: w.Word},
		{Name: "Count", Value: fmt.Sprintf("%d", w.Count)},
	}
}

// Rank counts the words across titles and returns the topN most frequent.
// Words tied on count keep the order they were first seen in. A topN of zero
// or less returns every word.
func Rank(titles []string, topN int) []WordCount {
	counts := make(map[string]int)
	var order []string
	for _, title := range titles {
		for _, word := range Tokenize(title) {
			if _, ok := counts[word]; !ok {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	ranked := make([]WordCount, 0, len(order))
	for _, w := range order {
		ranked = append(ranked, WordCount{Word: w, Count: counts[w]})
	}
	slices.SortStableFunc(ranked, func(a, b WordCount) int {
		return cmp.Compare(b.Count, a.Count)
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// Tokenize lowercases title, splits it on whitespace, strips trailing
// punctuation and drops words shorter than MinWordLength.
func Tokenize(title string) []string {
	var words []string
	for _, tok := range strings.Fields(strings.ToLower(title)) {
		tok = strings.TrimRight(tok, trailingPunct)
		if utf8.RuneCountInString(tok) < MinWordLength {
			continue
		}
		words = append(words, tok)
	}
	return words
}

type CategoryCount struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
}

func (c CategoryCount) Record() table.Record {
	return table.Record{
		{Name: "Category", Value: c.Name},
		{Name: "Category ID", Value: c.CategoryID},
		{Name: "Videos", Value: fmt.Sprintf("%d", c.Count)},
	}
}

// CountCategories tallies rows per category, most common first. Names come
// from names; unknown ids fall back to the id itself.
func CountCategories(rows []table.VideoRecord, names map[string]string) []CategoryCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range rows {
		if r.CategoryID == "" {
			continue
		}
		if _, ok := counts[r.CategoryID]; !ok {
			order = append(order, r.CategoryID)
		}
		counts[r.CategoryID]++
	}

	out := make([]CategoryCount, 0, len(order))
	for _, id := range order {
		name := names[id]
		if name == "" {
			name = id
		}
		out = append(out, CategoryCount{CategoryID: id, Name: name, Count: counts[id]})
	}
	slices.SortStableFunc(out, func(a, b CategoryCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}

// Titles returns the title of every row.
func Titles(rows []table.VideoRecord) []string {
	titles := make([]string, len(rows))
	for i, r := range rows {
		titles[i] = r.Title
	}
	return titles
}
