// Package llm turns ranked title words into video ideas.
package llm

import "context"

type Idea struct {
	Title    string   `json:"title"`
	Hook     string   `json:"hook"`
	Keywords []string `json:"keywords"`
}

type Client interface {
	SuggestIdeas(ctx context.Context, words []string, count int) ([]Idea, error)
}
