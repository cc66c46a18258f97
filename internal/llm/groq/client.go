package groq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/conneroisu/groq-go"

	"tubescout/internal/llm"
	"tubescout/pkg/prompts"
)

var _ llm.Client = (*Client)(nil)

type Client struct {
	client  *groq.Client
	model   groq.ChatModel
	prompts *prompts.Prompts
	region  string
}

func NewClient(apiKey, model, region string, p *prompts.Prompts, opts ...groq.Opts) (*Client, error) {
	client, err := groq.NewClient(apiKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}

	return &Client{
		client:  client,
		model:   groq.ChatModel(model),
		prompts: p,
		region:  region,
	}, nil
}

func (c *Client) SuggestIdeas(ctx context.Context, words []string, count int) ([]llm.Idea, error) {
	if len(words) == 0 {
		return nil, errors.New("no words to suggest ideas from")
	}

	prompt, err := c.prompts.RenderIdeas(prompts.IdeasParams{
		Words:  words,
		Count:  count,
		Region: c.region,
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	content, err := c.generateJSON(ctx, c.prompts.System.Ideas, prompt)
	if err != nil {
		return nil, err
	}

	slog.Debug("LLM ideas raw response", "content", content)

	ideas, err := parseJSONArray[llm.Idea](content, []string{"ideas", "results", "videos"})
	if err != nil {
		return nil, err
	}

	ideas = cleanIdeas(ideas)
	if count > 0 && len(ideas) > count {
		ideas = ideas[:count]
	}
	return ideas, nil
}

func cleanIdeas(ideas []llm.Idea) []llm.Idea {
	seen := make(map[string]bool)
	result := make([]llm.Idea, 0, len(ideas))

	for _, idea := range ideas {
		idea.Title = strings.TrimSpace(strings.Trim(idea.Title, "\"'"))
		key := strings.ToLower(idea.Title)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		idea.Hook = strings.TrimSpace(idea.Hook)
		result = append(result, idea)
	}

	return result
}

func parseJSONArray[T any](content string, keys []string) ([]T, error) {
	var direct []T
	if err := json.Unmarshal([]byte(content), &direct); err == nil && len(direct) > 0 {
		return direct, nil
	}

	var wrapped map[string][]T
	if err := json.Unmarshal([]byte(content), &wrapped); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	for _, key := range keys {
		if items, ok := wrapped[key]; ok && len(items) > 0 {
			return items, nil
		}
	}

	for _, items := range wrapped {
		if len(items) > 0 {
			return items, nil
		}
	}

	return nil, fmt.Errorf("no items found in response")
}

func (c *Client) generateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := groq.ChatCompletionRequest{
		Model: c.model,
		Messages: []groq.ChatCompletionMessage{
			{Role: groq.RoleSystem, Content: systemPrompt},
			{Role: groq.RoleUser, Content: userPrompt},
		},
		ResponseFormat: &groq.ChatResponseFormat{Type: "json_object"},
	}

	resp, err := c.client.ChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response")
	}

	return content, nil
}
