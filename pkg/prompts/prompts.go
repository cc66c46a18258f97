package prompts

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultPromptsPath = "prompts.yaml"

const (
	defaultSystemIdeas  = "You are a YouTube strategist. You answer with JSON only."
	defaultIdeasSuggest = `These words recur in the titles of videos trending in {{.Region}}: {{.WordList}}.
Propose {{.Count}} original video ideas that ride these topics.
Answer as {"ideas": [{"title": "...", "hook": "...", "keywords": ["..."]}]}.`
)

type Prompts struct {
	System SystemPrompts `yaml:"system"`
	Ideas  IdeaPrompts   `yaml:"ideas"`
}

type SystemPrompts struct {
	Ideas string `yaml:"ideas"`
}

type IdeaPrompts struct {
	Suggest string `yaml:"suggest"`
}

type IdeasParams struct {
	Words  []string
	Count  int
	Region string
}

func (p IdeasParams) WordList() string {
	return strings.Join(p.Words, ", ")
}

func Default() *Prompts {
	return &Prompts{
		System: SystemPrompts{Ideas: defaultSystemIdeas},
		Ideas:  IdeaPrompts{Suggest: defaultIdeasSuggest},
	}
}

// Load reads prompts.yaml from the working directory, falling back to the
// built-in prompts when the file does not exist.
func Load() (*Prompts, error) {
	p, err := LoadFrom(defaultPromptsPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return p, err
}

// LoadFrom reads prompts from path. Missing entries keep their defaults.
func LoadFrom(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}

	return p, nil
}

func (p *Prompts) RenderIdeas(params IdeasParams) (string, error) {
	return render(p.Ideas.Suggest, params)
}

func render(tmpl string, data any) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
