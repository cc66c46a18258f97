package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	promptsContent := `
system:
  ideas: "Custom system prompt"

ideas:
  suggest: "Ideas about {{.WordList}} x{{.Count}}"
`
	if err := os.WriteFile(filepath.Join(tmpDir, "prompts.yaml"), []byte(promptsContent), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if p.System.Ideas != "Custom system prompt" {
		t.Errorf("System.Ideas = %q, want %q", p.System.Ideas, "Custom system prompt")
	}

	got, err := p.RenderIdeas(IdeasParams{Words: []string{"gato", "lofi"}, Count: 3})
	if err != nil {
		t.Fatalf("RenderIdeas() error = %v", err)
	}
	if got != "Ideas about gato, lofi x3" {
		t.Errorf("RenderIdeas() = %q", got)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	p, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.System.Ideas != defaultSystemIdeas {
		t.Errorf("System.Ideas = %q, want default", p.System.Ideas)
	}
}

func TestLoadFromPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("system:\n  ideas: \"Only system\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if p.System.Ideas != "Only system" {
		t.Errorf("System.Ideas = %q", p.System.Ideas)
	}
	if p.Ideas.Suggest != defaultIdeasSuggest {
		t.Errorf("Ideas.Suggest should keep its default")
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("system: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() expected error for invalid yaml")
	}
}

func TestRenderIdeasDefault(t *testing.T) {
	got, err := Default().RenderIdeas(IdeasParams{Words: []string{"minecraft", "shorts"}, Count: 5, Region: "MX"})
	if err != nil {
		t.Fatalf("RenderIdeas() error = %v", err)
	}
	for _, want := range []string{"minecraft, shorts", "Propose 5", "trending in MX"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderIdeas() missing %q in %q", want, got)
		}
	}
}

func TestRenderInvalidTemplate(t *testing.T) {
	p := &Prompts{Ideas: IdeaPrompts{Suggest: "{{.Missing"}}
	if _, err := p.RenderIdeas(IdeasParams{}); err == nil {
		t.Error("RenderIdeas() expected error for invalid template")
	}
}
