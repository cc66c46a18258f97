package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorageSave(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "exports")
	s := NewLocalStorage(tmpDir)

	data := []byte("Title,Views\nfoo,1\n")
	path, err := s.Save(context.Background(), "trending.csv", data)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if path != filepath.Join(tmpDir, "trending.csv") {
		t.Errorf("Save() path = %q", path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("saved %q, want %q", got, data)
	}
}

func TestLocalStorageSaveStripsDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	s := NewLocalStorage(tmpDir)

	path, err := s.Save(context.Background(), "../../escape.json", []byte("[]"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if filepath.Dir(path) != tmpDir {
		t.Errorf("Save() wrote outside output dir: %q", path)
	}
}

func TestLocalStorageSaveBadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	s := NewLocalStorage(filepath.Join(file, "sub"))
	if _, err := s.Save(context.Background(), "x.csv", []byte("x")); err == nil {
		t.Error("Save() expected error when output dir cannot be created")
	}
}

func TestObjectName(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		file   string
		want   string
	}{
		{name: "noPrefix", prefix: "", file: "a.csv", want: "a.csv"},
		{name: "prefix", prefix: "exports", file: "a.csv", want: "exports/a.csv"},
		{name: "trailingSlash", prefix: "exports/", file: "a.csv", want: "exports/a.csv"},
		{name: "nestedName", prefix: "exports", file: "tmp/a.csv", want: "exports/a.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ObjectName(tt.prefix, tt.file); got != tt.want {
				t.Errorf("ObjectName(%q, %q) = %q, want %q", tt.prefix, tt.file, got, tt.want)
			}
		})
	}
}
