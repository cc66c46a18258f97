package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type LocalStorage struct {
	outputDir string
}

func NewLocalStorage(outputDir string) *LocalStorage {
	return &LocalStorage{outputDir: outputDir}
}

func (s *LocalStorage) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := s.EnsureDir(); err != nil {
		return "", err
	}

	path := filepath.Join(s.outputDir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

func (s *LocalStorage) EnsureDir() error {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}
