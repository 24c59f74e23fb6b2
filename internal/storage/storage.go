package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ArtifactStore provides slug-addressed file storage for generated recipe
// artifacts: a machine-readable JSON document plus a companion HTML page.
type ArtifactStore struct {
	basePath string
}

// NewArtifactStore creates a new ArtifactStore and ensures the base directory exists.
func NewArtifactStore(basePath string) (*ArtifactStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &ArtifactStore{basePath: basePath}, nil
}

func (s *ArtifactStore) jsonPath(slug string) string {
	return filepath.Join(s.basePath, slug+".json")
}

func (s *ArtifactStore) htmlPath(slug string) string {
	return filepath.Join(s.basePath, slug+".html")
}

// SaveJSON stores the machine-readable artifact for a slug.
func (s *ArtifactStore) SaveJSON(slug string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	if err := os.WriteFile(s.jsonPath(slug), data, 0644); err != nil {
		return fmt.Errorf("failed to write artifact file: %w", err)
	}
	return nil
}

// SaveHTML stores the HTML artifact for a slug.
func (s *ArtifactStore) SaveHTML(slug, html string) error {
	if err := os.WriteFile(s.htmlPath(slug), []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write html file: %w", err)
	}
	return nil
}

// LoadJSON reads the machine-readable artifact for a slug into v.
func (s *ArtifactStore) LoadJSON(slug string, v any) error {
	data, err := os.ReadFile(s.jsonPath(slug))
	if err != nil {
		return fmt.Errorf("failed to read artifact file: %w", err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal artifact: %w", err)
	}
	return nil
}

// Exists checks if the artifact pair for a slug exists.
func (s *ArtifactStore) Exists(slug string) bool {
	_, err := os.Stat(s.jsonPath(slug))
	return !os.IsNotExist(err)
}
