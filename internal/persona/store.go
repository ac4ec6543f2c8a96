package persona

import (
	"context"
	"fmt"
	"os"

	"github.com/xaenox/pathway-assist/internal/models"
	"gopkg.in/yaml.v3"
)

// Store provides the candidate archetype set for persona detection.
type Store interface {
	ListAll(ctx context.Context) ([]models.PersonaRecord, error)
}

// StaticStore serves a fixed candidate set. Used in tests and as the
// fallback when no fixture file is configured.
type StaticStore struct {
	records []models.PersonaRecord
}

func NewStaticStore(records []models.PersonaRecord) *StaticStore {
	return &StaticStore{records: records}
}

func (s *StaticStore) ListAll(ctx context.Context) ([]models.PersonaRecord, error) {
	return s.records, nil
}

// FileStore loads archetype records from a YAML fixture file once at
// startup. Records are immutable for the life of the process.
type FileStore struct {
	records []models.PersonaRecord
}

type personaFile struct {
	Personas []models.PersonaRecord `yaml:"personas"`
}

func NewFileStore(path string) (*FileStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading persona file: %w", err)
	}

	var file personaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing persona file: %w", err)
	}

	return &FileStore{records: file.Personas}, nil
}

func (s *FileStore) ListAll(ctx context.Context) ([]models.PersonaRecord, error) {
	return s.records, nil
}
