package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/models"
)

const jsonStoreVersion = 1

// document is the on-disk blob: everything lives in one file.
type document struct {
	Version  int              `json:"version"`
	Settings models.Settings  `json:"settings"`
	Table    models.TimeTable `json:"table"`
}

// JSONStore keeps the table and settings in a single JSON file.
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	settings := models.Settings{}
	models.ApplyDefaultSettings(&settings)
	s.doc = &document{
		Version:  jsonStoreVersion,
		Settings: settings,
		Table:    models.TimeTable{},
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	if s.doc != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d) - please upgrade %s",
			doc.Version, jsonStoreVersion, constants.AppName)
	}
	if doc.Table == nil {
		doc.Table = models.TimeTable{}
	}

	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes to a temp file and renames it over the store.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) loaded() error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	return cloneSettings(s.doc.Settings), nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Settings = cloneSettings(settings)
	return s.save()
}

// cloneSettings copies the preset lists so callers never share them with the document.
func cloneSettings(settings models.Settings) models.Settings {
	settings.ColorPresets = slices.Clone(settings.ColorPresets)
	settings.ActivityCategories = slices.Clone(settings.ActivityCategories)
	return settings
}

// LoadTable returns a copy; later edits to it do not reach the store until SaveTable.
func (s *JSONStore) LoadTable() (models.TimeTable, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return s.doc.Table.Clone(), nil
}

func (s *JSONStore) SaveTable(table models.TimeTable) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Table = table.Clone()
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
