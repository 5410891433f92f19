package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONStore keeps every slot in one JSON object on disk, rewritten
// atomically on each Put or Remove.
type JSONStore struct {
	path  string
	slots map[string]string
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Load() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	s.slots = make(map[string]string)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.slots); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if s.slots == nil {
		s.slots = make(map[string]string)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.slots, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := writeFileAtomic(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) (string, bool, error) {
	if s.slots == nil {
		return "", false, fmt.Errorf("storage not loaded")
	}
	value, ok := s.slots[key]
	return value, ok, nil
}

func (s *JSONStore) Put(key, value string) error {
	if s.slots == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.slots[key] = value
	return s.save()
}

func (s *JSONStore) Remove(key string) error {
	if s.slots == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.slots[key]; !ok {
		return nil
	}
	delete(s.slots, key)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
