package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"hookcord/pkg/logger"
)

// FileStore is a file-based key-value store with atomic writes.
type FileStore struct {
	log      *logger.Logger
	filePath string
	data     map[string]interface{}
	mu       sync.RWMutex
}

// FileStoreConfig configures the file store.
type FileStoreConfig struct {
	FilePath string // Path to state file
}

// NewFileStore creates a new file-based state store.
func NewFileStore(log *logger.Logger, cfg *FileStoreConfig) (*FileStore, error) {
	dir := filepath.Dir(cfg.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	s := &FileStore{
		log:      log,
		filePath: cfg.FilePath,
		data:     make(map[string]interface{}),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	return s, nil
}

// Get retrieves a value from the store.
func (s *FileStore) Get(ctx context.Context, key string) (interface{}, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.data[key]
	return value, exists, nil
}

// GetString retrieves a string value.
func (s *FileStore) GetString(ctx context.Context, key string) (string, bool, error) {
	value, exists, err := s.Get(ctx, key)
	if err != nil || !exists {
		return "", false, err
	}

	str, ok := value.(string)
	return str, ok, nil
}

// GetMap retrieves a map value.
func (s *FileStore) GetMap(ctx context.Context, key string) (map[string]interface{}, bool, error) {
	value, exists, err := s.Get(ctx, key)
	if err != nil || !exists {
		return nil, false, err
	}

	m, ok := value.(map[string]interface{})
	return m, ok, nil
}

// Set stores a value.
func (s *FileStore) Set(ctx context.Context, key string, value interface{}) error {
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()

	return s.save()
}

// Delete removes a value.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()

	return s.save()
}

// Keys returns all keys in the store.
func (s *FileStore) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

// Exists checks if a key exists.
func (s *FileStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.data[key]
	return exists, nil
}

// Clear removes all data from the store.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.data = make(map[string]interface{})
	s.mu.Unlock()

	return s.save()
}

// load reads state from disk.
func (s *FileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &s.data); err != nil {
		return fmt.Errorf("unmarshaling state: %w", err)
	}

	s.log.Info("Loaded state", zap.String("file", s.filePath), zap.Int("keys", len(s.data)))
	return nil
}

// save persists state to disk via a temp file rename.
func (s *FileStore) save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.data, "", "  ")
	s.mu.RUnlock()

	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("writing temp state file: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		return fmt.Errorf("renaming temp state file: %w", err)
	}

	return nil
}

// Close performs a final save.
func (s *FileStore) Close() error {
	return s.save()
}
