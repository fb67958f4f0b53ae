package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/macrolens/nutrilookup/internal/domain"
)

// FileStore persists cache entries as a single JSON object on disk.
// The file is read fresh on every Load and rewritten in full on every Save;
// the mutex makes the read-modify-write of Save atomic across goroutines.
type FileStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

// NewFileStore creates a file-backed cache at path. The file need not exist yet.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{
		path:   path,
		logger: logger.Named("cache"),
	}
}

// Path returns the backing file location
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the backing file. A missing, unreadable, or malformed file
// reads as an empty mapping.
func (s *FileStore) Load(ctx context.Context) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		s.logger.Warn("treating cache as empty", zap.String("path", s.path), zap.Error(err))
	}
	return entries
}

// Save inserts or overwrites one entry and rewrites the whole file
func (s *FileStore) Save(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		s.logger.Warn("replacing unreadable cache file", zap.String("path", s.path), zap.Error(err))
	}
	entries[key] = value

	if err := s.write(entries); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheWriteFailed, err)
	}
	return nil
}

// read always returns a usable map; the error only explains why it is empty
func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return map[string]string{}, err
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return map[string]string{}, fmt.Errorf("%w: %v", domain.ErrCacheCorrupt, err)
	}
	if entries == nil {
		entries = map[string]string{}
	}
	return entries, nil
}

// write replaces the backing file via a temp file and rename so readers
// never observe a partially written document
func (s *FileStore) write(entries map[string]string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	return nil
}
