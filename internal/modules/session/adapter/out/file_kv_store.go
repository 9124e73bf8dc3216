package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	sessionout "studyclock/internal/modules/session/port/out"
	apperrors "studyclock/internal/platform/errors"
)

var validKey = regexp.MustCompile(`^[a-z0-9_-]+$`)

// FileKVStore keeps one JSON file per key.
type FileKVStore struct {
	dir string
}

func NewFileKVStore(dir string) sessionout.KeyValueStore {
	return &FileKVStore{dir: dir}
}

func (s *FileKVStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return nil, false, err
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return payload, true, nil
}

// Set writes through a temp file and rename so readers never see a partial value.
func (s *FileKVStore) Set(_ context.Context, key string, value []byte) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", key, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

func (s *FileKVStore) Remove(_ context.Context, key string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (s *FileKVStore) pathFor(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("%w: store key %q", apperrors.ErrInvalidInput, key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
