// Package drafts keeps unsaved form state as YAML files so a rejected save
// can be retried from the command line.
package drafts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

const (
	lockTimeout   = 3 * time.Second
	retryInterval = 100 * time.Millisecond
)

// Store reads and writes one draft file per form kind under dir. Writers
// on the same kind are serialized with a lock file so two shells do not
// interleave.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// Path is where the draft of kind lives.
func (s *Store) Path(kind string) string {
	return filepath.Join(s.dir, kind+".yaml")
}

// Save writes v as the draft of kind and returns the file path.
func (s *Store) Save(ctx context.Context, kind string, v any) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create drafts dir: %w", err)
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode %s draft: %w", kind, err)
	}
	path := s.Path(kind)
	unlock, err := s.lock(ctx, path)
	if err != nil {
		return "", err
	}
	defer unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s draft: %w", kind, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("replace %s draft: %w", kind, err)
	}
	return path, nil
}

// Load decodes the draft of kind into v. It reports false when there is none.
func (s *Store) Load(ctx context.Context, kind string, v any) (bool, error) {
	path := s.Path(kind)
	unlock, err := s.lock(ctx, path)
	if err != nil {
		return false, err
	}
	defer unlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s draft: %w", kind, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parse %s draft: %w", kind, err)
	}
	return true, nil
}

// Discard removes the draft of kind after a successful save.
func (s *Store) Discard(ctx context.Context, kind string) error {
	path := s.Path(kind)
	unlock, err := s.lock(ctx, path)
	if err != nil {
		return err
	}
	defer unlock()
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s draft: %w", kind, err)
	}
	return nil
}

func (s *Store) lock(ctx context.Context, path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create drafts dir: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	fl := flock.New(path + ".lock")
	locked, err := fl.TryLockContext(ctx, retryInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire draft lock: %w", err)
	}
	if !locked {
		return nil, errors.New("could not acquire draft lock")
	}
	return func() { _ = fl.Unlock() }, nil
}

// ReadFile decodes a YAML (or JSON) document from path into v.
func ReadFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
