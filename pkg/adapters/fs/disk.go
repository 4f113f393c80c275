package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/softgrid/tabula/pkg/core"
)

// Config holds the configuration for the disk-backed file store.
type Config struct {
	// Root is the workspace directory holding all data and localization
	// files. Created on first write when missing.
	Root string
	// MustExist refuses to operate on a missing root instead of creating it.
	MustExist bool
	// Logger receives read/write diagnostics. Nil disables logging.
	Logger *slog.Logger
}

// Store is a disk-backed core.FileStore. Logical names are
// slash-separated paths relative to the root; writes are atomic
// (temp file plus rename) so a crash never leaves a half-written table.
type Store struct {
	root   string
	config Config

	mu     sync.Mutex
	reads  int64
	writes int64
}

// NewStore creates a disk store rooted at config.Root.
func NewStore(config Config) (*Store, error) {
	if config.Root == "" {
		return nil, fmt.Errorf("fs: root directory not set")
	}
	if config.MustExist {
		info, err := os.Stat(config.Root)
		if err != nil {
			return nil, fmt.Errorf("fs: root %s: %w", config.Root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("fs: root %s is not a directory", config.Root)
		}
	}
	return &Store{root: config.Root, config: config}, nil
}

// Root returns the workspace directory.
func (s *Store) Root() string { return s.root }

// resolve maps a logical name onto the disk, refusing paths that would
// escape the root.
func (s *Store) resolve(name string) (string, error) {
	if name == "" || !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", fmt.Errorf("fs: invalid name %q", name)
	}
	return filepath.Join(s.root, filepath.FromSlash(name)), nil
}

// ReadFile implements core.FileStore.
func (s *Store) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fs: read %s: %w", name, err)
	}
	s.mu.Lock()
	s.reads++
	s.mu.Unlock()
	if s.config.Logger != nil {
		s.config.Logger.Debug("read file", "name", name, "bytes", len(data))
	}
	return data, nil
}

// WriteFile implements core.FileStore. Parent directories are created as
// needed and the write lands atomically.
func (s *Store) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("fs: create directories for %s: %w", name, err)
	}
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("fs: write %s: %w", name, err)
	}
	s.mu.Lock()
	s.writes++
	s.mu.Unlock()
	if s.config.Logger != nil {
		s.config.Logger.Debug("wrote file", "name", name, "bytes", len(data))
	}
	return nil
}

// Exists implements core.FileStore.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	path, err := s.resolve(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("fs: stat %s: %w", name, err)
}

// Remove implements core.FileStore. A missing file is not an error.
func (s *Store) Remove(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("fs: remove %s: %w", name, err)
	}
	if s.config.Logger != nil {
		s.config.Logger.Debug("removed file", "name", name)
	}
	return nil
}

// StoreState exposes internal state for observability.
type StoreState struct {
	Root   string `json:"root"`
	Reads  int64  `json:"reads"`
	Writes int64  `json:"writes"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StoreState{Root: s.root, Reads: s.reads, Writes: s.writes}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "disk-store"
}

var _ core.FileStore = (*Store)(nil)
var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
