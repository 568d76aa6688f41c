// Package store provides the durable local key-value store wrapping the
// device filesystem. Each collection is a single JSON blob under its own
// key; callers own serialization of their records.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Well-known collection keys. Exact strings are part of the on-disk layout
// and must not change between releases.
const (
	KeyOfflineTransactions = "offline_transactions"
	KeyAuthUser            = "npwallet_auth_user"
	KeyAuthSession         = "npwallet_auth_session"
	KeyLastOnlineCheck     = "npwallet_last_online_auth"
	KeyThemePreference     = "npwallet_theme"
)

// FileStore persists each key as one file under a data directory.
// All operations are serialized by an internal mutex so concurrent callers
// never observe a torn file, though read-modify-write sequences built on
// top of it are not transactional.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the data directory if needed and returns a store
// rooted at it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key+".json")
}

// Read returns the stored bytes for key. A missing key yields (nil, false, nil).
func (fs *FileStore) Read(key string) ([]byte, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	b, err := os.ReadFile(fs.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return b, true, nil
}

// Write replaces the stored bytes for key. The write goes through a temp
// file and rename so a crash mid-write never leaves a half-written blob.
func (fs *FileStore) Write(key string, data []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	tmp := fs.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, fs.path(key)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Clear removes every given key as a single outcome: all removals are
// attempted even if one fails, and any individual failure makes the whole
// operation fail. Missing keys are not an error.
func (fs *FileStore) Clear(keys ...string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	var errs []error
	for _, key := range keys {
		if err := os.Remove(fs.path(key)); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("clear %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}
