package infra

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrBlobNotFound is returned when no blob exists under the requested key.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is the host-provided durable storage snapshots are written to.
type BlobStore interface {
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
	Delete(key string) error
}

// FilesystemBlobStore keeps blobs as files under a root directory, writing
// through a temp file + rename so a crash mid-write never corrupts the
// previous blob.
type FilesystemBlobStore struct {
	root string
}

func NewFilesystemBlobStore(root string) (*FilesystemBlobStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &FilesystemBlobStore{root: root}, nil
}

func (s *FilesystemBlobStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	return data, err
}

func (s *FilesystemBlobStore) Put(key string, data []byte) error {
	dst := filepath.Join(s.root, key)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, dst)
}

func (s *FilesystemBlobStore) Delete(key string) error {
	err := os.Remove(filepath.Join(s.root, key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
