package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage defines the interface for machine image storage backends.
// The local implementation keeps files on disk and serves them back
// through the HTTP API; a cloud backend could replace it later.
type Storage interface {
	// SaveFile stores the file contents under key
	SaveFile(key string, reader io.Reader) error

	// ReadFile opens a stored file for reading
	ReadFile(key string) (io.ReadCloser, error)

	// DeleteFile removes a file; deleting a missing file is not an error
	DeleteFile(key string) error

	// FileExists checks if a file exists and returns its size
	FileExists(key string) (exists bool, size int64, err error)

	// PublicURL returns the URL the file is served from
	PublicURL(key string) string
}

// LocalStorage implements image storage using the local filesystem
type LocalStorage struct {
	baseURL   string // Server URL (e.g., "http://localhost:8080")
	imagesDir string // Local directory for machine images
}

// NewLocalStorage creates a filesystem-backed storage rooted at uploadsDir
func NewLocalStorage(baseURL, uploadsDir string) (*LocalStorage, error) {
	imagesDir := filepath.Join(uploadsDir, "images")

	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}

	return &LocalStorage{
		baseURL:   baseURL,
		imagesDir: imagesDir,
	}, nil
}

func (s *LocalStorage) SaveFile(key string, reader io.Reader) error {
	fullPath := filepath.Join(s.imagesDir, filepath.Clean(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func (s *LocalStorage) ReadFile(key string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.imagesDir, filepath.Clean(key))

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

func (s *LocalStorage) DeleteFile(key string) error {
	fullPath := filepath.Join(s.imagesDir, filepath.Clean(key))

	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

func (s *LocalStorage) FileExists(key string) (bool, int64, error) {
	fullPath := filepath.Join(s.imagesDir, filepath.Clean(key))

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}

	return true, info.Size(), nil
}

func (s *LocalStorage) PublicURL(key string) string {
	return fmt.Sprintf("%s/api/v1/images/%s", s.baseURL, key)
}
