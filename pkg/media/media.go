package media

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	UploadsDir = "uploads"
	QRCodeDir  = "qrcodes"
)

// Store keeps member photos and generated code images on the local
// filesystem under a single root directory. References handed back to
// callers are root-relative paths like "/uploads/member-….jpg", which is
// also what gets persisted on the member record.
type Store struct {
	root string
}

func New(root string) (*Store, error) {
	for _, dir := range []string{UploadsDir, QRCodeDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create media directory %s: %w", dir, err)
		}
	}
	return &Store{root: root}, nil
}

// Save writes content under dir/name atomically (temp file + rename) and
// returns the reference for the stored file.
func (s *Store) Save(dir, name string, content []byte) (string, error) {
	target := filepath.Join(s.root, dir, name)

	tmp, err := os.CreateTemp(filepath.Join(s.root, dir), ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close media file: %w", err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store media file: %w", err)
	}

	return "/" + dir + "/" + name, nil
}

// SavePhoto stores an uploaded photo under a collision-resistant filename.
func (s *Store) SavePhoto(ext string, content []byte) (string, error) {
	name := fmt.Sprintf("member-%d-%09d%s", time.Now().UnixMilli(), rand.Intn(1e9), ext)
	return s.Save(UploadsDir, name, content)
}

// Path resolves a stored reference to an absolute filesystem path. It
// rejects references that would escape the media root.
func (s *Store) Path(ref string) (string, error) {
	cleaned := filepath.Clean("/" + strings.TrimPrefix(ref, "/"))
	if cleaned == "/" || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid media reference: %q", ref)
	}
	return filepath.Join(s.root, cleaned), nil
}

// Remove unlinks a stored file. Removing a reference that no longer
// exists, or an empty reference, is not an error.
func (s *Store) Remove(ref string) error {
	if ref == "" {
		return nil
	}

	path, err := s.Path(ref)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove media file: %w", err)
	}
	return nil
}
