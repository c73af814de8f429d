package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DiskReceiptStore keeps receipt files under a local directory that the
// router serves at baseURL.
type DiskReceiptStore struct {
	root    string
	baseURL string
}

func NewDiskReceiptStore(root, baseURL string) *DiskReceiptStore {
	return &DiskReceiptStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *DiskReceiptStore) path(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid receipt key %q", key)
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func (s *DiskReceiptStore) Put(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(p)
		return fmt.Errorf("write receipt: %w", err)
	}
	return f.Close()
}

func (s *DiskReceiptStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *DiskReceiptStore) URL(key string) string {
	return s.baseURL + "/" + key
}
