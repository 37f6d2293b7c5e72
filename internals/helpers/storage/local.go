package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage menulis file ke direktori upload lokal dan melayani lewat
// /public/uploads (static handler di main.go).
type LocalStorage struct {
	Dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &LocalStorage{Dir: dir}, nil
}

func (s *LocalStorage) Store(_ context.Context, filename string, data []byte) (string, error) {
	// filename sudah dibuat unik oleh pemanggil; buang komponen path untuk jaga-jaga
	base := filepath.Base(filename)
	target := filepath.Join(s.Dir, base)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	return "/public/uploads/" + base, nil
}

func (s *LocalStorage) Delete(_ context.Context, publicURL string) error {
	base := filepath.Base(publicURL)
	if base == "" || base == "." || base == "/" {
		return fmt.Errorf("invalid url %q", publicURL)
	}
	err := os.Remove(filepath.Join(s.Dir, base))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
