package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// Reports writes finished Markdown reports into a flat directory.
type Reports struct {
	dir string
}

// NewReports creates a Reports writer rooted at dir, creating the directory
// if needed.
func NewReports(dir string) (*Reports, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create reports dir %s: %w", dir, err)
	}
	return &Reports{dir: dir}, nil
}

// Write stores a report body under name and returns the full path. Writes
// are retried with the same short backoff as record saves.
func (r *Reports) Write(ctx context.Context, name, body string) (string, error) {
	path := filepath.Join(r.dir, name)

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		return os.WriteFile(path, []byte(body), 0o600)
	})
	if err != nil {
		return "", fmt.Errorf("write report %s: %w", name, err)
	}
	return path, nil
}
