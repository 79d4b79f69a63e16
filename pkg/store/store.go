// Package store persists pipeline artifacts as flat JSON files, one record
// per file. Each stage owns one directory; records are connected across
// directories only by the shared key (the filename stem).
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/google/uuid"

	"github.com/vualidon/FoodRecallReportAgent/pkg/domain"
)

// Store is a single-directory JSON blob store keyed by filename stem.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create store dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's directory
func (s *Store) Dir() string { return s.dir }

// Save writes v as an indented JSON file under key. Writes are retried with
// a short backoff to ride out transient filesystem errors.
func (s *Store) Save(ctx context.Context, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err = retrier.Do(ctx, func() error {
		return os.WriteFile(s.path(key), data, 0o600)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Load reads the JSON record stored under key into out.
func (s *Store) Load(key string, out any) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

// Keys lists all record keys in the store, sorted for deterministic order.
func (s *Store) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list store dir %s: %w", s.dir, err)
	}

	var keys []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// NewKey generates a storage key for a freshly collected record:
// {source}_{timestamp}_{uuid}, lowercased source.
func NewKey(source domain.Source, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s", strings.ToLower(string(source)), now.Format("20060102150405"), uuid.New().String())
}

// KeyFromPath derives the storage key from a file path, the filename without
// its extension. Bare keys pass through unchanged.
func KeyFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
