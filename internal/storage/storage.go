// Package storage persists run state between invocations: the
// processed-shows snapshot and the travel-route cache, both as JSON files
// in the data directory.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/laurab04-design/fossedata-render/internal/show"
	"github.com/laurab04-design/fossedata-render/internal/travel"
)

const (
	processedFile   = "processed_shows.json"
	travelCacheFile = "travel_cache.json"
	showLinksFile   = "show_links.txt"
)

// Storage handles persistence of snapshots in a single data directory.
type Storage struct {
	dataDir string
}

// New creates a Storage rooted at dataDir, creating the directory if needed.
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// LoadProcessed loads the processed-shows snapshot, keyed by show URL.
// A missing snapshot is an empty map, not an error.
func (s *Storage) LoadProcessed() (map[string]*show.Result, error) {
	path := filepath.Join(s.dataDir, processedFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]*show.Result), nil
		}
		return nil, fmt.Errorf("reading processed shows: %w", err)
	}

	var processed map[string]*show.Result
	if err := json.Unmarshal(data, &processed); err != nil {
		return nil, fmt.Errorf("parsing processed shows: %w", err)
	}
	if processed == nil {
		processed = make(map[string]*show.Result)
	}

	// Restore parsed dates from the serialized date text.
	for _, r := range processed {
		if r != nil && r.DateText != "" {
			r.Date = show.ParseDate(r.DateText)
		}
	}

	return processed, nil
}

// SaveProcessed writes the processed-shows snapshot to disk.
func (s *Storage) SaveProcessed(processed map[string]*show.Result) error {
	data, err := json.MarshalIndent(processed, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding processed shows: %w", err)
	}

	path := filepath.Join(s.dataDir, processedFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing processed shows: %w", err)
	}
	return nil
}

// LoadTravelCache loads the route cache from disk. The TTL is excluded from
// JSON and restored here.
func (s *Storage) LoadTravelCache() (*travel.Cache, error) {
	path := filepath.Join(s.dataDir, travelCacheFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return travel.NewCache(), nil
		}
		return nil, fmt.Errorf("reading travel cache: %w", err)
	}

	var cache travel.Cache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing travel cache: %w", err)
	}

	if cache.Routes == nil {
		return travel.NewCache(), nil
	}
	if cache.CachedAt == nil {
		cache.CachedAt = make(map[string]time.Time)
	}
	cache.TTL = travel.DefaultTTL

	return &cache, nil
}

// LoadShowLinks reads the saved show-link list, one URL per line.
// A missing file is an empty list.
func (s *Storage) LoadShowLinks() ([]string, error) {
	path := filepath.Join(s.dataDir, showLinksFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading show links: %w", err)
	}

	links := make([]string, 0)
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			links = append(links, line)
		}
	}
	return links, nil
}

// SaveShowLinks writes the show-link list, one URL per line.
func (s *Storage) SaveShowLinks(links []string) error {
	path := filepath.Join(s.dataDir, showLinksFile)
	data := strings.Join(links, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("writing show links: %w", err)
	}
	return nil
}

// SaveTravelCache writes the route cache to disk.
func (s *Storage) SaveTravelCache(cache *travel.Cache) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding travel cache: %w", err)
	}

	path := filepath.Join(s.dataDir, travelCacheFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing travel cache: %w", err)
	}
	return nil
}
