package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"rematierra/internal/listing"
)

// ExpandHome resolves a leading ~/ against the user's home directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// Load reads and decodes a local dataset file. A missing file is an
// error; callers distinguish it with os.IsNotExist.
func Load(path string) (*listing.Dataset, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	ds, err := listing.DecodeDataset(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return ds, nil
}

// Save writes records to path in the envelope form, creating parent
// directories. Records are sorted by publication date descending, ties by
// ID, the order the dataset has always been persisted in.
func Save(path string, records []*listing.Listing) error {
	path, err := ExpandHome(path)
	if err != nil {
		return err
	}

	sorted := make([]*listing.Listing, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i].FechaPublicacion, sorted[j].FechaPublicacion
		if di != dj {
			return di > dj
		}
		return sorted[i].ID > sorted[j].ID
	})

	ds := &listing.Dataset{
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		Records:   sorted,
	}

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating dataset directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	return nil
}

// Merge combines two record lists, deduplicating by ID with newer records
// winning. New records come first, then surviving old ones, both in their
// original order.
func Merge(old, new []*listing.Listing) []*listing.Listing {
	seen := make(map[string]bool, len(new))
	merged := make([]*listing.Listing, 0, len(old)+len(new))

	for _, rec := range new {
		if rec.ID != "" && seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		merged = append(merged, rec)
	}
	for _, rec := range old {
		if rec.ID != "" && seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		merged = append(merged, rec)
	}

	return merged
}
