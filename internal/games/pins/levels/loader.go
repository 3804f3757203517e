package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// ScanResult is the outcome of loading one file from a level directory.
type ScanResult struct {
	Path  string
	Level *Level
	Err   error
}

// Loader handles loading custom levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Scan walks the directory and reports every supported file, valid or not.
func (l *Loader) Scan() ([]ScanResult, error) {
	var results []ScanResult

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		level, err := l.LoadFile(path)
		results = append(results, ScanResult{Path: path, Level: level, Err: err})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: cannot walk %s: %w", l.Root, err)
	}

	return results, nil
}

// LoadAll loads every valid level in the directory, sorted by ID.
func (l *Loader) LoadAll() ([]*Level, error) {
	results, err := l.Scan()
	if err != nil {
		return nil, err
	}

	var out []*Level
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r.Level)
		}
	}

	SortByID(out)
	return out, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: cannot read %s: %w", path, err)
	}

	level, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("levels: cannot parse %s: %w", path, err)
	}
	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id int) (*Level, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(all, func(lvl *Level) bool { return lvl.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("levels: level not found: %d", id)
	}
	return all[i], nil
}

func isSupportedExtension(ext string) bool {
	return slices.Contains(FormatExtensions(), ext)
}

// SortByID orders levels by ID in place.
func SortByID(all []*Level) {
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
}
