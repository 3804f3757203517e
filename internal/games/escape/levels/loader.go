// Package levels provides the built-in escape levels and loading of custom
// level directories. This package depends on puzzle but puzzle does not
// depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-puzzles/internal/games/escape/puzzle"
)

//go:embed data/*.yaml
var builtinFS embed.FS

var (
	builtinOnce   sync.Once
	builtinLevels []*puzzle.LevelConfig
	builtinErr    error
)

// Builtin returns the embedded levels sorted by ID.
// Callers must not modify the returned levels.
func Builtin() ([]*puzzle.LevelConfig, error) {
	builtinOnce.Do(func() {
		builtinLevels, builtinErr = loadFS(builtinFS, "data")
	})
	return builtinLevels, builtinErr
}

func loadFS(fsys fs.FS, dir string) ([]*puzzle.LevelConfig, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("levels: cannot read embedded levels: %w", err)
	}

	var out []*puzzle.LevelConfig
	for _, e := range entries {
		if e.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		data, err := fs.ReadFile(fsys, dir+"/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("levels: cannot read %s: %w", e.Name(), err)
		}
		level, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("levels: cannot parse %s: %w", e.Name(), err)
		}
		out = append(out, level)
	}

	SortByID(out)
	return out, nil
}

// ScanResult is the outcome of loading one file from a level directory.
type ScanResult struct {
	Path  string
	Level *puzzle.LevelConfig
	Err   error
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Scan walks the directory and reports every supported file, valid or not.
// Results are ordered by path.
func (l *Loader) Scan() ([]ScanResult, error) {
	var results []ScanResult

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
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
// Invalid files are skipped; use Scan to see them.
func (l *Loader) LoadAll() ([]*puzzle.LevelConfig, error) {
	results, err := l.Scan()
	if err != nil {
		return nil, err
	}

	var out []*puzzle.LevelConfig
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r.Level)
		}
	}

	SortByID(out)
	return out, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (*puzzle.LevelConfig, error) {
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
func (l *Loader) LoadByID(id int) (*puzzle.LevelConfig, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	return Find(all, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]int, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	return IDs(all), nil
}

// Find returns the level with the given ID.
func Find(all []*puzzle.LevelConfig, id int) (*puzzle.LevelConfig, error) {
	i := slices.IndexFunc(all, func(l *puzzle.LevelConfig) bool { return l.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("levels: level not found: %d", id)
	}
	return all[i], nil
}

// IDs lists the IDs of the given levels in order.
func IDs(all []*puzzle.LevelConfig) []int {
	ids := make([]int, len(all))
	for i, lvl := range all {
		ids[i] = lvl.ID
	}
	return ids
}

// SortByID orders levels by ID in place.
func SortByID(all []*puzzle.LevelConfig) {
	sort.Slice(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})
}

func isSupportedExtension(ext string) bool {
	return slices.Contains(FormatExtensions(), ext)
}
