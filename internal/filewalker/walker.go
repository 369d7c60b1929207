package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog/log"
)

// DefaultPattern matches the per-generation species family headers.
const DefaultPattern = "gen_*_families.h"

// Walker discovers species header files in a single directory.
type Walker struct {
	pattern string
	matcher glob.Glob
}

// NewWalker creates a Walker matching base names against pattern.
func NewWalker(pattern string) (*Walker, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	return &Walker{pattern: pattern, matcher: g}, nil
}

// FileEntry represents a discovered file ready for processing.
type FileEntry struct {
	Path string
	Name string
}

// Walk lists the files directly under root whose names match the pattern,
// sorted by name. Subdirectories are not descended into.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var entries []FileEntry
	for _, de := range dirEntries {
		if de.IsDir() || !w.matcher.Match(de.Name()) {
			continue
		}
		entries = append(entries, FileEntry{
			Path: filepath.Join(root, de.Name()),
			Name: de.Name(),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	log.Info().Int("count", len(entries)).Str("root", root).Str("pattern", w.pattern).Msg("Discovered files")
	return entries, nil
}

// ReadFile returns the content of a discovered file.
func (w *Walker) ReadFile(entry FileEntry) (string, error) {
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", entry.Name, err)
	}
	return string(data), nil
}
