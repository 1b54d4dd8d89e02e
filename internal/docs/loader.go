// Package docs feeds plain-text files from a directory into the index: a
// one-shot loader for startup and an fsnotify watcher that picks up files
// dropped into the directory afterwards.
package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IndexFunc receives a document name and its full text and returns the
// assigned document id.
type IndexFunc func(name, text string) int

// LoadDir indexes every .txt file directly inside dir, in lexical filename
// order so document ids are deterministic across runs. A missing directory
// is not an error; it just loads nothing. Returns the number of documents
// indexed.
func LoadDir(dir string, index IndexFunc) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read docs directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	loaded := 0
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return loaded, fmt.Errorf("read document %s: %w", name, err)
		}
		index(name, string(content))
		loaded++
	}
	return loaded, nil
}
