// Package lineset loads text files into ordered, trimmed line sequences and
// memoises them for the lifetime of a single scan.
package lineset

import (
	"os"
	"strings"
)

// Cache maps a file path to its previously-loaded line sequence. A Cache is
// not safe for concurrent use — the worker pool gives each worker its own
// Cache rather than sharing one behind a lock, trading a little duplicated
// memory for lock-free reads of otherwise-immutable line data.
type Cache struct {
	files map[string][]string
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{files: make(map[string][]string)}
}

// Load returns the trimmed line sequence for path, reading and splitting the
// file on first request and serving the cached slice thereafter. A read
// failure is never cached, so a later retry (e.g. on a subsequent pair
// involving the same path) will attempt the read again.
func (c *Cache) Load(path string) ([]string, error) {
	if lines, ok := c.files[path]; ok {
		return lines, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	raw := strings.Split(string(content), "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}

	c.files[path] = lines
	return lines, nil
}

// Len returns the number of files currently held in the cache.
func (c *Cache) Len() int {
	return len(c.files)
}
