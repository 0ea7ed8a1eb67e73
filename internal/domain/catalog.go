package domain

import (
	"sync"

	"modepack.dev/pkg/modepack/internal/adapter"
	m "modepack.dev/pkg/modepack/internal/model"
)

// LevelCatalog is the shared, additive name -> Level index. The first entry
// recorded under a name wins, so built-in levels merged at construction are
// never shadowed by bundle levels. Merges are serialised by a single lock.
type LevelCatalog struct {
	mu     sync.RWMutex
	levels []m.Level
	index  map[string]int
}

// NewLevelCatalog seeds a catalog with the built-in levels.
func NewLevelCatalog(builtin []m.Level) *LevelCatalog {
	c := &LevelCatalog{index: make(map[string]int, len(builtin))}
	c.Merge(builtin)

	return c
}

// Merge adds the levels whose names are not yet known and returns how many
// were added.
func (c *LevelCatalog) Merge(levels []m.Level) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	added := 0

	for _, level := range levels {
		if _, ok := c.index[level.Name]; ok {
			continue
		}

		c.index[level.Name] = len(c.levels)
		c.levels = append(c.levels, level)
		added++
	}

	return added
}

// Lookup returns the level recorded under name.
func (c *LevelCatalog) Lookup(name string) (m.Level, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[name]
	if !ok {
		return m.Level{}, false
	}

	return c.levels[i], true
}

// Levels returns a copy of the catalog in insertion order.
func (c *LevelCatalog) Levels() []m.Level {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]m.Level, len(c.levels))
	copy(out, c.levels)

	return out
}

// FindLevelsByName returns the level called name plus its "name_" family.
func (c *LevelCatalog) FindLevelsByName(name string) []m.Level {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return adapter.FilterLevelFamily(c.levels, name)
}

// Len returns the number of known levels.
func (c *LevelCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.levels)
}
