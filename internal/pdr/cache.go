package pdr

import (
	"sync"

	"go.uber.org/zap"
)

// Enricher decorates a freshly loaded table before it is shared.
type Enricher func(*Table)

// Cache memoises the one-shot load of the project table. The table is loaded
// on first use and reused until Reload. Failed loads are not remembered.
type Cache struct {
	path   string
	delim  rune
	enrich []Enricher
	log    *zap.Logger

	mu    sync.Mutex
	table *Table
}

// NewCache returns a cache over the table at path.
func NewCache(path string, delim rune, log *zap.Logger, enrich ...Enricher) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{path: path, delim: delim, enrich: enrich, log: log}
}

// Path returns the source path.
func (c *Cache) Path() string {
	return c.path
}

// Table returns the memoised table, loading it if needed.
func (c *Cache) Table() (*Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table != nil {
		return c.table, nil
	}

	t, err := Load(c.path, c.delim)
	if err != nil {
		c.log.Warn("project table load failed", zap.String("path", c.path), zap.Error(err))
		return nil, err
	}
	for _, enrich := range c.enrich {
		enrich(t)
	}

	c.log.Info("project table loaded",
		zap.String("path", c.path),
		zap.Int("projects", t.Len()),
		zap.Bool("located", t.Located))

	c.table = t
	return t, nil
}

// Reload drops the memoised table; the next call to Table reads the source
// again.
func (c *Cache) Reload() {
	c.mu.Lock()
	c.table = nil
	c.mu.Unlock()
	c.log.Info("project table cache cleared", zap.String("path", c.path))
}
