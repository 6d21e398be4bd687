package cache

import (
	"fmt"
	"log/slog"
	"sync"
)

// Storage selects the backing store for a region.
type Storage string

const (
	// StorageMemory keeps region entries in process memory.
	StorageMemory Storage = "memory"
	// StorageSQLite persists region entries in the cache's SQLite store.
	StorageSQLite Storage = "sqlite"
)

// RegionOptions declares one region of a cache.
type RegionOptions struct {
	// Name is the region's unique name.
	Name string

	// Storage selects the backing store. Default: StorageMemory.
	Storage Storage
}

// Options configures a cache.
type Options struct {
	// Regions are the regions created at cache construction.
	Regions []RegionOptions

	// DBPath is the SQLite database file used by sqlite-backed regions.
	// Required when any region uses StorageSQLite.
	DBPath string
}

// Cache is an embedded data-grid cache: a set of named regions plus the
// security service that guards them. Construct the cache before running
// security activation; activation refuses to run against a nil or
// closed cache.
type Cache struct {
	mu       sync.RWMutex
	regions  map[string]Region
	store    *SQLiteStore
	security *SecurityService
	closed   bool
	logger   *slog.Logger
}

// New creates a cache with the declared regions.
func New(opts Options) (*Cache, error) {
	c := &Cache{
		regions:  make(map[string]Region),
		security: NewSecurityService(),
		logger:   slog.Default().With("component", "cache"),
	}

	for _, regionOpts := range opts.Regions {
		if regionOpts.Name == "" {
			return nil, fmt.Errorf("region name cannot be empty")
		}
		if _, ok := c.regions[regionOpts.Name]; ok {
			return nil, fmt.Errorf("duplicate region %q", regionOpts.Name)
		}

		region, err := c.buildRegion(regionOpts, opts.DBPath)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.regions[regionOpts.Name] = instrument(region)
	}

	c.logger.Info("cache created", "regions", len(c.regions))
	return c, nil
}

// buildRegion constructs one region, opening the shared SQLite store on
// first use.
func (c *Cache) buildRegion(opts RegionOptions, dbPath string) (Region, error) {
	switch opts.Storage {
	case StorageMemory, "":
		return NewMemoryRegion(opts.Name), nil

	case StorageSQLite:
		if c.store == nil {
			if dbPath == "" {
				return nil, fmt.Errorf("region %q requires a db path for sqlite storage", opts.Name)
			}
			store, err := OpenSQLiteStore(dbPath)
			if err != nil {
				return nil, fmt.Errorf("failed to open sqlite store: %w", err)
			}
			c.store = store
		}
		return c.store.Region(opts.Name), nil

	default:
		return nil, fmt.Errorf("unsupported storage %q for region %q", opts.Storage, opts.Name)
	}
}

// Region returns the region with the given name.
func (c *Cache) Region(name string) (Region, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, fmt.Errorf("cache is closed")
	}

	region, ok := c.regions[name]
	if !ok {
		return nil, fmt.Errorf("region %q not found", name)
	}
	return region, nil
}

// RegionNames returns the names of all regions.
func (c *Cache) RegionNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.regions))
	for name := range c.regions {
		names = append(names, name)
	}
	return names
}

// SecurityService returns the cache's security service singleton.
func (c *Cache) SecurityService() *SecurityService {
	return c.security
}

// Closed reports whether the cache has been closed.
func (c *Cache) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Close closes all regions and the backing store. The cache cannot be
// used afterwards.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var firstErr error
	for name, region := range c.regions {
		if err := region.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close region %q: %w", name, err)
		}
	}
	if c.store != nil {
		if err := c.store.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close sqlite store: %w", err)
		}
	}

	c.logger.Info("cache closed")
	return firstErr
}
