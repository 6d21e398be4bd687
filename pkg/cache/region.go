package cache

import (
	"context"
	"sync"

	"palisade-hq/palisade/pkg/telemetry/metrics"
)

// Region is a named key/value store within a cache. Implementations are
// thread-safe.
type Region interface {
	// Name returns the region's name.
	Name() string

	// Get returns the value for key, reporting whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores value under key, replacing any existing entry.
	Put(ctx context.Context, key string, value []byte) error

	// Remove deletes the entry for key. Removing a missing key is not
	// an error.
	Remove(ctx context.Context, key string) error

	// Keys returns all keys in the region.
	Keys(ctx context.Context) ([]string, error)

	// Size returns the number of entries in the region.
	Size(ctx context.Context) (int, error)

	// Close releases the region's resources.
	Close() error
}

// MemoryRegion is an in-process Region backed by a map.
type MemoryRegion struct {
	name string

	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryRegion creates an empty in-memory region.
func NewMemoryRegion(name string) *MemoryRegion {
	return &MemoryRegion{
		name:    name,
		entries: make(map[string][]byte),
	}
}

// Name returns the region's name.
func (r *MemoryRegion) Name() string {
	return r.name
}

// Get returns the value for key.
func (r *MemoryRegion) Get(ctx context.Context, key string) ([]byte, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Put stores value under key.
func (r *MemoryRegion) Put(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[key] = append([]byte(nil), value...)
	return nil
}

// Remove deletes the entry for key.
func (r *MemoryRegion) Remove(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, key)
	return nil
}

// Keys returns all keys in the region.
func (r *MemoryRegion) Keys(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}
	return keys, nil
}

// Size returns the number of entries in the region.
func (r *MemoryRegion) Size(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries), nil
}

// Close releases the region's entries.
func (r *MemoryRegion) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string][]byte)
	return nil
}

// instrumentedRegion wraps a Region with Prometheus operation counters.
type instrumentedRegion struct {
	Region
}

func instrument(r Region) Region {
	return &instrumentedRegion{Region: r}
}

func (r *instrumentedRegion) Get(ctx context.Context, key string) ([]byte, bool, error) {
	metrics.RecordRegionOperation(r.Name(), "get")
	return r.Region.Get(ctx, key)
}

func (r *instrumentedRegion) Put(ctx context.Context, key string, value []byte) error {
	metrics.RecordRegionOperation(r.Name(), "put")
	return r.Region.Put(ctx, key, value)
}

func (r *instrumentedRegion) Remove(ctx context.Context, key string) error {
	metrics.RecordRegionOperation(r.Name(), "remove")
	return r.Region.Remove(ctx, key)
}
