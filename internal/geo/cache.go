package geo

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

// cacheEntry mirrors the on-disk JSON shape: coordinates plus the unix
// timestamp of when the entry was written.
type cacheEntry struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	TS  int64   `json:"ts"`
}

// DiskCache is a JSON file cache of geocoding results keyed by the exact
// place string, so repeated lookups never hit the remote service.
type DiskCache struct {
	path string

	mu      sync.Mutex
	entries map[string]cacheEntry
	loaded  bool
}

// NewDiskCache returns a cache backed by the JSON file at path. The file is
// read lazily on first access and created on first write.
func NewDiskCache(path string) *DiskCache {
	return &DiskCache{path: path}
}

// Get returns the cached coordinates for a place string, if present.
func (c *DiskCache) Get(place string) (lat, lon float64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.load()
	entry, ok := c.entries[place]
	if !ok {
		return 0, 0, false
	}
	return entry.Lat, entry.Lon, true
}

// Put stores coordinates for a place string and persists the whole cache.
func (c *DiskCache) Put(place string, lat, lon float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.load()
	c.entries[place] = cacheEntry{Lat: lat, Lon: lon, TS: time.Now().Unix()}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}

// load reads the cache file once. A missing or unparseable file yields an
// empty cache rather than an error; the cache is an optimization only.
func (c *DiskCache) load() {
	if c.loaded {
		return
	}
	c.loaded = true
	c.entries = make(map[string]cacheEntry)

	data, err := os.ReadFile(c.path)
	if err != nil {
		return
	}
	var entries map[string]cacheEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return
	}
	c.entries = entries
}
