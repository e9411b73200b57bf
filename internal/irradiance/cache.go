package irradiance

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"rooftop-solar/internal/model"
)

// Cache is an in-memory store of irradiance profiles keyed by the full
// request parameter tuple. Entries never expire within a session; Clear
// exists so tests (and long-running processes) can reset it deterministically.
//
// The cache is an explicitly constructed object, never a package-level
// singleton.
type Cache struct {
	mu    sync.RWMutex
	store map[string]*model.IrradianceProfile
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{store: make(map[string]*model.IrradianceProfile)}
}

// Get returns the cached profile for a key, if present.
func (c *Cache) Get(key string) (*model.IrradianceProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.store[key]
	return p, ok
}

// Set stores a profile under a key.
func (c *Cache) Set(key string, p *model.IrradianceProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = p
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*model.IrradianceProfile)
}

// CacheKey builds a deterministic key from every parameter that affects the
// response. Coordinates are rounded to 4 decimals (~11 m) so nearby repeat
// queries share an entry.
func CacheKey(lat, lon, peakKwp, tiltDeg, azimuthDeg float64) string {
	keyStr := fmt.Sprintf("%.4f:%.4f:%g:%g:%g", lat, lon, peakKwp, tiltDeg, azimuthDeg)
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
