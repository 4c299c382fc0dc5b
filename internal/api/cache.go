package api

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/xtding233/payout-engine/internal/contract"
	"github.com/xtding233/payout-engine/internal/curve"
)

type rangeResult struct {
	Ranges []contract.RangePayout `json:"ranges"`
	Stats  curve.Stats            `json:"stats"`
}

type cacheEntry struct {
	key []byte
	res rangeResult
}

// rangeCache memoizes range scans by the digest of their canonical key. A hit
// must also match the stored key bytes. When full it is reset wholesale. A
// size of 0 disables it.
type rangeCache struct {
	mu      sync.RWMutex
	size    int
	entries map[uint64]cacheEntry
}

func newRangeCache(size int) *rangeCache {
	return &rangeCache{size: size, entries: make(map[uint64]cacheEntry)}
}

func (c *rangeCache) get(key []byte) (rangeResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[xxhash.Sum64(key)]
	if !ok || !bytes.Equal(e.key, key) {
		return rangeResult{}, false
	}
	return e.res, true
}

func (c *rangeCache) put(key []byte, v rangeResult) {
	if c.size <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.size {
		c.entries = make(map[uint64]cacheEntry, c.size)
	}
	c.entries[xxhash.Sum64(key)] = cacheEntry{key: key, res: v}
}

func (c *rangeCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

type rangeKey struct {
	Curve       contract.PayoutCurve       `json:"curve"`
	Rounding    contract.RoundingIntervals `json:"rounding"`
	Total       int64                      `json:"total"`
	LastOutcome int64                      `json:"lastOutcome"`
}

// canonical is the JSON form of a scan's inputs.
func (k rangeKey) canonical() ([]byte, error) {
	return json.Marshal(k)
}
