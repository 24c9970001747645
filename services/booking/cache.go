package booking

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"slotbook/models"
)

const (
	metaKeySheets    = "sheets"
	metaKeyLocations = "locations"
)

// Caches holds the two derived-view caches: long-lived sheet metadata (sheet
// list and directory) and short-lived per-location availability. Both are
// strict caches of what the store would return; entries may be stale within
// their TTL but are never partially constructed.
type Caches struct {
	mu   sync.Mutex
	meta *expirable.LRU[string, any]
	days *expirable.LRU[string, map[string][]string]
}

// NewCaches builds the cache layer. daysCapacity bounds how many distinct
// locations the availability cache holds at once.
func NewCaches(metaTTL, daysTTL time.Duration, daysCapacity int) *Caches {
	if daysCapacity <= 0 {
		daysCapacity = 6
	}
	return &Caches{
		meta: expirable.NewLRU[string, any](2, nil, metaTTL),
		days: expirable.NewLRU[string, map[string][]string](daysCapacity, nil, daysTTL),
	}
}

func (c *Caches) SheetList() ([]string, bool) {
	v, ok := c.meta.Get(metaKeySheets)
	if !ok {
		return nil, false
	}
	list, ok := v.([]string)
	return list, ok
}

func (c *Caches) SetSheetList(titles []string) {
	c.meta.Add(metaKeySheets, titles)
}

func (c *Caches) Directory() (models.Directory, bool) {
	v, ok := c.meta.Get(metaKeyLocations)
	if !ok {
		return nil, false
	}
	dir, ok := v.(models.Directory)
	return dir, ok
}

func (c *Caches) SetDirectory(dir models.Directory) {
	c.meta.Add(metaKeyLocations, dir)
}

// Days returns the cached available dates for a location and provider
// filter, or false on miss.
func (c *Caches) Days(location, provider string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.days.Get(location)
	if !ok {
		return nil, false
	}
	days, ok := entry[providerKey(provider)]
	return days, ok
}

// PutDays merges a scan result into the location's entry. An already-cached
// provider key is never overwritten: once set it persists until TTL
// eviction. That staleness is tolerated deliberately given the short TTL.
func (c *Caches) PutDays(location, provider string, days []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := providerKey(provider)
	entry, ok := c.days.Get(location)
	if !ok {
		c.days.Add(location, map[string][]string{key: days})
		return
	}
	if _, exists := entry[key]; !exists {
		entry[key] = days
		c.days.Add(location, entry)
	}
}

func providerKey(provider string) string {
	if provider == "" {
		return models.AnyProvider
	}
	return provider
}
