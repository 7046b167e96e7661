package trailing

// MatchCache remembers the latest Regions per document identity.
// It is owned by a single goroutine and does no locking.
type MatchCache struct {
	entries map[string]Regions
}

// NewMatchCache creates an empty cache.
func NewMatchCache() *MatchCache {
	return &MatchCache{entries: make(map[string]Regions)}
}

// Put stores regions for documentID, replacing any earlier entry.
func (c *MatchCache) Put(documentID string, regions Regions) {
	c.entries[documentID] = regions
}

// Get returns the entry for documentID.
func (c *MatchCache) Get(documentID string) (Regions, bool) {
	regions, ok := c.entries[documentID]
	return regions, ok
}

// Len returns the number of cached documents.
func (c *MatchCache) Len() int {
	return len(c.entries)
}
