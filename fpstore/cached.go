package fpstore

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cached wraps an underlying Store with an in-process LRU index of known
// fingerprints, so repeated Lookups for hot fingerprints never reach disk.
// This is the "fast" sub-mode; compare the raw underlying Store (gdb_no_mem)
// which re-queries the backing store on every call.
type Cached struct {
	backing Store
	mu      sync.Mutex
	cache   *lru.Cache[[32]byte, bool] // fp -> sat
}

// NewCached wraps backing with an LRU index holding up to size entries.
func NewCached(backing Store, size int) (*Cached, error) {
	if size <= 0 {
		size = 1 << 20
	}
	c, err := lru.New[[32]byte, bool](size)
	if err != nil {
		return nil, err
	}
	return &Cached{backing: backing, cache: c}, nil
}

func (c *Cached) Lookup(fp [32]byte) (sat bool, found bool, err error) {
	c.mu.Lock()
	if sat, ok := c.cache.Get(fp); ok {
		c.mu.Unlock()
		return sat, true, nil
	}
	c.mu.Unlock()

	sat, found, err = c.backing.Lookup(fp)
	if err != nil {
		return false, false, err
	}
	if found {
		c.mu.Lock()
		c.cache.Add(fp, sat)
		c.mu.Unlock()
	}
	return sat, found, nil
}

func (c *Cached) Record(fp [32]byte, sat bool) error {
	if err := c.backing.Record(fp, sat); err != nil {
		return err
	}
	c.mu.Lock()
	c.cache.Add(fp, sat)
	c.mu.Unlock()
	return nil
}

func (c *Cached) Close() error { return c.backing.Close() }
