package stations

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/orrs-rail/orrs-cli/internal/models"
)

// Loader hands out load generations. Only the batch of the latest generation
// may be applied; anything older arrived out of order and is dropped.
type Loader struct {
	mu  sync.Mutex
	gen uint64
}

// Begin starts a new load and returns its generation.
func (l *Loader) Begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	return l.gen
}

// Accept reports whether a batch tagged gen is still the latest.
func (l *Loader) Accept(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return gen != 0 && gen == l.gen
}

// Current returns the latest generation handed out.
func (l *Loader) Current() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}

// Cached memoizes a Source. Concurrent first calls share one fetch.
type Cached struct {
	src   Source
	group singleflight.Group

	mu     sync.RWMutex
	list   []models.Station
	loaded bool
	// bumped by Invalidate; a fetch started under an older epoch is not kept
	epoch uint64
}

// NewCached wraps src.
func NewCached(src Source) *Cached {
	return &Cached{src: src}
}

// Stations returns the memoized list, fetching it on first use.
func (c *Cached) Stations(ctx context.Context) ([]models.Station, error) {
	c.mu.RLock()
	if c.loaded {
		list := c.list
		c.mu.RUnlock()
		return list, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do("stations", func() (any, error) {
		c.mu.RLock()
		if c.loaded {
			list := c.list
			c.mu.RUnlock()
			return list, nil
		}
		epoch := c.epoch
		c.mu.RUnlock()

		list, err := c.src.Stations(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.epoch == epoch {
			c.list, c.loaded = list, true
		}
		c.mu.Unlock()
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Station), nil
}

// Name implements Source.
func (c *Cached) Name() string { return c.src.Name() }

// Invalidate forgets the memoized list so the next call fetches again. The
// wrapped source is invalidated too when it keeps state of its own.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	c.list, c.loaded = nil, false
	c.epoch++
	c.mu.Unlock()
	c.group.Forget("stations")
	invalidate(c.src)
}
