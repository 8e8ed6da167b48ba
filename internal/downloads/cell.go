package downloads

import (
	"context"
	"sync"
)

// Cell holds the DownloadSet for one page view. It is empty until the
// first Set; readers treat the empty state as loading.
type Cell struct {
	mu    sync.RWMutex
	set   DownloadSet
	ready bool
	done  chan struct{}
}

// NewCell returns an empty Cell.
func NewCell() *Cell {
	return &Cell{done: make(chan struct{})}
}

// Set publishes s. Later calls replace the value; the cell never becomes
// empty again.
func (c *Cell) Set(s DownloadSet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.set = s
	if !c.ready {
		c.ready = true
		close(c.done)
	}
}

// Get returns the published set, or ok=false while still loading.
func (c *Cell) Get() (DownloadSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.set, c.ready
}

// Wait blocks until a set is published or ctx is done.
func (c *Cell) Wait(ctx context.Context) (DownloadSet, error) {
	select {
	case <-c.done:
		s, _ := c.Get()
		return s, nil
	case <-ctx.Done():
		return DownloadSet{}, ctx.Err()
	}
}

// Start resolves once in the background and publishes the result.
// The returned channel closes after the publish.
func (c *Cell) Start(ctx context.Context, r *Resolver) <-chan struct{} {
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		c.Set(r.Resolve(ctx))
	}()
	return finished
}
