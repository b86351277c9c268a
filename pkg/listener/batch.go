package listener

import (
	"sync"
	"time"
)

// Batcher collects paths and flushes them together after a quiet period.
// A batch keeps paths in the order they were first seen, without repeats.
type Batcher struct {
	mu       sync.Mutex
	paths    []string
	seen     map[string]struct{}
	debounce *Debouncer
	flush    func([]string)
}

// NewBatcher creates a batcher calling flush with every completed batch
func NewBatcher(latency time.Duration, flush func([]string)) *Batcher {
	return &Batcher{
		seen:     make(map[string]struct{}),
		debounce: NewDebouncer(latency),
		flush:    flush,
	}
}

// Add records a changed path and restarts the quiet period
func (b *Batcher) Add(path string) {
	b.mu.Lock()
	if _, ok := b.seen[path]; !ok {
		b.seen[path] = struct{}{}
		b.paths = append(b.paths, path)
	}
	b.mu.Unlock()

	b.debounce.Trigger(b.emit)
}

// Pending returns how many paths wait for the next flush
func (b *Batcher) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.paths)
}

func (b *Batcher) emit() {
	b.mu.Lock()
	batch := b.paths
	b.paths = nil
	b.seen = make(map[string]struct{})
	b.mu.Unlock()

	if len(batch) > 0 {
		b.flush(batch)
	}
}

// Stop drops pending paths
func (b *Batcher) Stop() {
	b.debounce.Stop()
	b.mu.Lock()
	b.paths = nil
	b.mu.Unlock()
}
