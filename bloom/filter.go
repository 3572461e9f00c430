// Package bloom de-duplicates extracted records with a Bloom filter.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Deduper remembers keys, typically record content hashes, so repeated
// records can be dropped. A Bloom filter may report a key it never saw
// as seen; it never forgets a key it did see.
type Deduper struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewDeduper creates a Deduper sized for n keys at the given false
// positive rate.
func NewDeduper(n uint, fpRate float64) *Deduper {
	return &Deduper{f: bloom.NewWithEstimates(n, fpRate)}
}

// Seen reports whether key was seen before and records it.
func (d *Deduper) Seen(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.f.TestOrAddString(key)
}

// EstimatedCount returns the approximate number of distinct keys seen.
func (d *Deduper) EstimatedCount() uint {
	d.mu.Lock()
	defer d.mu.Unlock()
	return uint(d.f.ApproximatedSize())
}
