// Package dedupe tracks which team-event medals were already counted.
package dedupe

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
)

// Deduper records seen keys to ensure each medal is counted at most once.
type Deduper interface {
	// SeenAndRecord atomically checks if key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, key string) bool

	// Size returns the number of recorded keys.
	Size() int64

	// Reset forgets every recorded key.
	Reset()
}

// Key builds the dedup key of a medal: "discipline-event-NOC-medal".
// Athletes sharing a team medal produce the same key.
func Key(discipline, event, noc, medal string) string {
	var b strings.Builder
	b.Grow(len(discipline) + len(event) + len(noc) + len(medal) + 3)
	b.WriteString(discipline)
	b.WriteByte('-')
	b.WriteString(event)
	b.WriteByte('-')
	b.WriteString(noc)
	b.WriteByte('-')
	b.WriteString(medal)
	return b.String()
}

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithSizeHint pre-sizes the key set.
func WithSizeHint(n int) Option {
	return func(d *inMemoryDeduper) {
		if n > 0 {
			d.hint = n
		}
	}
}

// inMemoryDeduper is an unbounded set. It never evicts: a forgotten key
// would let a team medal be counted twice.
type inMemoryDeduper struct {
	mu   sync.Mutex
	seen map[string]struct{}
	hint int
	size atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{}, d.hint)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; exists {
		return true
	}
	d.seen[key] = struct{}{}
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}

func (d *inMemoryDeduper) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seen = make(map[string]struct{}, d.hint)
	d.size.Store(0)
}
