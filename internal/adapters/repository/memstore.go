package repository

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/types"
	"github.com/PolySpeedRunners/INF8808-Project/pkg/metrics"
)

// indexed is an immutable published snapshot with precomputed rankings.
type indexed struct {
	snap     *model.Snapshot
	rankings map[model.YearSeasonKey][]types.Entry
	rankOf   map[model.YearSeasonKey]map[string]int // code -> index in rankings
	entries  int
}

// MemoryStore keeps the latest snapshot in memory. Reads are lock-free.
type MemoryStore struct {
	current  atomic.Pointer[indexed]
	maxLimit int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{maxLimit: defaultMaxLimit}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxLimit returns the largest n accepted by TopN.
func (s *MemoryStore) MaxLimit() int { return s.maxLimit }

// Save indexes snap and publishes it.
func (s *MemoryStore) Save(_ context.Context, snap *model.Snapshot) error {
	if snap == nil {
		return ErrNilSnapshot
	}
	idx := &indexed{
		snap:     snap,
		rankings: make(map[model.YearSeasonKey][]types.Entry, len(snap.Data)),
		rankOf:   make(map[model.YearSeasonKey]map[string]int, len(snap.Data)),
	}
	for key, bucket := range snap.Data {
		ranking := types.Rank(bucket)
		pos := make(map[string]int, len(ranking))
		for i := range ranking {
			pos[ranking[i].Code] = i
		}
		idx.rankings[key] = ranking
		idx.rankOf[key] = pos
		idx.entries += len(ranking)
	}
	s.current.Store(idx)
	metrics.UpdateSnapshot(len(snap.Data), idx.entries, snap.BuiltAt.Unix())
	return nil
}

func (s *MemoryStore) load() (*indexed, error) {
	idx := s.current.Load()
	if idx == nil {
		return nil, fmt.Errorf("%w: no snapshot published", ErrNotFound)
	}
	return idx, nil
}

// Latest returns the published snapshot.
func (s *MemoryStore) Latest(_ context.Context) (*model.Snapshot, error) {
	idx, err := s.load()
	if err != nil {
		return nil, err
	}
	return idx.snap, nil
}

// Bucket returns one bucket of the published snapshot.
func (s *MemoryStore) Bucket(_ context.Context, key model.YearSeasonKey) (model.Bucket, error) {
	idx, err := s.load()
	if err != nil {
		return nil, err
	}
	b, ok := idx.snap.Data[key]
	if !ok {
		return nil, fmt.Errorf("%w: bucket %s", ErrNotFound, key)
	}
	return b, nil
}

// TopN returns up to n entries ordered by medal score desc, then code asc.
func (s *MemoryStore) TopN(_ context.Context, key model.YearSeasonKey, n int) ([]types.Entry, error) {
	if n <= 0 || n > s.maxLimit {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}
	idx, err := s.load()
	if err != nil {
		return nil, err
	}
	ranking, ok := idx.rankings[key]
	if !ok {
		return nil, fmt.Errorf("%w: bucket %s", ErrNotFound, key)
	}
	if n > len(ranking) {
		n = len(ranking)
	}
	return append([]types.Entry(nil), ranking[:n]...), nil
}

// Rank returns the ranking entry of code in a bucket.
func (s *MemoryStore) Rank(_ context.Context, key model.YearSeasonKey, code string) (types.Entry, error) {
	idx, err := s.load()
	if err != nil {
		return types.Entry{}, err
	}
	pos, ok := idx.rankOf[key]
	if !ok {
		return types.Entry{}, fmt.Errorf("%w: bucket %s", ErrNotFound, key)
	}
	i, ok := pos[code]
	if !ok {
		return types.Entry{}, fmt.Errorf("%w: country %s in %s", ErrNotFound, code, key)
	}
	return idx.rankings[key][i], nil
}

// Count returns the number of country entries in the published snapshot.
func (s *MemoryStore) Count(_ context.Context) int {
	idx := s.current.Load()
	if idx == nil {
		return 0
	}
	return idx.entries
}
