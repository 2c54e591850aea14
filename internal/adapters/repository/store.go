// Package repository keeps the latest pipeline snapshot and its per-bucket
// rankings for readers.
package repository

import (
	"context"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/types"
)

// Store provides read/write access to published snapshots.
type Store interface {
	// Save replaces the published snapshot. Readers see either the previous
	// or the new snapshot, never a mix.
	Save(ctx context.Context, snap *model.Snapshot) error

	// Latest returns the published snapshot, or ErrNotFound before the first Save.
	Latest(ctx context.Context) (*model.Snapshot, error)

	// Bucket returns one year-season bucket.
	Bucket(ctx context.Context, key model.YearSeasonKey) (model.Bucket, error)

	// TopN returns the first n ranking entries of a bucket.
	TopN(ctx context.Context, key model.YearSeasonKey, n int) ([]types.Entry, error)

	// Rank returns the ranking entry of one country in a bucket.
	Rank(ctx context.Context, key model.YearSeasonKey, code string) (types.Entry, error)

	// Count returns the number of country entries in the published snapshot.
	Count(ctx context.Context) int
}
