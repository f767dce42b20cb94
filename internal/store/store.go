// Package store persists the full entity set as a single versioned
// snapshot. Mutation happens only through Update, which runs the caller's
// function inside an exclusive read-modify-write critical section and
// commits the result with one atomic save; raw load/save are never exposed.
package store

import (
	"context"

	"hostelhub/pkg/model"
)

type Store interface {
	// View runs fn against one consistent snapshot. The snapshot must be
	// treated as read-only; changes made by fn are discarded.
	View(ctx context.Context, fn func(*model.Snapshot) error) error

	// Update loads the latest committed snapshot, applies fn to it, and
	// atomically replaces the persisted state. If fn returns an error
	// nothing is saved and the error is returned unchanged. Concurrent
	// updates are serialized: each one observes the previous one's commit.
	Update(ctx context.Context, fn func(*model.Snapshot) error) error

	// Ping reports whether the backing medium is reachable.
	Ping(ctx context.Context) error
}
