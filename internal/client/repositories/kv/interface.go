// Package kv provides key/value repositories over SQL databases. They back
// the durable store the session and preference services persist into.
//
// Implementations are bound to a dbx.DBTX, so the same repository code runs
// against a *sql.DB or inside a transaction.
package kv

import (
	"context"
)

type Repository interface {
	// Get returns (nil, nil) when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set inserts or overwrites the value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete is idempotent.
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
}
