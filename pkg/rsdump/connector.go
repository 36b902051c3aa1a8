package rsdump

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connector is the interface for establishing database connections from
// a set of credentials. Pooling, timeouts and retry behavior are whatever
// the underlying client provides.
type Connector interface {
	// Connect establishes a connection pool to the database.
	// The returned pool must be closed by the caller when done.
	Connect(ctx context.Context) (*pgxpool.Pool, error)
}
