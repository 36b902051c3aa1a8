// Package db establishes warehouse connections from resolved credentials.
package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dbeallor/rsdump/pkg/rsdump"
)

// Connection pool configuration constants
const (
	// DefaultMaxConns limits concurrent connections. The load pipeline is
	// a single linear write, so a small pool is plenty.
	DefaultMaxConns = 2

	// DefaultMinConns maintains at least one connection in the pool.
	DefaultMinConns = 1

	// DefaultMaxConnIdleTime keeps the connection alive for the duration
	// of a large chunked write.
	DefaultMaxConnIdleTime = 30 * time.Minute
)

func configurePool(poolConfig *pgxpool.Config) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
}

// StandardConnector implements the rsdump.Connector interface for
// username/password authentication. Retry, pooling and timeout behavior
// beyond the pool limits above are inherited from pgx as-is.
type StandardConnector struct {
	creds rsdump.Credentials
}

// NewConnector creates a connector for the given credentials.
func NewConnector(creds rsdump.Credentials) *StandardConnector {
	return &StandardConnector{creds: creds}
}

// Connect establishes a connection pool from the credentials' URL and
// verifies it with a ping. The caller owns the pool and must close it.
func (c *StandardConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(c.creds.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}

	configurePool(poolConfig)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, c.creds.Host, c.creds.Port, c.creds.DBName)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, c.creds.Host, c.creds.Port, c.creds.DBName)
	}

	return pool, nil
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
func wrapConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - The warehouse is not accepting connections
  - Wrong host or port in the credential environment variables
  - Firewall blocking the connection

Original error: %v: %w`, addr, err, rsdump.ErrConnectionFailed)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable
  - Network connection issue

Original error: %v: %w`, host, err, rsdump.ErrConnectionFailed)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database "%s"

Possible causes:
  - Wrong password in the credential environment variables
  - Wrong username
  - User does not have access to the database

Original error: %v: %w`, database, err, rsdump.ErrConnectionFailed)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Network latency or packet loss
  - Wrong host/port (server not listening)

Original error: %v: %w`, addr, err, rsdump.ErrConnectionFailed)

	default:
		return fmt.Errorf("failed to connect to database: %v: %w", err, rsdump.ErrConnectionFailed)
	}
}
