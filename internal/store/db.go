package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"
)

// openPools counts pools opened by Open and not yet closed.
var openPools atomic.Int64

type DB struct {
	Pool *sql.DB
}

// Open opens the SQLite file at path read-only and pings it, so a missing
// file or directory fails here rather than on the first query.
func Open(ctx context.Context, path string, busyTimeoutMS int) (*DB, error) {
	// modernc sqlite uses DSN like: file:foo.db?mode=ro&_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(%d)", path, busyTimeoutMS)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	pool.SetMaxOpenConns(1)
	pool.SetConnMaxLifetime(5 * time.Minute)
	openPools.Add(1)

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.PingContext(pctx); err != nil {
		_ = pool.Close()
		openPools.Add(-1)
		return nil, err
	}

	return &DB{Pool: pool}, nil
}

func (d *DB) Close() error {
	if d == nil || d.Pool == nil {
		return nil
	}
	openPools.Add(-1)
	return d.Pool.Close()
}
