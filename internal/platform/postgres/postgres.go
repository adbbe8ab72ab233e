// Package postgres opens the connection pool and applies migrations.
package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Options controls how the pool is opened.
type Options struct {
	// PingTimeout bounds each ping attempt.
	PingTimeout time.Duration
	// MaxRetries is the number of extra ping attempts before giving up.
	MaxRetries int
	// Backoff is the initial delay between ping attempts; it doubles up to MaxBackoff.
	Backoff    time.Duration
	MaxBackoff time.Duration
}

// DefaultOptions returns the options used by the binaries.
func DefaultOptions() Options {
	return Options{
		PingTimeout: 2 * time.Second,
		MaxRetries:  5,
		Backoff:     500 * time.Millisecond,
		MaxBackoff:  5 * time.Second,
	}
}

// Open creates a pool for dsn and waits until the database answers a ping.
func Open(ctx context.Context, dsn string, opts Options) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}

	retryPolicy := retrypolicy.Builder[any]().
		WithBackoff(opts.Backoff, opts.MaxBackoff).
		WithMaxRetries(opts.MaxRetries).
		Build()

	attempt := 0
	err = failsafe.Run(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			log.Printf("database ping failed: attempt=%d dsn=%s error=%v", attempt, RedactDSN(dsn), err)
			return err
		}
		return nil
	}, retryPolicy)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database (%s): %w", RedactDSN(dsn), err)
	}

	log.Println("database connection OK")
	return pool, nil
}

// Migrate applies every pending goose migration found in dir of fsys.
func Migrate(pool *pgxpool.Pool, fsys fs.FS, dir string) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// RedactDSN hides the credentials of a URL-style DSN.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
