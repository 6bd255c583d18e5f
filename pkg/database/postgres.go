package database

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// NewPool creates a PostgreSQL connection pool, retrying with
// exponential backoff until the database answers a ping or the retry
// budget is exhausted.
func NewPool(ctx context.Context, dsn string, maxRetries int) (*pgxpool.Pool, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var pool *pgxpool.Pool
	attempt := 0

	connect := func() error {
		attempt++
		p, err := pgxpool.New(ctx, dsn)
		if err == nil {
			if pingErr := p.Ping(ctx); pingErr == nil {
				pool = p
				return nil
			} else {
				p.Close()
				err = fmt.Errorf("ping failed: %w", pingErr)
			}
		}
		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_retries", maxRetries).
			Msg("database connection failed, retrying")
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(maxRetries-1)),
		ctx,
	)
	if err := backoff.Retry(connect, policy); err != nil {
		return nil, fmt.Errorf("failed to connect after %d attempts: %w", attempt, err)
	}

	log.Info().Msg("database connection established")
	return pool, nil
}
