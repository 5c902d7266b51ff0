// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WithTx runs fn inside a single database transaction.
//
// # Atomicity Contract
//
// The moderation core wraps its read-check-write sequence in WithTx so that a
// role/state check and the state write are observed as one atomic unit.
// If fn returns an error the transaction is rolled back and the error is
// returned unchanged, so typed [apperr] failures survive the wrapper and no
// partial mutation is ever visible.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		// Rollback error is secondary; the callback error is the real cause.
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit tx: %w", err)
	}

	return nil
}

// readTxOptions pins read transactions to REPEATABLE READ. The default
// READ COMMITTED level takes a fresh snapshot per statement, which would let
// a commit land between the count and the windowed fetch.
var readTxOptions = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

// WithReadTx runs fn inside a read-only snapshot transaction.
//
// Paginated listings use it to take the total count and the windowed fetch
// from one consistent snapshot, so a row inserted between the two queries can
// never make the count and the items disagree.
func WithReadTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.BeginTx(ctx, readTxOptions)
	if err != nil {
		return fmt.Errorf("postgres: begin read tx: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit read tx: %w", err)
	}

	return nil
}
