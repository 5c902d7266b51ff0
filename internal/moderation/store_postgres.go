// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package moderation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DmitryMustk/artdistrict/internal/platform/apperr"
	"github.com/DmitryMustk/artdistrict/internal/platform/dberr"
	"github.com/DmitryMustk/artdistrict/internal/platform/postgres"
)

// tableInfo maps an entity kind onto its physical table layout.
//
// The artist table is its own owner (an artist submits their own profile);
// projects are owned through their artistid column.
type tableInfo struct {
	table    string
	titleCol string
	ownerCol string
}

var tables = map[EntityKind]tableInfo{
	KindArtist:  {table: "core.artist", titleCol: "name", ownerCol: "id"},
	KindProject: {table: "core.project", titleCol: "title", ownerCol: "artistid"},
}

// PostgresStore implements [Store] using pgx with row-level locking.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates the PostgreSQL implementation of the moderation store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func tableFor(kind EntityKind) (tableInfo, error) {
	info, ok := tables[kind]
	if !ok {
		return tableInfo{}, apperr.ValidationError("Unknown entity kind")
	}
	return info, nil
}

// Submit implements [Store].
//
// The SELECT ... FOR UPDATE serializes against concurrent Resolve/Submit
// calls on the same row: whichever transaction commits second re-reads the
// winner's status and fails the edge check instead of overwriting it.
func (repository *PostgresStore) Submit(ctx context.Context, kind EntityKind, id, ownerArtistID string) error {
	info, err := tableFor(kind)
	if err != nil {
		return err
	}

	return postgres.WithTx(ctx, repository.pool, func(tx pgx.Tx) error {
		lockQuery := fmt.Sprintf(
			`SELECT moderationstatus, %s FROM %s WHERE id = $1 FOR UPDATE`,
			info.ownerCol, info.table,
		)

		var current Status
		var owner string
		if err := tx.QueryRow(ctx, lockQuery, id).Scan(&current, &owner); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound(kind.Resource())
			}
			return dberr.Wrap(err, "moderation_submit_lock")
		}

		if owner != ownerArtistID {
			return apperr.Forbidden("Only the owner may submit this " + kind.Resource())
		}

		if !CanTransition(current, StatusOnModeration) {
			return apperr.InvalidTransition(
				fmt.Sprintf("%s cannot be submitted from status %q", kind.Resource(), current),
			)
		}

		updateQuery := fmt.Sprintf(
			`UPDATE %s SET moderationstatus = $2, updatedat = NOW() WHERE id = $1`,
			info.table,
		)
		_, err := tx.Exec(ctx, updateQuery, id, StatusOnModeration)
		return dberr.Wrap(err, "moderation_submit_update")
	})
}

// Resolve implements [Store].
func (repository *PostgresStore) Resolve(ctx context.Context, kind EntityKind, id string, decision Status, comment, moderatorID string) error {
	info, err := tableFor(kind)
	if err != nil {
		return err
	}

	return postgres.WithTx(ctx, repository.pool, func(tx pgx.Tx) error {
		lockQuery := fmt.Sprintf(
			`SELECT moderationstatus FROM %s WHERE id = $1 FOR UPDATE`,
			info.table,
		)

		var current Status
		if err := tx.QueryRow(ctx, lockQuery, id).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound(kind.Resource())
			}
			return dberr.Wrap(err, "moderation_resolve_lock")
		}

		if !CanTransition(current, decision) {
			return apperr.InvalidTransition(
				fmt.Sprintf("%s is no longer awaiting review (status %q)", kind.Resource(), current),
			)
		}

		updateQuery := fmt.Sprintf(
			`UPDATE %s
			 SET moderationstatus = $2, moderationcomment = $3, moderatorid = $4, updatedat = NOW()
			 WHERE id = $1`,
			info.table,
		)
		_, err := tx.Exec(ctx, updateQuery, id, decision, comment, moderatorID)
		return dberr.Wrap(err, "moderation_resolve_update")
	})
}

// SetBanned implements [Store].
//
// A single UPDATE is already atomic; the flag flip deliberately leaves
// moderationstatus and updatedat untouched so a ban never reorders the
// review queue.
func (repository *PostgresStore) SetBanned(ctx context.Context, kind EntityKind, id string, banned bool) error {
	info, err := tableFor(kind)
	if err != nil {
		return err
	}

	updateQuery := fmt.Sprintf(`UPDATE %s SET banned = $2 WHERE id = $1`, info.table)

	cmd, err := repository.pool.Exec(ctx, updateQuery, id, banned)
	if err != nil {
		return dberr.Wrap(err, "moderation_set_banned")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(kind.Resource())
	}
	return nil
}

// ListQueue implements [Store].
func (repository *PostgresStore) ListQueue(ctx context.Context, kind EntityKind, order SortOrder, limit, offset int) ([]*QueueItem, int, error) {
	return repository.listByPredicate(ctx, kind, "moderationstatus = 'on-moderation'", order, limit, offset)
}

// ListBanned implements [Store].
func (repository *PostgresStore) ListBanned(ctx context.Context, kind EntityKind, order SortOrder, limit, offset int) ([]*QueueItem, int, error) {
	return repository.listByPredicate(ctx, kind, "banned = TRUE", order, limit, offset)
}

// listByPredicate runs the count and the windowed fetch inside one read-only
// transaction so the returned total always agrees with the returned window.
func (repository *PostgresStore) listByPredicate(ctx context.Context, kind EntityKind, predicate string, order SortOrder, limit, offset int) ([]*QueueItem, int, error) {
	info, err := tableFor(kind)
	if err != nil {
		return nil, 0, err
	}

	direction := "DESC"
	if order == OrderAsc {
		direction = "ASC"
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, info.table, predicate)

	// Ties on updatedat are broken by id ascending for a deterministic window.
	listQuery := fmt.Sprintf(`
		SELECT id, %s, %s, moderationstatus, moderationcomment, moderatorid, banned, updatedat
		FROM %s
		WHERE %s
		ORDER BY updatedat %s, id ASC
		LIMIT $1 OFFSET $2
	`, info.titleCol, info.ownerCol, info.table, predicate, direction)

	var items []*QueueItem
	var total int

	err = postgres.WithReadTx(ctx, repository.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, countQuery).Scan(&total); err != nil {
			return dberr.Wrap(err, "moderation_list_count")
		}

		rows, err := tx.Query(ctx, listQuery, limit, offset)
		if err != nil {
			return dberr.Wrap(err, "moderation_list_window")
		}
		defer rows.Close()

		for rows.Next() {
			item := &QueueItem{Kind: kind}
			if err := rows.Scan(
				&item.ID, &item.Title, &item.OwnerArtistID, &item.Status,
				&item.ModerationComment, &item.ModeratorID, &item.Banned, &item.UpdatedAt,
			); err != nil {
				return dberr.Wrap(err, "moderation_list_scan")
			}
			items = append(items, item)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
