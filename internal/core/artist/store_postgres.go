// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package artist

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DmitryMustk/artdistrict/internal/platform/dberr"
	"github.com/DmitryMustk/artdistrict/internal/platform/postgres"
)

const artistColumns = `id, userid, name, bio, country, industries,
	moderationstatus, moderationcomment, moderatorid, banned, createdat, updatedat`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListPublic returns one window of approved, unbanned profiles plus the
// total under the same predicate, both read from one snapshot.
func (repository *PostgresRepository) ListPublic(ctx context.Context, f Filter, limit, offset int) ([]*Artist, int, error) {
	where := ` WHERE moderationstatus = 'approved' AND banned = FALSE`
	args := []any{}

	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		where += ` AND name ILIKE $` + strconv.Itoa(len(args))
	}
	if f.Country != "" {
		args = append(args, f.Country)
		where += ` AND country = $` + strconv.Itoa(len(args))
	}
	if len(f.Industries) > 0 {
		// Array overlap: any shared industry qualifies.
		args = append(args, f.Industries)
		where += ` AND industries && $` + strconv.Itoa(len(args))
	}

	countQuery := `SELECT count(*) FROM core.artist` + where

	listQuery := `SELECT ` + artistColumns + ` FROM core.artist` + where +
		` ORDER BY name ASC, id ASC LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	listArgs := append(args, limit, offset)

	var artists []*Artist
	var total int

	err := postgres.WithReadTx(ctx, repository.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
			return dberr.Wrap(err, "count_artists")
		}

		rows, err := tx.Query(ctx, listQuery, listArgs...)
		if err != nil {
			return dberr.Wrap(err, "list_artists")
		}
		defer rows.Close()

		for rows.Next() {
			a := &Artist{}
			if err := scanArtist(rows, a); err != nil {
				return dberr.Wrap(err, "scan_artist")
			}
			artists = append(artists, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}

	return artists, total, nil
}

func (repository *PostgresRepository) Get(ctx context.Context, id string) (*Artist, error) {
	a := &Artist{}
	err := scanArtist(repository.db.QueryRow(ctx,
		`SELECT `+artistColumns+` FROM core.artist WHERE id = $1`, id), a)
	if err != nil {
		return nil, dberr.Wrap(err, "get_artist")
	}
	return a, nil
}

func (repository *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*Artist, error) {
	a := &Artist{}
	err := scanArtist(repository.db.QueryRow(ctx,
		`SELECT `+artistColumns+` FROM core.artist WHERE userid = $1`, userID), a)
	if err != nil {
		return nil, dberr.Wrap(err, "get_artist_by_user")
	}
	return a, nil
}

// Update writes only the owner-editable fields. Moderation columns are out
// of reach of a content edit.
func (repository *PostgresRepository) Update(ctx context.Context, a *Artist) error {
	err := repository.db.QueryRow(ctx, `
		UPDATE core.artist
		SET name = $2, bio = $3, country = $4, industries = $5, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`, a.ID, a.Name, a.Bio, a.Country, a.Industries).Scan(&a.UpdatedAt)
	return dberr.Wrap(err, "update_artist")
}

// scanArtist reads one artist row from any pgx row source.
func scanArtist(row pgx.Row, a *Artist) error {
	return row.Scan(
		&a.ID, &a.UserID, &a.Name, &a.Bio, &a.Country, &a.Industries,
		&a.Status, &a.ModerationComment, &a.ModeratorID, &a.Banned,
		&a.CreatedAt, &a.UpdatedAt,
	)
}
