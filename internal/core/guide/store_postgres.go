// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package guide

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DmitryMustk/artdistrict/internal/platform/dberr"
	"github.com/DmitryMustk/artdistrict/internal/platform/postgres"
	"github.com/DmitryMustk/artdistrict/pkg/uuidv7"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(ctx context.Context, g *Guide) error {
	g.ID = uuidv7.New()

	payload, err := MarshalResource(g.Resource.Resource)
	if err != nil {
		return err
	}

	err = repository.db.QueryRow(ctx, `
		INSERT INTO core.guide (id, slug, title, body, resource, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING createdat, updatedat
	`, g.ID, g.Slug, g.Title, g.Body, payload).Scan(&g.CreatedAt, &g.UpdatedAt)
	return dberr.Wrap(err, "create_guide")
}

func (repository *PostgresRepository) Get(ctx context.Context, idOrSlug string) (*Guide, error) {
	g, err := scanGuide(repository.db.QueryRow(ctx, `
		SELECT id, slug, title, body, resource, createdat, updatedat
		FROM core.guide WHERE id::text = $1 OR slug = $1
	`, idOrSlug))
	if err != nil {
		return nil, dberr.Wrap(err, "get_guide")
	}
	return g, nil
}

func (repository *PostgresRepository) Update(ctx context.Context, g *Guide) error {
	payload, err := MarshalResource(g.Resource.Resource)
	if err != nil {
		return err
	}

	err = repository.db.QueryRow(ctx, `
		UPDATE core.guide
		SET title = $2, body = $3, resource = $4, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`, g.ID, g.Title, g.Body, payload).Scan(&g.UpdatedAt)
	return dberr.Wrap(err, "update_guide")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	cmd, err := repository.db.Exec(ctx, `DELETE FROM core.guide WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_guide")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*Guide, int, error) {
	var guides []*Guide
	var total int

	err := postgres.WithReadTx(ctx, repository.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM core.guide`).Scan(&total); err != nil {
			return dberr.Wrap(err, "count_guides")
		}

		rows, err := tx.Query(ctx, `
			SELECT id, slug, title, body, resource, createdat, updatedat
			FROM core.guide
			ORDER BY title ASC, id ASC
			LIMIT $1 OFFSET $2
		`, limit, offset)
		if err != nil {
			return dberr.Wrap(err, "list_guides")
		}
		defer rows.Close()

		for rows.Next() {
			g, err := scanGuide(rows)
			if err != nil {
				return dberr.Wrap(err, "scan_guide")
			}
			guides = append(guides, g)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}

	return guides, total, nil
}

// scanGuide reads one guide row, decoding the resource variant exactly here.
func scanGuide(row pgx.Row) (*Guide, error) {
	g := &Guide{}
	var payload []byte

	if err := row.Scan(&g.ID, &g.Slug, &g.Title, &g.Body, &payload, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}

	resource, err := UnmarshalResource(payload)
	if err != nil {
		return nil, err
	}
	g.Resource = ResourceBox{Resource: resource}
	return g, nil
}
