// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package project

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DmitryMustk/artdistrict/internal/platform/dberr"
	"github.com/DmitryMustk/artdistrict/internal/platform/postgres"
	"github.com/DmitryMustk/artdistrict/pkg/uuidv7"
)

// projectColumns includes the live application count so every read carries
// it; the count is never cached in a column.
const projectColumns = `p.id, p.artistid, p.title, p.description, p.budget, p.attachmentids,
	p.hidden, p.moderationstatus, p.moderationcomment, p.moderatorid, p.banned,
	(SELECT count(*) FROM core.application ap WHERE ap.projectid = p.id),
	p.createdat, p.updatedat`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(ctx context.Context, p *Project) error {
	p.ID = uuidv7.New()

	err := repository.db.QueryRow(ctx, `
		INSERT INTO core.project (id, artistid, title, description, budget, attachmentids, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING moderationstatus, createdat, updatedat
	`, p.ID, p.ArtistID, p.Title, p.Description, p.Budget, p.AttachmentIDs).
		Scan(&p.Status, &p.CreatedAt, &p.UpdatedAt)
	return dberr.Wrap(err, "create_project")
}

func (repository *PostgresRepository) Get(ctx context.Context, id string) (*Project, error) {
	p := &Project{}
	err := scanProject(repository.db.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM core.project p WHERE p.id = $1`, id), p)
	if err != nil {
		return nil, dberr.Wrap(err, "get_project")
	}
	return p, nil
}

// Update writes only the owner-editable fields.
func (repository *PostgresRepository) Update(ctx context.Context, p *Project) error {
	err := repository.db.QueryRow(ctx, `
		UPDATE core.project
		SET title = $2, description = $3, budget = $4, attachmentids = $5, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`, p.ID, p.Title, p.Description, p.Budget, p.AttachmentIDs).Scan(&p.UpdatedAt)
	return dberr.Wrap(err, "update_project")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	cmd, err := repository.db.Exec(ctx, `DELETE FROM core.project WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_project")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// SetHidden flips the owner's visibility toggle without touching updatedat,
// so hiding a project never reorders listings.
func (repository *PostgresRepository) SetHidden(ctx context.Context, id string, hidden bool) error {
	cmd, err := repository.db.Exec(ctx,
		`UPDATE core.project SET hidden = $2 WHERE id = $1`, id, hidden)
	if err != nil {
		return dberr.Wrap(err, "set_project_hidden")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ListPublic(ctx context.Context, f Filter, limit, offset int) ([]*Project, int, error) {
	where := ` WHERE p.moderationstatus = 'approved' AND p.banned = FALSE AND p.hidden = FALSE`
	args := []any{}

	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		where += ` AND p.title ILIKE $` + strconv.Itoa(len(args))
	}
	if f.ArtistID != "" {
		args = append(args, f.ArtistID)
		where += ` AND p.artistid = $` + strconv.Itoa(len(args))
	}

	return repository.listWhere(ctx, where, args, limit, offset)
}

func (repository *PostgresRepository) ListOwned(ctx context.Context, artistID string, limit, offset int) ([]*Project, int, error) {
	return repository.listWhere(ctx, ` WHERE p.artistid = $1`, []any{artistID}, limit, offset)
}

// listWhere runs count and window in one read-only transaction so the total
// and the page never disagree.
func (repository *PostgresRepository) listWhere(ctx context.Context, where string, args []any, limit, offset int) ([]*Project, int, error) {
	countQuery := `SELECT count(*) FROM core.project p` + where

	listQuery := `SELECT ` + projectColumns + ` FROM core.project p` + where +
		` ORDER BY p.updatedat DESC, p.id ASC LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	listArgs := append(args, limit, offset)

	var projects []*Project
	var total int

	err := postgres.WithReadTx(ctx, repository.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
			return dberr.Wrap(err, "count_projects")
		}

		rows, err := tx.Query(ctx, listQuery, listArgs...)
		if err != nil {
			return dberr.Wrap(err, "list_projects")
		}
		defer rows.Close()

		for rows.Next() {
			p := &Project{}
			if err := scanProject(rows, p); err != nil {
				return dberr.Wrap(err, "scan_project")
			}
			projects = append(projects, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func scanProject(row pgx.Row, p *Project) error {
	return row.Scan(
		&p.ID, &p.ArtistID, &p.Title, &p.Description, &p.Budget, &p.AttachmentIDs,
		&p.Hidden, &p.Status, &p.ModerationComment, &p.ModeratorID, &p.Banned,
		&p.Applications, &p.CreatedAt, &p.UpdatedAt,
	)
}
