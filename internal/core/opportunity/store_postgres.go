// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package opportunity

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DmitryMustk/artdistrict/internal/platform/dberr"
	"github.com/DmitryMustk/artdistrict/internal/platform/postgres"
	"github.com/DmitryMustk/artdistrict/pkg/uuidv7"
)

const opportunityColumns = `o.id, o.providerid, o.title, o.slug, o.description, o.deadline, o.banned,
	(SELECT count(*) FROM core.application ap WHERE ap.opportunityid = o.id),
	o.createdat, o.updatedat`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(ctx context.Context, o *Opportunity) error {
	o.ID = uuidv7.New()
	// The uuid tail keeps slugs unique without a retry loop.
	o.Slug = o.Slug + "-" + shortID(o.ID)

	err := repository.db.QueryRow(ctx, `
		INSERT INTO core.opportunity (id, providerid, title, slug, description, deadline, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING createdat, updatedat
	`, o.ID, o.ProviderID, o.Title, o.Slug, o.Description, o.Deadline).
		Scan(&o.CreatedAt, &o.UpdatedAt)
	return dberr.Wrap(err, "create_opportunity")
}

func (repository *PostgresRepository) Get(ctx context.Context, id string) (*Opportunity, error) {
	o := &Opportunity{}
	err := scanOpportunity(repository.db.QueryRow(ctx,
		`SELECT `+opportunityColumns+` FROM core.opportunity o WHERE o.id = $1`, id), o)
	if err != nil {
		return nil, dberr.Wrap(err, "get_opportunity")
	}
	return o, nil
}

func (repository *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*Opportunity, error) {
	o := &Opportunity{}
	err := scanOpportunity(repository.db.QueryRow(ctx,
		`SELECT `+opportunityColumns+` FROM core.opportunity o WHERE o.slug = $1`, slug), o)
	if err != nil {
		return nil, dberr.Wrap(err, "get_opportunity_by_slug")
	}
	return o, nil
}

func (repository *PostgresRepository) Update(ctx context.Context, o *Opportunity) error {
	err := repository.db.QueryRow(ctx, `
		UPDATE core.opportunity
		SET title = $2, description = $3, deadline = $4, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`, o.ID, o.Title, o.Description, o.Deadline).Scan(&o.UpdatedAt)
	return dberr.Wrap(err, "update_opportunity")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	cmd, err := repository.db.Exec(ctx, `DELETE FROM core.opportunity WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_opportunity")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	cmd, err := repository.db.Exec(ctx,
		`UPDATE core.opportunity SET banned = $2 WHERE id = $1`, id, banned)
	if err != nil {
		return dberr.Wrap(err, "set_opportunity_banned")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ListOpen(ctx context.Context, f Filter, limit, offset int) ([]*Opportunity, int, error) {
	where := ` WHERE o.banned = FALSE AND o.deadline > NOW()`
	args := []any{}

	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		where += ` AND o.title ILIKE $` + strconv.Itoa(len(args))
	}

	return repository.listWhere(ctx, where, ` ORDER BY o.deadline ASC, o.id ASC`, args, limit, offset)
}

func (repository *PostgresRepository) ListOwned(ctx context.Context, providerID string, limit, offset int) ([]*Opportunity, int, error) {
	return repository.listWhere(ctx, ` WHERE o.providerid = $1`, ` ORDER BY o.updatedat DESC, o.id ASC`, []any{providerID}, limit, offset)
}

func (repository *PostgresRepository) listWhere(ctx context.Context, where, orderBy string, args []any, limit, offset int) ([]*Opportunity, int, error) {
	countQuery := `SELECT count(*) FROM core.opportunity o` + where

	listQuery := `SELECT ` + opportunityColumns + ` FROM core.opportunity o` + where + orderBy +
		` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	listArgs := append(args, limit, offset)

	var opportunities []*Opportunity
	var total int

	err := postgres.WithReadTx(ctx, repository.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
			return dberr.Wrap(err, "count_opportunities")
		}

		rows, err := tx.Query(ctx, listQuery, listArgs...)
		if err != nil {
			return dberr.Wrap(err, "list_opportunities")
		}
		defer rows.Close()

		for rows.Next() {
			o := &Opportunity{}
			if err := scanOpportunity(rows, o); err != nil {
				return dberr.Wrap(err, "scan_opportunity")
			}
			opportunities = append(opportunities, o)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}

	return opportunities, total, nil
}

// # Applications

func (repository *PostgresRepository) CreateApplication(ctx context.Context, a *Application) error {
	a.ID = uuidv7.New()
	a.Status = ApplicationApplied

	err := repository.db.QueryRow(ctx, `
		INSERT INTO core.application (id, opportunityid, artistid, projectid, message, status, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING createdat
	`, a.ID, a.OpportunityID, a.ArtistID, a.ProjectID, a.Message, a.Status).Scan(&a.CreatedAt)
	// The (opportunityid, artistid) unique index turns a double apply into a Conflict.
	return dberr.Wrap(err, "create_application")
}

func (repository *PostgresRepository) ListApplications(ctx context.Context, opportunityID string, limit, offset int) ([]*Application, int, error) {
	var applications []*Application
	var total int

	err := postgres.WithReadTx(ctx, repository.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`SELECT count(*) FROM core.application WHERE opportunityid = $1`, opportunityID,
		).Scan(&total); err != nil {
			return dberr.Wrap(err, "count_applications")
		}

		rows, err := tx.Query(ctx, `
			SELECT id, opportunityid, artistid, projectid, message, status, createdat
			FROM core.application
			WHERE opportunityid = $1
			ORDER BY createdat ASC, id ASC
			LIMIT $2 OFFSET $3
		`, opportunityID, limit, offset)
		if err != nil {
			return dberr.Wrap(err, "list_applications")
		}
		defer rows.Close()

		for rows.Next() {
			a := &Application{}
			if err := rows.Scan(&a.ID, &a.OpportunityID, &a.ArtistID, &a.ProjectID, &a.Message, &a.Status, &a.CreatedAt); err != nil {
				return dberr.Wrap(err, "scan_application")
			}
			applications = append(applications, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}

	return applications, total, nil
}

func (repository *PostgresRepository) GetApplication(ctx context.Context, id string) (*Application, error) {
	a := &Application{}
	err := repository.db.QueryRow(ctx, `
		SELECT id, opportunityid, artistid, projectid, message, status, createdat
		FROM core.application WHERE id = $1
	`, id).Scan(&a.ID, &a.OpportunityID, &a.ArtistID, &a.ProjectID, &a.Message, &a.Status, &a.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_application")
	}
	return a, nil
}

func (repository *PostgresRepository) SetApplicationStatus(ctx context.Context, id string, status ApplicationStatus) error {
	cmd, err := repository.db.Exec(ctx,
		`UPDATE core.application SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return dberr.Wrap(err, "set_application_status")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func scanOpportunity(row pgx.Row, o *Opportunity) error {
	return row.Scan(
		&o.ID, &o.ProviderID, &o.Title, &o.Slug, &o.Description, &o.Deadline,
		&o.Banned, &o.Applications, &o.CreatedAt, &o.UpdatedAt,
	)
}

// shortID returns the last segment of a UUID string.
func shortID(id string) string {
	parts := strings.Split(id, "-")
	return parts[len(parts)-1]
}
