// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package auth

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DmitryMustk/artdistrict/internal/platform/authz"
	"github.com/DmitryMustk/artdistrict/internal/platform/dberr"
	"github.com/DmitryMustk/artdistrict/internal/platform/postgres"
	"github.com/DmitryMustk/artdistrict/pkg/slice"
	"github.com/DmitryMustk/artdistrict/pkg/uuidv7"
)

const accountColumns = `id, username, email, passwordhash, roles, artistid, providerid, createdat, updatedat`

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create persists the account and its marketplace identity in one
// transaction. A partially registered account (user without its artist
// profile, or the reverse) can never be observed.
func (repository *PostgresUserRepository) Create(ctx context.Context, input CreateInput) error {
	user := input.User

	return postgres.WithTx(ctx, repository.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO users.account (id, username, email, passwordhash, roles, createdat, updatedat)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			RETURNING createdat, updatedat
		`, user.ID, user.Username, user.Email, user.PasswordHash, rolesToStrings(user.Roles)).
			Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
			return dberr.Wrap(err, "create_account")
		}

		for _, role := range user.Roles {
			switch role {
			case authz.RoleArtist:
				artistID := uuidv7.New()
				if _, err := tx.Exec(ctx, `
					INSERT INTO core.artist (id, userid, name, createdat, updatedat)
					VALUES ($1, $2, $3, NOW(), NOW())
				`, artistID, user.ID, input.Name); err != nil {
					return dberr.Wrap(err, "create_artist_identity")
				}
				if _, err := tx.Exec(ctx,
					`UPDATE users.account SET artistid = $2 WHERE id = $1`, user.ID, artistID); err != nil {
					return dberr.Wrap(err, "link_artist_identity")
				}
				user.ArtistID = &artistID

			case authz.RoleProvider:
				providerID := uuidv7.New()
				if _, err := tx.Exec(ctx, `
					INSERT INTO users.provider (id, userid, name, createdat)
					VALUES ($1, $2, $3, NOW())
				`, providerID, user.ID, input.Name); err != nil {
					return dberr.Wrap(err, "create_provider_identity")
				}
				if _, err := tx.Exec(ctx,
					`UPDATE users.account SET providerid = $2 WHERE id = $1`, user.ID, providerID); err != nil {
					return dberr.Wrap(err, "link_provider_identity")
				}
				user.ProviderID = &providerID
			}
		}

		return nil
	})
}

func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return repository.findWhere(ctx, `id = $1`, id)
}

func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return repository.findWhere(ctx, `email = $1`, email)
}

func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return repository.findWhere(ctx, `username = $1`, username)
}

func (repository *PostgresUserRepository) UpdatePassword(ctx context.Context, userID, newHash string) error {
	cmd, err := repository.db.Exec(ctx,
		`UPDATE users.account SET passwordhash = $2, updatedat = NOW() WHERE id = $1`, userID, newHash)
	if err != nil {
		return dberr.Wrap(err, "update_password")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresUserRepository) findWhere(ctx context.Context, predicate string, arg any) (*User, error) {
	user := &User{}
	var roles []string

	err := repository.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM users.account WHERE `+predicate, arg,
	).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &roles,
		&user.ArtistID, &user.ProviderID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_account")
	}

	user.Roles = slice.Map(roles, func(r string) authz.Role { return authz.Role(r) })
	return user, nil
}

func rolesToStrings(roles []authz.Role) []string {
	return slice.Map(roles, func(r authz.Role) string { return string(r) })
}
