package store

import (
	"context"
	"errors"

	"libraryapi/internal/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserPG struct {
	db *pgxpool.Pool
}

func NewUserPG(db *pgxpool.Pool) *UserPG {
	return &UserPG{db: db}
}

func (r *UserPG) CreateUser(ctx context.Context, u *entity.User) error {
	const query = `
	INSERT INTO users (id, username, password)
	VALUES (gen_random_uuid(), $1, $2)
	RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, u.Username, u.Password).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return mapPGError(err)
	}
	return nil
}

func (r *UserPG) FindUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	const query = `
	SELECT id, username, password, created_at, updated_at
	FROM users
	WHERE username = $1
	LIMIT 1
	`
	var u entity.User
	err := r.db.QueryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserPG) FindUserByID(ctx context.Context, id string) (*entity.User, error) {
	const query = `
	SELECT id, username, password, created_at, updated_at
	FROM users
	WHERE id = $1
	LIMIT 1
	`
	var u entity.User
	err := r.db.QueryRow(ctx, query, id).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
