package store

import (
	"errors"

	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PG bundles the per-entity Postgres repositories into the single
// store contract the catalog service consumes.
type PG struct {
	*AuthorPG
	*BookPG
	*UserPG
}

func NewPG(db *pgxpool.Pool) *PG {
	return &PG{
		AuthorPG: NewAuthorPG(db),
		BookPG:   NewBookPG(db),
		UserPG:   NewUserPG(db),
	}
}

var _ usecase.Store = (*PG)(nil)

const uniqueViolation = "23505"

// mapPGError converts a unique-constraint violation into the store
// contract's ErrDuplicateKey. Everything else passes through.
func mapPGError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return usecase.ErrDuplicateKey
	}
	return err
}
