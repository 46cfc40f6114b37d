package store

import (
	"context"
	"errors"

	"libraryapi/internal/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuthorPG struct {
	db *pgxpool.Pool
}

func NewAuthorPG(db *pgxpool.Pool) *AuthorPG {
	return &AuthorPG{db: db}
}

func (r *AuthorPG) FindAuthorByName(ctx context.Context, name string) (*entity.Author, error) {
	const query = `
	SELECT id, name, born, created_at, updated_at
	FROM authors
	WHERE name = $1
	LIMIT 1
	`
	var a entity.Author
	err := r.db.QueryRow(ctx, query, name).Scan(&a.ID, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AuthorPG) CreateAuthor(ctx context.Context, a *entity.Author) error {
	const query = `
	INSERT INTO authors (id, name, born)
	VALUES (gen_random_uuid(), $1, $2)
	RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, a.Name, a.Born).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return mapPGError(err)
	}
	return nil
}

func (r *AuthorPG) UpdateAuthorBorn(ctx context.Context, name string, born int) (*entity.Author, error) {
	const query = `
	UPDATE authors
	SET born = $2, updated_at = now()
	WHERE name = $1
	RETURNING id, name, born, created_at, updated_at
	`
	var a entity.Author
	err := r.db.QueryRow(ctx, query, name, born).Scan(&a.ID, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AuthorPG) FindAllAuthors(ctx context.Context) ([]entity.Author, error) {
	const query = `
	SELECT id, name, born, created_at, updated_at
	FROM authors
	ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []entity.Author
	for rows.Next() {
		var a entity.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (r *AuthorPG) CountAuthors(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM authors").Scan(&count)
	return count, err
}

// CountBooksByAuthor issues one grouped count instead of scanning the
// whole book collection per author.
func (r *AuthorPG) CountBooksByAuthor(ctx context.Context) (map[string]int, error) {
	const query = `
	SELECT a.name, COUNT(b.id)
	FROM authors a
	LEFT JOIN books b ON b.author_id = a.id
	GROUP BY a.name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, rows.Err()
}
