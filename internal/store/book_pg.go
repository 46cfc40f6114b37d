package store

import (
	"context"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

func (r *BookPG) CreateBook(ctx context.Context, b *entity.Book) error {
	const query = `
	INSERT INTO books (id, title, published, genres, author_id)
	VALUES (gen_random_uuid(), $1, $2, $3, $4)
	RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, b.Title, b.Published, b.Genres, b.AuthorID).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return mapPGError(err)
	}
	return nil
}

func (r *BookPG) FindBooks(ctx context.Context, f usecase.BookFilter) ([]entity.Book, error) {
	const query = `
	SELECT b.id, b.title, b.published, b.genres, b.created_at, b.updated_at,
	       a.id, a.name, a.born, a.created_at, a.updated_at
	FROM books b
	JOIN authors a ON a.id = b.author_id
	WHERE ($1 = '' OR a.name = $1)
	AND ($2 = '' OR $2 = ANY(b.genres))
	ORDER BY b.title
	`
	rows, err := r.db.Query(ctx, query, f.AuthorName, f.Genre)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []entity.Book
	for rows.Next() {
		var b entity.Book
		var a entity.Author
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Published, &b.Genres, &b.CreatedAt, &b.UpdatedAt,
			&a.ID, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		b.AuthorID = a.ID
		b.Author = &a
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *BookPG) CountBooks(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM books").Scan(&count)
	return count, err
}
