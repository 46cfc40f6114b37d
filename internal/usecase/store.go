package usecase

import (
	"context"

	"libraryapi/internal/entity"
)

// BookFilter narrows FindBooks results. Zero values mean "no filter".
type BookFilter struct {
	AuthorName string
	Genre      string
}

// Store is the persistence contract consumed by the catalog service.
//
// Lookups return a nil pointer (never an error) when nothing matches.
// Create operations return ErrDuplicateKey when a uniqueness
// constraint is violated. FindBooks and CreateBook always return books
// with a resolvable author id.
type Store interface {
	FindAuthorByName(ctx context.Context, name string) (*entity.Author, error)
	CreateAuthor(ctx context.Context, a *entity.Author) error
	UpdateAuthorBorn(ctx context.Context, name string, born int) (*entity.Author, error)
	FindAllAuthors(ctx context.Context) ([]entity.Author, error)
	CountAuthors(ctx context.Context) (int, error)
	// CountBooksByAuthor returns the number of books per author name
	// in a single grouped query.
	CountBooksByAuthor(ctx context.Context) (map[string]int, error)

	CreateBook(ctx context.Context, b *entity.Book) error
	FindBooks(ctx context.Context, f BookFilter) ([]entity.Book, error)
	CountBooks(ctx context.Context) (int, error)

	FindUserByUsername(ctx context.Context, username string) (*entity.User, error)
	FindUserByID(ctx context.Context, id string) (*entity.User, error)
	CreateUser(ctx context.Context, u *entity.User) error
}
