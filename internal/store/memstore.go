package store

import (
	"context"
	"sync"
	"time"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/google/uuid"
)

// Mem is an in-memory Store with the same contract as the Postgres
// implementation, including ErrDuplicateKey on unique violations. It
// backs tests and the seed tool's dry-run mode.
type Mem struct {
	mu      sync.RWMutex
	authors map[string]entity.Author // keyed by name
	books   map[string]entity.Book   // keyed by title
	users   map[string]entity.User   // keyed by username
}

var _ usecase.Store = (*Mem)(nil)

func NewMem() *Mem {
	return &Mem{
		authors: make(map[string]entity.Author),
		books:   make(map[string]entity.Book),
		users:   make(map[string]entity.User),
	}
}

func (m *Mem) FindAuthorByName(_ context.Context, name string) (*entity.Author, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.authors[name]; ok {
		return &a, nil
	}
	return nil, nil
}

func (m *Mem) CreateAuthor(_ context.Context, a *entity.Author) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.authors[a.Name]; exists {
		return usecase.ErrDuplicateKey
	}
	now := time.Now()
	a.ID = uuid.New().String()
	a.CreatedAt = now
	a.UpdatedAt = now
	m.authors[a.Name] = *a
	return nil
}

func (m *Mem) UpdateAuthorBorn(_ context.Context, name string, born int) (*entity.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.authors[name]
	if !ok {
		return nil, nil
	}
	a.Born = &born
	a.UpdatedAt = time.Now()
	m.authors[name] = a
	return &a, nil
}

func (m *Mem) FindAllAuthors(_ context.Context) ([]entity.Author, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	authors := make([]entity.Author, 0, len(m.authors))
	for _, a := range m.authors {
		authors = append(authors, a)
	}
	return authors, nil
}

func (m *Mem) CountAuthors(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.authors), nil
}

func (m *Mem) CountBooksByAuthor(_ context.Context) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := make(map[string]int, len(m.authors))
	for name := range m.authors {
		counts[name] = 0
	}
	byID := make(map[string]string, len(m.authors))
	for name, a := range m.authors {
		byID[a.ID] = name
	}
	for _, b := range m.books {
		if name, ok := byID[b.AuthorID]; ok {
			counts[name]++
		}
	}
	return counts, nil
}

func (m *Mem) CreateBook(_ context.Context, b *entity.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.books[b.Title]; exists {
		return usecase.ErrDuplicateKey
	}
	now := time.Now()
	b.ID = uuid.New().String()
	b.CreatedAt = now
	b.UpdatedAt = now
	stored := *b
	stored.Author = nil
	m.books[b.Title] = stored
	return nil
}

func (m *Mem) FindBooks(_ context.Context, f usecase.BookFilter) ([]entity.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byID := make(map[string]entity.Author, len(m.authors))
	for _, a := range m.authors {
		byID[a.ID] = a
	}
	var books []entity.Book
	for _, b := range m.books {
		author, ok := byID[b.AuthorID]
		if !ok {
			continue
		}
		if f.AuthorName != "" && author.Name != f.AuthorName {
			continue
		}
		if f.Genre != "" && !b.HasGenre(f.Genre) {
			continue
		}
		b.Author = &author
		books = append(books, b)
	}
	return books, nil
}

func (m *Mem) CountBooks(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.books), nil
}

func (m *Mem) CreateUser(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[u.Username]; exists {
		return usecase.ErrDuplicateKey
	}
	now := time.Now()
	u.ID = uuid.New().String()
	u.CreatedAt = now
	u.UpdatedAt = now
	m.users[u.Username] = *u
	return nil
}

func (m *Mem) FindUserByUsername(_ context.Context, username string) (*entity.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[username]; ok {
		return &u, nil
	}
	return nil, nil
}

func (m *Mem) FindUserByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}
