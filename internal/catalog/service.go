package catalog

import (
	"context"
	"errors"
	"strings"

	"libraryapi/internal/auth"
	"libraryapi/internal/entity"
	"libraryapi/internal/events"
	"libraryapi/internal/usecase"

	"github.com/sirupsen/logrus"
)

// Service orchestrates catalog queries and authenticated mutations
// against the store, and publishes a bookAdded event for every book
// successfully created. It holds no state across requests.
type Service struct {
	store  usecase.Store
	bus    events.Bus
	secret string
	log    *logrus.Logger
}

func NewService(store usecase.Store, bus events.Bus, secret string, log *logrus.Logger) *Service {
	return &Service{store: store, bus: bus, secret: secret, log: log}
}

// ResolvePrincipal derives the request principal from the raw
// Authorization header value. Outcomes are three-way: an absent or
// unprefixed header is anonymous (nil, nil), a well-formed bearer
// token that fails verification is Unauthenticated, and a verified
// token resolves its user (unknown user id falls back to anonymous).
func (s *Service) ResolvePrincipal(ctx context.Context, authHeader string) (*entity.User, error) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, nil
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := auth.ParseToken(s.secret, token)
	if err != nil {
		return nil, usecase.Unauthenticated("invalid token")
	}

	user, err := s.store.FindUserByID(ctx, claims.Sub)
	if err != nil {
		return nil, usecase.Internal()
	}
	return user, nil
}

type AddBookInput struct {
	Title      string
	AuthorName string
	Published  int
	Genres     []string
}

// AddBook creates a book for an authenticated principal, resolving or
// creating its author by name. The resolve-or-create step races
// against concurrent calls naming the same unseen author; the unique
// name constraint decides the winner and the loser retries its
// lookup, so exactly one author record can exist per name.
func (s *Service) AddBook(ctx context.Context, principal *entity.User, in AddBookInput) (*entity.Book, error) {
	if principal == nil {
		return nil, usecase.Unauthenticated("must be signed in to add a book")
	}

	author, err := s.resolveOrCreateAuthor(ctx, in.AuthorName)
	if err != nil {
		return nil, err
	}

	book := &entity.Book{
		Title:     in.Title,
		Published: in.Published,
		Genres:    in.Genres,
		AuthorID:  author.ID,
	}
	if err := s.store.CreateBook(ctx, book); err != nil {
		if errors.Is(err, usecase.ErrDuplicateKey) {
			return nil, usecase.ValidationFailed("title", "title must be unique")
		}
		s.log.WithError(err).Error("create book")
		return nil, usecase.Internal()
	}
	book.Author = author

	// Fire-and-forget: mutation success never waits on delivery.
	if err := s.bus.Publish(ctx, events.Message{Topic: events.TopicBookAdded, Data: book}); err != nil {
		s.log.WithError(err).Warn("publish bookAdded")
	}
	return book, nil
}

func (s *Service) resolveOrCreateAuthor(ctx context.Context, name string) (*entity.Author, error) {
	author, err := s.store.FindAuthorByName(ctx, name)
	if err != nil {
		s.log.WithError(err).Error("find author")
		return nil, usecase.Internal()
	}
	if author != nil {
		return author, nil
	}

	author = &entity.Author{Name: name}
	err = s.store.CreateAuthor(ctx, author)
	if err == nil {
		return author, nil
	}
	if !errors.Is(err, usecase.ErrDuplicateKey) {
		s.log.WithError(err).Error("create author")
		return nil, usecase.Internal()
	}

	// Lost the race to a concurrent create; the row now exists.
	author, err = s.store.FindAuthorByName(ctx, name)
	if err != nil || author == nil {
		s.log.WithError(err).Error("re-find author after conflict")
		return nil, usecase.Internal()
	}
	return author, nil
}

// EditAuthorBorn sets an author's birth year. An unknown name is an
// absent result, not an error.
func (s *Service) EditAuthorBorn(ctx context.Context, principal *entity.User, name string, born int) (*entity.Author, error) {
	if principal == nil {
		return nil, usecase.Unauthenticated("must be signed in to edit an author")
	}
	author, err := s.store.UpdateAuthorBorn(ctx, name, born)
	if err != nil {
		s.log.WithError(err).Error("update author")
		return nil, usecase.Internal()
	}
	return author, nil
}

// CreateUser registers a user with a bcrypt-hashed password.
func (s *Service) CreateUser(ctx context.Context, username, password string) (*entity.User, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		s.log.WithError(err).Error("hash password")
		return nil, usecase.Internal()
	}
	user := &entity.User{Username: username, Password: hashed}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, usecase.ErrDuplicateKey) {
			return nil, usecase.ValidationFailed("username", "username must be unique")
		}
		s.log.WithError(err).Error("create user")
		return nil, usecase.Internal()
	}
	return user, nil
}

// Login checks the credentials and issues a token. It never reveals
// whether the username or the password was wrong.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.FindUserByUsername(ctx, username)
	if err != nil {
		s.log.WithError(err).Error("find user")
		return "", usecase.Internal()
	}
	if user == nil || !auth.VerifyPassword(user.Password, password) {
		return "", usecase.InvalidCredentials()
	}

	token, err := auth.GenerateToken(s.secret, user.Username, user.ID)
	if err != nil {
		s.log.WithError(err).Error("sign token")
		return "", usecase.Internal()
	}
	return token, nil
}

func (s *Service) BookCount(ctx context.Context) (int, error) {
	return s.store.CountBooks(ctx)
}

func (s *Service) AuthorCount(ctx context.Context) (int, error) {
	return s.store.CountAuthors(ctx)
}

func (s *Service) AllBooks(ctx context.Context, f usecase.BookFilter) ([]entity.Book, error) {
	return s.store.FindBooks(ctx, f)
}

// AllAuthors lists every author with its computed book count. Counts
// come from one grouped query rather than a scan per author.
func (s *Service) AllAuthors(ctx context.Context) ([]entity.Author, error) {
	authors, err := s.store.FindAllAuthors(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.store.CountBooksByAuthor(ctx)
	if err != nil {
		return nil, err
	}
	for i := range authors {
		authors[i].BookCount = counts[authors[i].Name]
	}
	return authors, nil
}
