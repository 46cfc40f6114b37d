package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"libraryapi/internal/catalog"
	"libraryapi/internal/entity"
	"libraryapi/internal/events"
	"libraryapi/internal/httpx"
	"libraryapi/internal/store"
	"libraryapi/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*catalog.Service, *events.Hub) {
	t.Helper()
	log := testutil.NewLogger()
	hub := events.NewHub(log)
	bus := events.NewMemoryBus()
	require.NoError(t, bus.StartForwarder(context.Background(), hub.Broadcast))
	return catalog.NewService(store.NewMem(), bus, testutil.Secret, log), hub
}

func registeredUser(t *testing.T, svc *catalog.Service) *entity.User {
	t.Helper()
	user, err := svc.CreateUser(context.Background(), "booklover", "correct horse")
	require.NoError(t, err)
	return user
}

func withPrincipal(r *http.Request, u *entity.User) *http.Request {
	return r.WithContext(httpx.ContextWithPrincipal(r.Context(), u))
}

func TestBookHandler_Add(t *testing.T) {
	svc, _ := newTestService(t)
	handler := NewBookHandler(svc)
	user := registeredUser(t, svc)

	valid := map[string]any{
		"title":     "Clean Code",
		"author":    "Robert Martin",
		"published": 2008,
		"genres":    []string{"tech"},
	}

	tests := []struct {
		name           string
		body           interface{}
		principal      *entity.User
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "created for authenticated principal",
			body:           valid,
			principal:      user,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "unauthenticated",
			body:           map[string]any{"title": "Agile software development", "author": "Robert Martin", "published": 2002},
			principal:      nil,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "UNAUTHENTICATED",
		},
		{
			name:           "duplicate title",
			body:           valid,
			principal:      user,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_FAILED",
		},
		{
			name:           "title too short",
			body:           map[string]any{"title": "abc", "author": "Robert Martin", "published": 2008},
			principal:      user,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_FAILED",
		},
		{
			name:           "author name too short",
			body:           map[string]any{"title": "Clean Architecture", "author": "abc", "published": 2017},
			principal:      user,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_FAILED",
		},
		{
			name:           "missing published year",
			body:           map[string]any{"title": "Clean Architecture", "author": "Robert Martin"},
			principal:      user,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_FAILED",
		},
		{
			name:           "invalid JSON",
			body:           "not json",
			principal:      user,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := testutil.NewRequest(http.MethodPost, "/books", tt.body)
			if tt.principal != nil {
				r = withPrincipal(r, tt.principal)
			}

			handler.Add(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				body := testutil.DecodeBody(w)
				errBody, ok := body["error"].(map[string]interface{})
				require.True(t, ok, "expected error envelope, got %v", body)
				assert.Equal(t, tt.expectedCode, errBody["code"])
			}
		})
	}
}

func TestBookHandler_AddEmbedsResolvedAuthor(t *testing.T) {
	svc, _ := newTestService(t)
	handler := NewBookHandler(svc)
	user := registeredUser(t, svc)

	w := httptest.NewRecorder()
	r := withPrincipal(testutil.NewRequest(http.MethodPost, "/books", map[string]any{
		"title": "Clean Code", "author": "Robert Martin", "published": 2008, "genres": []string{"tech"},
	}), user)

	handler.Add(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	body := testutil.DecodeBody(w)
	data := body["data"].(map[string]interface{})
	author := data["author"].(map[string]interface{})
	assert.Equal(t, "Robert Martin", author["name"])
}

func TestBookHandler_ListAndCount(t *testing.T) {
	svc, _ := newTestService(t)
	handler := NewBookHandler(svc)
	user := registeredUser(t, svc)

	ctx := context.Background()
	_, err := svc.AddBook(ctx, user, catalog.AddBookInput{Title: "Clean Code", AuthorName: "Robert Martin", Published: 2008, Genres: []string{"refactoring"}})
	require.NoError(t, err)
	_, err = svc.AddBook(ctx, user, catalog.AddBookInput{Title: "Crime and punishment", AuthorName: "Fyodor Dostoevsky", Published: 1866, Genres: []string{"classic"}})
	require.NoError(t, err)

	t.Run("list all", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.List(w, testutil.NewRequest(http.MethodGet, "/books", nil))

		require.Equal(t, http.StatusOK, w.Code)
		data := testutil.DecodeBody(w)["data"].([]interface{})
		assert.Len(t, data, 2)
	})

	t.Run("genre filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.List(w, testutil.NewRequest(http.MethodGet, "/books?genre=classic", nil))

		require.Equal(t, http.StatusOK, w.Code)
		data := testutil.DecodeBody(w)["data"].([]interface{})
		require.Len(t, data, 1)
		book := data[0].(map[string]interface{})
		assert.Equal(t, "Crime and punishment", book["title"])
	})

	t.Run("author filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.List(w, testutil.NewRequest(http.MethodGet, "/books?author=Robert+Martin", nil))

		require.Equal(t, http.StatusOK, w.Code)
		data := testutil.DecodeBody(w)["data"].([]interface{})
		assert.Len(t, data, 1)
	})

	t.Run("count", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Count(w, testutil.NewRequest(http.MethodGet, "/books/count", nil))

		require.Equal(t, http.StatusOK, w.Code)
		data := testutil.DecodeBody(w)["data"].(map[string]interface{})
		assert.EqualValues(t, 2, data["count"])
	})
}
