package http

import (
	"encoding/json"
	"net/http"

	"libraryapi/internal/catalog"
	"libraryapi/internal/entity"
	"libraryapi/internal/httpx"
	"libraryapi/internal/usecase"
)

type BookHandler struct {
	svc *catalog.Service
}

func NewBookHandler(svc *catalog.Service) *BookHandler {
	return &BookHandler{svc: svc}
}

// List handles GET /books with optional author and genre filters.
// Each book embeds its resolved author.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.BookFilter{
		AuthorName: r.URL.Query().Get("author"),
		Genre:      r.URL.Query().Get("genre"),
	}

	books, err := h.svc.AllBooks(r.Context(), filter)
	if err != nil {
		httpx.JSONTaxonomyError(w, err)
		return
	}
	if books == nil {
		books = []entity.Book{}
	}
	httpx.JSONSuccess(w, books, nil)
}

// Count handles GET /books/count.
func (h *BookHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.BookCount(r.Context())
	if err != nil {
		httpx.JSONTaxonomyError(w, err)
		return
	}
	httpx.JSONSuccess(w, map[string]int{"count": count}, nil)
}

type addBookReq struct {
	Title     string   `json:"title" validate:"required,min=5"`
	Author    string   `json:"author" validate:"required,min=4"`
	Published int      `json:"published" validate:"required"`
	Genres    []string `json:"genres"`
}

// Add handles POST /books. Requires an authenticated principal.
func (h *BookHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, string(usecase.CodeValidationFailed), "invalid input", details)
		return
	}

	book, err := h.svc.AddBook(r.Context(), httpx.PrincipalFrom(r), catalog.AddBookInput{
		Title:      req.Title,
		AuthorName: req.Author,
		Published:  req.Published,
		Genres:     req.Genres,
	})
	if err != nil {
		httpx.JSONTaxonomyError(w, err)
		return
	}
	httpx.JSONSuccessCreated(w, book)
}
