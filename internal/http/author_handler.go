package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"libraryapi/internal/catalog"
	"libraryapi/internal/entity"
	"libraryapi/internal/httpx"
	"libraryapi/internal/usecase"
)

type AuthorHandler struct {
	svc *catalog.Service
}

func NewAuthorHandler(svc *catalog.Service) *AuthorHandler {
	return &AuthorHandler{svc: svc}
}

// List handles GET /authors. Every author carries its computed book
// count.
func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, err := h.svc.AllAuthors(r.Context())
	if err != nil {
		httpx.JSONTaxonomyError(w, err)
		return
	}
	if authors == nil {
		authors = []entity.Author{}
	}
	httpx.JSONSuccess(w, authors, nil)
}

// Count handles GET /authors/count.
func (h *AuthorHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.AuthorCount(r.Context())
	if err != nil {
		httpx.JSONTaxonomyError(w, err)
		return
	}
	httpx.JSONSuccess(w, map[string]int{"count": count}, nil)
}

type editAuthorReq struct {
	Born *int `json:"born" validate:"required"`
}

// Edit handles PATCH /authors/{name}, setting the birth year. An
// unknown author name yields a null result, not an error.
func (h *AuthorHandler) Edit(w http.ResponseWriter, r *http.Request) {
	const prefix = "/authors/"
	name := strings.TrimPrefix(r.URL.Path, prefix)
	if name == "" || strings.Contains(name, "/") {
		http.NotFound(w, r)
		return
	}

	var req editAuthorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, string(usecase.CodeValidationFailed), "invalid input", details)
		return
	}

	author, err := h.svc.EditAuthorBorn(r.Context(), httpx.PrincipalFrom(r), name, *req.Born)
	if err != nil {
		httpx.JSONTaxonomyError(w, err)
		return
	}
	// author is nil when no such name exists; data comes back null.
	httpx.JSONSuccess(w, author, nil)
}
