package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"libraryapi/internal/catalog"
	"libraryapi/internal/httpx"
	"libraryapi/internal/usecase"
)

type UserHandler struct {
	svc *catalog.Service
}

func NewUserHandler(svc *catalog.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

type registerReq struct {
	Username string `json:"username" validate:"required,min=4,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register handles POST /users/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, string(usecase.CodeValidationFailed), "invalid input", details)
		return
	}

	user, err := h.svc.CreateUser(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.JSONTaxonomyError(w, err)
		return
	}
	httpx.JSONSuccessCreated(w, map[string]any{
		"id":       user.ID,
		"username": user.Username,
	})
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /users/login. Wrong username and wrong password
// are indistinguishable to the caller.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, string(usecase.CodeValidationFailed), "invalid input", details)
		return
	}

	token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.JSONTaxonomyError(w, err)
		return
	}
	httpx.JSONSuccess(w, map[string]string{"token": token}, nil)
}

// Me handles GET /me. Anonymous requests get a null principal, not an
// error.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal := httpx.PrincipalFrom(r)
	if principal == nil {
		httpx.JSONSuccess(w, nil, nil)
		return
	}
	httpx.JSONSuccess(w, map[string]any{
		"id":       principal.ID,
		"username": principal.Username,
	}, nil)
}
