package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"libraryapi/internal/auth"
	"libraryapi/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_Register(t *testing.T) {
	svc, _ := newTestService(t)
	handler := NewUserHandler(svc)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "success",
			body:           map[string]string{"username": "booklover", "password": "correct horse"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate username",
			body:           map[string]string{"username": "booklover", "password": "another one"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_FAILED",
		},
		{
			name:           "username too short",
			body:           map[string]string{"username": "abc", "password": "correct horse"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_FAILED",
		},
		{
			name:           "password too short",
			body:           map[string]string{"username": "newreader", "password": "short"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_FAILED",
		},
		{
			name:           "invalid JSON",
			body:           "not json",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Register(w, testutil.NewRequest(http.MethodPost, "/users/register", tt.body))

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

func TestUserHandler_Login(t *testing.T) {
	svc, _ := newTestService(t)
	handler := NewUserHandler(svc)
	user := registeredUser(t, svc)

	t.Run("issues token", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Login(w, testutil.NewRequest(http.MethodPost, "/users/login", map[string]string{
			"username": "booklover", "password": "correct horse",
		}))

		require.Equal(t, http.StatusOK, w.Code)
		data := testutil.DecodeBody(w)["data"].(map[string]interface{})
		token, _ := data["token"].(string)
		require.NotEmpty(t, token)

		claims, err := auth.ParseToken(testutil.Secret, token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.Sub)
		assert.Equal(t, "booklover", claims.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Login(w, testutil.NewRequest(http.MethodPost, "/users/login", map[string]string{
			"username": "booklover", "password": "wrong",
		}))

		require.Equal(t, http.StatusUnauthorized, w.Code)
		errBody := testutil.DecodeBody(w)["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_CREDENTIALS", errBody["code"])
	})

	t.Run("unknown user gets the same answer", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Login(w, testutil.NewRequest(http.MethodPost, "/users/login", map[string]string{
			"username": "nobody", "password": "whatever",
		}))

		require.Equal(t, http.StatusUnauthorized, w.Code)
		errBody := testutil.DecodeBody(w)["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_CREDENTIALS", errBody["code"])
	})
}

func TestUserHandler_Me(t *testing.T) {
	svc, _ := newTestService(t)
	handler := NewUserHandler(svc)
	user := registeredUser(t, svc)

	t.Run("anonymous gets null", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Me(w, testutil.NewRequest(http.MethodGet, "/me", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := testutil.DecodeBody(w)
		assert.Nil(t, body["data"])
	})

	t.Run("authenticated gets the principal", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := withPrincipal(testutil.NewRequest(http.MethodGet, "/me", nil), user)
		handler.Me(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		data := testutil.DecodeBody(w)["data"].(map[string]interface{})
		assert.Equal(t, "booklover", data["username"])
	})
}
