package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"libraryapi/internal/auth"

	"github.com/sirupsen/logrus"
)

// Secret is the JWT secret shared by tests.
const Secret = "test-secret"

// NewLogger returns a logger that swallows output so test runs stay
// quiet.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Token issues a valid token for the given user.
func Token(username, userID string) string {
	token, _ := auth.GenerateToken(Secret, username, userID)
	return token
}

// NewRequest creates a JSON HTTP request for handler tests.
func NewRequest(method, path string, body interface{}) *http.Request {
	var r *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		r = httptest.NewRequest(method, path, bytes.NewReader(b))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// NewRequestWithAuth creates a JSON HTTP request carrying a bearer
// token.
func NewRequestWithAuth(method, path string, body interface{}, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

// DecodeBody decodes a recorded JSON response body into a map.
func DecodeBody(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	_ = json.NewDecoder(w.Body).Decode(&body)
	return body
}
