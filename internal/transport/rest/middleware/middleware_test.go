package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teambalancer/internal/logger"
	"teambalancer/internal/model"
)

type fakeTokens struct{}

func (fakeTokens) ValidatePlayerToken(token string) (*model.PlayerClaims, error) {
	if token != "player-token" {
		return nil, errors.New("bad token")
	}
	return &model.PlayerClaims{GroupID: "g1", PlayerID: "p1"}, nil
}

func (fakeTokens) ValidateAdminToken(token string) (*model.AdminClaims, error) {
	if token != "admin-token" {
		return nil, errors.New("bad token")
	}
	return &model.AdminClaims{Admin: true}, nil
}

func groupRouter(seen *[2]string) http.Handler {
	mw := NewAuthMiddleware(fakeTokens{})
	r := mux.NewRouter()
	sub := r.PathPrefix("/groups/{groupId}").Subrouter()
	sub.Use(mw.RequirePlayer, mw.RequireGroup)
	sub.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		seen[0] = GetGroupID(r.Context())
		seen[1] = GetPlayerID(r.Context())
	})
	return r
}

func TestRequirePlayer(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"missing header", "/groups/g1/stats", "", http.StatusUnauthorized},
		{"wrong scheme", "/groups/g1/stats", "Basic player-token", http.StatusUnauthorized},
		{"invalid token", "/groups/g1/stats", "Bearer other", http.StatusUnauthorized},
		{"other group", "/groups/g2/stats", "Bearer player-token", http.StatusForbidden},
		{"valid", "/groups/g1/stats", "bearer player-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen [2]string
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			groupRouter(&seen).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, [2]string{"g1", "p1"}, seen)
			} else {
				assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	var reached bool
	h := NewAuthMiddleware(fakeTokens{}).RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer player-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)

	req.Header.Set("Authorization", "Bearer admin-token")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("listed origin is echoed", func(t *testing.T) {
		h := CORS(&CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}})(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", rec.Header().Get("Vary"))
	})

	t.Run("unknown origin gets no allow header", func(t *testing.T) {
		h := CORS(&CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}})(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		h := CORS(nil)(next)
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
	})
}

func TestRequestLoggerKeepsStatus(t *testing.T) {
	h := RequestLogger(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
}
