package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lagoon-stays/lagoon/internal/rbac"
)

func newAuthRouter(t *testing.T) (http.Handler, *Service, *TokenService) {
	t.Helper()
	svc, _, tokens := newTestService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, svc)

	r := chi.NewRouter()
	r.Route("/auth", func(r chi.Router) {
		handler.MountRoutes(r, Middleware{Tokens: tokens}, rbac.Middleware{Logger: logger})
	})
	return r, svc, tokens
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRegisterLoginFlow(t *testing.T) {
	router, _, _ := newAuthRouter(t)

	rr := postJSON(t, router, "/auth/register", `{"name":"Ayu","email":"ayu@example.com","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var session sessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &session))
	require.Equal(t, "user registered successfully", session.Message)
	require.NotEmpty(t, session.Token)
	require.Equal(t, "user", session.User.Role)

	rr = postJSON(t, router, "/auth/login", `{"email":"ayu@example.com","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "ayu@example.com")
	require.NotContains(t, rr.Body.String(), "passwordHash")
}

func TestRegisterValidation(t *testing.T) {
	router, _, _ := newAuthRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"email":"a@example.com","password":"s3cret-pass"}`},
		{name: "bad email", body: `{"name":"Ayu","email":"nope","password":"s3cret-pass"}`},
		{name: "short password", body: `{"name":"Ayu","email":"a@example.com","password":"short"}`},
		{name: "not json", body: `{{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := postJSON(t, router, "/auth/register", tc.body)
			require.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	router, _, _ := newAuthRouter(t)

	rr := postJSON(t, router, "/auth/register", `{"name":"Ayu","email":"ayu@example.com","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = postJSON(t, router, "/auth/register", `{"name":"Other","email":"ayu@example.com","password":"another-pass"}`)
	require.Equal(t, http.StatusConflict, rr.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _, _ := newAuthRouter(t)

	rr := postJSON(t, router, "/auth/register", `{"name":"Ayu","email":"ayu@example.com","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = postJSON(t, router, "/auth/login", `{"email":"ayu@example.com","password":"wrong-pass"}`)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Contains(t, rr.Body.String(), "invalid email or password")
}

func TestAdminEndpointsRequireSuperadmin(t *testing.T) {
	router, svc, tokens := newAuthRouter(t)

	_, userToken, err := svc.Register(context.Background(), "Ayu", "ayu@example.com", "s3cret-pass")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/admin/create", strings.NewReader(`{"name":"Ops","email":"ops@example.com","password":"s3cret-pass"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+userToken)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusForbidden, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/auth/admin/users", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	superToken, err := tokens.Issue(uuid.New(), rbac.RoleSuperadmin)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPost, "/auth/admin/create", strings.NewReader(`{"name":"Ops","email":"ops@example.com","password":"s3cret-pass"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+superToken)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Contains(t, rr.Body.String(), `"role":"admin"`)

	req = httptest.NewRequest(http.MethodGet, "/auth/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+superToken)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"count":2`)
}
