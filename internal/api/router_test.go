package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/accounthub/accounts-api/internal/core/domain"
	"github.com/accounthub/accounts-api/internal/infrastructure/db/sqlite"
	"github.com/accounthub/accounts-api/internal/pkg/config"
)

// newTestRouter wires the full stack over an in-memory database. The router
// is built once per test because the prometheus middleware registers its
// collectors globally.
func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := sqlite.Connect(context.Background(), sqlite.Config{DSN: "file::memory:"})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := sqlite.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		Port:     "0",
		Env:      "test",
		LogLevel: "error",
		JWT: config.JWTConfig{
			Secret:   "test-secret",
			Issuer:   "accounts-api",
			Audience: "accounts-api",
			TTL:      8 * time.Hour,
		},
	}
	return NewRouter(db, cfg, zerolog.Nop())
}

func do(e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo, email, password string) string {
	t.Helper()
	rec := do(e, http.MethodPost, "/api/users/login", "",
		fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: got %d: %s", email, rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("login response: %v", err)
	}
	if resp["token"] == "" {
		t.Fatalf("login %s returned no token", email)
	}
	return resp["token"]
}

func TestRouter_EndToEnd(t *testing.T) {
	e := newTestRouter(t)

	adminToken := login(t, e, "admin@example.com", "pucminas")
	clientToken := login(t, e, "client@example.com", "pucminas")

	t.Run("login with wrong password is 401", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/users/login", "",
			`{"email":"admin@example.com","password":"wrongpass"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("got %d, want 401", rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["message"] == "" {
			t.Fatalf("expected message envelope, got %s", rec.Body.String())
		}
	})

	t.Run("list requires an administrator", func(t *testing.T) {
		if rec := do(e, http.MethodGet, "/api/users", "", ""); rec.Code != http.StatusUnauthorized {
			t.Fatalf("anonymous list: got %d, want 401", rec.Code)
		}
		if rec := do(e, http.MethodGet, "/api/users", clientToken, ""); rec.Code != http.StatusForbidden {
			t.Fatalf("client list: got %d, want 403", rec.Code)
		}
		rec := do(e, http.MethodGet, "/api/users", adminToken, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("admin list: got %d", rec.Code)
		}
		var page domain.Page[*domain.User]
		if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
			t.Fatalf("list body: %v", err)
		}
		if page.TotalCount != 2 {
			t.Fatalf("total = %d, want the 2 seed rows", page.TotalCount)
		}
	})

	t.Run("get by id allows any authenticated user", func(t *testing.T) {
		if rec := do(e, http.MethodGet, "/api/users/1", "", ""); rec.Code != http.StatusUnauthorized {
			t.Fatalf("anonymous get: got %d, want 401", rec.Code)
		}
		if rec := do(e, http.MethodGet, "/api/users/1", clientToken, ""); rec.Code != http.StatusOK {
			t.Fatalf("client get: got %d, want 200", rec.Code)
		}
		if rec := do(e, http.MethodGet, "/api/users/999", clientToken, ""); rec.Code != http.StatusNotFound {
			t.Fatalf("missing id: got %d, want 404", rec.Code)
		}
		if rec := do(e, http.MethodGet, "/api/users/-1", clientToken, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("negative id: got %d, want 400", rec.Code)
		}
	})

	t.Run("register creates a client", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/users/register", "",
			`{"name":"A","email":"a@x.com","password":"password1"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("register: got %d: %s", rec.Code, rec.Body.String())
		}
		var u domain.User
		if err := json.Unmarshal(rec.Body.Bytes(), &u); err != nil {
			t.Fatalf("register body: %v", err)
		}
		if u.Role != domain.RoleClient {
			t.Fatalf("role = %q, want Client", u.Role)
		}
		if u.Password == "password1" {
			t.Fatalf("plaintext in response")
		}

		// Same email again must be rejected by the unique index.
		rec = do(e, http.MethodPost, "/api/users/register", "",
			`{"name":"B","email":"a@x.com","password":"password2"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("duplicate register: got %d, want 409", rec.Code)
		}
	})

	t.Run("admin create update delete", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/users", adminToken,
			`{"name":"Ops","email":"ops@x.com","password":"password1"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create: got %d: %s", rec.Code, rec.Body.String())
		}
		var created domain.User
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("create body: %v", err)
		}
		if created.Role != domain.RoleAdministrator {
			t.Fatalf("created role = %q, want Administrator", created.Role)
		}

		if rec := do(e, http.MethodPost, "/api/users", clientToken,
			`{"name":"X","email":"x@x.com","password":"password1"}`); rec.Code != http.StatusForbidden {
			t.Fatalf("client create: got %d, want 403", rec.Code)
		}

		target := fmt.Sprintf("/api/users/%d", created.ID)
		rec = do(e, http.MethodPut, target, adminToken,
			`{"name":"Ops2","email":"ops@x.com","password":"password1","role":"Client"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("update: got %d: %s", rec.Code, rec.Body.String())
		}
		var updated domain.User
		if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
			t.Fatalf("update body: %v", err)
		}
		if updated.ID != created.ID || updated.Name != "Ops2" {
			t.Fatalf("update did not keep the URL id: %+v", updated)
		}

		if rec := do(e, http.MethodPut, "/api/users/999", adminToken,
			`{"name":"G","email":"g@x.com","password":"password1","role":"Client"}`); rec.Code != http.StatusNotFound {
			t.Fatalf("update missing: got %d, want 404", rec.Code)
		}

		if rec := do(e, http.MethodDelete, target, adminToken, ""); rec.Code != http.StatusNoContent {
			t.Fatalf("delete: got %d", rec.Code)
		}
		if rec := do(e, http.MethodDelete, target, adminToken, ""); rec.Code != http.StatusNotFound {
			t.Fatalf("second delete: got %d, want 404", rec.Code)
		}
	})

	t.Run("pagination boundaries", func(t *testing.T) {
		if rec := do(e, http.MethodGet, "/api/users?page=0", adminToken, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("page=0: got %d, want 400", rec.Code)
		}
		if rec := do(e, http.MethodGet, "/api/users?pageSize=-1", adminToken, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("pageSize=-1: got %d, want 400", rec.Code)
		}
	})

	t.Run("probes and metrics", func(t *testing.T) {
		if rec := do(e, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
			t.Fatalf("liveness: got %d", rec.Code)
		}
		if rec := do(e, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
			t.Fatalf("readiness: got %d", rec.Code)
		}
		if rec := do(e, http.MethodGet, "/metrics", "", ""); rec.Code != http.StatusOK {
			t.Fatalf("metrics: got %d", rec.Code)
		}
	})
}
