package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/accounthub/accounts-api/internal/core/domain"
)

func render(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(err, c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, body["message"]
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidID, http.StatusBadRequest},
		{domain.ErrInvalidPagination, http.StatusBadRequest},
		{domain.ErrNilEntity, http.StatusBadRequest},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrConflict, http.StatusConflict},
	}
	for _, tc := range cases {
		code, msg := render(t, tc.err)
		if code != tc.code {
			t.Fatalf("%v rendered as %d, want %d", tc.err, code, tc.code)
		}
		if msg == "" {
			t.Fatalf("%v rendered without a message", tc.err)
		}
	}
}

func TestErrorHandler_WrappedErrorKeepsContext(t *testing.T) {
	wrapped := fmt.Errorf("get entity 7: %w", domain.ErrNotFound)
	code, msg := render(t, wrapped)
	if code != http.StatusNotFound {
		t.Fatalf("wrapped not-found rendered as %d, want 404", code)
	}
	if msg != wrapped.Error() {
		t.Fatalf("message = %q, want %q", msg, wrapped.Error())
	}
}

func TestErrorHandler_CredentialsMessageIsGeneric(t *testing.T) {
	wrapped := fmt.Errorf("authenticate user admin@example.com: %w", domain.ErrInvalidCredentials)
	code, msg := render(t, wrapped)
	if code != http.StatusUnauthorized {
		t.Fatalf("rendered as %d, want 401", code)
	}
	if msg != domain.ErrInvalidCredentials.Error() {
		t.Fatalf("credentials message should not carry context, got %q", msg)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, msg := render(t, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer"))
	if code != http.StatusBadRequest || msg != "id must be an integer" {
		t.Fatalf("echo error rendered as %d/%q", code, msg)
	}
}

func TestErrorHandler_UnexpectedErrorIsRedacted(t *testing.T) {
	code, msg := render(t, errors.New("pq: connection reset while writing wal"))
	if code != http.StatusInternalServerError {
		t.Fatalf("rendered as %d, want 500", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal cause leaked to client: %q", msg)
	}
}
