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

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, domain.ErrUnauthenticated.Error()},
		{"invalid token", fmt.Errorf("resolve caller: %w", domain.ErrInvalidToken), http.StatusUnauthorized, domain.ErrUnauthenticated.Error()},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, domain.ErrForbidden.Error()},
		{"not found", fmt.Errorf("ticket detail: %w", domain.ErrNotFound), http.StatusNotFound, "not found"},
		{"invalid zone", fmt.Errorf("create ticket: %w", domain.ErrInvalidZone), http.StatusBadRequest, "create ticket: the selected zone does not exist"},
		{"email taken", domain.ErrEmailTaken, http.StatusBadRequest, domain.ErrEmailTaken.Error()},
		{"media", domain.ErrUnsupportedMedia, http.StatusBadRequest, domain.ErrUnsupportedMedia.Error()},
		{"upstream", fmt.Errorf("upload: %w: bucket gone", domain.ErrUpstreamFailure), http.StatusInternalServerError, "internal server error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, body.Error)
			}
			gotChallenge := rec.Header().Get(echo.HeaderWWWAuthenticate)
			if tt.wantCode == http.StatusUnauthorized && gotChallenge != "Bearer" {
				t.Fatalf("expected WWW-Authenticate: Bearer, got %q", gotChallenge)
			}
			if tt.wantCode != http.StatusUnauthorized && gotChallenge != "" {
				t.Fatalf("unexpected WWW-Authenticate header %q", gotChallenge)
			}
		})
	}
}
