package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/newsroomhq/newstag/application/service"
	"github.com/newsroomhq/newstag/internal/database"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantTitle  string
	}{
		{
			name:       "api error carries its code",
			err:        NewAPIError(http.StatusBadRequest, "invalid request body", nil),
			wantStatus: http.StatusBadRequest,
			wantTitle:  "API Error",
		},
		{
			name:       "authentication error",
			err:        NewAuthenticationError("missing or invalid API key"),
			wantStatus: http.StatusUnauthorized,
			wantTitle:  "Authentication Failed",
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("lookup: %w", database.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantTitle:  "Not Found",
		},
		{
			name:       "duplicate article",
			err:        fmt.Errorf("create: %w", service.ErrArticleExists),
			wantStatus: http.StatusConflict,
			wantTitle:  "Conflict",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantTitle:  "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/articles", nil)
			w := httptest.NewRecorder()
			WriteError(w, req, tt.err, nil)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %q, want application/json", ct)
			}

			var resp errorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if len(resp.Errors) != 1 {
				t.Fatalf("errors = %d, want 1", len(resp.Errors))
			}
			if resp.Errors[0].Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", resp.Errors[0].Title, tt.wantTitle)
			}
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewAPIError(http.StatusBadRequest, "bad input", cause)

	if !errors.Is(err, cause) {
		t.Error("APIError does not unwrap to its cause")
	}
	if err.Code() != http.StatusBadRequest {
		t.Errorf("code = %d, want %d", err.Code(), http.StatusBadRequest)
	}
}

func TestAuthenticationError_MatchesSentinel(t *testing.T) {
	err := NewAuthenticationError("bad key")
	if !errors.Is(err, ErrAuthentication) {
		t.Error("AuthenticationError does not match ErrAuthentication")
	}
}
