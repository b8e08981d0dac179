package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func adminProtected(token string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return AdminMiddleware(token)(next)
}

func TestAdminMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		authHeader string
		wantStatus int
	}{
		{
			name:       "no token configured disables endpoint",
			token:      "",
			authHeader: "Bearer anything",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing header",
			token:      "secret",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "bad format",
			token:      "secret",
			authHeader: "Token secret",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong token",
			token:      "secret",
			authHeader: "Bearer nope",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "correct token",
			token:      "secret",
			authHeader: "Bearer secret",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/terapia-api/v1/admin/regenerate", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			adminProtected(tt.token).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
