package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"suryayoga/internal/config"
	"suryayoga/internal/i18n"
	"suryayoga/internal/service"
)

func newOAuthHandler(t *testing.T, clientID string) *OAuthHandler {
	t.Helper()

	app := newTestApp(t)
	cfg := &config.Config{
		Environment:     "test",
		BaseURL:         "http://localhost:3000",
		SessionDuration: time.Hour,
	}
	oauth := service.NewOAuthService(clientID, "secret", "http://localhost:8080/api/auth/google/callback", app.users, app.tokens)
	return NewOAuthHandler(oauth, cfg)
}

func TestGoogleURLRequiresConfiguration(t *testing.T) {
	h := newOAuthHandler(t, "")

	rec := httptest.NewRecorder()
	h.GoogleURL(rec, httptest.NewRequest("GET", "/api/auth/google/url?state=abc", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 without a client id, got %d", rec.Code)
	}
}

func TestGoogleURLRequiresState(t *testing.T) {
	h := newOAuthHandler(t, "test-client")

	rec := httptest.NewRecorder()
	h.GoogleURL(rec, httptest.NewRequest("GET", "/api/auth/google/url", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without state, got %d", rec.Code)
	}
}

func TestGoogleCallbackReportsErrorsToOpener(t *testing.T) {
	h := newOAuthHandler(t, "test-client")

	tests := []struct {
		name    string
		query   string
		message string
	}{
		{
			name:    "consent denied",
			query:   "error=access_denied",
			message: "Access denied",
		},
		{
			name:    "provider error uses the bilingual message",
			query:   "error=server_error",
			message: i18n.MsgGoogleSignInFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.GoogleCallback(rec, httptest.NewRequest("GET", "/api/auth/google/callback?"+tt.query, nil))

			body := rec.Body.String()
			if !strings.Contains(body, "GOOGLE_AUTH_ERROR") {
				t.Error("Popup should post GOOGLE_AUTH_ERROR to the opener")
			}
			if !strings.Contains(body, tt.message) {
				t.Errorf("Popup body should carry %q, got:\n%s", tt.message, body)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("Expected HTML popup response, got %q", ct)
			}
		})
	}
}

func TestGoogleCallbackRequiresCode(t *testing.T) {
	h := newOAuthHandler(t, "test-client")

	rec := httptest.NewRecorder()
	h.GoogleCallback(rec, httptest.NewRequest("GET", "/api/auth/google/callback", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without an authorization code, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "GOOGLE_AUTH_ERROR") {
		t.Error("Popup should post GOOGLE_AUTH_ERROR to the opener")
	}
}
