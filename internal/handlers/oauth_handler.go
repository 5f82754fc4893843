package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"suryayoga/internal/config"
	"suryayoga/internal/i18n"
	"suryayoga/internal/security"
	"suryayoga/internal/service"
)

// OAuthHandler serves the Google sign-in popup flow. The callback answers
// with a small HTML page that reports the outcome to the opener window via
// postMessage and closes itself.
type OAuthHandler struct {
	oauth *service.OAuthService
	cfg   *config.Config
}

// NewOAuthHandler creates a new OAuth handler
func NewOAuthHandler(oauth *service.OAuthService, cfg *config.Config) *OAuthHandler {
	return &OAuthHandler{oauth: oauth, cfg: cfg}
}

// GoogleURL handles GET /api/auth/google/url, giving the popup its consent
// page URL. The state parameter comes from the client, which checks it when
// the popup reports back.
func (h *OAuthHandler) GoogleURL(w http.ResponseWriter, r *http.Request) {
	if !h.oauth.IsEnabled() {
		respondError(w, http.StatusServiceUnavailable, "Google sign-in is not configured")
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		respondError(w, http.StatusBadRequest, "State parameter is required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     h.oauth.AuthURL(state),
	})
}

// GoogleCallback handles GET /api/auth/google/callback
func (h *OAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if !h.oauth.IsEnabled() {
		h.popupError(w, http.StatusServiceUnavailable, "Google sign-in is not configured")
		return
	}

	query := r.URL.Query()
	if oauthErr := query.Get("error"); oauthErr != "" {
		msg := i18n.MsgGoogleSignInFailed
		if oauthErr == "access_denied" {
			msg = "Access denied"
		}
		h.popupError(w, http.StatusOK, msg)
		return
	}

	code := query.Get("code")
	if code == "" {
		h.popupError(w, http.StatusBadRequest, "No authorization code received")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, sessionToken, expiresAt, err := h.oauth.HandleCallback(ctx, code)
	if errors.Is(err, service.ErrGoogleEmailUnverified) {
		h.popupError(w, http.StatusBadRequest, "Google email not verified")
		return
	}
	if err != nil {
		log.Printf("Google callback error: %v", err)
		h.popupError(w, http.StatusInternalServerError, i18n.MsgGoogleSignInFailed)
		return
	}

	http.SetCookie(w, security.NewAuthCookie(r, sessionToken, expiresAt, h.cfg.IsProduction(), h.cfg.CookieDomain))

	// json.Marshal keeps the user fields safe to embed in the script.
	userJSON, err := json.Marshal(map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
	if err != nil {
		h.popupError(w, http.StatusInternalServerError, i18n.MsgGoogleSignInFailed)
		return
	}

	h.popupHTML(w, http.StatusOK, fmt.Sprintf(`window.opener.postMessage({
        type: 'GOOGLE_AUTH_SUCCESS',
        user: %s
      }, window.location.origin);
      window.close();`, userJSON))
}

func (h *OAuthHandler) popupError(w http.ResponseWriter, status int, message string) {
	msgJSON, _ := json.Marshal(message)
	h.popupHTML(w, status, fmt.Sprintf(`window.opener.postMessage({
        type: 'GOOGLE_AUTH_ERROR',
        error: %s
      }, window.location.origin);
      window.close();`, msgJSON))
}

func (h *OAuthHandler) popupHTML(w http.ResponseWriter, status int, script string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<html>
  <body>
    <script>
      %s
    </script>
  </body>
</html>
`, script)
}
