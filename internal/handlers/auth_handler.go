package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"suryayoga/internal/config"
	"suryayoga/internal/i18n"
	"suryayoga/internal/security"
	"suryayoga/internal/service"
	"suryayoga/internal/validation"
)

// AuthHandler serves registration, login and the email-token endpoints
type AuthHandler struct {
	auth *service.AuthService
	cfg  *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{auth: auth, cfg: cfg}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Language string `json:"language"`
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	lang := i18n.Normalize(req.Language)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		respondError(w, http.StatusBadRequest, "Password must be at least 8 characters with uppercase, lowercase, number, and special character")
		return
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err := h.auth.Register(r.Context(), req.Username, req.Email, req.Password, lang)
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		respondError(w, http.StatusBadRequest, i18n.T(lang, i18n.MsgEmailTaken))
		return
	case errors.Is(err, service.ErrUsernameTaken):
		respondError(w, http.StatusBadRequest, i18n.T(lang, i18n.MsgUsernameTaken))
		return
	case errors.Is(err, service.ErrEmailDispatch):
		respondError(w, http.StatusInternalServerError, i18n.T(lang, i18n.MsgEmailSendFailed))
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, i18n.T(lang, i18n.MsgDatabaseError))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": i18n.T(lang, i18n.MsgRegisterSuccess),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Language string `json:"language"`
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	lang := i18n.Normalize(req.Language)

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, i18n.T(lang, i18n.MsgCredentialsRequired))
		return
	}

	user, sessionToken, expiresAt, err := h.auth.Login(req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		respondError(w, http.StatusBadRequest, i18n.T(lang, i18n.MsgUserNotFound))
		return
	case errors.Is(err, service.ErrNotVerified):
		respondError(w, http.StatusBadRequest, i18n.T(lang, i18n.MsgVerifyFirst))
		return
	case errors.Is(err, service.ErrInvalidPassword):
		respondError(w, http.StatusBadRequest, i18n.T(lang, i18n.MsgInvalidPassword))
		return
	case err != nil:
		respondInternalError(w, err)
		return
	}

	http.SetCookie(w, security.NewAuthCookie(r, sessionToken, expiresAt, h.cfg.IsProduction(), h.cfg.CookieDomain))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": i18n.T(lang, i18n.MsgLoginSuccess),
		"user": map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Logout handles POST /api/logout. Revocation is best effort; the cookie is
// cleared even when no session was found.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session := SessionFromContext(r.Context()); session != nil {
		if err := h.auth.Logout(session.SessionID); err != nil {
			respondInternalError(w, err)
			return
		}
	}

	http.SetCookie(w, security.DeleteAuthCookie(r, h.cfg.IsProduction(), h.cfg.CookieDomain))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	})
}

// VerifyEmail handles GET /api/verify-email. Called from a mail client, so
// the outcome is a redirect back into the site rather than JSON.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	tokenParam := r.URL.Query().Get("token")
	if tokenParam == "" {
		h.redirectVerify(w, r, "error=missing_token")
		return
	}

	err := h.auth.VerifyEmail(tokenParam)
	switch {
	case errors.Is(err, service.ErrInvalidToken):
		h.redirectVerify(w, r, "error=invalid_token")
	case errors.Is(err, service.ErrUserNotFound):
		h.redirectVerify(w, r, "error=user_not_found")
	case err != nil:
		h.redirectVerify(w, r, "error=verification_failed")
	default:
		h.redirectVerify(w, r, "success=verified")
	}
}

func (h *AuthHandler) redirectVerify(w http.ResponseWriter, r *http.Request, query string) {
	http.Redirect(w, r, fmt.Sprintf("%s/register?%s", h.cfg.BaseURL, query), http.StatusFound)
}

type forgotPasswordRequest struct {
	Email    string `json:"email"`
	Language string `json:"language"`
}

// ForgotPassword handles POST /api/forgot-password. The response is the
// same whether or not the email exists, so it cannot be used to enumerate
// accounts.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	lang := i18n.Normalize(req.Language)

	if req.Email == "" {
		respondError(w, http.StatusBadRequest, i18n.T(lang, i18n.MsgEmailRequired))
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), req.Email, lang); err != nil {
		respondInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": i18n.T(lang, i18n.MsgResetInstructions),
	})
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
	Language string `json:"language"`
}

// ResetPassword handles POST /api/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	lang := i18n.Normalize(req.Language)

	if req.Token == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, i18n.T(lang, i18n.MsgTokenPasswordNeeded))
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		respondError(w, http.StatusBadRequest, "Password must be at least 8 characters with uppercase, lowercase, number, and special character")
		return
	}

	err := h.auth.ResetPassword(req.Token, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidToken):
		respondError(w, http.StatusBadRequest, i18n.T(lang, i18n.MsgResetLinkInvalid))
		return
	case errors.Is(err, service.ErrUserNotFound):
		respondError(w, http.StatusNotFound, i18n.T(lang, i18n.MsgUserNotFound))
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, i18n.T(lang, i18n.MsgPasswordResetFailed))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": i18n.T(lang, i18n.MsgPasswordResetOK),
	})
}

// Me handles GET /api/me, reporting fresh user data for the session
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.auth.CurrentUser(session.UserID)
	if errors.Is(err, service.ErrUserNotFound) {
		respondError(w, http.StatusUnauthorized, "User not found or not verified")
		return
	}
	if err != nil {
		respondInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": map[string]interface{}{
			"id":         user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"created_at": user.CreatedAt,
			"is_admin":   user.IsAdmin,
		},
	})
}

type makeAdminRequest struct {
	Email    string `json:"email"`
	AdminKey string `json:"adminKey"`
}

// MakeAdmin handles POST /api/make-admin, the one-time setup route that
// bootstraps the first admin with a shared key.
func (h *AuthHandler) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	var req makeAdminRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}

	err := h.auth.MakeAdmin(req.AdminKey, req.Email)
	switch {
	case errors.Is(err, service.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, "Invalid admin key")
		return
	case errors.Is(err, service.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		respondInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User successfully made admin",
	})
}
