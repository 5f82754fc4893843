package handlers

import (
	"net/http"
	"time"

	"suryayoga/internal/database"
	"suryayoga/internal/repository"
)

// HealthHandler serves the liveness endpoint used by deploy checks
type HealthHandler struct {
	db       *database.DB
	users    *repository.UserRepository
	sessions *repository.SessionRepository
	news     *repository.NewsRepository
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.DB, users *repository.UserRepository, sessions *repository.SessionRepository, news *repository.NewsRepository) *HealthHandler {
	return &HealthHandler{db: db, users: users, sessions: sessions, news: news}
}

// Health handles GET /api/health: a DB ping plus a couple of cheap counts
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"status":    "unhealthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"error":     err.Error(),
		})
		return
	}

	counts, err := h.users.CountUsers()
	if err != nil {
		respondInternalError(w, err)
		return
	}
	activeSessions, err := h.sessions.CountActiveSessions()
	if err != nil {
		respondInternalError(w, err)
		return
	}
	_, publishedNews, _, err := h.news.CountPosts()
	if err != nil {
		respondInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  "connected",
		"stats": map[string]interface{}{
			"users":          counts.Total,
			"activeSessions": activeSessions,
			"publishedNews":  publishedNews,
		},
	})
}
