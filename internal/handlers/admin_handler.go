package handlers

import (
	"errors"
	"net/http"

	"suryayoga/internal/models"
	"suryayoga/internal/service"
)

// AdminHandler serves the moderation and dashboard endpoints. Every route
// here sits behind RequireAdmin.
type AdminHandler struct {
	reviews *service.ReviewService
	news    *service.NewsService
	metrics *service.MetricsService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(reviews *service.ReviewService, news *service.NewsService, metrics *service.MetricsService) *AdminHandler {
	return &AdminHandler{reviews: reviews, news: news, metrics: metrics}
}

// PendingReviews handles GET /api/admin/reviews. The default is the
// moderation queue; status=all returns every review with its state.
func (h *AdminHandler) PendingReviews(w http.ResponseWriter, r *http.Request) {
	var reviews []*models.Review
	var err error
	if r.URL.Query().Get("status") == "all" {
		reviews, err = h.reviews.AllReviews()
	} else {
		reviews, err = h.reviews.PendingReviews()
	}
	if err != nil {
		respondInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"reviews": reviews,
	})
}

type reviewActionRequest struct {
	Action   string `json:"action"`
	ReviewID int64  `json:"reviewId"`
}

// ReviewAction handles POST /api/admin/reviews with action approve or delete
func (h *AdminHandler) ReviewAction(w http.ResponseWriter, r *http.Request) {
	var req reviewActionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Action == "" || req.ReviewID == 0 {
		respondError(w, http.StatusBadRequest, "Action and reviewId are required")
		return
	}

	var err error
	var message string
	switch req.Action {
	case "approve":
		err = h.reviews.Approve(req.ReviewID)
		message = "Review approved successfully"
	case "delete":
		err = h.reviews.Delete(req.ReviewID)
		message = "Review deleted successfully"
	default:
		respondError(w, http.StatusBadRequest, `Invalid action. Use "approve" or "delete"`)
		return
	}

	if errors.Is(err, service.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Review not found")
		return
	}
	if err != nil {
		respondInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

// AllNews handles GET /api/admin/news, listing drafts alongside published
// posts
func (h *AdminHandler) AllNews(w http.ResponseWriter, r *http.Request) {
	posts, err := h.news.AllPosts()
	if err != nil {
		respondInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"posts":   posts,
	})
}

type togglePublicationRequest struct {
	PostID int64 `json:"postId"`
}

// ToggleNewsPublication handles PATCH /api/admin/news
func (h *AdminHandler) ToggleNewsPublication(w http.ResponseWriter, r *http.Request) {
	var req togglePublicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.PostID == 0 {
		respondError(w, http.StatusBadRequest, "Post ID is required")
		return
	}

	err := h.news.TogglePublication(req.PostID)
	if errors.Is(err, service.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		respondInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Post publication status updated",
	})
}

// AllComments handles GET /api/admin/comments, the listing admins delete from
func (h *AdminHandler) AllComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.news.AllComments()
	if err != nil {
		respondInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"comments": comments,
	})
}

// Metrics handles GET /api/admin/metrics
func (h *AdminHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.metrics.Collect()
	if err != nil {
		respondInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}
