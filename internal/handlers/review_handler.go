package handlers

import (
	"net/http"

	"suryayoga/internal/i18n"
	"suryayoga/internal/service"
	"suryayoga/internal/validation"
)

// ReviewHandler serves the public review endpoints
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// List handles GET /api/reviews, returning only approved reviews
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")
	if language != "" {
		if err := validation.ValidateLanguage(language); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	reviews, err := h.reviews.ApprovedReviews(language)
	if err != nil {
		respondInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"reviews": reviews,
	})
}

type createReviewRequest struct {
	Rating   int    `json:"rating"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

// Create handles POST /api/reviews (authenticated). The review goes into
// the moderation queue; it does not appear publicly until approved.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	var req createReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}
	// Reject unknown languages up front; a review stored under one would
	// never surface through the language-filtered listing.
	if err := validation.ValidateLanguage(req.Language); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	lang := i18n.Normalize(req.Language)

	if req.Rating == 0 || req.Content == "" {
		respondError(w, http.StatusBadRequest, i18n.T(lang, i18n.MsgRatingContentNeeded))
		return
	}
	if err := validation.ValidateRating(req.Rating); err != nil {
		respondError(w, http.StatusBadRequest, i18n.T(lang, i18n.MsgRatingRange))
		return
	}
	if req.Title != "" && (len(req.Title) < 3 || len(req.Title) > 100) {
		respondError(w, http.StatusBadRequest, i18n.T(lang, i18n.MsgReviewTitleLength))
		return
	}
	if len(req.Content) < 10 || len(req.Content) > 1000 {
		respondError(w, http.StatusBadRequest, i18n.T(lang, i18n.MsgReviewContentLength))
		return
	}

	reviewID, err := h.reviews.Submit(session.UserID, req.Rating, req.Title, req.Content, req.Language)
	if err != nil {
		respondInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  i18n.T(lang, i18n.MsgReviewSubmitted),
		"reviewId": reviewID,
	})
}
