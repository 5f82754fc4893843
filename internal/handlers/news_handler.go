package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"suryayoga/internal/repository"
	"suryayoga/internal/service"
)

// NewsHandler serves news posts and their comments. Creation and editing
// are admin routes; reading published content is public.
type NewsHandler struct {
	news *service.NewsService
	mw   *Middleware
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(news *service.NewsService, mw *Middleware) *NewsHandler {
	return &NewsHandler{news: news, mw: mw}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ListPublished handles GET /api/news
func (h *NewsHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	posts, err := h.news.PublishedPosts()
	if err != nil {
		respondInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"posts":   posts,
	})
}

type newsPostRequest struct {
	TitleEn       string   `json:"title_en"`
	TitleGe       string   `json:"title_ge"`
	ContentEn     string   `json:"content_en"`
	ContentGe     string   `json:"content_ge"`
	ExcerptEn     string   `json:"excerpt_en"`
	ExcerptGe     string   `json:"excerpt_ge"`
	FeaturedImage string   `json:"featured_image"`
	MediaFiles    []string `json:"media_files"`
	IsPublished   bool     `json:"is_published"`
}

func (req *newsPostRequest) params() repository.NewsPostParams {
	return repository.NewsPostParams{
		TitleEn:       req.TitleEn,
		TitleGe:       req.TitleGe,
		ContentEn:     req.ContentEn,
		ContentGe:     req.ContentGe,
		ExcerptEn:     req.ExcerptEn,
		ExcerptGe:     req.ExcerptGe,
		FeaturedImage: req.FeaturedImage,
		MediaFiles:    req.MediaFiles,
		IsPublished:   req.IsPublished,
	}
}

func (req *newsPostRequest) complete() bool {
	return req.TitleEn != "" && req.TitleGe != "" && req.ContentEn != "" && req.ContentGe != ""
}

// Create handles POST /api/news (admin)
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	var req newsPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.complete() {
		respondError(w, http.StatusBadRequest, "Title and content are required in both languages")
		return
	}

	postID, err := h.news.CreatePost(session.UserID, req.params())
	if err != nil {
		respondInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"postId":  postID,
		"message": "News post created successfully",
	})
}

// Get handles GET /api/news/{id}. Published posts are public; drafts exist
// only for admins, everyone else gets the same 404 as a missing post.
func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	post, err := h.news.PostByID(id, h.mw.IsAdmin(r))
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
		"post":    post,
	})
}

// Update handles PUT /api/news/{id} (admin)
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var req newsPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.complete() {
		respondError(w, http.StatusBadRequest, "Title and content are required in both languages")
		return
	}

	err := h.news.UpdatePost(id, req.params())
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
		"message": "News post updated successfully",
	})
}

// Delete handles DELETE /api/news/{id} (admin)
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	err := h.news.DeletePost(id)
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
		"message": "News post deleted successfully",
	})
}

// ListComments handles GET /api/news/{id}/comments
func (h *NewsHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	comments, err := h.news.Comments(id)
	if err != nil {
		respondInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"comments": comments,
	})
}

type createCommentRequest struct {
	Content string `json:"content"`
}

// CreateComment handles POST /api/news/{id}/comments (authenticated)
func (h *NewsHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var req createCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		respondError(w, http.StatusBadRequest, "Comment content is required")
		return
	}

	commentID, err := h.news.AddComment(id, session.UserID, content)
	if errors.Is(err, service.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		respondInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"commentId": commentID,
	})
}

// DeleteComment handles DELETE /api/comments/{id} (admin)
func (h *NewsHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	err := h.news.DeleteComment(id)
	if errors.Is(err, service.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Comment not found")
		return
	}
	if err != nil {
		respondInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
