package service

import (
	"log"

	"suryayoga/internal/models"
	"suryayoga/internal/repository"
)

// NewsService manages bilingual news posts and their comments. Drafts are
// admin-only; publication is a toggle that stamps published_at exactly once.
type NewsService struct {
	news *repository.NewsRepository
}

// NewNewsService creates a new news service
func NewNewsService(news *repository.NewsRepository) *NewsService {
	return &NewsService{news: news}
}

// CreatePost stores a new post authored by the given admin
func (s *NewsService) CreatePost(authorID int64, params repository.NewsPostParams) (int64, error) {
	id, err := s.news.CreatePost(authorID, params)
	if err != nil {
		return 0, err
	}
	log.Printf("News post %d created by user %d (published=%v)", id, authorID, params.IsPublished)
	return id, nil
}

// PublishedPosts lists publicly visible posts with comment counts
func (s *NewsService) PublishedPosts() ([]*models.NewsPost, error) {
	return s.news.GetPublishedPosts()
}

// AllPosts lists every post including drafts
func (s *NewsService) AllPosts() ([]*models.NewsPost, error) {
	return s.news.GetAllPosts()
}

// PostByID returns a post. Unpublished posts are returned only when the
// caller is an admin; everyone else sees them as missing.
func (s *NewsService) PostByID(id int64, isAdmin bool) (*models.NewsPost, error) {
	post, err := s.news.GetPostByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if !post.IsPublished && !isAdmin {
		return nil, ErrNotFound
	}
	return post, nil
}

// UpdatePost rewrites a post's content
func (s *NewsService) UpdatePost(id int64, params repository.NewsPostParams) error {
	found, err := s.news.UpdatePost(id, params)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	log.Printf("News post %d updated", id)
	return nil
}

// TogglePublication flips a post between draft and published
func (s *NewsService) TogglePublication(id int64) error {
	found, err := s.news.TogglePublication(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	log.Printf("News post %d publication toggled", id)
	return nil
}

// DeletePost removes a post and, via the schema, its comments
func (s *NewsService) DeletePost(id int64) error {
	found, err := s.news.DeletePost(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	log.Printf("News post %d deleted", id)
	return nil
}

// AddComment attaches an auto-approved comment to an existing post
func (s *NewsService) AddComment(postID, userID int64, content string) (int64, error) {
	post, err := s.news.GetPostByID(postID)
	if err != nil {
		return 0, err
	}
	if post == nil {
		return 0, ErrNotFound
	}

	id, err := s.news.CreateComment(postID, userID, content)
	if err != nil {
		return 0, err
	}
	log.Printf("Comment %d added to post %d by user %d", id, postID, userID)
	return id, nil
}

// Comments lists a post's approved comments
func (s *NewsService) Comments(postID int64) ([]*models.NewsComment, error) {
	return s.news.GetCommentsByPost(postID)
}

// AllComments lists every comment across all posts for the admin dashboard
func (s *NewsService) AllComments() ([]*models.NewsComment, error) {
	return s.news.GetAllComments()
}

// DeleteComment removes a comment
func (s *NewsService) DeleteComment(id int64) error {
	found, err := s.news.DeleteComment(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	log.Printf("Comment %d deleted", id)
	return nil
}
