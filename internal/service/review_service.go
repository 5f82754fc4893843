package service

import (
	"errors"
	"log"

	"suryayoga/internal/models"
	"suryayoga/internal/repository"
)

// ErrNotFound reports an operation against an id that does not exist
var ErrNotFound = errors.New("not found")

// ReviewService implements the review moderation workflow. Submissions are
// held pending; only the admin actions here move them out of that state.
type ReviewService struct {
	reviews *repository.ReviewRepository
}

// NewReviewService creates a new review service
func NewReviewService(reviews *repository.ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews}
}

// Submit stores a new review awaiting moderation
func (s *ReviewService) Submit(userID int64, rating int, title, content, language string) (int64, error) {
	id, err := s.reviews.CreateReview(userID, rating, title, content, language)
	if err != nil {
		return 0, err
	}
	log.Printf("Review %d submitted by user %d, pending approval", id, userID)
	return id, nil
}

// ApprovedReviews lists publicly visible reviews, optionally by language
func (s *ReviewService) ApprovedReviews(language string) ([]*models.Review, error) {
	return s.reviews.GetApprovedReviews(language)
}

// PendingReviews lists the moderation queue
func (s *ReviewService) PendingReviews() ([]*models.Review, error) {
	return s.reviews.GetPendingReviews()
}

// AllReviews lists every review with its moderation state
func (s *ReviewService) AllReviews() ([]*models.Review, error) {
	return s.reviews.GetAllReviews()
}

// Approve makes a review publicly visible. Approving twice is a no-op that
// still succeeds.
func (s *ReviewService) Approve(id int64) error {
	found, err := s.reviews.ApproveReview(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	log.Printf("Review %d approved", id)
	return nil
}

// Delete removes a review in any moderation state
func (s *ReviewService) Delete(id int64) error {
	found, err := s.reviews.DeleteReview(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	log.Printf("Review %d deleted", id)
	return nil
}
