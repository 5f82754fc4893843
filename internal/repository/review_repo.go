package repository

import (
	"fmt"

	"suryayoga/internal/database"
	"suryayoga/internal/models"
)

// ReviewRepository persists member reviews. Reviews are born unapproved and
// only surface publicly once an admin approves them.
type ReviewRepository struct {
	db *database.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *database.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// CreateReview inserts a pending review and returns its id
func (r *ReviewRepository) CreateReview(userID int64, rating int, title, content, language string) (int64, error) {
	query := `
		INSERT INTO reviews (user_id, rating, title, content, language)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, userID, rating, title, content, language)
	if err != nil {
		return 0, fmt.Errorf("failed to create review: %w", err)
	}
	return id, nil
}

const reviewColumns = `r.id, r.user_id, u.username, r.rating, r.title, r.content, r.language, r.is_approved, r.created_at, r.updated_at`

// GetApprovedReviews returns approved reviews, newest first, optionally
// restricted to one language. An empty language returns all of them.
func (r *ReviewRepository) GetApprovedReviews(language string) ([]*models.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.is_approved = %s
	`, reviewColumns, r.db.Dialect.BoolValue(true))

	var args []interface{}
	if language != "" {
		query += " AND r.language = ?"
		args = append(args, language)
	}
	query += " ORDER BY r.created_at DESC"

	return r.queryReviews(query, args...)
}

// GetPendingReviews returns reviews still waiting on moderation, oldest first
// so admins work through the queue in arrival order.
func (r *ReviewRepository) GetPendingReviews() ([]*models.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.is_approved = %s
		ORDER BY r.created_at ASC
	`, reviewColumns, r.db.Dialect.BoolValue(false))
	return r.queryReviews(query)
}

// GetAllReviews returns every review regardless of moderation state
func (r *ReviewRepository) GetAllReviews() ([]*models.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		ORDER BY r.created_at DESC
	`, reviewColumns)
	return r.queryReviews(query)
}

func (r *ReviewRepository) queryReviews(query string, args ...interface{}) ([]*models.Review, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*models.Review{}
	for rows.Next() {
		review := &models.Review{}
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.Username,
			&review.Rating,
			&review.Title,
			&review.Content,
			&review.Language,
			&review.IsApproved,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

// ApproveReview marks a review approved. Approving an already approved
// review matches the row again, so the operation is idempotent.
func (r *ReviewRepository) ApproveReview(id int64) (bool, error) {
	query := `
		UPDATE reviews
		SET is_approved = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Exec(query, true, id)
	if err != nil {
		return false, fmt.Errorf("failed to approve review: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read approve result: %w", err)
	}
	return rows > 0, nil
}

// DeleteReview removes a review and reports whether it existed
func (r *ReviewRepository) DeleteReview(id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM reviews WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete review: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return rows > 0, nil
}

// CountReviews returns total and approved review counts
func (r *ReviewRepository) CountReviews() (total, approved int, err error) {
	if err = r.db.QueryRow("SELECT COUNT(*) FROM reviews").Scan(&total); err != nil {
		return 0, 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM reviews WHERE is_approved = %s", r.db.Dialect.BoolValue(true))
	if err = r.db.QueryRow(query).Scan(&approved); err != nil {
		return 0, 0, fmt.Errorf("failed to count approved reviews: %w", err)
	}
	return total, approved, nil
}
