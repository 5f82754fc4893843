package models

import "time"

// Review is a user-submitted testimonial. New reviews start unapproved and
// become publicly visible only after an admin approves them.
type Review struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Language   string    `json:"language"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Username is populated when joining with the users table.
	Username string `json:"username,omitempty"`
}
