package models

import "time"

// NewsPost is a bilingual news entry. PublishedAt is stamped the first time
// the post is published and survives later unpublish/republish toggles, so
// "recently published" ordering stays stable.
type NewsPost struct {
	ID            int64      `json:"id"`
	TitleEn       string     `json:"title_en"`
	TitleGe       string     `json:"title_ge"`
	ContentEn     string     `json:"content_en"`
	ContentGe     string     `json:"content_ge"`
	ExcerptEn     string     `json:"excerpt_en"`
	ExcerptGe     string     `json:"excerpt_ge"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	MediaFiles    []string   `json:"media_files,omitempty"`
	AuthorID      int64      `json:"author_id"`
	IsPublished   bool       `json:"is_published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Username is populated when joining with the users table.
	Username string `json:"username,omitempty"`
	// CommentCount is populated by listing queries that count approved comments.
	CommentCount int `json:"comment_count"`
}

// NewsComment is a reader comment on a news post. Comments are auto-approved
// on creation; only admins may delete them.
type NewsComment struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"post_id"`
	UserID     int64     `json:"user_id"`
	Content    string    `json:"content"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Username string `json:"username,omitempty"`
}
