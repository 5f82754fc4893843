package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"suryayoga/internal/database"
	"suryayoga/internal/models"
)

// NewsRepository persists news posts and their comments. MediaFiles is
// stored as a JSON array in a TEXT column so the schema stays identical
// across dialects.
type NewsRepository struct {
	db *database.DB
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *database.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// NewsPostParams carries the writable fields of a news post
type NewsPostParams struct {
	TitleEn       string
	TitleGe       string
	ContentEn     string
	ContentGe     string
	ExcerptEn     string
	ExcerptGe     string
	FeaturedImage string
	MediaFiles    []string
	IsPublished   bool
}

func marshalMediaFiles(files []string) (string, error) {
	if len(files) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(files)
	if err != nil {
		return "", fmt.Errorf("failed to encode media files: %w", err)
	}
	return string(data), nil
}

func unmarshalMediaFiles(raw string) []string {
	if raw == "" {
		return nil
	}
	var files []string
	if err := json.Unmarshal([]byte(raw), &files); err != nil {
		return nil
	}
	if len(files) == 0 {
		return nil
	}
	return files
}

// CreatePost inserts a news post. A post created already published gets its
// published_at stamped immediately.
func (r *NewsRepository) CreatePost(authorID int64, params NewsPostParams) (int64, error) {
	media, err := marshalMediaFiles(params.MediaFiles)
	if err != nil {
		return 0, err
	}

	var publishedAt interface{}
	if params.IsPublished {
		publishedAt = time.Now()
	}

	query := `
		INSERT INTO news_posts (title_en, title_ge, content_en, content_ge, excerpt_en, excerpt_ge,
			featured_image, media_files, author_id, is_published, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		params.TitleEn, params.TitleGe, params.ContentEn, params.ContentGe,
		params.ExcerptEn, params.ExcerptGe, params.FeaturedImage, media,
		authorID, params.IsPublished, publishedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create news post: %w", err)
	}
	return id, nil
}

const newsColumns = `p.id, p.title_en, p.title_ge, p.content_en, p.content_ge,
	COALESCE(p.excerpt_en, ''), COALESCE(p.excerpt_ge, ''),
	COALESCE(p.featured_image, ''), COALESCE(p.media_files, ''),
	p.author_id, u.username, p.is_published, p.published_at, p.created_at, p.updated_at`

func (r *NewsRepository) scanPost(scan func(dest ...interface{}) error) (*models.NewsPost, error) {
	post := &models.NewsPost{}
	var media string
	var publishedAt sql.NullTime
	err := scan(
		&post.ID,
		&post.TitleEn,
		&post.TitleGe,
		&post.ContentEn,
		&post.ContentGe,
		&post.ExcerptEn,
		&post.ExcerptGe,
		&post.FeaturedImage,
		&media,
		&post.AuthorID,
		&post.Username,
		&post.IsPublished,
		&publishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	post.MediaFiles = unmarshalMediaFiles(media)
	if publishedAt.Valid {
		t := publishedAt.Time
		post.PublishedAt = &t
	}
	return post, nil
}

// GetPublishedPosts returns published posts with their approved comment
// counts, most recently published first.
func (r *NewsRepository) GetPublishedPosts() ([]*models.NewsPost, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			(SELECT COUNT(*) FROM news_comments c WHERE c.post_id = p.id AND c.is_approved = %s)
		FROM news_posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.is_published = %s
		ORDER BY p.published_at DESC
	`, newsColumns, r.db.Dialect.BoolValue(true), r.db.Dialect.BoolValue(true))
	return r.queryPosts(query, true)
}

// GetAllPosts returns every post, drafts included, newest first
func (r *NewsRepository) GetAllPosts() ([]*models.NewsPost, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			(SELECT COUNT(*) FROM news_comments c WHERE c.post_id = p.id AND c.is_approved = %s)
		FROM news_posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC
	`, newsColumns, r.db.Dialect.BoolValue(true))
	return r.queryPosts(query, true)
}

func (r *NewsRepository) queryPosts(query string, withCount bool, args ...interface{}) ([]*models.NewsPost, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query news posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.NewsPost{}
	for rows.Next() {
		var post *models.NewsPost
		if withCount {
			post, err = r.scanPostWithCount(rows)
		} else {
			post, err = r.scanPost(rows.Scan)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan news post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate news posts: %w", err)
	}
	return posts, nil
}

func (r *NewsRepository) scanPostWithCount(rows *sql.Rows) (*models.NewsPost, error) {
	post := &models.NewsPost{}
	var media string
	var publishedAt sql.NullTime
	err := rows.Scan(
		&post.ID,
		&post.TitleEn,
		&post.TitleGe,
		&post.ContentEn,
		&post.ContentGe,
		&post.ExcerptEn,
		&post.ExcerptGe,
		&post.FeaturedImage,
		&media,
		&post.AuthorID,
		&post.Username,
		&post.IsPublished,
		&publishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	post.MediaFiles = unmarshalMediaFiles(media)
	if publishedAt.Valid {
		t := publishedAt.Time
		post.PublishedAt = &t
	}
	return post, nil
}

// GetPostByID returns one post, or nil if it does not exist
func (r *NewsRepository) GetPostByID(id int64) (*models.NewsPost, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM news_posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = ?
	`, newsColumns)
	post, err := r.scanPost(r.db.QueryRow(query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get news post: %w", err)
	}
	return post, nil
}

// UpdatePost rewrites a post's content fields. Publishing a post that was
// never published before stamps published_at; republishing keeps the
// original stamp.
func (r *NewsRepository) UpdatePost(id int64, params NewsPostParams) (bool, error) {
	media, err := marshalMediaFiles(params.MediaFiles)
	if err != nil {
		return false, err
	}

	// published_at must be assigned before is_published: MySQL evaluates
	// SET clauses left to right, and the CASE reads the stored flag.
	query := `
		UPDATE news_posts
		SET published_at = CASE WHEN ? AND published_at IS NULL THEN ? ELSE published_at END,
			title_en = ?, title_ge = ?, content_en = ?, content_ge = ?,
			excerpt_en = ?, excerpt_ge = ?, featured_image = ?, media_files = ?,
			is_published = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		params.IsPublished, time.Now(),
		params.TitleEn, params.TitleGe, params.ContentEn, params.ContentGe,
		params.ExcerptEn, params.ExcerptGe, params.FeaturedImage, media,
		params.IsPublished, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update news post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return rows > 0, nil
}

// TogglePublication flips a post's published flag. First publication stamps
// published_at; unpublishing and republishing leave the stamp alone.
func (r *NewsRepository) TogglePublication(id int64) (bool, error) {
	// published_at first, for the same left to right reason as UpdatePost.
	query := `
		UPDATE news_posts
		SET published_at = CASE WHEN NOT is_published AND published_at IS NULL THEN ? ELSE published_at END,
			is_published = NOT is_published,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return false, fmt.Errorf("failed to toggle publication: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read toggle result: %w", err)
	}
	return rows > 0, nil
}

// DeletePost removes a post; its comments go with it via the cascading
// foreign key.
func (r *NewsRepository) DeletePost(id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM news_posts WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete news post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return rows > 0, nil
}

// CreateComment inserts an auto-approved comment and returns its id
func (r *NewsRepository) CreateComment(postID, userID int64, content string) (int64, error) {
	query := `
		INSERT INTO news_comments (post_id, user_id, content, is_approved)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, postID, userID, content, true)
	if err != nil {
		return 0, fmt.Errorf("failed to create comment: %w", err)
	}
	return id, nil
}

// GetCommentsByPost returns a post's approved comments, oldest first
func (r *NewsRepository) GetCommentsByPost(postID int64) ([]*models.NewsComment, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.post_id, c.user_id, u.username, c.content, c.is_approved, c.created_at, c.updated_at
		FROM news_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = ? AND c.is_approved = %s
		ORDER BY c.created_at ASC
	`, r.db.Dialect.BoolValue(true))
	return r.queryComments(query, postID)
}

// GetAllComments returns every comment across all posts, newest first
func (r *NewsRepository) GetAllComments() ([]*models.NewsComment, error) {
	query := `
		SELECT c.id, c.post_id, c.user_id, u.username, c.content, c.is_approved, c.created_at, c.updated_at
		FROM news_comments c
		JOIN users u ON u.id = c.user_id
		ORDER BY c.created_at DESC
	`
	return r.queryComments(query)
}

func (r *NewsRepository) queryComments(query string, args ...interface{}) ([]*models.NewsComment, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.NewsComment{}
	for rows.Next() {
		comment := &models.NewsComment{}
		err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.UserID,
			&comment.Username,
			&comment.Content,
			&comment.IsApproved,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a comment and reports whether it existed
func (r *NewsRepository) DeleteComment(id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM news_comments WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete comment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return rows > 0, nil
}

// CountPosts returns total and published post counts plus total comments
func (r *NewsRepository) CountPosts() (total, published, comments int, err error) {
	if err = r.db.QueryRow("SELECT COUNT(*) FROM news_posts").Scan(&total); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count news posts: %w", err)
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM news_posts WHERE is_published = %s", r.db.Dialect.BoolValue(true))
	if err = r.db.QueryRow(query).Scan(&published); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count published posts: %w", err)
	}
	if err = r.db.QueryRow("SELECT COUNT(*) FROM news_comments").Scan(&comments); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return total, published, comments, nil
}
