package repository

import (
	"testing"
	"time"
)

func seedAdmin(t *testing.T, users *UserRepository) int64 {
	t.Helper()
	user, err := users.CreateUser("admin", "admin@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	users.MarkVerified("admin@example.com")
	users.PromoteToAdmin("admin@example.com")
	return user.ID
}

func TestNewsRepository_DraftsStayHidden(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	news := NewNewsRepository(db)
	adminID := seedAdmin(t, users)

	draftID, err := news.CreatePost(adminID, NewsPostParams{
		TitleEn: "Draft", TitleGe: "მონახაზი",
		ContentEn: "body", ContentGe: "ტექსტი",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	published, err := news.GetPublishedPosts()
	if err != nil {
		t.Fatalf("GetPublishedPosts failed: %v", err)
	}
	if len(published) != 0 {
		t.Error("Draft leaked into the published list")
	}

	all, err := news.GetAllPosts()
	if err != nil {
		t.Fatalf("GetAllPosts failed: %v", err)
	}
	if len(all) != 1 || all[0].ID != draftID {
		t.Fatal("Draft missing from the admin list")
	}
	if all[0].PublishedAt != nil {
		t.Error("Draft should have no published_at")
	}
}

func TestNewsRepository_TogglePreservesPublishedAt(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	news := NewNewsRepository(db)
	adminID := seedAdmin(t, users)

	id, err := news.CreatePost(adminID, NewsPostParams{
		TitleEn: "Post", TitleGe: "პოსტი",
		ContentEn: "body", ContentGe: "ტექსტი",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	// First publish stamps published_at.
	if _, err := news.TogglePublication(id); err != nil {
		t.Fatalf("TogglePublication failed: %v", err)
	}
	post, _ := news.GetPostByID(id)
	if !post.IsPublished {
		t.Fatal("Post should be published after toggle")
	}
	if post.PublishedAt == nil {
		t.Fatal("First publish should stamp published_at")
	}
	firstPublished := *post.PublishedAt

	// Unpublish, wait, republish: the stamp must not move.
	if _, err := news.TogglePublication(id); err != nil {
		t.Fatalf("TogglePublication failed: %v", err)
	}
	post, _ = news.GetPostByID(id)
	if post.IsPublished {
		t.Fatal("Post should be a draft after second toggle")
	}
	if post.PublishedAt == nil {
		t.Fatal("Unpublishing must keep the original stamp")
	}

	time.Sleep(1100 * time.Millisecond)
	if _, err := news.TogglePublication(id); err != nil {
		t.Fatalf("TogglePublication failed: %v", err)
	}
	post, _ = news.GetPostByID(id)
	if !post.IsPublished {
		t.Fatal("Post should be published again")
	}
	if !post.PublishedAt.Equal(firstPublished) {
		t.Errorf("published_at moved from %v to %v on republish", firstPublished, *post.PublishedAt)
	}
}

func TestNewsRepository_UpdateKeepsFirstPublication(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	news := NewNewsRepository(db)
	adminID := seedAdmin(t, users)

	id, _ := news.CreatePost(adminID, NewsPostParams{
		TitleEn: "Post", TitleGe: "პოსტი",
		ContentEn: "body", ContentGe: "ტექსტი",
		IsPublished: true,
	})
	post, _ := news.GetPostByID(id)
	if post.PublishedAt == nil {
		t.Fatal("Publishing at creation should stamp published_at")
	}
	stamp := *post.PublishedAt

	time.Sleep(1100 * time.Millisecond)
	found, err := news.UpdatePost(id, NewsPostParams{
		TitleEn: "Edited", TitleGe: "რედაქტირებული",
		ContentEn: "new body", ContentGe: "ახალი ტექსტი",
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if !found {
		t.Fatal("UpdatePost should match the row")
	}

	post, _ = news.GetPostByID(id)
	if post.TitleEn != "Edited" {
		t.Errorf("TitleEn = %s, want Edited", post.TitleEn)
	}
	if !post.PublishedAt.Equal(stamp) {
		t.Errorf("published_at moved from %v to %v on update", stamp, *post.PublishedAt)
	}
}

func TestNewsRepository_MediaFilesRoundTrip(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	news := NewNewsRepository(db)
	adminID := seedAdmin(t, users)

	id, err := news.CreatePost(adminID, NewsPostParams{
		TitleEn: "Post", TitleGe: "პოსტი",
		ContentEn: "body", ContentGe: "ტექსტი",
		MediaFiles: []string{"a.jpg", "b.mp4"},
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	post, err := news.GetPostByID(id)
	if err != nil {
		t.Fatalf("GetPostByID failed: %v", err)
	}
	if len(post.MediaFiles) != 2 || post.MediaFiles[0] != "a.jpg" || post.MediaFiles[1] != "b.mp4" {
		t.Errorf("MediaFiles = %v", post.MediaFiles)
	}
}

func TestNewsRepository_Comments(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	news := NewNewsRepository(db)
	adminID := seedAdmin(t, users)

	postID, _ := news.CreatePost(adminID, NewsPostParams{
		TitleEn: "Post", TitleGe: "პოსტი",
		ContentEn: "body", ContentGe: "ტექსტი",
		IsPublished: true,
	})

	commentID, err := news.CreateComment(postID, adminID, "Lovely class today")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	comments, err := news.GetCommentsByPost(postID)
	if err != nil {
		t.Fatalf("GetCommentsByPost failed: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("Expected 1 comment, got %d", len(comments))
	}
	if !comments[0].IsApproved {
		t.Error("Comments should be auto-approved")
	}
	if comments[0].Username != "admin" {
		t.Errorf("Username = %s, want admin", comments[0].Username)
	}

	// The published list reports the approved comment count.
	published, _ := news.GetPublishedPosts()
	if len(published) != 1 || published[0].CommentCount != 1 {
		t.Errorf("CommentCount not reported in listing")
	}

	found, err := news.DeleteComment(commentID)
	if err != nil {
		t.Fatalf("DeleteComment failed: %v", err)
	}
	if !found {
		t.Error("DeleteComment should report the row existed")
	}
}

func TestNewsRepository_DeletePostCascadesComments(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	news := NewNewsRepository(db)
	adminID := seedAdmin(t, users)

	postID, _ := news.CreatePost(adminID, NewsPostParams{
		TitleEn: "Post", TitleGe: "პოსტი",
		ContentEn: "body", ContentGe: "ტექსტი",
		IsPublished: true,
	})
	news.CreateComment(postID, adminID, "first")
	news.CreateComment(postID, adminID, "second")

	found, err := news.DeletePost(postID)
	if err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if !found {
		t.Fatal("DeletePost should match the row")
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM news_comments WHERE post_id = ?", postID).Scan(&count)
	if err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected cascade delete of comments, found %d", count)
	}
}
