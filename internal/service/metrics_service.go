package service

import (
	"suryayoga/internal/repository"
)

// MetricsService assembles the counters shown on the admin dashboard
type MetricsService struct {
	users   *repository.UserRepository
	reviews *repository.ReviewRepository
	news    *repository.NewsRepository
}

// NewMetricsService creates a new metrics service
func NewMetricsService(users *repository.UserRepository, reviews *repository.ReviewRepository, news *repository.NewsRepository) *MetricsService {
	return &MetricsService{users: users, reviews: reviews, news: news}
}

// UserMetrics reports account totals and a six month signup breakdown
type UserMetrics struct {
	Total         int                         `json:"total"`
	Verified      int                         `json:"verified"`
	Admins        int                         `json:"admins"`
	RecentSignups int                         `json:"recentSignups"`
	ByMonth       []repository.MonthlySignups `json:"byMonth"`
}

// ReviewMetrics reports review moderation totals
type ReviewMetrics struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
}

// NewsMetrics reports post totals
type NewsMetrics struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Drafts    int `json:"drafts"`
}

// CommentMetrics reports comment totals
type CommentMetrics struct {
	Total int `json:"total"`
}

// Metrics is the full dashboard payload
type Metrics struct {
	Users    UserMetrics    `json:"users"`
	Reviews  ReviewMetrics  `json:"reviews"`
	News     NewsMetrics    `json:"news"`
	Comments CommentMetrics `json:"comments"`
}

// Collect gathers all dashboard counters
func (s *MetricsService) Collect() (*Metrics, error) {
	userCounts, err := s.users.CountUsers()
	if err != nil {
		return nil, err
	}
	byMonth, err := s.users.SignupsByMonth()
	if err != nil {
		return nil, err
	}
	if byMonth == nil {
		byMonth = []repository.MonthlySignups{}
	}

	totalReviews, approvedReviews, err := s.reviews.CountReviews()
	if err != nil {
		return nil, err
	}

	totalNews, publishedNews, totalComments, err := s.news.CountPosts()
	if err != nil {
		return nil, err
	}

	return &Metrics{
		Users: UserMetrics{
			Total:         userCounts.Total,
			Verified:      userCounts.Verified,
			Admins:        userCounts.Admins,
			RecentSignups: userCounts.Recent,
			ByMonth:       byMonth,
		},
		Reviews: ReviewMetrics{
			Total:    totalReviews,
			Approved: approvedReviews,
			Pending:  totalReviews - approvedReviews,
		},
		News: NewsMetrics{
			Total:     totalNews,
			Published: publishedNews,
			Drafts:    totalNews - publishedNews,
		},
		Comments: CommentMetrics{
			Total: totalComments,
		},
	}, nil
}
