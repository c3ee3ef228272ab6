// Package dto defines the request and response shapes of the v1 API.
package dto

import "time"

// ArticleRequest is the payload for creating or updating an article.
type ArticleRequest struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
	Body    string `json:"body"`
}

// ArticleResponse describes an article.
type ArticleResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Snippet   string    `json:"snippet,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Enqueued  *bool     `json:"enqueued,omitempty"`
}

// ArticleListResponse wraps a list of articles.
type ArticleListResponse struct {
	Data []ArticleResponse `json:"data"`
}

// Suggestion is one ranked tag candidate.
type Suggestion struct {
	TagID    int64   `json:"tag_id"`
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
}

// ClassifyRequest is the payload for the single-article entry point.
type ClassifyRequest struct {
	ArticleID string `json:"article_id"`
	Apply     *bool  `json:"apply,omitempty"`
}

// ClassifyResponse carries the ranked suggestions for one article.
type ClassifyResponse struct {
	ArticleID   string       `json:"article_id"`
	Applied     bool         `json:"applied"`
	Suggestions []Suggestion `json:"suggestions"`
}

// BatchRequest is the payload for the batch entry point.
type BatchRequest struct {
	BatchSize int `json:"batch_size"`
}

// BatchItemDetail reports the outcome of one item in a batch.
type BatchItemDetail struct {
	ArticleID string `json:"article_id"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// BatchResponse reports the outcome of a batch invocation.
type BatchResponse struct {
	Processed int               `json:"processed"`
	Details   []BatchItemDetail `json:"details"`
}

// TagResponse describes one vocabulary tag.
type TagResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Embedded bool   `json:"embedded"`
}

// TagListResponse wraps the tag catalog.
type TagListResponse struct {
	Data []TagResponse `json:"data"`
}

// SeedRequest is the payload for seeding vocabulary names.
type SeedRequest struct {
	Tags []string `json:"tags"`
}

// SeedResponse reports how many names were seeded.
type SeedResponse struct {
	Seeded int `json:"seeded"`
}

// BackfillResponse reports the outcome of a vocabulary backfill run.
type BackfillResponse struct {
	Embedded int `json:"embedded"`
	Failed   int `json:"failed"`
}

// QueueStatusResponse reports queue depth per status.
type QueueStatusResponse struct {
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
	Failed     int64 `json:"failed"`
}

// AssignmentResponse describes one applied article-tag assignment.
type AssignmentResponse struct {
	ArticleID string    `json:"article_id"`
	TagID     int64     `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

// AssignmentListResponse wraps assignments for one article.
type AssignmentListResponse struct {
	Data []AssignmentResponse `json:"data"`
}
