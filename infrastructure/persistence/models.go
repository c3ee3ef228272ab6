package persistence

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/newsroomhq/newstag/internal/database"
)

// ArticleModel represents an article in the database.
type ArticleModel struct {
	ID        string    `gorm:"column:id;primaryKey;size:255"`
	Title     string    `gorm:"column:title;type:text"`
	Snippet   string    `gorm:"column:snippet;type:text"`
	Body      string    `gorm:"column:body;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (ArticleModel) TableName() string {
	return "articles"
}

// TagModel represents a vocabulary tag in the database. The embedding is
// stored in the bracketed text format so the same column works on both
// SQLite and PostgreSQL; a NULL embedding marks a tag awaiting backfill.
type TagModel struct {
	ID        int64              `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string             `gorm:"column:name;uniqueIndex;size:255"`
	Embedding *database.PgVector `gorm:"column:embedding;type:text"`
	CreatedAt time.Time          `gorm:"column:created_at"`
	UpdatedAt time.Time          `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (TagModel) TableName() string {
	return "tags"
}

// QueueItemModel represents a classification queue item in the database.
type QueueItemModel struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement"`
	ArticleID    string     `gorm:"column:article_id;index;size:255"`
	Status       string     `gorm:"column:status;index;size:32"`
	EnqueuedAt   time.Time  `gorm:"column:enqueued_at;index"`
	ClaimedAt    *time.Time `gorm:"column:claimed_at;index"`
	ProcessedAt  *time.Time `gorm:"column:processed_at"`
	ErrorMessage string     `gorm:"column:error_message;type:text"`
}

// TableName returns the table name.
func (QueueItemModel) TableName() string {
	return "queue_items"
}

// SuggestionJSON is the stored form of a single ranked suggestion.
type SuggestionJSON struct {
	TagID    int64   `json:"tag_id"`
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
}

// SuggestionsJSON is a custom type for JSON serialization of ranked
// suggestions.
type SuggestionsJSON []SuggestionJSON

// Scan implements sql.Scanner for reading JSON from the database.
func (s *SuggestionsJSON) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into SuggestionsJSON", value)
	}

	return json.Unmarshal(data, s)
}

// Value implements driver.Valuer for writing JSON to the database.
func (s SuggestionsJSON) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// RecordModel represents a classification audit record in the database.
type RecordModel struct {
	ID          string          `gorm:"column:id;primaryKey;size:36"`
	ArticleID   string          `gorm:"column:article_id;index;size:255"`
	Suggestions SuggestionsJSON `gorm:"column:suggestions;type:json"`
	Applied     bool            `gorm:"column:applied"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
}

// TableName returns the table name.
func (RecordModel) TableName() string {
	return "classification_records"
}

// AssignmentModel links an article to a tag. The composite primary key
// enforces at most one assignment per (article, tag) pair.
type AssignmentModel struct {
	ArticleID string    `gorm:"column:article_id;primaryKey;size:255"`
	TagID     int64     `gorm:"column:tag_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName returns the table name.
func (AssignmentModel) TableName() string {
	return "article_tags"
}
