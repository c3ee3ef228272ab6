// Package tag provides the tag catalog domain types.
package tag

import (
	"strings"
	"time"
)

// Tag is one entry in the classification vocabulary. Names are unique after
// case normalization. The embedding is nil until the vocabulary backfill (or
// external seeding) supplies a vector.
type Tag struct {
	id        int64
	name      string
	embedding []float64
	createdAt time.Time
	updatedAt time.Time
}

// New creates a Tag with a normalized name and no embedding.
func New(name string) Tag {
	return Tag{name: NormalizeName(name)}
}

// NewWithID creates a Tag with all fields (used by stores).
func NewWithID(id int64, name string, embedding []float64, createdAt, updatedAt time.Time) Tag {
	return Tag{
		id:        id,
		name:      NormalizeName(name),
		embedding: copyVector(embedding),
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// NormalizeName lowercases and trims a tag name so that "Weather",
// " weather " and "WEATHER" all address the same catalog entry.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ID returns the tag ID.
func (t Tag) ID() int64 { return t.id }

// Name returns the normalized tag name.
func (t Tag) Name() string { return t.name }

// Embedding returns a copy of the tag's embedding vector, or nil when the
// tag has not been embedded yet.
func (t Tag) Embedding() []float64 { return copyVector(t.embedding) }

// HasEmbedding reports whether the tag carries a non-empty vector.
func (t Tag) HasEmbedding() bool { return len(t.embedding) > 0 }

// Dimension returns the embedding dimension (0 when unembedded).
func (t Tag) Dimension() int { return len(t.embedding) }

// CreatedAt returns when the tag was created.
func (t Tag) CreatedAt() time.Time { return t.createdAt }

// UpdatedAt returns when the tag was last updated.
func (t Tag) UpdatedAt() time.Time { return t.updatedAt }

// WithEmbedding returns a copy of the tag carrying the given vector.
func (t Tag) WithEmbedding(embedding []float64) Tag {
	t.embedding = copyVector(embedding)
	return t
}

func copyVector(v []float64) []float64 {
	if v == nil {
		return nil
	}
	cp := make([]float64, len(v))
	copy(cp, v)
	return cp
}
