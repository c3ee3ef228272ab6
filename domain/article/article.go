// Package article provides the article domain types consumed by the
// classification pipeline. Articles are written by the external content
// source; the pipeline only reads them.
package article

import "time"

// Article is one piece of content awaiting or having received tags.
// IDs are opaque strings assigned by the content source.
type Article struct {
	id        string
	title     string
	snippet   string
	body      string
	createdAt time.Time
	updatedAt time.Time
}

// New creates an Article with the given content fields.
func New(id, title, snippet, body string) Article {
	return Article{
		id:      id,
		title:   title,
		snippet: snippet,
		body:    body,
	}
}

// NewWithTimestamps creates an Article with all fields (used by stores).
func NewWithTimestamps(id, title, snippet, body string, createdAt, updatedAt time.Time) Article {
	return Article{
		id:        id,
		title:     title,
		snippet:   snippet,
		body:      body,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the article ID.
func (a Article) ID() string { return a.id }

// Title returns the article title.
func (a Article) Title() string { return a.title }

// Snippet returns the short summary shown in listings.
func (a Article) Snippet() string { return a.snippet }

// Body returns the full article text.
func (a Article) Body() string { return a.body }

// CreatedAt returns when the article was first stored.
func (a Article) CreatedAt() time.Time { return a.createdAt }

// UpdatedAt returns when the article was last modified.
func (a Article) UpdatedAt() time.Time { return a.updatedAt }

// ContentChanged reports whether the classification-relevant text differs
// between the two versions. Edits to other fields (snippet, metadata held
// elsewhere) do not warrant reclassification.
func (a Article) ContentChanged(other Article) bool {
	return a.title != other.title || a.body != other.body
}
