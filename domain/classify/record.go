package classify

import "time"

// Record is one classification attempt's audit entry: the suggestions that
// were computed and whether they were applied as assignments. Records are
// append-only; reruns for the same article add new rows.
type Record struct {
	id          string
	articleID   string
	suggestions []Suggestion
	applied     bool
	createdAt   time.Time
}

// NewRecord creates a Record for one classification attempt.
func NewRecord(articleID string, suggestions []Suggestion, applied bool) Record {
	return Record{
		articleID:   articleID,
		suggestions: copySuggestions(suggestions),
		applied:     applied,
	}
}

// NewRecordFull creates a Record with all fields (used by stores).
func NewRecordFull(id, articleID string, suggestions []Suggestion, applied bool, createdAt time.Time) Record {
	return Record{
		id:          id,
		articleID:   articleID,
		suggestions: copySuggestions(suggestions),
		applied:     applied,
		createdAt:   createdAt,
	}
}

// ID returns the record ID.
func (r Record) ID() string { return r.id }

// ArticleID returns the classified article's ID.
func (r Record) ArticleID() string { return r.articleID }

// Suggestions returns a copy of the computed suggestions.
func (r Record) Suggestions() []Suggestion { return copySuggestions(r.suggestions) }

// Applied reports whether assignments were written for this attempt.
func (r Record) Applied() bool { return r.applied }

// CreatedAt returns when the record was written.
func (r Record) CreatedAt() time.Time { return r.createdAt }

func copySuggestions(s []Suggestion) []Suggestion {
	cp := make([]Suggestion, len(s))
	copy(cp, s)
	return cp
}

// Assignment links an article to a tag. Pairs are set-unique no matter how
// many times classification reruns for the same article.
type Assignment struct {
	articleID string
	tagID     int64
	createdAt time.Time
}

// NewAssignment creates an Assignment.
func NewAssignment(articleID string, tagID int64) Assignment {
	return Assignment{articleID: articleID, tagID: tagID}
}

// NewAssignmentFull creates an Assignment with all fields (used by stores).
func NewAssignmentFull(articleID string, tagID int64, createdAt time.Time) Assignment {
	return Assignment{articleID: articleID, tagID: tagID, createdAt: createdAt}
}

// ArticleID returns the assigned article's ID.
func (a Assignment) ArticleID() string { return a.articleID }

// TagID returns the assigned tag's ID.
func (a Assignment) TagID() int64 { return a.tagID }

// CreatedAt returns when the assignment was first written.
func (a Assignment) CreatedAt() time.Time { return a.createdAt }
