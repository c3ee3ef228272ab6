package classify

// Suggestion pairs a tag with its distance from an article embedding.
type Suggestion struct {
	tagID    int64
	name     string
	distance float64
}

// NewSuggestion creates a Suggestion.
func NewSuggestion(tagID int64, name string, distance float64) Suggestion {
	return Suggestion{
		tagID:    tagID,
		name:     name,
		distance: distance,
	}
}

// TagID returns the suggested tag's ID.
func (s Suggestion) TagID() int64 { return s.tagID }

// Name returns the suggested tag's name.
func (s Suggestion) Name() string { return s.name }

// Distance returns the L2 distance; smaller is more relevant.
func (s Suggestion) Distance() float64 { return s.distance }
