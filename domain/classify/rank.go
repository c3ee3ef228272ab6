package classify

import (
	"math"
	"sort"

	"github.com/newsroomhq/newstag/domain/tag"
)

// EuclideanDistance computes the L2 distance between two vectors of equal
// length. Smaller values indicate greater semantic similarity.
func EuclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Rank compares an article embedding against every eligible tag in the
// catalog and returns the k closest as suggestions, sorted by non-decreasing
// distance. Tags without an embedding, or whose dimension does not match the
// article vector, are skipped. An empty catalog yields an empty (non-nil)
// slice; that is a valid outcome, not an error.
func Rank(embedding []float64, catalog []tag.Tag, k int) []Suggestion {
	suggestions := make([]Suggestion, 0, len(catalog))
	for _, t := range catalog {
		if !t.HasEmbedding() || t.Dimension() != len(embedding) {
			continue
		}
		suggestions = append(suggestions, NewSuggestion(
			t.ID(),
			t.Name(),
			EuclideanDistance(embedding, t.Embedding()),
		))
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Distance() < suggestions[j].Distance()
	})

	if k > 0 && len(suggestions) > k {
		suggestions = suggestions[:k]
	}
	return suggestions
}
