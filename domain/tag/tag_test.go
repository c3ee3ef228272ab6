package tag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/newsroomhq/newstag/domain/tag"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Weather", "weather"},
		{" weather ", "weather"},
		{"WEATHER", "weather"},
		{"local news", "local news"},
		{"", ""},
		{"  ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tag.NormalizeName(tt.in), tt.in)
	}
}

func TestNewNormalizesName(t *testing.T) {
	assert.Equal(t, "sports", tag.New(" Sports ").Name())
}

func TestWithEmbedding(t *testing.T) {
	unembedded := tag.New("weather")
	assert.False(t, unembedded.HasEmbedding())
	assert.Equal(t, 0, unembedded.Dimension())
	assert.Nil(t, unembedded.Embedding())

	vec := []float64{0.1, 0.2, 0.3}
	embedded := unembedded.WithEmbedding(vec)
	assert.True(t, embedded.HasEmbedding())
	assert.Equal(t, 3, embedded.Dimension())
	assert.Equal(t, vec, embedded.Embedding())

	// The original value is unchanged.
	assert.False(t, unembedded.HasEmbedding())

	// Mutating the caller's slice does not reach into the tag.
	vec[0] = 99
	assert.Equal(t, 0.1, embedded.Embedding()[0])

	// Mutating a returned copy does not reach into the tag either.
	out := embedded.Embedding()
	out[1] = 99
	assert.Equal(t, 0.2, embedded.Embedding()[1])
}
