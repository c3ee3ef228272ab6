package article_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/newsroomhq/newstag/domain/article"
)

func TestContentChanged(t *testing.T) {
	base := article.New("a1", "Storm warning", "short", "A storm is coming.")

	tests := []struct {
		name    string
		other   article.Article
		changed bool
	}{
		{
			name:    "identical content",
			other:   article.New("a1", "Storm warning", "short", "A storm is coming."),
			changed: false,
		},
		{
			name:    "title edit",
			other:   article.New("a1", "Severe storm warning", "short", "A storm is coming."),
			changed: true,
		},
		{
			name:    "body edit",
			other:   article.New("a1", "Storm warning", "short", "A storm has passed."),
			changed: true,
		},
		{
			name:    "snippet-only edit",
			other:   article.New("a1", "Storm warning", "a longer summary", "A storm is coming."),
			changed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.changed, base.ContentChanged(tt.other))
		})
	}
}
