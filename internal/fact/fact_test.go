package fact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		tags string
		want []string
	}{
		{name: "empty", tags: "", want: nil},
		{name: "spaces", tags: "  verb   noun ", want: []string{"verb", "noun"}},
		{name: "commas", tags: "verb,noun, adjective", want: []string{"verb", "noun", "adjective"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.tags))
		})
	}
}

func TestAddTags(t *testing.T) {
	tests := []struct {
		name string
		add  string
		tags string
		want string
	}{
		{name: "adds a missing tag", add: "Leech", tags: "verb noun", want: "verb noun Leech"},
		{name: "keeps an existing tag regardless of case", add: "Leech", tags: "leech verb", want: "leech verb"},
		{name: "adds to empty tags", add: "Leech", tags: "", want: "Leech"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddTags(tt.add, tt.tags))
		})
	}
}

func TestCanonify(t *testing.T) {
	tests := []struct {
		name string
		tags string
		want string
	}{
		{name: "sorts and removes duplicates", tags: "verb Leech verb, noun", want: "Leech noun verb"},
		{name: "strips leading colons", tags: "::marked verb", want: "marked verb"},
		{name: "empty", tags: " , ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonify(tt.tags))
		})
	}
}
