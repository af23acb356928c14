package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "diacritics and separators",
			input: []string{"Café-Bar!"},
			want:  []string{"cafe", "bar"},
		},
		{
			name:  "chords are stripped",
			input: []string{"Text[Ami] to be [Fmaj]continued"},
			want:  []string{"text", "to", "be", "continued"},
		},
		{
			name:  "markup tags are stripped",
			input: []string{"<b>Hello</b> world"},
			want:  []string{"hello", "world"},
		},
		{
			name:  "short fragments are dropped",
			input: []string{"a be c dee"},
			want:  []string{"be", "dee"},
		},
		{
			name:  "digits and symbols are removed",
			input: []string{"song2 100% r0ck"},
			want:  []string{"song", "rck"},
		},
		{
			name:  "duplicates are preserved in order",
			input: []string{"la la la land"},
			want:  []string{"la", "la", "la", "land"},
		},
		{
			name:  "multiple fragments concatenate",
			input: []string{"first one", "second one"},
			want:  []string{"first", "one", "second", "one"},
		},
		{
			name:  "empty input",
			input: []string{""},
			want:  nil,
		},
		{
			name:  "separator-only input",
			input: []string{"-().,;!?\"'/+*&"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input...))
		})
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	input := "Vltavo, Vltavo — <i>který</i> [C]břeh je můj?"
	first := Tokenize(input)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Tokenize(input))
	}
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"la", "land"}, Unique([]string{"la", "la", "land", "la"}))
	assert.Empty(t, Unique(nil))
}

func TestRemoveDiacritics(t *testing.T) {
	assert.Equal(t, "cafe", RemoveDiacritics("café"))
	assert.Equal(t, "Zlutoucky kun", RemoveDiacritics("Žluťoučký kůň"))
	assert.Equal(t, "plain", RemoveDiacritics("plain"))
}

func TestCompare(t *testing.T) {
	assert.Negative(t, Compare("abba", "beatles"))
	assert.Zero(t, Compare("Abba", "abba"))
	assert.Positive(t, Compare("zz top", "abba"))
}

func TestSortByKey(t *testing.T) {
	items := []string{"Čech", "Brown", "abba", "Adele"}
	SortByKey(items, func(s string) string { return s })
	assert.Equal(t, []string{"abba", "Adele", "Brown", "Čech"}, items)
}
