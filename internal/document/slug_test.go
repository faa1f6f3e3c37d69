package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Introduction", "introduction"},
		{"spaces", "Getting Started", "getting-started"},
		{"punctuation", "What's New?", "whats-new"},
		{"underscores and hyphens", "foo_bar--baz", "foo-bar-baz"},
		{"mixed runs", "a  _ - b", "a-b"},
		{"surrounding junk", "  --Hello--  ", "hello"},
		{"unicode letters kept", "Café Déjà", "café-déjà"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Introduction", "Getting Started!", "foo_bar--baz",
		"  spaced  out  ", "What's New?", "", "a-b-c",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "input %q", in)
		assert.False(t, strings.HasPrefix(once, "-"), "leading hyphen for %q", in)
		assert.False(t, strings.HasSuffix(once, "-"), "trailing hyphen for %q", in)
	}
}
