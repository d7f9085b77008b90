package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMake covers the documented transformation rules.
func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello-world"},
		{"  multiple   spaces--and--dashes ", "multiple-spaces-and-dashes"},
		{"Already-A-Slug", "already-a-slug"},
		{"Trailing punctuation!!!", "trailing-punctuation"},
		{"---", ""},
		{"!!!", ""},
		{"", ""},
		{"C++ & Go (2024)", "c-go-2024"},
		{"  spaced  ", "spaced"},
		{"Ünïcödé Tîtle", "ünïcödé-tîtle"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Make(tc.in), "Make(%q)", tc.in)
	}
}

// TestMakeIdempotent verifies Make(Make(x)) == Make(x).
func TestMakeIdempotent(t *testing.T) {
	inputs := []string{
		"Hello, World!",
		"  multiple   spaces--and--dashes ",
		"x",
		"A Very Long Project Title With Numbers 123",
		"---edge---",
	}
	for _, in := range inputs {
		once := Make(in)
		assert.Equal(t, once, Make(once), "Make not idempotent for %q", in)
	}
}

// TestDeriveFallback verifies Derive never returns an empty slug.
func TestDeriveFallback(t *testing.T) {
	assert.Equal(t, "hello-world", Derive("Hello, World!"))

	got := Derive("!!!")
	assert.Len(t, got, 8)
	assert.NotEqual(t, "", Make(got), "fallback must itself be slug-safe")
}
