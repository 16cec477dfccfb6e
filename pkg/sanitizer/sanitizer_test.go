package sanitizer_test

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sugar/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "strips script injection", input: `<p>Hello</p><script>alert('xss')</script>`, expected: "Hello"},
		{name: "strips all HTML tags", input: `<p>Hello <strong>world</strong></p>`, expected: "Hello world"},
		{name: "strips event handlers", input: `<img src="x" onerror="alert('xss')">`, expected: ""},
		{name: "strips javascript URLs", input: `<a href="javascript:alert('xss')">click</a>`, expected: "click"},
		{name: "handles plain text", input: "normal text without HTML", expected: "normal text without HTML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	t.Run("keeps safe formatting", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<p>Hello <strong>world</strong></p>", sanitizer.SanitizeHTML("<p>Hello <strong>world</strong></p>"))
	})

	t.Run("drops scripts", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<p>Hi</p>", sanitizer.SanitizeHTML("<p>Hi</p><script>alert(1)</script>"))
	})

	t.Run("custom policy", func(t *testing.T) {
		t.Parallel()
		p := bluemonday.NewPolicy().AllowElements("b")
		assert.Equal(t, "<b>x</b>y", sanitizer.SanitizeHTMLCustom("<b>x</b><i>y</i>", p))
		assert.Equal(t, "<i>y</i>", sanitizer.SanitizeHTMLCustom("<i>y</i>", nil))
	})
}

type address struct {
	City string `sanitize:"trim,upper"`
}

type profile struct {
	Name     string   `sanitize:"trim,strip_html,collapse_space"`
	Email    string   `sanitize:"trim,lower"`
	Bio      string   `sanitize:"safe_html"`
	Nickname *string  `sanitize:"trim"`
	Tags     []string `sanitize:"trim,lower"`
	Raw      string
	Home     address
	Work     *address
	secret   string `sanitize:"trim"`
}

func TestSanitizeStruct(t *testing.T) {
	t.Parallel()

	t.Run("applies directives", func(t *testing.T) {
		t.Parallel()

		nick := "  ally  "
		p := profile{
			Name:     "  <b>Alice</b>   Smith ",
			Email:    " Alice@Example.COM ",
			Bio:      "<p>hi</p><script>x</script>",
			Nickname: &nick,
			Tags:     []string{" Go ", "RUST"},
			Raw:      "  untouched  ",
			Home:     address{City: " berlin "},
			Work:     &address{City: " paris"},
			secret:   "  keep  ",
		}

		require.NoError(t, sanitizer.SanitizeStruct(&p))

		assert.Equal(t, "Alice Smith", p.Name)
		assert.Equal(t, "alice@example.com", p.Email)
		assert.Equal(t, "<p>hi</p>", p.Bio)
		assert.Equal(t, "ally", *p.Nickname)
		assert.Equal(t, []string{"go", "rust"}, p.Tags)
		assert.Equal(t, "  untouched  ", p.Raw)
		assert.Equal(t, "BERLIN", p.Home.City)
		assert.Equal(t, "PARIS", p.Work.City)
		assert.Equal(t, "  keep  ", p.secret)
	})

	t.Run("rejects non-pointer", func(t *testing.T) {
		t.Parallel()

		require.ErrorIs(t, sanitizer.SanitizeStruct(profile{}), sanitizer.ErrNotStructPointer)
		require.ErrorIs(t, sanitizer.SanitizeStruct((*profile)(nil)), sanitizer.ErrNotStructPointer)
	})

	t.Run("rejects unknown directive", func(t *testing.T) {
		t.Parallel()

		v := struct {
			Name string `sanitize:"shout"`
		}{Name: "x"}
		require.ErrorIs(t, sanitizer.SanitizeStruct(&v), sanitizer.ErrUnknownDirective)
	})
}
