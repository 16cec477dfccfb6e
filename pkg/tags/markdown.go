package tags

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dmitrymomot/sugar/pkg/sanitizer"
)

var markdown = sync.OnceValue(func() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.GFM))
})

// Markdown renders s as HTML. Raw HTML in the source is dropped and the
// output passes through the sanitizer's safe policy.
func Markdown(s string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown().Convert([]byte(s), &buf); err != nil {
		return "", err
	}
	return template.HTML(sanitizer.SanitizeHTML(buf.String())), nil //nolint:gosec // sanitized
}
