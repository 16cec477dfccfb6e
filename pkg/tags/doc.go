// Package tags provides template functions for html/template.
//
//	t := tags.Register(template.New("page"), tags.FuncMap())
//	t = template.Must(t.Parse(`{{ numberformat .Price "2" }}`))
//
// numberformat takes a number and an optional number of decimals (default 2).
// markdown renders Markdown to sanitized HTML.
package tags
