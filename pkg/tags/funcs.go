package tags

import "html/template"

// FuncMap returns the default template functions.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"numberformat": NumberFormat,
		"markdown":     Markdown,
	}
}

// Register adds funcs to t under their map keys and returns t.
// It must be called before t is parsed.
func Register(t *template.Template, funcs map[string]any) *template.Template {
	return t.Funcs(funcs)
}
