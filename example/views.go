package main

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/sugar/pkg/tags"
)

var profileTemplate = template.Must(tags.Register(template.New("profile"), tags.FuncMap()).Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .User.Name }}</title>
{{ with .Canonical }}<link rel="canonical" href="{{ . }}">{{ end }}
</head>
<body>
<main>
<h1>{{ .User.Name }}</h1>
<p class="logins">{{ numberformat .User.Logins 0 }} sign-ins</p>
{{ with .User.Bio }}<section class="bio">{{ markdown . }}</section>{{ end }}
</main>
</body>
</html>
`))

// profilePage renders a user's public profile. The bio is markdown and is
// sanitized after rendering.
func profilePage(u User, canonical string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return profileTemplate.Execute(w, struct {
			User      User
			Canonical string
		}{User: u, Canonical: canonical})
	})
}
