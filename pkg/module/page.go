package module

import (
	"bytes"
	"fmt"
	"html/template"
)

// PageOptions controls standalone page output.
type PageOptions struct {
	// Lang is the document language. Defaults to "en".
	Lang string

	// Stylesheet is an optional stylesheet URL linked from the page head.
	Stylesheet string
}

type pageData struct {
	Lang       string
	Title      string
	Stylesheet string
	Body       template.HTML
}

//nolint:gochecknoglobals // Parsed once, read-only afterwards.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{- if .Stylesheet}}
<link rel="stylesheet" href="{{.Stylesheet}}">
{{- end}}
</head>
<body>
<div class="module">
{{- if .Title}}
<h1>{{.Title}}</h1>
{{- end}}
{{.Body}}
</div>
</body>
</html>
`))

// Page wraps rendered module HTML in a standalone document with the module
// title as heading. body must already be safe markup, as produced by
// render.Render.
func Page(mod *Module, body string, opts PageOptions) ([]byte, error) {
	data := pageData{
		Lang:       opts.Lang,
		Stylesheet: opts.Stylesheet,
		Body:       template.HTML(body), //nolint:gosec // body is renderer output, escaped at the source
	}
	if data.Lang == "" {
		data.Lang = "en"
	}
	if mod != nil {
		data.Title = mod.Title
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute page template: %w", err)
	}

	return buf.Bytes(), nil
}
