package render

import (
	"bytes"
	"fmt"
	"html/template"
)

type navLink struct {
	Href  string
	Title string
}

type pageData struct {
	Lang    string
	Title   string
	Theme   template.CSS
	Content template.HTML
	Prev    *navLink
	Next    *navLink
	Mermaid bool
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>{{.Theme}}</style>
</head>
<body>
{{- if or .Prev .Next}}
<nav>
{{- if .Prev}}<a href="{{.Prev.Href}}">&larr; {{.Prev.Title}}</a>{{end}}
<a href="index.html">Contents</a>
{{- if .Next}}<a href="{{.Next.Href}}">{{.Next.Title}} &rarr;</a>{{end}}
</nav>
{{- end}}
<article>
{{.Content}}
</article>
{{- if .Mermaid}}
<script type="module">
import mermaid from '` + mermaidCDN + `';
mermaid.initialize({ startOnLoad: true, theme: 'default' });
</script>
{{- end}}
</body>
</html>
`))

func renderPage(data pageData) (string, error) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("page template failed: %w", err)
	}
	return buf.String(), nil
}

const baseCSS = template.CSS(`
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; max-width: 800px; margin: 0 auto; padding: 2rem; }
pre { padding: 1rem; overflow-x: auto; border-radius: 4px; }
code { padding: 0.2em 0.4em; border-radius: 3px; }
pre code { background: none; padding: 0; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { padding: 0.75rem; text-align: left; }
blockquote { margin: 0; padding-left: 1rem; }
nav { margin-bottom: 2rem; padding-bottom: 1rem; border-bottom: 1px solid #8884; }
nav a { margin-right: 1rem; }
img { max-width: 100%; height: auto; }
.mermaid { background: #fff; padding: 1rem; margin: 1rem 0; }
`)

const lightCSS = template.CSS(`
body { color: #333; background: #fff; }
h1, h2, h3, h4 { color: #2c3e50; }
pre, code, th { background: #f5f5f5; }
th, td { border: 1px solid #ddd; }
blockquote { border-left: 4px solid #ddd; color: #666; }
a { color: #1a6fb4; }
`)

const darkCSS = template.CSS(`
body { color: #ddd; background: #1b1f23; }
h1, h2, h3, h4 { color: #e8eef4; }
pre, code, th { background: #2a2f35; }
th, td { border: 1px solid #444; }
blockquote { border-left: 4px solid #444; color: #999; }
a { color: #6cb6ff; }
`)

func themeCSS(theme string) template.CSS {
	if theme == "dark" {
		return baseCSS + darkCSS
	}
	return baseCSS + lightCSS
}
