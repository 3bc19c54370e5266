package render

import (
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strings"

	"github.com/jorge-barreto/guidebook/internal/blocks"
)

// HTML renders a standalone single-page HTML document.
type HTML struct{}

func (HTML) Format() string    { return "html" }
func (HTML) Extension() string { return ".html" }

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { max-width: 46rem; margin: 2rem auto; padding: 0 1rem; font-family: system-ui, sans-serif; line-height: 1.55; }
pre { background: #f5f5f5; padding: .75rem; overflow-x: auto; }
nav ol { padding-left: 1.5rem; }
section { margin-top: 2.5rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<nav id="contents">
<h2>Contents</h2>
<ol>
{{- range .Sections}}
<li><a href="#{{.Entry.Anchor}}">{{.Entry.Title}}</a></li>
{{- end}}
</ol>
</nav>
{{- range .Sections}}
<section id="{{.Entry.Anchor}}">
<h2>{{.Entry.Title}}</h2>
{{body .Topic.Body}}
</section>
{{- end}}
</body>
</html>
`

var page = template.Must(template.New("page").Funcs(template.FuncMap{
	"body": bodyHTML,
}).Parse(pageTemplate))

func (HTML) Render(w io.Writer, doc Document) error {
	sections, err := doc.Sections()
	if err != nil {
		return err
	}
	bw := sectionWriter(w)
	data := struct {
		Title    string
		Sections []Section
	}{doc.Title, sections}
	if err := page.Execute(bw, data); err != nil {
		return fmt.Errorf("executing html template: %w", err)
	}
	return finish(bw)
}

var inlineCodeRe = regexp.MustCompile("`([^`]+)`")

func inlineHTML(s string) string {
	return inlineCodeRe.ReplaceAllString(template.HTMLEscapeString(s), "<code>$1</code>")
}

// bodyHTML renders blocks to trusted HTML; all source text is escaped.
func bodyHTML(body []blocks.Block) template.HTML {
	var sb strings.Builder
	for _, b := range body {
		if b.Kind == blocks.Code {
			if b.Lang != "" {
				fmt.Fprintf(&sb, "<pre><code class=\"language-%s\">", template.HTMLEscapeString(b.Lang))
			} else {
				sb.WriteString("<pre><code>")
			}
			sb.WriteString(template.HTMLEscapeString(b.Text))
			sb.WriteString("</code></pre>\n")
			continue
		}
		for _, p := range splitProse(b.Text) {
			switch p.kind {
			case heading:
				level := p.level + 2
				if level > 6 {
					level = 6
				}
				fmt.Fprintf(&sb, "<h%d>%s</h%d>\n", level, inlineHTML(p.lines[0]), level)
			case list:
				sb.WriteString("<ul>\n")
				for _, item := range p.lines {
					fmt.Fprintf(&sb, "<li>%s</li>\n", inlineHTML(item))
				}
				sb.WriteString("</ul>\n")
			default:
				fmt.Fprintf(&sb, "<p>%s</p>\n", inlineHTML(p.lines[0]))
			}
		}
	}
	return template.HTML(strings.TrimSuffix(sb.String(), "\n"))
}

// TopicHTML renders one section as a standalone page.
func TopicHTML(w io.Writer, title string, s Section) error {
	doc := Document{Title: title}
	doc.Topics = append(doc.Topics, s.Topic)
	doc.Outline = append(doc.Outline, s.Entry)
	return HTML{}.Render(w, doc)
}
