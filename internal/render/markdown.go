package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jorge-barreto/guidebook/internal/blocks"
)

// Markdown renders a single markdown file with explicit anchors, so links
// in the contents list work regardless of the viewer's own slug rules.
type Markdown struct{}

var linkTextEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`)

func (Markdown) Format() string    { return "markdown" }
func (Markdown) Extension() string { return ".md" }

func (Markdown) Render(w io.Writer, doc Document) error {
	sections, err := doc.Sections()
	if err != nil {
		return err
	}
	bw := sectionWriter(w)

	fmt.Fprintf(bw, "# %s\n\n## Contents\n\n", doc.Title)
	for _, s := range sections {
		fmt.Fprintf(bw, "%d. [%s](#%s)\n", s.Number, linkTextEscaper.Replace(s.Entry.Title), s.Entry.Anchor)
	}
	for _, s := range sections {
		fmt.Fprintf(bw, "\n<a id=\"%s\"></a>\n\n## %s\n", s.Entry.Anchor, s.Entry.Title)
		if len(s.Topic.Body) > 0 {
			fmt.Fprintf(bw, "\n%s\n", blocks.Join(s.Topic.Body))
		}
	}
	return finish(bw)
}
