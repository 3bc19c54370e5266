package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jorge-barreto/guidebook/internal/blocks"
)

// Text renders plain text: underlined titles, numbered contents, code
// indented by four spaces.
type Text struct{}

func (Text) Format() string    { return "text" }
func (Text) Extension() string { return ".txt" }

func (Text) Render(w io.Writer, doc Document) error {
	sections, err := doc.Sections()
	if err != nil {
		return err
	}
	bw := sectionWriter(w)

	fmt.Fprintf(bw, "%s\n%s\n\n", doc.Title, underline(doc.Title, "="))
	fmt.Fprintf(bw, "Contents\n%s\n\n", underline("Contents", "-"))
	for _, s := range sections {
		fmt.Fprintf(bw, "  %2d. %s\n", s.Number, s.Entry.Title)
	}
	for _, s := range sections {
		heading := fmt.Sprintf("%d. %s", s.Number, s.Entry.Title)
		fmt.Fprintf(bw, "\n\n%s\n%s\n", heading, underline(heading, "-"))
		for _, b := range s.Topic.Body {
			bw.WriteString("\n")
			bw.WriteString(textBlock(b))
			bw.WriteString("\n")
		}
	}
	return finish(bw)
}

func underline(s, char string) string {
	return strings.Repeat(char, utf8.RuneCountInString(s))
}

func textBlock(b blocks.Block) string {
	if b.Kind != blocks.Code {
		return b.Text
	}
	lines := strings.Split(b.Text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "    " + l
		}
	}
	return strings.Join(lines, "\n")
}
