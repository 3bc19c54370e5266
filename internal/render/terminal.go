package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jorge-barreto/guidebook/internal/blocks"
)

// Terminal renders styled text for reading in a terminal. Colors are only
// emitted when w is a terminal that supports them.
type Terminal struct{}

func (Terminal) Format() string    { return "terminal" }
func (Terminal) Extension() string { return ".txt" }

type termStyles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	number  lipgloss.Style
	sub     lipgloss.Style
	code    lipgloss.Style
	lang    lipgloss.Style
	bullet  lipgloss.Style
}

func newTermStyles(w io.Writer) termStyles {
	r := lipgloss.NewRenderer(w)
	return termStyles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("36")),
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		number:  r.NewStyle().Foreground(lipgloss.Color("36")),
		sub:     r.NewStyle().Bold(true),
		code:    r.NewStyle().Foreground(lipgloss.Color("255")).PaddingLeft(4),
		lang:    r.NewStyle().Foreground(lipgloss.Color("240")).PaddingLeft(4),
		bullet:  r.NewStyle().Foreground(lipgloss.Color("36")),
	}
}

func (Terminal) Render(w io.Writer, doc Document) error {
	sections, err := doc.Sections()
	if err != nil {
		return err
	}
	st := newTermStyles(w)
	bw := sectionWriter(w)

	fmt.Fprintf(bw, "\n%s\n\n", st.title.Render(doc.Title))
	for _, s := range sections {
		fmt.Fprintf(bw, "  %s %s\n", st.number.Render(fmt.Sprintf("%2d.", s.Number)), s.Entry.Title)
	}
	for _, s := range sections {
		bw.WriteString("\n")
		st.section(bw, s)
	}
	bw.WriteString("\n")
	return finish(bw)
}

// TopicTerminal writes a single section in the terminal style.
func TopicTerminal(w io.Writer, s Section) error {
	st := newTermStyles(w)
	bw := sectionWriter(w)
	st.section(bw, s)
	bw.WriteString("\n")
	return finish(bw)
}

func (st termStyles) section(w io.Writer, s Section) {
	fmt.Fprintf(w, "\n%s\n", st.heading.Render(fmt.Sprintf("%d. %s", s.Number, s.Entry.Title)))
	for _, b := range s.Topic.Body {
		fmt.Fprintf(w, "\n%s\n", st.block(b))
	}
}

func (st termStyles) block(b blocks.Block) string {
	if b.Kind == blocks.Code {
		var sb strings.Builder
		if b.Lang != "" {
			sb.WriteString(st.lang.Render(b.Lang))
			sb.WriteString("\n")
		}
		sb.WriteString(st.code.Render(b.Text))
		return sb.String()
	}
	var parts []string
	for _, p := range splitProse(b.Text) {
		switch p.kind {
		case heading:
			parts = append(parts, st.sub.Render(p.lines[0]))
		case list:
			items := make([]string, len(p.lines))
			for i, item := range p.lines {
				items[i] = "  " + st.bullet.Render("•") + " " + item
			}
			parts = append(parts, strings.Join(items, "\n"))
		default:
			parts = append(parts, p.lines[0])
		}
	}
	return strings.Join(parts, "\n\n")
}
