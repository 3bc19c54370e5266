package render

import (
	"strings"
)

type proseKind int

const (
	paragraph proseKind = iota
	heading
	list
)

// prose is one blank-line separated chunk of a text block.
type prose struct {
	kind  proseKind
	level int      // heading only, number of leading '#'
	lines []string // list items, or the paragraph/heading text as one line
}

// splitProse classifies the chunks of a text block. Only headings, bullet
// lists and paragraphs are recognized.
func splitProse(text string) []prose {
	var out []prose
	for _, chunk := range strings.Split(text, "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		lines := strings.Split(chunk, "\n")

		if level := headingLevel(lines[0]); level > 0 && len(lines) == 1 {
			out = append(out, prose{
				kind:  heading,
				level: level,
				lines: []string{strings.TrimSpace(lines[0][level:])},
			})
			continue
		}

		if isList(lines) {
			items := make([]string, len(lines))
			for i, l := range lines {
				items[i] = strings.TrimSpace(strings.TrimSpace(l)[2:])
			}
			out = append(out, prose{kind: list, lines: items})
			continue
		}

		for i := range lines {
			lines[i] = strings.TrimSpace(lines[i])
		}
		out = append(out, prose{kind: paragraph, lines: []string{strings.Join(lines, " ")}})
	}
	return out
}

func headingLevel(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 || n >= len(line) || line[n] != ' ' {
		return 0
	}
	return n
}

func isList(lines []string) bool {
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if !strings.HasPrefix(l, "- ") && !strings.HasPrefix(l, "* ") {
			return false
		}
	}
	return true
}
