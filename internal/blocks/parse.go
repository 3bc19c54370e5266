package blocks

import (
	"regexp"
	"strings"
)

// Kind distinguishes prose from code.
type Kind string

const (
	Text Kind = "text"
	Code Kind = "code"
)

// Block is one contiguous piece of a topic body.
type Block struct {
	Kind Kind   `json:"kind"`
	Lang string `json:"lang,omitempty"` // code only, e.g. "ruby"
	Text string `json:"text"`
}

// Result is the parsed body. Unclosed is set when the body ended inside a
// code fence; the remainder is still returned as the last code block.
type Result struct {
	Blocks   []Block
	Unclosed bool
}

var fenceOpenRe = regexp.MustCompile("^```\\s*([\\w+#.-]*)")

// Parse splits a markdown body into text and fenced code blocks, in order
// of appearance. It recognizes opening fences like:
//
//	```ruby
//	```
//	``` irb
//
// Text blocks are trimmed of surrounding blank lines; text consisting only
// of whitespace is dropped. Code block content is kept verbatim.
func Parse(body string) Result {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	var res Result
	var current *Block
	var buf strings.Builder
	first := false

	flushText := func() {
		text := strings.Trim(buf.String(), "\n")
		if strings.TrimSpace(text) != "" {
			res.Blocks = append(res.Blocks, Block{Kind: Text, Text: text})
		}
		buf.Reset()
	}

	for _, line := range lines {
		if current != nil {
			// Inside a fence: look for the closing one
			if strings.TrimSpace(line) == "```" {
				current.Text = buf.String()
				res.Blocks = append(res.Blocks, *current)
				current = nil
				buf.Reset()
				continue
			}
			if !first {
				buf.WriteByte('\n')
			}
			first = false
			buf.WriteString(line)
			continue
		}

		if m := fenceOpenRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flushText()
			current = &Block{Kind: Code, Lang: strings.ToLower(m[1])}
			first = true
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	if current != nil {
		current.Text = buf.String()
		res.Blocks = append(res.Blocks, *current)
		res.Unclosed = true
		return res
	}
	flushText()
	return res
}

// Join renders blocks back to markdown source.
func Join(bs []Block) string {
	var sb strings.Builder
	for i, b := range bs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if b.Kind == Code {
			sb.WriteString("```" + b.Lang + "\n")
			if b.Text != "" {
				sb.WriteString(b.Text)
				sb.WriteByte('\n')
			}
			sb.WriteString("```")
			continue
		}
		sb.WriteString(b.Text)
	}
	return sb.String()
}
