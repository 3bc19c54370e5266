// Package render turns an outlined set of topics into a single document.
//
// Every renderer writes the outline first and then each topic body in
// outline order. Output depends only on the Document, so rendering the
// same document twice yields identical bytes.
package render

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jorge-barreto/guidebook/internal/content"
	"github.com/jorge-barreto/guidebook/internal/toc"
)

// ErrOutlineMismatch is returned when the outline does not line up
// one-to-one with the topics.
var ErrOutlineMismatch = errors.New("outline does not match topics")

// Document is everything a renderer needs.
type Document struct {
	Title   string
	Topics  []content.Topic
	Outline []toc.Entry
}

// Section pairs a topic with its outline entry.
type Section struct {
	Number int
	Entry  toc.Entry
	Topic  content.Topic
}

// Sections validates the document and zips topics with their entries.
func (d Document) Sections() ([]Section, error) {
	if len(d.Outline) != len(d.Topics) {
		return nil, fmt.Errorf("%w: %d entries for %d topics", ErrOutlineMismatch, len(d.Outline), len(d.Topics))
	}
	out := make([]Section, len(d.Topics))
	for i, t := range d.Topics {
		if d.Outline[i].Title != t.Title {
			return nil, fmt.Errorf("%w: entry %d is %q, topic is %q", ErrOutlineMismatch, i+1, d.Outline[i].Title, t.Title)
		}
		out[i] = Section{Number: i + 1, Entry: d.Outline[i], Topic: t}
	}
	return out, nil
}

// Renderer writes a Document in one output format.
type Renderer interface {
	Format() string
	Extension() string
	Render(w io.Writer, doc Document) error
}

var renderers = map[string]Renderer{
	"html":     HTML{},
	"markdown": Markdown{},
	"text":     Text{},
	"terminal": Terminal{},
}

var extensions = map[string]string{
	".html": "html",
	".htm":  "html",
	".md":   "markdown",
	".txt":  "text",
}

// ForFormat returns the renderer registered under name.
func ForFormat(name string) (Renderer, error) {
	r, ok := renderers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (must be one of %s)", name, strings.Join(Formats(), ", "))
	}
	return r, nil
}

// FormatFromPath infers a format from an output file extension.
func FormatFromPath(path string) (string, bool) {
	f, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// Formats lists the registered format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bytes renders doc into memory.
func Bytes(r Renderer, doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sectionWriter wraps w for renderers that write piecemeal; write errors are
// sticky and surface from finish.
func sectionWriter(w io.Writer) *bufio.Writer {
	return bufio.NewWriter(w)
}

func finish(bw *bufio.Writer) error {
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
