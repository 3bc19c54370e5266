package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/jorge-barreto/guidebook/internal/content"
)

// Dir loads every *.md file in a directory as one topic.
type Dir struct {
	Path          string
	IncludeDrafts bool
}

// Frontmatter is the optional YAML header of a topic file.
type Frontmatter struct {
	Title string `yaml:"title"`
	Order int    `yaml:"order"`
	Draft bool   `yaml:"draft"`
}

type dirEntry struct {
	name  string
	order int
	rec   content.Record
}

var h1Re = regexp.MustCompile(`(?m)^# +(.+?)[ \t]*$`)

func (d *Dir) Load(ctx context.Context) ([]content.Record, error) {
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", d.Path, err)
	}

	var found []dirEntry
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".md") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(d.Path, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		fm, body, err := ParseFrontmatter(string(data))
		if err != nil {
			return nil, fmt.Errorf("parsing frontmatter in %s: %w", path, err)
		}
		if fm.Draft && !d.IncludeDrafts {
			continue
		}

		title := fm.Title
		if title == "" {
			title, body = titleFromHeading(body)
		}
		if title == "" {
			title = titleFromFilename(e.Name())
		}
		found = append(found, dirEntry{
			name:  e.Name(),
			order: fm.Order,
			rec:   content.Record{Title: title, Body: body, Source: path},
		})
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].order != found[j].order {
			return found[i].order < found[j].order
		}
		return found[i].name < found[j].name
	})

	records := make([]content.Record, len(found))
	for i, f := range found {
		records[i] = f.rec
	}
	return records, nil
}

// ParseFrontmatter splits a leading `---` delimited YAML block from the
// body. Files without one return a zero frontmatter and the whole text.
func ParseFrontmatter(text string) (Frontmatter, string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var fm Frontmatter
	if !strings.HasPrefix(text, "---\n") {
		return fm, text, nil
	}
	// keep the newline so an empty header still has "\n---"
	rest := text[len("---"):]
	end := strings.Index(rest, "\n---")
	if end == -1 {
		return fm, text, fmt.Errorf("frontmatter not closed")
	}
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return fm, text, err
	}
	body := rest[end+len("\n---"):]
	// drop the remainder of the closing delimiter line
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = ""
	}
	return fm, strings.TrimSpace(body), nil
}

// titleFromHeading takes the first level-one heading as the title when it
// is the first non-blank line, removing it from the body.
func titleFromHeading(body string) (string, string) {
	trimmed := strings.TrimLeft(body, "\n\t ")
	loc := h1Re.FindStringSubmatchIndex(trimmed)
	if loc == nil || loc[0] != 0 {
		return "", body
	}
	title := trimmed[loc[2]:loc[3]]
	return title, strings.TrimSpace(trimmed[loc[1]:])
}

func titleFromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.TrimLeft(base, "0123456789-_ ")
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	base = strings.TrimSpace(base)
	if base == "" {
		return ""
	}
	r := []rune(base)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
