// Package docs holds guidebook's own help articles. They are loaded
// through the same content store and outline builder as a user's guide.
package docs

import (
	"fmt"
	"io"
	"sync"

	"github.com/jorge-barreto/guidebook/internal/content"
	"github.com/jorge-barreto/guidebook/internal/guide"
	"github.com/jorge-barreto/guidebook/internal/render"
)

const title = "guidebook documentation"

// Topic is one entry in the article listing.
type Topic struct {
	Name    string // anchor, used as the CLI argument
	Title   string
	Summary string
}

var (
	once   sync.Once
	loaded *guide.Guide
	errLd  error
)

// Guide returns the articles as a guide.
func Guide() (*guide.Guide, error) {
	once.Do(func() {
		records := make([]content.Record, len(articles))
		for i, a := range articles {
			records[i] = content.Record{Title: a.title, Body: a.body}
		}
		store, err := content.Load(records)
		if err != nil {
			errLd = err
			return
		}
		loaded, errLd = guide.Assemble(title, store)
	})
	return loaded, errLd
}

// All returns every article in display order.
func All() ([]Topic, error) {
	g, err := Guide()
	if err != nil {
		return nil, err
	}
	out := make([]Topic, len(articles))
	for i, a := range articles {
		out[i] = Topic{Name: g.Outline[i].Anchor, Title: a.title, Summary: a.summary}
	}
	return out, nil
}

// List prints the article index.
func List(w io.Writer) error {
	topics, err := All()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nAvailable topics:\n\n")
	for _, t := range topics {
		fmt.Fprintf(w, "  %-14s %s\n", t.Name, t.Summary)
	}
	fmt.Fprintf(w, "\nRun 'guidebook docs <topic>' to read one.\n\n")
	return nil
}

// Show renders one article, looked up by name or title, to w.
func Show(w io.Writer, name string) error {
	g, err := Guide()
	if err != nil {
		return err
	}
	i, ok := g.Find(name)
	if !ok {
		return fmt.Errorf("unknown topic %q; run 'guidebook docs' to list available topics", name)
	}
	return render.TopicTerminal(w, g.Section(i))
}

// ShowAll renders every article to w.
func ShowAll(w io.Writer) error {
	g, err := Guide()
	if err != nil {
		return err
	}
	return render.Terminal{}.Render(w, g.Document())
}
