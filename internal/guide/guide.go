// Package guide ties a content source, the topic store and the outline
// together into the one value every command works from.
package guide

import (
	"context"
	"fmt"
	"strings"

	"github.com/jorge-barreto/guidebook/internal/config"
	"github.com/jorge-barreto/guidebook/internal/content"
	"github.com/jorge-barreto/guidebook/internal/render"
	"github.com/jorge-barreto/guidebook/internal/source"
	"github.com/jorge-barreto/guidebook/internal/toc"
	"github.com/jorge-barreto/guidebook/internal/ux"
)

// Guide is a loaded, outlined set of topics.
type Guide struct {
	Title   string
	Topics  []content.Topic
	Outline []toc.Entry

	store *content.Store
}

// Assemble builds the outline for a sealed store.
func Assemble(title string, store *content.Store) (*Guide, error) {
	topics := store.ListTopics()
	outline, err := toc.Build(topics)
	if err != nil {
		return nil, err
	}
	return &Guide{Title: title, Topics: topics, Outline: outline, store: store}, nil
}

// Records reads the raw topic records named by the config.
func Records(ctx context.Context, cfg *config.Config, projectRoot string) ([]content.Record, error) {
	src, err := source.Open(cfg.SourcePath(projectRoot), cfg.IncludeDrafts)
	if err != nil {
		return nil, err
	}
	records, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading topics: %w", err)
	}
	ux.LoggerFrom(ctx).Debug("read topics", "source", cfg.Source, "count", len(records))
	return records, nil
}

// Load reads the configured source and assembles the guide.
func Load(ctx context.Context, cfg *config.Config, projectRoot string) (*Guide, error) {
	records, err := Records(ctx, cfg, projectRoot)
	if err != nil {
		return nil, err
	}
	store, err := content.Load(records)
	if err != nil {
		return nil, fmt.Errorf("loading topics: %w", err)
	}
	return Assemble(cfg.Title, store)
}

// Find resolves ref as an anchor first, then as a title. Title matching
// ignores case only when no exact match exists.
func (g *Guide) Find(ref string) (int, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, false
	}
	for i, e := range g.Outline {
		if e.Anchor == ref {
			return i, true
		}
	}
	if t, ok := g.lookup(ref); ok {
		for i := range g.Topics {
			if g.Topics[i].Title == t.Title {
				return i, true
			}
		}
	}
	for i, t := range g.Topics {
		if strings.EqualFold(t.Title, ref) {
			return i, true
		}
	}
	return 0, false
}

// Section returns the numbered section at index i.
func (g *Guide) Section(i int) render.Section {
	return render.Section{Number: i + 1, Entry: g.Outline[i], Topic: g.Topics[i]}
}

// Document returns the guide as renderer input.
func (g *Guide) Document() render.Document {
	return render.Document{Title: g.Title, Topics: g.Topics, Outline: g.Outline}
}

func (g *Guide) lookup(title string) (content.Topic, bool) {
	if g.store == nil {
		return content.Topic{}, false
	}
	return g.store.Get(title)
}
