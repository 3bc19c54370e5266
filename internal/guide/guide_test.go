package guide

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorge-barreto/guidebook/internal/config"
	"github.com/jorge-barreto/guidebook/internal/content"
	"github.com/jorge-barreto/guidebook/internal/toc"
)

func sampleStore(t *testing.T) *content.Store {
	t.Helper()
	s, err := content.Load([]content.Record{
		{Title: "Syntax", Body: "Ruby uses `end`."},
		{Title: "Loops", Body: "```ruby\n3.times { puts 1 }\n```"},
	})
	require.NoError(t, err)
	return s
}

func TestAssemble(t *testing.T) {
	g, err := Assemble("Ruby", sampleStore(t))
	require.NoError(t, err)
	assert.Equal(t, "Ruby", g.Title)
	assert.Equal(t, []toc.Entry{{Title: "Syntax", Anchor: "syntax"}, {Title: "Loops", Anchor: "loops"}}, g.Outline)
	assert.Len(t, g.Topics, 2)
}

func TestAssemble_Empty(t *testing.T) {
	s := content.NewStore()
	s.Seal()
	_, err := Assemble("Ruby", s)
	assert.ErrorIs(t, err, toc.ErrEmptyContent)
}

func TestFind(t *testing.T) {
	g, err := Assemble("Ruby", sampleStore(t))
	require.NoError(t, err)

	tests := []struct {
		ref  string
		want int
		ok   bool
	}{
		{"loops", 1, true},
		{"Loops", 1, true},
		{"SYNTAX", 0, true},
		{"  syntax ", 0, true},
		{"blocks", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := g.Find(tt.ref)
		assert.Equal(t, tt.ok, ok, tt.ref)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.ref)
		}
	}
}

func TestFind_ExactTitleBeforeCaseFold(t *testing.T) {
	s, err := content.Load([]content.Record{
		{Title: "C++", Body: "upper"},
		{Title: "c++", Body: "lower"},
	})
	require.NoError(t, err)
	g, err := Assemble("Languages", s)
	require.NoError(t, err)

	got, ok := g.Find("c++")
	require.True(t, ok)
	assert.Equal(t, 1, got)
}

func TestSectionAndDocument(t *testing.T) {
	g, err := Assemble("Ruby", sampleStore(t))
	require.NoError(t, err)

	sec := g.Section(1)
	assert.Equal(t, 2, sec.Number)
	assert.Equal(t, "loops", sec.Entry.Anchor)

	doc := g.Document()
	sections, err := doc.Sections()
	require.NoError(t, err)
	assert.Len(t, sections, 2)
}

func TestLoad_FromDirectory(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "topics")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "01-syntax.md"), []byte("# Syntax\n\nBlocks end with `end`.\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "02-loops.md"), []byte("---\ntitle: Loops\n---\nUse `each`.\n"), 0644))

	cfg := &config.Config{Title: "Ruby", Source: "topics"}
	g, err := Load(context.Background(), cfg, root)
	require.NoError(t, err)
	require.Len(t, g.Topics, 2)
	assert.Equal(t, "Syntax", g.Topics[0].Title)
	assert.Equal(t, "Loops", g.Topics[1].Title)
}

func TestLoad_DuplicateTitle(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "guide-topics.yaml")
	require.NoError(t, os.WriteFile(path, []byte("topics:\n  - title: A\n    body: one\n  - title: A\n    body: two\n"), 0644))

	_, err := Load(context.Background(), &config.Config{Title: "T", Source: "guide-topics.yaml"}, root)
	var dup *content.DuplicateTitleError
	assert.ErrorAs(t, err, &dup)
}
