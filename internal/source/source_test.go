package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
}

func TestDir_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b-loops.md"), "---\ntitle: Loops\norder: 2\n---\nwhile, until, loop\n")
	writeFile(t, filepath.Join(dir, "a-syntax.md"), "---\ntitle: Syntax\norder: 1\n---\n\nEverything is an object.\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.md"), 0755))

	records, err := (&Dir{Path: dir}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Syntax", records[0].Title)
	assert.Equal(t, "Everything is an object.", records[0].Body)
	assert.Equal(t, filepath.Join(dir, "a-syntax.md"), records[0].Source)
	assert.Equal(t, "Loops", records[1].Title)
}

func TestDir_OrderThenFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "z.md"), "---\norder: 1\ntitle: Zed\n---\nz")
	writeFile(t, filepath.Join(dir, "b.md"), "---\ntitle: Bee\n---\nb")
	writeFile(t, filepath.Join(dir, "a.md"), "---\ntitle: Ay\n---\na")

	records, err := (&Dir{Path: dir}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Ay", "Bee", "Zed"}, []string{records[0].Title, records[1].Title, records[2].Title})
}

func TestDir_TitleFallbacks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "01-method-missing.md"), "Dynamic dispatch.\n")
	writeFile(t, filepath.Join(dir, "02-closures.md"), "\n# Blocks and Closures\n\nA block captures scope.\n")

	records, err := (&Dir{Path: dir}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Method missing", records[0].Title)
	assert.Equal(t, "Dynamic dispatch.\n", records[0].Body)
	assert.Equal(t, "Blocks and Closures", records[1].Title)
	assert.Equal(t, "A block captures scope.", records[1].Body)
}

func TestDir_Drafts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "---\ntitle: Published\n---\nx")
	writeFile(t, filepath.Join(dir, "b.md"), "---\ntitle: Ractors\ndraft: true\n---\nwip")

	records, err := (&Dir{Path: dir}).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)

	records, err = (&Dir{Path: dir, IncludeDrafts: true}).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestDir_BadFrontmatter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "---\ntitle: [unclosed\n---\nx")

	_, err := (&Dir{Path: dir}).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.md")
}

func TestDir_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Dir{Path: dir}).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseFrontmatter(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		fm, body, err := ParseFrontmatter("just text")
		require.NoError(t, err)
		assert.Equal(t, Frontmatter{}, fm)
		assert.Equal(t, "just text", body)
	})

	t.Run("empty header", func(t *testing.T) {
		fm, body, err := ParseFrontmatter("---\n---\nbody")
		require.NoError(t, err)
		assert.Equal(t, Frontmatter{}, fm)
		assert.Equal(t, "body", body)
	})

	t.Run("crlf", func(t *testing.T) {
		fm, body, err := ParseFrontmatter("---\r\ntitle: Fibers\r\n---\r\nbody\r\n")
		require.NoError(t, err)
		assert.Equal(t, "Fibers", fm.Title)
		assert.Equal(t, "body", body)
	})

	t.Run("unclosed", func(t *testing.T) {
		_, _, err := ParseFrontmatter("---\ntitle: x\n")
		assert.Error(t, err)
	})
}

func TestRecords_YAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bodies", "loops.md"), "```ruby\n3.times { }\n```\n")
	path := filepath.Join(dir, "topics.yaml")
	writeFile(t, path, `topics:
  - title: Syntax
    body: |
      Everything is an object.
  - title: Loops
    file: bodies/loops.md
`)

	src, err := Open(path, false)
	require.NoError(t, err)
	records, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Syntax", records[0].Title)
	assert.Equal(t, "Everything is an object.\n", records[0].Body)
	assert.Equal(t, path, records[0].Source)
	assert.Equal(t, "```ruby\n3.times { }\n```\n", records[1].Body)
	assert.Equal(t, filepath.Join(dir, "bodies", "loops.md"), records[1].Source)
}

func TestRecords_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topics.toml")
	writeFile(t, path, `[[topic]]
title = "Syntax"
body = "Everything is an object."

[[topic]]
title = "Loops"
body = """
while and until
"""
`)

	src, err := Open(path, false)
	require.NoError(t, err)
	records, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Syntax", records[0].Title)
	assert.Equal(t, "Loops", records[1].Title)
	assert.Equal(t, "while and until\n", records[1].Body)
}

func TestRecords_BodyAndFileExclusive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topics.yml")
	writeFile(t, path, "topics:\n  - title: A\n    body: x\n    file: a.md\n")

	src, err := Open(path, false)
	require.NoError(t, err)
	_, err = src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestRecords_MissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topics.yaml")
	writeFile(t, path, "topics:\n  - title: A\n    file: missing.md\n")

	src, err := Open(path, false)
	require.NoError(t, err)
	_, err = src.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "topics.json"), "{}")

	src, err := Open(dir, true)
	require.NoError(t, err)
	d, ok := src.(*Dir)
	require.True(t, ok)
	assert.True(t, d.IncludeDrafts)

	_, err = Open(filepath.Join(dir, "topics.json"), false)
	assert.Error(t, err)

	_, err = Open(filepath.Join(dir, "nope"), false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
