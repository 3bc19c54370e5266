package scaffold

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jorge-barreto/guidebook/internal/config"
	"github.com/jorge-barreto/guidebook/internal/guide"
	"github.com/jorge-barreto/guidebook/internal/ux"
)

func quiet(t *testing.T) {
	t.Helper()
	prev := ux.Out
	ux.Out = io.Discard
	t.Cleanup(func() { ux.Out = prev })
}

func TestInit_CreatesProject(t *testing.T) {
	quiet(t)
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	for _, path := range []string{
		config.FileName,
		filepath.Join("topics", "01-syntax.md"),
		filepath.Join("topics", "02-loops.md"),
	} {
		info, err := os.Stat(filepath.Join(dir, path))
		if err != nil {
			t.Fatalf("%s not created: %v", path, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", path)
		}
	}
}

func TestInit_GeneratedProjectLoads(t *testing.T) {
	quiet(t)
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	cfg, err := config.Load(filepath.Join(dir, config.FileName), dir)
	if err != nil {
		t.Fatalf("config.Load failed on generated config: %v", err)
	}
	if cfg.Format != "html" {
		t.Fatalf("Format = %q, want html", cfg.Format)
	}

	g, err := guide.Load(context.Background(), cfg, dir)
	if err != nil {
		t.Fatalf("guide.Load failed on sample topics: %v", err)
	}
	if len(g.Topics) != 2 || g.Topics[0].Title != "Syntax" || g.Topics[1].Title != "Loops" {
		t.Fatalf("topics = %+v", g.Outline)
	}
}

func TestInit_FailsIfConfigExists(t *testing.T) {
	quiet(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte("title: x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Init(dir)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected 'already exists' error, got: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "topics")); !os.IsNotExist(err) {
		t.Fatal("topics/ should not be created when guide.yaml exists")
	}
}

func TestInit_KeepsExistingTopics(t *testing.T) {
	quiet(t)
	dir := t.TempDir()
	topicsDir := filepath.Join(dir, "topics")
	os.MkdirAll(topicsDir, 0755)
	mine := filepath.Join(topicsDir, "01-syntax.md")
	os.WriteFile(mine, []byte("# Mine\n"), 0644)

	if err := Init(dir); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(mine)
	if string(data) != "# Mine\n" {
		t.Fatalf("existing topic overwritten: %q", data)
	}
}
