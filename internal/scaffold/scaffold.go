// Package scaffold creates a starter guide project.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/guidebook/internal/config"
	"github.com/jorge-barreto/guidebook/internal/ux"
)

var configTemplate = `title: A Ruby Guide
source: topics
output: dist/guide.html

# Custom variables usable in hooks as $NAME.
# vars:
#   PUBLISH_DIR: $PROJECT_ROOT/public

# Runs after a successful write, with GUIDE_* variables in the environment.
# hooks:
#   post-build:
#     run: cp "$OUTPUT" "$PUBLISH_DIR/"
#     timeout: 5
`

var topics = []struct {
	name string
	body string
}{
	{"01-syntax.md", "# Syntax\n\n" +
		"Ruby code reads close to English. Methods are defined with `def` and closed with `end`.\n\n" +
		"```ruby\ndef greet(name)\n  \"Hello, #{name}!\"\nend\n\nputs greet(\"world\")\n```\n"},
	{"02-loops.md", "---\ntitle: Loops\n---\n" +
		"Most iteration in Ruby goes through methods that take a block.\n\n" +
		"- `each` walks a collection\n- `times` repeats a block n times\n\n" +
		"```ruby\n[1, 2, 3].each { |n| puts n }\n3.times { puts \"hi\" }\n```\n"},
}

// Init writes guide.yaml and a topics/ directory with sample topics.
func Init(targetDir string) error {
	configPath := filepath.Join(targetDir, config.FileName)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, targetDir)
	}

	topicsDir := filepath.Join(targetDir, "topics")
	if err := os.MkdirAll(topicsDir, 0755); err != nil {
		return fmt.Errorf("creating topics: %w", err)
	}
	for _, t := range topics {
		path := filepath.Join(topicsDir, t.name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(t.body), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", t.name, err)
		}
	}

	if err := os.WriteFile(configPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", config.FileName, err)
	}

	w := ux.Out
	fmt.Fprintf(w, "\n%s\n\n", ux.StyleSuccess.Bold(true).Render("✓ Initialized guide project"))
	fmt.Fprintf(w, "  Created:\n")
	fmt.Fprintf(w, "    %s  guide configuration\n", ux.StyleCommand.Render(config.FileName))
	fmt.Fprintf(w, "    %s  sample topics\n\n", ux.StyleCommand.Render("topics/"))
	fmt.Fprintf(w, "  Next steps:\n")
	fmt.Fprintf(w, "    1. Write topics as markdown files in %s\n", ux.StyleCommand.Render("topics/"))
	fmt.Fprintf(w, "    2. Run %s to preview the plan\n", ux.StyleCommand.Render("guidebook build --dry-run"))
	fmt.Fprintf(w, "    3. Run %s to write %s\n\n", ux.StyleCommand.Render("guidebook build"), "dist/guide.html")
	return nil
}
