package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jorge-barreto/guidebook/internal/content"
)

// recordEntry is one topic in a records file. Body and File are exclusive;
// File is resolved relative to the records file.
type recordEntry struct {
	Title string `yaml:"title" toml:"title"`
	Body  string `yaml:"body" toml:"body"`
	File  string `yaml:"file" toml:"file"`
}

type yamlRecords struct {
	Topics []recordEntry `yaml:"topics"`
}

type tomlRecords struct {
	Topic []recordEntry `toml:"topic"`
}

// Records loads topics listed in a single YAML or TOML file.
type Records struct {
	Path   string
	decode func(data []byte) ([]recordEntry, error)
}

func decodeYAML(data []byte) ([]recordEntry, error) {
	var r yamlRecords
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return r.Topics, nil
}

func decodeTOML(data []byte) ([]recordEntry, error) {
	var r tomlRecords
	if err := toml.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return r.Topic, nil
}

func (r *Records) Load(ctx context.Context) ([]content.Record, error) {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.Path, err)
	}
	entries, err := r.decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", r.Path, err)
	}

	base := filepath.Dir(r.Path)
	records := make([]content.Record, 0, len(entries))
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := content.Record{Title: e.Title, Body: e.Body, Source: r.Path}
		if e.File != "" {
			if e.Body != "" {
				return nil, fmt.Errorf("%s: topic %d: 'body' and 'file' are mutually exclusive", r.Path, i+1)
			}
			path := e.File
			if !filepath.IsAbs(path) {
				path = filepath.Join(base, path)
			}
			body, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("%s: topic %d: %w", r.Path, i+1, err)
			}
			rec.Body = string(body)
			rec.Source = path
		}
		records = append(records, rec)
	}
	return records, nil
}
