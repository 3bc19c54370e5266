// Package source reads topic records from disk.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/guidebook/internal/content"
)

// Source produces topic records in guide order.
type Source interface {
	Load(ctx context.Context) ([]content.Record, error)
}

// Open picks a source for path: a directory of markdown files, or a
// .yaml/.yml/.toml records file.
func Open(path string, includeDrafts bool) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	if info.IsDir() {
		return &Dir{Path: path, IncludeDrafts: includeDrafts}, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return &Records{Path: path, decode: decodeYAML}, nil
	case ".toml":
		return &Records{Path: path, decode: decodeTOML}, nil
	default:
		return nil, fmt.Errorf("source %s: expected a directory or a .yaml, .yml or .toml file", path)
	}
}
