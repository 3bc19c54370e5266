package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/guidebook/internal/render"
)

// Override applies command-line format and output choices over the file's
// values, then revalidates. An output path alone implies its format; a
// format alone swaps the configured output's extension when it disagrees.
func (c *Config) Override(format, output, projectRoot string) error {
	if output != "" {
		c.Output = output
		if format == "" {
			if f, ok := render.FormatFromPath(output); ok {
				format = f
			}
		}
	}
	if format != "" {
		r, err := render.ForFormat(format)
		if err != nil {
			return fmt.Errorf("--format: %w", err)
		}
		c.Format = r.Format()
		if output == "" && c.Output != "" {
			if f, ok := render.FormatFromPath(c.Output); !ok || f != c.Format {
				c.Output = strings.TrimSuffix(c.Output, filepath.Ext(c.Output)) + r.Extension()
			}
		}
	}
	return Validate(c, projectRoot)
}
