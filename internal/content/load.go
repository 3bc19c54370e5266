package content

import (
	"fmt"

	"github.com/jorge-barreto/guidebook/internal/blocks"
)

// Record is a raw title/body pair as read from a content source.
type Record struct {
	Title  string
	Body   string // markdown
	Source string
}

// Load parses every record body and returns a sealed store. The first
// failing record aborts the load; no partial store is returned.
func Load(records []Record) (*Store, error) {
	s := NewStore()
	for i, r := range records {
		parsed := blocks.Parse(r.Body)
		if err := s.AddTopic(r.Title, parsed.Blocks); err != nil {
			if r.Source != "" {
				return nil, fmt.Errorf("topic %d (%s): %w", i+1, r.Source, err)
			}
			return nil, fmt.Errorf("topic %d: %w", i+1, err)
		}
		s.topics[len(s.topics)-1].Source = r.Source
	}
	s.Seal()
	return s, nil
}
