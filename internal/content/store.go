// Package content holds the ordered, immutable set of topics a guide is
// built from.
package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jorge-barreto/guidebook/internal/blocks"
)

var (
	ErrEmptyTitle = errors.New("topic title is empty")
	ErrSealed     = errors.New("content store is sealed")
)

// DuplicateTitleError is returned when a topic title is added twice.
type DuplicateTitleError struct {
	Title string
}

func (e *DuplicateTitleError) Error() string {
	return fmt.Sprintf("duplicate topic title %q", e.Title)
}

// Topic is one titled section of the guide.
type Topic struct {
	Title  string         `json:"title"`
	Body   []blocks.Block `json:"body"`
	Source string         `json:"source,omitempty"` // file the topic was loaded from
}

// Text returns the body as markdown source.
func (t Topic) Text() string {
	return blocks.Join(t.Body)
}

func (t Topic) clone() Topic {
	t.Body = append([]blocks.Block(nil), t.Body...)
	return t
}

// Store keeps topics in insertion order.
type Store struct {
	topics []Topic
	index  map[string]int
	sealed bool
}

func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// AddTopic appends a topic. The title is trimmed; it must be non-empty and
// not already present.
func (s *Store) AddTopic(title string, body []blocks.Block) error {
	if s.sealed {
		return ErrSealed
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if _, ok := s.index[title]; ok {
		return &DuplicateTitleError{Title: title}
	}
	s.index[title] = len(s.topics)
	s.topics = append(s.topics, Topic{
		Title: title,
		Body:  append([]blocks.Block(nil), body...),
	})
	return nil
}

// Seal ends the load phase. Later AddTopic calls fail with ErrSealed.
func (s *Store) Seal() {
	s.sealed = true
}

// Sealed reports whether Seal has been called.
func (s *Store) Sealed() bool {
	return s.sealed
}

// ListTopics returns a copy of the topics in load order.
func (s *Store) ListTopics() []Topic {
	out := make([]Topic, len(s.topics))
	for i, t := range s.topics {
		out[i] = t.clone()
	}
	return out
}

// Get looks up a topic by title.
func (s *Store) Get(title string) (Topic, bool) {
	i, ok := s.index[strings.TrimSpace(title)]
	if !ok {
		return Topic{}, false
	}
	return s.topics[i].clone(), true
}

// Len returns the number of topics.
func (s *Store) Len() int {
	return len(s.topics)
}
