package toc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorge-barreto/guidebook/internal/content"
)

func topics(titles ...string) []content.Topic {
	out := make([]content.Topic, len(titles))
	for i, title := range titles {
		out[i] = content.Topic{Title: title}
	}
	return out
}

func TestBuild_Example(t *testing.T) {
	got, err := Build(topics("Syntax", "Loops"))
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Title: "Syntax", Anchor: "syntax"},
		{Title: "Loops", Anchor: "loops"},
	}, got)
}

func TestBuild_Empty(t *testing.T) {
	_, err := Build(nil)
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = Build([]content.Topic{})
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestBuild_LengthAndOrder(t *testing.T) {
	for _, n := range []int{1, 2, 7, 50} {
		t.Run(fmt.Sprintf("%d topics", n), func(t *testing.T) {
			titles := make([]string, n)
			for i := range titles {
				titles[n-1-i] = fmt.Sprintf("Topic %03d", i)
			}
			in := topics(titles...)

			got, err := Build(in)
			require.NoError(t, err)
			require.Len(t, got, n)
			for i := range in {
				assert.Equal(t, in[i].Title, got[i].Title)
			}
		})
	}
}

func TestBuild_AnchorsUnique(t *testing.T) {
	got, err := Build(topics("C", "C++", "C#", "!!!", "???"))
	require.NoError(t, err)

	anchors := make([]string, len(got))
	for i, e := range got {
		anchors[i] = e.Anchor
	}
	assert.Equal(t, []string{"c", "c-1", "c-2", "topic", "topic-1"}, anchors)
}

func TestBuild_SuffixDoesNotClashWithRealTitle(t *testing.T) {
	got, err := Build(topics("Go", "Go!", "Go 1"))
	require.NoError(t, err)
	assert.Equal(t, "go", got[0].Anchor)
	assert.Equal(t, "go-1", got[1].Anchor)
	assert.Equal(t, "go-1-1", got[2].Anchor)
}

func TestBuild_Deterministic(t *testing.T) {
	in := topics("Blocks, Procs & Lambdas", "Method Missing", "Fibers")
	a, err := Build(in)
	require.NoError(t, err)
	b, err := Build(in)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Syntax", "syntax"},
		{"Blocks, Procs & Lambdas", "blocks-procs-lambdas"},
		{"  Method Missing  ", "method-missing"},
		{"define_method", "definemethod"},
		{"Ruby 3.2 Features", "ruby-32-features"},
		{"Ractors -- Parallelism", "ractors-parallelism"},
		{"Módulos y Mixins", "módulos-y-mixins"},
		{"???", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestCollisions(t *testing.T) {
	entries, err := Build(topics("C", "Loops", "C++"))
	require.NoError(t, err)

	got := Collisions(entries)
	assert.Equal(t, map[string]string{"C++": "C"}, got)
}
