package book

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFrontmatter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no frontmatter", "# Title\n\nBody", "# Title\n\nBody"},
		{"leading block", "---\nsidebar_position: 1\n---\n# Title\nBody", "# Title\nBody"},
		{"blank lines before block", "\n\n---\nid: x\n---\n\n# T", "# T"},
		{"horizontal rule kept", "---\nid: x\n---\n# T\n\n---\n\nMore", "# T\n\n---\n\nMore"},
		{"unterminated", "---\nid: x\n# T", "---\nid: x\n# T"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFrontmatter(tt.input))
		})
	}
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "Perception Systems", ExtractTitle("intro text\n# Perception Systems\n## Sub", "04-perception-systems.md"))
	assert.Equal(t, "04-perception-systems", ExtractTitle("no heading here", "04-perception-systems.md"))
}

func TestLoadFSOrdersByFileName(t *testing.T) {
	fsys := fstest.MapFS{
		"intro.md":                          {Data: []byte("---\nsidebar_position: 1\n---\n# Welcome\nHello")},
		"02-foundations-of-robotics.md":     {Data: []byte("# Foundations\nJoints and links.")},
		"01-introduction-to-physical-ai.md": {Data: []byte("# Physical AI\nEmbodiment.")},
		"notes.txt":                         {Data: []byte("ignored")},
		"drafts/wip.md":                     {Data: []byte("# WIP")},
	}

	b, err := LoadFS(fsys, nil)
	require.NoError(t, err)
	require.Equal(t, 3, b.Len())

	assert.Equal(t, "01-introduction-to-physical-ai", b.Chapters[0].Slug)
	assert.Equal(t, "02-foundations-of-robotics", b.Chapters[1].Slug)
	assert.Equal(t, "intro", b.Chapters[2].Slug)
	assert.Equal(t, "Welcome", b.Chapters[2].Title)
	assert.Equal(t, "# Welcome\nHello", b.Chapters[2].Content)
}

func TestLoadFSIncludeGlobs(t *testing.T) {
	fsys := fstest.MapFS{
		"intro.md":      {Data: []byte("# Intro")},
		"drafts/wip.md": {Data: []byte("# WIP")},
	}

	b, err := LoadFS(fsys, []string{"**/*.md", "intro.md"})
	require.NoError(t, err)
	require.Equal(t, 2, b.Len())
	assert.Equal(t, "drafts/wip", b.Chapters[0].Slug)
	assert.Equal(t, "intro", b.Chapters[1].Slug)
}

func TestChapterLookup(t *testing.T) {
	b := &Book{Chapters: []Chapter{{Slug: "intro", Title: "Intro"}}}

	ch, err := b.Chapter("intro")
	require.NoError(t, err)
	assert.Equal(t, "Intro", ch.Title)

	_, err = b.Chapter("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "intro.md"), []byte("# Intro\nBody"), 0o644))

	b, err := Load(dir, []string{"*.md"})
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())
	assert.Equal(t, "Intro", b.Chapters[0].Title)
}
