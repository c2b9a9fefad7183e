package book

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNotFound is returned when a chapter slug does not exist in the book.
var ErrNotFound = errors.New("chapter not found")

// DefaultInclude matches every markdown file at the top of the docs directory.
var DefaultInclude = []string{"*.md"}

// Chapter is one markdown file of the book with its frontmatter removed.
type Chapter struct {
	Slug    string // path relative to the docs dir, without the .md suffix
	File    string // path relative to the docs dir
	Title   string
	Content string
}

// Book is the ordered set of chapters loaded from the docs directory.
type Book struct {
	Chapters []Chapter
}

// Load reads every markdown file under dir matching one of the include globs.
// Chapters are ordered by file path, so numbered chapter files (01-..., 02-...)
// keep their numbering.
func Load(dir string, include []string) (*Book, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("accessing docs dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("docs dir %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir), include)
}

// LoadFS is Load over an arbitrary filesystem.
func LoadFS(fsys fs.FS, include []string) (*Book, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("matching %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !strings.HasSuffix(m, ".md") || seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	sort.Strings(files)

	b := &Book{}
	for _, file := range files {
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		content := StripFrontmatter(string(raw))
		b.Chapters = append(b.Chapters, Chapter{
			Slug:    strings.TrimSuffix(file, path.Ext(file)),
			File:    file,
			Title:   ExtractTitle(content, file),
			Content: content,
		})
	}
	return b, nil
}

// Chapter returns the chapter with the given slug.
func (b *Book) Chapter(slug string) (Chapter, error) {
	for _, ch := range b.Chapters {
		if ch.Slug == slug {
			return ch, nil
		}
	}
	return Chapter{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
}

// Len returns the number of chapters; a nil book has none.
func (b *Book) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Chapters)
}

// StripFrontmatter removes a leading "---" delimited block. Later "---" lines
// are markdown horizontal rules and are kept.
func StripFrontmatter(content string) string {
	lines := strings.Split(content, "\n")
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	if start >= len(lines) || strings.TrimSpace(lines[start]) != "---" {
		return content
	}
	for i := start + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.TrimLeft(strings.Join(lines[i+1:], "\n"), "\n")
		}
	}
	// Unterminated block: treat it as content.
	return content
}

// ExtractTitle returns the first H1 heading, or the file name without extension.
func ExtractTitle(content, file string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return strings.TrimSuffix(path.Base(file), path.Ext(file))
}
