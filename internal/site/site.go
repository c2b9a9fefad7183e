// Package site renders the book: a homepage with the feature grid and the
// chat widget, and one page per chapter.
package site

import (
	"bytes"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/robobook/internal/book"
)

// Options describe the rendered site.
type Options struct {
	Title   string
	Tagline string
	// APIURL is the chat API base URL the browser widget calls.
	APIURL string
}

// Page is a rendered chapter.
type Page struct {
	Chapter book.Chapter
	HTML    string
}

// Site holds the rendered chapters of a book.
type Site struct {
	opts  Options
	pages []Page
}

// New renders every chapter of b.
func New(b *book.Book, opts Options) (*Site, error) {
	if b == nil {
		b = &book.Book{}
	}
	md := newMarkdown()

	s := &Site{opts: opts}
	for _, ch := range b.Chapters {
		var buf bytes.Buffer
		if err := md.Convert([]byte(ch.Content), &buf); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", ch.File, err)
		}
		s.pages = append(s.pages, Page{
			Chapter: ch,
			HTML:    rewriteChapterLinks(buf.String(), ch.Slug),
		})
	}
	return s, nil
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// Pages returns the rendered chapters in book order.
func (s *Site) Pages() []Page { return s.pages }

// Page returns the chapter page for slug and its position.
func (s *Site) Page(slug string) (Page, int, error) {
	for i, p := range s.pages {
		if p.Chapter.Slug == slug {
			return p, i, nil
		}
	}
	return Page{}, -1, fmt.Errorf("%w: %s", book.ErrNotFound, slug)
}

// ChapterURL is where the chapter with slug is served.
func ChapterURL(slug string) string {
	return "/docs/" + slug + "/"
}

var mdLinkPattern = regexp.MustCompile(`href="([^"#:]+)\.md(#[^"]*)?"`)

// rewriteChapterLinks points relative links to other chapter files at their
// chapter pages. from is the slug of the page holding the links.
func rewriteChapterLinks(htmlContent, from string) string {
	dir := path.Dir(from)
	return mdLinkPattern.ReplaceAllStringFunc(htmlContent, func(m string) string {
		sub := mdLinkPattern.FindStringSubmatch(m)
		target := sub[1]
		if !strings.HasPrefix(target, "/") {
			target = path.Join(dir, target)
		}
		target = strings.TrimPrefix(target, "/")
		return `href="` + ChapterURL(target) + sub[2] + `"`
	})
}
