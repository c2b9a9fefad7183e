package site

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/ziadkadry99/robobook/internal/features"
	"github.com/ziadkadry99/robobook/internal/widget"
)

// StylePath is where the stylesheet is served.
const StylePath = "/static/style.css"

type pageConfig struct {
	Title       string
	Description string
}

// layout wraps content in the shared page chrome. Every page carries the
// chat widget.
func (s *Site) layout(cfg pageConfig, content ...g.Node) g.Node {
	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(cfg.Title)),
				g.If(cfg.Description != "", Meta(Name("description"), Content(cfg.Description))),
				Link(Rel("stylesheet"), Href(StylePath)),
			),
			Body(
				s.topbar(),
				g.Group(content),
				widget.View(widget.Snapshot{State: widget.StateClosed}, s.opts.APIURL),
				Script(Src(widget.ScriptPath)),
			),
		),
	})
}

func (s *Site) topbar() g.Node {
	var docsLink g.Node
	if len(s.pages) > 0 {
		docsLink = A(Class("navbar__link"), Href(ChapterURL(s.pages[0].Chapter.Slug)), g.Text("Book"))
	}
	return Nav(
		Class("navbar"),
		A(Class("navbar__brand"), Href("/"), g.Text(s.opts.Title)),
		docsLink,
	)
}

func (s *Site) homePage() g.Node {
	return s.layout(
		pageConfig{Title: s.opts.Title, Description: s.opts.Tagline},
		Header(
			Class("hero hero--primary"),
			Div(
				Class("container"),
				H1(Class("hero__title"), g.Text(s.opts.Title)),
				g.If(s.opts.Tagline != "", P(Class("hero__subtitle"), g.Text(s.opts.Tagline))),
				g.If(len(s.pages) > 0, Div(
					Class("buttons"),
					A(Class("button button--secondary button--lg"), Href(s.firstChapterURL()), g.Text("Start Reading")),
				)),
			),
		),
		Main(features.Grid()),
	)
}

func (s *Site) firstChapterURL() string {
	if len(s.pages) == 0 {
		return "/"
	}
	return ChapterURL(s.pages[0].Chapter.Slug)
}

func (s *Site) chapterPage(idx int) g.Node {
	p := s.pages[idx]
	return s.layout(
		pageConfig{Title: fmt.Sprintf("%s | %s", p.Chapter.Title, s.opts.Title)},
		Div(
			Class("docs-wrapper"),
			s.sidebar(p.Chapter.Slug),
			Main(
				Class("docs-content"),
				Article(Class("markdown"), g.Raw(p.HTML)),
				s.pager(idx),
			),
		),
	)
}

func (s *Site) sidebar(active string) g.Node {
	return Aside(
		Class("sidebar"),
		Nav(
			g.Attr("aria-label", "Chapters"),
			Ul(
				Class("menu__list"),
				g.Map(s.pages, func(p Page) g.Node {
					current := p.Chapter.Slug == active
					class := "menu__link"
					if current {
						class += " menu__link--active"
					}
					return Li(
						Class("menu__item"),
						A(
							Class(class),
							g.If(current, g.Attr("aria-current", "page")),
							Href(ChapterURL(p.Chapter.Slug)),
							g.Text(p.Chapter.Title),
						),
					)
				}),
			),
		),
	)
}

func (s *Site) pager(idx int) g.Node {
	var prev, next g.Node
	if idx > 0 {
		p := s.pages[idx-1].Chapter
		prev = A(Class("pagination-nav__link pagination-nav__link--prev"), Href(ChapterURL(p.Slug)), g.Text("« "+p.Title))
	}
	if idx < len(s.pages)-1 {
		p := s.pages[idx+1].Chapter
		next = A(Class("pagination-nav__link pagination-nav__link--next"), Href(ChapterURL(p.Slug)), g.Text(p.Title+" »"))
	}
	return Nav(Class("pagination-nav"), g.Attr("aria-label", "Chapter navigation"), prev, next)
}
