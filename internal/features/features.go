// Package features renders the homepage feature grid.
package features

import (
	"bytes"
	"io"

	"github.com/yuin/goldmark"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Entry is one card of the grid. Description is inline markdown.
type Entry struct {
	Title       string
	Icon        string
	Description string
}

var entries = []Entry{
	{
		Title:       "AI-Powered Robotics",
		Icon:        "🤖",
		Description: "Advanced robotics powered by artificial intelligence and machine learning algorithms. Intelligent systems that adapt and learn from their environment.",
	},
	{
		Title:       "Humanoid Design",
		Icon:        "🦾",
		Description: "Sophisticated humanoid design that mimics human movements and interactions. Human-like form factor for natural interaction.",
	},
	{
		Title:       "Open Source",
		Icon:        "🔓",
		Description: "Built with open source technologies and community-driven development. Collaborative approach to robotics advancement.",
	},
	{
		Title:       "Advanced Sensors",
		Icon:        "📡",
		Description: "Integrated sensor systems for environment perception and interaction. Multiple sensors for comprehensive data collection.",
	},
	{
		Title:       "Machine Learning",
		Icon:        "🧠",
		Description: "Intelligent systems that learn and adapt to new situations and environments. Continuous learning and improvement capabilities.",
	},
	{
		Title:       "Human-Robot Interaction",
		Icon:        "🤝",
		Description: "Seamless interfaces for natural communication between humans and robots. Intuitive interaction methods and safety protocols.",
	},
}

// Entries returns a copy of the fixed feature list in declaration order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Grid renders the fixed feature list.
func Grid() g.Node {
	return GridOf(entries)
}

// GridOf renders one card per entry, in order.
func GridOf(list []Entry) g.Node {
	return Section(
		Class("features"),
		Div(
			Class("container"),
			Div(
				Class("row"),
				g.Group(g.Map(list, card)),
			),
		),
	)
}

// Render writes the fixed grid to w.
func Render(w io.Writer) error {
	return Grid().Render(w)
}

func card(e Entry) g.Node {
	return Div(
		Class("col col--4"),
		Div(
			Class("card chapter-feature"),
			Div(
				Class("card__header"),
				Div(Class("feature-icon"), g.Attr("aria-hidden", "true"), g.Text(e.Icon)),
				H3(g.Text(e.Title)),
			),
			Div(
				Class("card__body"),
				description(e.Description),
			),
		),
	)
}

// description converts the markdown description to HTML. goldmark wraps
// paragraphs in <p>; a conversion failure falls back to escaped text.
func description(md string) g.Node {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return P(g.Text(md))
	}
	return g.Raw(buf.String())
}
