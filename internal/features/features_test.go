package features

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf))
	return buf.String()
}

func TestEntriesFixedList(t *testing.T) {
	list := Entries()
	require.Len(t, list, 6)

	titles := make([]string, len(list))
	for i, e := range list {
		titles[i] = e.Title
	}
	assert.Equal(t, []string{
		"AI-Powered Robotics",
		"Humanoid Design",
		"Open Source",
		"Advanced Sensors",
		"Machine Learning",
		"Human-Robot Interaction",
	}, titles)
}

func TestEntriesReturnsCopy(t *testing.T) {
	list := Entries()
	list[0].Title = "changed"
	assert.Equal(t, "AI-Powered Robotics", Entries()[0].Title)
}

func TestRenderSixCardsInOrder(t *testing.T) {
	out := render(t)

	assert.Equal(t, 6, strings.Count(out, `class="col col--4"`))

	last := -1
	for _, e := range Entries() {
		heading := "<h3>" + e.Title + "</h3>"
		assert.Equal(t, 1, strings.Count(out, heading), "title %q", e.Title)
		assert.Equal(t, 1, strings.Count(out, e.Icon), "icon for %q", e.Title)

		idx := strings.Index(out, heading)
		assert.Greater(t, idx, last, "card %q out of order", e.Title)
		last = idx
	}
}

func TestRenderIdempotent(t *testing.T) {
	assert.Equal(t, render(t), render(t))
}

func TestRenderDescriptionAsParagraph(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GridOf([]Entry{{Title: "T", Icon: "*", Description: "Some **bold** text"}}).Render(&buf))

	out := buf.String()
	assert.Contains(t, out, "<p>Some <strong>bold</strong> text</p>")
	assert.Contains(t, out, `<div class="card__body">`)
}

func TestGridOfEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GridOf(nil).Render(&buf))
	assert.NotContains(t, buf.String(), "card")
}
