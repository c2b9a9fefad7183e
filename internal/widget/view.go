package widget

import (
	_ "embed"
	"net/http"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

//go:embed widget.js
var script []byte

// ScriptPath is where the site serves the browser script.
const ScriptPath = "/static/widget.js"

// View renders the widget for s. endpoint is the base URL the browser script
// sends questions to. The panel is always rendered and hidden while closed so
// the script can toggle it without losing the input.
func View(s Snapshot, endpoint string) g.Node {
	toggleLabel := "Open chatbot"
	if s.Open {
		toggleLabel = "Close chatbot"
	}
	submitClass, submitLabel := "chatbot-submit-button", "Ask"
	if s.Loading {
		submitClass, submitLabel = "chatbot-submit-button loading", "Thinking..."
	}

	return h.Div(
		h.Class("chatbot-widget"),
		g.Attr("data-endpoint", endpoint),
		g.If(s.ID != "", g.Attr("data-widget-id", s.ID)),
		h.Button(
			h.Type("button"),
			h.Class("chatbot-button floating-button"),
			g.Attr("data-action", "toggle"),
			g.Attr("aria-label", toggleLabel),
			g.Attr("aria-expanded", boolAttr(s.Open)),
			g.Text("🤖"),
		),
		h.Div(
			h.Class("chatbot-window"),
			g.If(!s.Open, g.Attr("hidden")),
			h.Div(
				h.Class("chatbot-header"),
				h.H4(h.Class("chatbot-title"), g.Text("🤖 Robotics Chatbot")),
				h.Button(
					h.Type("button"),
					h.Class("close-button"),
					g.Attr("data-action", "close"),
					g.Attr("aria-label", "Close chatbot"),
					g.Text("×"),
				),
			),
			h.Input(
				h.Type("text"),
				h.Class("chatbot-input"),
				h.Value(s.Query),
				h.Placeholder("Ask about humanoid robotics..."),
				g.Attr("aria-label", "Enter your question for the chatbot"),
			),
			h.Button(
				h.Type("button"),
				h.Class(submitClass),
				g.Attr("data-action", "ask"),
				g.If(s.Loading, h.Disabled()),
				g.Text(submitLabel),
			),
			h.Div(
				h.Class("chatbot-response"),
				g.Attr("aria-live", "polite"),
				g.If(s.Answer == "", g.Attr("hidden")),
				h.Strong(g.Text("Answer:")),
				g.Text(" "),
				h.Span(h.Class("chatbot-answer"), g.Text(s.Answer)),
			),
		),
	)
}

// ScriptHandler serves the browser script.
func ScriptHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	_, _ = w.Write(script)
}

// ScriptSource returns a copy of the browser script.
func ScriptSource() []byte {
	out := make([]byte, len(script))
	copy(out, script)
	return out
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
