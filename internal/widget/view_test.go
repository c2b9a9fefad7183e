package widget

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderView(t *testing.T, s Snapshot) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, View(s, "http://localhost:8000").Render(&buf))
	return buf.String()
}

func TestViewClosed(t *testing.T) {
	out := renderView(t, Snapshot{State: StateClosed})

	assert.Contains(t, out, `data-endpoint="http://localhost:8000"`)
	assert.Contains(t, out, `aria-label="Open chatbot"`)
	assert.Contains(t, out, `<div class="chatbot-window" hidden>`)
	assert.Contains(t, out, `<div class="chatbot-response" aria-live="polite" hidden>`)
}

func TestViewOpenLoading(t *testing.T) {
	out := renderView(t, Snapshot{Open: true, Loading: true, Query: "how do robots walk?", State: StateLoading})

	assert.Contains(t, out, `aria-label="Close chatbot"`)
	assert.NotContains(t, out, `<div class="chatbot-window" hidden>`)
	assert.Contains(t, out, `class="chatbot-submit-button loading"`)
	assert.Contains(t, out, "disabled")
	assert.Contains(t, out, "Thinking...")
	assert.Contains(t, out, `value="how do robots walk?"`)
}

func TestViewAnswerEscaped(t *testing.T) {
	out := renderView(t, Snapshot{Open: true, Answer: "<b>42</b>", State: StateAnswered})

	assert.Contains(t, out, "&lt;b&gt;42&lt;/b&gt;")
	assert.Contains(t, out, ">Ask<")
	assert.Equal(t, 1, strings.Count(out, "Answer:"))
	assert.NotContains(t, out, `aria-live="polite" hidden`)
}

func TestScriptHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	ScriptHandler(rec, httptest.NewRequest(http.MethodGet, ScriptPath, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "javascript")
	assert.Contains(t, rec.Body.String(), ErrorMessage)
	assert.Equal(t, rec.Body.Bytes(), ScriptSource())
}

func TestScriptMatchesGoWidget(t *testing.T) {
	src := string(ScriptSource())

	assert.Contains(t, src, "var ERROR_MESSAGE = '"+ErrorMessage+"';")
	assert.Contains(t, src, "endpoint + '"+ChatPath+"?query=' + encodeURIComponent(query)")
	assert.Contains(t, src, "state.query.trim()")
	assert.Contains(t, src, "if (!query || state.loading)")
	assert.Contains(t, src, "typeof data.answer !== 'string'")
	assert.Contains(t, src, "if (mine !== generation)")
	assert.Contains(t, src, "e.key === '"+CommitKey+"'")
	assert.Contains(t, src, "'Thinking...'")
}

func TestScriptClearsLoadingOnPageHide(t *testing.T) {
	src := string(ScriptSource())
	start := strings.Index(src, "addEventListener('pagehide'")
	require.GreaterOrEqual(t, start, 0)
	end := strings.Index(src[start:], "});")
	require.Greater(t, end, 0)

	handler := src[start : start+end]
	assert.Contains(t, handler, "generation++")
	assert.Contains(t, handler, "state.loading = false")
	assert.Contains(t, handler, "render()")
}
