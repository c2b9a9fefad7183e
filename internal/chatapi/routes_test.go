package chatapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/robobook/internal/db"
	"github.com/ziadkadry99/robobook/internal/history"
	"github.com/ziadkadry99/robobook/internal/rag"
	"github.com/ziadkadry99/robobook/internal/widget"
)

type stubAnswerer struct {
	answer rag.Answer
	err    error
	got    []string
}

func (s *stubAnswerer) Answer(_ context.Context, query string) (rag.Answer, error) {
	s.got = append(s.got, query)
	return s.answer, s.err
}

func newRouter(deps Deps) chi.Router {
	r := chi.NewRouter()
	RegisterRoutes(r, deps)
	return r
}

func newHistory(t *testing.T) *history.Store {
	t.Helper()
	d, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return history.NewStore(d)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestChatAnswersFromAssistant(t *testing.T) {
	stub := &stubAnswerer{answer: rag.Answer{Text: "Six chapters.", Source: rag.SourceRAG}}
	r := newRouter(Deps{Assistant: stub})

	w := get(t, r, "/api/chat?query=how%20many%20chapters")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, ChatResponse{Answer: "Six chapters.", Status: "success", Source: "RAG"}, decode[ChatResponse](t, w))
	assert.Equal(t, []string{"how many chapters"}, stub.got)
}

func TestChatFallbackWithoutAssistant(t *testing.T) {
	r := newRouter(Deps{})

	w := get(t, r, "/api/chat?query=hello")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ChatResponse{Answer: "You asked: hello", Status: "success", Source: "fallback"}, decode[ChatResponse](t, w))
}

func TestChatRejectsMissingQuery(t *testing.T) {
	stub := &stubAnswerer{}
	r := newRouter(Deps{Assistant: stub})

	for _, target := range []string{"/api/chat", "/api/chat?query="} {
		w := get(t, r, target)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, target)
		assert.NotEmpty(t, decode[ErrorResponse](t, w).Detail)
	}
	assert.Empty(t, stub.got)
}

func TestChatAssistantFailure(t *testing.T) {
	stub := &stubAnswerer{err: errors.New("index unavailable")}
	r := newRouter(Deps{Assistant: stub})

	w := get(t, r, "/api/chat?query=robots")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[ChatResponse](t, w)
	assert.Contains(t, resp.Answer, "Error processing query: index unavailable.")
	assert.Equal(t, "success", resp.Status)
}

func TestChatRecordsHistory(t *testing.T) {
	store := newHistory(t)
	stub := &stubAnswerer{answer: rag.Answer{Text: "Lidar.", Source: rag.SourceLLM}}
	r := newRouter(Deps{Assistant: stub, History: store})

	get(t, r, "/api/chat?query=sensors")
	get(t, r, "/api/chat?query=cameras")

	w := get(t, r, "/api/chat/history?limit=1")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[HistoryResponse](t, w)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "cameras", resp.Entries[0].Query)
	assert.Equal(t, "Lidar.", resp.Entries[0].Answer)
	assert.Equal(t, "LLM", resp.Entries[0].Source)
}

func TestHistoryEndpointErrors(t *testing.T) {
	w := get(t, newRouter(Deps{}), "/api/chat/history")
	assert.Equal(t, http.StatusNotFound, w.Code)

	r := newRouter(Deps{History: newHistory(t)})
	w = get(t, r, "/api/chat/history?limit=abc")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = get(t, r, "/api/chat/history")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"entries":[]}`, w.Body.String())
}

func TestStatusAndHealth(t *testing.T) {
	r := newRouter(Deps{Assistant: &stubAnswerer{}})

	assert.Equal(t, StatusResponse{Message: "API is working", RAGAvailable: true},
		decode[StatusResponse](t, get(t, r, "/api/status")))
	assert.Equal(t, HealthResponse{Status: "healthy", Service: "rag-chatbot-api", RAGAvailable: true},
		decode[HealthResponse](t, get(t, r, "/health")))

	assert.False(t, decode[HealthResponse](t, get(t, newRouter(Deps{}), "/health")).RAGAvailable)
}

func TestWidgetClientAgainstChatAPI(t *testing.T) {
	stub := &stubAnswerer{answer: rag.Answer{Text: "42", Source: rag.SourceRAG}}
	srv := httptest.NewServer(newRouter(Deps{Assistant: stub}))
	defer srv.Close()

	client, err := widget.NewClient(srv.URL)
	require.NoError(t, err)

	answer, err := client.Ask(context.Background(), "life & everything?")
	require.NoError(t, err)
	assert.Equal(t, "42", answer)
	assert.Equal(t, []string{"life & everything?"}, stub.got)
}
