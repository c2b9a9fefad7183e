// Package chatapi serves the question-answering endpoints the chat widget
// calls.
package chatapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/robobook/internal/history"
	"github.com/ziadkadry99/robobook/internal/rag"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "rag-chatbot-api"

// Answerer replies to questions.
type Answerer interface {
	Answer(ctx context.Context, query string) (rag.Answer, error)
}

// Deps are the collaborators of the chat endpoints. Assistant and History may
// be nil: without an assistant questions are echoed back, without a history
// store nothing is recorded.
type Deps struct {
	Assistant Answerer
	History   *history.Store
	Logger    *zap.Logger
}

// ChatResponse is the body of a successful /api/chat call.
type ChatResponse struct {
	Answer string `json:"answer"`
	Status string `json:"status"`
	Source string `json:"source"`
}

// StatusResponse is the body of /api/status.
type StatusResponse struct {
	Message      string `json:"message"`
	RAGAvailable bool   `json:"rag_available"`
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status       string `json:"status"`
	Service      string `json:"service"`
	RAGAvailable bool   `json:"rag_available"`
}

// HistoryResponse is the body of /api/chat/history.
type HistoryResponse struct {
	Entries []history.Entry `json:"entries"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// RegisterRoutes mounts the chat endpoints on the given router.
func RegisterRoutes(r chi.Router, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	r.Get("/health", handleHealth(deps))
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", handleStatus(deps))
		r.Get("/chat", handleChat(deps))
		r.Get("/chat/history", handleHistory(deps))
		r.Get("/chat/ws", handleWebSocket(deps))
	})
}

func handleStatus(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, StatusResponse{
			Message:      "API is working",
			RAGAvailable: deps.Assistant != nil,
		})
	}
}

func handleHealth(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{
			Status:       "healthy",
			Service:      ServiceName,
			RAGAvailable: deps.Assistant != nil,
		})
	}
}

func handleChat(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		if query == "" {
			writeError(w, http.StatusUnprocessableEntity, "query parameter is required and must not be empty")
			return
		}
		writeJSON(w, http.StatusOK, deps.respond(r.Context(), query, r.RemoteAddr))
	}
}

// respond answers query and records the exchange. Assistant failures become
// an apology in the answer and are not recorded.
func (deps Deps) respond(ctx context.Context, query, remoteAddr string) ChatResponse {
	resp := ChatResponse{Status: "success"}
	if deps.Assistant == nil {
		resp.Answer = "You asked: " + query
		resp.Source = rag.SourceFallback
	} else {
		ans, err := deps.Assistant.Answer(ctx, query)
		if err != nil {
			deps.Logger.Error("answering question failed", zap.String("query", query), zap.Error(err))
			resp.Answer = fmt.Sprintf("Error processing query: %v. Please try again with a different question about the humanoid robotics book.", err)
			resp.Source = rag.SourceRAG
			return resp
		}
		resp.Answer = ans.Text
		resp.Source = ans.Source
	}

	if deps.History != nil {
		if _, err := deps.History.Record(ctx, history.Entry{
			Query:      query,
			Answer:     resp.Answer,
			Source:     resp.Source,
			RemoteAddr: remoteAddr,
		}); err != nil {
			deps.Logger.Warn("recording chat history failed", zap.Error(err))
		}
	}
	return resp
}

func handleHistory(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.History == nil {
			writeError(w, http.StatusNotFound, "chat history is disabled")
			return
		}

		limit := history.DefaultLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				writeError(w, http.StatusUnprocessableEntity, "limit must be a positive integer")
				return
			}
			limit = n
		}

		entries, err := deps.History.Recent(r.Context(), limit)
		if err != nil {
			deps.Logger.Error("reading chat history failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not read chat history")
			return
		}
		if entries == nil {
			entries = []history.Entry{}
		}
		writeJSON(w, http.StatusOK, HistoryResponse{Entries: entries})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}
