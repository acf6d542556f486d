package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/nyaysaathi/legal-assistant/internal/core/ports"
	"github.com/nyaysaathi/legal-assistant/internal/core/usecase"
	"github.com/nyaysaathi/legal-assistant/internal/observability/metrics"
)

const serviceName = "legal-assistant-api"

// Router exposes the question-answering core and the corpus admin surface.
type Router struct {
	answerer ports.LegalAnswerer
	ingestor ports.DocumentIngestor
	repo     ports.DocumentRepository
	linkMap  *usecase.LinkMapCache
	metrics  *metrics.HTTPServerMetrics
}

func NewRouter(
	answerer ports.LegalAnswerer,
	ingestor ports.DocumentIngestor,
	repo ports.DocumentRepository,
	linkMap *usecase.LinkMapCache,
	m *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		answerer: answerer,
		ingestor: ingestor,
		repo:     repo,
		linkMap:  linkMap,
		metrics:  m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/ask", rt.ask)
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/documents/", rt.documentByID)
	mux.HandleFunc("/admin/link-map/reload", rt.reloadLinkMap)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
		return requestIDMiddleware(accessLogMiddleware(rt.metrics.Middleware(serviceName, mux)))
	}
	return requestIDMiddleware(accessLogMiddleware(mux))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type askRequest struct {
	Question string `json:"question"`
	Stream   bool   `json:"stream"`
}

func (rt *Router) ask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	start := time.Now()
	if req.Stream {
		rt.askStream(w, r, req.Question, start)
		return
	}

	ans, err := rt.answerer.Answer(r.Context(), req.Question)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}
	rt.recordAnswer(ans.Language, string(ans.Tier), len(ans.Sources), start)
	writeJSON(w, http.StatusOK, ans)
}

func (rt *Router) askStream(w http.ResponseWriter, r *http.Request, question string, start time.Time) {
	sse, err := newSSEWriter(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ans, err := rt.answerer.AnswerStream(r.Context(), question, func(delta string) error {
		return sse.WriteEvent("delta", map[string]string{"text": delta})
	})
	if err != nil {
		// Headers are already out; surface the failure as a final event.
		_ = sse.WriteEvent("error", map[string]string{"error": err.Error()})
		return
	}

	rt.recordAnswer(ans.Language, string(ans.Tier), len(ans.Sources), start)
	_ = sse.WriteEvent("answer", ans)
	_ = sse.Done()
}

func (rt *Router) recordAnswer(language, tier string, sources int, start time.Time) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordAnswer(serviceName, tier, time.Since(start))
	rt.metrics.RecordLanguage(serviceName, language)
	rt.metrics.RecordRetrieval(serviceName, sources, sources > 0)
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	doc, err := rt.ingestor.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) documentByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if rest == "" {
		writeError(w, http.StatusBadRequest, "document id is required")
		return
	}

	if id, ok := strings.CutSuffix(rest, "/approval"); ok {
		rt.setApproval(w, r, id)
		return
	}

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	doc, err := rt.repo.GetByID(r.Context(), rest)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) setApproval(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Approved bool `json:"approved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := rt.repo.SetApproved(r.Context(), id, req.Approved); err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"doc_id": id, "approved": req.Approved})
}

func (rt *Router) reloadLinkMap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if rt.linkMap == nil {
		writeError(w, http.StatusNotFound, "no link map configured")
		return
	}
	if err := rt.linkMap.Reload(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
