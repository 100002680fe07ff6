package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bujinkan-tools/densho/internal/config"
	"github.com/bujinkan-tools/densho/internal/core/domain"
	"github.com/bujinkan-tools/densho/internal/core/ports"
	"github.com/bujinkan-tools/densho/internal/observability/metrics"
)

// maxRequestTopK bounds the per-request override so one caller cannot turn
// a query into a corpus dump.
const maxRequestTopK = 50

const backpressureWait = 100 * time.Millisecond

type Router struct {
	service string
	query   ports.QueryService
	store   ports.ChunkStore
	index   ports.VectorIndex
	metrics *metrics.HTTPServerMetrics
	cfg     config.Config
}

func NewRouter(
	service string,
	query ports.QueryService,
	store ports.ChunkStore,
	index ports.VectorIndex,
	m *metrics.HTTPServerMetrics,
	cfg config.Config,
) *Router {
	return &Router{
		service: service,
		query:   query,
		store:   store,
		index:   index,
		metrics: m,
		cfg:     cfg,
	}
}

// Handler assembles the route table. The query route alone sits behind the
// traffic gates: health and metrics must stay reachable when the service
// is shedding load.
func (rt *Router) Handler() http.Handler {
	queryHandler := http.Handler(http.HandlerFunc(rt.handleQuery))
	queryHandler = backpressureMiddleware(queryHandler, rt.cfg.APIMaxConcurrent, backpressureWait)
	queryHandler = rt.authMiddleware(queryHandler)
	queryHandler = rateLimitMiddleware(queryHandler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)

	mux := http.NewServeMux()
	mux.Handle("/v1/query", queryHandler)
	mux.HandleFunc("/healthz", rt.healthz)
	mux.Handle("/metrics", rt.metrics.Handler())

	var handler http.Handler = mux
	handler = rt.metrics.Middleware(rt.service, handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"chunks":  rt.store.Count(),
		"vectors": rt.index.Count(),
	})
}

func (rt *Router) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Question string `json:"question"`
		TopK     int    `json:"top_k"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return
	}
	if req.TopK < 0 || req.TopK > maxRequestTopK {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "top_k is out of range"})
		return
	}

	started := time.Now()
	response, err := rt.query.Answer(r.Context(), req.Question, req.TopK)
	if err != nil {
		status := mapErrorToHTTPStatus(err)
		rt.metrics.RecordQuery(rt.service, "error", 0, time.Since(started))
		slog.Error("query_failed",
			"request_id", requestIDFromContext(r.Context()),
			"status", status,
			"error", err,
		)
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	outcome := queryOutcome(response)
	rt.metrics.RecordQuery(rt.service, outcome, response.Meta.RetrievalCount, time.Since(started))
	if path, ok := strings.CutPrefix(response.DetPath, "deterministic/"); ok {
		rt.metrics.RecordExtractorHit(rt.service, path)
	}

	writeJSON(w, http.StatusOK, response)
}

func queryOutcome(response *domain.Response) string {
	switch {
	case strings.HasPrefix(response.DetPath, "deterministic/"):
		return "deterministic"
	case response.DetPath == "hybrid":
		return "hybrid"
	default:
		return "rag"
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
