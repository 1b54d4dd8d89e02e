package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	prometheusotel "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"minisearch/internal/config"
	"minisearch/internal/docs"
	"minisearch/internal/engine"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := context.Background()

	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "Path to a TOML or YAML config file")
	listen := flag.String("listen", "", "Override the listen address (e.g. :8080)")
	docsDir := flag.String("docs-dir", "", "Override the documents directory")
	flag.Parse()

	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if envDir := os.Getenv("MINISEARCH_DOCS_DIR"); envDir != "" {
		cfg.Paths.DocsDir = envDir
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}
	if *docsDir != "" {
		cfg.Paths.DocsDir = *docsDir
	}

	eng := engine.New(engine.Options{
		MaxWordLength: cfg.Engine.MaxWordLength,
		PrefixLimit:   cfg.Engine.PrefixLimit,
		HashBuckets:   cfg.Engine.HashBuckets,
	})

	telemetry := newTelemetry(ctx, logger, cfg.Metrics.Enabled != nil && *cfg.Metrics.Enabled)
	server := newAPIServer(eng, telemetry, logger)

	loaded, err := docs.LoadDir(cfg.Paths.DocsDir, server.indexDocument)
	if err != nil {
		logger.Error("failed to load documents directory", "dir", cfg.Paths.DocsDir, "error", err)
		os.Exit(1)
	}
	logger.Info("documents loaded", "dir", cfg.Paths.DocsDir, "documents", loaded)
	server.ready.Store(true)

	if cfg.Watcher.Enabled != nil && *cfg.Watcher.Enabled {
		watcher, err := docs.NewWatcher()
		if err != nil {
			logger.Error("failed to initialize watcher", "error", err)
			os.Exit(1)
		}
		defer watcher.Stop()

		err = watcher.Watch(cfg.Paths.DocsDir, func(path string) {
			content, err := os.ReadFile(path)
			if err != nil {
				logger.Error("failed to read watched file", "path", path, "error", err)
				return
			}
			id := server.indexDocument(filepath.Base(path), string(content))
			logger.Info("watched document indexed", "path", path, "docId", id)
		})
		if err != nil {
			logger.Error("failed to start watcher", "dir", cfg.Paths.DocsDir, "error", err)
			os.Exit(1)
		}
		logger.Info("watching documents directory", "dir", cfg.Paths.DocsDir)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/documents", server.handleDocuments)
	mux.HandleFunc("/v1/frequency", server.handleFrequency)
	mux.HandleFunc("/v1/search", server.handleSearch)
	mux.HandleFunc("/v1/termfreq", server.handleTermFrequency)
	mux.HandleFunc("/v1/stats", server.handleStats)
	mux.HandleFunc("/v1/health", server.handleHealth)
	mux.HandleFunc("/v1/readyz", server.handleReady)
	if telemetry.enabled {
		mux.HandleFunc("/v1/metrics", telemetry.handleMetrics)
	}

	handler := withJSONHeaders(mux)
	handler = withTelemetry(handler, telemetry, cfg.Logging.RequestLogs == nil || *cfg.Logging.RequestLogs)

	logger.Info("minisearch API listening", "listen", cfg.Server.Listen, "docsDir", cfg.Paths.DocsDir)
	if err := http.ListenAndServe(cfg.Server.Listen, handler); err != nil {
		logger.Error("server stopped", "error", err)
	}
}

func withJSONHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

type telemetry struct {
	enabled bool
	logger  *slog.Logger

	registry       *prometheus.Registry
	metricsHandler http.Handler
	meter          metric.Meter

	reqCount    atomic.Int64
	errCount    atomic.Int64
	lastStatus  atomic.Int64
	lastLatency atomic.Int64

	httpRequests  metric.Int64Counter
	httpErrors    metric.Int64Counter
	httpLatency   metric.Float64Histogram
	indexDocs     metric.Int64Counter
	indexLatency  metric.Float64Histogram
	searchOps     metric.Int64Counter
	searchLatency metric.Float64Histogram

	docGauge  prometheus.Gauge
	wordGauge prometheus.Gauge
}

func newTelemetry(ctx context.Context, logger *slog.Logger, enabled bool) *telemetry {
	telemetry := &telemetry{enabled: enabled, logger: logger}
	if !enabled {
		return telemetry
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	exporter, err := prometheusotel.New(prometheusotel.WithRegisterer(registry))
	if err != nil {
		logger.Error("failed to initialize prometheus exporter", "error", err)
		telemetry.enabled = false
		return telemetry
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	meter := provider.Meter("minisearch")

	httpReq, errReq := meter.Int64Counter("http_requests_total", metric.WithDescription("Total HTTP requests"))
	httpErr, errErr := meter.Int64Counter("http_errors_total", metric.WithDescription("HTTP requests that returned an error status"))
	httpLatency, errHTTPLat := meter.Float64Histogram("http_request_duration_ms", metric.WithDescription("Latency of HTTP requests in milliseconds"), metric.WithUnit("ms"))
	indexDocs, errIdx := meter.Int64Counter("index_documents_total", metric.WithDescription("Documents fed through the indexer"))
	indexLatency, errIdxLat := meter.Float64Histogram("index_latency_ms", metric.WithDescription("Latency of indexing passes"), metric.WithUnit("ms"))
	searchOps, errSearch := meter.Int64Counter("search_requests_total", metric.WithDescription("Query operations executed"))
	searchLatency, errSearchLat := meter.Float64Histogram("search_latency_ms", metric.WithDescription("Latency of query operations"), metric.WithUnit("ms"))
	if err := errors.Join(errReq, errErr, errHTTPLat, errIdx, errIdxLat, errSearch, errSearchLat); err != nil {
		logger.Error("failed to create metric instruments", "error", err)
		telemetry.enabled = false
		return telemetry
	}

	docGauge := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "minisearch", Name: "documents", Help: "Documents currently indexed"})
	wordGauge := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "minisearch", Name: "unique_words", Help: "Distinct words currently indexed"})
	registry.MustRegister(docGauge, wordGauge)

	telemetry.registry = registry
	telemetry.metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	telemetry.meter = meter
	telemetry.httpRequests = httpReq
	telemetry.httpErrors = httpErr
	telemetry.httpLatency = httpLatency
	telemetry.indexDocs = indexDocs
	telemetry.indexLatency = indexLatency
	telemetry.searchOps = searchOps
	telemetry.searchLatency = searchLatency
	telemetry.docGauge = docGauge
	telemetry.wordGauge = wordGauge

	telemetry.logger.Info("telemetry initialized", "prometheus", true)
	telemetry.httpRequests.Add(ctx, 0) // ensure metric is created eagerly
	return telemetry
}

func (t *telemetry) recordRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	if !t.enabled {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status", status),
	)
	t.httpRequests.Add(ctx, 1, attrs)
	t.httpLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
	if status >= http.StatusBadRequest {
		t.httpErrors.Add(ctx, 1, attrs)
	}

	t.reqCount.Add(1)
	t.lastStatus.Store(int64(status))
	t.lastLatency.Store(duration.Milliseconds())
	if status >= http.StatusBadRequest {
		t.errCount.Add(1)
	}
}

func (t *telemetry) recordIndexing(ctx context.Context, stats engine.Stats, duration time.Duration) {
	if !t.enabled {
		return
	}

	t.indexDocs.Add(ctx, 1)
	t.indexLatency.Record(ctx, float64(duration.Milliseconds()))
	t.docGauge.Set(float64(stats.DocCount))
	t.wordGauge.Set(float64(stats.UniqueWords))
}

func (t *telemetry) recordSearch(ctx context.Context, mode string, hits int, duration time.Duration) {
	if !t.enabled {
		return
	}

	attrs := metric.WithAttributes(attribute.String("mode", mode), attribute.Int("hits", hits))
	t.searchOps.Add(ctx, 1, attrs)
	t.searchLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
}

func (t *telemetry) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !t.enabled || t.registry == nil {
		respond(w, http.StatusOK, map[string]any{"enabled": false})
		return
	}

	t.metricsHandler.ServeHTTP(w, r)
}

func withTelemetry(next http.Handler, telemetry *telemetry, logRequests bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r)
		duration := time.Since(start)

		if telemetry != nil {
			telemetry.recordRequest(r.Context(), r.Method, r.URL.Path, recorder.status, duration)
		}
		if logRequests && telemetry != nil && telemetry.logger != nil {
			telemetry.logger.Info("request completed", "method", r.Method, "path", r.URL.Path, "status", recorder.status, "duration_ms", duration.Milliseconds())
		}
	})
}

// apiServer owns the single engine instance. The engine itself is
// unsynchronized, so every access goes through mu: writers take the
// exclusive lock, queries the shared one.
type apiServer struct {
	engine    *engine.Engine
	telemetry *telemetry
	logger    *slog.Logger
	mu        sync.RWMutex
	ready     atomic.Bool
}

func newAPIServer(eng *engine.Engine, telemetry *telemetry, logger *slog.Logger) *apiServer {
	return &apiServer{engine: eng, telemetry: telemetry, logger: logger}
}

// indexDocument is the single write path into the engine, shared by the
// startup loader, the watcher, and the POST handler.
func (s *apiServer) indexDocument(name, text string) int {
	start := time.Now()

	s.mu.Lock()
	id := s.engine.IndexText(name, text)
	stats := s.engine.Stats()
	s.mu.Unlock()

	if s.telemetry != nil {
		s.telemetry.recordIndexing(context.Background(), stats, time.Since(start))
	}
	return id
}

func (s *apiServer) handleDocuments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createDocument(w, r)
	case http.MethodGet:
		s.listDocuments(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *apiServer) createDocument(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req struct {
		Name string `json:"name"`
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json payload", start)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required", start)
		return
	}

	id := s.indexDocument(req.Name, req.Text)

	s.mu.RLock()
	doc, _ := s.engine.GetDocument(id)
	s.mu.RUnlock()

	respond(w, http.StatusCreated, map[string]any{
		"docId":     doc.ID,
		"filename":  doc.Name,
		"wordCount": doc.WordCount,
		"timingMs":  time.Since(start).Milliseconds(),
	})

	if s.logger != nil {
		s.logger.Info("document indexed", "filename", doc.Name, "docId", doc.ID, "wordCount", doc.WordCount, "duration_ms", time.Since(start).Milliseconds())
	}
}

func (s *apiServer) listDocuments(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()

	s.mu.RLock()
	documents := s.engine.Documents()
	s.mu.RUnlock()

	respond(w, http.StatusOK, map[string]any{
		"documents": documents,
		"count":     len(documents),
		"timingMs":  time.Since(start).Milliseconds(),
	})
}

func (s *apiServer) handleFrequency(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	word := r.URL.Query().Get("word")
	if word == "" {
		respondError(w, http.StatusBadRequest, "word parameter is required", start)
		return
	}

	s.mu.RLock()
	result := s.engine.Frequency(word)
	s.mu.RUnlock()

	if s.telemetry != nil {
		s.telemetry.recordSearch(r.Context(), "frequency", len(result.Documents), time.Since(start))
	}
	respond(w, http.StatusOK, result)
}

func (s *apiServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "q parameter is required", start)
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "keyword"
	}

	var payload any
	hits := 0

	switch mode {
	case "keyword":
		s.mu.RLock()
		result := s.engine.Search(query)
		s.mu.RUnlock()
		payload, hits = result, len(result.Hits)
	case "prefix":
		s.mu.RLock()
		result := s.engine.PrefixSearch(query)
		s.mu.RUnlock()
		payload, hits = result, len(result.Words)
	case "multi":
		s.mu.RLock()
		result := s.engine.SearchAll(strings.Fields(query))
		s.mu.RUnlock()
		payload, hits = result, len(result.Docs)
	default:
		respondError(w, http.StatusBadRequest, "mode must be keyword, prefix, or multi", start)
		return
	}

	if s.telemetry != nil {
		s.telemetry.recordSearch(r.Context(), mode, hits, time.Since(start))
	}
	respond(w, http.StatusOK, payload)

	if s.logger != nil {
		s.logger.Info("search completed", "mode", mode, "query", query, "hits", hits, "duration_ms", time.Since(start).Milliseconds())
	}
}

func (s *apiServer) handleTermFrequency(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	word := r.URL.Query().Get("word")
	if word == "" {
		respondError(w, http.StatusBadRequest, "word parameter is required", start)
		return
	}

	s.mu.RLock()
	stats := s.engine.TermFrequency(word)
	s.mu.RUnlock()

	if s.telemetry != nil {
		s.telemetry.recordSearch(r.Context(), "termfreq", len(stats), time.Since(start))
	}
	respond(w, http.StatusOK, map[string]any{
		"word":      engine.Normalize(word),
		"documents": stats,
		"timingMs":  time.Since(start).Milliseconds(),
	})
}

func (s *apiServer) handleStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	stats := s.engine.Stats()
	s.mu.RUnlock()

	respond(w, http.StatusOK, map[string]any{
		"totalDocs":    stats.DocCount,
		"uniqueWords":  stats.UniqueWords,
		"totalIndexed": stats.TotalTokens,
		"timingMs":     time.Since(start).Milliseconds(),
	})
}

func (s *apiServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()
	respond(w, http.StatusOK, map[string]any{"status": "ok", "timingMs": time.Since(start).Milliseconds()})
}

// handleReady reports 503 until the startup document load has finished.
func (s *apiServer) handleReady(w http.ResponseWriter, _ *http.Request) {
	if !s.ready.Load() {
		respond(w, http.StatusServiceUnavailable, map[string]any{"status": "loading"})
		return
	}
	respond(w, http.StatusOK, map[string]any{"status": "ready"})
}

func respond(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, start time.Time) {
	respond(w, status, map[string]any{"error": message, "timingMs": time.Since(start).Milliseconds()})
}
