package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/Keyring-Network/trendintel/internal/analysis"
	"github.com/Keyring-Network/trendintel/internal/config"
	"github.com/Keyring-Network/trendintel/internal/dashboard"
	"github.com/Keyring-Network/trendintel/internal/events"
	"github.com/Keyring-Network/trendintel/internal/report"
)

const keepAliveInterval = 15 * time.Second

type Server struct {
	controller Controller
	broker     Broker
	renderer   *dashboard.Renderer
	cfg        config.Config
	log        logrus.FieldLogger
	now        func() time.Time
}

type Controller interface {
	Start(ctx context.Context) <-chan analysis.State
	Snapshot() analysis.State
}

type Broker interface {
	Subscribe(ctx context.Context) <-chan events.StateEvent
}

func NewServer(controller Controller, broker Broker, renderer *dashboard.Renderer, cfg config.Config, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		controller: controller,
		broker:     broker,
		renderer:   renderer,
		cfg:        cfg,
		log:        log,
		now:        time.Now,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.quietRequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/", s.page)
	r.Post("/analysis", s.startAnalysis)
	r.Get("/analysis", s.snapshot)
	r.Get("/analysis/events", s.streamEvents)
	r.Get("/analysis/report.md", s.exportMarkdown)
	r.Get("/health", s.health)
	r.Get("/ready", s.ready)

	return r
}

func (s *Server) quietRequestLogger(next http.Handler) http.Handler {
	logged := middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: s.log, NoColor: true})(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shouldSuppressRequestLog(r.Method, r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		logged.ServeHTTP(w, r)
	})
}

func shouldSuppressRequestLog(method string, path string) bool {
	cleanPath := strings.TrimSpace(path)
	if method == http.MethodGet && strings.HasSuffix(cleanPath, "/events") {
		return true
	}
	if method == http.MethodGet && (cleanPath == "/health" || cleanPath == "/ready") {
		return true
	}
	return method == http.MethodOptions
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	view := dashboard.NewView(s.controller.Snapshot(), s.now())
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, view); err != nil {
		s.log.WithError(err).Error("render dashboard")
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) startAnalysis(w http.ResponseWriter, r *http.Request) {
	s.controller.Start(r.Context())
	if wantsJSON(r) {
		writeJSONStatus(w, s.controller.Snapshot(), http.StatusAccepted)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") ||
		strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSONStatus(w, s.controller.Snapshot(), http.StatusOK)
}

func (s *Server) exportMarkdown(w http.ResponseWriter, r *http.Request) {
	state := s.controller.Snapshot()
	if state.Record == nil {
		http.Error(w, "no report available", http.StatusNotFound)
		return
	}
	generatedAt := state.FinishedAt
	if generatedAt.IsZero() {
		generatedAt = s.now()
	}
	var buf bytes.Buffer
	if err := report.WriteMarkdown(&buf, *state.Record, generatedAt); err != nil {
		s.log.WithError(err).Error("render markdown report")
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trend-report.md"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	eventsChan := s.broker.Subscribe(ctx)
	fmt.Fprint(w, ": connected\n\n")
	sendSSE(w, snapshotEvent(s.controller.Snapshot(), s.now()))
	flusher.Flush()

	heartbeat := time.NewTicker(keepAliveInterval)
	defer heartbeat.Stop()

	for {
		select {
		case event, ok := <-eventsChan:
			if !ok {
				return
			}
			sendSSE(w, event)
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case <-ctx.Done():
			return
		}
	}
}

// snapshotEvent lets a late subscriber catch up on a transition it missed.
func snapshotEvent(state analysis.State, now time.Time) events.StateEvent {
	return events.StateEvent{
		Type:   events.TypeSnapshot,
		RunID:  state.RunID,
		Status: string(state.Status),
		Ts:     now.UTC().Format(time.RFC3339Nano),
		Error:  state.Error,
	}
}

func sendSSE(w http.ResponseWriter, event events.StateEvent) {
	payload, _ := json.Marshal(event)
	fmt.Fprintf(w, "id: %d\n", event.Seq)
	fmt.Fprint(w, "event: state\n")
	fmt.Fprintf(w, "data: %s\n\n", payload)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSONStatus(w, map[string]string{"status": "ok"}, http.StatusOK)
}

type subsystemStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status     string                     `json:"status"`
	Subsystems map[string]subsystemStatus `json:"subsystems"`
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	subsystems := map[string]subsystemStatus{}
	overall := http.StatusOK

	if strings.TrimSpace(s.cfg.APIKey) == "" {
		subsystems["llm"] = subsystemStatus{Status: "error", Error: "API key not configured"}
		overall = http.StatusServiceUnavailable
	} else {
		subsystems["llm"] = subsystemStatus{Status: "ok"}
	}

	status := "ok"
	if overall != http.StatusOK {
		status = "degraded"
	}
	writeJSONStatus(w, readinessResponse{Status: status, Subsystems: subsystems}, overall)
}

func writeJSONStatus(w http.ResponseWriter, value any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(value)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Last-Event-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) Start(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
