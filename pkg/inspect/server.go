package inspect

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/fiber/internal/errors"
	"github.com/vango-dev/fiber/pkg/fiber"
	"github.com/vango-dev/fiber/pkg/host"
	"github.com/vango-dev/fiber/pkg/middleware"
	"github.com/vango-dev/fiber/pkg/render"
	"github.com/vango-dev/fiber/pkg/vdom"
)

// Options configures a Server.
type Options struct {
	// Logger receives request and stream records. Default: slog.Default().
	Logger *slog.Logger

	// Gatherer backs /metrics. Nil disables the route.
	Gatherer prometheus.Gatherer

	// Slice is the wall-clock budget of one work slice. Default: 5ms.
	Slice time.Duration

	// CheckOrigin validates WebSocket origins. Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// SchedulerOptions are passed to fiber.New.
	SchedulerOptions []fiber.Option

	// HTTPMetrics records requests and stream clients. Nil disables them.
	HTTPMetrics *middleware.Metrics

	// Middleware runs after the built-in request id, recovery and logging
	// middleware, e.g. middleware.Tracing.
	Middleware []func(http.Handler) http.Handler
}

// Server is the inspector. Create it with New.
type Server struct {
	logger   *slog.Logger
	router   chi.Router
	upgrader websocket.Upgrader

	mu     sync.Mutex
	mem    *host.Memory
	driver *fiber.LoopDriver
	sched  *fiber.Scheduler
	commit fiber.CommitInfo

	stream *stream
	html   *render.Renderer
}

// New creates a Server rendering into mem.
func New(mem *host.Memory, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.CheckOrigin == nil {
		opts.CheckOrigin = SameOriginCheck
	}

	s := &Server{
		logger: opts.Logger,
		mem:    mem,
		driver: fiber.NewLoopDriver(opts.Slice),
		stream: newStream(opts.Logger, opts.HTTPMetrics),
		html:   render.New(render.Options{Pretty: true, Markers: true}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     opts.CheckOrigin,
		},
	}

	schedOpts := append([]fiber.Option{fiber.WithLogger(opts.Logger)}, opts.SchedulerOptions...)
	schedOpts = append(schedOpts, fiber.WithOnCommit(s.observe))
	s.sched = fiber.New(mem, s.driver, schedOpts...)

	s.router = s.routes(opts)
	return s
}

func (s *Server) routes(opts Options) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)
	if opts.HTTPMetrics != nil {
		r.Use(opts.HTTPMetrics.Handler)
	}
	r.Use(opts.Middleware...)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok\n")
	})
	r.Get("/tree", s.handleTree)
	r.Get("/tree.txt", s.handleTreeText)
	r.Get("/tree.html", s.handleTreeHTML)
	r.Get("/fibers", s.handleFibers)
	r.Post("/nodes/{id}/events/{event}", s.handleDispatch)
	r.Get("/ws", s.handleStream)
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Scheduler returns the scheduler. Callers must not use it concurrently
// with the Server; use Do instead.
func (s *Server) Scheduler() *fiber.Scheduler { return s.sched }

// Do runs fn with exclusive access to the scheduler and settles any pass
// it starts.
func (s *Server) Do(ctx context.Context, fn func(*fiber.Scheduler) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.sched); err != nil {
		return err
	}
	return s.driver.Run(ctx)
}

// Render renders view into the memory container and settles.
func (s *Server) Render(ctx context.Context, view *vdom.VNode) error {
	return s.Do(ctx, func(sched *fiber.Scheduler) error {
		return sched.Render(view, s.mem.Container())
	})
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("inspector listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.stream.close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// observe is the scheduler's commit observer. It runs with s.mu held.
func (s *Server) observe(info fiber.CommitInfo) {
	s.commit = info
	s.stream.publish(commitEvent(info))
}

// treeResponse is the body of /tree and of event dispatches.
type treeResponse struct {
	Pass  uint64             `json:"pass"`
	State string             `json:"state"`
	Tree  *host.NodeSnapshot `json:"tree"`
}

func (s *Server) snapshot() treeResponse {
	return treeResponse{
		Pass:  s.commit.Pass,
		State: s.sched.State().String(),
		Tree:  s.mem.Snapshot(),
	}
}

func (s *Server) handleTree(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	resp := s.snapshot()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTreeText(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	text := s.mem.Dump()
	s.mu.Unlock()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, text)
}

func (s *Server) handleTreeHTML(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	page, err := s.html.String(s.mem.Container())
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, page)
}

func (s *Server) handleFibers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	tree := describeFiber(s.sched.Current())
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, tree)
}

// dispatchRequest is the optional body of an event dispatch.
type dispatchRequest struct {
	Payload any `json:"payload"`
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid node id")
		return
	}
	event := chi.URLParam(r, "event")

	var req dispatchRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !stderrors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	node := s.mem.FindByID(id)
	if node == nil {
		writeError(w, http.StatusNotFound, "no attached node "+strconv.Itoa(id))
		return
	}

	var dispatchErr error
	s.sched.Batch(func() {
		dispatchErr = s.mem.Dispatch(node, event, req.Payload)
	})
	if dispatchErr != nil {
		writeError(w, http.StatusBadRequest, dispatchErr.Error())
		return
	}
	if err := s.driver.Run(r.Context()); err != nil {
		s.logger.Error("inspector: pass failed", "error", err)
		status := http.StatusInternalServerError
		if errors.HasCode(err, "E104") || errors.HasCode(err, "E102") {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("inspector: upgrade failed", "error", err)
		return
	}

	s.mu.Lock()
	last := s.commit
	s.mu.Unlock()

	s.stream.serve(conn, commitEvent(last))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("inspector: request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()))
	})
}

// SameOriginCheck accepts requests without an Origin header and requests
// whose Origin host matches the request host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return r.Host != "" && u.Host == r.Host
}

// AllowOrigins returns a CheckOrigin func accepting same-origin requests
// and the listed origins.
func AllowOrigins(origins ...string) func(*http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		return SameOriginCheck(r) || allowed[r.Header.Get("Origin")]
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
