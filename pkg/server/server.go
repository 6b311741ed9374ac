package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/modgraph/pkg/buildinfo"
	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/graph"
	"github.com/matzehuels/modgraph/pkg/search"
	"github.com/matzehuels/modgraph/pkg/viewer"
)

// DefaultSearchLimit caps search results when the request sets no limit.
const DefaultSearchLimit = 50

// Server serves one session.
type Server struct {
	session *Session
	hub     *Hub
	logger  *log.Logger
	router  chi.Router
}

// New creates a server for session. hub must be the hub the session
// publishes to; it is run by ListenAndServe.
func New(session *Session, hub *Hub, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{session: session, hub: hub, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/state", s.handleState)
		r.Get("/search", s.handleSearch)
		r.Get("/ws", s.handleWS)

		r.Route("/nodes/{id}", func(r chi.Router) {
			r.Post("/reveal", s.nodeOp((*viewer.Engine).RevealNode))
			r.Post("/expand-upstream", s.nodeOp((*viewer.Engine).ExpandUpstream))
			r.Post("/expand-downstream", s.nodeOp((*viewer.Engine).ExpandDownstream))
			r.Put("/position", s.handlePosition)
		})

		r.Put("/selection", s.handleSelect)
		r.Post("/selection/toggle", s.handleToggle)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.hub != nil {
		go s.hub.Run(ctx)
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// =============================================================================
// Handlers
// =============================================================================

type graphInfo struct {
	Title   string `json:"title"`
	Nodes   int    `json:"nodes"`
	Edges   int    `json:"edges"`
	Visible int    `json:"visible"`
}

type searchResult struct {
	ID      string     `json:"id"`
	Kind    graph.Kind `json:"kind"`
	Label   string     `json:"label"`
	Path    string     `json:"path,omitempty"`
	Visible bool       `json:"visible"`
}

type selectionRequest struct {
	ID string `json:"id"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "server": buildinfo.UserAgent()})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	var info graphInfo
	_ = s.session.Do(func(e *viewer.Engine) error {
		g := e.Graph()
		info = graphInfo{
			Title:   g.Title,
			Nodes:   len(g.Nodes),
			Edges:   len(g.Edges),
			Visible: len(e.Snapshot().Nodes),
		}
		return nil
	})
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Scene())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	limit := DefaultSearchLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	query := r.URL.Query().Get("q")

	results := []searchResult{}
	_ = s.session.Do(func(e *viewer.Engine) error {
		for _, n := range search.FindN(e.Graph().Nodes, query, limit) {
			results = append(results, searchResult{
				ID:      n.ID,
				Kind:    n.Kind,
				Label:   n.DisplayLabel(),
				Path:    n.PathRelative,
				Visible: e.IsVisible(n.ID),
			})
		}
		return nil
	})
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		writeError(w, errors.New(errors.ErrCodeUnsupported, "live updates are disabled"))
		return
	}
	s.hub.serve(w, r, s.session.Message)
}

// nodeOp adapts an engine operation on the {id} path parameter.
func (s *Server) nodeOp(op func(*viewer.Engine, string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := errors.ValidateNodeID(id); err != nil {
			writeError(w, err)
			return
		}
		scene, err := s.session.Apply(func(e *viewer.Engine) error { return op(e, id) })
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, scene)
	}
}

func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateNodeID(id); err != nil {
		writeError(w, err)
		return
	}
	var p viewer.Position
	if err := decodeBody(w, r, &p); err != nil {
		writeError(w, err)
		return
	}
	scene, err := s.session.Apply(func(e *viewer.Engine) error { return e.RepositionNode(id, p) })
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scene)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	scene, _ := s.session.Apply(func(e *viewer.Engine) error {
		e.SetSelectedNode(req.ID)
		return nil
	})
	writeJSON(w, http.StatusOK, scene)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateNodeID(req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.session.ToggleSelection(req.ID))
}

// =============================================================================
// Helpers
// =============================================================================

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidNodeID, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorBody{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
