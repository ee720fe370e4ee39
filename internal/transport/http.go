package transport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/domain/content"
	"github.com/rpggio/folio/internal/domain/editor"
	"github.com/rpggio/folio/internal/mcp"
)

// ContentService exposes the live document.
type ContentService interface {
	Current() content.Document
	Navigation() []content.NavItem
}

// EditorService defines the session operations served over HTTP.
type EditorService interface {
	SessionResolver
	Open(ctx context.Context, req editor.OpenRequest) (*editor.Session, error)
	Commit(ctx context.Context, id string) error
	Discard(ctx context.Context, id string) error
	Reset(ctx context.Context, id string) error
	Export(id string) ([]byte, error)
}

// ActivityService lists audit entries.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Deps are the services and handlers the router serves.
type Deps struct {
	Content  ContentService
	Editor   EditorService
	Activity ActivityService
	// MCP is mounted at /mcp when non-nil.
	MCP    http.Handler
	Logger *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	content  ContentService
	editor   EditorService
	activity ActivityService
	logger   *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(deps Deps) *chi.Mux {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))

	srv := &Server{
		content:  deps.Content,
		editor:   deps.Editor,
		activity: deps.Activity,
		logger:   logger,
	}

	r.Get("/health", srv.handleHealth)
	if deps.MCP != nil {
		r.Handle("/mcp", deps.MCP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/content", srv.handleContent)
		r.Get("/navigation", srv.handleNavigation)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", srv.handleLogin)

			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware(deps.Editor))

				r.Get("/session", srv.handleGetSession)
				r.Delete("/session", srv.handleDiscard)
				r.Post("/session/commit", srv.handleCommit)
				r.Get("/session/export", srv.handleExport)
				r.Put("/session/contact/{field}", srv.handleSetContact)
				r.Post("/session/{kind}", srv.handleAdd)
				r.Put("/session/{kind}/{index}/{field}", srv.handleSetEntry)
				r.Delete("/session/{kind}/{index}", srv.handleRemove)
				r.Post("/session/{kind}/{index}/move-up", srv.handleMoveUp)
				r.Post("/session/{kind}/{index}/move-down", srv.handleMoveDown)
				r.Post("/reset", srv.handleReset)
				r.Get("/activity", srv.handleActivity)
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleContent(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.content.Current())
}

func (s *Server) handleNavigation(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.content.Navigation())
}

// LoginRequest is the body of POST /api/admin/login.
type LoginRequest struct {
	PIN      string `json:"pin"`
	Takeover bool   `json:"takeover"`
}

// SessionResponse describes an editing session.
type SessionResponse struct {
	SessionID    string           `json:"session_id"`
	Status       editor.Status    `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	LastActivity time.Time        `json:"last_activity"`
	Document     content.Document `json:"document"`
}

func sessionResponse(sess *editor.Session) SessionResponse {
	info := sess.Info()
	return SessionResponse{
		SessionID:    info.SessionID,
		Status:       info.Status,
		CreatedAt:    info.CreatedAt,
		LastActivity: info.LastActivity,
		Document:     info.Document,
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, mcp.CodeInvalidInput, err.Error(), "Send {\"pin\": \"....\"}")
		return
	}
	sess, err := s.editor.Open(r.Context(), editor.OpenRequest{PIN: req.PIN, Takeover: req.Takeover})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, sessionResponse(sess))
}

func (s *Server) handleDiscard(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	if err := s.editor.Discard(r.Context(), sess.ID()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	if err := s.editor.Commit(r.Context(), sess.ID()); err != nil {
		writeErrorWithFallback(w, err, mcp.CodeCommitFailed)
		return
	}
	writeJSON(w, http.StatusOK, s.content.Current())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	data, err := s.editor.Export(sess.ID())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="defaults.yaml"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// FieldRequest is the body of field updates. Values applies to list fields
// and takes precedence over Value.
type FieldRequest struct {
	Value  string   `json:"value"`
	Values []string `json:"values"`
}

func (s *Server) handleSetContact(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	var req FieldRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, mcp.CodeInvalidInput, err.Error(), "")
		return
	}
	if err := sess.SetContactField(chi.URLParam(r, "field"), req.Value); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(sess))
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	kind, err := content.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, err)
		return
	}
	entry, index, err := sess.Add(kind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"index": index, "entry": entry})
}

func (s *Server) handleSetEntry(w http.ResponseWriter, r *http.Request) {
	sess, kind, index, ok := s.entryTarget(w, r)
	if !ok {
		return
	}
	var req FieldRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, mcp.CodeInvalidInput, err.Error(), "")
		return
	}

	field := chi.URLParam(r, "field")
	var err error
	if req.Values != nil && editor.IsListField(field) {
		err = sess.SetEntryList(kind, index, field, req.Values)
	} else {
		err = sess.SetEntryField(kind, index, field, req.Value)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(sess))
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	sess, kind, index, ok := s.entryTarget(w, r)
	if !ok {
		return
	}
	if err := sess.Remove(kind, index); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(sess))
}

func (s *Server) handleMoveUp(w http.ResponseWriter, r *http.Request) {
	sess, kind, index, ok := s.entryTarget(w, r)
	if !ok {
		return
	}
	if err := sess.MoveUp(kind, index); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(sess))
}

func (s *Server) handleMoveDown(w http.ResponseWriter, r *http.Request) {
	sess, kind, index, ok := s.entryTarget(w, r)
	if !ok {
		return
	}
	if err := sess.MoveDown(kind, index); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(sess))
}

// ResetRequest is the body of POST /api/admin/reset.
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	var req ResetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, mcp.CodeInvalidInput, err.Error(), "")
		return
	}
	if !req.Confirm {
		writeError(w, mcp.ErrConfirmationRequired)
		return
	}
	if err := s.editor.Reset(r.Context(), sess.ID()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.content.Current())
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	if s.activity == nil {
		writeJSON(w, http.StatusOK, []activity.ActivityEntry{})
		return
	}
	opts := activity.ListActivityOptions{}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeAPIError(w, http.StatusBadRequest, mcp.CodeInvalidInput, "limit must be a non-negative integer", "")
			return
		}
		opts.Limit = limit
	}
	entries, err := s.activity.GetRecentActivity(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// entryTarget resolves the session, kind and index of an entry route.
func (s *Server) entryTarget(w http.ResponseWriter, r *http.Request) (*editor.Session, content.Kind, int, bool) {
	sess, _ := SessionFromContext(r.Context())
	kind, err := content.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, err)
		return nil, "", 0, false
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, mcp.CodeInvalidInput, "index must be an integer", "")
		return nil, "", 0, false
	}
	return sess, kind, index, true
}
