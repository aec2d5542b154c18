// Package rest provides the HTTP API for the DBOptima dashboard. Each
// page's collection is served and mutated through a small set of routes;
// every successful mutation publishes a transient notification to connected
// WebSocket clients and is recorded in the activity feed. Destructive
// actions and authentication attempts additionally land in the
// tamper-evident audit trail.
package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kingtech/dboptima/internal/activity"
	"github.com/kingtech/dboptima/internal/audit"
	"github.com/kingtech/dboptima/internal/auth"
	"github.com/kingtech/dboptima/internal/records"
	"github.com/kingtech/dboptima/internal/server/websocket"
	"github.com/kingtech/dboptima/internal/store"
	"github.com/kingtech/dboptima/internal/task"
)

// Notifier publishes transient toasts to connected dashboard clients.
// Satisfied by *websocket.Broadcaster; tests substitute a recorder.
type Notifier interface {
	Notify(websocket.Notification)
}

// ActivityLog records user actions and serves the recent-activity feed.
// Satisfied by *activity.Store.
type ActivityLog interface {
	Record(ctx context.Context, actor, action, entity, entityID, message string) error
	Recent(ctx context.Context, n int) ([]activity.Entry, error)
}

// Config carries the dependencies for NewServer. Notifier, ActivityLog,
// Trail, and Logger may be nil; nil disables the respective side channel.
type Config struct {
	Alerts    *store.Alerts
	Databases *store.Databases
	Indexes   *store.Indexes
	Reports   *store.Reports
	Team      *store.Team

	// Overview holds the static dashboard series (performance samples,
	// engine distribution, slow queries) from the seed data.
	Overview *records.SeedData

	Users  *auth.Directory
	Issuer *auth.Issuer

	Notifier Notifier
	Activity ActivityLog
	Trail    *audit.Trail
	Runner   *task.Runner

	// BaseContext bounds fire-and-forget simulated jobs (scan, generate):
	// cancelling it during shutdown makes their completions defined no-ops.
	BaseContext context.Context

	Logger *slog.Logger
}

// Server holds the dependencies needed by the REST handlers.
type Server struct {
	alerts    *store.Alerts
	databases *store.Databases
	indexes   *store.Indexes
	reports   *store.Reports
	team      *store.Team
	overview  *records.SeedData

	users  *auth.Directory
	issuer *auth.Issuer

	notifier Notifier
	activity ActivityLog
	trail    *audit.Trail
	runner   *task.Runner

	baseCtx context.Context
	logger  *slog.Logger
}

// NewServer creates a Server from cfg, filling in inert defaults for
// optional dependencies.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.BaseContext == nil {
		cfg.BaseContext = context.Background()
	}
	if cfg.Runner == nil {
		cfg.Runner = task.NewRunner(0, cfg.Logger)
	}
	return &Server{
		alerts:    cfg.Alerts,
		databases: cfg.Databases,
		indexes:   cfg.Indexes,
		reports:   cfg.Reports,
		team:      cfg.Team,
		overview:  cfg.Overview,
		users:     cfg.Users,
		issuer:    cfg.Issuer,
		notifier:  cfg.Notifier,
		activity:  cfg.Activity,
		trail:     cfg.Trail,
		runner:    cfg.Runner,
		baseCtx:   cfg.BaseContext,
		logger:    cfg.Logger,
	}
}

// notify publishes a toast when a notifier is configured.
func (s *Server) notify(title, description string, variant websocket.Variant) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(websocket.Notification{
		Title:       title,
		Description: description,
		Variant:     variant,
	})
}

// record appends to the activity feed when one is configured. Failures are
// logged, never surfaced: the mutation already succeeded.
func (s *Server) record(r *http.Request, action, entity, entityID, message string) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(r.Context(), actorFromContext(r.Context()), action, entity, entityID, message); err != nil {
		s.logger.Warn("activity record failed",
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
	}
}

// auditEvent appends to the audit trail; a nil trail discards the event.
func (s *Server) auditEvent(r *http.Request, action, target, detail string) {
	evt := audit.Event{
		Actor:  actorFromContext(r.Context()),
		Action: action,
		Target: target,
		Detail: detail,
	}
	if err := s.trail.Append(evt); err != nil {
		s.logger.Warn("audit append failed",
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
	}
}

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an HTTP error response with a JSON body containing an
// "error" field.
func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// decodeBody decodes the request body into v, rejecting unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
