package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter returns the configured chi.Router for the DBOptima dashboard
// API.
//
// Route layout:
//
//	GET  /healthz                      – liveness probe (no authentication)
//	POST /api/v1/auth/login            – credential exchange for a token
//	GET  /api/v1/health                – service status payload
//	GET  /ws                           – WebSocket notification stream
//
// Everything else under /api/v1 requires a Bearer token:
//
//	GET    /api/v1/dashboard/overview
//	GET    /api/v1/alerts              ?q= search
//	GET    /api/v1/alerts/stats
//	POST   /api/v1/alerts/read-all
//	POST   /api/v1/alerts/{id}/read
//	POST   /api/v1/alerts/{id}/resolve
//	DELETE /api/v1/alerts/{id}
//	GET    /api/v1/databases           ?q= search
//	GET    /api/v1/databases/stats
//	DELETE /api/v1/databases/{id}
//	GET    /api/v1/indexes             ?q= search
//	GET    /api/v1/indexes/stats
//	POST   /api/v1/indexes/scan
//	POST   /api/v1/indexes/{id}/apply
//	POST   /api/v1/indexes/{id}/reject
//	GET    /api/v1/reports             ?q= search
//	GET    /api/v1/reports/stats
//	POST   /api/v1/reports/generate
//	POST   /api/v1/reports/{id}/download
//	DELETE /api/v1/reports/{id}
//	GET    /api/v1/team                ?q= search
//	GET    /api/v1/team/stats
//	POST   /api/v1/team/invite
//	POST   /api/v1/team/{id}/role
//	DELETE /api/v1/team/{id}
//	POST   /api/v1/optimizer/analyze
//	POST   /api/v1/optimizer/recommend-indexes
//	POST   /api/v1/optimizer/estimate-performance
//	GET    /api/v1/activity            ?limit=
//
// ws may be nil when the notification stream is disabled (tests).
func NewRouter(srv *Server, ws http.Handler) http.Handler {
	r := chi.NewRouter()

	// Built-in chi middleware for observability and hygiene.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Public surface.
	r.Get("/healthz", srv.handleHealthz)
	r.Post("/api/v1/auth/login", srv.handleLogin)
	r.Get("/api/v1/health", srv.handleHealth)
	if ws != nil {
		r.Method(http.MethodGet, "/ws", ws)
	}

	// Authenticated API routes.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(JWTMiddleware(srv.issuer, srv.logger))

		r.Get("/dashboard/overview", srv.handleDashboardOverview)

		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", srv.handleListAlerts)
			r.Get("/stats", srv.handleAlertStats)
			r.Post("/read-all", srv.handleMarkAllAlertsRead)
			r.Post("/{id}/read", srv.handleMarkAlertRead)
			r.Post("/{id}/resolve", srv.handleResolveAlert)
			r.Delete("/{id}", srv.handleDeleteAlert)
		})

		r.Route("/databases", func(r chi.Router) {
			r.Get("/", srv.handleListDatabases)
			r.Get("/stats", srv.handleDatabaseStats)
			r.Delete("/{id}", srv.handleDeleteDatabase)
		})

		r.Route("/indexes", func(r chi.Router) {
			r.Get("/", srv.handleListIndexes)
			r.Get("/stats", srv.handleIndexStats)
			r.Post("/scan", srv.handleScanIndexes)
			r.Post("/{id}/apply", srv.handleApplyIndex)
			r.Post("/{id}/reject", srv.handleRejectIndex)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", srv.handleListReports)
			r.Get("/stats", srv.handleReportStats)
			r.Post("/generate", srv.handleGenerateReport)
			r.Post("/{id}/download", srv.handleDownloadReport)
			r.Delete("/{id}", srv.handleDeleteReport)
		})

		r.Route("/team", func(r chi.Router) {
			r.Get("/", srv.handleListTeam)
			r.Get("/stats", srv.handleTeamStats)
			r.Post("/invite", srv.handleInviteMember)
			r.Post("/{id}/role", srv.handleChangeRole)
			r.Delete("/{id}", srv.handleRemoveMember)
		})

		r.Route("/optimizer", func(r chi.Router) {
			r.Post("/analyze", srv.handleAnalyzeQuery)
			r.Post("/recommend-indexes", srv.handleRecommendIndexes)
			r.Post("/estimate-performance", srv.handleEstimatePerformance)
		})

		r.Get("/activity", srv.handleRecentActivity)
	})

	return r
}
