package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kingtech/dboptima/internal/records"
	"github.com/kingtech/dboptima/internal/server/websocket"
)

// handleListReports responds to GET /api/v1/reports. The optional q query
// parameter filters by report name or database label.
func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.reports.List(r.URL.Query().Get("q")))
}

// handleReportStats responds to GET /api/v1/reports/stats.
func (s *Server) handleReportStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.reports.Stats())
}

// handleDownloadReport responds to POST /api/v1/reports/{id}/download.
// Downloads are notification-only: no artifact is produced, matching the
// decorative behavior of the page.
func (s *Server) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	report, ok := s.reports.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	s.notify("Download Started", "Downloading "+report.Name+"...", websocket.VariantSuccess)
	s.record(r, "report_downloaded", "report", id, report.Name+" downloaded")
	writeJSON(w, http.StatusOK, report)
}

// handleDeleteReport responds to DELETE /api/v1/reports/{id}.
func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.reports.Delete(id) {
		s.notify("Report Deleted", "The report has been removed", websocket.VariantDefault)
		s.record(r, "report_deleted", "report", id, "Report removed")
		s.auditEvent(r, "report_deleted", id, "")
	}
	writeJSON(w, http.StatusOK, s.reports.Stats())
}

// generateRequest is the POST /api/v1/reports/generate body.
type generateRequest struct {
	Name     string               `json:"name"`
	Type     records.ReportType   `json:"type"`
	Format   records.ReportFormat `json:"format"`
	Database string               `json:"database"`
}

// sizeForFormat picks the display size a finished simulated report gets.
func sizeForFormat(f records.ReportFormat) string {
	switch f {
	case records.FormatCSV:
		return "412 KB"
	case records.FormatJSON:
		return "96 KB"
	default:
		return "1.8 MB"
	}
}

// handleGenerateReport responds to POST /api/v1/reports/generate. The new
// report is appended immediately in the generating status and flips to
// ready when the simulated generation job completes.
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON with 'name', 'type', 'format', and 'database'")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "'name' is required")
		return
	}
	switch req.Type {
	case records.ReportPerformance, records.ReportOptimization, records.ReportAudit, records.ReportCompliance:
	default:
		writeError(w, http.StatusBadRequest, "'type' must be one of performance, optimization, audit, compliance")
		return
	}
	switch req.Format {
	case records.FormatPDF, records.FormatCSV, records.FormatJSON:
	default:
		writeError(w, http.StatusBadRequest, "'format' must be one of pdf, csv, json")
		return
	}

	report := records.Report{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Type:      req.Type,
		Format:    req.Format,
		Status:    records.ReportGenerating,
		CreatedAt: "In progress",
		Size:      "--",
		Database:  req.Database,
	}
	s.reports.Add(report)
	s.notify("Report Generation Started", "Your report will be ready shortly", websocket.VariantSuccess)
	s.record(r, "report_generated", "report", report.ID, report.Name+" generation started")

	size := sizeForFormat(req.Format)
	s.runner.Run(s.baseCtx, "report-generate", func() {
		if s.reports.Complete(report.ID, size) {
			s.notify("Report Ready", report.Name+" is ready to download", websocket.VariantSuccess)
		}
	})

	writeJSON(w, http.StatusAccepted, report)
}
