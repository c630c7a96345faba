package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/bso/internal/report"
	"github.com/erazemk/bso/internal/services"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, blanks *services.BlankService, reports *report.Engine) http.Handler {
	mux := http.NewServeMux()

	blanksHandler := &BlanksHandler{Service: blanks}
	reportsHandler := &ReportsHandler{Engine: reports}
	healthHandler := &HealthHandler{DB: db}

	mux.HandleFunc("GET /healthz", healthHandler.Check)

	// Blanks.
	mux.HandleFunc("GET /api/blanks", blanksHandler.List)
	mux.HandleFunc("POST /api/blanks", blanksHandler.Create)
	mux.HandleFunc("GET /api/blanks/{id}", blanksHandler.Get)
	mux.HandleFunc("PATCH /api/blanks/{id}", blanksHandler.Update)
	mux.HandleFunc("DELETE /api/blanks/{id}", blanksHandler.Delete)

	// Reports.
	mux.HandleFunc("GET /api/reports/{year}/{month}", reportsHandler.Get)
	mux.HandleFunc("GET /api/reports/{year}/{month}/xlsx", reportsHandler.XLSX)

	return mux
}
