package api

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/erazemk/bso/internal/model"
	"github.com/erazemk/bso/internal/report"
)

// reportBuildTimeout bounds a shared report build.
const reportBuildTimeout = 30 * time.Second

// ReportBuilder builds the report of one month.
type ReportBuilder interface {
	GetReport(ctx context.Context, year, month int) (model.Report, error)
}

// ReportsHandler serves monthly reports. Concurrent requests for the same
// period share one computation.
type ReportsHandler struct {
	Engine ReportBuilder
	group  singleflight.Group
}

// Get handles GET /api/reports/{year}/{month}.
func (h *ReportsHandler) Get(w http.ResponseWriter, r *http.Request) {
	rep, _, ok := h.load(w, r)
	if !ok {
		return
	}
	jsonResponse(w, http.StatusOK, rep)
}

// XLSX handles GET /api/reports/{year}/{month}/xlsx.
func (h *ReportsHandler) XLSX(w http.ResponseWriter, r *http.Request) {
	rep, title, ok := h.load(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, title, rep); err != nil {
		serviceError(w, r, err, "failed to export report")
		return
	}

	w.Header().Set("Content-Type", report.XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=report-%s.xlsx", title))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// load parses the period and builds its report. The returned title names
// the period as YYYY-MM.
func (h *ReportsHandler) load(w http.ResponseWriter, r *http.Request) (model.Report, string, bool) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid year")
		return model.Report{}, "", false
	}
	month, err := strconv.Atoi(r.PathValue("month"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid month")
		return model.Report{}, "", false
	}

	ctx := r.Context()
	key := fmt.Sprintf("%04d-%02d", year, month)
	ch := h.group.DoChan(key, func() (any, error) {
		// The build is shared by every caller of this period and must not
		// end when the first caller goes away.
		buildCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reportBuildTimeout)
		defer cancel()
		return h.Engine.GetReport(buildCtx, year, month)
	})

	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "report request cancelled", "period", key, "request_id", RequestIDFromContext(ctx))
		return model.Report{}, "", false
	case res := <-ch:
		if res.Err != nil {
			serviceError(w, r, res.Err, "failed to build report")
			return model.Report{}, "", false
		}
		return res.Val.(model.Report), key, true
	}
}
