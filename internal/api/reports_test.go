package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/erazemk/bso/internal/model"
)

// gatedBuilder blocks every build until release is closed.
type gatedBuilder struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (b *gatedBuilder) GetReport(ctx context.Context, year, month int) (model.Report, error) {
	if b.calls.Add(1) == 1 {
		close(b.started)
	}
	<-b.release
	if err := ctx.Err(); err != nil {
		return model.Report{}, err
	}
	return model.Report{}, nil
}

func TestSharedReportBuildSurvivesCancelledCaller(t *testing.T) {
	builder := &gatedBuilder{started: make(chan struct{}), release: make(chan struct{})}
	released := false
	release := func() {
		if !released {
			released = true
			close(builder.release)
		}
	}
	t.Cleanup(release)

	h := &ReportsHandler{Engine: builder}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/reports/{year}/{month}", h.Get)

	serve := func(ctx context.Context, rec *httptest.ResponseRecorder) <-chan struct{} {
		done := make(chan struct{})
		go func() {
			defer close(done)
			req := httptest.NewRequest(http.MethodGet, "/api/reports/2024/10", nil).WithContext(ctx)
			mux.ServeHTTP(rec, req)
		}()
		return done
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	defer cancelFirst()
	firstDone := serve(firstCtx, httptest.NewRecorder())
	<-builder.started

	second := httptest.NewRecorder()
	secondDone := serve(context.Background(), second)
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	select {
	case <-firstDone:
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled request still waiting for the report")
	}

	release()
	select {
	case <-secondDone:
	case <-time.After(2 * time.Second):
		t.Fatal("second request did not complete")
	}

	if second.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d: %s", second.Code, second.Body.String())
	}
	if n := builder.calls.Load(); n != 1 {
		t.Errorf("expected one shared build, got %d", n)
	}
}
