package handler

import (
	"fmt"
	"net/http"

	"github.com/tickbox/tickbox/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		writeError(w, http.StatusServiceUnavailable, "metrics not enabled")
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeCounter(w, "tickbox_signups_total", "Accounts created.", []sample{
		{`status="created"`, snap.Signups},
		{`status="invalid"`, snap.SignupsInvalid},
		{`status="duplicate"`, snap.SignupsDuplicate},
	})
	writeCounter(w, "tickbox_signins_total", "Signin attempts by outcome.", []sample{
		{`status="success"`, snap.SigninsSucceeded},
		{`status="failure"`, snap.SigninsFailed},
	})
	writeCounter(w, "tickbox_tokens_rejected_total", "Bearer tokens rejected.", []sample{
		{`reason="missing"`, snap.TokensMissing},
		{`reason="invalid"`, snap.TokensInvalid},
	})
	writeCounter(w, "tickbox_todos_created_total", "Todos created.", []sample{{"", snap.TodosCreated}})
	writeCounter(w, "tickbox_todos_updated_total", "Todos updated.", []sample{{"", snap.TodosUpdated}})
	writeCounter(w, "tickbox_todos_deleted_total", "Todos deleted.", []sample{{"", snap.TodosDeleted}})
}

type sample struct {
	labels string
	value  uint64
}

func writeCounter(w http.ResponseWriter, name, help string, samples []sample) {
	_, _ = fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s counter\n", name, help, name)
	for _, s := range samples {
		if s.labels == "" {
			_, _ = fmt.Fprintf(w, "%s %d\n", name, s.value)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s{%s} %d\n", name, s.labels, s.value)
	}
}
