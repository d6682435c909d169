// Package metrics defines and registers the domain Prometheus metrics of the
// ERP API. HTTP request metrics come from echoprometheus; everything here
// describes tickets and evidence.
//
// Metrics are registered with the default registry at package init through
// promauto.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "erp"

// ── Ticket metrics ────────────────────────────────────────────────────────────

// TicketsCreatedTotal counts citizen reports filed through the public surface.
// Label:
//   - incident_type: e.g. "BASURA", "FUGA"
var TicketsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_created_total",
		Help:      "Total number of tickets created, by incident type.",
	},
	[]string{"incident_type"},
)

// TicketsTransferredTotal counts cross-organization transfers.
var TicketsTransferredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_transferred_total",
		Help:      "Total number of tickets transferred to another organization.",
	},
)

// TicketStatusChangesTotal counts status changes applied by assignment.
// Label:
//   - status: the new ticket status
var TicketStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticket_status_changes_total",
		Help:      "Total number of ticket status changes, by resulting status.",
	},
	[]string{"status"},
)

// ── Evidence metrics ──────────────────────────────────────────────────────────

// EvidenceUploadDuration measures blob uploads.
// Label:
//   - result: "ok", "rejected" or "error"
var EvidenceUploadDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "evidence_upload_duration_seconds",
		Help:      "Duration of evidence uploads to the blob store.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// Recorder adapts the package metrics to service.TicketMetrics.
type Recorder struct{}

func (Recorder) TicketCreated(incident string) {
	TicketsCreatedTotal.WithLabelValues(incident).Inc()
}

func (Recorder) TicketTransferred() {
	TicketsTransferredTotal.Inc()
}

func (Recorder) TicketStatusChanged(status string) {
	TicketStatusChangesTotal.WithLabelValues(status).Inc()
}

// ObserveUpload records one upload attempt.
func (Recorder) ObserveUpload(result string, elapsed time.Duration) {
	EvidenceUploadDuration.WithLabelValues(result).Observe(elapsed.Seconds())
}
