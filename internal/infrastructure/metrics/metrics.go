// Package metrics defines and registers all custom Prometheus metrics for the
// user administration service. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/campusops/user-service/internal/core/ports"
)

const namespace = "useradmin"

// ── Lifecycle metrics ─────────────────────────────────────────────────────────

// AccountOperationsTotal counts account lifecycle operations.
// Labels:
//   - operation: "create", "edit", "delete" or "force_delete"
//   - result: "ok", "forbidden", "not_found", "conflict" or "error"
var AccountOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_operations_total",
		Help:      "Total number of account lifecycle operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ── Reference metrics ─────────────────────────────────────────────────────────

// ReferenceScanErrorsTotal counts dependent lookups that failed during a scan.
// Label:
//   - collection: the dependent collection that could not be read
var ReferenceScanErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reference_scan_errors_total",
		Help:      "Total number of dependent-collection lookups that failed during a reference scan.",
	},
	[]string{"collection"},
)

// ReferencesRemediatedTotal counts dependent records cleared by force deletes.
// Labels:
//   - collection: the dependent collection
//   - action: "unset" (pointer cleared) or "delete" (record removed)
var ReferencesRemediatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "references_remediated_total",
		Help:      "Total number of dependent records unlinked or removed before a force delete.",
	},
	[]string{"collection", "action"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the current number of audit events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsTotal counts audit events by outcome.
// Label:
//   - result: "recorded", "failed" or "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events handled by the dispatcher, by result.",
	},
	[]string{"result"},
)

// ── Core adapter ──────────────────────────────────────────────────────────────

// AccountRecorder feeds the account services' counters into the vectors above.
type AccountRecorder struct{}

var _ ports.AccountMetrics = AccountRecorder{}

func NewAccountRecorder() AccountRecorder { return AccountRecorder{} }

func (AccountRecorder) AccountOperation(operation, result string) {
	AccountOperationsTotal.WithLabelValues(operation, result).Inc()
}

func (AccountRecorder) ReferenceScanFailed(collection string) {
	ReferenceScanErrorsTotal.WithLabelValues(collection).Inc()
}

func (AccountRecorder) ReferencesRemediated(collection, action string, n int64) {
	ReferencesRemediatedTotal.WithLabelValues(collection, action).Add(float64(n))
}
