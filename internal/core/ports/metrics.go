package ports

// AccountMetrics receives the counters emitted by the account services.
// The Prometheus adapter lives in internal/infrastructure/metrics.
type AccountMetrics interface {
	// AccountOperation counts one lifecycle call; result is "ok", "forbidden",
	// "not_found", "conflict" or "error".
	AccountOperation(operation, result string)
	ReferenceScanFailed(collection string)
	// ReferencesRemediated counts n dependent records unset or deleted.
	ReferencesRemediated(collection, action string, n int64)
}
