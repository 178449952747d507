package shared

import "time"

// MaxFetch caps every list query.
const MaxFetch = 1000

// Task types
const (
	TypeScanOverdueHolds       = "lending:scan_overdue"
	TypeReconcileBorrowedCount = "lending:reconcile_borrowed_count"
)

// Queues
const (
	QueueLending = "lending"
	QueueDefault = "default"
)

// ScanOverduePayload is the payload of TypeScanOverdueHolds.
type ScanOverduePayload struct {
	// AsOf overrides "now"; zero means the time the task runs.
	AsOf  time.Time `json:"asOf"`
	Limit int       `json:"limit"`
}

// ReconcilePayload is the payload of TypeReconcileBorrowedCount.
type ReconcilePayload struct {
	// DryRun reports drift without repairing it.
	DryRun bool   `json:"dryRun"`
	Source string `json:"source"`
}
