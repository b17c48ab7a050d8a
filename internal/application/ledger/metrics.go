package ledger

import "time"

// Operation names reported to Metrics
const (
	OperationCreate         = "create"
	OperationReadTree       = "read_tree"
	OperationUpdate         = "update"
	OperationDelete         = "delete"
	OperationReadByParent   = "read_by_parent_name"
	OperationReadBalance    = "read_balance"
	OperationBootstrapRoots = "bootstrap_roots"
)

// Metrics receives operational measurements from the tree service
type Metrics interface {
	// ObserveOperation records the outcome of one service call; err is nil on success.
	ObserveOperation(operation string, err error)
	// ObserveRollup records the time spent aggregating a forest of the given size.
	ObserveRollup(duration time.Duration, accounts int)
	// IncCodeRetry counts a transaction retried after a unique constraint violation.
	IncCodeRetry()
}

type noopMetrics struct{}

func (noopMetrics) ObserveOperation(string, error) {}

func (noopMetrics) ObserveRollup(time.Duration, int) {}

func (noopMetrics) IncCodeRetry() {}
