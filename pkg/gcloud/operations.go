package gcloud

import (
	"context"
	"time"
)

// Operation statuses, assigned by the service. The client only observes
// transitions, it never forces one.
const (
	StatusPending = "PENDING"
	StatusRunning = "RUNNING"
	StatusDone    = "DONE"
)

// Operation is one immutable snapshot of a server-side asynchronous action.
// Refreshing produces a new snapshot; the old one is never mutated.
type Operation struct {
	Resource      `yaml:",inline"`
	Name          string             `json:"name"                    yaml:"name"`
	OperationType string             `json:"operationType,omitempty" yaml:"operationType,omitempty"`
	TargetLink    string             `json:"targetLink,omitempty"    yaml:"targetLink,omitempty"`
	TargetID      string             `json:"targetId,omitempty"      yaml:"targetId,omitempty"`
	Status        string             `json:"status"                  yaml:"status"`
	StatusMessage string             `json:"statusMessage,omitempty" yaml:"statusMessage,omitempty"`
	User          string             `json:"user,omitempty"          yaml:"user,omitempty"`
	Progress      int                `json:"progress,omitempty"      yaml:"progress,omitempty"`
	InsertTime    *time.Time         `json:"insertTime,omitempty"    yaml:"insertTime,omitempty"`
	StartTime     *time.Time         `json:"startTime,omitempty"     yaml:"startTime,omitempty"`
	EndTime       *time.Time         `json:"endTime,omitempty"       yaml:"endTime,omitempty"`
	Errors        []OperationError   `json:"errors,omitempty"        yaml:"errors,omitempty"`
	Warnings      []OperationWarning `json:"warnings,omitempty"      yaml:"warnings,omitempty"`
}

// OperationError is one error recorded while the service processed an
// operation.
type OperationError struct {
	Code     string `json:"code"               yaml:"code"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	Message  string `json:"message,omitempty"  yaml:"message,omitempty"`
}

// OperationWarning is one warning recorded while the service processed an
// operation.
type OperationWarning struct {
	Code     string            `json:"code"               yaml:"code"`
	Message  string            `json:"message,omitempty"  yaml:"message,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Completion is the tagged outcome of a finished operation: either the final
// snapshot, or the errors and warnings the service recorded.
type Completion struct {
	Operation *Operation
	Errors    []OperationError
	Warnings  []OperationWarning
}

// Succeeded reports whether the operation finished without errors.
func (c *Completion) Succeeded() bool {
	return len(c.Errors) == 0
}

// OperationGetter re-fetches an operation snapshot. Implementations return
// (nil, nil) when the operation no longer exists.
type OperationGetter interface {
	GetOperation(ctx context.Context, name string, opts *GetOptions) (*Operation, error)
}

// statusFields keeps status checks cheap: the poller only needs the status
// field, not the full snapshot.
var statusFields = []string{"status"}

// IsOperationDone performs one status-only re-fetch and reports whether the
// operation finished. A missing operation counts as done: the action is
// assumed already finalized and cleaned up.
func IsOperationDone(ctx context.Context, getter OperationGetter, name string) (bool, error) {
	op, err := getter.GetOperation(ctx, name, &GetOptions{Fields: statusFields})
	if err != nil {
		return false, err
	}

	return op == nil || op.Status == StatusDone, nil
}

// RefreshOperation re-fetches a full snapshot of op. It returns (nil, nil)
// when the operation no longer exists; op itself is never mutated.
func RefreshOperation(ctx context.Context, getter OperationGetter, op *Operation) (*Operation, error) {
	return getter.GetOperation(ctx, op.Name, nil)
}

// WaitForOperation blocks until the operation finishes, checking at the
// policy's interval. It returns the final full snapshot, or nil if the
// operation vanished while waiting. With a positive policy timeout the wait
// fails with *WaitTimeoutError once exceeded; cancelling ctx abandons the
// wait at the next check or sleep boundary. Abandoning the wait never
// cancels the server-side operation.
func WaitForOperation(ctx context.Context, getter OperationGetter, name string, policy WaitPolicy) (*Operation, error) {
	start := time.Now()

	for {
		done, err := IsOperationDone(ctx, getter, name)
		if err != nil {
			return nil, err
		}

		if done {
			return getter.GetOperation(ctx, name, nil)
		}

		if policy.Timeout() > 0 && time.Since(start) >= policy.Timeout() {
			return nil, &WaitTimeoutError{Timeout: policy.Timeout()}
		}

		if err := sleepContext(ctx, policy.CheckInterval()); err != nil {
			return nil, err
		}
	}
}

// WhenOperationDone waits for the operation and splits the outcome into the
// success and error branches of a Completion. If the operation no longer
// exists at completion time it returns (nil, nil): neither branch applies.
func WhenOperationDone(ctx context.Context, getter OperationGetter, name string, policy WaitPolicy) (*Completion, error) {
	op, err := WaitForOperation(ctx, getter, name, policy)
	if err != nil {
		return nil, err
	}

	if op == nil {
		return nil, nil
	}

	if len(op.Errors) > 0 {
		return &Completion{Errors: op.Errors, Warnings: op.Warnings}, nil
	}

	return &Completion{Operation: op}, nil
}
