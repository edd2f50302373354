package deploy

import "time"

// Request describes one deployment run. Created once per invocation and
// immutable for its duration.
type Request struct {
	Release      string
	Namespace    string
	Image        string
	Descriptors  []Descriptor
	Timeout      time.Duration
	PollInterval time.Duration
}

// Op records what the cluster did, or would have done, for a resource.
type Op string

// Operations reported per descriptor.
const (
	OpCreated    Op = "created"
	OpConfigured Op = "configured"
	OpUnchanged  Op = "unchanged"
	OpDeleted    Op = "deleted"
	OpNotFound   Op = "not found"
	OpPresent    Op = "present"
	OpFailed     Op = "failed"
	OpSkipped    Op = "skipped"
)

// Outcome is the per-descriptor result of an apply or delete.
type Outcome struct {
	Kind   Kind
	Name   string
	Op     Op
	Detail string
	Err    error
}

// RolloutState is a point-in-time snapshot of workload readiness, refreshed
// each poll cycle and discarded once the wait returns.
type RolloutState struct {
	Desired        int32
	Ready          int32
	LastTransition time.Time
}

// ReadyNow reports whether the rollout has reached the desired replica count.
func (s RolloutState) ReadyNow() bool {
	return s.Desired > 0 && s.Ready == s.Desired
}

// Status is the overall outcome of a run.
type Status string

// Terminal run states.
const (
	StatusSucceeded Status = "Succeeded"
	StatusFailed    Status = "Failed"
	StatusTimedOut  Status = "TimedOut"
	StatusCancelled Status = "Cancelled"
)

// Result is assembled over a single run and owned by the caller afterwards;
// the core never persists it.
type Result struct {
	Status   Status
	Outcomes []Outcome
	Rollout  *RolloutState
	Elapsed  time.Duration
}
