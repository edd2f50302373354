package deploy

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError reports a malformed descriptor set (unknown kind, missing
// or cyclic dependency). Raised before any mutation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// PrerequisiteError reports a missing external capability (cluster API or
// chart renderer). Fatal to the whole run, raised before any mutation.
type PrerequisiteError struct {
	Capability string
	Err        error
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("prerequisite missing: %s: %v", e.Capability, e.Err)
}

func (e *PrerequisiteError) Unwrap() error { return e.Err }

// ApplyError reports a single descriptor whose mutation was rejected by the
// cluster. The sequencer halts on the first one; already applied resources
// stay in place.
type ApplyError struct {
	Descriptor Descriptor
	Err        error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("apply failed for %s: %v", e.Descriptor, e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }

// TimeoutError reports a rollout that did not reach readiness within the
// caller-specified timeout. Last carries the final observed state so
// operators can diagnose without re-querying the cluster.
type TimeoutError struct {
	Workload string
	Timeout  time.Duration
	Last     RolloutState
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("rollout of %s did not become ready within %s (%d/%d replicas ready)",
		e.Workload, e.Timeout, e.Last.Ready, e.Last.Desired)
}

// RollbackError aggregates per-resource deletion failures during uninstall.
// The uninstaller keeps going after each failure, so this can carry several.
type RollbackError struct {
	Failures []Outcome
}

func (e *RollbackError) Error() string {
	refs := make([]string, 0, len(e.Failures))
	for _, o := range e.Failures {
		refs = append(refs, fmt.Sprintf("%s/%s", o.Kind, o.Name))
	}
	return fmt.Sprintf("rollback failed for %d resource(s): %s", len(e.Failures), strings.Join(refs, ", "))
}
