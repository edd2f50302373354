package deploy

import (
	"context"
	"errors"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

// DefaultPollInterval is used when the request does not override it.
const DefaultPollInterval = 5 * time.Second

// ErrCancelled is returned by the waiter when the surrounding context is
// cancelled before the rollout reaches readiness.
var ErrCancelled = errors.New("rollout wait cancelled")

// Waiter polls a workload until it is ready or the timeout elapses. It owns
// its polling state only for the duration of the wait.
type Waiter struct {
	cluster  Cluster
	interval time.Duration
}

// NewWaiter creates a waiter polling at the given interval; a zero interval
// falls back to DefaultPollInterval.
func NewWaiter(cluster Cluster, interval time.Duration) *Waiter {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Waiter{cluster: cluster, interval: interval}
}

// AwaitReady polls the workload's rollout state until ready == desired.
// Read errors during a poll cycle are treated as "not ready yet"; a
// workload that was just created may not be observable immediately.
//
// On timeout it returns a TimeoutError carrying the last observed state;
// cancellation of ctx returns promptly with ErrCancelled. Neither condition
// is retried here, re-invocation is the caller's decision.
func (w *Waiter) AwaitReady(ctx context.Context, namespace, name string, timeout time.Duration) (RolloutState, error) {
	var last RolloutState

	err := wait.PollUntilContextTimeout(ctx, w.interval, timeout, true, func(ctx context.Context) (bool, error) {
		state, err := w.cluster.RolloutState(ctx, namespace, name)
		if err != nil {
			return false, nil
		}
		last = state
		return state.ReadyNow(), nil
	})
	if err == nil {
		return last, nil
	}

	if ctx.Err() != nil {
		return last, ErrCancelled
	}
	return last, &TimeoutError{Workload: name, Timeout: timeout, Last: last}
}
