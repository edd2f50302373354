package deploy

import (
	"context"
	"time"

	"github.com/imamik/k8ship/internal/retry"
)

// RenderProbe verifies the chart-rendering capability without touching the
// cluster. internal/render provides the production implementation.
type RenderProbe func() error

// PrereqChecker verifies the external capabilities a run needs before any
// mutation happens: cluster API reachability and chart rendering.
type PrereqChecker struct {
	cluster Cluster
	probe   RenderProbe
}

// NewPrereqChecker creates a checker. The render probe may be nil when the
// caller has no chart path configured.
func NewPrereqChecker(cluster Cluster, probe RenderProbe) *PrereqChecker {
	return &PrereqChecker{cluster: cluster, probe: probe}
}

// Check runs the read-only probes. The API ping gets a short backoff budget
// to ride out transient connection churn; any final failure is a
// PrerequisiteError and fatal to the whole run.
func (c *PrereqChecker) Check(ctx context.Context) error {
	err := retry.Do(ctx, func() error { return c.cluster.Ping(ctx) },
		retry.Attempts(3),
		retry.InitialDelay(500*time.Millisecond),
		retry.MaxDelay(2*time.Second),
	)
	if err != nil {
		return &PrerequisiteError{Capability: "cluster API", Err: err}
	}

	if c.probe != nil {
		if err := c.probe(); err != nil {
			return &PrerequisiteError{Capability: "chart renderer", Err: err}
		}
	}

	return nil
}
