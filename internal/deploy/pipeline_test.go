package deploy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() Request {
	return Request{
		Release:      "app",
		Namespace:    "prod",
		Descriptors:  testSet(),
		Timeout:      time.Second,
		PollInterval: 5 * time.Millisecond,
	}
}

func TestPipelineRun(t *testing.T) {
	t.Run("succeeds once the rollout is ready", func(t *testing.T) {
		cluster := newFakeCluster()
		cluster.rollout = func(call int) (RolloutState, error) {
			if call < 3 {
				return RolloutState{Desired: 2, Ready: 1}, nil
			}
			return RolloutState{Desired: 2, Ready: 2}, nil
		}

		result, err := NewPipeline(cluster, nil).Run(context.Background(), testRequest())

		require.NoError(t, err)
		assert.Equal(t, StatusSucceeded, result.Status)
		assert.Len(t, result.Outcomes, 4)
		require.NotNil(t, result.Rollout)
		assert.True(t, result.Rollout.ReadyNow())
		assert.Equal(t, []string{"prod"}, cluster.ensured)
		assert.Greater(t, result.Elapsed, time.Duration(0))
	})

	t.Run("prerequisite failure mutates nothing", func(t *testing.T) {
		cluster := newFakeCluster()
		cluster.pingErr = errors.New("connection refused")

		result, err := NewPipeline(cluster, nil).Run(context.Background(), testRequest())

		var perr *PrerequisiteError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, StatusFailed, result.Status)
		assert.Empty(t, result.Outcomes)
		assert.Empty(t, cluster.ensured)
		assert.Empty(t, cluster.applied)
	})

	t.Run("render probe failure mutates nothing", func(t *testing.T) {
		cluster := newFakeCluster()
		probe := func() error { return errors.New("bad template") }

		result, err := NewPipeline(cluster, probe).Run(context.Background(), testRequest())

		var perr *PrerequisiteError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "chart renderer", perr.Capability)
		assert.Equal(t, StatusFailed, result.Status)
		assert.Empty(t, cluster.applied)
	})

	t.Run("namespace failure halts before any descriptor", func(t *testing.T) {
		cluster := newFakeCluster()
		cluster.ensureErr = errors.New("forbidden")

		result, err := NewPipeline(cluster, nil).Run(context.Background(), testRequest())

		var aerr *ApplyError
		require.ErrorAs(t, err, &aerr)
		assert.Equal(t, KindNamespace, aerr.Descriptor.Kind)
		assert.Equal(t, StatusFailed, result.Status)
		assert.Empty(t, cluster.applied)
	})

	t.Run("apply failure keeps the recorded outcomes", func(t *testing.T) {
		cluster := newFakeCluster()
		cluster.applyErrs["app-svc"] = errors.New("invalid port")

		result, err := NewPipeline(cluster, nil).Run(context.Background(), testRequest())

		var aerr *ApplyError
		require.ErrorAs(t, err, &aerr)
		assert.Equal(t, StatusFailed, result.Status)
		require.Len(t, result.Outcomes, 4)
		assert.Equal(t, OpFailed, result.Outcomes[3].Op)
		// The wait never started.
		assert.Zero(t, cluster.rolloutCalls)
	})

	t.Run("rollout that never becomes ready times out", func(t *testing.T) {
		cluster := newFakeCluster()
		cluster.rollout = func(int) (RolloutState, error) {
			return RolloutState{Desired: 2, Ready: 1}, nil
		}
		req := testRequest()
		req.Timeout = 50 * time.Millisecond

		result, err := NewPipeline(cluster, nil).Run(context.Background(), req)

		var terr *TimeoutError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, StatusTimedOut, result.Status)
		// Everything was applied before the wait started.
		assert.Len(t, result.Outcomes, 4)
		require.NotNil(t, result.Rollout)
		assert.Equal(t, int32(1), result.Rollout.Ready)
	})

	t.Run("cancellation is reported as cancelled, not timed out", func(t *testing.T) {
		cluster := newFakeCluster()
		cluster.rollout = func(int) (RolloutState, error) {
			return RolloutState{Desired: 2, Ready: 0}, nil
		}
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()
		req := testRequest()
		req.Timeout = 10 * time.Second

		result, err := NewPipeline(cluster, nil).Run(ctx, req)

		assert.ErrorIs(t, err, ErrCancelled)
		assert.Equal(t, StatusCancelled, result.Status)
	})

	t.Run("set without a workload skips the wait", func(t *testing.T) {
		cluster := newFakeCluster()
		req := testRequest()
		req.Descriptors = []Descriptor{testDescriptor(KindNamespace, "app-ns")}

		result, err := NewPipeline(cluster, nil).Run(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, StatusSucceeded, result.Status)
		assert.Nil(t, result.Rollout)
		assert.Zero(t, cluster.rolloutCalls)
	})

	t.Run("invalid descriptors fail before any mutation", func(t *testing.T) {
		cluster := newFakeCluster()
		req := testRequest()
		req.Descriptors = []Descriptor{testDescriptor(KindWorkload, "app", KindIdentity)}

		result, err := NewPipeline(cluster, nil).Run(context.Background(), req)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, StatusFailed, result.Status)
		assert.Empty(t, cluster.ensured)
		assert.Empty(t, cluster.applied)
	})
}

func TestPipelineUninstall(t *testing.T) {
	t.Run("validates before deleting", func(t *testing.T) {
		cluster := newFakeCluster()
		req := testRequest()
		req.Descriptors = []Descriptor{testDescriptor(KindWorkload, "app", KindIdentity)}

		outcomes, err := NewPipeline(cluster, nil).Uninstall(context.Background(), req, false)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Empty(t, outcomes)
		assert.Empty(t, cluster.deleted)
	})

	t.Run("removes the release in reverse order", func(t *testing.T) {
		cluster := newFakeCluster()

		outcomes, err := NewPipeline(cluster, nil).Uninstall(context.Background(), testRequest(), false)

		require.NoError(t, err)
		assert.Equal(t, []string{"app-svc", "app", "app-sa"}, cluster.deleted)
		assert.Len(t, outcomes, 4)
	})
}
