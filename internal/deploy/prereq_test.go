package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrereqCheckerCheck(t *testing.T) {
	t.Run("passes when everything is reachable", func(t *testing.T) {
		checker := NewPrereqChecker(newFakeCluster(), func() error { return nil })
		assert.NoError(t, checker.Check(context.Background()))
	})

	t.Run("unreachable API is a prerequisite failure after retries", func(t *testing.T) {
		cluster := newFakeCluster()
		cluster.pingErr = errors.New("connection refused")

		checker := NewPrereqChecker(cluster, nil)
		err := checker.Check(context.Background())

		var perr *PrerequisiteError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "cluster API", perr.Capability)
		assert.Equal(t, 3, cluster.pingCalls)
	})

	t.Run("broken renderer is a prerequisite failure", func(t *testing.T) {
		probeErr := errors.New("template parse error")
		checker := NewPrereqChecker(newFakeCluster(), func() error { return probeErr })

		err := checker.Check(context.Background())

		var perr *PrerequisiteError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "chart renderer", perr.Capability)
		assert.ErrorIs(t, perr, probeErr)
	})

	t.Run("nil probe is allowed", func(t *testing.T) {
		checker := NewPrereqChecker(newFakeCluster(), nil)
		assert.NoError(t, checker.Check(context.Background()))
	})
}
