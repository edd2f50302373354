package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	cmd := Status()

	require.NotNil(t, cmd)
	assert.Equal(t, "status", cmd.Use)
	assert.Equal(t, "Show the observed state of the deployed application", cmd.Short)
	assert.NotNil(t, cmd.RunE)
}

func TestStatus_Flags(t *testing.T) {
	cmd := Status()

	for _, name := range []string{"config", "namespace", "kubeconfig"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "expected flag %s", name)
	}
	assert.Nil(t, cmd.Flags().Lookup("timeout"), "status takes no timeout, it does not wait")
}
