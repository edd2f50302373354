package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUninstall(t *testing.T) {
	cmd := Uninstall()

	require.NotNil(t, cmd)
	assert.Equal(t, "uninstall", cmd.Use)
	assert.Equal(t, "Remove the deployed application from the cluster", cmd.Short)
	assert.NotNil(t, cmd.RunE)
}

func TestUninstall_Flags(t *testing.T) {
	cmd := Uninstall()

	deleteNS := cmd.Flags().Lookup("delete-namespace")
	require.NotNil(t, deleteNS)
	assert.Equal(t, "false", deleteNS.DefValue)

	yes := cmd.Flags().Lookup("yes")
	require.NotNil(t, yes)
	assert.Equal(t, "y", yes.Shorthand)
	assert.Equal(t, "false", yes.DefValue)

	require.NotNil(t, cmd.Flags().Lookup("config"))
	require.NotNil(t, cmd.Flags().Lookup("namespace"))
	require.NotNil(t, cmd.Flags().Lookup("kubeconfig"))
}
