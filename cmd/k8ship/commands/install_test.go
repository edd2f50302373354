package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstall(t *testing.T) {
	cmd := Install()

	require.NotNil(t, cmd)
	assert.Equal(t, "install", cmd.Use)
	assert.Equal(t, "Deploy the application into the cluster", cmd.Short)
	assert.NotNil(t, cmd.RunE, "install command should have RunE function")
}

func TestInstall_Flags(t *testing.T) {
	cmd := Install()

	config := cmd.Flags().Lookup("config")
	require.NotNil(t, config)
	assert.Equal(t, "c", config.Shorthand)
	assert.Equal(t, "", config.DefValue)

	namespace := cmd.Flags().Lookup("namespace")
	require.NotNil(t, namespace)
	assert.Equal(t, "n", namespace.Shorthand)

	timeout := cmd.Flags().Lookup("timeout")
	require.NotNil(t, timeout)
	assert.Equal(t, "0s", timeout.DefValue)

	require.NotNil(t, cmd.Flags().Lookup("kubeconfig"))
}

func TestInstall_HasNoImageFlag(t *testing.T) {
	// Only upgrade can override the image; install always deploys what the
	// config file says.
	cmd := Install()
	assert.Nil(t, cmd.Flags().Lookup("image"))
}
