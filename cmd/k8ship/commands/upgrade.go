package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/k8ship/cmd/k8ship/handlers"
)

// Upgrade returns the command that rolls an existing release forward.
//
// Upgrade shares the install pipeline (applying the same resources again
// only mutates what actually changed) and additionally accepts --image to
// deploy a new image reference without editing the config file.
func Upgrade() *cobra.Command {
	var opts handlers.DeployOptions

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Roll the deployed application forward",
		Long: `Re-apply the release's resources and wait for the rollout.

Resources whose desired state is unchanged are reported as "unchanged"
and cause no cluster mutation at all.

Examples:
  # Re-apply after configuration changes
  k8ship upgrade

  # Deploy a new image version
  k8ship upgrade --image ghcr.io/acme/web:v1.4.0`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), opts)
		},
	}

	addDeployFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.ImageOverride, "image", "", "Override the image reference from the config file")

	return cmd
}
