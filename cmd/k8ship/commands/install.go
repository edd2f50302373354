package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/k8ship/cmd/k8ship/handlers"
)

// Install returns the command that performs the first deployment of a
// release.
//
// The full pipeline runs: prerequisite check, namespace reconciliation,
// dependency-ordered apply, readiness wait, summary. Every apply is
// idempotent, so re-running install is always safe.
func Install() *cobra.Command {
	var opts handlers.DeployOptions

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Deploy the application into the cluster",
		Long: `Deploy the application described by the configuration file.

Resources are applied in dependency order (namespace, service account,
deployment, service, autoscaler, disruption budget, ingress) and the
command then waits for the rollout to reach the desired replica count.

If no config file is specified, k8ship.yaml in the current directory is
used.

Examples:
  # Install using k8ship.yaml in the current directory
  k8ship install

  # Install using a specific config file and a longer rollout timeout
  k8ship install -c production.yaml --timeout 10m`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), opts)
		},
	}

	addDeployFlags(cmd, &opts)

	return cmd
}

// addDeployFlags binds the flags shared by install and upgrade.
func addDeployFlags(cmd *cobra.Command, opts *handlers.DeployOptions) {
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: k8ship.yaml)")
	cmd.Flags().StringVarP(&opts.Namespace, "namespace", "n", "", "Override the target namespace")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Override the rollout timeout (e.g. 90s, 10m)")
	cmd.Flags().StringVar(&opts.Kubeconfig, "kubeconfig", "", "Path to kubeconfig (default: $KUBECONFIG, then ~/.kube/config)")
}
