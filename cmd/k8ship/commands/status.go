package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/k8ship/cmd/k8ship/handlers"
)

// Status returns the read-only command that reports the observed state of
// a release's resources and its rollout.
func Status() *cobra.Command {
	var opts handlers.StatusOptions

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the observed state of the deployed application",
		Long: `Probe each of the release's resources and the workload rollout
and print a summary. No resource is mutated.

Example:
  k8ship status -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: k8ship.yaml)")
	cmd.Flags().StringVarP(&opts.Namespace, "namespace", "n", "", "Override the target namespace")
	cmd.Flags().StringVar(&opts.Kubeconfig, "kubeconfig", "", "Path to kubeconfig (default: $KUBECONFIG, then ~/.kube/config)")

	return cmd
}
