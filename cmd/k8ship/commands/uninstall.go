package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/k8ship/cmd/k8ship/handlers"
)

// Uninstall returns the command that removes a deployed release.
//
// Resources are deleted in reverse dependency order. The namespace itself
// is only removed when --delete-namespace is given; deletion never happens
// as a side effect.
func Uninstall() *cobra.Command {
	var opts handlers.UninstallOptions

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the deployed application from the cluster",
		Long: `Remove the release's resources in reverse dependency order
(ingress first, namespace last).

Deletion is best-effort: a resource that fails to delete is reported and
the remaining deletions still run.

The namespace is kept unless --delete-namespace is set. An interactive
confirmation is shown before anything is removed; pass --yes to skip it
in scripts.

Examples:
  k8ship uninstall
  k8ship uninstall --delete-namespace --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Uninstall(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: k8ship.yaml)")
	cmd.Flags().StringVarP(&opts.Namespace, "namespace", "n", "", "Override the target namespace")
	cmd.Flags().StringVar(&opts.Kubeconfig, "kubeconfig", "", "Path to kubeconfig (default: $KUBECONFIG, then ~/.kube/config)")
	cmd.Flags().BoolVar(&opts.DeleteNamespace, "delete-namespace", false, "Also delete the target namespace")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Skip the interactive confirmation")

	return cmd
}
