package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/k8ship/cmd/k8ship/handlers"
)

// Template returns the command that prints the rendered manifests without
// applying anything.
func Template() *cobra.Command {
	var opts handlers.TemplateOptions

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Print the rendered manifests without applying them",
		Long: `Render the release's resources and print them as multi-document
YAML in apply order. Nothing is sent to the cluster.

Example:
  k8ship template -c production.yaml | kubectl diff -f -`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Template(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: k8ship.yaml)")
	cmd.Flags().StringVarP(&opts.Namespace, "namespace", "n", "", "Override the target namespace")

	return cmd
}
