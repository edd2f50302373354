// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the k8ship CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "k8ship",
		Short:         "Deploy a stateless web application to Kubernetes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(Install())
	cmd.AddCommand(Upgrade())
	cmd.AddCommand(Uninstall())
	cmd.AddCommand(Status())
	cmd.AddCommand(Template())

	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
