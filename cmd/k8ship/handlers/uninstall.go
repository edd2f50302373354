package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/imamik/k8ship/internal/deploy"
)

// UninstallOptions carries the flags of the uninstall command.
type UninstallOptions struct {
	ConfigPath      string
	Namespace       string
	Kubeconfig      string
	DeleteNamespace bool
	Yes             bool
}

// confirmUninstall asks for interactive confirmation. Replaced in tests.
var confirmUninstall = func(release, namespace string, deleteNamespace bool) (bool, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return false, fmt.Errorf("no terminal for confirmation, re-run with --yes")
	}

	title := fmt.Sprintf("Remove release %q from namespace %q?", release, namespace)
	if deleteNamespace {
		title = fmt.Sprintf("Remove release %q and DELETE namespace %q?", release, namespace)
	}

	var confirmed bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description("Resources are deleted in reverse dependency order.").
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirmation aborted: %w", err)
	}
	return confirmed, nil
}

// runUninstall executes the teardown. Replaced in tests.
var runUninstall = func(ctx context.Context, cluster deploy.Cluster, req deploy.Request, deleteNamespace bool) ([]deploy.Outcome, error) {
	return deploy.NewPipeline(cluster, nil).Uninstall(ctx, req, deleteNamespace)
}

// Uninstall removes a deployed release in reverse dependency order.
//
// Deletion is best-effort: per-resource failures are reported together at
// the end instead of stopping the teardown. The namespace is only deleted
// when explicitly requested, and any deletion at all requires confirmation
// unless --yes was passed.
func Uninstall(ctx context.Context, opts UninstallOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Namespace != "" {
		cfg.Namespace = opts.Namespace
	}

	if !opts.Yes {
		confirmed, err := confirmUninstall(cfg.Release, cfg.Namespace, opts.DeleteNamespace)
		if err != nil {
			return err
		}
		if !confirmed {
			log.Println("Uninstall cancelled")
			return nil
		}
	}

	descriptors, err := buildDescriptors(cfg)
	if err != nil {
		return fmt.Errorf("failed to produce resource descriptors: %w", err)
	}

	kubeconfig := opts.Kubeconfig
	if kubeconfig == "" {
		kubeconfig = cfg.KubeconfigPath
	}
	cluster, err := newCluster(kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create cluster client: %w", err)
	}

	req := deploy.Request{
		Release:     cfg.Release,
		Namespace:   cfg.Namespace,
		Descriptors: descriptors,
	}

	outcomes, uninstallErr := runUninstall(ctx, cluster, req, opts.DeleteNamespace)

	fmt.Print(renderSummary(deploy.Summarize(deploy.Result{
		Status:   uninstallStatus(uninstallErr),
		Outcomes: outcomes,
	})))

	return uninstallErr
}

func uninstallStatus(err error) deploy.Status {
	if err != nil {
		return deploy.StatusFailed
	}
	return deploy.StatusSucceeded
}
