// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/imamik/k8ship/internal/config"
	"github.com/imamik/k8ship/internal/deploy"
	"github.com/imamik/k8ship/internal/k8s"
	"github.com/imamik/k8ship/internal/render"
)

// Factory function variables - can be replaced in tests for dependency
// injection.
var (
	// loadConfigFile loads the deployment config from a file.
	loadConfigFile = config.LoadFile

	// findConfigFile locates the default config file.
	findConfigFile = config.FindConfigFile

	// buildDescriptors produces the descriptor set for a config.
	buildDescriptors = render.Descriptors

	// renderProbe verifies the chart-rendering capability.
	renderProbe deploy.RenderProbe = render.Probe

	// newCluster creates the cluster client.
	newCluster = func(kubeconfigPath string) (deploy.Cluster, error) {
		return k8s.NewFromKubeconfigPath(kubeconfigPath)
	}

	// runPipeline executes a deployment run.
	runPipeline = func(ctx context.Context, cluster deploy.Cluster, probe deploy.RenderProbe, req deploy.Request) (deploy.Result, error) {
		return deploy.NewPipeline(cluster, probe).Run(ctx, req)
	}
)

// DeployOptions carries the flags of the install and upgrade commands.
type DeployOptions struct {
	ConfigPath    string
	Namespace     string
	Timeout       time.Duration
	Kubeconfig    string
	ImageOverride string
}

// Deploy runs the full deployment pipeline for install and upgrade.
//
// The handler loads and overrides the configuration, produces the
// descriptor set, and hands a single immutable request to the deployment
// core. The summary is printed in all cases; a failed run still shows
// which resources were applied before the halt.
func Deploy(ctx context.Context, opts DeployOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	applyOverrides(cfg, opts)

	log.Printf("Deploying release %s to namespace %s (image %s)", cfg.Release, cfg.Namespace, cfg.Image.Ref())

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
		Release:      cfg.Release,
		Namespace:    cfg.Namespace,
		Image:        cfg.Image.Ref(),
		Descriptors:  descriptors,
		Timeout:      cfg.RolloutTimeout,
		PollInterval: cfg.PollInterval,
	}

	result, runErr := runPipeline(ctx, cluster, renderProbe, req)

	fmt.Print(renderSummary(deploy.Summarize(result)))

	return runErr
}

// loadConfig loads the deployment configuration, falling back to
// k8ship.yaml in the current directory when no path is given.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w", err)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// applyOverrides folds command-line overrides into the loaded config.
func applyOverrides(cfg *config.Config, opts DeployOptions) {
	if opts.Namespace != "" {
		cfg.Namespace = opts.Namespace
	}
	if opts.Timeout > 0 {
		cfg.RolloutTimeout = opts.Timeout
	}
	if opts.ImageOverride != "" {
		cfg.Image = splitImageRef(opts.ImageOverride)
	}
}

// splitImageRef splits "repo:tag" into its parts. The separator is the last
// colon that is part of the image name, not a registry port.
func splitImageRef(ref string) config.ImageConfig {
	if i := strings.LastIndex(ref, ":"); i > 0 && !strings.Contains(ref[i+1:], "/") {
		return config.ImageConfig{Repository: ref[:i], Tag: ref[i+1:]}
	}
	return config.ImageConfig{Repository: ref, Tag: "latest"}
}
