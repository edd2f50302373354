package handlers

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"github.com/imamik/k8ship/internal/deploy"
)

// StatusOptions carries the flags of the status command.
type StatusOptions struct {
	ConfigPath string
	Namespace  string
	Kubeconfig string
}

// Status probes each of the release's resources and the workload rollout
// and prints the same summary the deploy pipeline does. Purely read-only.
func Status(ctx context.Context, opts StatusOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Namespace != "" {
		cfg.Namespace = opts.Namespace
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

	result := observe(ctx, cluster, cfg.Namespace, descriptors)

	fmt.Print(renderSummary(deploy.Summarize(result)))
	return nil
}

// observe collects the per-resource presence and the rollout state into a
// Result for the reporter.
func observe(ctx context.Context, cluster deploy.Cluster, namespace string, descriptors []deploy.Descriptor) deploy.Result {
	allPresent := true

	outcomes := make([]deploy.Outcome, 0, len(descriptors))
	for _, d := range deploy.SortByDependency(descriptors) {
		live, err := cluster.Get(ctx, d.Object)
		switch {
		case err == nil:
			outcomes = append(outcomes, deploy.Outcome{
				Kind:   d.Kind,
				Name:   d.Name,
				Op:     deploy.OpPresent,
				Detail: fmt.Sprintf("%s %s", live.GetKind(), live.GetName()),
			})
		case apierrors.IsNotFound(err):
			allPresent = false
			outcomes = append(outcomes, deploy.Outcome{Kind: d.Kind, Name: d.Name, Op: deploy.OpNotFound})
		default:
			allPresent = false
			outcomes = append(outcomes, deploy.Outcome{Kind: d.Kind, Name: d.Name, Op: deploy.OpFailed, Err: err})
		}
	}

	result := deploy.Result{Outcomes: outcomes, Status: deploy.StatusFailed}

	if workload, ok := workloadOf(descriptors); ok {
		if state, err := cluster.RolloutState(ctx, namespace, workload); err == nil {
			result.Rollout = &state
			if allPresent && state.ReadyNow() {
				result.Status = deploy.StatusSucceeded
			}
		}
	}

	return result
}

// workloadOf returns the workload descriptor name of the set, if any.
func workloadOf(descriptors []deploy.Descriptor) (string, bool) {
	for _, d := range descriptors {
		if d.Kind == deploy.KindWorkload {
			return d.Name, true
		}
	}
	return "", false
}
