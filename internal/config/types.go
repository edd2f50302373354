// Package config defines the deployment configuration and its loading and
// validation rules.
package config

import "time"

// Config describes one deployable application release.
type Config struct {
	// Release is the release identifier; it names every created resource.
	Release string `mapstructure:"release" yaml:"release"`

	// Namespace is the target isolation namespace.
	// Default: the release name.
	Namespace string `mapstructure:"namespace" yaml:"namespace"`

	// Image is the container image to deploy.
	Image ImageConfig `mapstructure:"image" yaml:"image"`

	// Replicas is the desired workload replica count.
	// Default: 1
	Replicas int32 `mapstructure:"replicas" yaml:"replicas"`

	// Port is the container port the application listens on.
	// Default: 8080
	Port int32 `mapstructure:"port" yaml:"port"`

	// Service configures the in-cluster endpoint.
	Service ServiceConfig `mapstructure:"service" yaml:"service"`

	// Ingress configures external access. Disabled by default.
	Ingress IngressConfig `mapstructure:"ingress" yaml:"ingress"`

	// Autoscaler configures horizontal scaling. Disabled by default.
	Autoscaler AutoscalerConfig `mapstructure:"autoscaler" yaml:"autoscaler"`

	// DisruptionBudget configures the voluntary-disruption policy.
	// Disabled by default.
	DisruptionBudget DisruptionBudgetConfig `mapstructure:"disruption_budget" yaml:"disruption_budget"`

	// RolloutTimeout bounds the readiness wait after apply.
	// Default: 5m
	RolloutTimeout time.Duration `mapstructure:"rollout_timeout" yaml:"rollout_timeout"`

	// PollInterval is the readiness poll interval.
	// Default: 5s
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`

	// ChartDir optionally renders descriptors from a local Helm chart
	// instead of the built-in builders.
	ChartDir string `mapstructure:"chart_dir" yaml:"chart_dir"`

	// ChartValues are extra values merged into the chart render.
	ChartValues map[string]any `mapstructure:"chart_values" yaml:"chart_values"`

	// KubeconfigPath overrides kubeconfig discovery.
	KubeconfigPath string `mapstructure:"kubeconfig_path" yaml:"kubeconfig_path"`
}

// ImageConfig identifies the container image.
type ImageConfig struct {
	Repository string `mapstructure:"repository" yaml:"repository"`
	Tag        string `mapstructure:"tag" yaml:"tag"` // Default: "latest"
}

// Ref returns the full image reference.
func (i ImageConfig) Ref() string {
	return i.Repository + ":" + i.Tag
}

// ServiceConfig configures the cluster-internal endpoint.
type ServiceConfig struct {
	Port int32  `mapstructure:"port" yaml:"port"` // Default: 80
	Type string `mapstructure:"type" yaml:"type"` // Default: ClusterIP
}

// IngressConfig configures external HTTP access.
type IngressConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Host      string `mapstructure:"host" yaml:"host"`
	Path      string `mapstructure:"path" yaml:"path"`             // Default: /
	ClassName string `mapstructure:"class_name" yaml:"class_name"` // e.g. nginx
}

// AutoscalerConfig configures the horizontal pod autoscaler.
type AutoscalerConfig struct {
	Enabled       bool  `mapstructure:"enabled" yaml:"enabled"`
	MinReplicas   int32 `mapstructure:"min_replicas" yaml:"min_replicas"` // Default: replicas
	MaxReplicas   int32 `mapstructure:"max_replicas" yaml:"max_replicas"`
	TargetCPUUtil int32 `mapstructure:"target_cpu_utilization" yaml:"target_cpu_utilization"` // Default: 80
}

// DisruptionBudgetConfig configures the pod disruption budget.
type DisruptionBudgetConfig struct {
	Enabled      bool  `mapstructure:"enabled" yaml:"enabled"`
	MinAvailable int32 `mapstructure:"min_available" yaml:"min_available"` // Default: 1
}
