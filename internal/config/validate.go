package config

import (
	"fmt"
	"regexp"
)

// dnsNameRE matches RFC 1123 labels, the rule for release and namespace
// names.
var dnsNameRE = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// validServiceTypes are the service types the endpoint descriptor supports.
var validServiceTypes = map[string]bool{
	"ClusterIP":    true,
	"NodePort":     true,
	"LoadBalancer": true,
}

// Validate checks the configuration and returns a detailed error on the
// first violation.
func (c *Config) Validate() error {
	if c.Release == "" {
		return fmt.Errorf("release is required")
	}
	if !dnsNameRE.MatchString(c.Release) || len(c.Release) > 63 {
		return fmt.Errorf("release %q must be a DNS-safe lowercase name", c.Release)
	}
	if !dnsNameRE.MatchString(c.Namespace) || len(c.Namespace) > 63 {
		return fmt.Errorf("namespace %q must be a DNS-safe lowercase name", c.Namespace)
	}
	if c.Image.Repository == "" {
		return fmt.Errorf("image.repository is required")
	}
	if c.Replicas < 1 {
		return fmt.Errorf("replicas must be at least 1, got %d", c.Replicas)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Service.Port < 1 || c.Service.Port > 65535 {
		return fmt.Errorf("service.port %d out of range", c.Service.Port)
	}
	if !validServiceTypes[c.Service.Type] {
		return fmt.Errorf("service.type %q is not valid", c.Service.Type)
	}
	if c.Ingress.Enabled && c.Ingress.Host == "" {
		return fmt.Errorf("ingress.host is required when ingress is enabled")
	}
	if c.Autoscaler.Enabled {
		if c.Autoscaler.MaxReplicas < 1 {
			return fmt.Errorf("autoscaler.max_replicas is required when autoscaler is enabled")
		}
		if c.Autoscaler.MinReplicas > c.Autoscaler.MaxReplicas {
			return fmt.Errorf("autoscaler.min_replicas %d exceeds max_replicas %d",
				c.Autoscaler.MinReplicas, c.Autoscaler.MaxReplicas)
		}
	}
	if c.DisruptionBudget.Enabled && c.DisruptionBudget.MinAvailable > c.Replicas {
		return fmt.Errorf("disruption_budget.min_available %d exceeds replicas %d",
			c.DisruptionBudget.MinAvailable, c.Replicas)
	}
	if c.RolloutTimeout <= 0 {
		return fmt.Errorf("rollout_timeout must be positive")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive")
	}
	return nil
}
