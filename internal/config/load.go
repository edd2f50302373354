package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up when no path is given.
const DefaultFile = "k8ship.yaml"

// FindConfigFile returns the default config file path if it exists in the
// current directory.
func FindConfigFile() (string, error) {
	if _, err := os.Stat(DefaultFile); err != nil {
		return "", fmt.Errorf("config file %s not found", DefaultFile)
	}
	return DefaultFile, nil
}

// LoadFile reads, decodes, defaults and validates a deployment config.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Load(data)
}

// Load parses a deployment config from YAML bytes.
func Load(data []byte) (*Config, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     &cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills unset fields with their documented defaults.
func (c *Config) applyDefaults() {
	if c.Namespace == "" {
		c.Namespace = c.Release
	}
	if c.Image.Tag == "" {
		c.Image.Tag = "latest"
	}
	if c.Replicas == 0 {
		c.Replicas = 1
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.Service.Port == 0 {
		c.Service.Port = 80
	}
	if c.Service.Type == "" {
		c.Service.Type = "ClusterIP"
	}
	if c.Ingress.Path == "" {
		c.Ingress.Path = "/"
	}
	if c.Autoscaler.Enabled {
		if c.Autoscaler.MinReplicas == 0 {
			c.Autoscaler.MinReplicas = c.Replicas
		}
		if c.Autoscaler.TargetCPUUtil == 0 {
			c.Autoscaler.TargetCPUUtil = 80
		}
	}
	if c.DisruptionBudget.Enabled && c.DisruptionBudget.MinAvailable == 0 {
		c.DisruptionBudget.MinAvailable = 1
	}
	if c.RolloutTimeout == 0 {
		c.RolloutTimeout = 5 * time.Minute
	}
	if c.PollInterval == 0 {
		c.PollInterval = 5 * time.Second
	}
}
