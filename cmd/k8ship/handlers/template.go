package handlers

import (
	"fmt"

	sigsyaml "sigs.k8s.io/yaml"

	"github.com/imamik/k8ship/internal/deploy"
)

// TemplateOptions carries the flags of the template command.
type TemplateOptions struct {
	ConfigPath string
	Namespace  string
}

// Template prints the release's rendered manifests in apply order without
// touching the cluster.
func Template(opts TemplateOptions) error {
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

	out, err := renderManifests(descriptors)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// renderManifests marshals descriptors into a multi-document YAML stream in
// apply order.
func renderManifests(descriptors []deploy.Descriptor) (string, error) {
	var out string
	for i, d := range deploy.SortByDependency(descriptors) {
		data, err := sigsyaml.Marshal(d.Object.Object)
		if err != nil {
			return "", fmt.Errorf("failed to marshal %s: %w", d, err)
		}
		if i > 0 {
			out += "---\n"
		}
		out += string(data)
	}
	return out, nil
}
