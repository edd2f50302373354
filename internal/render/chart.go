package render

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/chartutil"
	"helm.sh/helm/v3/pkg/engine"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/util/yaml"

	"github.com/imamik/k8ship/internal/config"
	"github.com/imamik/k8ship/internal/deploy"
)

// kindForResource maps rendered Kubernetes kinds onto descriptor kinds.
// Rendered documents of any other kind are rejected; the dependency graph
// only covers these.
var kindForResource = map[string]deploy.Kind{
	"Namespace":               deploy.KindNamespace,
	"ServiceAccount":          deploy.KindIdentity,
	"Deployment":              deploy.KindWorkload,
	"Service":                 deploy.KindEndpoint,
	"Ingress":                 deploy.KindIngress,
	"HorizontalPodAutoscaler": deploy.KindAutoscaler,
	"PodDisruptionBudget":     deploy.KindDisruptionPolicy,
}

// chartValues assembles the value overlay passed to a chart render from the
// deployment config, with chart_values merged on top.
func chartValues(cfg *config.Config) Values {
	base := Values{
		"replicaCount": cfg.Replicas,
		"image": Values{
			"repository": cfg.Image.Repository,
			"tag":        cfg.Image.Tag,
		},
		"service": Values{
			"type": cfg.Service.Type,
			"port": cfg.Service.Port,
		},
	}
	return Merge(base, Values(cfg.ChartValues))
}

// RenderChart loads a chart directory, renders it with the given values and
// classifies each rendered document into a descriptor.
func RenderChart(chartDir, release, namespace string, values Values) ([]deploy.Descriptor, error) {
	ch, err := loader.Load(chartDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart from %s: %w", chartDir, err)
	}

	manifests, err := renderChart(ch, release, namespace, values)
	if err != nil {
		return nil, err
	}

	return classify(manifests, namespace)
}

// renderChart renders a loaded chart into combined multi-document YAML.
func renderChart(ch *chart.Chart, release, namespace string, values Values) ([]byte, error) {
	capabilities := chartutil.DefaultCapabilities.Copy()

	releaseOptions := chartutil.ReleaseOptions{
		Name:      release,
		Namespace: namespace,
		IsInstall: true,
	}

	valuesToRender, err := chartutil.ToRenderValues(ch, chartutil.Values(values), releaseOptions, capabilities)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare chart values: %w", err)
	}

	rendered, err := (engine.Engine{}).Render(ch, valuesToRender)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	// Deterministic document order.
	names := make([]string, 0, len(rendered))
	for name := range rendered {
		names = append(names, name)
	}
	sort.Strings(names)

	var combined strings.Builder
	for _, name := range names {
		if filepath.Base(name) == "NOTES.txt" {
			continue
		}
		trimmed := strings.TrimSpace(rendered[name])
		if trimmed == "" {
			continue
		}
		if combined.Len() > 0 {
			combined.WriteString("\n---\n")
		}
		combined.WriteString(trimmed)
		combined.WriteString("\n")
	}

	return []byte(combined.String()), nil
}

// classify splits multi-document YAML into descriptors, defaulting the
// namespace on namespaced documents that omit it.
func classify(manifests []byte, namespace string) ([]deploy.Descriptor, error) {
	decoder := yaml.NewYAMLOrJSONDecoder(bytes.NewReader(manifests), 4096)

	var descriptors []deploy.Descriptor
	for {
		var obj unstructured.Unstructured
		if err := decoder.Decode(&obj); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to decode rendered manifest: %w", err)
		}
		if len(obj.Object) == 0 {
			continue
		}

		kind, ok := kindForResource[obj.GetKind()]
		if !ok {
			return nil, fmt.Errorf("chart rendered unsupported kind %s (%s)", obj.GetKind(), obj.GetName())
		}
		if kind != deploy.KindNamespace && obj.GetNamespace() == "" {
			obj.SetNamespace(namespace)
		}

		descriptors = append(descriptors, deploy.Descriptor{
			Kind:   kind,
			Name:   obj.GetName(),
			Object: &obj,
		})
	}

	// Dependencies are narrowed to the kinds present, which is only known
	// once every document is decoded.
	for i := range descriptors {
		descriptors[i].DependsOn = setDependencies(descriptors[i].Kind, descriptors)
	}

	return descriptors, nil
}

// setDependencies narrows the fixed-graph dependencies of kind to the kinds
// present in the set.
func setDependencies(kind deploy.Kind, set []deploy.Descriptor) []deploy.Kind {
	present := make(map[deploy.Kind]bool, len(set))
	for _, d := range set {
		present[d.Kind] = true
	}
	var deps []deploy.Kind
	for _, dep := range deploy.DefaultDependencies(kind) {
		if present[dep] {
			deps = append(deps, dep)
		}
	}
	return deps
}

// probeChartTemplate is rendered by Probe to verify the chart engine works.
const probeChartTemplate = `apiVersion: v1
kind: ConfigMap
metadata:
  name: {{ .Release.Name }}-render-probe
`

// Probe verifies the chart-rendering capability by rendering a minimal
// in-memory chart. It never touches the cluster.
func Probe() error {
	ch := &chart.Chart{
		Metadata: &chart.Metadata{
			Name:       "render-probe",
			Version:    "0.1.0",
			APIVersion: chart.APIVersionV2,
		},
		Templates: []*chart.File{
			{Name: "templates/probe.yaml", Data: []byte(probeChartTemplate)},
		},
	}

	out, err := renderChart(ch, "probe", "default", Values{})
	if err != nil {
		return err
	}
	if len(out) == 0 {
		return fmt.Errorf("chart renderer produced no output")
	}
	return nil
}
