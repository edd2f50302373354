package render

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	autoscalingv2 "k8s.io/api/autoscaling/v2"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	policyv1 "k8s.io/api/policy/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/imamik/k8ship/internal/config"
	"github.com/imamik/k8ship/internal/deploy"
)

// Descriptors produces the descriptor set for a config: from the chart when
// chart_dir is set, otherwise from the typed builders.
func Descriptors(cfg *config.Config) ([]deploy.Descriptor, error) {
	if cfg.ChartDir != "" {
		return RenderChart(cfg.ChartDir, cfg.Release, cfg.Namespace, chartValues(cfg))
	}
	return BuildDescriptors(cfg)
}

// Labels returns the common labels stamped on every built resource.
func Labels(release string) map[string]string {
	return map[string]string{
		"app.kubernetes.io/name":       release,
		"app.kubernetes.io/instance":   release,
		"app.kubernetes.io/managed-by": "k8ship",
	}
}

// selectorLabels is the immutable subset used for pod selection.
func selectorLabels(release string) map[string]string {
	return map[string]string{
		"app.kubernetes.io/name":     release,
		"app.kubernetes.io/instance": release,
	}
}

type builderSpec struct {
	kind    deploy.Kind
	name    string
	enabled bool
	build   func(*config.Config) runtime.Object
}

// BuildDescriptors builds the full descriptor set from typed objects:
// namespace, identity, workload and endpoint always; autoscaler, disruption
// policy and ingress when enabled.
func BuildDescriptors(cfg *config.Config) ([]deploy.Descriptor, error) {
	builders := []builderSpec{
		{deploy.KindNamespace, cfg.Namespace, true, buildNamespace},
		{deploy.KindIdentity, cfg.Release, true, buildServiceAccount},
		{deploy.KindWorkload, cfg.Release, true, buildDeployment},
		{deploy.KindEndpoint, cfg.Release, true, buildService},
		{deploy.KindAutoscaler, cfg.Release, cfg.Autoscaler.Enabled, buildAutoscaler},
		{deploy.KindDisruptionPolicy, cfg.Release, cfg.DisruptionBudget.Enabled, buildDisruptionBudget},
		{deploy.KindIngress, cfg.Release, cfg.Ingress.Enabled, buildIngress},
	}

	descriptors := make([]deploy.Descriptor, 0, len(builders))
	for _, b := range builders {
		if !b.enabled {
			continue
		}
		obj, err := toUnstructured(b.build(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to build %s descriptor: %w", b.kind, err)
		}
		descriptors = append(descriptors, deploy.Descriptor{
			Kind:      b.kind,
			Name:      b.name,
			DependsOn: dependenciesWithin(b.kind, builders),
			Object:    obj,
		})
	}
	return descriptors, nil
}

// dependenciesWithin narrows the fixed-graph dependencies of a kind down to
// the kinds actually present in this build. An ingress in a set without an
// endpoint would otherwise fail validation.
func dependenciesWithin(kind deploy.Kind, builders []builderSpec) []deploy.Kind {
	enabled := make(map[deploy.Kind]bool, len(builders))
	for _, b := range builders {
		if b.enabled {
			enabled[b.kind] = true
		}
	}

	var deps []deploy.Kind
	for _, dep := range deploy.DefaultDependencies(kind) {
		if enabled[dep] {
			deps = append(deps, dep)
		}
	}
	return deps
}

func buildNamespace(cfg *config.Config) runtime.Object {
	return &corev1.Namespace{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Namespace"},
		ObjectMeta: metav1.ObjectMeta{
			Name:   cfg.Namespace,
			Labels: Labels(cfg.Release),
		},
	}
}

func buildServiceAccount(cfg *config.Config) runtime.Object {
	return &corev1.ServiceAccount{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "ServiceAccount"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      cfg.Release,
			Namespace: cfg.Namespace,
			Labels:    Labels(cfg.Release),
		},
	}
}

func buildDeployment(cfg *config.Config) runtime.Object {
	replicas := cfg.Replicas
	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      cfg.Release,
			Namespace: cfg.Namespace,
			Labels:    Labels(cfg.Release),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{MatchLabels: selectorLabels(cfg.Release)},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: Labels(cfg.Release)},
				Spec: corev1.PodSpec{
					ServiceAccountName: cfg.Release,
					Containers: []corev1.Container{
						{
							Name:  "web",
							Image: cfg.Image.Ref(),
							Ports: []corev1.ContainerPort{
								{Name: "http", ContainerPort: cfg.Port, Protocol: corev1.ProtocolTCP},
							},
							ReadinessProbe: &corev1.Probe{
								ProbeHandler: corev1.ProbeHandler{
									TCPSocket: &corev1.TCPSocketAction{
										Port: intstr.FromInt32(cfg.Port),
									},
								},
								InitialDelaySeconds: 3,
								PeriodSeconds:       5,
							},
						},
					},
				},
			},
		},
	}
}

func buildService(cfg *config.Config) runtime.Object {
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      cfg.Release,
			Namespace: cfg.Namespace,
			Labels:    Labels(cfg.Release),
		},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceType(cfg.Service.Type),
			Selector: selectorLabels(cfg.Release),
			Ports: []corev1.ServicePort{
				{
					Name:       "http",
					Port:       cfg.Service.Port,
					TargetPort: intstr.FromString("http"),
					Protocol:   corev1.ProtocolTCP,
				},
			},
		},
	}
}

func buildAutoscaler(cfg *config.Config) runtime.Object {
	minReplicas := cfg.Autoscaler.MinReplicas
	targetCPU := cfg.Autoscaler.TargetCPUUtil
	return &autoscalingv2.HorizontalPodAutoscaler{
		TypeMeta: metav1.TypeMeta{APIVersion: "autoscaling/v2", Kind: "HorizontalPodAutoscaler"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      cfg.Release,
			Namespace: cfg.Namespace,
			Labels:    Labels(cfg.Release),
		},
		Spec: autoscalingv2.HorizontalPodAutoscalerSpec{
			ScaleTargetRef: autoscalingv2.CrossVersionObjectReference{
				APIVersion: "apps/v1",
				Kind:       "Deployment",
				Name:       cfg.Release,
			},
			MinReplicas: &minReplicas,
			MaxReplicas: cfg.Autoscaler.MaxReplicas,
			Metrics: []autoscalingv2.MetricSpec{
				{
					Type: autoscalingv2.ResourceMetricSourceType,
					Resource: &autoscalingv2.ResourceMetricSource{
						Name: corev1.ResourceCPU,
						Target: autoscalingv2.MetricTarget{
							Type:               autoscalingv2.UtilizationMetricType,
							AverageUtilization: &targetCPU,
						},
					},
				},
			},
		},
	}
}

func buildDisruptionBudget(cfg *config.Config) runtime.Object {
	minAvailable := intstr.FromInt32(cfg.DisruptionBudget.MinAvailable)
	return &policyv1.PodDisruptionBudget{
		TypeMeta: metav1.TypeMeta{APIVersion: "policy/v1", Kind: "PodDisruptionBudget"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      cfg.Release,
			Namespace: cfg.Namespace,
			Labels:    Labels(cfg.Release),
		},
		Spec: policyv1.PodDisruptionBudgetSpec{
			MinAvailable: &minAvailable,
			Selector:     &metav1.LabelSelector{MatchLabels: selectorLabels(cfg.Release)},
		},
	}
}

func buildIngress(cfg *config.Config) runtime.Object {
	pathType := networkingv1.PathTypePrefix
	ing := &networkingv1.Ingress{
		TypeMeta: metav1.TypeMeta{APIVersion: "networking.k8s.io/v1", Kind: "Ingress"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      cfg.Release,
			Namespace: cfg.Namespace,
			Labels:    Labels(cfg.Release),
		},
		Spec: networkingv1.IngressSpec{
			Rules: []networkingv1.IngressRule{
				{
					Host: cfg.Ingress.Host,
					IngressRuleValue: networkingv1.IngressRuleValue{
						HTTP: &networkingv1.HTTPIngressRuleValue{
							Paths: []networkingv1.HTTPIngressPath{
								{
									Path:     cfg.Ingress.Path,
									PathType: &pathType,
									Backend: networkingv1.IngressBackend{
										Service: &networkingv1.IngressServiceBackend{
											Name: cfg.Release,
											Port: networkingv1.ServiceBackendPort{Number: cfg.Service.Port},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
	if cfg.Ingress.ClassName != "" {
		ing.Spec.IngressClassName = &cfg.Ingress.ClassName
	}
	return ing
}

// toUnstructured converts a typed object into the opaque payload form the
// core applies.
func toUnstructured(obj runtime.Object) (*unstructured.Unstructured, error) {
	content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, err
	}
	return &unstructured.Unstructured{Object: content}, nil
}
