// Package k8s implements the deploy.Cluster capability against a real
// Kubernetes API server, wrapping k8s.io/client-go: a typed clientset for
// namespace and workload reads, a dynamic client with a discovery-backed
// RESTMapper for applying and deleting arbitrary descriptor payloads.
package k8s

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/restmapper"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/imamik/k8ship/internal/deploy"
)

// FieldManager identifies this tool in server-side apply operations.
const FieldManager = "k8ship"

// Client wraps Kubernetes API operations behind the deploy.Cluster
// capability.
type Client struct {
	clientset kubernetes.Interface
	dynamic   dynamic.Interface
	mapper    meta.RESTMapper
}

var _ deploy.Cluster = (*Client)(nil)

// NewFromKubeconfigPath creates a Client from a kubeconfig file. An empty
// path falls back to $KUBECONFIG and then ~/.kube/config.
func NewFromKubeconfigPath(path string) (*Client, error) {
	if path == "" {
		path = os.Getenv("KUBECONFIG")
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("no kubeconfig path and no home directory: %w", err)
		}
		path = filepath.Join(home, ".kube", "config")
	}

	restConfig, err := clientcmd.BuildConfigFromFlags("", path)
	if err != nil {
		return nil, fmt.Errorf("failed to build kubeconfig: %w", err)
	}
	return newFromRESTConfig(restConfig)
}

// NewFromKubeconfig creates a Client from kubeconfig bytes, avoiding any
// temporary file.
func NewFromKubeconfig(kubeconfig []byte) (*Client, error) {
	restConfig, err := clientcmd.RESTConfigFromKubeConfig(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build kubeconfig from bytes: %w", err)
	}
	return newFromRESTConfig(restConfig)
}

func newFromRESTConfig(restConfig *rest.Config) (*Client, error) {
	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	discoveryClient, err := discovery.NewDiscoveryClientForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery client: %w", err)
	}

	groupResources, err := restmapper.GetAPIGroupResources(discoveryClient)
	if err != nil {
		return nil, fmt.Errorf("failed to get API group resources: %w", err)
	}

	return &Client{
		clientset: clientset,
		dynamic:   dynamicClient,
		mapper:    restmapper.NewDiscoveryRESTMapper(groupResources),
	}, nil
}

// NewFromClients creates a Client from pre-configured clients. This is the
// constructor tests use with fake clientsets.
func NewFromClients(clientset kubernetes.Interface, dynamicClient dynamic.Interface, mapper meta.RESTMapper) *Client {
	return &Client{
		clientset: clientset,
		dynamic:   dynamicClient,
		mapper:    mapper,
	}
}

// Ping probes API server reachability via the version endpoint.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.clientset.Discovery().ServerVersion(); err != nil {
		return fmt.Errorf("cluster API not reachable: %w", err)
	}
	return nil
}
