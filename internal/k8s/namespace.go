package k8s

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/k8ship/internal/deploy"
)

// EnsureNamespace idempotently ensures the namespace exists: observed state
// is read first and only the missing delta (the namespace itself) is
// created. Calling it twice never errors and never duplicates state.
func (c *Client) EnsureNamespace(ctx context.Context, name string) (deploy.Op, error) {
	_, err := c.clientset.CoreV1().Namespaces().Get(ctx, name, metav1.GetOptions{})
	if err == nil {
		return deploy.OpUnchanged, nil
	}
	if !apierrors.IsNotFound(err) {
		return deploy.OpFailed, fmt.Errorf("failed to read namespace %s: %w", name, err)
	}

	ns := &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name: name,
			Labels: map[string]string{
				"app.kubernetes.io/managed-by": FieldManager,
			},
		},
	}

	if _, err := c.clientset.CoreV1().Namespaces().Create(ctx, ns, metav1.CreateOptions{}); err != nil {
		// A concurrent creator winning the race is still the desired state.
		if apierrors.IsAlreadyExists(err) {
			return deploy.OpUnchanged, nil
		}
		return deploy.OpFailed, fmt.Errorf("failed to create namespace %s: %w", name, err)
	}
	return deploy.OpCreated, nil
}
