package k8s

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/k8ship/internal/deploy"
)

// RolloutState reads the workload deployment's desired and ready replica
// counts along with the most recent condition transition.
func (c *Client) RolloutState(ctx context.Context, namespace, name string) (deploy.RolloutState, error) {
	dep, err := c.clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return deploy.RolloutState{}, fmt.Errorf("failed to read deployment %s/%s: %w", namespace, name, err)
	}

	desired := int32(1)
	if dep.Spec.Replicas != nil {
		desired = *dep.Spec.Replicas
	}

	return deploy.RolloutState{
		Desired:        desired,
		Ready:          dep.Status.ReadyReplicas,
		LastTransition: lastTransition(dep),
	}, nil
}

// lastTransition returns the newest condition transition timestamp, or the
// zero time when the deployment has no conditions yet.
func lastTransition(dep *appsv1.Deployment) time.Time {
	var last time.Time
	for _, cond := range dep.Status.Conditions {
		if t := cond.LastTransitionTime.Time; t.After(last) {
			last = t
		}
	}
	return last
}
