package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/k8ship/internal/deploy"
)

func TestEnsureNamespace(t *testing.T) {
	t.Parallel()
	client, clientset, _ := newTestClient(t)

	op, err := client.EnsureNamespace(context.Background(), "prod")
	require.NoError(t, err)
	assert.Equal(t, deploy.OpCreated, op)

	ns, err := clientset.CoreV1().Namespaces().Get(context.Background(), "prod", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, FieldManager, ns.Labels["app.kubernetes.io/managed-by"])
}

func TestEnsureNamespace_Idempotent(t *testing.T) {
	t.Parallel()
	client, clientset, _ := newTestClient(t)

	_, err := client.EnsureNamespace(context.Background(), "prod")
	require.NoError(t, err)

	op, err := client.EnsureNamespace(context.Background(), "prod")
	require.NoError(t, err)
	assert.Equal(t, deploy.OpUnchanged, op)

	list, err := clientset.CoreV1().Namespaces().List(context.Background(), metav1.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}
