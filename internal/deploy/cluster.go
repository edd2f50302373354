package deploy

import (
	"context"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// ApplyResult is what the cluster reports for a single apply.
type ApplyResult struct {
	Op     Op
	Detail string
}

// Cluster is the consumed cluster-control capability. The core does not
// format or parse the wire protocol; internal/k8s implements this against
// client-go, tests use an in-memory fake.
type Cluster interface {
	// Ping probes API reachability. Read-only.
	Ping(ctx context.Context) error

	// EnsureNamespace idempotently ensures the namespace exists and
	// reports OpCreated or OpUnchanged.
	EnsureNamespace(ctx context.Context, name string) (Op, error)

	// Apply reconciles one resource: unchanged payloads must cause no
	// mutating call and report OpUnchanged.
	Apply(ctx context.Context, obj *unstructured.Unstructured) (ApplyResult, error)

	// Delete removes one resource, reporting OpNotFound (not an error)
	// when it is already gone.
	Delete(ctx context.Context, obj *unstructured.Unstructured) (Op, error)

	// Get returns the observed state of one resource.
	Get(ctx context.Context, obj *unstructured.Unstructured) (*unstructured.Unstructured, error)

	// RolloutState reads the workload's desired and ready replica counts.
	RolloutState(ctx context.Context, namespace, name string) (RolloutState, error)
}
