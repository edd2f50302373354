package deploy

import (
	"context"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// fakeCluster is an in-memory Cluster capturing every call in order.
type fakeCluster struct {
	pingErr   error
	ensureOp  Op
	ensureErr error

	applyResults map[string]ApplyResult
	applyErrs    map[string]error
	deleteErrs   map[string]error

	// rollout is invoked per poll cycle with the 1-based call number.
	rollout func(call int) (RolloutState, error)

	ensured      []string
	applied      []string
	deleted      []string
	pingCalls    int
	rolloutCalls int
}

func newFakeCluster() *fakeCluster {
	return &fakeCluster{
		ensureOp:     OpCreated,
		applyResults: map[string]ApplyResult{},
		applyErrs:    map[string]error{},
		deleteErrs:   map[string]error{},
	}
}

func (f *fakeCluster) Ping(_ context.Context) error {
	f.pingCalls++
	return f.pingErr
}

func (f *fakeCluster) EnsureNamespace(_ context.Context, name string) (Op, error) {
	if f.ensureErr != nil {
		return OpFailed, f.ensureErr
	}
	f.ensured = append(f.ensured, name)
	return f.ensureOp, nil
}

func (f *fakeCluster) Apply(_ context.Context, obj *unstructured.Unstructured) (ApplyResult, error) {
	name := obj.GetName()
	if err := f.applyErrs[name]; err != nil {
		return ApplyResult{}, err
	}
	f.applied = append(f.applied, name)
	if res, ok := f.applyResults[name]; ok {
		return res, nil
	}
	return ApplyResult{Op: OpCreated, Detail: name}, nil
}

func (f *fakeCluster) Delete(_ context.Context, obj *unstructured.Unstructured) (Op, error) {
	name := obj.GetName()
	if err := f.deleteErrs[name]; err != nil {
		return OpFailed, err
	}
	f.deleted = append(f.deleted, name)
	return OpDeleted, nil
}

func (f *fakeCluster) Get(_ context.Context, obj *unstructured.Unstructured) (*unstructured.Unstructured, error) {
	return obj, nil
}

func (f *fakeCluster) RolloutState(_ context.Context, _, _ string) (RolloutState, error) {
	f.rolloutCalls++
	if f.rollout == nil {
		return RolloutState{Desired: 1, Ready: 1}, nil
	}
	return f.rollout(f.rolloutCalls)
}

// testObject builds a minimal unstructured payload for a descriptor.
func testObject(kind, name string) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "v1",
		"kind":       kind,
		"metadata": map[string]interface{}{
			"name": name,
		},
	}}
}

// testDescriptor builds a descriptor with the fixed-graph dependencies of
// its kind narrowed to the kinds of the full set built by testSet.
func testDescriptor(kind Kind, name string, deps ...Kind) Descriptor {
	return Descriptor{
		Kind:      kind,
		Name:      name,
		DependsOn: deps,
		Object:    testObject(string(kind), name),
	}
}

// testSet is the canonical four-descriptor set used across tests:
// namespace, identity, workload, endpoint.
func testSet() []Descriptor {
	return []Descriptor{
		testDescriptor(KindNamespace, "app-ns"),
		testDescriptor(KindIdentity, "app-sa", KindNamespace),
		testDescriptor(KindWorkload, "app", KindIdentity),
		testDescriptor(KindEndpoint, "app-svc", KindWorkload),
	}
}
