package k8s

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/dynamic"

	"github.com/imamik/k8ship/internal/deploy"
)

// AppliedHashAnnotation stores the hash of the payload that was last
// applied. A live object carrying the same hash means re-applying would be
// a no-op, so no mutating call is made at all.
const AppliedHashAnnotation = "k8ship.io/applied-hash"

// Apply reconciles one resource using Server-Side Apply. The live object is
// read first and compared by payload hash; only a changed or missing
// resource causes a mutating call.
func (c *Client) Apply(ctx context.Context, obj *unstructured.Unstructured) (deploy.ApplyResult, error) {
	ri, err := c.resourceFor(obj)
	if err != nil {
		return deploy.ApplyResult{}, err
	}

	hash, err := payloadHash(obj)
	if err != nil {
		return deploy.ApplyResult{}, err
	}

	ref := fmt.Sprintf("%s %s", obj.GetKind(), obj.GetName())

	live, err := ri.Get(ctx, obj.GetName(), metav1.GetOptions{})
	exists := err == nil
	if err != nil && !apierrors.IsNotFound(err) {
		return deploy.ApplyResult{}, fmt.Errorf("failed to read %s: %w", ref, err)
	}

	if exists && live.GetAnnotations()[AppliedHashAnnotation] == hash {
		return deploy.ApplyResult{Op: deploy.OpUnchanged, Detail: ref}, nil
	}

	desired := obj.DeepCopy()
	annotations := desired.GetAnnotations()
	if annotations == nil {
		annotations = map[string]string{}
	}
	annotations[AppliedHashAnnotation] = hash
	desired.SetAnnotations(annotations)

	data, err := desired.MarshalJSON()
	if err != nil {
		return deploy.ApplyResult{}, fmt.Errorf("failed to marshal %s: %w", ref, err)
	}

	_, err = ri.Patch(ctx, desired.GetName(), types.ApplyPatchType, data, metav1.PatchOptions{
		FieldManager: FieldManager,
	})
	if err != nil {
		return deploy.ApplyResult{}, fmt.Errorf("server-side apply of %s failed: %w", ref, err)
	}

	op := deploy.OpCreated
	if exists {
		op = deploy.OpConfigured
	}
	return deploy.ApplyResult{Op: op, Detail: ref}, nil
}

// Delete removes one resource. A resource that is already gone reports
// OpNotFound without error, keeping uninstall idempotent.
func (c *Client) Delete(ctx context.Context, obj *unstructured.Unstructured) (deploy.Op, error) {
	ri, err := c.resourceFor(obj)
	if err != nil {
		return deploy.OpFailed, err
	}

	if err := ri.Delete(ctx, obj.GetName(), metav1.DeleteOptions{}); err != nil {
		if apierrors.IsNotFound(err) {
			return deploy.OpNotFound, nil
		}
		return deploy.OpFailed, fmt.Errorf("failed to delete %s %s: %w", obj.GetKind(), obj.GetName(), err)
	}
	return deploy.OpDeleted, nil
}

// Get returns the observed state of one resource.
func (c *Client) Get(ctx context.Context, obj *unstructured.Unstructured) (*unstructured.Unstructured, error) {
	ri, err := c.resourceFor(obj)
	if err != nil {
		return nil, err
	}
	return ri.Get(ctx, obj.GetName(), metav1.GetOptions{})
}

// resourceFor maps the object's GVK to a dynamic resource interface,
// namespaced when the mapping says so.
func (c *Client) resourceFor(obj *unstructured.Unstructured) (dynamic.ResourceInterface, error) {
	gvk := obj.GroupVersionKind()
	if gvk.Kind == "" {
		return nil, fmt.Errorf("object %q has no kind set", obj.GetName())
	}

	mapping, err := c.mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to get REST mapping for %v: %w", gvk, err)
	}

	if mapping.Scope.Name() == meta.RESTScopeNameNamespace {
		namespace := obj.GetNamespace()
		if namespace == "" {
			namespace = metav1.NamespaceDefault
		}
		return c.dynamic.Resource(mapping.Resource).Namespace(namespace), nil
	}
	return c.dynamic.Resource(mapping.Resource), nil
}

// payloadHash hashes the desired payload. JSON marshalling sorts map keys,
// so the hash is stable for semantically identical objects.
func payloadHash(obj *unstructured.Unstructured) (string, error) {
	data, err := obj.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("failed to hash %s %s: %w", obj.GetKind(), obj.GetName(), err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
