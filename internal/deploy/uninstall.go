package deploy

import (
	"context"
	"log"
)

// Uninstaller removes previously applied descriptors in reverse dependency
// order. Unlike the sequencer's fail-fast apply, deletion is best-effort
// cleanup: a failed deletion is recorded and the remaining ones still run.
type Uninstaller struct {
	cluster Cluster
}

// NewUninstaller creates an uninstaller backed by the given cluster.
func NewUninstaller(cluster Cluster) *Uninstaller {
	return &Uninstaller{cluster: cluster}
}

// Uninstall deletes the descriptors in exact reverse apply order
// (ingress first, namespace last). The namespace is only deleted when
// removeNamespace is set, never as a side effect of removing the release.
//
// All outcomes are returned; if any deletion failed the error is a
// RollbackError aggregating the failures.
func (u *Uninstaller) Uninstall(ctx context.Context, descriptors []Descriptor, removeNamespace bool) ([]Outcome, error) {
	ordered := SortByDependency(descriptors)

	outcomes := make([]Outcome, 0, len(ordered))
	var failures []Outcome

	for i := len(ordered) - 1; i >= 0; i-- {
		d := ordered[i]

		if d.Kind == KindNamespace && !removeNamespace {
			log.Printf("  %s kept (namespace removal not requested)", d)
			outcomes = append(outcomes, Outcome{Kind: d.Kind, Name: d.Name, Op: OpSkipped, Detail: "namespace removal not requested"})
			continue
		}

		op, err := u.cluster.Delete(ctx, d.Object)
		if err != nil {
			log.Printf("  %s delete failed: %v", d, err)
			failed := Outcome{Kind: d.Kind, Name: d.Name, Op: OpFailed, Err: err}
			outcomes = append(outcomes, failed)
			failures = append(failures, failed)
			continue
		}

		log.Printf("  %s %s", d, op)
		outcomes = append(outcomes, Outcome{Kind: d.Kind, Name: d.Name, Op: op})
	}

	if len(failures) > 0 {
		return outcomes, &RollbackError{Failures: failures}
	}
	return outcomes, nil
}
