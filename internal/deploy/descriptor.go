package deploy

import (
	"fmt"
	"sort"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Kind classifies a descriptor within the fixed dependency graph.
type Kind string

// Descriptor kinds in dependency order.
const (
	KindNamespace        Kind = "namespace"
	KindIdentity         Kind = "identity"
	KindWorkload         Kind = "workload"
	KindEndpoint         Kind = "endpoint"
	KindAutoscaler       Kind = "autoscaler"
	KindDisruptionPolicy Kind = "disruption-policy"
	KindIngress          Kind = "ingress"
)

// kindRank orders kinds along the fixed acyclic graph:
// namespace -> identity -> workload -> {endpoint, autoscaler,
// disruption-policy} -> ingress. Kinds sharing a rank have no ordering
// constraint between each other; input order is preserved among them.
var kindRank = map[Kind]int{
	KindNamespace:        0,
	KindIdentity:         1,
	KindWorkload:         2,
	KindEndpoint:         3,
	KindAutoscaler:       3,
	KindDisruptionPolicy: 3,
	KindIngress:          4,
}

// DefaultDependencies returns the kinds a descriptor of the given kind
// depends on per the fixed graph.
func DefaultDependencies(k Kind) []Kind {
	switch k {
	case KindNamespace:
		return nil
	case KindIdentity:
		return []Kind{KindNamespace}
	case KindWorkload:
		return []Kind{KindIdentity}
	case KindEndpoint, KindAutoscaler, KindDisruptionPolicy:
		return []Kind{KindWorkload}
	case KindIngress:
		return []Kind{KindEndpoint}
	default:
		return nil
	}
}

// Descriptor is one declarative cluster resource to apply. The payload is
// produced outside the core (internal/render) and is opaque here.
type Descriptor struct {
	Kind      Kind
	Name      string
	DependsOn []Kind
	Object    *unstructured.Unstructured
}

// String returns "kind/name" for log and error messages.
func (d Descriptor) String() string {
	return fmt.Sprintf("%s/%s", d.Kind, d.Name)
}

// ValidateSet checks a descriptor set before any mutation: every kind must
// be known, every declared dependency must be satisfiable by the set, and
// the declared dependency relation must be acyclic. Any violation is a
// ValidationError.
func ValidateSet(descriptors []Descriptor) error {
	present := make(map[Kind]bool, len(descriptors))
	for _, d := range descriptors {
		if _, ok := kindRank[d.Kind]; !ok {
			return &ValidationError{Reason: fmt.Sprintf("unknown descriptor kind %q for %q", d.Kind, d.Name)}
		}
		if d.Name == "" {
			return &ValidationError{Reason: fmt.Sprintf("descriptor of kind %s has no name", d.Kind)}
		}
		if d.Object == nil {
			return &ValidationError{Reason: fmt.Sprintf("descriptor %s has no payload", d)}
		}
		present[d.Kind] = true
	}

	deps := make(map[Kind][]Kind, len(descriptors))
	for _, d := range descriptors {
		for _, dep := range d.DependsOn {
			if _, ok := kindRank[dep]; !ok {
				return &ValidationError{Reason: fmt.Sprintf("descriptor %s depends on unknown kind %q", d, dep)}
			}
			if !present[dep] {
				return &ValidationError{Reason: fmt.Sprintf("descriptor %s depends on kind %s which is not in the set", d, dep)}
			}
			deps[d.Kind] = append(deps[d.Kind], dep)
		}
	}

	if cycle := findCycle(deps); cycle != "" {
		return &ValidationError{Reason: fmt.Sprintf("dependency cycle involving kind %s", cycle)}
	}

	return nil
}

// findCycle runs a DFS over the declared kind dependency relation and
// returns the first kind found on a cycle, or "".
func findCycle(deps map[Kind][]Kind) Kind {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[Kind]int, len(deps))

	var visit func(k Kind) Kind
	visit = func(k Kind) Kind {
		state[k] = inStack
		for _, dep := range deps[k] {
			switch state[dep] {
			case inStack:
				return dep
			case unvisited:
				if c := visit(dep); c != "" {
					return c
				}
			}
		}
		state[k] = done
		return ""
	}

	// Iterate sorted for deterministic error messages.
	kinds := make([]Kind, 0, len(deps))
	for k := range deps {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, k := range kinds {
		if state[k] == unvisited {
			if c := visit(k); c != "" {
				return c
			}
		}
	}
	return ""
}

// SortByDependency returns the descriptors ordered along the fixed kind
// graph. The sort is stable: descriptors of equal rank keep their input
// order. The input slice is not modified.
func SortByDependency(descriptors []Descriptor) []Descriptor {
	ordered := make([]Descriptor, len(descriptors))
	copy(ordered, descriptors)
	sort.SliceStable(ordered, func(i, j int) bool {
		return kindRank[ordered[i].Kind] < kindRank[ordered[j].Kind]
	})
	return ordered
}
