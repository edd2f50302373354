package deploy

import (
	"context"
	"log"
)

// Sequencer applies descriptors to the cluster strictly in dependency order
// and owns the mutation sequence for a run.
type Sequencer struct {
	cluster Cluster
}

// NewSequencer creates a sequencer backed by the given cluster.
func NewSequencer(cluster Cluster) *Sequencer {
	return &Sequencer{cluster: cluster}
}

// Apply validates the set, orders it along the fixed kind graph and applies
// each descriptor in turn. A descriptor is only applied once everything it
// depends on has a recorded success. On the first failure the sequencer
// halts: later descriptors are never attempted and nothing already applied
// is rolled back (uninstall is a separate, explicit operation).
//
// The returned outcomes cover every attempted descriptor, including the
// failed one. Validation failures return before any mutation with no
// outcomes at all.
func (s *Sequencer) Apply(ctx context.Context, descriptors []Descriptor) ([]Outcome, error) {
	if err := ValidateSet(descriptors); err != nil {
		return nil, err
	}

	ordered := SortByDependency(descriptors)
	applied := make(map[Kind]bool, len(ordered))
	outcomes := make([]Outcome, 0, len(ordered))

	for _, d := range ordered {
		for _, dep := range d.DependsOn {
			if !applied[dep] {
				// Unreachable after ValidateSet + SortByDependency, kept as
				// a guard against future graph edits.
				return outcomes, &ValidationError{Reason: "descriptor " + d.String() + " ordered before its dependency " + string(dep)}
			}
		}

		res, err := s.cluster.Apply(ctx, d.Object)
		if err != nil {
			outcomes = append(outcomes, Outcome{Kind: d.Kind, Name: d.Name, Op: OpFailed, Err: err})
			return outcomes, &ApplyError{Descriptor: d, Err: err}
		}

		log.Printf("  %s %s", d, res.Op)
		outcomes = append(outcomes, Outcome{Kind: d.Kind, Name: d.Name, Op: res.Op, Detail: res.Detail})
		applied[d.Kind] = true
	}

	return outcomes, nil
}
