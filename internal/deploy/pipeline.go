package deploy

import (
	"context"
	"errors"
	"log"
	"time"
)

// Phase names the steps of a single run's state machine. All failure states
// are terminal; there is no transition back to Applying.
type Phase string

// Run phases, in execution order.
const (
	PhaseIdle                  Phase = "Idle"
	PhaseCheckingPrerequisites Phase = "CheckingPrerequisites"
	PhaseReconcilingNamespace  Phase = "ReconcilingNamespace"
	PhaseApplying              Phase = "Applying"
	PhaseAwaitingReadiness     Phase = "AwaitingReadiness"
	PhaseReporting             Phase = "Reporting"
)

// Pipeline coordinates a full deployment run: prerequisites, namespace,
// sequenced apply, rollout wait. Steps run strictly sequentially because
// each depends on the cluster-visible effect of the previous one.
//
// Concurrent runs against the same release are not coordinated here; the
// caller must serialize them. Every apply is idempotent and last-writer-wins
// at the cluster, so a re-invocation after any failure is always safe.
type Pipeline struct {
	cluster   Cluster
	checker   *PrereqChecker
	sequencer *Sequencer
	phase     Phase
}

// NewPipeline wires a pipeline against a cluster. The render probe feeds
// the prerequisite check and may be nil.
func NewPipeline(cluster Cluster, probe RenderProbe) *Pipeline {
	return &Pipeline{
		cluster:   cluster,
		checker:   NewPrereqChecker(cluster, probe),
		sequencer: NewSequencer(cluster),
		phase:     PhaseIdle,
	}
}

// Phase returns the pipeline's current phase. Informational only; the
// pipeline is not safe for concurrent runs.
func (p *Pipeline) Phase() Phase {
	return p.phase
}

func (p *Pipeline) enter(phase Phase) {
	p.phase = phase
	log.Printf("phase: %s", phase)
}

// Run executes one deployment run for the request and returns the assembled
// Result alongside the first fatal error, if any. The Result is valid in
// both cases: on failure it carries the outcomes recorded up to the halt.
//
// All resources are applied before the rollout wait starts; endpoint,
// autoscaler and disruption-policy descriptors depend on workload
// existence, not readiness.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	fail := func(status Status, outcomes []Outcome, rollout *RolloutState, err error) (Result, error) {
		return Result{Status: status, Outcomes: outcomes, Rollout: rollout, Elapsed: time.Since(start)}, err
	}

	if req.Image != "" {
		log.Printf("deploying release %s (image %s) to namespace %s", req.Release, req.Image, req.Namespace)
	}

	if err := ValidateSet(req.Descriptors); err != nil {
		return fail(StatusFailed, nil, nil, err)
	}

	p.enter(PhaseCheckingPrerequisites)
	if err := p.checker.Check(ctx); err != nil {
		return fail(StatusFailed, nil, nil, err)
	}

	p.enter(PhaseReconcilingNamespace)
	op, err := p.cluster.EnsureNamespace(ctx, req.Namespace)
	if err != nil {
		nsDesc := Descriptor{Kind: KindNamespace, Name: req.Namespace}
		return fail(StatusFailed, nil, nil, &ApplyError{Descriptor: nsDesc, Err: err})
	}
	log.Printf("  namespace/%s %s", req.Namespace, op)

	p.enter(PhaseApplying)
	outcomes, err := p.sequencer.Apply(ctx, req.Descriptors)
	if err != nil {
		return fail(StatusFailed, outcomes, nil, err)
	}

	workload, ok := findWorkload(req.Descriptors)
	if ok {
		p.enter(PhaseAwaitingReadiness)
		waiter := NewWaiter(p.cluster, req.PollInterval)
		state, err := waiter.AwaitReady(ctx, req.Namespace, workload.Name, req.Timeout)
		if err != nil {
			status := StatusTimedOut
			if errors.Is(err, ErrCancelled) {
				status = StatusCancelled
			}
			return fail(status, outcomes, &state, err)
		}

		p.enter(PhaseReporting)
		return Result{Status: StatusSucceeded, Outcomes: outcomes, Rollout: &state, Elapsed: time.Since(start)}, nil
	}

	p.enter(PhaseReporting)
	return Result{Status: StatusSucceeded, Outcomes: outcomes, Elapsed: time.Since(start)}, nil
}

// findWorkload returns the workload descriptor of the set, if any.
func findWorkload(descriptors []Descriptor) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Kind == KindWorkload {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Uninstall runs the teardown path for the request's descriptors. It is a
// standalone operation, never an automatic reaction to a failed run.
func (p *Pipeline) Uninstall(ctx context.Context, req Request, removeNamespace bool) ([]Outcome, error) {
	if err := ValidateSet(req.Descriptors); err != nil {
		return nil, err
	}
	log.Printf("uninstalling release %s from namespace %s", req.Release, req.Namespace)
	return NewUninstaller(p.cluster).Uninstall(ctx, req.Descriptors, removeNamespace)
}
