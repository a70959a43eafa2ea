// Package pipeline orchestrates one query's lifecycle: validate, dispatch
// the source adapters concurrently, reconcile the partials, and generate the
// explanation. Each run is single-use; no stage is re-entered.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/aviaryworks/fieldguide/internal/explain"
	"github.com/aviaryworks/fieldguide/internal/reconcile"
	"github.com/aviaryworks/fieldguide/internal/sources"
	"github.com/aviaryworks/fieldguide/pkg/errors"
	"github.com/aviaryworks/fieldguide/pkg/logging"
	"github.com/aviaryworks/fieldguide/pkg/record"
)

// Stage identifies where in the pipeline a failure occurred, so the consumer
// can render a stage-specific remediation hint.
type Stage string

// Pipeline stages surfaced in failures.
const (
	StageDispatch Stage = "dispatch"
	StageMerge    Stage = "merge"
	StageExplain  Stage = "explain"
)

// StageError wraps a failure with the stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *StageError) Unwrap() error {
	return e.Err
}

// Request is the inbound contract from the UI consumer.
type Request struct {
	Name       string
	Region     string
	Year       int
	Role       string
	Credential string
	Limit      int
}

// DisplayPayload is the successful outbound contract: the merged record plus
// the generated (or pre-authored) explanation.
type DisplayPayload struct {
	Record      *record.Canonical `json:"record"`
	Explanation string            `json:"explanation"`
}

// Explainer is the generation boundary consumed by the pipeline.
type Explainer interface {
	Explain(ctx context.Context, rec *record.Canonical, role explain.Role, credential string) (string, error)
}

// Pipeline wires the source adapters, reconciler, and explainer together.
type Pipeline struct {
	sources    []sources.Source
	reconciler *reconcile.Reconciler
	explainer  Explainer
}

// New creates a Pipeline. The source order is cosmetic; merge precedence
// comes from the reconciler's configured priority.
func New(srcs []sources.Source, rec *reconcile.Reconciler, exp Explainer) *Pipeline {
	return &Pipeline{
		sources:    srcs,
		reconciler: rec,
		explainer:  exp,
	}
}

// Run executes one query end to end. Failures are returned as a *StageError;
// a partial provider failure alone never fails the run as long as another
// source produced data.
func (p *Pipeline) Run(ctx context.Context, req Request) (*DisplayPayload, error) {
	role, err := explain.ParseRole(req.Role)
	if err != nil {
		return nil, &StageError{Stage: StageDispatch, Err: err}
	}

	q := record.Query{
		Name:   req.Name,
		Region: req.Region,
		Year:   req.Year,
		Limit:  req.Limit,
	}
	if err := q.Validate(); err != nil {
		return nil, &StageError{Stage: StageDispatch, Err: err}
	}

	ctx = logging.WithQuery(ctx, q.Name)

	outcomes := p.dispatch(ctx, q)

	canonical, err := p.reconciler.Merge(outcomes)
	if err != nil {
		return nil, &StageError{Stage: StageMerge, Err: err}
	}

	explanation, err := p.explainer.Explain(ctx, canonical, role, req.Credential)
	if err != nil {
		return nil, &StageError{Stage: StageExplain, Err: err}
	}

	return &DisplayPayload{Record: canonical, Explanation: explanation}, nil
}

// dispatch fans the query out to every source concurrently and blocks until
// all of them reach a terminal outcome. Partial merges are forbidden, so the
// slowest adapter gates the merge — but only the merge; the others were never
// waiting on it. Individual failures are demoted to log lines here: the
// reconciler decides whether anything usable remains.
func (p *Pipeline) dispatch(ctx context.Context, q record.Query) []sources.Outcome {
	var wg sync.WaitGroup
	results := make(chan sources.Outcome, len(p.sources))

	for _, src := range p.sources {
		wg.Add(1)
		go func(s sources.Source) {
			defer wg.Done()

			partial, err := s.Fetch(ctx, q)
			if err != nil {
				logging.FromContext(ctx).Warn().
					Err(err).
					Str("source", s.ID()).
					Msg("source failed, degrading merge")
			}
			results <- sources.Outcome{Source: s.ID(), Partial: partial, Err: err}
		}(src)
	}

	wg.Wait()
	close(results)

	outcomes := make([]sources.Outcome, 0, len(p.sources))
	for o := range results {
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// FailureHint returns a human remediation hint for a pipeline error. The UI
// consumer is expected to call this (or inspect the StageError itself) to
// show something actionable.
func FailureHint(err error) string {
	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		return "unexpected failure; check the logs"
	}

	switch stageErr.Stage {
	case StageDispatch:
		return "the query was rejected before dispatch; fix the input and retry"
	case StageMerge:
		return "no data source matched this query; try a different spelling or drop the filters"
	case StageExplain:
		var genErr *errors.GenerationError
		if errors.As(stageErr.Err, &genErr) {
			switch genErr.Kind {
			case errors.GenerationUnauthorized:
				return "supply a generation API credential and retry"
			case errors.GenerationRateLimited:
				return "the generation provider is throttling; wait and retry"
			case errors.GenerationTimeout:
				return "the generation call timed out; retry"
			}
		}
		return "the generation provider failed; retry later"
	default:
		return "unexpected failure; check the logs"
	}
}
