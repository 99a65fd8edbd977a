package namespace

import (
	"context"
	"fmt"

	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/store"
)

// Observer receives the outcome of executed plans and steps.
type Observer interface {
	ObservePlan(kind Kind, err error)
	ObserveStep(op Op, err error)
	ObservePartialMutation(kind Kind)
}

// PartialMutationError is returned when a plan failed after at least one of its
// steps changed the store. Objects may exist at both Source and Destination.
type PartialMutationError struct {
	Kind        Kind
	Source      string
	Destination string
	Step        Step
	Err         error
}

func (e *PartialMutationError) Error() string {
	return fmt.Sprintf("%s of '%s' to '%s' incomplete, failed to %s: %v",
		e.Kind, e.Source, e.Destination, e.Step, e.Err)
}

func (e *PartialMutationError) Unwrap() []error {
	return []error{data.ErrPartialMutation, e.Err}
}

// Executor runs plans against a store, one step at a time and in order.
type Executor struct {
	store    store.Mutator
	observer Observer
}

func NewExecutor(s store.Mutator, observer Observer) *Executor {
	return &Executor{
		store:    s,
		observer: observer,
	}
}

// Execute runs plan with no observer attached.
func Execute(ctx context.Context, s store.Mutator, plan *Plan) error {
	return NewExecutor(s, nil).Execute(ctx, plan)
}

// Execute runs every step of plan. Cancelling ctx only takes effect before the first
// step; once a step was issued the remaining steps ignore cancellation. There is no
// retry and no rollback.
func (e *Executor) Execute(ctx context.Context, plan *Plan) error {
	if plan.IsEmpty() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := e.execute(ctx, plan)
	if e.observer != nil {
		e.observer.ObservePlan(plan.Kind, err)
	}
	return err
}

func (e *Executor) execute(ctx context.Context, plan *Plan) error {
	stepCtx := ctx
	for i, step := range plan.Steps {
		if i == 1 {
			stepCtx = context.WithoutCancel(ctx)
		}

		err := e.run(stepCtx, step)
		if e.observer != nil {
			e.observer.ObserveStep(step.Op, err)
		}
		if err == nil {
			continue
		}

		if i == 0 {
			return fmt.Errorf("failed to %s: %w", step, err)
		}

		if e.observer != nil {
			e.observer.ObservePartialMutation(plan.Kind)
		}
		return &PartialMutationError{
			Kind:        plan.Kind,
			Source:      plan.Source,
			Destination: plan.Destination,
			Step:        step,
			Err:         err,
		}
	}

	return nil
}

func (e *Executor) run(ctx context.Context, step Step) error {
	switch step.Op {
	case OpCopy:
		return e.store.Copy(ctx, step.Key, step.Source)
	case OpDelete:
		return e.store.Delete(ctx, step.Key)
	case OpPut:
		return e.store.Put(ctx, step.Key, []byte{})
	default:
		return fmt.Errorf("unknown step operation '%s': %w", step.Op, data.ErrUnsupported)
	}
}
