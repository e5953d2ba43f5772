// Package wizard is the step navigator: a state machine over the five steps
// that gates forward movement on the active step schema and assembles the
// final submission.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	onboarding "github.com/reoring/onboarding"
	"github.com/reoring/onboarding/resolver"
	"github.com/reoring/onboarding/schema"
	"github.com/reoring/onboarding/store"
	"github.com/reoring/onboarding/submission"
)

// StepError reports a step that failed re-validation on submit.
type StepError struct {
	Step   onboarding.Step
	Result schema.Result
}

func (e *StepError) Error() string {
	return fmt.Sprintf("wizard: %s step is invalid: %v", e.Step, e.Result.Issues)
}

// Unwrap exposes the issues so onboarding.AsIssues works on the error.
func (e *StepError) Unwrap() error { return e.Result.Issues }

// Navigator drives one session.
type Navigator struct {
	mu      sync.Mutex
	store   *store.Store
	logger  *slog.Logger
	current onboarding.Step
	last    schema.Result
	done    bool
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger; nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.logger = l
		}
	}
}

// New creates a navigator positioned on the first step.
func New(st *store.Store, opts ...Option) *Navigator {
	n := &Navigator{store: st, logger: slog.Default(), current: onboarding.FirstStep}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Store returns the backing store.
func (n *Navigator) Store() *store.Store { return n.store }

// Current returns the active step.
func (n *Navigator) Current() onboarding.Step {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// LastResult returns the result of the most recent validation.
func (n *Navigator) LastResult() schema.Result {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

// Completed reports whether the session has been submitted.
func (n *Navigator) Completed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.done
}

// Derived returns the conditional state for the active record.
func (n *Navigator) Derived() resolver.Derived { return n.store.Derived() }

// Advance validates the active step and moves forward on success. On the
// review step a successful validation leaves the navigator where it is. Once
// the session is submitted Advance is a no-op returning the last result.
func (n *Navigator) Advance(ctx context.Context) schema.Result {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.done {
		return n.last
	}

	res := schema.ValidateStep(n.store.Context(ctx), n.current, n.store.Snapshot())
	n.last = res
	if !res.Valid {
		n.logger.Info("step rejected", slog.String("step", n.current.Key()), slog.Int("issues", len(res.Issues)))
		return res
	}
	from := n.current
	n.current = n.current.Next()
	n.logger.Info("step advanced", slog.String("from", from.Key()), slog.String("to", n.current.Key()))
	return res
}

// Retreat moves back one step without validation. It does nothing once the
// session is submitted.
func (n *Navigator) Retreat() onboarding.Step {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.done {
		return n.current
	}
	from := n.current
	n.current = n.current.Prev()
	n.last = schema.Result{}
	n.logger.Info("step retreated", slog.String("from", from.Key()), slog.String("to", n.current.Key()))
	return n.current
}

// Submit finalizes the session. It is only allowed from the review step and
// re-validates every step against the current record, so data invalidated
// by a backward edit blocks submission. On failure the returned error is a
// *StepError for the first failing step. The finalized payload is checked
// against the submission contract before the session is locked; a contract
// violation is returned wrapped in submission.ErrContract and leaves the
// session open.
func (n *Navigator) Submit(ctx context.Context) (onboarding.Submission, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.done {
		return onboarding.Submission{}, onboarding.ErrSessionComplete
	}
	if n.current != onboarding.StepReview {
		return onboarding.Submission{}, fmt.Errorf("%w (current step: %s)", onboarding.ErrNotOnReview, n.current)
	}

	vctx := n.store.Context(ctx)
	rec := n.store.Snapshot()
	if failed, ok := schema.FirstFailure(schema.ValidateAll(vctx, rec)); ok {
		n.last = failed
		n.logger.Info("submit rejected", slog.String("step", failed.Step.Key()), slog.Int("issues", len(failed.Issues)))
		return onboarding.Submission{}, &StepError{Step: failed.Step, Result: failed}
	}

	sub := onboarding.Submission{
		ID:          uuid.NewString(),
		SubmittedAt: onboarding.Now(vctx),
		Record:      Finalize(vctx, rec),
	}
	if _, err := submission.Encode(vctx, sub); err != nil {
		n.logger.Warn("submit rejected by contract", slog.Any("err", err))
		return onboarding.Submission{}, err
	}
	n.store.MarkComplete()
	n.done = true
	n.last = schema.Result{Step: onboarding.StepReview, Valid: true, Errors: map[string]string{}}
	n.logger.Info("submitted", slog.String("id", sub.ID))
	return sub, nil
}

// Finalize assembles the record handed to the submission boundary: dates and
// times are put in wire form, orphaned experience entries and skills outside
// the department catalog are pruned, and the manager approval flag is
// dropped when it was not shown.
func Finalize(ctx context.Context, rec onboarding.FormRecord) onboarding.FormRecord {
	out := store.Normalize(ctx, rec.Clone())
	d := resolver.Resolve(ctx, out)
	exp := make(map[string]float64, len(d.ValidSkills))
	for _, s := range d.ValidSkills {
		exp[s] = out.PerSkillExperience[s]
	}
	out.PrimarySkills = d.ValidSkills
	out.PerSkillExperience = exp
	if !d.ShowManagerApproval {
		out.ManagerApproved = nil
	}
	return out
}

// IsStepError reports whether err is a submit re-validation failure and
// returns it.
func IsStepError(err error) (*StepError, bool) {
	var se *StepError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
