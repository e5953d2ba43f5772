package session

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	onboarding "github.com/reoring/onboarding"
	"github.com/reoring/onboarding/codec"
	"github.com/reoring/onboarding/refdata"
	"github.com/reoring/onboarding/store"
	"github.com/reoring/onboarding/wizard"
)

// Outcome records what one action did.
type Outcome struct {
	Index  int               `json:"index"`
	Op     Op                `json:"op"`
	Field  string            `json:"field,omitempty"`
	Step   string            `json:"step"`
	OK     bool              `json:"ok"`
	Errors map[string]string `json:"errors,omitempty"`
	Err    string            `json:"error,omitempty"`
	Output string            `json:"output,omitempty"`
}

// Transcript is the result of playing a script.
type Transcript struct {
	Name       string                 `json:"name,omitempty"`
	Outcomes   []Outcome              `json:"outcomes"`
	Final      string                 `json:"finalStep"`
	Submission *onboarding.Submission `json:"submission,omitempty"`
}

// Failed returns the outcomes that did not succeed.
func (t Transcript) Failed() []Outcome {
	var out []Outcome
	for _, o := range t.Outcomes {
		if !o.OK {
			out = append(out, o)
		}
	}
	return out
}

// Runner plays scripts against fresh sessions.
type Runner struct {
	ref    *refdata.Reference
	clock  onboarding.Clock
	logger *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithReference sets the reference data for every session.
func WithReference(ref *refdata.Reference) Option { return func(r *Runner) { r.ref = ref } }

// WithClock sets the clock; a script's Today overrides it.
func WithClock(c onboarding.Clock) Option { return func(r *Runner) { r.clock = c } }

// WithLogger sets the logger; nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{clock: onboarding.SystemClock, logger: slog.Default()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// NewSession creates a store and navigator sharing the runner's settings.
func (r *Runner) NewSession(clock onboarding.Clock) (*store.Store, *wizard.Navigator) {
	if clock == nil {
		clock = r.clock
	}
	st := store.New(store.WithReference(r.ref), store.WithClock(clock), store.WithLogger(r.logger))
	return st, wizard.New(st, wizard.WithLogger(r.logger))
}

// Run plays the script. Field and step failures are recorded in the
// transcript; only a malformed script returns an error.
func (r *Runner) Run(ctx context.Context, sc Script) (Transcript, error) {
	if err := sc.Validate(); err != nil {
		return Transcript{}, err
	}
	clock := r.clock
	if sc.Today != "" {
		day, err := codec.Date().Decode(onboarding.WithClock(ctx, r.clock), sc.Today)
		if err != nil {
			return Transcript{}, fmt.Errorf("%w: today: %v", ErrInvalidScript, err)
		}
		clock = onboarding.FixedClock(day.Add(12 * time.Hour))
	}
	_, nav := r.NewSession(clock)

	tr := Transcript{Name: sc.Name, Outcomes: make([]Outcome, 0, len(sc.Actions))}
	for i, a := range sc.Actions {
		if err := ctx.Err(); err != nil {
			return tr, err
		}
		o, sub := Apply(ctx, nav, a)
		o.Index = i
		if sub != nil {
			tr.Submission = sub
		}
		r.logger.Debug("action", slog.Int("index", i), slog.String("op", string(a.Op)), slog.String("step", o.Step), slog.Bool("ok", o.OK))
		tr.Outcomes = append(tr.Outcomes, o)
	}
	tr.Final = nav.Current().Key()
	r.logger.Info("script finished", slog.String("name", sc.Name), slog.Int("actions", len(sc.Actions)),
		slog.Int("failed", len(tr.Failed())), slog.Bool("submitted", tr.Submission != nil))
	return tr, nil
}

// Apply performs one action on a session. A successful submit also returns
// the submission.
func Apply(ctx context.Context, nav *wizard.Navigator, a Action) (Outcome, *onboarding.Submission) {
	o := Outcome{Op: a.Op, Field: a.Field, OK: true}
	var sub *onboarding.Submission
	switch a.Op {
	case OpSet:
		if err := nav.Store().SetField(ctx, a.Field, a.Value); err != nil {
			fail(&o, err)
		}
	case OpAdvance:
		if res := nav.Advance(ctx); !res.Valid {
			o.OK = false
			o.Errors = res.Errors
		}
	case OpRetreat:
		nav.Retreat()
	case OpSubmit:
		s, err := nav.Submit(ctx)
		if err != nil {
			fail(&o, err)
			break
		}
		sub = &s
	case OpShow:
		var buf bytes.Buffer
		if err := RenderReview(&buf, nav.Store().Snapshot(), nav.Derived()); err != nil {
			fail(&o, err)
			break
		}
		o.Output = buf.String()
	default:
		o.OK = false
		o.Err = fmt.Sprintf("unknown op %q", a.Op)
	}
	o.Step = nav.Current().Key()
	return o, sub
}

func fail(o *Outcome, err error) {
	o.OK = false
	o.Err = err.Error()
	if iss, ok := onboarding.AsIssues(err); ok {
		o.Errors = iss.FieldErrors()
	}
}
