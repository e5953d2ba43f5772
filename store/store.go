// Package store is the single source of truth for a form session: it holds
// the FormRecord, recomputes the derived state after every write and
// notifies subscribers.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"sync"

	onboarding "github.com/reoring/onboarding"
	"github.com/reoring/onboarding/codec"
	"github.com/reoring/onboarding/i18n"
	"github.com/reoring/onboarding/refdata"
	"github.com/reoring/onboarding/resolver"
)

// Change is delivered to subscribers after a write and its recomputation.
type Change struct {
	Field   string
	Derived resolver.Derived
}

// Observer receives changes synchronously, in subscription order.
type Observer func(Change)

// Store holds one session's record.
type Store struct {
	mu       sync.Mutex
	ref      *refdata.Reference
	clock    onboarding.Clock
	logger   *slog.Logger
	rec      onboarding.FormRecord
	presence onboarding.PresenceMap
	derived  resolver.Derived
	subs     []subscription
	nextSub  int
	complete bool
}

type subscription struct {
	id int
	fn Observer
}

// Option configures a Store.
type Option func(*Store)

// WithReference sets the reference data (defaults to the embedded catalog).
func WithReference(ref *refdata.Reference) Option {
	return func(s *Store) {
		if ref != nil {
			s.ref = ref
		}
	}
}

// WithClock sets the clock used for age and date rules.
func WithClock(c onboarding.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the logger; nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecord seeds the session with an existing record instead of the
// empty defaults. Selection-time checks are not applied to seeded values.
func WithRecord(rec onboarding.FormRecord) Option {
	return func(s *Store) { s.rec = rec.Clone() }
}

// New creates a store holding a fresh record.
func New(opts ...Option) *Store {
	s := &Store{
		ref:      refdata.Default(),
		clock:    onboarding.SystemClock,
		logger:   slog.Default(),
		rec:      onboarding.NewRecord(),
		presence: onboarding.DefaultPresence(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.rec.PerSkillExperience == nil {
		s.rec.PerSkillExperience = map[string]float64{}
	}
	ctx := s.Context(context.Background())
	s.rec = Normalize(ctx, s.rec)
	s.derived = resolver.Resolve(ctx, s.rec)
	return s
}

// Context decorates ctx with the store's clock and reference data so that
// validators see the same world as the store.
func (s *Store) Context(ctx context.Context) context.Context {
	ctx = onboarding.WithClock(ctx, s.clock)
	return refdata.WithReference(ctx, s.ref)
}

// Reference returns the reference data backing the session.
func (s *Store) Reference() *refdata.Reference { return s.ref }

// SetField writes one field. Experience entries are addressed as
// "perSkillExperience/<skill>". The derived state is recomputed and
// subscribers are notified before SetField returns.
func (s *Store) SetField(ctx context.Context, name string, value any) error {
	ctx = s.Context(ctx)

	s.mu.Lock()
	if s.complete {
		s.mu.Unlock()
		return fmt.Errorf("set %s: %w", name, onboarding.ErrSessionComplete)
	}
	if err := s.write(ctx, name, value); err != nil {
		s.mu.Unlock()
		s.logger.Debug("field rejected", slog.String("field", name), slog.Any("err", err))
		return err
	}
	p := onboarding.PresenceSeen
	if value == nil {
		p |= onboarding.PresenceWasNull
	}
	s.presence[name] = p
	s.derived = resolver.Resolve(ctx, s.rec)
	change := Change{Field: name, Derived: s.derived}
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	s.logger.Debug("field set", slog.String("field", name), slog.Bool("minor", change.Derived.IsMinor))
	for _, sub := range subs {
		sub.fn(change)
	}
	return nil
}

func (s *Store) write(ctx context.Context, name string, value any) error {
	if base, skill, ok := strings.Cut(name, "/"); ok && base == onboarding.FieldPerSkillExperience {
		skill = onboarding.UnescapeToken(skill)
		years, err := toFloat(value)
		if err != nil {
			return typeIssue(name, "number", value)
		}
		s.rec.PerSkillExperience[skill] = years
		return nil
	}

	fv, ok := onboarding.FieldByKey(&s.rec, name)
	if !ok {
		return fmt.Errorf("%w: %q", onboarding.ErrUnknownField, name)
	}
	nv, err := convert(fv.Type(), value)
	if err != nil {
		return typeIssue(name, fv.Type().String(), value)
	}

	switch name {
	case onboarding.FieldManager:
		if err := s.checkManager(nv.String()); err != nil {
			return err
		}
	case onboarding.FieldPrimarySkills:
		nv = reflect.ValueOf(dedupe(nv.Interface().([]string)))
	}
	fv.Set(nv)

	switch name {
	case onboarding.FieldPrimarySkills:
		for _, skill := range s.rec.PrimarySkills {
			if _, ok := s.rec.PerSkillExperience[skill]; !ok {
				s.rec.PerSkillExperience[skill] = 0
				s.presence[onboarding.ExperiencePath(skill)] = onboarding.PresenceDefaultApplied
			}
		}
	case onboarding.FieldPerSkillExperience:
		if s.rec.PerSkillExperience == nil {
			s.rec.PerSkillExperience = map[string]float64{}
		}
	case onboarding.FieldJobType, onboarding.FieldSalaryExpectation:
		s.rec.SalaryExpectation = resolver.BoundsFor(s.rec.JobType).Clamp(s.rec.SalaryExpectation)
	case onboarding.FieldDateOfBirth, onboarding.FieldStartDate,
		onboarding.FieldWorkingHoursStart, onboarding.FieldWorkingHoursEnd:
		s.rec = Normalize(ctx, s.rec)
	}
	return nil
}

// Normalize rewrites the date and time-of-day fields in their wire form
// (YYYY-MM-DD and HH:MM) so that a record passing validation also satisfies
// the submission contract. Values that do not decode are left as entered.
func Normalize(ctx context.Context, rec onboarding.FormRecord) onboarding.FormRecord {
	rec.DateOfBirth = codec.CanonicalDate(ctx, rec.DateOfBirth)
	rec.StartDate = codec.CanonicalDate(ctx, rec.StartDate)
	rec.WorkingHoursStart = codec.CanonicalTime(ctx, rec.WorkingHoursStart)
	rec.WorkingHoursEnd = codec.CanonicalTime(ctx, rec.WorkingHoursEnd)
	return rec
}

// checkManager enforces directory membership at selection time.
func (s *Store) checkManager(name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	dept := s.rec.Department
	if s.ref.HasDepartment(dept) {
		if s.ref.ManagerInDepartment(name, dept) {
			return nil
		}
		msg := i18n.T(i18n.ManagerDepartment, map[string]string{"manager": name, "department": dept})
		return onboarding.Issues{onboarding.FieldIssue(onboarding.FieldManager, onboarding.CodeBusinessRule, msg, "department", dept)}
	}
	if _, ok := s.ref.Manager(name); ok {
		return nil
	}
	msg := i18n.T(i18n.ManagerUnknown, map[string]string{"manager": name})
	return onboarding.Issues{onboarding.FieldIssue(onboarding.FieldManager, onboarding.CodeInvalidEnum, msg)}
}

// GetField reads one field (or one experience entry).
func (s *Store) GetField(name string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if base, skill, ok := strings.Cut(name, "/"); ok && base == onboarding.FieldPerSkillExperience {
		years, ok := s.rec.PerSkillExperience[onboarding.UnescapeToken(skill)]
		if !ok {
			return nil, nil
		}
		return years, nil
	}
	rec := s.rec.Clone()
	fv, ok := onboarding.FieldByKey(&rec, name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", onboarding.ErrUnknownField, name)
	}
	return fv.Interface(), nil
}

// Snapshot returns a deep copy of the record.
func (s *Store) Snapshot() onboarding.FormRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Clone()
}

// Presence returns which fields were written, cleared or defaulted.
func (s *Store) Presence() onboarding.PresenceMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presence.Clone()
}

// Derived returns the state computed after the last write.
func (s *Store) Derived() resolver.Derived {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.derived
}

// Subscribe registers an observer and returns a function removing it.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool { return sub.id == id })
	}
}

// MarkComplete ends the session; later writes fail with ErrSessionComplete.
func (s *Store) MarkComplete() {
	s.mu.Lock()
	s.complete = true
	s.mu.Unlock()
}

// Complete reports whether the session has been submitted.
func (s *Store) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complete
}

func typeIssue(field, want string, got any) error {
	return onboarding.Issues{onboarding.NewRef().At(field).Issue(onboarding.CodeInvalidType, i18n.T(i18n.InvalidType, nil), "expected", want, "got", fmt.Sprintf("%T", got))}
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
