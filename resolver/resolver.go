// Package resolver derives the conditional state of the form (which fields
// are required or visible, the skill catalog, salary bounds) from the record.
// Resolve is pure: the result depends only on the record, the clock and the
// reference data carried by the context.
package resolver

import (
	"context"
	"math"
	"slices"
	"strings"

	onboarding "github.com/reoring/onboarding"
	"github.com/reoring/onboarding/codec"
	"github.com/reoring/onboarding/refdata"
	r "github.com/reoring/onboarding/rules"
)

const (
	// MinorAge is the age below which guardian contact is required.
	MinorAge = 21
	// ManagerApprovalThreshold is the remote preference above which the
	// manager approval flag is shown.
	ManagerApprovalThreshold = 50
)

// SalaryBounds is the slider range for a job type. The zero value means no
// job type has been chosen.
type SalaryBounds struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

var (
	fullTimeBounds = SalaryBounds{Min: 30000, Max: 200000, Step: 1000}
	// Part-time and Contract share the hourly range.
	hourlyBounds = SalaryBounds{Min: 50, Max: 150, Step: 1}
)

var (
	// jobDomain evaluates job-step conditions that need no clock or
	// reference data.
	jobDomain = onboarding.NewDomainCtx(context.Background(), onboarding.StepJob)

	isFullTime = r.If("/jobType", r.Eq, onboarding.JobFullTime)
	isHourly   = r.IfAny(
		r.If("/jobType", r.Eq, onboarding.JobPartTime),
		r.If("/jobType", r.Eq, onboarding.JobContract),
	)
	managerApprovalShown = r.If("/remoteWorkPreference", r.Gt, ManagerApprovalThreshold)
)

// BoundsFor returns the salary bounds for a job type.
func BoundsFor(jt onboarding.JobType) SalaryBounds {
	rec := onboarding.FormRecord{JobType: jt}
	switch {
	case isFullTime.Holds(jobDomain, rec):
		return fullTimeBounds
	case isHourly.Holds(jobDomain, rec):
		return hourlyBounds
	}
	return SalaryBounds{}
}

// IsZero reports whether no bounds apply.
func (b SalaryBounds) IsZero() bool { return b == SalaryBounds{} }

// Contains reports whether v lies within [Min, Max].
func (b SalaryBounds) Contains(v float64) bool {
	if b.IsZero() {
		return true
	}
	return v >= b.Min && v <= b.Max
}

// Clamp pulls v into [Min, Max] and snaps it to the nearest step.
func (b SalaryBounds) Clamp(v float64) float64 {
	if b.IsZero() || math.IsNaN(v) {
		return v
	}
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	if b.Step > 0 {
		v = b.Min + math.Round((v-b.Min)/b.Step)*b.Step
		if v > b.Max {
			v = b.Max
		}
	}
	return v
}

// Derived is the conditional state computed from a record.
type Derived struct {
	Age     int  `json:"age"`
	HasAge  bool `json:"hasAge"`
	IsMinor bool `json:"isMinor"`

	AvailableSkills []string `json:"availableSkills"`
	ValidSkills     []string `json:"validSkills"`
	InvalidSkills   []string `json:"invalidSkills"`

	SalaryBounds        SalaryBounds      `json:"salaryBounds"`
	ShowManagerApproval bool              `json:"showManagerApproval"`
	Managers            []refdata.Manager `json:"managers"`
}

// AgeOf parses a date of birth and returns the age today. The second result
// is false when the date is blank or malformed.
func AgeOf(ctx context.Context, dob string) (int, bool) {
	if strings.TrimSpace(dob) == "" {
		return 0, false
	}
	birth, err := codec.Date().Decode(ctx, dob)
	if err != nil {
		return 0, false
	}
	return onboarding.AgeAt(birth, onboarding.Today(ctx)), true
}

// IsMinor reports whether the applicant is under MinorAge. An unknown age is
// not a minor: guardian fields stay optional until a date of birth exists.
func IsMinor(ctx context.Context, rec onboarding.FormRecord) bool {
	age, ok := AgeOf(ctx, rec.DateOfBirth)
	return ok && age < MinorAge
}

// Resolve recomputes every derived value from the record.
func Resolve(ctx context.Context, rec onboarding.FormRecord) Derived {
	ref := refdata.From(ctx)
	var d Derived

	d.Age, d.HasAge = AgeOf(ctx, rec.DateOfBirth)
	d.IsMinor = d.HasAge && d.Age < MinorAge

	d.AvailableSkills = ref.Skills(rec.Department)
	if d.AvailableSkills == nil {
		d.AvailableSkills = []string{}
	}
	d.ValidSkills, d.InvalidSkills = PartitionSkills(ref, rec.Department, rec.PrimarySkills)

	d.SalaryBounds = BoundsFor(rec.JobType)
	d.ShowManagerApproval = managerApprovalShown.Holds(onboarding.NewDomainCtx(ctx, onboarding.StepSkills), rec)
	d.Managers = ref.ManagersFor(rec.Department)
	return d
}

// PartitionSkills splits the selections into distinct skills offered by the
// department and those that are not, keeping selection order.
func PartitionSkills(ref *refdata.Reference, department string, selected []string) (valid, invalid []string) {
	valid, invalid = []string{}, []string{}
	seen := map[string]bool{}
	for _, s := range selected {
		if seen[s] {
			continue
		}
		seen[s] = true
		if ref.SkillAvailable(department, s) {
			valid = append(valid, s)
		} else {
			invalid = append(invalid, s)
		}
	}
	return valid, invalid
}

// GuardianRequired reports whether guardian fields are required and shown.
func (d Derived) GuardianRequired() bool { return d.IsMinor }

// RequiredFields lists the fields that must be filled to pass the step.
func (d Derived) RequiredFields(step onboarding.Step) []string {
	switch step {
	case onboarding.StepPersonal:
		return []string{onboarding.FieldFullName, onboarding.FieldEmail, onboarding.FieldPhoneNumber, onboarding.FieldDateOfBirth}
	case onboarding.StepJob:
		return slices.Clone(step.Fields())
	case onboarding.StepSkills:
		out := []string{onboarding.FieldPrimarySkills}
		for _, s := range d.ValidSkills {
			out = append(out, onboarding.ExperiencePath(s))
		}
		return append(out, onboarding.FieldWorkingHoursStart, onboarding.FieldWorkingHoursEnd, onboarding.FieldRemoteWorkPreference)
	case onboarding.StepEmergency:
		out := []string{onboarding.FieldEmergencyContactName, onboarding.FieldEmergencyRelationship, onboarding.FieldEmergencyPhoneNumber}
		if d.IsMinor {
			out = append(out, onboarding.FieldGuardianName, onboarding.FieldGuardianPhoneNumber)
		}
		return out
	case onboarding.StepReview:
		return []string{onboarding.FieldConfirmInformation}
	}
	return nil
}

// VisibleFields lists the fields a presentation layer renders for the step.
func (d Derived) VisibleFields(step onboarding.Step) []string {
	var out []string
	for _, f := range step.Fields() {
		switch f {
		case onboarding.FieldGuardianName, onboarding.FieldGuardianPhoneNumber:
			if !d.IsMinor {
				continue
			}
		case onboarding.FieldManagerApproved:
			if !d.ShowManagerApproval {
				continue
			}
		case onboarding.FieldPerSkillExperience:
			for _, s := range d.ValidSkills {
				out = append(out, onboarding.ExperiencePath(s))
			}
			continue
		}
		out = append(out, f)
	}
	return out
}
