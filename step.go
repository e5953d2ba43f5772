package onboarding

import (
	"fmt"
	"strings"
)

// Step identifies one of the five sections of the form.
type Step int

const (
	StepPersonal Step = iota
	StepJob
	StepSkills
	StepEmergency
	StepReview
)

// Steps lists every step in navigation order.
var Steps = []Step{StepPersonal, StepJob, StepSkills, StepEmergency, StepReview}

// FirstStep and LastStep bound the navigator.
const (
	FirstStep = StepPersonal
	LastStep  = StepReview
)

var stepNames = [...]string{"Personal Info", "Job Details", "Skills & Preferences", "Emergency Contact", "Review & Submit"}
var stepKeys = [...]string{"personal", "job", "skills", "emergency", "review"}

// Valid reports whether s is one of the five steps.
func (s Step) Valid() bool { return s >= FirstStep && s <= LastStep }

func (s Step) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

// Key is the short machine name ("personal", "job", ...).
func (s Step) Key() string {
	if !s.Valid() {
		return ""
	}
	return stepKeys[s]
}

// Number is the 1-based position shown to the user.
func (s Step) Number() int { return int(s) + 1 }

// Next returns the following step, clamped at LastStep.
func (s Step) Next() Step {
	if s >= LastStep {
		return LastStep
	}
	return s + 1
}

// Prev returns the preceding step, clamped at FirstStep.
func (s Step) Prev() Step {
	if s <= FirstStep {
		return FirstStep
	}
	return s - 1
}

// Fields lists the record fields owned by the step, in display order.
func (s Step) Fields() []string {
	switch s {
	case StepPersonal:
		return []string{FieldFullName, FieldEmail, FieldPhoneNumber, FieldDateOfBirth, FieldProfilePicture}
	case StepJob:
		return []string{FieldDepartment, FieldPositionTitle, FieldStartDate, FieldJobType, FieldSalaryExpectation, FieldManager}
	case StepSkills:
		return []string{FieldPrimarySkills, FieldPerSkillExperience, FieldWorkingHoursStart, FieldWorkingHoursEnd, FieldRemoteWorkPreference, FieldManagerApproved, FieldExtraNotes}
	case StepEmergency:
		return []string{FieldEmergencyContactName, FieldEmergencyRelationship, FieldEmergencyPhoneNumber, FieldGuardianName, FieldGuardianPhoneNumber}
	case StepReview:
		return []string{FieldConfirmInformation}
	}
	return nil
}

// ParseStep accepts a step key, a display name or a 1-based number.
func ParseStep(s string) (Step, error) {
	in := strings.TrimSpace(s)
	for _, st := range Steps {
		if strings.EqualFold(in, st.Key()) || strings.EqualFold(in, st.String()) || in == fmt.Sprint(st.Number()) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("onboarding: unknown step %q", s)
}

// StepOf returns the step owning the given field. Experience entries
// ("perSkillExperience/Go") belong to the skills step.
func StepOf(field string) (Step, bool) {
	base, _, _ := strings.Cut(field, "/")
	for _, st := range Steps {
		for _, f := range st.Fields() {
			if f == base {
				return st, true
			}
		}
	}
	return 0, false
}
