// Package schema maps each form step to its validation schema: the field
// validators for the step's own fields plus step-level cross-field rules.
package schema

import (
	"context"
	"strconv"

	onboarding "github.com/reoring/onboarding"
	"github.com/reoring/onboarding/i18n"
	r "github.com/reoring/onboarding/rules"
	v "github.com/reoring/onboarding/validators"
)

// Check is one named rule of a schema.
type Check struct {
	Name string
	Rule r.Rule
}

// Schema is the rule set scoped to one step's fields.
type Schema struct {
	Step   onboarding.Step
	Checks []Check
}

// Result is the outcome of running a step schema.
type Result struct {
	Step   onboarding.Step   `json:"step"`
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
	Issues onboarding.Issues `json:"issues,omitempty"`
}

// Err returns the issues as an error, or nil when the step passed.
func (res Result) Err() error {
	if res.Valid {
		return nil
	}
	return res.Issues
}

var table = map[onboarding.Step]Schema{
	onboarding.StepPersonal: {Step: onboarding.StepPersonal, Checks: []Check{
		{onboarding.FieldFullName, v.FullName()},
		{onboarding.FieldEmail, v.Email()},
		{onboarding.FieldPhoneNumber, v.Phone(onboarding.FieldPhoneNumber, i18n.PhoneRequired)},
		{onboarding.FieldDateOfBirth, v.DateOfBirth()},
		{onboarding.FieldProfilePicture, v.ProfilePicture()},
	}},
	onboarding.StepJob: {Step: onboarding.StepJob, Checks: []Check{
		{onboarding.FieldDepartment, v.Department()},
		{onboarding.FieldPositionTitle, v.PositionTitle()},
		{onboarding.FieldStartDate, v.StartDate()},
		{onboarding.FieldJobType, v.JobType()},
		{onboarding.FieldSalaryExpectation, v.SalaryExpectation()},
		{onboarding.FieldManager, r.Chain(v.Manager(), v.ManagerInDepartment())},
	}},
	onboarding.StepSkills: {Step: onboarding.StepSkills, Checks: []Check{
		{onboarding.FieldPrimarySkills, v.PrimarySkills()},
		{onboarding.FieldPerSkillExperience, v.SkillExperience()},
		{onboarding.FieldWorkingHoursStart, v.WorkingHours(onboarding.FieldWorkingHoursStart, i18n.WorkingStartRequired)},
		{onboarding.FieldWorkingHoursEnd, v.WorkingHours(onboarding.FieldWorkingHoursEnd, i18n.WorkingEndRequired)},
		{onboarding.FieldRemoteWorkPreference, v.RemoteWorkPreference()},
		{onboarding.FieldExtraNotes, v.ExtraNotes()},
	}},
	onboarding.StepEmergency: {Step: onboarding.StepEmergency, Checks: []Check{
		{onboarding.FieldEmergencyContactName, v.EmergencyContactName()},
		{onboarding.FieldEmergencyRelationship, v.EmergencyRelationship()},
		{onboarding.FieldEmergencyPhoneNumber, v.EmergencyPhoneNumber()},
		{onboarding.FieldGuardianName, v.GuardianName()},
		{onboarding.FieldGuardianPhoneNumber, v.GuardianPhoneNumber()},
	}},
	onboarding.StepReview: {Step: onboarding.StepReview, Checks: []Check{
		{onboarding.FieldConfirmInformation, v.ConfirmInformation()},
	}},
}

// For returns the schema of a step.
func For(step onboarding.Step) (Schema, bool) {
	s, ok := table[step]
	return s, ok
}

// Validate runs every check of the schema against the record. Errors are
// computed fresh on each call.
func (s Schema) Validate(ctx context.Context, rec onboarding.FormRecord) Result {
	dc := onboarding.NewDomainCtx(ctx, s.Step)
	var all onboarding.Issues
	for _, c := range s.Checks {
		for _, it := range c.Rule(dc, rec) {
			if it.Rule == "" {
				it.Rule = c.Name
			}
			all = append(all, it)
		}
	}
	return Result{Step: s.Step, Valid: len(all) == 0, Errors: all.FieldErrors(), Issues: all}
}

// ValidateStep runs the schema of one step. Fields of other steps are never
// evaluated. A step outside the five fails with an issue at the root.
func ValidateStep(ctx context.Context, step onboarding.Step, rec onboarding.FormRecord) Result {
	s, ok := For(step)
	if !ok {
		msg := i18n.T(i18n.StepUnknown, map[string]string{"step": strconv.Itoa(int(step))})
		iss := onboarding.Issues{onboarding.NewRef().Root().Issue(onboarding.CodeInvalidEnum, msg, "got", int(step))}
		return Result{Step: step, Valid: false, Errors: iss.FieldErrors(), Issues: iss}
	}
	return s.Validate(ctx, rec)
}

// ValidateAll runs every step schema in navigation order.
func ValidateAll(ctx context.Context, rec onboarding.FormRecord) []Result {
	out := make([]Result, 0, len(onboarding.Steps))
	for _, st := range onboarding.Steps {
		out = append(out, ValidateStep(ctx, st, rec))
	}
	return out
}

// FirstFailure returns the first failing result of ValidateAll.
func FirstFailure(results []Result) (Result, bool) {
	for _, res := range results {
		if !res.Valid {
			return res, true
		}
	}
	return Result{}, false
}
