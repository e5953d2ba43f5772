package schema_test

import (
	"context"
	"testing"
	"time"

	onboarding "github.com/reoring/onboarding"
	"github.com/reoring/onboarding/schema"
)

func vctx() context.Context {
	return onboarding.WithClock(context.Background(), onboarding.FixedClock(time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)))
}

func complete() onboarding.FormRecord {
	rec := onboarding.NewRecord()
	rec.FullName = "Jane Doe"
	rec.Email = "jane@example.com"
	rec.PhoneNumber = "+15551234567"
	rec.DateOfBirth = "1990-05-01"
	rec.Department = "Engineering"
	rec.PositionTitle = "Backend Engineer"
	rec.StartDate = "2026-11-02"
	rec.JobType = onboarding.JobFullTime
	rec.SalaryExpectation = 90000
	rec.Manager = "Bob Smith"
	rec.PrimarySkills = []string{"Go", "Docker", "AWS"}
	rec.PerSkillExperience = map[string]float64{"Go": 5, "Docker": 3, "AWS": 1.5}
	rec.WorkingHoursStart = "08:30"
	rec.WorkingHoursEnd = "17:00"
	rec.RemoteWorkPreference = 40
	rec.EmergencyContactName = "John Doe"
	rec.EmergencyRelationship = onboarding.RelationParent
	rec.EmergencyPhoneNumber = "+15557654321"
	rec.ConfirmInformation = true
	return rec
}

func TestValidateAll_CompleteRecord(t *testing.T) {
	for _, res := range schema.ValidateAll(vctx(), complete()) {
		if !res.Valid {
			t.Fatalf("%s: %v", res.Step, res.Issues)
		}
		if res.Errors == nil {
			t.Fatalf("%s: errors map must be non-nil", res.Step)
		}
	}
}

// A step never reports fields of another step.
func TestValidateStep_ScopedToStep(t *testing.T) {
	rec := onboarding.NewRecord()
	for _, st := range onboarding.Steps {
		res := schema.ValidateStep(vctx(), st, rec)
		if res.Valid {
			t.Fatalf("%s: empty record must fail", st)
		}
		for _, it := range res.Issues {
			owner, ok := onboarding.StepOf(it.Field())
			if !ok || owner != st {
				t.Fatalf("%s reported %s", st, it.Field())
			}
			if it.Rule == "" {
				t.Fatalf("issue without rule name: %+v", it)
			}
		}
	}
}

func TestValidateStep_PersonalExample(t *testing.T) {
	rec := complete()
	rec.FullName = "Jane"
	res := schema.ValidateStep(vctx(), onboarding.StepPersonal, rec)
	if res.Valid || len(res.Errors) != 1 || res.Errors["fullName"] != "Full Name must have at least 2 words" {
		t.Fatalf("result: %+v", res)
	}
	if err := res.Err(); err == nil {
		t.Fatalf("Err must be non-nil for an invalid result")
	}
	rec.FullName = "Jane Doe"
	if res := schema.ValidateStep(vctx(), onboarding.StepPersonal, rec); !res.Valid || res.Err() != nil {
		t.Fatalf("result: %+v", res)
	}
}

func TestValidateStep_JobCrossField(t *testing.T) {
	rec := complete()
	rec.Department = "Finance"
	res := schema.ValidateStep(vctx(), onboarding.StepJob, rec)
	if res.Errors["manager"] != "Manager Bob Smith does not belong to the Finance department" {
		t.Fatalf("manager error: %v", res.Errors)
	}
	rec.Manager = ""
	res = schema.ValidateStep(vctx(), onboarding.StepJob, rec)
	if res.Errors["manager"] != "Manager is required" {
		t.Fatalf("manager error: %v", res.Errors)
	}
}

func TestValidateStep_DepartmentChangeInvalidatesSkills(t *testing.T) {
	rec := complete()
	rec.Department = "Sales"
	res := schema.ValidateStep(vctx(), onboarding.StepSkills, rec)
	if res.Valid {
		t.Fatalf("Engineering skills must not satisfy Sales")
	}
	if res.Errors["primarySkills"] != "Select at least 3 primary skills" {
		t.Fatalf("primarySkills: %v", res.Errors)
	}
	if len(res.Issues.On("primarySkills")) != 4 {
		t.Fatalf("expected minimum plus three not-available issues: %v", res.Issues)
	}
}

func TestValidateStep_GuardianForMinor(t *testing.T) {
	rec := complete()
	rec.DateOfBirth = "2007-06-30"
	res := schema.ValidateStep(vctx(), onboarding.StepEmergency, rec)
	if res.Valid || res.Errors["guardianName"] == "" || res.Errors["guardianPhoneNumber"] == "" {
		t.Fatalf("result: %+v", res)
	}
	rec.GuardianName = "Mary Doe"
	rec.GuardianPhoneNumber = "+15550001111"
	if res := schema.ValidateStep(vctx(), onboarding.StepEmergency, rec); !res.Valid {
		t.Fatalf("result: %+v", res)
	}
}

func TestFirstFailure(t *testing.T) {
	rec := complete()
	rec.ConfirmInformation = false
	rec.EmergencyContactName = ""
	res, ok := schema.FirstFailure(schema.ValidateAll(vctx(), rec))
	if !ok || res.Step != onboarding.StepEmergency {
		t.Fatalf("first failure: %v %v", res.Step, ok)
	}
	if _, ok := schema.FirstFailure(schema.ValidateAll(vctx(), complete())); ok {
		t.Fatalf("complete record must not fail")
	}
}

func TestValidateStep_UnknownStep(t *testing.T) {
	res := schema.ValidateStep(vctx(), onboarding.Step(9), onboarding.NewRecord())
	if res.Valid || len(res.Issues) != 1 || res.Issues[0].Code != onboarding.CodeInvalidEnum {
		t.Fatalf("unknown step must fail: %+v", res)
	}
	if res.Issues[0].Message != "Unknown step 9" || res.Issues[0].Path != "/" {
		t.Fatalf("unknown step issue: %+v", res.Issues[0])
	}
	if _, ok := schema.For(onboarding.Step(-1)); ok {
		t.Fatalf("For(-1) must not resolve")
	}
}
