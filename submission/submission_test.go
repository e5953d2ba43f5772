package submission_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	onboarding "github.com/reoring/onboarding"
	"github.com/reoring/onboarding/submission"
)

func validSubmission() onboarding.Submission {
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
	rec.Manager = "Alice Johnson"
	rec.PrimarySkills = []string{"Go", "Python", "SQL"}
	rec.PerSkillExperience = map[string]float64{"Go": 4, "Python": 2.5, "SQL": 6}
	rec.WorkingHoursStart = "09:00"
	rec.WorkingHoursEnd = "17:30"
	rec.RemoteWorkPreference = 20
	rec.EmergencyContactName = "John Doe"
	rec.EmergencyRelationship = onboarding.RelationSpouse
	rec.EmergencyPhoneNumber = "+15557654321"
	rec.ConfirmInformation = true
	return onboarding.Submission{
		ID:          "0f8fad5b-d9cb-469f-a165-70867728950e",
		SubmittedAt: time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC),
		Record:      rec,
	}
}

func TestEncode_Valid(t *testing.T) {
	sub := validSubmission()
	b, err := submission.Encode(context.Background(), sub)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	rec, _ := m["record"].(map[string]any)
	if rec["fullName"] != "Jane Doe" {
		t.Fatalf("record.fullName: %v", rec["fullName"])
	}
	if _, ok := rec["managerApproved"]; ok {
		t.Fatalf("unset managerApproved must be omitted")
	}
}

func TestEncode_ContractViolation(t *testing.T) {
	sub := validSubmission()
	sub.Record.ConfirmInformation = false
	sub.Record.PrimarySkills = []string{"Go"}

	_, err := submission.Encode(context.Background(), sub)
	if !errors.Is(err, submission.ErrContract) {
		t.Fatalf("want ErrContract, got %v", err)
	}
	iss, ok := onboarding.AsIssues(err)
	if !ok || len(iss) < 2 {
		t.Fatalf("want at least two issues, got %v", err)
	}
	for _, it := range iss {
		if it.Rule != "contract" {
			t.Fatalf("issue rule: %+v", it)
		}
	}
}

func TestCheck_RejectsMissingRecord(t *testing.T) {
	err := submission.Check(context.Background(), []byte(`{"id":"0f8fad5b-d9cb-469f-a165-70867728950e","submittedAt":"2026-10-19T09:30:00Z"}`))
	if !errors.Is(err, submission.ErrContract) {
		t.Fatalf("want ErrContract, got %v", err)
	}
}

func TestWriteDecode_RoundTrip(t *testing.T) {
	sub := validSubmission()
	var buf bytes.Buffer
	if err := submission.Write(context.Background(), &buf, sub); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "}\n") || !strings.Contains(buf.String(), "\n  \"record\"") {
		t.Fatalf("payload not indented:\n%s", buf.String())
	}
	got, err := submission.Decode(context.Background(), buf.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != sub.ID || !got.SubmittedAt.Equal(sub.SubmittedAt) || got.Record.PerSkillExperience["Python"] != 2.5 {
		t.Fatalf("decoded: %+v", got)
	}
}

func TestContract_IsJSON(t *testing.T) {
	var m map[string]any
	if err := json.Unmarshal(submission.Contract(), &m); err != nil {
		t.Fatalf("contract: %v", err)
	}
	if m["type"] != "object" {
		t.Fatalf("contract root type: %v", m["type"])
	}
}
