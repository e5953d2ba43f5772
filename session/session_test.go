package session_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	onboarding "github.com/reoring/onboarding"
	"github.com/reoring/onboarding/session"
)

const happyYAML = `
name: happy path
today: "2026-10-19"
actions:
  - {op: set, field: fullName, value: "Jane Doe"}
  - {op: set, field: email, value: "jane@example.com"}
  - {op: set, field: phoneNumber, value: "+15551234567"}
  - {op: set, field: dateOfBirth, value: "1990-05-01"}
  - {op: advance}
  - {op: set, field: department, value: Engineering}
  - {op: set, field: positionTitle, value: "Backend Engineer"}
  - {op: set, field: startDate, value: "2026-11-02"}
  - {op: set, field: jobType, value: Full-time}
  - {op: set, field: salaryExpectation, value: 90000}
  - {op: set, field: manager, value: "Alice Johnson"}
  - {op: advance}
  - {op: set, field: primarySkills, value: [Go, Python, SQL]}
  - {op: set, field: perSkillExperience/Go, value: 4}
  - {op: set, field: perSkillExperience/Python, value: 2}
  - {op: set, field: workingHoursStart, value: "09:00"}
  - {op: set, field: workingHoursEnd, value: "17:30"}
  - {op: set, field: remoteWorkPreference, value: 20}
  - {op: advance}
  - {op: set, field: emergencyContactName, value: "John Doe"}
  - {op: set, field: emergencyRelationship, value: Spouse}
  - {op: set, field: emergencyPhoneNumber, value: "+15557654321"}
  - {op: advance}
  - {op: set, field: confirmInformation, value: true}
  - {op: show}
  - {op: submit}
`

func TestRun_HappyPath(t *testing.T) {
	sc, err := session.ParseScript([]byte(happyYAML), session.FormatYAML)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tr, err := session.NewRunner().Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if failed := tr.Failed(); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
	if tr.Submission == nil {
		t.Fatalf("no submission")
	}
	if got := tr.Submission.Record.PerSkillExperience["SQL"]; got != 0 {
		t.Fatalf("seeded experience for SQL: %v", got)
	}
	if tr.Final != "review" {
		t.Fatalf("final step: %s", tr.Final)
	}
	want := time.Date(2026, 10, 19, 12, 0, 0, 0, time.Local)
	if !tr.Submission.SubmittedAt.Equal(want) {
		t.Fatalf("submittedAt: %v", tr.Submission.SubmittedAt)
	}

	show := tr.Outcomes[len(tr.Outcomes)-2].Output
	for _, s := range []string{"Profile Picture: Not selected", "Extra Notes: N/A", "Primary Skills: Go, Python, SQL", "Remote Work Preference: 20%"} {
		if !strings.Contains(show, s) {
			t.Fatalf("review summary missing %q:\n%s", s, show)
		}
	}
	if strings.Contains(show, "Guardian") || strings.Contains(show, "Manager Approved") {
		t.Fatalf("conditional lines rendered:\n%s", show)
	}
}

func TestRun_RecordsFailures(t *testing.T) {
	sc := session.Script{Today: "2026-10-19", Actions: []session.Action{
		{Op: session.OpSet, Field: "fullName", Value: "Jane"},
		{Op: session.OpAdvance},
		{Op: session.OpSet, Field: "nickname", Value: "JD"},
		{Op: session.OpSubmit},
	}}
	tr, err := session.NewRunner().Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	adv := tr.Outcomes[1]
	if adv.OK || adv.Errors["fullName"] != "Full Name must have at least 2 words" || adv.Step != "personal" {
		t.Fatalf("advance outcome: %+v", adv)
	}
	if tr.Outcomes[2].OK || !strings.Contains(tr.Outcomes[2].Err, "unknown field") {
		t.Fatalf("unknown field outcome: %+v", tr.Outcomes[2])
	}
	if tr.Outcomes[3].OK || tr.Submission != nil {
		t.Fatalf("submit from personal must fail: %+v", tr.Outcomes[3])
	}
}

func TestParseScript_JSON(t *testing.T) {
	data := `{"name":"json","actions":[{"op":"set","field":"remoteWorkPreference","value":75},{"op":"retreat"}]}`
	sc, err := session.ParseScript([]byte(data), session.FormatJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(sc.Actions) != 2 || sc.Actions[0].Value != float64(75) {
		t.Fatalf("actions: %+v", sc.Actions)
	}
}

func TestParseScript_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown op":    "actions:\n  - {op: jump}\n",
		"missing field": "actions:\n  - {op: set, value: x}\n",
		"unknown key":   "actions: []\nspeed: fast\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := session.ParseScript([]byte(src), session.FormatYAML); !errors.Is(err, session.ErrInvalidScript) {
				t.Fatalf("want ErrInvalidScript, got %v", err)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	if session.FormatOf("a/b.JSON") != session.FormatJSON || session.FormatOf("s.yml") != session.FormatYAML {
		t.Fatalf("format detection")
	}
}

func TestRenderReview_ConditionalLines(t *testing.T) {
	runner := session.NewRunner(session.WithClock(onboarding.FixedClock(time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC))))
	st, nav := runner.NewSession(nil)
	ctx := context.Background()
	for _, a := range []session.Action{
		{Op: session.OpSet, Field: "dateOfBirth", Value: "2007-01-01"},
		{Op: session.OpSet, Field: "guardianName", Value: "Mary Doe"},
		{Op: session.OpSet, Field: "remoteWorkPreference", Value: 80},
		{Op: session.OpSet, Field: "managerApproved", Value: true},
		{Op: session.OpSet, Field: "profilePicture", Value: map[string]any{"name": "me.png", "size": 1024, "mimeType": "image/png"}},
		{Op: session.OpSet, Field: "extraNotes", Value: "Prefers mornings"},
	} {
		if o, _ := session.Apply(ctx, nav, a); !o.OK {
			t.Fatalf("%s: %+v", a.Field, o)
		}
	}
	var buf bytes.Buffer
	if err := session.RenderReview(&buf, st.Snapshot(), st.Derived()); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, s := range []string{"Guardian Name: Mary Doe", "Manager Approved: Yes", "Profile Picture: me.png", "Extra Notes: Prefers mornings"} {
		if !strings.Contains(out, s) {
			t.Fatalf("missing %q:\n%s", s, out)
		}
	}
	if strings.Contains(out, "Guardian Phone Number") {
		t.Fatalf("empty guardian phone rendered:\n%s", out)
	}
}

func TestREPL(t *testing.T) {
	runner := session.NewRunner(session.WithClock(onboarding.FixedClock(time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC))))
	_, nav := runner.NewSession(nil)
	in := strings.NewReader(strings.Join([]string{
		"set fullName Jane",
		"next",
		"set fullName Jane Doe",
		"get fullName",
		"status",
		"bogus",
		"quit",
	}, "\n"))
	var out bytes.Buffer
	sub, err := session.NewREPL(nav, in, &out).Run(context.Background())
	if err != nil || sub != nil {
		t.Fatalf("run: sub=%v err=%v", sub, err)
	}
	got := out.String()
	for _, s := range []string{
		"[personal 1/5]> ",
		"  fullName: Full Name must have at least 2 words",
		"fullName = Jane Doe",
		"step 1/5: Personal Info",
		"touched: fullName\n",
		`unknown command "bogus"`,
	} {
		if !strings.Contains(got, s) {
			t.Fatalf("output missing %q:\n%s", s, got)
		}
	}
}

func TestParseValue(t *testing.T) {
	if v := session.ParseValue(`["Go","SQL"]`); len(v.([]any)) != 2 {
		t.Fatalf("list: %v", v)
	}
	if v := session.ParseValue("null"); v != nil {
		t.Fatalf("null: %v", v)
	}
	if v := session.ParseValue(" 2026-11-02 "); v != "2026-11-02" {
		t.Fatalf("text: %v", v)
	}
	if v := session.ParseValue(`"Jane Doe"`); v != "Jane Doe" {
		t.Fatalf("quoted: %v", v)
	}
}

func TestParseRecord(t *testing.T) {
	src := "fullName: Jane Doe\nprimarySkills: [Go, SQL]\nperSkillExperience: {Go: 3}\nremoteWorkPreference: 60\n"
	rec, err := session.ParseRecord([]byte(src), session.FormatYAML)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rec.FullName != "Jane Doe" || rec.PerSkillExperience["Go"] != 3 || rec.SalaryExpectation != onboarding.DefaultSalary {
		t.Fatalf("record: %+v", rec)
	}
	if _, err := session.ParseRecord([]byte("nickname: JD\n"), session.FormatYAML); err == nil {
		t.Fatalf("unknown key must fail")
	}
	rec, err = session.ParseRecord([]byte(`{"email":"jane@example.com","managerApproved":true}`), session.FormatJSON)
	if err != nil || rec.Email != "jane@example.com" || rec.ManagerApproved == nil || !*rec.ManagerApproved {
		t.Fatalf("json record: %+v %v", rec, err)
	}
}

func TestParse_RejectsDuplicateJSONKeys(t *testing.T) {
	_, err := session.ParseScript([]byte(`{"actions":[{"op":"set","field":"email","field":"fullName"}]}`), session.FormatJSON)
	if !errors.Is(err, session.ErrInvalidScript) {
		t.Fatalf("want ErrInvalidScript, got %v", err)
	}
	if iss, ok := onboarding.AsIssues(err); !ok || iss[0].Path != "/actions/0/field" {
		t.Fatalf("duplicate path: %v", err)
	}
	_, err = session.ParseRecord([]byte(`{"email":"a@example.com","email":"b@example.com"}`), session.FormatJSON)
	if iss, ok := onboarding.AsIssues(err); !ok || iss[0].Code != onboarding.CodeDuplicateKey {
		t.Fatalf("record duplicate: %v", err)
	}
}
