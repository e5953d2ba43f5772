package session

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	onboarding "github.com/reoring/onboarding"
	"github.com/reoring/onboarding/resolver"
)

// RenderReview writes the read-only summary shown on the review step.
// Guardian lines appear only when filled in; the approval line only when
// the flag is shown.
func RenderReview(w io.Writer, rec onboarding.FormRecord, d resolver.Derived) error {
	var b strings.Builder
	section := func(title string) { fmt.Fprintf(&b, "%s\n", title) }
	line := func(label, value string) { fmt.Fprintf(&b, "  %s: %s\n", label, value) }

	section(onboarding.StepPersonal.String())
	line("Full Name", rec.FullName)
	line("Email", rec.Email)
	line("Phone Number", rec.PhoneNumber)
	line("Date of Birth", rec.DateOfBirth)
	picture := "Not selected"
	if rec.ProfilePicture != nil && rec.ProfilePicture.Name != "" {
		picture = rec.ProfilePicture.Name
	}
	line("Profile Picture", picture)

	section(onboarding.StepJob.String())
	line("Department", rec.Department)
	line("Position Title", rec.PositionTitle)
	line("Start Date", rec.StartDate)
	line("Job Type", string(rec.JobType))
	line("Salary Expectation", strconv.FormatFloat(rec.SalaryExpectation, 'f', -1, 64))
	line("Manager", rec.Manager)

	section(onboarding.StepSkills.String())
	line("Primary Skills", strings.Join(rec.PrimarySkills, ", "))
	for _, s := range d.ValidSkills {
		line("  "+s, strconv.FormatFloat(rec.PerSkillExperience[s], 'f', -1, 64)+" years")
	}
	line("Working Hours", rec.WorkingHoursStart+" - "+rec.WorkingHoursEnd)
	line("Remote Work Preference", strconv.Itoa(rec.RemoteWorkPreference)+"%")
	if d.ShowManagerApproval {
		approved := "No"
		if rec.ManagerApproved != nil && *rec.ManagerApproved {
			approved = "Yes"
		}
		line("Manager Approved", approved)
	}
	notes := rec.ExtraNotes
	if notes == "" {
		notes = "N/A"
	}
	line("Extra Notes", notes)

	section(onboarding.StepEmergency.String())
	line("Contact Name", rec.EmergencyContactName)
	line("Relationship", string(rec.EmergencyRelationship))
	line("Phone Number", rec.EmergencyPhoneNumber)
	if rec.GuardianName != "" {
		line("Guardian Name", rec.GuardianName)
	}
	if rec.GuardianPhoneNumber != "" {
		line("Guardian Phone Number", rec.GuardianPhoneNumber)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
