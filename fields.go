package onboarding

// Field names as used by SetField/GetField, issue paths and JSON payloads.
const (
	FieldFullName       = "fullName"
	FieldEmail          = "email"
	FieldPhoneNumber    = "phoneNumber"
	FieldDateOfBirth    = "dateOfBirth"
	FieldProfilePicture = "profilePicture"

	FieldDepartment        = "department"
	FieldPositionTitle     = "positionTitle"
	FieldStartDate         = "startDate"
	FieldJobType           = "jobType"
	FieldSalaryExpectation = "salaryExpectation"
	FieldManager           = "manager"

	FieldPrimarySkills        = "primarySkills"
	FieldPerSkillExperience   = "perSkillExperience"
	FieldWorkingHoursStart    = "workingHoursStart"
	FieldWorkingHoursEnd      = "workingHoursEnd"
	FieldRemoteWorkPreference = "remoteWorkPreference"
	FieldManagerApproved      = "managerApproved"
	FieldExtraNotes           = "extraNotes"

	FieldEmergencyContactName  = "emergencyContactName"
	FieldEmergencyRelationship = "emergencyRelationship"
	FieldEmergencyPhoneNumber  = "emergencyPhoneNumber"
	FieldGuardianName          = "guardianName"
	FieldGuardianPhoneNumber   = "guardianPhoneNumber"

	FieldConfirmInformation = "confirmInformation"
)

// ExperiencePath returns the field key addressing one experience entry.
func ExperiencePath(skill string) string {
	return NewRef().Root().Field(FieldPerSkillExperience).Field(skill).Pointer()[1:]
}
