package onboarding

import (
	"maps"
	"slices"
	"time"
)

// JobType enumerates the employment types offered on the job step.
type JobType string

const (
	JobFullTime JobType = "Full-time"
	JobPartTime JobType = "Part-time"
	JobContract JobType = "Contract"
)

// JobTypes lists the job types in display order.
var JobTypes = []JobType{JobFullTime, JobPartTime, JobContract}

// Valid reports whether j is one of the known job types.
func (j JobType) Valid() bool { return slices.Contains(JobTypes, j) }

// Relationship enumerates the emergency contact relationships.
type Relationship string

const (
	RelationParent  Relationship = "Parent"
	RelationSpouse  Relationship = "Spouse"
	RelationSibling Relationship = "Sibling"
	RelationOther   Relationship = "Other"
)

// Relationships lists the relationships in display order.
var Relationships = []Relationship{RelationParent, RelationSpouse, RelationSibling, RelationOther}

// Valid reports whether r is one of the known relationships.
func (r Relationship) Valid() bool { return slices.Contains(Relationships, r) }

// ProfilePicture is a reference to an uploaded file; the bytes never enter the record.
type ProfilePicture struct {
	Name     string `json:"name" yaml:"name"`
	Size     int64  `json:"size" yaml:"size"`
	MimeType string `json:"mimeType" yaml:"mimeType"`
}

// FormRecord holds every field of every step. Dates are ISO calendar dates
// (YYYY-MM-DD) and working hours are HH:MM, as entered.
type FormRecord struct {
	// Personal
	FullName       string          `json:"fullName" yaml:"fullName"`
	Email          string          `json:"email" yaml:"email"`
	PhoneNumber    string          `json:"phoneNumber" yaml:"phoneNumber"`
	DateOfBirth    string          `json:"dateOfBirth" yaml:"dateOfBirth"`
	ProfilePicture *ProfilePicture `json:"profilePicture,omitempty" yaml:"profilePicture,omitempty"`

	// Job
	Department        string  `json:"department" yaml:"department"`
	PositionTitle     string  `json:"positionTitle" yaml:"positionTitle"`
	StartDate         string  `json:"startDate" yaml:"startDate"`
	JobType           JobType `json:"jobType" yaml:"jobType"`
	SalaryExpectation float64 `json:"salaryExpectation" yaml:"salaryExpectation"`
	Manager           string  `json:"manager" yaml:"manager"`

	// Skills
	PrimarySkills        []string           `json:"primarySkills" yaml:"primarySkills"`
	PerSkillExperience   map[string]float64 `json:"perSkillExperience" yaml:"perSkillExperience"`
	WorkingHoursStart    string             `json:"workingHoursStart" yaml:"workingHoursStart"`
	WorkingHoursEnd      string             `json:"workingHoursEnd" yaml:"workingHoursEnd"`
	RemoteWorkPreference int                `json:"remoteWorkPreference" yaml:"remoteWorkPreference"`
	ManagerApproved      *bool              `json:"managerApproved,omitempty" yaml:"managerApproved,omitempty"`
	ExtraNotes           string             `json:"extraNotes,omitempty" yaml:"extraNotes,omitempty"`

	// Emergency
	EmergencyContactName  string       `json:"emergencyContactName" yaml:"emergencyContactName"`
	EmergencyRelationship Relationship `json:"emergencyRelationship" yaml:"emergencyRelationship"`
	EmergencyPhoneNumber  string       `json:"emergencyPhoneNumber" yaml:"emergencyPhoneNumber"`
	GuardianName          string       `json:"guardianName,omitempty" yaml:"guardianName,omitempty"`
	GuardianPhoneNumber   string       `json:"guardianPhoneNumber,omitempty" yaml:"guardianPhoneNumber,omitempty"`

	// Review
	ConfirmInformation bool `json:"confirmInformation" yaml:"confirmInformation"`
}

// DefaultSalary is the salary the form starts with (the Full-time minimum).
const DefaultSalary = 30000

// NewRecord returns the record a session starts with.
func NewRecord() FormRecord {
	return FormRecord{
		SalaryExpectation:  DefaultSalary,
		PrimarySkills:      []string{},
		PerSkillExperience: map[string]float64{},
	}
}

// Clone returns a deep copy so snapshots never alias the live record.
func (r FormRecord) Clone() FormRecord {
	out := r
	if r.ProfilePicture != nil {
		pp := *r.ProfilePicture
		out.ProfilePicture = &pp
	}
	if r.ManagerApproved != nil {
		b := *r.ManagerApproved
		out.ManagerApproved = &b
	}
	out.PrimarySkills = slices.Clone(r.PrimarySkills)
	out.PerSkillExperience = maps.Clone(r.PerSkillExperience)
	return out
}

// Submission is the finalized, validated record handed to the submission boundary.
type Submission struct {
	ID          string     `json:"id"`
	SubmittedAt time.Time  `json:"submittedAt"`
	Record      FormRecord `json:"record"`
}
