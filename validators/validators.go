// Package validators holds one validator per form field. Each is a pure
// function of the record (plus the clock and reference data carried by the
// context) and reports issues attached to the field it checks.
package validators

import (
	"math"
	"net/mail"
	"regexp"
	"slices"
	"strconv"
	"strings"

	onboarding "github.com/reoring/onboarding"
	"github.com/reoring/onboarding/codec"
	"github.com/reoring/onboarding/i18n"
	"github.com/reoring/onboarding/refdata"
	"github.com/reoring/onboarding/resolver"
	r "github.com/reoring/onboarding/rules"
)

// Limits enforced by the validators.
const (
	MinAge              = 18
	MaxPictureBytes     = 2_000_000
	MinPositionTitle    = 3
	MaxStartDateAhead   = 90 // days
	MinPrimarySkills    = 3
	MaxExtraNotes       = 500
	MinRemotePreference = 0
	MaxRemotePreference = 100
)

// PictureMimeTypes are the accepted profile picture formats.
var PictureMimeTypes = []string{"image/jpeg", "image/png"}

// phoneRE is E.164-like: optional '+', then 2-15 digits, first digit nonzero.
var phoneRE = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

type issues = []onboarding.Issue

func one(d onboarding.DomainCtx, field, code, msgID string, data map[string]string, kv ...any) issues {
	return issues{d.Path(field).Issue(code, i18n.T(msgID, data), kv...)}
}

// ---------- Personal ----------

// FullName requires at least two whitespace-separated words.
func FullName() r.Rule {
	return r.Chain(
		r.Required(onboarding.FieldFullName, i18n.FullNameRequired),
		func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
			if n := len(strings.Fields(v.FullName)); n < 2 {
				return one(d, onboarding.FieldFullName, onboarding.CodeTooShort, i18n.FullNameTwoWords, nil, "minWords", 2, "got", n)
			}
			return nil
		},
	)
}

// Email requires a bare RFC 5322 address with a dotted domain.
func Email() r.Rule {
	return r.Chain(
		r.Required(onboarding.FieldEmail, i18n.EmailRequired),
		func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
			if !ValidEmail(v.Email) {
				return one(d, onboarding.FieldEmail, onboarding.CodeInvalidFormat, i18n.EmailInvalid, nil, "format", "email")
			}
			return nil
		},
	)
}

// ValidEmail reports whether s is a plain address such as jane@example.com.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	return at > 0 && strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

// ValidPhone reports whether s matches the E.164-like phone pattern.
func ValidPhone(s string) bool { return phoneRE.MatchString(s) }

// Phone checks a phone number field.
func Phone(field, requiredMsgID string) r.Rule {
	return r.Chain(
		r.Required(field, requiredMsgID),
		r.Matches(field, phoneRE, i18n.PhoneInvalid),
	)
}

// DateOfBirth requires a date at least MinAge years in the past.
func DateOfBirth() r.Rule {
	return r.Chain(
		r.Required(onboarding.FieldDateOfBirth, i18n.DateOfBirthRequired),
		func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
			birth, err := codec.Date().Decode(d.Ctx, v.DateOfBirth)
			if err != nil {
				return one(d, onboarding.FieldDateOfBirth, onboarding.CodeInvalidFormat, i18n.DateInvalid, nil, "format", codec.DateLayout)
			}
			if age := onboarding.AgeAt(birth, onboarding.Today(d.Ctx)); age < MinAge {
				return one(d, onboarding.FieldDateOfBirth, onboarding.CodeDomainRange, i18n.Under18, nil, "min", MinAge, "got", age)
			}
			return nil
		},
	)
}

// ProfilePicture is optional; when present its size and type are checked
// independently.
func ProfilePicture() r.Rule {
	return func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
		pp := v.ProfilePicture
		if pp == nil {
			return nil
		}
		var out issues
		if pp.Size < 0 {
			out = append(out, one(d, onboarding.FieldProfilePicture, onboarding.CodeTooSmall, i18n.PictureSizeInvalid, nil, "min", 0, "got", pp.Size)...)
		}
		if pp.Size > MaxPictureBytes {
			out = append(out, one(d, onboarding.FieldProfilePicture, onboarding.CodeTooBig, i18n.PictureTooLarge, nil, "max", MaxPictureBytes, "got", pp.Size)...)
		}
		if !slices.Contains(PictureMimeTypes, pp.MimeType) {
			out = append(out, one(d, onboarding.FieldProfilePicture, onboarding.CodeInvalidEnum, i18n.PictureType, nil, "got", pp.MimeType)...)
		}
		return out
	}
}

// ---------- Job ----------

// Department requires a known department key.
func Department() r.Rule {
	return r.Chain(
		r.Required(onboarding.FieldDepartment, i18n.DepartmentRequired),
		func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
			if !refdata.From(d.Ctx).HasDepartment(v.Department) {
				return one(d, onboarding.FieldDepartment, onboarding.CodeInvalidEnum, i18n.DepartmentUnknown, nil, "got", v.Department)
			}
			return nil
		},
	)
}

// PositionTitle requires at least MinPositionTitle characters.
func PositionTitle() r.Rule {
	return r.MinLen(onboarding.FieldPositionTitle, MinPositionTitle, i18n.PositionTooShort)
}

// StartDate requires a date between today and today+MaxStartDateAhead days,
// both inclusive, compared as calendar dates.
func StartDate() r.Rule {
	return func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
		today := onboarding.Today(d.Ctx)
		latest := today.AddDate(0, 0, MaxStartDateAhead)
		fail := func() issues {
			return one(d, onboarding.FieldStartDate, onboarding.CodeDomainRange, i18n.StartDateRange, nil,
				"min", today.Format(codec.DateLayout), "max", latest.Format(codec.DateLayout), "got", v.StartDate)
		}
		if strings.TrimSpace(v.StartDate) == "" {
			return fail()
		}
		start, err := codec.Date().Decode(d.Ctx, v.StartDate)
		if err != nil || start.Before(today) || start.After(latest) {
			return fail()
		}
		return nil
	}
}

// JobType requires one of the three job types.
func JobType() r.Rule {
	allowed := make([]string, len(onboarding.JobTypes))
	for i, jt := range onboarding.JobTypes {
		allowed[i] = string(jt)
	}
	return r.Chain(
		r.Required(onboarding.FieldJobType, i18n.JobTypeRequired),
		r.OneOf(onboarding.FieldJobType, allowed, i18n.JobTypeInvalid),
	)
}

// SalaryExpectation must lie within the bounds of the selected job type. It
// is not checked until a valid job type exists.
func SalaryExpectation() r.Rule {
	return func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
		b := resolver.BoundsFor(v.JobType)
		if b.IsZero() {
			return nil
		}
		if math.IsNaN(v.SalaryExpectation) || !b.Contains(v.SalaryExpectation) {
			data := map[string]string{"min": formatNumber(b.Min), "max": formatNumber(b.Max)}
			return one(d, onboarding.FieldSalaryExpectation, onboarding.CodeDomainRange, i18n.SalaryRange, data,
				"min", b.Min, "max", b.Max, "got", v.SalaryExpectation)
		}
		return nil
	}
}

// Manager requires a manager. Directory membership is a step-level rule
// (see ManagerInDepartment) and is enforced at selection time by the store.
func Manager() r.Rule {
	return r.Required(onboarding.FieldManager, i18n.ManagerRequired)
}

// ManagerInDepartment is the job step's cross-field rule: the selected
// manager must belong to the selected department.
func ManagerInDepartment() r.Rule {
	known := r.If("/manager", r.Ne, "").And(r.When(func(d onboarding.DomainCtx, v onboarding.FormRecord) bool {
		return refdata.From(d.Ctx).HasDepartment(v.Department)
	}))
	return known.Then(func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
		if refdata.From(d.Ctx).ManagerInDepartment(v.Manager, v.Department) {
			return nil
		}
		data := map[string]string{"manager": v.Manager, "department": v.Department}
		return one(d, onboarding.FieldManager, onboarding.CodeBusinessRule, i18n.ManagerDepartment, data, "department", v.Department)
	})
}

// ---------- Skills ----------

// PrimarySkills requires MinPrimarySkills distinct skills from the current
// department's catalog. Selections outside the catalog (left over from a
// department change) do not count and are reported.
func PrimarySkills() r.Rule {
	return func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
		valid, invalid := resolver.PartitionSkills(refdata.From(d.Ctx), v.Department, v.PrimarySkills)
		var out issues
		if len(valid) < MinPrimarySkills {
			out = append(out, one(d, onboarding.FieldPrimarySkills, onboarding.CodeTooShort, i18n.SkillsMinimum, nil, "min", MinPrimarySkills, "got", len(valid))...)
		}
		for _, s := range invalid {
			data := map[string]string{"skill": s, "department": v.Department}
			out = append(out, one(d, onboarding.FieldPrimarySkills, onboarding.CodeNotAvailable, i18n.SkillNotAvailable, data, "skill", s)...)
		}
		return out
	}
}

// SkillExperience requires a non-negative number of years for every valid
// selected skill. Entries for deselected skills are ignored.
func SkillExperience() r.Rule {
	return func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
		valid, _ := resolver.PartitionSkills(refdata.From(d.Ctx), v.Department, v.PrimarySkills)
		var out issues
		for _, s := range valid {
			ref := d.Path(onboarding.FieldPerSkillExperience).Field(s)
			years, ok := v.PerSkillExperience[s]
			switch {
			case !ok || math.IsNaN(years):
				out = append(out, ref.Issue(onboarding.CodeRequired, i18n.T(i18n.ExperienceRequired, map[string]string{"skill": s}), "skill", s))
			case years < 0:
				out = append(out, ref.Issue(onboarding.CodeTooSmall, i18n.T(i18n.ExperienceNegative, nil), "min", 0, "got", years))
			}
		}
		return out
	}
}

// WorkingHours requires a time of day in field.
func WorkingHours(field, requiredMsgID string) r.Rule {
	return r.Chain(
		r.Required(field, requiredMsgID),
		func(d onboarding.DomainCtx, v onboarding.FormRecord) []onboarding.Issue {
			s := v.WorkingHoursStart
			if field == onboarding.FieldWorkingHoursEnd {
				s = v.WorkingHoursEnd
			}
			if _, err := codec.TimeOfDay().Decode(d.Ctx, s); err != nil {
				return one(d, field, onboarding.CodeInvalidFormat, i18n.TimeInvalid, nil, "format", "HH:MM")
			}
			return nil
		},
	)
}

// RemoteWorkPreference requires a percentage in [0, 100].
func RemoteWorkPreference() r.Rule {
	return r.IntRange(onboarding.FieldRemoteWorkPreference, MinRemotePreference, MaxRemotePreference, i18n.RemoteRange)
}

// ExtraNotes is optional and limited to MaxExtraNotes characters.
func ExtraNotes() r.Rule {
	return r.MaxLen(onboarding.FieldExtraNotes, MaxExtraNotes, i18n.ExtraNotesTooLong)
}

// ---------- Emergency ----------

// EmergencyContactName requires a name.
func EmergencyContactName() r.Rule {
	return r.Required(onboarding.FieldEmergencyContactName, i18n.ContactNameRequired)
}

// EmergencyRelationship requires one of the four relationships.
func EmergencyRelationship() r.Rule {
	allowed := make([]string, len(onboarding.Relationships))
	for i, rel := range onboarding.Relationships {
		allowed[i] = string(rel)
	}
	return r.OneOf(onboarding.FieldEmergencyRelationship, allowed, i18n.RelationshipRequired)
}

// EmergencyPhoneNumber checks the contact's phone number.
func EmergencyPhoneNumber() r.Rule {
	return Phone(onboarding.FieldEmergencyPhoneNumber, i18n.PhoneRequired)
}

var minor = r.When(func(d onboarding.DomainCtx, v onboarding.FormRecord) bool {
	return resolver.IsMinor(d.Ctx, v)
})

// GuardianName is required only for applicants under 21.
func GuardianName() r.Rule {
	return minor.Then(r.Required(onboarding.FieldGuardianName, i18n.GuardianNameRequired))
}

// GuardianPhoneNumber is required only for applicants under 21.
func GuardianPhoneNumber() r.Rule {
	return minor.Then(Phone(onboarding.FieldGuardianPhoneNumber, i18n.GuardianPhoneRequired))
}

// ---------- Review ----------

// ConfirmInformation requires the confirmation checkbox.
func ConfirmInformation() r.Rule {
	return r.IsTrue(onboarding.FieldConfirmInformation, i18n.ConfirmRequired)
}

func formatNumber(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
