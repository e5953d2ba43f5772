package i18n

// Message ids.
const (
	FullNameRequired = "fullName.required"
	FullNameTwoWords = "fullName.twoWords"

	EmailRequired = "email.required"
	EmailInvalid  = "email.invalid"

	PhoneRequired = "phone.required"
	PhoneInvalid  = "phone.invalid"

	DateOfBirthRequired = "dateOfBirth.required"
	DateInvalid         = "date.invalid"
	Under18             = "dateOfBirth.under18"

	PictureTooLarge    = "profilePicture.tooLarge"
	PictureType        = "profilePicture.type"
	PictureSizeInvalid = "profilePicture.sizeInvalid"

	DepartmentRequired = "department.required"
	DepartmentUnknown  = "department.unknown"
	PositionTooShort   = "positionTitle.tooShort"
	StartDateRange     = "startDate.range"
	JobTypeRequired    = "jobType.required"
	JobTypeInvalid     = "jobType.invalid"
	SalaryRange        = "salaryExpectation.range"
	ManagerRequired    = "manager.required"
	ManagerDepartment  = "manager.department"
	ManagerUnknown     = "manager.unknown"

	SkillsMinimum         = "primarySkills.minimum"
	SkillNotAvailable     = "primarySkills.notAvailable"
	ExperienceRequired    = "perSkillExperience.required"
	ExperienceNegative    = "perSkillExperience.negative"
	WorkingStartRequired  = "workingHoursStart.required"
	WorkingEndRequired    = "workingHoursEnd.required"
	TimeInvalid           = "time.invalid"
	RemoteRange           = "remoteWorkPreference.range"
	ExtraNotesTooLong     = "extraNotes.tooLong"
	ContactNameRequired   = "emergencyContactName.required"
	RelationshipRequired  = "emergencyRelationship.required"
	GuardianNameRequired  = "guardianName.required"
	GuardianPhoneRequired = "guardianPhoneNumber.required"
	ConfirmRequired       = "confirmInformation.required"

	InvalidType  = "invalid_type"
	DuplicateKey = "duplicate_key"
	StepUnknown  = "step.unknown"
)

var messagesEN = map[string]string{
	FullNameRequired:      "Full Name is required",
	FullNameTwoWords:      "Full Name must have at least 2 words",
	EmailRequired:         "Email is required",
	EmailInvalid:          "Invalid email address",
	PhoneRequired:         "Phone Number is required",
	PhoneInvalid:          "Invalid phone number format",
	DateOfBirthRequired:   "Date of Birth is required",
	DateInvalid:           "Invalid date",
	Under18:               "You must be at least 18 years old",
	PictureTooLarge:       "Max file size is 2MB.",
	PictureType:           "Only .jpg, .jpeg, and .png formats are supported.",
	PictureSizeInvalid:    "Invalid file size",
	DepartmentRequired:    "Department is required",
	DepartmentUnknown:     "Unknown department",
	PositionTooShort:      "Position Title must be at least 3 characters",
	StartDateRange:        "Start Date must be within 90 days from today and not in the past",
	JobTypeRequired:       "Job Type is required",
	JobTypeInvalid:        "Job Type must be one of Full-time, Part-time, Contract",
	SalaryRange:           "Salary Expectation must be between {min} and {max}",
	ManagerRequired:       "Manager is required",
	ManagerDepartment:     "Manager {manager} does not belong to the {department} department",
	ManagerUnknown:        "Unknown manager {manager}",
	SkillsMinimum:         "Select at least 3 primary skills",
	SkillNotAvailable:     "Skill {skill} is not available for the {department} department",
	ExperienceRequired:    "Years of experience for {skill} is required",
	ExperienceNegative:    "Years of experience cannot be negative",
	WorkingStartRequired:  "Working hours start is required",
	WorkingEndRequired:    "Working hours end is required",
	TimeInvalid:           "Invalid time format",
	RemoteRange:           "Remote Work Preference must be between 0 and 100",
	ExtraNotesTooLong:     "Extra Notes must be at most 500 characters",
	ContactNameRequired:   "Contact Name is required",
	RelationshipRequired:  "Relationship is required",
	GuardianNameRequired:  "Guardian Name is required for applicants under 21",
	GuardianPhoneRequired: "Guardian Phone Number is required for applicants under 21",
	ConfirmRequired:       "You must confirm that the information is correct",
	InvalidType:           "invalid type",
	DuplicateKey:          "Duplicate key {key}",
	StepUnknown:           "Unknown step {step}",
}

var messagesJA = map[string]string{
	FullNameRequired:      "氏名は必須です",
	FullNameTwoWords:      "氏名は2語以上で入力してください",
	EmailRequired:         "メールアドレスは必須です",
	EmailInvalid:          "メールアドレスが不正です",
	PhoneRequired:         "電話番号は必須です",
	PhoneInvalid:          "電話番号の形式が不正です",
	DateOfBirthRequired:   "生年月日は必須です",
	DateInvalid:           "日付が不正です",
	Under18:               "18歳以上である必要があります",
	PictureTooLarge:       "ファイルサイズの上限は2MBです",
	PictureType:           ".jpg、.jpeg、.png 形式のみ対応しています",
	PictureSizeInvalid:    "ファイルサイズが不正です",
	DepartmentRequired:    "部署は必須です",
	DepartmentUnknown:     "未知の部署です",
	PositionTooShort:      "役職名は3文字以上で入力してください",
	StartDateRange:        "入社日は本日から90日以内で指定してください",
	JobTypeRequired:       "雇用形態は必須です",
	JobTypeInvalid:        "雇用形態は Full-time、Part-time、Contract のいずれかです",
	SalaryRange:           "希望給与は {min} から {max} の範囲で指定してください",
	ManagerRequired:       "マネージャーは必須です",
	ManagerDepartment:     "{manager} は {department} 部署のマネージャーではありません",
	ManagerUnknown:        "未知のマネージャーです: {manager}",
	SkillsMinimum:         "主要スキルを3つ以上選択してください",
	SkillNotAvailable:     "スキル {skill} は {department} 部署では選択できません",
	ExperienceRequired:    "{skill} の経験年数は必須です",
	ExperienceNegative:    "経験年数に負の値は指定できません",
	WorkingStartRequired:  "勤務開始時刻は必須です",
	WorkingEndRequired:    "勤務終了時刻は必須です",
	TimeInvalid:           "時刻の形式が不正です",
	RemoteRange:           "リモート勤務希望は0から100の範囲です",
	ExtraNotesTooLong:     "備考は500文字以内で入力してください",
	ContactNameRequired:   "緊急連絡先の氏名は必須です",
	RelationshipRequired:  "続柄は必須です",
	GuardianNameRequired:  "21歳未満の場合、保護者氏名は必須です",
	GuardianPhoneRequired: "21歳未満の場合、保護者の電話番号は必須です",
	ConfirmRequired:       "入力内容の確認が必要です",
	InvalidType:           "型が不正です",
	DuplicateKey:          "キー {key} が重複しています",
	StepUnknown:           "不明なステップです: {step}",
}
