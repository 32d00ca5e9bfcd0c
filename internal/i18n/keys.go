// Package i18n provides the editor and preview labels in every supported locale.
package i18n

import "cvBuilder/internal/cv"

// Key 是界面文案的固定键集合。
type Key string

const (
	KeyCVBuilder           Key = "cvBuilder"
	KeyPersonalInformation Key = "personalInformation"
	KeyFullName            Key = "fullName"
	KeyEmail               Key = "email"
	KeyPhone               Key = "phone"
	KeyAddress             Key = "address"
	KeyLinkedIn            Key = "linkedin"
	KeyWebsite             Key = "website"
	KeyDateOfBirth         Key = "dateOfBirth"
	KeyShowAge             Key = "showAge"
	KeyShowImage           Key = "showImage"
	KeyUploadImage         Key = "uploadImage"
	KeyAge                 Key = "age"
	KeyEducation           Key = "education"
	KeyDegree              Key = "degree"
	KeyInstitution         Key = "institution"
	KeyStartDate           Key = "startDate"
	KeyEndDate             Key = "endDate"
	KeyDescription         Key = "description"
	KeyWorkExperience      Key = "workExperience"
	KeyJobTitle            Key = "jobTitle"
	KeyCompany             Key = "company"
	KeyPresent             Key = "present"
	KeySkills              Key = "skills"
	KeySkillName           Key = "skillName"
	KeyLevel               Key = "level"
	KeyLanguages           Key = "languages"
	KeyLanguageName        Key = "languageName"
	KeyProficiency         Key = "proficiency"
	KeyAddEducation        Key = "addEducation"
	KeyAddExperience       Key = "addExperience"
	KeyAddSkill            Key = "addSkill"
	KeyAddLanguage         Key = "addLanguage"
	KeyLoad                Key = "load"
	KeySave                Key = "save"
	KeyDownload            Key = "download"
	KeyBeginner            Key = "beginner"
	KeyIntermediate        Key = "intermediate"
	KeyAdvanced            Key = "advanced"
	KeyExpert              Key = "expert"
	KeyBasic               Key = "basic"
	KeyConversational      Key = "conversational"
	KeyFluent              Key = "fluent"
	KeyNative              Key = "native"
	KeyYourName            Key = "yourName"
)

// Keys lists every key; each locale must translate all of them.
var Keys = []Key{
	KeyCVBuilder, KeyPersonalInformation, KeyFullName, KeyEmail, KeyPhone, KeyAddress,
	KeyLinkedIn, KeyWebsite, KeyDateOfBirth, KeyShowAge, KeyShowImage, KeyUploadImage, KeyAge,
	KeyEducation, KeyDegree, KeyInstitution, KeyStartDate, KeyEndDate, KeyDescription,
	KeyWorkExperience, KeyJobTitle, KeyCompany, KeyPresent,
	KeySkills, KeySkillName, KeyLevel, KeyLanguages, KeyLanguageName, KeyProficiency,
	KeyAddEducation, KeyAddExperience, KeyAddSkill, KeyAddLanguage,
	KeyLoad, KeySave, KeyDownload,
	KeyBeginner, KeyIntermediate, KeyAdvanced, KeyExpert,
	KeyBasic, KeyConversational, KeyFluent, KeyNative,
	KeyYourName,
}

// LevelKey maps a skill level to its label key.
func LevelKey(l cv.SkillLevel) Key {
	switch l {
	case cv.LevelBeginner:
		return KeyBeginner
	case cv.LevelIntermediate:
		return KeyIntermediate
	case cv.LevelAdvanced:
		return KeyAdvanced
	case cv.LevelExpert:
		return KeyExpert
	}
	return ""
}

// ProficiencyKey maps a language proficiency to its label key.
func ProficiencyKey(p cv.Proficiency) Key {
	switch p {
	case cv.ProficiencyBasic:
		return KeyBasic
	case cv.ProficiencyConversational:
		return KeyConversational
	case cv.ProficiencyFluent:
		return KeyFluent
	case cv.ProficiencyNative:
		return KeyNative
	}
	return ""
}
