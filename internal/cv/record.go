// Package cv holds the CV record aggregate and the pure operations the editor applies to it.
package cv

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSection = errors.New("unknown section")
	ErrEntryNotFound  = errors.New("entry not found")
	ErrUnknownField   = errors.New("unknown field")
	ErrInvalidValue   = errors.New("invalid value")
	ErrInvalidOrder   = errors.New("order must be a permutation of the existing entry ids")
)

// Record 是简历聚合根，JSON 字段名与持久化格式保持一致。
type Record struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Education    []Education  `json:"education"`
	Experience   []Experience `json:"experience"`
	Skills       []Skill      `json:"skills"`
	Languages    []Language   `json:"languages"`
}

// PersonalInfo 描述简历头部的个人信息。
type PersonalInfo struct {
	FullName     string  `json:"fullName"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address"`
	LinkedIn     string  `json:"linkedin"`
	Website      string  `json:"website"`
	DateOfBirth  string  `json:"dateOfBirth"`
	ShowAge      bool    `json:"showAge"`
	ProfileImage *string `json:"profileImage"`
	ShowImage    bool    `json:"showImage"`
}

type Education struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Experience struct {
	ID          string `json:"id"`
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Skill struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

type Language struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Proficiency Proficiency `json:"proficiency"`
}

// SkillLevel 是技能熟练度的固定取值。
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

// SkillLevels lists the levels in the order the form offers them.
var SkillLevels = []SkillLevel{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

func (l SkillLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return true
	}
	return false
}

// Proficiency 是语言能力的固定取值。
type Proficiency string

const (
	ProficiencyBasic          Proficiency = "basic"
	ProficiencyConversational Proficiency = "conversational"
	ProficiencyFluent         Proficiency = "fluent"
	ProficiencyNative         Proficiency = "native"
)

// Proficiencies lists the proficiencies in the order the form offers them.
var Proficiencies = []Proficiency{ProficiencyBasic, ProficiencyConversational, ProficiencyFluent, ProficiencyNative}

func (p Proficiency) Valid() bool {
	switch p {
	case ProficiencyBasic, ProficiencyConversational, ProficiencyFluent, ProficiencyNative:
		return true
	}
	return false
}

// Section names one of the ordered lists of the record.
type Section string

const (
	SectionEducation  Section = "education"
	SectionExperience Section = "experience"
	SectionSkills     Section = "skills"
	SectionLanguages  Section = "languages"
)

// ParseSection maps a route segment to a Section.
func ParseSection(raw string) (Section, error) {
	if s := Section(raw); s.Valid() {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, raw)
}

// Valid reports whether s names one of the four entry lists.
func (s Section) Valid() bool {
	switch s {
	case SectionEducation, SectionExperience, SectionSkills, SectionLanguages:
		return true
	}
	return false
}

// Empty returns a record with no entries, as a fresh editing session starts with.
func Empty() Record {
	return Record{
		Education:  []Education{},
		Experience: []Experience{},
		Skills:     []Skill{},
		Languages:  []Language{},
	}
}

// Clone returns a deep copy so callers can derive a new record without touching the original.
func (r Record) Clone() Record {
	out := r
	if r.PersonalInfo.ProfileImage != nil {
		img := *r.PersonalInfo.ProfileImage
		out.PersonalInfo.ProfileImage = &img
	}
	out.Education = cloneSlice(r.Education)
	out.Experience = cloneSlice(r.Experience)
	out.Skills = cloneSlice(r.Skills)
	out.Languages = cloneSlice(r.Languages)
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
