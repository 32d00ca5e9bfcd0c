package cv

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// NewID returns a stable opaque identifier for a list entry.
var NewID = uuid.NewString

// AddEntry appends a blank entry to section and returns the new record with the entry id.
func (r Record) AddEntry(section Section) (Record, string, error) {
	if !section.Valid() {
		return r, "", fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	out := r.Clone()
	id := NewID()
	switch section {
	case SectionEducation:
		out.Education = append(out.Education, Education{ID: id})
	case SectionExperience:
		out.Experience = append(out.Experience, Experience{ID: id})
	case SectionSkills:
		out.Skills = append(out.Skills, Skill{ID: id, Level: LevelIntermediate})
	case SectionLanguages:
		out.Languages = append(out.Languages, Language{ID: id, Proficiency: ProficiencyConversational})
	}
	return out, id, nil
}

// UpdateEntry sets the given fields on the entry identified by id.
// Fields are applied in name order; an unknown field or invalid value leaves the record unchanged.
func (r Record) UpdateEntry(section Section, id string, fields map[string]string) (Record, error) {
	out := r.Clone()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var apply func(name, value string) error
	switch section {
	case SectionEducation:
		i := indexOf(out.Education, id, func(e Education) string { return e.ID })
		if i < 0 {
			return r, notFound(section, id)
		}
		apply = out.Education[i].set
	case SectionExperience:
		i := indexOf(out.Experience, id, func(e Experience) string { return e.ID })
		if i < 0 {
			return r, notFound(section, id)
		}
		apply = out.Experience[i].set
	case SectionSkills:
		i := indexOf(out.Skills, id, func(s Skill) string { return s.ID })
		if i < 0 {
			return r, notFound(section, id)
		}
		apply = out.Skills[i].set
	case SectionLanguages:
		i := indexOf(out.Languages, id, func(l Language) string { return l.ID })
		if i < 0 {
			return r, notFound(section, id)
		}
		apply = out.Languages[i].set
	default:
		return r, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}

	for _, name := range names {
		if err := apply(name, fields[name]); err != nil {
			return r, err
		}
	}
	return out, nil
}

// RemoveEntry drops the entry identified by id from section.
func (r Record) RemoveEntry(section Section, id string) (Record, error) {
	out := r.Clone()
	var removed bool
	switch section {
	case SectionEducation:
		out.Education, removed = without(out.Education, id, func(e Education) string { return e.ID })
	case SectionExperience:
		out.Experience, removed = without(out.Experience, id, func(e Experience) string { return e.ID })
	case SectionSkills:
		out.Skills, removed = without(out.Skills, id, func(s Skill) string { return s.ID })
	case SectionLanguages:
		out.Languages, removed = without(out.Languages, id, func(l Language) string { return l.ID })
	default:
		return r, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	if !removed {
		return r, notFound(section, id)
	}
	return out, nil
}

// Reorder rearranges section to follow orderedIDs, which must name every entry exactly once.
func (r Record) Reorder(section Section, orderedIDs []string) (Record, error) {
	out := r.Clone()
	var err error
	switch section {
	case SectionEducation:
		out.Education, err = reorder(out.Education, orderedIDs, func(e Education) string { return e.ID })
	case SectionExperience:
		out.Experience, err = reorder(out.Experience, orderedIDs, func(e Experience) string { return e.ID })
	case SectionSkills:
		out.Skills, err = reorder(out.Skills, orderedIDs, func(s Skill) string { return s.ID })
	case SectionLanguages:
		out.Languages, err = reorder(out.Languages, orderedIDs, func(l Language) string { return l.ID })
	default:
		return r, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	if err != nil {
		return r, err
	}
	return out, nil
}

// PersonalPatch carries the personal-info fields a form submission changed.
// The profile image is not part of it; it only changes through the photo pipeline.
type PersonalPatch struct {
	FullName    *string `json:"fullName"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	LinkedIn    *string `json:"linkedin"`
	Website     *string `json:"website"`
	DateOfBirth *string `json:"dateOfBirth"`
	ShowAge     *bool   `json:"showAge"`
	ShowImage   *bool   `json:"showImage"`
}

// UpdatePersonal applies patch to the personal info.
func (r Record) UpdatePersonal(patch PersonalPatch) Record {
	out := r.Clone()
	p := &out.PersonalInfo
	assign(&p.FullName, patch.FullName)
	assign(&p.Email, patch.Email)
	assign(&p.Phone, patch.Phone)
	assign(&p.Address, patch.Address)
	assign(&p.LinkedIn, patch.LinkedIn)
	assign(&p.Website, patch.Website)
	assign(&p.DateOfBirth, patch.DateOfBirth)
	assign(&p.ShowAge, patch.ShowAge)
	assign(&p.ShowImage, patch.ShowImage)
	return out
}

// SetProfileImage returns a record whose profile image is dataURI, or cleared when nil.
func (r Record) SetProfileImage(dataURI *string) Record {
	out := r.Clone()
	if dataURI == nil {
		out.PersonalInfo.ProfileImage = nil
		return out
	}
	img := *dataURI
	out.PersonalInfo.ProfileImage = &img
	return out
}

func (e *Education) set(field, value string) error {
	switch field {
	case "degree":
		e.Degree = value
	case "institution":
		e.Institution = value
	case "startDate":
		e.StartDate = value
	case "endDate":
		e.EndDate = value
	case "description":
		e.Description = value
	default:
		return fmt.Errorf("%w: education.%s", ErrUnknownField, field)
	}
	return nil
}

func (e *Experience) set(field, value string) error {
	switch field {
	case "jobTitle":
		e.JobTitle = value
	case "company":
		e.Company = value
	case "startDate":
		e.StartDate = value
	case "endDate":
		e.EndDate = value
	case "description":
		e.Description = value
	default:
		return fmt.Errorf("%w: experience.%s", ErrUnknownField, field)
	}
	return nil
}

func (s *Skill) set(field, value string) error {
	switch field {
	case "name":
		s.Name = value
	case "level":
		level := SkillLevel(value)
		if !level.Valid() {
			return fmt.Errorf("%w: skill level %q", ErrInvalidValue, value)
		}
		s.Level = level
	default:
		return fmt.Errorf("%w: skills.%s", ErrUnknownField, field)
	}
	return nil
}

func (l *Language) set(field, value string) error {
	switch field {
	case "name":
		l.Name = value
	case "proficiency":
		p := Proficiency(value)
		if !p.Valid() {
			return fmt.Errorf("%w: proficiency %q", ErrInvalidValue, value)
		}
		l.Proficiency = p
	default:
		return fmt.Errorf("%w: languages.%s", ErrUnknownField, field)
	}
	return nil
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func notFound(section Section, id string) error {
	return fmt.Errorf("%w: %s/%s", ErrEntryNotFound, section, id)
}

func indexOf[T any](items []T, id string, key func(T) string) int {
	for i, item := range items {
		if key(item) == id {
			return i
		}
	}
	return -1
}

func without[T any](items []T, id string, key func(T) string) ([]T, bool) {
	i := indexOf(items, id, key)
	if i < 0 {
		return items, false
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...), true
}

func reorder[T any](items []T, orderedIDs []string, key func(T) string) ([]T, error) {
	if len(orderedIDs) != len(items) {
		return nil, ErrInvalidOrder
	}
	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[key(item)] = item
	}
	out := make([]T, 0, len(items))
	for _, id := range orderedIDs {
		item, ok := byID[id]
		if !ok {
			return nil, ErrInvalidOrder
		}
		delete(byID, id)
		out = append(out, item)
	}
	return out, nil
}
