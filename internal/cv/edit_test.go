package cv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withIDs(t *testing.T, ids ...string) {
	t.Helper()
	orig := NewID
	i := 0
	NewID = func() string {
		id := ids[i]
		i++
		return id
	}
	t.Cleanup(func() { NewID = orig })
}

func TestAddEntryDefaults(t *testing.T) {
	withIDs(t, "s1", "l1", "e1")
	r := Empty()

	r, id, err := r.AddEntry(SectionSkills)
	require.NoError(t, err)
	assert.Equal(t, "s1", id)
	assert.Equal(t, LevelIntermediate, r.Skills[0].Level)

	r, _, err = r.AddEntry(SectionLanguages)
	require.NoError(t, err)
	assert.Equal(t, ProficiencyConversational, r.Languages[0].Proficiency)

	r, _, err = r.AddEntry(SectionEducation)
	require.NoError(t, err)
	assert.Len(t, r.Education, 1)

	_, _, err = r.AddEntry(Section("hobbies"))
	assert.True(t, errors.Is(err, ErrUnknownSection))
}

func TestAddEntryUnknownSectionMintsNoID(t *testing.T) {
	calls := 0
	orig := NewID
	NewID = func() string {
		calls++
		return "unused"
	}
	t.Cleanup(func() { NewID = orig })

	before := Empty()
	after, id, err := before.AddEntry(Section("hobbies"))
	require.ErrorIs(t, err, ErrUnknownSection)
	assert.Empty(t, id)
	assert.Equal(t, 0, calls)
	assert.Equal(t, before, after)
}

func TestAddEntryDoesNotMutateReceiver(t *testing.T) {
	withIDs(t, "x1")
	before := Empty()
	after, _, err := before.AddEntry(SectionExperience)
	require.NoError(t, err)
	assert.Empty(t, before.Experience)
	assert.Len(t, after.Experience, 1)
}

func TestUpdateEntry(t *testing.T) {
	r := Empty()
	r.Skills = []Skill{{ID: "s1", Name: "Go", Level: LevelIntermediate}}
	r.Experience = []Experience{{ID: "x1"}}

	updated, err := r.UpdateEntry(SectionSkills, "s1", map[string]string{"name": "Rust", "level": "expert"})
	require.NoError(t, err)
	assert.Equal(t, Skill{ID: "s1", Name: "Rust", Level: LevelExpert}, updated.Skills[0])
	assert.Equal(t, "Go", r.Skills[0].Name)

	updated, err = updated.UpdateEntry(SectionExperience, "x1", map[string]string{"jobTitle": "Engineer", "company": "ACME"})
	require.NoError(t, err)
	assert.Equal(t, "Engineer", updated.Experience[0].JobTitle)
	assert.Equal(t, "ACME", updated.Experience[0].Company)

	_, err = r.UpdateEntry(SectionSkills, "s1", map[string]string{"level": "guru"})
	assert.True(t, errors.Is(err, ErrInvalidValue))

	_, err = r.UpdateEntry(SectionSkills, "s1", map[string]string{"color": "red"})
	assert.True(t, errors.Is(err, ErrUnknownField))

	_, err = r.UpdateEntry(SectionSkills, "missing", map[string]string{"name": "x"})
	assert.True(t, errors.Is(err, ErrEntryNotFound))
}

func TestUpdateEntryIsAllOrNothing(t *testing.T) {
	r := Empty()
	r.Languages = []Language{{ID: "l1", Name: "German", Proficiency: ProficiencyBasic}}

	got, err := r.UpdateEntry(SectionLanguages, "l1", map[string]string{"name": "French", "proficiency": "bad"})
	require.Error(t, err)
	assert.Equal(t, "German", got.Languages[0].Name)
}

func TestRemoveEntry(t *testing.T) {
	r := Empty()
	r.Education = []Education{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	got, err := r.RemoveEntry(SectionEducation, "b")
	require.NoError(t, err)
	assert.Equal(t, []Education{{ID: "a"}, {ID: "c"}}, got.Education)
	assert.Len(t, r.Education, 3)

	_, err = got.RemoveEntry(SectionEducation, "b")
	assert.True(t, errors.Is(err, ErrEntryNotFound))
}

func TestReorder(t *testing.T) {
	r := Empty()
	r.Skills = []Skill{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	got, err := r.Reorder(SectionSkills, []string{"c", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []Skill{{ID: "c"}, {ID: "a"}, {ID: "b"}}, got.Skills)

	for _, ids := range [][]string{{"a", "b"}, {"a", "a", "b"}, {"a", "b", "z"}} {
		_, err := r.Reorder(SectionSkills, ids)
		assert.True(t, errors.Is(err, ErrInvalidOrder), "ids %v", ids)
	}
}

func TestUpdatePersonalAndProfileImage(t *testing.T) {
	name := "Ana Horvat"
	show := true
	r := Empty().UpdatePersonal(PersonalPatch{FullName: &name, ShowAge: &show})
	assert.Equal(t, "Ana Horvat", r.PersonalInfo.FullName)
	assert.True(t, r.PersonalInfo.ShowAge)
	assert.False(t, r.PersonalInfo.ShowImage)

	img := "data:image/png;base64,AAAA"
	withImg := r.SetProfileImage(&img)
	require.NotNil(t, withImg.PersonalInfo.ProfileImage)
	assert.Equal(t, img, *withImg.PersonalInfo.ProfileImage)
	assert.Nil(t, r.PersonalInfo.ProfileImage)

	cleared := withImg.SetProfileImage(nil)
	assert.Nil(t, cleared.PersonalInfo.ProfileImage)
}

func TestParseSection(t *testing.T) {
	s, err := ParseSection("languages")
	require.NoError(t, err)
	assert.Equal(t, SectionLanguages, s)

	_, err = ParseSection("personal")
	assert.True(t, errors.Is(err, ErrUnknownSection))
}
