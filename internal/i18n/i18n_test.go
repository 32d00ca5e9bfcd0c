package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cvBuilder/internal/cv"
)

func TestEveryLocaleTranslatesEveryKey(t *testing.T) {
	for _, loc := range Locales {
		texts := catalog[loc]
		for _, k := range Keys {
			if texts[k] == "" {
				t.Fatalf("locale %s is missing %s", loc, k)
			}
		}
		assert.Len(t, texts, len(Keys), "locale %s has keys outside Keys", loc)
	}
}

func TestLabelsAreExhaustive(t *testing.T) {
	tr := Lookup(German)
	for _, l := range cv.SkillLevels {
		assert.NotEqual(t, string(l), tr.LevelLabel(l))
	}
	for _, p := range cv.Proficiencies {
		assert.NotEqual(t, string(p), tr.ProficiencyLabel(p))
	}
	assert.Equal(t, "Fließend", tr.ProficiencyLabel(cv.ProficiencyFluent))
	assert.Equal(t, "guru", tr.LevelLabel(cv.SkillLevel("guru")))
}

func TestLookupFallsBackToEnglish(t *testing.T) {
	tr := Lookup(Locale("fr"))
	assert.Equal(t, English, tr.Locale())
	assert.Equal(t, "Present", tr.T(KeyPresent))
	assert.Equal(t, "mystery", tr.T(Key("mystery")))
}

func TestNegotiate(t *testing.T) {
	cases := []struct {
		explicit, accept string
		want             Locale
	}{
		{"de", "", German},
		{"hr", "es-ES", Croatian},
		{"", "es-MX,es;q=0.9,en;q=0.5", Spanish},
		{"", "de-AT", German},
		{"", "bs-BA", Croatian},
		{"", "", English},
		{"", "ja-JP", English},
		{"xx", "de", German},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Negotiate(tc.explicit, tc.accept), "explicit=%q accept=%q", tc.explicit, tc.accept)
	}
}
