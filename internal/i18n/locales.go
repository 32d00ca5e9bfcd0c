package i18n

import (
	"golang.org/x/text/language"

	"cvBuilder/internal/cv"
)

// Locale 是受支持的界面语言代码。
type Locale string

const (
	German   Locale = "de"
	English  Locale = "en"
	Spanish  Locale = "es"
	Croatian Locale = "hr"
)

// DefaultLocale is used whenever negotiation finds nothing better.
const DefaultLocale = English

// Locales lists the supported locales in picker order.
var Locales = []Locale{German, English, Spanish, Croatian}

// DisplayName is the name shown in the language picker.
func (l Locale) DisplayName() string {
	switch l {
	case German:
		return "Deutsch"
	case English:
		return "English"
	case Spanish:
		return "Español"
	case Croatian:
		return "Hrvatski/Srpski/Bosanski"
	}
	return string(l)
}

// Translator resolves keys for one locale.
type Translator struct {
	locale Locale
	texts  map[Key]string
}

// Lookup returns the translator for locale, falling back to English for unknown codes.
func Lookup(locale Locale) Translator {
	texts, ok := catalog[locale]
	if !ok {
		return Translator{locale: DefaultLocale, texts: catalog[DefaultLocale]}
	}
	return Translator{locale: locale, texts: texts}
}

func (t Translator) Locale() Locale { return t.locale }

// T returns the label for key, or the key itself when the locale lacks it.
func (t Translator) T(key Key) string {
	if s, ok := t.texts[key]; ok {
		return s
	}
	if s, ok := catalog[DefaultLocale][key]; ok {
		return s
	}
	return string(key)
}

func (t Translator) LevelLabel(l cv.SkillLevel) string {
	if k := LevelKey(l); k != "" {
		return t.T(k)
	}
	return string(l)
}

func (t Translator) ProficiencyLabel(p cv.Proficiency) string {
	if k := ProficiencyKey(p); k != "" {
		return t.T(k)
	}
	return string(p)
}

var matcher = language.NewMatcher([]language.Tag{
	language.English, // 首项即默认
	language.German,
	language.Spanish,
	language.Croatian,
	language.Serbian,
	language.MustParse("bs"),
})

var matched = []Locale{English, German, Spanish, Croatian, Croatian, Croatian}

// Negotiate picks a locale from an explicit choice (e.g. ?lang=) and then the Accept-Language header.
func Negotiate(explicit, acceptLanguage string) Locale {
	if _, ok := catalog[Locale(explicit)]; ok {
		return Locale(explicit)
	}
	var tags []language.Tag
	if tag, err := language.Parse(explicit); err == nil {
		tags = append(tags, tag)
	}
	if accepted, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
		tags = append(tags, accepted...)
	}
	if len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(matched) {
		return DefaultLocale
	}
	return matched[idx]
}
