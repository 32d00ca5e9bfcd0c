package render

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvBuilder/internal/cv"
	"cvBuilder/internal/i18n"
)

var now = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func sampleRecord() cv.Record {
	img := "data:image/png;base64,iVBORw0KGgo="
	r := cv.Empty()
	r.PersonalInfo = cv.PersonalInfo{
		FullName:     "Ana Horvat",
		Email:        "ana@example.com",
		DateOfBirth:  "1990-07-01",
		ShowAge:      true,
		Website:      "ana.dev",
		LinkedIn:     "https://",
		ProfileImage: &img,
		ShowImage:    true,
	}
	r.Experience = []cv.Experience{{ID: "x1", JobTitle: "Engineer", Company: "ACME", StartDate: "2020-01-01"}}
	r.Education = []cv.Education{{ID: "e1", Degree: "MSc", Institution: "FER", StartDate: "2012-10-01", EndDate: "2017-07-01"}}
	for i, name := range []string{"Go", "SQL", "Docker", "Redis", "Linux", "gRPC", "Kafka"} {
		r.Skills = append(r.Skills, cv.Skill{ID: string(rune('a' + i)), Name: name, Level: cv.LevelExpert})
	}
	r.Languages = []cv.Language{{ID: "l1", Name: "German", Proficiency: cv.ProficiencyFluent}}
	return r
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestPreviewHTML(t *testing.T) {
	html, err := PreviewHTML(sampleRecord(), i18n.Lookup(i18n.English), now)
	require.NoError(t, err)
	doc := parse(t, html)

	root := doc.Find("#cv-preview")
	require.Equal(t, 1, root.Length())
	assert.Equal(t, "Ana Horvat", root.Find("h1").Text())
	assert.Contains(t, root.Text(), "Age: 33")
	assert.Contains(t, root.Text(), "Jan 2020 - Present")
	assert.Contains(t, root.Text(), "Oct 2012 - Jul 2017")

	links := root.Find(".contact-item a")
	require.Equal(t, 1, links.Length(), "invalid linkedin must be hidden")
	assert.Equal(t, "https://ana.dev", links.AttrOr("href", ""))

	img := root.Find("img.profile-image")
	require.Equal(t, 1, img.Length())
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", img.AttrOr("src", ""))

	cols := root.Find(".cv-section").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find("h2").Text() == "Skills"
	}).Find(".skills-column")
	require.Equal(t, 2, cols.Length())
	assert.Equal(t, []string{"Go", "SQL", "Docker", "Kafka"}, cols.Eq(0).Find(".item-name").Map(func(_ int, s *goquery.Selection) string { return s.Text() }))
	assert.Equal(t, []string{"Redis", "Linux", "gRPC"}, cols.Eq(1).Find(".item-name").Map(func(_ int, s *goquery.Selection) string { return s.Text() }))
	assert.Contains(t, cols.Text(), "(Expert)")
}

func TestPreviewHTMLBlankRecord(t *testing.T) {
	html, err := PreviewHTML(cv.Empty(), i18n.Lookup(i18n.German), now)
	require.NoError(t, err)
	doc := parse(t, html)
	assert.Equal(t, "Ihr Name", doc.Find("#cv-preview h1").Text())
	assert.Equal(t, 0, doc.Find(".cv-section").Length())
	assert.Equal(t, 0, doc.Find("img").Length())
}

func TestPreviewHTMLShowsBirthDateAndHidesPhoto(t *testing.T) {
	r := sampleRecord()
	r.PersonalInfo.ShowAge = false
	r.PersonalInfo.ShowImage = false
	html, err := PreviewHTML(r, i18n.Lookup(i18n.English), now)
	require.NoError(t, err)
	doc := parse(t, html)
	assert.Contains(t, doc.Text(), "Date of Birth: 01.07.1990")
	assert.Equal(t, 0, doc.Find("img.profile-image").Length())
}

func TestApplyPrintStylesIsPure(t *testing.T) {
	doc := parse(t, `<div id="cv-preview" style="padding: 2rem; font-family: serif">
  <h1 style="font-size: 30px; color: red">Name</h1>
  <p style="line-height: 2">text</p>
  <img class="profile-image" src="x" style="width: 64px; height: 64px">
</div>`)
	root := doc.Find("#cv-preview")
	before, _ := goquery.OuterHtml(root)

	styled := ApplyPrintStyles(root)

	after, _ := goquery.OuterHtml(root)
	assert.Equal(t, before, after, "input tree must not change")

	v, _ := StyleOf(styled, "font-size")
	assert.Equal(t, "16px", v)
	v, _ = StyleOf(styled, "padding")
	assert.Equal(t, "0", v)
	v, _ = StyleOf(styled, "font-family")
	assert.Equal(t, "serif", v)

	h1 := styled.Find("h1")
	_, has := StyleOf(h1, "font-size")
	assert.False(t, has)
	v, _ = StyleOf(h1, "color")
	assert.Equal(t, "red", v)

	_, hasStyle := styled.Find("p").Attr("style")
	assert.False(t, hasStyle)

	img := styled.Find("img.profile-image")
	for name, want := range map[string]string{
		"width": "125px", "height": "125px", "border-radius": "50%", "border-width": "2px",
		"border-style": "solid", "border-color": "#2563eb", "object-fit": "cover",
		"aspect-ratio": "1/1", "box-sizing": "border-box", "display": "block",
	} {
		got, _ := StyleOf(img, name)
		assert.Equal(t, want, got, name)
	}
}

func TestInlineStyleKeepsSemicolonsInsideURL(t *testing.T) {
	const bg = "url(data:image/png;base64,AAAA)"
	st := parseInlineStyle(`background-image: ` + bg + `; color: red; font-family: "A;B", serif`)

	v, ok := st.get("background-image")
	require.True(t, ok)
	assert.Equal(t, bg, v)
	v, _ = st.get("color")
	assert.Equal(t, "red", v)
	v, _ = st.get("font-family")
	assert.Equal(t, `"A;B", serif`, v)
	assert.Len(t, st, 3)

	doc := parse(t, `<div id="cv-preview" style="background-image: `+bg+`; color: red"><p>x</p></div>`)
	styled := ApplyPrintStyles(doc.Find("#cv-preview"))
	v, _ = StyleOf(styled, "background-image")
	assert.Equal(t, bg, v)
}

func TestBuildPrintDocument(t *testing.T) {
	preview, err := PreviewHTML(sampleRecord(), i18n.Lookup(i18n.English), now)
	require.NoError(t, err)

	out, err := BuildPrintDocument(preview, DefaultPrintSpec())
	require.NoError(t, err)
	doc := parse(t, out)

	container := doc.Find("body > #print-container")
	require.Equal(t, 1, container.Length())
	for name, want := range map[string]string{
		"width": "210mm", "height": "297mm", "padding": "10mm",
		"font-size": "12px", "line-height": "1.4", "background-color": "#ffffff",
	} {
		got, _ := StyleOf(container, name)
		assert.Equal(t, want, got, name)
	}
	assert.Equal(t, 1, container.Children().Filter("#cv-preview").Length())
	assert.Equal(t, 1, doc.Find("#cv-preview").Length(), "original preview must be replaced, not duplicated")
	assert.Equal(t, 1, doc.Find("head style").Length())
}

func TestBuildPrintDocumentWithoutRoot(t *testing.T) {
	_, err := BuildPrintDocument("<html><body><p>nothing</p></body></html>", DefaultPrintSpec())
	assert.ErrorIs(t, err, ErrMissingPreviewRoot)
}

func TestEffectiveScale(t *testing.T) {
	assert.Equal(t, 2.0, PrintSpec{Scale: 1}.EffectiveScale())
	assert.Equal(t, 3.0, PrintSpec{Scale: 3}.EffectiveScale())
}
