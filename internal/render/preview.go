// Package render produces the CV preview markup and turns it into a page-sized raster.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"cvBuilder/internal/cv"
	"cvBuilder/internal/i18n"
)

var previewTmpl = template.Must(template.New("preview").Parse(previewTemplate))

type link struct {
	Href string
	Text string
}

type entryView struct {
	Title       string
	Org         string
	Dates       string
	Description string
}

type itemView struct {
	Name  string
	Label string
}

type previewData struct {
	tr         i18n.Translator
	Lang       string
	Name       string
	Personal   cv.PersonalInfo
	Age        string
	BirthDate  string
	Website    *link
	LinkedIn   *link
	Photo      template.URL
	Experience []entryView
	Education  []entryView
	Skills     [][]itemView
	Languages  [][]itemView
}

func (d previewData) T(key string) string {
	return d.tr.T(i18n.Key(key))
}

// PreviewHTML renders the live preview document for record.
func PreviewHTML(record cv.Record, tr i18n.Translator, now time.Time) (string, error) {
	var buf bytes.Buffer
	if err := previewTmpl.Execute(&buf, newPreviewData(record, tr, now)); err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	return buf.String(), nil
}

func newPreviewData(record cv.Record, tr i18n.Translator, now time.Time) previewData {
	p := record.PersonalInfo
	d := previewData{
		tr:       tr,
		Lang:     string(tr.Locale()),
		Name:     p.FullName,
		Personal: p,
	}
	if strings.TrimSpace(d.Name) == "" {
		d.Name = tr.T(i18n.KeyYourName)
	}
	if p.DateOfBirth != "" {
		d.Age = strconv.Itoa(cv.Age(p.DateOfBirth, now))
		d.BirthDate = formatDay(p.DateOfBirth)
	}
	if cv.IsValidURL(p.Website) {
		d.Website = &link{Href: cv.Href(p.Website), Text: p.Website}
	}
	if cv.IsValidURL(p.LinkedIn) {
		d.LinkedIn = &link{Href: cv.Href(p.LinkedIn), Text: p.LinkedIn}
	}
	if p.ShowImage && p.ProfileImage != nil && strings.HasPrefix(*p.ProfileImage, "data:image/") {
		d.Photo = template.URL(*p.ProfileImage)
	}

	for _, e := range record.Experience {
		d.Experience = append(d.Experience, entryView{
			Title:       e.JobTitle,
			Org:         e.Company,
			Dates:       dateRange(e.StartDate, e.EndDate, tr.T(i18n.KeyPresent)),
			Description: e.Description,
		})
	}
	for _, e := range record.Education {
		d.Education = append(d.Education, entryView{
			Title:       e.Degree,
			Org:         e.Institution,
			Dates:       dateRange(e.StartDate, e.EndDate, ""),
			Description: e.Description,
		})
	}

	if len(record.Skills) > 0 {
		left, right := cv.Distribute(record.Skills)
		d.Skills = [][]itemView{skillViews(left, tr), skillViews(right, tr)}
	}
	if len(record.Languages) > 0 {
		left, right := cv.Distribute(record.Languages)
		d.Languages = [][]itemView{languageViews(left, tr), languageViews(right, tr)}
	}
	return d
}

func skillViews(skills []cv.Skill, tr i18n.Translator) []itemView {
	out := make([]itemView, 0, len(skills))
	for _, s := range skills {
		out = append(out, itemView{Name: s.Name, Label: tr.LevelLabel(s.Level)})
	}
	return out
}

func languageViews(langs []cv.Language, tr i18n.Translator) []itemView {
	out := make([]itemView, 0, len(langs))
	for _, l := range langs {
		out = append(out, itemView{Name: l.Name, Label: tr.ProficiencyLabel(l.Proficiency)})
	}
	return out
}

// dateRange renders "Jan 2020 - Mar 2022"; a missing end shows openEnd when a start exists.
func dateRange(start, end, openEnd string) string {
	var b strings.Builder
	if start != "" {
		b.WriteString(cv.FormatMonth(start))
	}
	if start != "" && (end != "" || openEnd != "") {
		b.WriteString(" - ")
	}
	switch {
	case end != "":
		b.WriteString(cv.FormatMonth(end))
	case start != "" && openEnd != "":
		b.WriteString(openEnd)
	}
	return b.String()
}

func formatDay(value string) string {
	t, err := time.Parse(cv.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return value
	}
	return t.Format("02.01.2006")
}
