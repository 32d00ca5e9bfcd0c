package render

// previewTemplate 是实时预览与导出共用的 HTML 模板。
// 根节点必须是 #cv-preview，导出时会按 id 克隆。
const previewTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="UTF-8">
<title>{{.Name}}</title>
<style>
  *, *::before, *::after { box-sizing: border-box; }
  body { margin: 0; background: #f8fafc; color: #0f172a; }
  #cv-preview { background: #ffffff; max-width: 794px; margin: 0 auto; padding: 2rem; font-size: 16px; line-height: 1.5; }
  .cv-header { border-bottom: 2px solid #2563eb; padding-bottom: 1.5rem; margin-bottom: 1.5rem; display: flex; align-items: flex-start; gap: 1.5rem; }
  .cv-header-main { flex: 1; }
  .cv-name { font-size: 1.875rem; font-weight: 700; margin: 0 0 .5rem; }
  .contact { color: #64748b; }
  .contact-item { margin-top: .25rem; }
  .contact-item .label, .entry-title, .item-name { font-weight: 500; }
  .contact-item a, .entry-org { color: #2563eb; }
  .contact-item a { text-decoration: underline; word-break: break-all; }
  .profile-image { border-radius: 9999px; object-fit: cover; border: 2px solid #2563eb; }
  .cv-section { margin-bottom: 1.5rem; }
  .cv-section h2 { font-size: 1.25rem; font-weight: 700; color: #2563eb; margin: 0 0 1rem; padding-bottom: .5rem; border-bottom: 1px solid #e2e8f0; }
  .entry + .entry { margin-top: 1rem; }
  .entry-head { display: flex; justify-content: space-between; align-items: flex-start; margin-bottom: .25rem; }
  .entry-title { font-weight: 600; margin: 0; font-size: 1rem; }
  .entry-dates, .item-level { font-size: .875rem; color: #64748b; }
  .entry-org { font-weight: 500; margin-bottom: .5rem; }
  .entry-desc { font-size: .875rem; color: #64748b; margin: 0; white-space: pre-line; }
  .skills-grid { display: flex; gap: 2rem; }
  .skills-column { display: flex; flex-direction: column; gap: .5rem; flex: 1; }
  .skill-item { display: flex; align-items: center; gap: .5rem; }
</style>
</head>
<body>
<div id="cv-preview" style="font-family: system-ui, -apple-system, sans-serif">
  <div class="cv-header">
    <div class="cv-header-main">
      <h1 class="cv-name">{{.Name}}</h1>
      <div class="contact">
        {{with .Personal.Email}}<div class="contact-item"><span class="label">{{$.T "email"}}: </span>{{.}}</div>{{end}}
        {{with .Personal.Phone}}<div class="contact-item"><span class="label">{{$.T "phone"}}: </span>{{.}}</div>{{end}}
        {{with .Personal.Address}}<div class="contact-item"><span class="label">{{$.T "address"}}: </span>{{.}}</div>{{end}}
        {{if .Personal.DateOfBirth}}
          {{if .Personal.ShowAge}}
            <div class="contact-item"><span class="label">{{.T "age"}}: </span>{{.Age}}</div>
          {{else}}
            <div class="contact-item"><span class="label">{{.T "dateOfBirth"}}: </span>{{.BirthDate}}</div>
          {{end}}
        {{end}}
        {{with .Website}}<div class="contact-item"><span class="label">{{$.T "website"}}: </span><a href="{{.Href}}" target="_blank" rel="noopener noreferrer">{{.Text}}</a></div>{{end}}
        {{with .LinkedIn}}<div class="contact-item"><span class="label">{{$.T "linkedin"}}: </span><a href="{{.Href}}" target="_blank" rel="noopener noreferrer">{{.Text}}</a></div>{{end}}
      </div>
    </div>
    {{with .Photo}}
    <div class="cv-photo">
      <img src="{{.}}" alt="Profile" class="profile-image" style="width: 125px; height: 125px; aspect-ratio: 1/1; object-fit: cover">
    </div>
    {{end}}
  </div>

  {{if .Experience}}
  <div class="cv-section">
    <h2>{{.T "workExperience"}}</h2>
    {{range .Experience}}
    <div class="entry">
      <div class="entry-head">
        <h3 class="entry-title">{{.Title}}</h3>
        <span class="entry-dates">{{.Dates}}</span>
      </div>
      <div class="entry-org">{{.Org}}</div>
      {{with .Description}}<p class="entry-desc">{{.}}</p>{{end}}
    </div>
    {{end}}
  </div>
  {{end}}

  {{if .Education}}
  <div class="cv-section">
    <h2>{{.T "education"}}</h2>
    {{range .Education}}
    <div class="entry">
      <div class="entry-head">
        <h3 class="entry-title">{{.Title}}</h3>
        <span class="entry-dates">{{.Dates}}</span>
      </div>
      <div class="entry-org">{{.Org}}</div>
      {{with .Description}}<p class="entry-desc">{{.}}</p>{{end}}
    </div>
    {{end}}
  </div>
  {{end}}

  {{with .Skills}}
  <div class="cv-section">
    <h2>{{$.T "skills"}}</h2>
    {{template "columns" .}}
  </div>
  {{end}}

  {{with .Languages}}
  <div class="cv-section">
    <h2>{{$.T "languages"}}</h2>
    {{template "columns" .}}
  </div>
  {{end}}
</div>
</body>
</html>
{{define "columns"}}<div class="skills-grid">
  {{range .}}<div class="skills-column">
    {{range .}}<div class="skill-item"><span class="item-name">{{.Name}}</span><span class="item-level">({{.Label}})</span></div>
    {{end}}
  </div>
  {{end}}
</div>{{end}}`
