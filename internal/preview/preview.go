// Package preview renders a content model as a standalone HTML page that
// uses the theme stylesheet.
package preview

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"anvilwp_server/internal/content"
	"anvilwp_server/internal/stylesheet"
)

var page = template.Must(template.New("preview").Funcs(template.FuncMap{
	"accent": accentTitle,
}).Parse(pageTemplate))

// cssSafe keeps the business name in the stylesheet comment from closing
// the style element.
var cssSafe = strings.NewReplacer("<", `\3c `)

type view struct {
	Site content.Site
	CSS  template.CSS
	Year int

	Features     *content.FeaturesSection
	Services     *content.ServicesSection
	Stats        *content.StatsSection
	Testimonials *content.TestimonialsSection
	Contact      *content.ContactSection
	CTA          *content.CTASection
}

// Render returns the preview page for site. now supplies the footer year.
func Render(site content.Site, now time.Time) ([]byte, error) {
	site.Colors = site.Colors.WithDefaults()
	v := view{
		Site: site,
		CSS:  template.CSS(cssSafe.Replace(stylesheet.Render(site.Colors, site.Profile.Name))),
		Year: now.Year(),
	}
	for _, s := range content.Canonical(site.Sections) {
		switch sec := s.(type) {
		case content.FeaturesSection:
			v.Features = &sec
		case content.ServicesSection:
			v.Services = &sec
		case content.StatsSection:
			v.Stats = &sec
		case content.TestimonialsSection:
			v.Testimonials = &sec
		case content.ContactSection:
			v.Contact = &sec
		case content.CTASection:
			v.CTA = &sec
		}
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	return buf.Bytes(), nil
}

// accentTitle wraps the first occurrence of accent in a gradient span.
func accentTitle(title, accent string) template.HTML {
	esc := template.HTMLEscapeString(title)
	if accent == "" {
		return template.HTML(esc)
	}
	acc := template.HTMLEscapeString(accent)
	span := `<span class="anvil-gradient-text">` + acc + `</span>`
	if i := strings.Index(esc, acc); i >= 0 {
		return template.HTML(esc[:i] + span + esc[i+len(acc):])
	}
	return template.HTML(esc + " " + span)
}

const pageTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Site.Profile.Name}}</title>
{{with .Site.Profile.Description}}<meta name="description" content="{{.}}">{{end}}
{{with .Site.Keywords}}<meta name="keywords" content="{{range $i, $k := .}}{{if $i}}, {{end}}{{$k}}{{end}}">{{end}}
<style>
{{.CSS}}
body { margin: 0; }
.anvil-wrap { max-width: 1200px; margin: 0 auto; padding: 0 24px; }
.anvil-row { display: flex; flex-wrap: wrap; gap: 32px; justify-content: center; }
.anvil-row > * { flex: 1 1 280px; }
</style>
</head>
<body>
<header class="anvil-header"><div class="anvil-wrap"><strong>{{.Site.Profile.Name}}</strong></div></header>
<main>
{{with .Site.Hero}}
<section id="hero" class="anvil-hero"><div class="anvil-wrap" style="text-align:center">
{{with .Badge}}<p class="anvil-badge">{{.}}</p>{{end}}
<h1 class="anvil-hero-title">{{accent .Title .TitleAccent}}</h1>
{{with .Subtitle}}<p class="anvil-hero-subtitle">{{.}}</p>{{end}}
<p class="anvil-button anvil-button-primary"><a class="wp-block-button__link" href="#contact">{{.PrimaryCTA}}</a></p>
{{with .SecondaryCTA}}<p class="anvil-button anvil-button-ghost"><a class="wp-block-button__link" href="#features">{{.}}</a></p>{{end}}
</div></section>
{{end}}
{{with .Features}}
<section id="features" class="anvil-section"><div class="anvil-wrap">
<div class="anvil-section-header" style="text-align:center"><h2 class="anvil-section-title">{{.Title}}</h2>{{with .Subtitle}}<p class="anvil-section-subtitle">{{.}}</p>{{end}}</div>
<div class="anvil-row">{{range .Items}}
<div class="anvil-feature-card"><p class="anvil-feature-icon">{{.Icon}}</p><h3>{{.Title}}</h3><p class="anvil-muted">{{.Description}}</p></div>{{end}}
</div></div></section>
{{end}}
{{with .Services}}
<section id="services" class="anvil-section anvil-section-alt"><div class="anvil-wrap">
<h2 class="anvil-section-title" style="text-align:center">{{.Title}}</h2>
<div class="anvil-row">{{range .Items}}
<div class="anvil-card"><p class="anvil-feature-icon">{{.Icon}}</p><h3>{{.Title}}</h3><p class="anvil-muted">{{.Description}}</p></div>{{end}}
</div></div></section>
{{end}}
{{with .Stats}}
<section id="stats" class="anvil-section anvil-stats"><div class="anvil-wrap">
{{with .Title}}<h2 class="anvil-section-title" style="text-align:center">{{.}}</h2>{{end}}
<div class="anvil-row anvil-stats-row">{{range .Items}}
<div style="text-align:center"><p class="anvil-stat-value">{{.Value}}</p><p class="anvil-stat-label">{{.Label}}</p></div>{{end}}
</div></div></section>
{{end}}
{{with .Testimonials}}
<section id="testimonials" class="anvil-section"><div class="anvil-wrap">
<h2 class="anvil-section-title" style="text-align:center">{{.Title}}</h2>
<div class="anvil-row">{{range .Items}}
<figure class="anvil-testimonial"><blockquote class="anvil-testimonial-quote">{{.Quote}}</blockquote>
<figcaption class="anvil-testimonial-author"><strong>{{.Author}}</strong> <span class="anvil-testimonial-role">{{.Role}}{{if and .Role .Company}} - {{end}}{{.Company}}</span></figcaption></figure>{{end}}
</div></div></section>
{{end}}
{{with .Contact}}
<section id="contact" class="anvil-section anvil-contact"><div class="anvil-wrap">
<h2 class="anvil-section-title" style="text-align:center">{{.Title}}</h2>
{{with .Subtitle}}<p class="anvil-section-subtitle" style="text-align:center">{{.}}</p>{{end}}
<form class="anvil-contact-form" onsubmit="return false">
<p><label>Nombre</label><input type="text" name="name"></p>
<p><label>Email</label><input type="email" name="email"></p>
<p><label>Mensaje</label><textarea name="message" rows="5"></textarea></p>
<p><button type="submit" class="anvil-button-primary">{{.SubmitLabel}}</button></p>
</form></div></section>
{{end}}
{{with .CTA}}
<section id="cta" class="anvil-section"><div class="anvil-wrap"><div class="anvil-cta">
<h2 class="anvil-cta-title">{{.Title}}</h2><p class="anvil-cta-subtitle">{{.Subtitle}}</p>
<p class="anvil-button anvil-button-light"><a class="wp-block-button__link" href="#contact">{{.Button}} <span class="anvil-button-arrow">→</span></a></p>
</div></div></section>
{{end}}
</main>
<footer class="anvil-footer"><div class="anvil-wrap"><p class="anvil-muted" style="text-align:center">© {{.Year}} {{.Site.Profile.Name}}. Powered by AnvilWP</p></div></footer>
</body>
</html>
`
