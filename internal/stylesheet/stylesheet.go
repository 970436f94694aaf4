// Package stylesheet renders the theme's design-system CSS.
package stylesheet

import (
	"fmt"
	"strings"
	"text/template"

	"anvilwp_server/internal/content"
)

type view struct {
	Name         string
	Primary      string
	Accent       string
	Secondary    string
	AccentRGB    string
	SecondaryRGB string
}

var sheet = template.Must(template.New("theme.css").Parse(themeCSS))

// Render returns the full stylesheet for the given brand colors. Every
// component class is always emitted, whichever sections the theme has.
// Missing or malformed colors fall back to the defaults.
func Render(colors content.ColorScheme, businessName string) string {
	colors = colors.WithDefaults()
	v := view{
		Name:         commentSafe(businessName),
		Primary:      colors.Primary,
		Accent:       colors.Accent,
		Secondary:    colors.Secondary,
		AccentRGB:    rgbTriplet(colors.Accent),
		SecondaryRGB: rgbTriplet(colors.Secondary),
	}
	var b strings.Builder
	if err := sheet.Execute(&b, v); err != nil {
		// The template only reads string fields of view.
		panic(fmt.Sprintf("stylesheet: %v", err))
	}
	return b.String()
}

func rgbTriplet(hex string) string {
	r, g, b, ok := content.RGB(hex)
	if !ok {
		return "0, 0, 0"
	}
	return fmt.Sprintf("%d, %d, %d", r, g, b)
}

func commentSafe(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "*/", "* /")
}

const themeCSS = `/* Theme CSS for {{.Name}} */
@import url('https://fonts.googleapis.com/css2?family=Plus+Jakarta+Sans:wght@400;500;600;700;800&family=Inter:wght@300;400;500;600&display=swap');

:root {
  --c-primary: {{.Primary}};
  --c-accent: {{.Accent}};
  --c-secondary: {{.Secondary}};
  --c-accent-rgb: {{.AccentRGB}};
  --c-secondary-rgb: {{.SecondaryRGB}};
  --c-bg: #0d1117;
  --c-surface: #161b27;
  --c-card: #1e2535;
  --c-text: #e2e8f0;
  --c-muted: #94a3b8;
  --c-border: rgba(255, 255, 255, 0.08);
  --radius: 12px;
  --transition: 0.3s cubic-bezier(0.4, 0, 0.2, 1);
}

body {
  font-family: 'Inter', -apple-system, BlinkMacSystemFont, sans-serif;
  background: var(--c-bg);
  color: var(--c-text);
  -webkit-font-smoothing: antialiased;
}

h1, h2, h3, h4, h5, h6 {
  font-family: 'Plus Jakarta Sans', sans-serif;
  letter-spacing: -0.01em;
}

/* Header & footer */
.anvil-header {
  position: sticky;
  top: 0;
  z-index: 100;
  background: rgba(22, 27, 39, 0.9);
  backdrop-filter: blur(12px);
  border-bottom: 1px solid var(--c-border);
}

.anvil-footer {
  border-top: 1px solid var(--c-border);
}

.anvil-footer a {
  color: var(--c-accent);
}

/* Buttons */
.anvil-button .wp-block-button__link {
  display: inline-flex;
  align-items: center;
  gap: 8px;
  padding: 14px 28px;
  border-radius: 8px;
  font-weight: 600;
  transition: transform var(--transition), box-shadow var(--transition);
}

.anvil-button .wp-block-button__link:hover {
  transform: translateY(-2px);
}

.anvil-button-primary .wp-block-button__link,
button.anvil-button-primary {
  background: linear-gradient(135deg, var(--c-accent), var(--c-secondary));
  color: #ffffff;
  border: 0;
  box-shadow: 0 10px 30px rgba(var(--c-accent-rgb), 0.3);
}

.anvil-button-ghost .wp-block-button__link {
  background: transparent;
  color: var(--c-text);
  border: 1px solid var(--c-border);
}

.anvil-button-light .wp-block-button__link {
  background: #ffffff;
  color: var(--c-accent);
}

.anvil-button-arrow {
  transition: transform var(--transition);
}

.anvil-button:hover .anvil-button-arrow {
  transform: translateX(4px);
}

/* Hero */
.anvil-hero {
  position: relative;
  padding-top: 120px;
  padding-bottom: 80px;
  overflow: hidden;
}

.anvil-hero::before {
  content: '';
  position: absolute;
  top: -50%;
  left: 50%;
  transform: translateX(-50%);
  width: 800px;
  height: 400px;
  background: radial-gradient(ellipse, rgba(var(--c-accent-rgb), 0.15) 0%, rgba(var(--c-secondary-rgb), 0.08) 40%, transparent 70%);
  pointer-events: none;
}

.anvil-hero-inner {
  position: relative;
  z-index: 1;
  max-width: 900px;
  margin: 0 auto;
}

.anvil-hero-title {
  font-size: clamp(2.5rem, 5vw, 4rem);
  font-weight: 800;
  line-height: 1.1;
}

.anvil-hero-subtitle {
  color: var(--c-muted);
  font-size: 1.25rem;
}

.anvil-badge {
  display: inline-block;
  padding: 6px 14px;
  border-radius: 999px;
  background: rgba(var(--c-accent-rgb), 0.12);
  border: 1px solid rgba(var(--c-accent-rgb), 0.3);
  color: var(--c-accent);
}

.anvil-gradient-text {
  background: linear-gradient(135deg, var(--c-accent), var(--c-secondary));
  -webkit-background-clip: text;
  -webkit-text-fill-color: transparent;
  background-clip: text;
}

/* Sections */
.anvil-section {
  padding-top: 100px;
  padding-bottom: 100px;
}

.anvil-section-alt {
  background: var(--c-surface);
}

.anvil-section-header {
  margin-bottom: 60px;
}

.anvil-section-title {
  font-size: clamp(2rem, 4vw, 2.75rem);
  font-weight: 700;
}

.anvil-section-subtitle,
.anvil-muted {
  color: var(--c-muted);
}

.anvil-grid-3 {
  gap: 32px;
}

.anvil-grid-2 {
  gap: 24px;
}

/* Cards */
.anvil-card,
.anvil-feature-card {
  background: var(--c-card);
  border: 1px solid var(--c-border);
  border-radius: var(--radius);
  padding: 32px;
  transition: transform var(--transition), border-color var(--transition), box-shadow var(--transition);
}

.anvil-card:hover,
.anvil-feature-card:hover {
  transform: translateY(-4px);
  border-color: rgba(var(--c-accent-rgb), 0.3);
  box-shadow: 0 20px 60px rgba(0, 0, 0, 0.4);
}

.anvil-feature-icon {
  line-height: 1;
  margin-bottom: 16px;
}

/* Stats */
.anvil-stats {
  border-top: 1px solid var(--c-border);
  border-bottom: 1px solid var(--c-border);
}

.anvil-stat {
  text-align: center;
}

.anvil-stats-row {
  gap: 48px;
}

.anvil-stat-value {
  font-size: 3.5rem;
  font-weight: 800;
  line-height: 1;
  background: linear-gradient(135deg, var(--c-accent), var(--c-secondary));
  -webkit-background-clip: text;
  -webkit-text-fill-color: transparent;
  background-clip: text;
}

.anvil-stat-label {
  color: var(--c-muted);
  font-size: 0.875rem;
  text-transform: uppercase;
  letter-spacing: 0.05em;
}

/* Testimonials */
.anvil-testimonial {
  background: var(--c-card);
  border: 1px solid var(--c-border);
  border-radius: var(--radius);
  padding: 32px;
  height: 100%;
}

.anvil-testimonial-quote {
  font-size: 1.05rem;
  font-style: italic;
}

.anvil-testimonial-quote::before {
  content: '\201C';
  color: var(--c-accent);
  font-size: 2rem;
  margin-right: 4px;
}

.anvil-testimonial-author {
  align-items: center;
  gap: 12px;
  margin-top: 24px;
}

.anvil-testimonial-avatar {
  display: flex;
  align-items: center;
  justify-content: center;
  width: 44px;
  height: 44px;
  border-radius: 50%;
  background: linear-gradient(135deg, var(--c-accent), var(--c-secondary));
  color: #ffffff;
  font-weight: 700;
}

.anvil-testimonial-name {
  font-weight: 700;
  margin: 0;
}

.anvil-testimonial-role {
  color: var(--c-muted);
}

/* Contact */
.anvil-contact {
  background: var(--c-surface);
}

.anvil-contact-status {
  min-height: 1.5em;
  text-align: center;
  color: var(--c-muted);
}

.anvil-contact-form {
  max-width: 600px;
  margin: 0 auto;
}

.anvil-contact-form label {
  display: block;
  margin-bottom: 6px;
  color: var(--c-muted);
  font-size: 0.875rem;
}

.anvil-contact-form input,
.anvil-contact-form textarea {
  width: 100%;
  padding: 12px;
  background: var(--c-card);
  border: 1px solid #2d3548;
  border-radius: 8px;
  color: var(--c-text);
}

.anvil-contact-form input:focus,
.anvil-contact-form textarea:focus {
  outline: none;
  border-color: var(--c-accent);
  box-shadow: 0 0 0 3px rgba(var(--c-accent-rgb), 0.2);
}

.anvil-contact-form button {
  width: 100%;
  padding: 14px;
  border-radius: 8px;
  font-weight: 600;
  cursor: pointer;
}

.anvil-honeypot {
  position: absolute;
  left: -9999px;
}

/* CTA */
.anvil-cta {
  padding: 64px 48px;
  border-radius: 24px;
  background: linear-gradient(135deg, var(--c-primary), var(--c-accent) 60%, var(--c-secondary));
  text-align: center;
}

.anvil-cta-title {
  color: #ffffff;
}

.anvil-cta-subtitle {
  color: rgba(255, 255, 255, 0.9);
  font-size: 1.125rem;
}

/* Converted sections */
.anvil-converted img {
  max-width: 100%;
  height: auto;
}

/* Scroll reveal */
.anvil-reveal {
  opacity: 0;
  transform: translateY(24px);
  transition: opacity 0.6s ease, transform 0.6s ease;
}

.anvil-reveal.is-visible {
  opacity: 1;
  transform: none;
}

@media (max-width: 768px) {
  .anvil-section {
    padding-top: 64px;
    padding-bottom: 64px;
  }

  .anvil-cta {
    padding: 48px 24px;
  }
}
`
