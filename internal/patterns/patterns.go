// Package patterns renders content sections into block pattern files.
package patterns

import (
	"fmt"
	"strings"
	"unicode"

	"anvilwp_server/internal/blocks"
	"anvilwp_server/internal/content"
	"anvilwp_server/internal/slug"
)

// Rendered is a pattern file ready to be written under patterns/.
type Rendered struct {
	Key     string
	Slug    string
	Title   string
	Content string
}

// Path is the bundle path of the pattern file.
func (r Rendered) Path() string { return "patterns/" + r.Key + ".php" }

// SlugFor builds the {themeSlug}/{key} pattern slug.
func SlugFor(themeSlug, key string) string {
	return themeSlug + "/" + slug.Normalize(key, 0)
}

// RenderHero renders the hero banner. Badge, subtitle and secondary CTA are
// left out entirely when empty.
func RenderHero(themeSlug string, hero content.HeroContent) Rendered {
	inner := []blocks.Node{}
	if hero.Badge != "" {
		inner = append(inner, blocks.Paragraph(blocks.Attrs{"align": "center", "className": "anvil-badge", "fontSize": "small"}, blocks.Text(hero.Badge)))
	}
	inner = append(inner, blocks.Heading(blocks.Attrs{"textAlign": "center", "className": "anvil-hero-title"}, 1, heroTitle(hero.Title, hero.TitleAccent)))
	if hero.Subtitle != "" {
		inner = append(inner, blocks.Paragraph(blocks.Attrs{"align": "center", "className": "anvil-hero-subtitle"}, blocks.Text(hero.Subtitle)))
	}
	buttons := []blocks.Node{
		blocks.Button(blocks.Attrs{"className": "anvil-button anvil-button-primary"}, blocks.Text(hero.PrimaryCTA), "#contact"),
	}
	if hero.SecondaryCTA != "" {
		buttons = append(buttons, blocks.Button(blocks.Attrs{"className": "anvil-button anvil-button-ghost"}, blocks.Text(hero.SecondaryCTA), "#features"))
	}
	inner = append(inner, blocks.Buttons(blocks.Attrs{"layout": blocks.Attrs{"type": "flex", "justifyContent": "center"}}, buttons...))

	body := blocks.Group(section("hero", "anvil-hero"),
		blocks.Group(blocks.Attrs{"className": "anvil-hero-inner", "layout": blocks.Attrs{"type": "constrained", "contentSize": "760px"}}, inner...),
	)
	return build(themeSlug, string(content.KindHero), "Hero", "Cabecera principal con titular y llamadas a la acción", body)
}

// Render renders any non-hero section. The caller must not pass empty
// sections.
func Render(themeSlug string, s content.Section) (Rendered, error) {
	switch v := s.(type) {
	case content.FeaturesSection:
		return renderFeatures(themeSlug, v), nil
	case content.ServicesSection:
		return renderServices(themeSlug, v), nil
	case content.StatsSection:
		return renderStats(themeSlug, v), nil
	case content.TestimonialsSection:
		return renderTestimonials(themeSlug, v), nil
	case content.ContactSection:
		return renderContact(themeSlug, v), nil
	case content.CTASection:
		return renderCTA(themeSlug, v), nil
	case content.HTMLSection:
		return renderHTML(themeSlug, v), nil
	}
	return Rendered{}, fmt.Errorf("patterns: unsupported section %T", s)
}

func renderFeatures(themeSlug string, s content.FeaturesSection) Rendered {
	header := []blocks.Node{sectionTitle(s.Title)}
	if s.Subtitle != "" {
		header = append(header, blocks.Paragraph(blocks.Attrs{"align": "center", "className": "anvil-section-subtitle"}, blocks.Text(s.Subtitle)))
	}
	cards := make([]blocks.Node, 0, len(s.Items))
	for _, item := range s.Items {
		cards = append(cards, blocks.Column(blocks.Attrs{"className": "anvil-feature-card"},
			blocks.Paragraph(blocks.Attrs{"align": "center", "className": "anvil-feature-icon", "fontSize": "xxx-large"}, blocks.Text(item.Icon)),
			blocks.Heading(blocks.Attrs{"textAlign": "center", "fontSize": "x-large"}, 3, blocks.Text(item.Title)),
			blocks.Paragraph(blocks.Attrs{"align": "center", "className": "anvil-muted"}, blocks.Text(item.Description)),
		))
	}
	body := blocks.Group(section("features", "anvil-section"),
		blocks.Group(blocks.Attrs{"className": "anvil-section-header", "layout": blocks.Attrs{"type": "constrained", "contentSize": "700px"}}, header...),
		blocks.Columns(blocks.Attrs{"className": "anvil-grid-3"}, cards...),
	)
	return build(themeSlug, s.Key(), "Features Section", "Grid de características con iconos y descripciones", body)
}

func renderServices(themeSlug string, s content.ServicesSection) Rendered {
	cards := make([]blocks.Node, 0, len(s.Items))
	for _, item := range s.Items {
		cards = append(cards, blocks.Group(blocks.Attrs{"className": "anvil-card", "layout": blocks.Attrs{"type": "constrained"}},
			blocks.Paragraph(blocks.Attrs{"className": "anvil-feature-icon", "fontSize": "xxx-large"}, blocks.Text(item.Icon)),
			blocks.Heading(blocks.Attrs{"fontSize": "x-large"}, 3, blocks.Text(item.Title)),
			blocks.Paragraph(blocks.Attrs{"className": "anvil-muted"}, blocks.Text(item.Description)),
		))
	}
	body := blocks.Group(section("services", "anvil-section anvil-section-alt"),
		sectionTitle(s.Title),
		blocks.Group(blocks.Attrs{"className": "anvil-grid-2", "layout": blocks.Attrs{"type": "grid", "minimumColumnWidth": "320px"}}, cards...),
	)
	return build(themeSlug, s.Key(), "Services Section", "Grid de servicios en tarjetas", body)
}

func renderStats(themeSlug string, s content.StatsSection) Rendered {
	var children []blocks.Node
	if s.Title != "" {
		children = append(children, sectionTitle(s.Title))
	}
	stats := make([]blocks.Node, 0, len(s.Items))
	for _, item := range s.Items {
		stats = append(stats, blocks.Group(blocks.Attrs{"className": "anvil-stat", "layout": blocks.Attrs{"type": "constrained"}},
			blocks.Paragraph(blocks.Attrs{"align": "center", "className": "anvil-stat-value"}, blocks.Text(item.Value)),
			blocks.Paragraph(blocks.Attrs{"align": "center", "className": "anvil-stat-label"}, blocks.Text(item.Label)),
		))
	}
	children = append(children, blocks.Group(blocks.Attrs{
		"className": "anvil-stats-row",
		"layout":    blocks.Attrs{"type": "flex", "flexWrap": "wrap", "justifyContent": "space-around"},
	}, stats...))
	body := blocks.Group(section("stats", "anvil-section anvil-stats"), children...)
	return build(themeSlug, s.Key(), "Stats Section", "Cifras destacadas", body)
}

func renderTestimonials(themeSlug string, s content.TestimonialsSection) Rendered {
	cards := make([]blocks.Node, 0, len(s.Items))
	for _, item := range s.Items {
		role := item.Role
		if item.Company != "" {
			if role != "" {
				role += " - "
			}
			role += item.Company
		}
		cards = append(cards, blocks.Column(nil,
			blocks.Group(blocks.Attrs{"className": "anvil-testimonial", "layout": blocks.Attrs{"type": "constrained"}},
				blocks.Paragraph(blocks.Attrs{"className": "anvil-testimonial-quote"}, blocks.Text(item.Quote)),
				blocks.Group(blocks.Attrs{"className": "anvil-testimonial-author", "layout": blocks.Attrs{"type": "flex", "flexWrap": "nowrap"}},
					blocks.Paragraph(blocks.Attrs{"className": "anvil-testimonial-avatar"}, blocks.Text(initials(item.Author))),
					blocks.Group(blocks.Attrs{"layout": blocks.Attrs{"type": "constrained"}},
						blocks.Paragraph(blocks.Attrs{"className": "anvil-testimonial-name"}, blocks.Raw("<strong>"+string(blocks.Text(item.Author))+"</strong>")),
						blocks.Paragraph(blocks.Attrs{"className": "anvil-testimonial-role", "fontSize": "small"}, blocks.Text(role)),
					),
				),
			),
		))
	}
	body := blocks.Group(section("testimonials", "anvil-section"),
		sectionTitle(s.Title),
		blocks.Columns(blocks.Attrs{"className": "anvil-grid-3"}, cards...),
	)
	return build(themeSlug, s.Key(), "Testimonials Section", "Testimonios de clientes", body)
}

func renderContact(themeSlug string, s content.ContactSection) Rendered {
	children := []blocks.Node{sectionTitle(s.Title)}
	if s.Subtitle != "" {
		children = append(children, blocks.Paragraph(blocks.Attrs{"align": "center", "className": "anvil-section-subtitle"}, blocks.Text(s.Subtitle)))
	}
	children = append(children, blocks.CustomHTML(contactForm(slug.Identifier(themeSlug), s.SubmitLabel)))
	body := blocks.Group(section("contact", "anvil-section anvil-contact"), children...)
	return build(themeSlug, s.Key(), "Contact Form", "Formulario de contacto", body)
}

// contactForm posts to admin-post.php, handled by {prefix}_handle_contact in
// functions.php.
func contactForm(prefix, submit string) string {
	return fmt.Sprintf(`<form class="anvil-contact-form" method="post" action="<?php echo esc_url( admin_url( 'admin-post.php' ) ); ?>">
<input type="hidden" name="action" value="%[1]s_contact">
<?php wp_nonce_field( '%[1]s_contact', '%[1]s_nonce' ); ?>
<p><label for="%[1]s-name">Nombre</label><input id="%[1]s-name" type="text" name="name" required></p>
<p><label for="%[1]s-email">Email</label><input id="%[1]s-email" type="email" name="email" required></p>
<p><label for="%[1]s-phone">Teléfono (opcional)</label><input id="%[1]s-phone" type="tel" name="phone"></p>
<p><label for="%[1]s-message">Mensaje</label><textarea id="%[1]s-message" name="message" rows="5" required></textarea></p>
<p class="anvil-honeypot" aria-hidden="true"><input type="text" name="website" tabindex="-1" autocomplete="off"></p>
<p><button type="submit" class="anvil-button anvil-button-primary">%[2]s</button></p>
<p class="anvil-contact-status" role="status"></p>
</form>`, prefix, blocks.Text(submit))
}

func renderCTA(themeSlug string, s content.CTASection) Rendered {
	body := blocks.Group(section("cta", "anvil-section"),
		blocks.Group(blocks.Attrs{"className": "anvil-cta", "layout": blocks.Attrs{"type": "constrained", "contentSize": "800px"}},
			blocks.Heading(blocks.Attrs{"textAlign": "center", "className": "anvil-cta-title"}, 2, blocks.Text(s.Title)),
			blocks.Paragraph(blocks.Attrs{"align": "center", "className": "anvil-cta-subtitle"}, blocks.Text(s.Subtitle)),
			blocks.Buttons(blocks.Attrs{"layout": blocks.Attrs{"type": "flex", "justifyContent": "center"}},
				blocks.Button(blocks.Attrs{"className": "anvil-button anvil-button-light"}, blocks.Raw(string(blocks.Text(s.Button))+` <span class="anvil-button-arrow">→</span>`), "#contact"),
			),
		),
	)
	return build(themeSlug, s.Key(), "Call to Action", "Llamada a la acción final con fondo degradado", body)
}

func renderHTML(themeSlug string, s content.HTMLSection) Rendered {
	title := s.Title
	if title == "" {
		title = s.SectionKey
	}
	// Pattern files are evaluated as PHP; converted markup must not open a PHP tag.
	markup := strings.ReplaceAll(s.Markup, "<?", "&lt;?")
	body := blocks.Group(section(s.SectionKey, "anvil-section anvil-converted"), blocks.CustomHTML(markup))
	return build(themeSlug, s.SectionKey, title, "Sección convertida desde HTML", body)
}

// section returns the attributes shared by every full-width section wrapper.
func section(anchor, class string) blocks.Attrs {
	return blocks.Attrs{
		"align":     "full",
		"anchor":    anchor,
		"className": class,
		"layout":    blocks.Attrs{"type": "constrained"},
	}
}

func sectionTitle(title string) *blocks.Block {
	return blocks.Heading(blocks.Attrs{"textAlign": "center", "className": "anvil-section-title"}, 2, blocks.Text(title))
}

// heroTitle highlights the first occurrence of accent in title, or appends
// it when the title does not contain it.
func heroTitle(title, accent string) blocks.Inline {
	escaped := string(blocks.Text(title))
	if accent == "" {
		return blocks.Raw(escaped)
	}
	highlighted := `<span class="anvil-gradient-text">` + string(blocks.Text(accent)) + `</span>`
	if i := strings.Index(escaped, string(blocks.Text(accent))); i >= 0 {
		return blocks.Raw(escaped[:i] + highlighted + escaped[i+len(blocks.Text(accent)):])
	}
	return blocks.Raw(escaped + " " + highlighted)
}

// initials returns up to two uppercase initials of a name.
func initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "👤"
	}
	return string(out)
}

func build(themeSlug, key, title, description string, body blocks.Node) Rendered {
	key = slug.Normalize(key, 0)
	patternSlug := SlugFor(themeSlug, key)
	return Rendered{
		Key:     key,
		Slug:    patternSlug,
		Title:   title,
		Content: header(title, patternSlug, themeSlug, description) + blocks.Serialize(body) + "\n",
	}
}

func header(title, patternSlug, category, description string) string {
	var b strings.Builder
	b.WriteString("<?php\n/**\n")
	fmt.Fprintf(&b, " * Title: %s\n", headerValue(title))
	fmt.Fprintf(&b, " * Slug: %s\n", patternSlug)
	fmt.Fprintf(&b, " * Categories: %s\n", category)
	if description != "" {
		fmt.Fprintf(&b, " * Description: %s\n", headerValue(description))
	}
	b.WriteString(" */\n?>\n")
	return b.String()
}

// headerValue keeps a value on one line and unable to close the doc block.
func headerValue(v string) string {
	v = strings.Join(strings.Fields(v), " ")
	return strings.ReplaceAll(v, "*/", "* /")
}
