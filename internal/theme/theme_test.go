package theme

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anvilwp_server/internal/blocks"
	"anvilwp_server/internal/content"
	"anvilwp_server/internal/errs"
)

func fixedClock() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }

func cafeAzul(t *testing.T) content.Site {
	t.Helper()
	site, err := content.FromForm(content.FormInput{
		BusinessName: "Café Azul",
		BusinessType: "Restaurante",
		Sections:     []string{"Hero", "Contacto"},
	})
	require.NoError(t, err)
	return site
}

func TestAssembleCafeAzul(t *testing.T) {
	b, err := New(WithClock(fixedClock)).AssembleSite(cafeAzul(t))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"assets/css/theme.css",
		"functions.php",
		"parts/footer.html",
		"parts/header.html",
		"patterns/contact.php",
		"patterns/hero.php",
		"style.css",
		"templates/front-page.html",
		"templates/index.html",
		"theme.json",
	}, b.Paths())

	var doc struct {
		Settings struct {
			Custom struct {
				TextDomain string `json:"textDomain"`
			} `json:"custom"`
		} `json:"settings"`
	}
	raw, _ := b.Get(PathThemeJSON)
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "cafe-azul-wp", doc.Settings.Custom.TextDomain)

	front, _ := b.Get(PathFrontPage)
	assert.Equal(t, []string{"cafe-azul-wp/hero", "cafe-azul-wp/contact"}, blocks.PatternRefs(front))
	index, _ := b.Get(PathIndex)
	assert.Equal(t, front, index)

	style, _ := b.Get(PathStyle)
	assert.Contains(t, style, "Theme Name: Café Azul\n")
	assert.Contains(t, style, "Text Domain: cafe-azul-wp\n")
	assert.Contains(t, style, "Author: AnvilWP\n")

	footer, _ := b.Get(PathFooter)
	assert.Contains(t, footer, "© 2026 Café Azul. Powered by AnvilWP")
}

func TestAssembleCrossReferences(t *testing.T) {
	site, err := content.FromLLM([]byte(`{
		"businessName": "Nortia",
		"features": {"items": [{"icon": "⚡", "title": "Rápido", "description": "Mucho"}]},
		"stats": [{"value": "10", "label": "Años"}],
		"testimonials": {"items": [{"quote": "Bien", "author": "Luis"}]},
		"cta": {"title": "Hablemos"}
	}`))
	require.NoError(t, err)

	b, err := New(WithClock(fixedClock)).AssembleSite(site)
	require.NoError(t, err)

	front, _ := b.Get(PathFrontPage)
	refs := blocks.PatternRefs(front)
	assert.Equal(t, b.Patterns, refs)
	require.NotEmpty(t, refs)
	for _, ref := range refs {
		key := strings.TrimPrefix(ref, "nortia-wp/")
		pattern, ok := b.Get("patterns/" + key + ".php")
		require.True(t, ok, ref)
		assert.Equal(t, ref, declaredSlug(pattern))
	}

	for _, p := range b.Paths() {
		if strings.HasSuffix(p, ".html") || strings.HasSuffix(p, ".php") && p != PathFunctions {
			c, _ := b.Get(p)
			assert.NoError(t, blocks.Validate(c), p)
		}
	}
}

func TestAssembleOmitsEmptySections(t *testing.T) {
	site, err := content.FromLLM([]byte(`{"businessName": "Nortia", "features": {"title": "X", "items": []}}`))
	require.NoError(t, err)

	b, err := New().AssembleSite(site)
	require.NoError(t, err)
	assert.False(t, b.Has("patterns/features.php"))
	front, _ := b.Get(PathFrontPage)
	assert.NotContains(t, front, "nortia-wp/features")

	b, err = New().Assemble(site.Profile, site.Colors, nil, []content.Section{content.FeaturesSection{Title: "X"}}, "nortia-wp")
	require.NoError(t, err)
	assert.False(t, b.Has("patterns/features.php"))
	assert.False(t, b.Has("patterns/hero.php"))
	front, _ = b.Get(PathFrontPage)
	assert.Empty(t, blocks.PatternRefs(front))
	assert.Contains(t, front, "<!-- wp:post-content")
}

func TestAssembleColorDefaults(t *testing.T) {
	site, err := content.FromLLM([]byte(`{"businessName": "Sin Color"}`))
	require.NoError(t, err)

	b, err := New().AssembleSite(site)
	require.NoError(t, err)
	for _, p := range []string{PathThemeJSON, PathCSS} {
		c, _ := b.Get(p)
		assert.Contains(t, c, content.DefaultPrimary, p)
		assert.Contains(t, c, content.DefaultAccent, p)
		assert.Contains(t, c, content.DefaultSecondary, p)
		assert.NotContains(t, c, "undefined", p)
		assert.NotContains(t, c, "null", p)
		assert.NotContains(t, c, `""`, p)
	}
}

func TestAssembleIsIdempotent(t *testing.T) {
	site := cafeAzul(t)
	a := New(WithClock(fixedClock), WithExtras(true))

	first, err := a.AssembleSite(site)
	require.NoError(t, err)
	second, err := a.AssembleSite(site)
	require.NoError(t, err)
	assert.Equal(t, first.Files(), second.Files())
}

func TestAssembleFailures(t *testing.T) {
	a := New()
	_, err := a.Assemble(content.BusinessProfile{Name: "  "}, content.DefaultColors(), nil, nil, "")
	assert.ErrorIs(t, err, errs.ErrGeneration)

	_, err = a.Assemble(content.BusinessProfile{Name: "A"}, content.ColorScheme{Primary: "#000", Accent: "azul", Secondary: "#fff"}, nil, nil, "")
	require.ErrorIs(t, err, errs.ErrGeneration)
	assert.Contains(t, err.Error(), "accent")
}

func TestAssembleDerivesSlugAndPrefix(t *testing.T) {
	b, err := New().Assemble(content.BusinessProfile{Name: "Café Azul"}, content.DefaultColors(), nil,
		[]content.Section{content.ContactSection{Title: "Contacto", SubmitLabel: "Enviar"}}, "")
	require.NoError(t, err)
	assert.Equal(t, "cafe-azul-wp", b.Slug)

	functions, _ := b.Get(PathFunctions)
	assert.Contains(t, functions, "function cafe_azul_wp_setup()")
	assert.Contains(t, functions, "register_block_pattern_category(\n\t\t'cafe-azul-wp',")
	assert.Contains(t, functions, "add_action( 'admin_post_nopriv_cafe_azul_wp_contact', 'cafe_azul_wp_handle_contact' );")
	assert.Contains(t, functions, "wp_verify_nonce( $nonce, 'cafe_azul_wp_contact' )")
	assert.NotContains(t, functions, "theme.js")
}

func TestFunctionNamesAreValidPHP(t *testing.T) {
	phpFunc := regexp.MustCompile(`function\s+([^\s(]+)\s*\(`)
	phpIdent := regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

	for _, name := range []string{"360 Digital", "7 Mares", "Café Azul"} {
		site, err := content.FromForm(content.FormInput{
			BusinessName: name,
			BusinessType: "Agencia",
			Sections:     []string{"Hero", "Contacto"},
		})
		require.NoError(t, err)
		b, err := New(WithClock(fixedClock)).AssembleSite(site)
		require.NoError(t, err, name)

		functions, _ := b.Get(PathFunctions)
		matches := phpFunc.FindAllStringSubmatch(functions, -1)
		require.NotEmpty(t, matches, name)
		for _, m := range matches {
			assert.Regexp(t, phpIdent, m[1], name)
		}
	}

	site, err := content.FromForm(content.FormInput{BusinessName: "360 Digital", BusinessType: "Agencia", Sections: []string{"Contacto"}})
	require.NoError(t, err)
	b, err := New().AssembleSite(site)
	require.NoError(t, err)
	assert.Equal(t, "360-digital-wp", b.Slug)
	functions, _ := b.Get(PathFunctions)
	assert.Contains(t, functions, "add_action( 'admin_post_t_360_digital_wp_contact', 't_360_digital_wp_handle_contact' );")
	assert.Contains(t, functions, "register_block_pattern_category(\n\t\t'360-digital-wp',")
	form, _ := b.Get("patterns/contact.php")
	assert.Contains(t, form, `name="action" value="t_360_digital_wp_contact"`)
}

func TestFunctionsWithoutContactHasNoHandler(t *testing.T) {
	b, err := New().Assemble(content.BusinessProfile{Name: "O'Brien"}, content.DefaultColors(), &content.HeroContent{Title: "Hola", PrimaryCTA: "Ir"}, nil, "")
	require.NoError(t, err)
	functions, _ := b.Get(PathFunctions)
	assert.NotContains(t, functions, "handle_contact")
	assert.Contains(t, functions, `'label' => 'O\'Brien'`)
}

func TestAssembleExtras(t *testing.T) {
	b, err := New(WithExtras(true), WithAuthor("Estudio Norte", "https://norte.example"), WithClock(fixedClock)).AssembleSite(cafeAzul(t))
	require.NoError(t, err)

	for _, p := range []string{PathReadme, PathPage, PathSingle, PathJS} {
		assert.True(t, b.Has(p), p)
	}
	assert.Equal(t, 14, b.Len())

	readme, _ := b.Get(PathReadme)
	assert.Contains(t, readme, "# Café Azul")
	assert.Contains(t, readme, "- `patterns/hero.php`")
	assert.Contains(t, readme, "- `README.md`")

	functions, _ := b.Get(PathFunctions)
	assert.Contains(t, functions, "get_theme_file_uri( 'assets/js/theme.js' )")

	style, _ := b.Get(PathStyle)
	assert.Contains(t, style, "Author: Estudio Norte\n")
	assert.Contains(t, style, "Author URI: https://norte.example\n")

	single, _ := b.Get(PathSingle)
	assert.Contains(t, single, "<!-- wp:post-featured-image")
}

func TestAssembleWithOverrides(t *testing.T) {
	ov := Overrides{
		HeaderHTML: `<nav><a href="/">Inicio</a></nav>`,
		FooterHTML: `<footer><p>Pie</p></footer>`,
		ExtraCSS:   `.brand { color: red; }`,
	}
	sections := []content.Section{content.HTMLSection{SectionKey: "sobre-nosotros", Title: "Sobre nosotros", Markup: "<section><h2>Sobre nosotros</h2></section>"}}
	b, err := New().AssembleWith(ov, content.BusinessProfile{Name: "Converted Site"}, content.DefaultColors(), nil, sections, "")
	require.NoError(t, err)

	header, _ := b.Get(PathHeader)
	assert.Contains(t, header, `<nav><a href="/">Inicio</a></nav>`)
	footer, _ := b.Get(PathFooter)
	assert.Contains(t, footer, "<p>Pie</p>")
	css, _ := b.Get(PathCSS)
	assert.True(t, strings.HasSuffix(css, "/* Converted styles */\n.brand { color: red; }\n"))

	front, _ := b.Get(PathFrontPage)
	assert.Equal(t, []string{"converted-site-wp/sobre-nosotros"}, blocks.PatternRefs(front))
}

func TestDeclaredSlug(t *testing.T) {
	assert.Equal(t, "a/b", declaredSlug("<?php\n/**\n * Title: X\n * Slug: a/b\n */\n?>\n"))
	assert.Equal(t, "", declaredSlug("<?php\n/**\n */\n * Slug: a/b\n"))
}
