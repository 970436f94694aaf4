package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anvilwp_server/internal/errs"
)

func TestFromFormCafeAzul(t *testing.T) {
	site, err := FromForm(FormInput{
		BusinessName: "Café Azul",
		BusinessType: "Restaurante",
		Sections:     []string{"Hero", "Contacto"},
	})
	require.NoError(t, err)

	assert.Equal(t, "cafe-azul-wp", site.Profile.Slug)
	assert.Equal(t, Restaurant, site.Profile.Type)
	require.NotNil(t, site.Hero)
	assert.Equal(t, "Café Azul", site.Hero.Title)
	assert.Equal(t, DefaultPrimaryCTA, site.Hero.PrimaryCTA)
	assert.Equal(t, DefaultColors(), site.Colors)

	require.Len(t, site.Sections, 1)
	assert.Equal(t, KindContact, site.Sections[0].Kind())
}

func TestFromFormSectionTokens(t *testing.T) {
	site, err := FromForm(FormInput{
		BusinessName: "Nortia",
		BusinessType: "Agencia",
		Tagline:      "Crecemos contigo",
		PrimaryCTA:   "Pide presupuesto",
		Sections:     []string{"CTA", "Testimonios", "Stats/Números", "Servicios", "Características", "Galería"},
		Colors:       &ColorScheme{Primary: "#101010"},
	})
	require.NoError(t, err)

	assert.Nil(t, site.Hero)
	kinds := make([]SectionKind, 0, len(site.Sections))
	for _, s := range site.Sections {
		kinds = append(kinds, s.Kind())
	}
	assert.Equal(t, []SectionKind{KindFeatures, KindServices, KindStats, KindTestimonials, KindCTA}, kinds)
	assert.Equal(t, ColorScheme{Primary: "#101010", Accent: DefaultAccent, Secondary: DefaultSecondary}, site.Colors)

	services, _ := site.Section(KindServices)
	assert.Equal(t, placeholders[Agency].services, services.(ServicesSection).Items)

	cta, _ := site.Section(KindCTA)
	assert.Equal(t, "Pide presupuesto", cta.(CTASection).Button)
	assert.Equal(t, "Crecemos contigo", site.Profile.Description)
}

func TestFromFormUnknownTypeUsesGenericCopy(t *testing.T) {
	site, err := FromForm(FormInput{BusinessName: "Clínica Sol", BusinessType: "Clínica", Sections: []string{"Stats"}})
	require.NoError(t, err)
	assert.Equal(t, Other, site.Profile.Type)
	stats, _ := site.Section(KindStats)
	assert.Equal(t, placeholders[Other].stats, stats.(StatsSection).Items)
}

func TestFromFormValidation(t *testing.T) {
	tests := []struct {
		name   string
		in     FormInput
		fields []string
	}{
		{name: "both identity fields missing", in: FormInput{Sections: []string{"Hero"}}, fields: []string{"businessName", "businessType"}},
		{name: "blank name", in: FormInput{BusinessName: "   ", BusinessType: "Blog", Sections: []string{"Hero"}}, fields: []string{"businessName"}},
		{name: "no sections", in: FormInput{BusinessName: "A", BusinessType: "Blog"}, fields: []string{"sections"}},
		{name: "only unknown sections", in: FormInput{BusinessName: "A", BusinessType: "Blog", Sections: []string{"Blog", "Mapa"}}, fields: []string{"sections"}},
		{name: "bad color", in: FormInput{BusinessName: "A", BusinessType: "Blog", Sections: []string{"CTA"}, Colors: &ColorScheme{Accent: "blue"}}, fields: []string{"colors"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromForm(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValidation)

			var verr *errs.ValidationError
			require.ErrorAs(t, err, &verr)
			for _, f := range tt.fields {
				assert.Contains(t, verr.Fields, f)
			}
			assert.Len(t, verr.Fields, len(tt.fields))
		})
	}
}

func TestParseSectionToken(t *testing.T) {
	tests := map[string]SectionKind{
		"Hero":          KindHero,
		"Servicios":     KindServices,
		"Services":      KindServices,
		"Stats/Números": KindStats,
		"Testimonios":   KindTestimonials,
		"Contacto":      KindContact,
		"CTA":           KindCTA,
		"features":      KindFeatures,
	}
	for token, want := range tests {
		got, ok := ParseSectionToken(token)
		assert.True(t, ok, token)
		assert.Equal(t, want, got, token)
	}
	_, ok := ParseSectionToken("Blog")
	assert.False(t, ok)
}
