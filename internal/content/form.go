package content

import (
	"errors"
	"fmt"
	"log"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"anvilwp_server/internal/errs"
	"anvilwp_server/internal/slug"
)

// FormInput is the explicit form submission of the theme builder.
type FormInput struct {
	BusinessName string       `json:"businessName"`
	BusinessType string       `json:"businessType"`
	Tagline      string       `json:"tagline"`
	Sections     []string     `json:"sections"`
	PrimaryCTA   string       `json:"primaryCta"`
	Colors       *ColorScheme `json:"colors,omitempty"`
}

var sectionTokens = map[string]SectionKind{
	"hero":            KindHero,
	"portada":         KindHero,
	"features":        KindFeatures,
	"caracteristicas": KindFeatures,
	"services":        KindServices,
	"servicios":       KindServices,
	"stats":           KindStats,
	"numeros":         KindStats,
	"stats-numeros":   KindStats,
	"estadisticas":    KindStats,
	"testimonials":    KindTestimonials,
	"testimonios":     KindTestimonials,
	"contact":         KindContact,
	"contacto":        KindContact,
	"cta":             KindCTA,
}

// ParseSectionToken maps a form section name such as "Stats/Números" or a
// section type from the LLM to its kind.
func ParseSectionToken(token string) (SectionKind, bool) {
	kind, ok := sectionTokens[slug.Normalize(token, 0)]
	return kind, ok
}

// Validate reports missing identity fields and a section list with no
// recognised entry.
func (in FormInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.BusinessName, validation.Required.Error("business name is required"),
			validation.By(notBlank("business name is required"))),
		validation.Field(&in.BusinessType, validation.Required.Error("business type is required"),
			validation.By(notBlank("business type is required"))),
		validation.Field(&in.Sections, validation.Required.Error("choose at least one section"),
			validation.By(func(value any) error {
				for _, token := range value.([]string) {
					if _, ok := ParseSectionToken(token); ok {
						return nil
					}
				}
				return validation.NewError("theme.form.sections_unknown", "none of the sections is recognised")
			})),
		validation.Field(&in.Colors, validation.By(func(value any) error {
			c, _ := value.(*ColorScheme)
			if c == nil {
				return nil
			}
			for _, v := range []string{c.Primary, c.Accent, c.Secondary} {
				if v != "" && !ValidHex(v) {
					return validation.NewError("theme.form.color_invalid", fmt.Sprintf("%q is not a hex color", v))
				}
			}
			return nil
		})),
	)
}

func notBlank(msg string) validation.RuleFunc {
	return func(value any) error {
		if s, _ := value.(string); strings.TrimSpace(s) == "" {
			return validation.NewError("theme.form.blank", msg)
		}
		return nil
	}
}

// FromForm validates the submission and builds a Site whose sections are
// filled with placeholder copy for the business type.
func FromForm(in FormInput) (Site, error) {
	if err := in.Validate(); err != nil {
		return Site{}, toValidationError(err)
	}

	name := strings.TrimSpace(in.BusinessName)
	bt, ok := ParseBusinessType(in.BusinessType)
	if !ok {
		log.Printf("Info: unknown business type %q, using %s", in.BusinessType, bt)
	}
	tagline := strings.TrimSpace(in.Tagline)
	description := tagline
	if description == "" {
		description = defaultDescription(name, bt)
	}
	primaryCTA := strings.TrimSpace(in.PrimaryCTA)

	site := Site{
		Profile: BusinessProfile{
			Name:        name,
			Slug:        slug.Theme(name),
			Type:        bt,
			Tagline:     tagline,
			Description: truncateRunes(description, DescriptionMaxLength),
		},
		Colors: DefaultColors(),
	}
	if in.Colors != nil {
		site.Colors = in.Colors.WithDefaults()
	}

	copyFor := placeholdersFor(bt)
	var sections []Section
	for _, token := range in.Sections {
		kind, ok := ParseSectionToken(token)
		if !ok {
			log.Printf("WARN: ignoring unknown section %q", token)
			continue
		}
		switch kind {
		case KindHero:
			if site.Hero == nil {
				site.Hero = &HeroContent{
					Title:      name,
					Subtitle:   orDefault(tagline, defaultHeroSubtitle(name)),
					PrimaryCTA: orDefault(primaryCTA, DefaultPrimaryCTA),
				}
			}
		case KindFeatures:
			sections = append(sections, FeaturesSection{Title: DefaultFeaturesTitle, Items: copyFor.features})
		case KindServices:
			sections = append(sections, ServicesSection{Title: DefaultServicesTitle, Items: copyFor.services})
		case KindStats:
			sections = append(sections, StatsSection{Items: copyFor.stats})
		case KindTestimonials:
			sections = append(sections, TestimonialsSection{Title: DefaultTestimonialsTitle, Items: copyFor.testimonials})
		case KindContact:
			sections = append(sections, contactSection("", "", ""))
		case KindCTA:
			sections = append(sections, ctaSection(DefaultCTATitle,
				fmt.Sprintf("Descubre lo que %s puede hacer por ti.", name),
				orDefault(primaryCTA, DefaultCTAButton)))
		}
	}
	site.Sections = Canonical(sections)
	return site, nil
}

func toValidationError(err error) error {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return &errs.ValidationError{Cause: err}
	}
	fields := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		fields[field] = ferr.Error()
	}
	return &errs.ValidationError{Fields: fields, Cause: err}
}
