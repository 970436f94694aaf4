package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"anvilwp_server/internal/errs"
	"anvilwp_server/internal/slug"
)

// FromLLM builds a fully defaulted Site from LLM JSON. Fields with the wrong
// shape are dropped and replaced by defaults; only text that is not a JSON
// object fails.
func FromLLM(raw []byte) (Site, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Site{}, errs.Parse(errs.SourceLLM, "invalid JSON", err)
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return Site{}, errs.Parse(errs.SourceLLM, fmt.Sprintf("expected a JSON object, got %s", jsonKind(doc)), nil)
	}

	pruneInvalid(obj)

	pruned, err := json.Marshal(obj)
	if err != nil {
		return Site{}, errs.Parse(errs.SourceLLM, "re-encoding payload", err)
	}
	var p Payload
	if err := json.Unmarshal(pruned, &p); err != nil {
		return Site{}, errs.Parse(errs.SourceLLM, "decoding payload", err)
	}
	return FromPayload(p), nil
}

// maxPrunePasses bounds the fine-grained pruning before whole top-level
// fields are dropped.
const maxPrunePasses = 4

// pruneInvalid removes the values that fail the payload schema, as deep in
// the document as the failure is reported, so valid siblings survive.
func pruneInvalid(obj map[string]any) {
	for pass := 0; pass < maxPrunePasses; pass++ {
		issues, ok := schemaIssues(obj)
		if ok {
			return
		}
		failing := deepestLocations(issues)
		removed := 0
		for _, loc := range sortedKeys(failing) {
			if removeAt(obj, loc) {
				log.Printf("WARN: dropping LLM field %q: %s", loc, failing[loc])
				removed++
			}
		}
		sweep(obj)
		if removed == 0 {
			break
		}
	}

	issues, ok := schemaIssues(obj)
	if ok {
		return
	}
	dropped := map[string]string{}
	for _, issue := range issues {
		key := topLevelKey(issue.Location)
		if key == "" {
			continue
		}
		if _, seen := dropped[key]; !seen {
			dropped[key] = issue.Message
		}
	}
	for _, k := range sortedKeys(dropped) {
		log.Printf("WARN: dropping LLM field %q: %s", k, dropped[k])
		delete(obj, k)
	}
}

// schemaIssues validates obj and reports whether it passed. A failure that
// is not a schema violation is logged and treated as a pass.
func schemaIssues(obj map[string]any) ([]schemaIssue, bool) {
	err := payloadSchema.Validate(obj)
	if err == nil {
		return nil, true
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		log.Printf("WARN: LLM payload schema check failed: %v", err)
		return nil, true
	}
	return collectIssues(verr), false
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FromPayload applies defaults to a decoded payload.
func FromPayload(p Payload) Site {
	name := strings.TrimSpace(p.BusinessName)
	if name == "" {
		name = DefaultBusinessName
	}
	bt, _ := ParseBusinessType(p.BusinessType)
	tagline := strings.TrimSpace(p.Tagline)
	description := strings.TrimSpace(p.Description)
	if description == "" {
		description = tagline
	}
	if description == "" {
		description = defaultDescription(name, bt)
	}

	site := Site{
		Profile: BusinessProfile{
			Name:        name,
			Slug:        slug.Theme(name),
			Type:        bt,
			Tagline:     tagline,
			Description: truncateRunes(description, DescriptionMaxLength),
		},
		Hero: heroFromPayload(p.Hero, name, tagline),
	}
	if p.Colors != nil {
		site.Colors = p.Colors.WithDefaults()
	} else {
		site.Colors = DefaultColors()
	}
	if p.SEO != nil {
		for _, kw := range p.SEO.Keywords {
			if kw = strings.TrimSpace(kw); kw != "" {
				site.Keywords = append(site.Keywords, kw)
			}
		}
	}

	var sections []Section
	if p.Features != nil {
		sections = append(sections, FeaturesSection{
			Title:    orDefault(p.Features.Title, DefaultFeaturesTitle),
			Subtitle: strings.TrimSpace(p.Features.Subtitle),
			Items:    p.Features.Items,
		})
	}
	if p.Services != nil {
		sections = append(sections, ServicesSection{
			Title: orDefault(p.Services.Title, DefaultServicesTitle),
			Items: p.Services.Items,
		})
	}
	if p.Stats != nil {
		sections = append(sections, StatsSection{Title: strings.TrimSpace(p.Stats.Title), Items: p.Stats.Items})
	}
	if p.Testimonials != nil {
		sections = append(sections, TestimonialsSection{
			Title: orDefault(p.Testimonials.Title, DefaultTestimonialsTitle),
			Items: p.Testimonials.Items,
		})
	}
	if p.Contact != nil {
		sections = append(sections, contactSection(p.Contact.Title, p.Contact.Subtitle, p.Contact.Button))
	}
	if p.CTA != nil {
		if cta := ctaSection(p.CTA.Title, p.CTA.Subtitle, p.CTA.Button); !cta.Empty() {
			sections = append(sections, cta)
		}
	}
	sections = fillFromGeneric(sections, p.Sections)

	site.Sections = Canonical(sections)
	return site
}

func heroFromPayload(h *HeroPayload, name, tagline string) *HeroContent {
	if h == nil {
		h = &HeroPayload{}
	}
	subtitle := strings.TrimSpace(h.Subtitle)
	if subtitle == "" {
		subtitle = tagline
	}
	if subtitle == "" {
		subtitle = defaultHeroSubtitle(name)
	}
	return &HeroContent{
		Badge:        strings.TrimSpace(h.Badge),
		Title:        orDefault(h.Title, name),
		TitleAccent:  strings.TrimSpace(h.TitleAccent),
		Subtitle:     subtitle,
		PrimaryCTA:   orDefault(h.CTA.Primary, DefaultPrimaryCTA),
		SecondaryCTA: strings.TrimSpace(h.CTA.Secondary),
	}
}

// fillFromGeneric maps sections[] entries of the simplified prompt onto the
// canonical slots that are still empty.
func fillFromGeneric(sections []Section, generic []GenericSection) []Section {
	filled := map[SectionKind]bool{}
	for _, s := range sections {
		if !s.Empty() {
			filled[s.Kind()] = true
		}
	}
	for i, g := range generic {
		kind, ok := ParseSectionToken(g.Type)
		if !ok || kind == KindHero || filled[kind] {
			continue
		}
		sec, err := decodeGeneric(kind, g)
		if err != nil {
			log.Printf("WARN: ignoring sections[%d] (%s): %v", i, g.Type, err)
			continue
		}
		if sec.Empty() {
			continue
		}
		filled[kind] = true
		sections = append(sections, sec)
	}
	return sections
}

func decodeGeneric(kind SectionKind, g GenericSection) (Section, error) {
	switch kind {
	case KindFeatures, KindServices:
		var items []FeatureItem
		if err := decodeItems(g.Items, &items); err != nil {
			return nil, err
		}
		if kind == KindServices {
			return ServicesSection{Title: orDefault(g.Title, DefaultServicesTitle), Items: items}, nil
		}
		return FeaturesSection{Title: orDefault(g.Title, DefaultFeaturesTitle), Subtitle: strings.TrimSpace(g.Subtitle), Items: items}, nil
	case KindStats:
		var items []StatItem
		if err := decodeItems(g.Items, &items); err != nil {
			return nil, err
		}
		return StatsSection{Title: strings.TrimSpace(g.Title), Items: items}, nil
	case KindTestimonials:
		var items []Testimonial
		if err := decodeItems(g.Items, &items); err != nil {
			return nil, err
		}
		return TestimonialsSection{Title: orDefault(g.Title, DefaultTestimonialsTitle), Items: items}, nil
	case KindContact:
		return contactSection(g.Title, g.Subtitle, g.Button), nil
	case KindCTA:
		return ctaSection(g.Title, g.Subtitle, g.Button), nil
	}
	return nil, fmt.Errorf("unsupported section type %q", g.Type)
}

func decodeItems(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func contactSection(title, subtitle, button string) ContactSection {
	return ContactSection{
		Title:       orDefault(title, DefaultContactTitle),
		Subtitle:    orDefault(subtitle, DefaultContactSubtitle),
		SubmitLabel: orDefault(button, DefaultContactSubmit),
	}
}

// ctaSection fills the missing parts of a CTA that has at least one field.
func ctaSection(title, subtitle, button string) CTASection {
	title, subtitle, button = strings.TrimSpace(title), strings.TrimSpace(subtitle), strings.TrimSpace(button)
	if title == "" && subtitle == "" && button == "" {
		return CTASection{}
	}
	return CTASection{
		Title:    orDefault(title, DefaultCTATitle),
		Subtitle: orDefault(subtitle, DefaultCTASubtitle),
		Button:   orDefault(button, DefaultCTAButton),
	}
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
