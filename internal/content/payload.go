package content

import (
	"encoding/json"
	"strings"
)

// Payload is the JSON shape produced by the LLM and echoed back to clients
// as themeData. Both the simplified (sections[]) and expanded prompt shapes
// decode into it.
type Payload struct {
	BusinessName string           `json:"businessName"`
	BusinessType string           `json:"businessType,omitempty"`
	Tagline      string           `json:"tagline,omitempty"`
	Description  string           `json:"description,omitempty"`
	Hero         *HeroPayload     `json:"hero,omitempty"`
	Features     *FeatureList     `json:"features,omitempty"`
	Services     *FeatureList     `json:"services,omitempty"`
	Stats        *StatList        `json:"stats,omitempty"`
	Testimonials *TestimonialList `json:"testimonials,omitempty"`
	Contact      *CTAPayload      `json:"contact,omitempty"`
	CTA          *CTAPayload      `json:"cta,omitempty"`
	Sections     []GenericSection `json:"sections,omitempty"`
	Colors       *ColorScheme     `json:"colors,omitempty"`
	SEO          *SEOPayload      `json:"seo,omitempty"`
}

type HeroPayload struct {
	Badge       string     `json:"badge,omitempty"`
	Title       string     `json:"title,omitempty"`
	TitleAccent string     `json:"titleAccent,omitempty"`
	Subtitle    string     `json:"subtitle,omitempty"`
	CTA         CTAButtons `json:"cta"`
}

// CTAButtons accepts either a plain string (primary only) or
// {"primary": ..., "secondary": ...}.
type CTAButtons struct {
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
}

func (c *CTAButtons) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*c = CTAButtons{Primary: text}
		return nil
	}
	type plain CTAButtons
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*c = CTAButtons(obj)
	return nil
}

type FeatureList struct {
	Title    string        `json:"title,omitempty"`
	Subtitle string        `json:"subtitle,omitempty"`
	Items    []FeatureItem `json:"items"`
}

type TestimonialList struct {
	Title string        `json:"title,omitempty"`
	Items []Testimonial `json:"items"`
}

// StatList accepts either a bare array of stats or {"title", "items"}.
type StatList struct {
	Title string     `json:"title,omitempty"`
	Items []StatItem `json:"items"`
}

func (s *StatList) UnmarshalJSON(data []byte) error {
	if strings.HasPrefix(strings.TrimSpace(string(data)), "[") {
		var items []StatItem
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*s = StatList{Items: items}
		return nil
	}
	type plain StatList
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*s = StatList(obj)
	return nil
}

type CTAPayload struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Button   string `json:"button,omitempty"`
}

type SEOPayload struct {
	Keywords []string `json:"keywords,omitempty"`
}

// GenericSection is an entry of the simplified shape's sections array.
// Items are decoded according to Type.
type GenericSection struct {
	Type     string          `json:"type"`
	Title    string          `json:"title,omitempty"`
	Subtitle string          `json:"subtitle,omitempty"`
	Button   string          `json:"button,omitempty"`
	Items    json.RawMessage `json:"items,omitempty"`
}

// Payload converts the site back into its JSON shape.
func (s Site) Payload() Payload {
	p := Payload{
		BusinessName: s.Profile.Name,
		BusinessType: string(s.Profile.Type),
		Tagline:      s.Profile.Tagline,
		Description:  s.Profile.Description,
		Colors:       &ColorScheme{Primary: s.Colors.Primary, Accent: s.Colors.Accent, Secondary: s.Colors.Secondary},
	}
	if s.Hero != nil {
		p.Hero = &HeroPayload{
			Badge:       s.Hero.Badge,
			Title:       s.Hero.Title,
			TitleAccent: s.Hero.TitleAccent,
			Subtitle:    s.Hero.Subtitle,
			CTA:         CTAButtons{Primary: s.Hero.PrimaryCTA, Secondary: s.Hero.SecondaryCTA},
		}
	}
	for _, sec := range s.Sections {
		switch v := sec.(type) {
		case FeaturesSection:
			p.Features = &FeatureList{Title: v.Title, Subtitle: v.Subtitle, Items: v.Items}
		case ServicesSection:
			p.Services = &FeatureList{Title: v.Title, Items: v.Items}
		case StatsSection:
			p.Stats = &StatList{Title: v.Title, Items: v.Items}
		case TestimonialsSection:
			p.Testimonials = &TestimonialList{Title: v.Title, Items: v.Items}
		case ContactSection:
			p.Contact = &CTAPayload{Title: v.Title, Subtitle: v.Subtitle, Button: v.SubmitLabel}
		case CTASection:
			p.CTA = &CTAPayload{Title: v.Title, Subtitle: v.Subtitle, Button: v.Button}
		}
	}
	if len(s.Keywords) > 0 {
		p.SEO = &SEOPayload{Keywords: s.Keywords}
	}
	return p
}

// MarshalJSON renders the site in its payload shape.
func (s Site) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Payload())
}

// UnmarshalJSON accepts numeric stat values such as 500.
func (s *StatItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Value json.RawMessage `json:"value"`
		Label string          `json:"label"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Label = raw.Label
	s.Value = ""
	if len(raw.Value) == 0 || string(raw.Value) == "null" {
		return nil
	}
	var text string
	if err := json.Unmarshal(raw.Value, &text); err == nil {
		s.Value = text
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(raw.Value, &num); err != nil {
		return err
	}
	s.Value = num.String()
	return nil
}
