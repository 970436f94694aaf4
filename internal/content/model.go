package content

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"anvilwp_server/internal/slug"
)

// DescriptionMaxLength bounds the SEO description, in runes.
const DescriptionMaxLength = 160

// BusinessType is the closed set of business categories a theme is built for.
type BusinessType string

const (
	Restaurant BusinessType = "Restaurant"
	Agency     BusinessType = "Agency"
	ECommerce  BusinessType = "eCommerce"
	Blog       BusinessType = "Blog"
	SaaS       BusinessType = "SaaS"
	Portfolio  BusinessType = "Portfolio"
	Other      BusinessType = "Other"
)

var businessTypeAliases = map[string]BusinessType{
	"restaurant":      Restaurant,
	"restaurante":     Restaurant,
	"cafe":            Restaurant,
	"cafeteria":       Restaurant,
	"agency":          Agency,
	"agencia":         Agency,
	"agencia-digital": Agency,
	"ecommerce":       ECommerce,
	"e-commerce":      ECommerce,
	"tienda":          ECommerce,
	"tienda-online":   ECommerce,
	"blog":            Blog,
	"saas":            SaaS,
	"portfolio":       Portfolio,
	"portafolio":      Portfolio,
	"other":           Other,
	"otro":            Other,
}

// ParseBusinessType maps a free-form type (English or Spanish) to the enum.
// Unknown values map to Other with ok=false.
func ParseBusinessType(s string) (BusinessType, bool) {
	key := slug.Normalize(s, 0)
	if t, ok := businessTypeAliases[key]; ok {
		return t, true
	}
	return Other, false
}

var labels = map[BusinessType]string{
	Restaurant: "restaurante",
	Agency:     "agencia digital",
	ECommerce:  "tienda online",
	Blog:       "blog",
	SaaS:       "software SaaS",
	Portfolio:  "portafolio",
	Other:      "negocio",
}

// Label is the Spanish display name used in generated copy.
func (t BusinessType) Label() string {
	if l, ok := labels[t]; ok {
		return cases.Title(language.Spanish, cases.NoLower).String(l)
	}
	return "Negocio"
}

// BusinessProfile identifies the business a theme is generated for.
type BusinessProfile struct {
	Name        string
	Slug        string
	Type        BusinessType
	Tagline     string
	Description string
}

// Default brand colors, applied per channel.
const (
	DefaultPrimary   = "#0A1E3D"
	DefaultAccent    = "#3B82F6"
	DefaultSecondary = "#8B5CF6"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidHex reports whether s is a #rgb or #rrggbb color.
func ValidHex(s string) bool { return hexColor.MatchString(s) }

// ColorScheme is the brand color triple.
type ColorScheme struct {
	Primary   string `json:"primary"`
	Accent    string `json:"accent"`
	Secondary string `json:"secondary"`
}

// DefaultColors returns the fallback scheme.
func DefaultColors() ColorScheme {
	return ColorScheme{Primary: DefaultPrimary, Accent: DefaultAccent, Secondary: DefaultSecondary}
}

// WithDefaults replaces every missing or malformed channel with its default.
func (c ColorScheme) WithDefaults() ColorScheme {
	pick := func(v, def string) string {
		v = strings.TrimSpace(v)
		if ValidHex(v) {
			return v
		}
		return def
	}
	return ColorScheme{
		Primary:   pick(c.Primary, DefaultPrimary),
		Accent:    pick(c.Accent, DefaultAccent),
		Secondary: pick(c.Secondary, DefaultSecondary),
	}
}

// Invalid lists the channels that are not valid hex colors.
func (c ColorScheme) Invalid() []string {
	var bad []string
	for _, ch := range []struct{ name, value string }{
		{"primary", c.Primary},
		{"accent", c.Accent},
		{"secondary", c.Secondary},
	} {
		if !ValidHex(ch.value) {
			bad = append(bad, ch.name)
		}
	}
	return bad
}

// RGB splits a valid hex color into its channels.
func RGB(hex string) (r, g, b uint8, ok bool) {
	if !ValidHex(hex) {
		return 0, 0, 0, false
	}
	h := hex[1:]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// HeroContent is the top banner. Title and PrimaryCTA are always set after
// defaulting; the other fields are omitted from markup when empty.
type HeroContent struct {
	Badge        string
	Title        string
	TitleAccent  string
	Subtitle     string
	PrimaryCTA   string
	SecondaryCTA string
}

// SectionKind tags the Section variants.
type SectionKind string

const (
	KindHero         SectionKind = "hero"
	KindFeatures     SectionKind = "features"
	KindServices     SectionKind = "services"
	KindStats        SectionKind = "stats"
	KindTestimonials SectionKind = "testimonials"
	KindContact      SectionKind = "contact"
	KindCTA          SectionKind = "cta"
	KindHTML         SectionKind = "html"
)

// CanonicalOrder is the order patterns appear in on the front page.
var CanonicalOrder = []SectionKind{
	KindHero, KindFeatures, KindServices, KindStats, KindTestimonials, KindContact, KindCTA, KindHTML,
}

func rank(k SectionKind) int {
	for i, kind := range CanonicalOrder {
		if kind == k {
			return i
		}
	}
	return len(CanonicalOrder)
}

// Section is one content block of the landing page.
type Section interface {
	Kind() SectionKind
	// Key names the pattern file and the last segment of the pattern slug.
	Key() string
	// Empty sections are never rendered.
	Empty() bool
}

// FeatureItem is shared by features and services.
type FeatureItem struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type StatItem struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Testimonial struct {
	Quote   string `json:"quote"`
	Author  string `json:"author"`
	Role    string `json:"role"`
	Company string `json:"company,omitempty"`
}

type FeaturesSection struct {
	Title    string
	Subtitle string
	Items    []FeatureItem
}

func (s FeaturesSection) Kind() SectionKind { return KindFeatures }
func (s FeaturesSection) Key() string       { return string(KindFeatures) }
func (s FeaturesSection) Empty() bool       { return len(s.Items) == 0 }

type ServicesSection struct {
	Title string
	Items []FeatureItem
}

func (s ServicesSection) Kind() SectionKind { return KindServices }
func (s ServicesSection) Key() string       { return string(KindServices) }
func (s ServicesSection) Empty() bool       { return len(s.Items) == 0 }

type StatsSection struct {
	Title string
	Items []StatItem
}

func (s StatsSection) Kind() SectionKind { return KindStats }
func (s StatsSection) Key() string       { return string(KindStats) }
func (s StatsSection) Empty() bool       { return len(s.Items) == 0 }

type TestimonialsSection struct {
	Title string
	Items []Testimonial
}

func (s TestimonialsSection) Kind() SectionKind { return KindTestimonials }
func (s TestimonialsSection) Key() string       { return string(KindTestimonials) }
func (s TestimonialsSection) Empty() bool       { return len(s.Items) == 0 }

// ContactSection renders the contact form. It carries no items and is
// present whenever it was requested.
type ContactSection struct {
	Title       string
	Subtitle    string
	SubmitLabel string
}

func (s ContactSection) Kind() SectionKind { return KindContact }
func (s ContactSection) Key() string       { return string(KindContact) }
func (s ContactSection) Empty() bool       { return false }

// CTASection is a single title/subtitle/button triple.
type CTASection struct {
	Title    string
	Subtitle string
	Button   string
}

func (s CTASection) Kind() SectionKind { return KindCTA }
func (s CTASection) Key() string       { return string(KindCTA) }
func (s CTASection) Empty() bool       { return s.Title == "" && s.Subtitle == "" && s.Button == "" }

// HTMLSection is a block of converted markup keyed by its heading slug.
type HTMLSection struct {
	SectionKey string
	Title      string
	Markup     string
}

func (s HTMLSection) Kind() SectionKind { return KindHTML }
func (s HTMLSection) Key() string       { return s.SectionKey }
func (s HTMLSection) Empty() bool       { return strings.TrimSpace(s.Markup) == "" }

// Canonical drops empty sections and duplicate keys (first wins) and sorts
// the rest into canonical order. Sections of equal rank keep their order.
func Canonical(sections []Section) []Section {
	seen := make(map[string]bool, len(sections))
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		if s == nil || s.Empty() || seen[s.Key()] {
			continue
		}
		seen[s.Key()] = true
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i].Kind()) < rank(out[j].Kind())
	})
	return out
}

// Site is the fully defaulted content model a theme is assembled from.
type Site struct {
	Profile  BusinessProfile
	Colors   ColorScheme
	Hero     *HeroContent
	Sections []Section
	Keywords []string
}

// Section returns the first section of the given kind.
func (s Site) Section(kind SectionKind) (Section, bool) {
	for _, sec := range s.Sections {
		if sec.Kind() == kind {
			return sec, true
		}
	}
	return nil, false
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:max]))
}
