package theme

import (
	"bytes"
	"encoding/json"

	"anvilwp_server/internal/content"
)

type themeJSON struct {
	Schema        string         `json:"$schema"`
	Version       int            `json:"version"`
	Settings      settings       `json:"settings"`
	Styles        styles         `json:"styles"`
	TemplateParts []templatePart `json:"templateParts"`
}

type settings struct {
	AppearanceTools bool               `json:"appearanceTools"`
	Color           colorSettings      `json:"color"`
	Typography      typographySettings `json:"typography"`
	Layout          layoutSettings     `json:"layout"`
	Spacing         spacingSettings    `json:"spacing"`
	Custom          customSettings     `json:"custom"`
}

type colorSettings struct {
	DefaultPalette   bool           `json:"defaultPalette"`
	DefaultGradients bool           `json:"defaultGradients"`
	Palette          []paletteEntry `json:"palette"`
	Gradients        []gradient     `json:"gradients"`
}

type paletteEntry struct {
	Slug  string `json:"slug"`
	Color string `json:"color"`
	Name  string `json:"name"`
}

type gradient struct {
	Slug     string `json:"slug"`
	Gradient string `json:"gradient"`
	Name     string `json:"name"`
}

type typographySettings struct {
	FluidTypography bool         `json:"fluid"`
	FontFamilies    []fontFamily `json:"fontFamilies"`
	FontSizes       []fontSize   `json:"fontSizes"`
}

type fontFamily struct {
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	FontFamily string `json:"fontFamily"`
}

type fontSize struct {
	Slug string `json:"slug"`
	Size string `json:"size"`
	Name string `json:"name"`
}

type layoutSettings struct {
	ContentSize string `json:"contentSize"`
	WideSize    string `json:"wideSize"`
}

type spacingSettings struct {
	Units        []string      `json:"units"`
	SpacingSizes []spacingSize `json:"spacingSizes"`
}

type spacingSize struct {
	Slug string `json:"slug"`
	Size string `json:"size"`
	Name string `json:"name"`
}

type customSettings struct {
	TextDomain   string `json:"textDomain"`
	BusinessName string `json:"businessName"`
}

type styles struct {
	Color      styleColor            `json:"color"`
	Typography styleTypography       `json:"typography"`
	Elements   map[string]styleBlock `json:"elements"`
}

type styleColor struct {
	Background string `json:"background,omitempty"`
	Text       string `json:"text,omitempty"`
}

type styleTypography struct {
	FontFamily string `json:"fontFamily,omitempty"`
	FontSize   string `json:"fontSize,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
	LineHeight string `json:"lineHeight,omitempty"`
}

type styleBlock struct {
	Color      *styleColor      `json:"color,omitempty"`
	Typography *styleTypography `json:"typography,omitempty"`
}

type templatePart struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Area  string `json:"area"`
}

func renderThemeJSON(colors content.ColorScheme, name, themeSlug string) (string, error) {
	doc := themeJSON{
		Schema:  "https://schemas.wp.org/trunk/theme.json",
		Version: 3,
		Settings: settings{
			AppearanceTools: true,
			Color: colorSettings{
				Palette: []paletteEntry{
					{Slug: "primary", Color: colors.Primary, Name: "Primary"},
					{Slug: "accent", Color: colors.Accent, Name: "Accent"},
					{Slug: "secondary", Color: colors.Secondary, Name: "Secondary"},
					{Slug: "background", Color: "#0d1117", Name: "Background"},
					{Slug: "surface", Color: "#161b27", Name: "Surface"},
					{Slug: "surface-elevated", Color: "#1e2535", Name: "Surface Elevated"},
					{Slug: "text", Color: "#e2e8f0", Name: "Text"},
					{Slug: "text-muted", Color: "#94a3b8", Name: "Text Muted"},
					{Slug: "success", Color: "#10b981", Name: "Success"},
					{Slug: "warning", Color: "#f59e0b", Name: "Warning"},
					{Slug: "error", Color: "#ef4444", Name: "Error"},
				},
				Gradients: []gradient{
					{Slug: "brand", Gradient: "linear-gradient(135deg, " + colors.Accent + " 0%, " + colors.Secondary + " 100%)", Name: "Brand"},
					{Slug: "hero", Gradient: "linear-gradient(135deg, " + colors.Primary + " 0%, " + colors.Accent + " 100%)", Name: "Hero"},
				},
			},
			Typography: typographySettings{
				FluidTypography: true,
				FontFamilies: []fontFamily{
					{Slug: "heading", Name: "Plus Jakarta Sans", FontFamily: "'Plus Jakarta Sans', sans-serif"},
					{Slug: "body", Name: "Inter", FontFamily: "'Inter', -apple-system, BlinkMacSystemFont, sans-serif"},
				},
				FontSizes: []fontSize{
					{Slug: "small", Size: "0.875rem", Name: "Small"},
					{Slug: "medium", Size: "1rem", Name: "Medium"},
					{Slug: "large", Size: "1.25rem", Name: "Large"},
					{Slug: "x-large", Size: "1.5rem", Name: "Extra Large"},
					{Slug: "xx-large", Size: "2.25rem", Name: "2X Large"},
					{Slug: "xxx-large", Size: "3rem", Name: "3X Large"},
				},
			},
			Layout: layoutSettings{ContentSize: "1200px", WideSize: "1400px"},
			Spacing: spacingSettings{
				Units: []string{"px", "em", "rem", "vh", "vw", "%"},
				SpacingSizes: []spacingSize{
					{Slug: "20", Size: "0.5rem", Name: "XS"},
					{Slug: "30", Size: "1rem", Name: "S"},
					{Slug: "40", Size: "1.5rem", Name: "M"},
					{Slug: "50", Size: "2.5rem", Name: "L"},
					{Slug: "60", Size: "4rem", Name: "XL"},
					{Slug: "70", Size: "6rem", Name: "XXL"},
				},
			},
			Custom: customSettings{TextDomain: themeSlug, BusinessName: name},
		},
		Styles: styles{
			Color: styleColor{Background: "var(--wp--preset--color--background)", Text: "var(--wp--preset--color--text)"},
			Typography: styleTypography{
				FontFamily: "var(--wp--preset--font-family--body)",
				FontSize:   "var(--wp--preset--font-size--medium)",
				LineHeight: "1.6",
			},
			Elements: map[string]styleBlock{
				"heading": {
					Color:      &styleColor{Text: "var(--wp--preset--color--text)"},
					Typography: &styleTypography{FontFamily: "var(--wp--preset--font-family--heading)", FontWeight: "700", LineHeight: "1.2"},
				},
				"link": {Color: &styleColor{Text: "var(--wp--preset--color--accent)"}},
				"button": {
					Color:      &styleColor{Background: "var(--wp--preset--color--accent)", Text: "#ffffff"},
					Typography: &styleTypography{FontWeight: "600"},
				},
			},
		},
		TemplateParts: []templatePart{
			{Name: "header", Title: "Header", Area: "header"},
			{Name: "footer", Title: "Footer", Area: "footer"},
		},
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
