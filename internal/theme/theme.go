// Package theme assembles rendered patterns, parts and templates into a
// complete block theme bundle.
package theme

import (
	"fmt"
	"log"
	"strings"
	"time"

	"anvilwp_server/internal/blocks"
	"anvilwp_server/internal/content"
	"anvilwp_server/internal/errs"
	"anvilwp_server/internal/patterns"
	"anvilwp_server/internal/slug"
	"anvilwp_server/internal/stylesheet"
)

const (
	DefaultAuthor    = "AnvilWP"
	DefaultAuthorURI = "https://anvilwp.com"

	themeTags = "full-site-editing, block-patterns, one-column, custom-colors, editor-style"
)

// Assembler builds theme bundles. The zero value is not usable; use New.
type Assembler struct {
	now       func() time.Time
	author    string
	authorURI string
	extras    bool
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithClock sets the clock used for the footer copyright year.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		if now != nil {
			a.now = now
		}
	}
}

// WithAuthor sets the style.css author fields. Empty values keep the
// defaults.
func WithAuthor(name, uri string) Option {
	return func(a *Assembler) {
		if name != "" {
			a.author = name
		}
		if uri != "" {
			a.authorURI = uri
		}
	}
}

// WithExtras adds README.md, page and single templates and assets/js/theme.js.
func WithExtras(enabled bool) Option {
	return func(a *Assembler) { a.extras = enabled }
}

// New creates an Assembler.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		now:       time.Now,
		author:    DefaultAuthor,
		authorURI: DefaultAuthorURI,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Overrides replaces generated pieces with markup converted from an
// existing page.
type Overrides struct {
	HeaderHTML string
	FooterHTML string
	ExtraCSS   string
}

// Assemble builds the bundle for a defaulted content model. Empty sections
// are skipped and never referenced from templates. Invalid colors or a
// missing business name fail with a GenerationError.
func (a *Assembler) Assemble(profile content.BusinessProfile, colors content.ColorScheme, hero *content.HeroContent, sections []content.Section, themeSlug string) (Bundle, error) {
	return a.AssembleWith(Overrides{}, profile, colors, hero, sections, themeSlug)
}

// AssembleSite is Assemble for a Site.
func (a *Assembler) AssembleSite(site content.Site) (Bundle, error) {
	return a.Assemble(site.Profile, site.Colors, site.Hero, site.Sections, site.Profile.Slug)
}

// AssembleWith is Assemble with converted header, footer or CSS.
func (a *Assembler) AssembleWith(ov Overrides, profile content.BusinessProfile, colors content.ColorScheme, hero *content.HeroContent, sections []content.Section, themeSlug string) (Bundle, error) {
	name := strings.TrimSpace(profile.Name)
	if name == "" {
		return Bundle{}, errs.Generation("business name is required", nil)
	}
	if bad := colors.Invalid(); len(bad) > 0 {
		return Bundle{}, errs.Generation(fmt.Sprintf("invalid %s color", strings.Join(bad, ", ")), nil)
	}
	if themeSlug == "" {
		themeSlug = slug.Theme(name)
	}
	prefix := slug.Identifier(themeSlug)

	files := make(map[string]string)
	var rendered []patterns.Rendered
	if hero != nil {
		rendered = append(rendered, patterns.RenderHero(themeSlug, *hero))
	}
	hasContact := false
	for _, s := range content.Canonical(sections) {
		r, err := patterns.Render(themeSlug, s)
		if err != nil {
			return Bundle{}, errs.Generation("render "+s.Key()+" pattern", err)
		}
		if s.Kind() == content.KindContact {
			hasContact = true
		}
		rendered = append(rendered, r)
	}
	slugs := make([]string, 0, len(rendered))
	for _, r := range rendered {
		if _, dup := files[r.Path()]; dup {
			return Bundle{}, errs.Generation("duplicate pattern "+r.Key, nil)
		}
		files[r.Path()] = r.Content
		slugs = append(slugs, r.Slug)
	}

	description := profile.Description
	if description == "" {
		description = profile.Tagline
	}
	meta := metaView{
		Name:        name,
		Slug:        themeSlug,
		Prefix:      prefix,
		Description: description,
		Author:      a.author,
		AuthorURI:   a.authorURI,
		Tags:        themeTags,
		HasContact:  hasContact,
		Extras:      a.extras,
	}

	var err error
	if files[PathStyle], err = execText(PathStyle, meta); err != nil {
		return Bundle{}, errs.Generation("render style.css", err)
	}
	if files[PathFunctions], err = execText(PathFunctions, meta); err != nil {
		return Bundle{}, errs.Generation("render functions.php", err)
	}
	if files[PathThemeJSON], err = renderThemeJSON(colors, name, themeSlug); err != nil {
		return Bundle{}, errs.Generation("render theme.json", err)
	}

	css := stylesheet.Render(colors, name)
	if extra := strings.TrimSpace(ov.ExtraCSS); extra != "" {
		css += "\n/* Converted styles */\n" + extra + "\n"
	}
	files[PathCSS] = css

	files[PathHeader] = headerPart()
	if ov.HeaderHTML != "" {
		files[PathHeader] = convertedPart("anvil-header", ov.HeaderHTML)
	}
	files[PathFooter] = footerPart(name, profile.Tagline, a.now().Year())
	if ov.FooterHTML != "" {
		files[PathFooter] = convertedPart("anvil-footer", ov.FooterHTML)
	}

	front := pageTemplate(patternRefs(slugs)...)
	files[PathFrontPage] = front
	files[PathIndex] = front

	if a.extras {
		files[PathPage] = singularTemplate(false)
		files[PathSingle] = singularTemplate(true)
		files[PathJS] = themeJS
		meta.Files = append(sortedKeys(files), PathReadme)
		if files[PathReadme], err = execText(PathReadme, meta); err != nil {
			return Bundle{}, errs.Generation("render README.md", err)
		}
	}

	b := Bundle{Slug: themeSlug, Name: name, Patterns: slugs, files: files}
	if err := verify(b); err != nil {
		return Bundle{}, err
	}
	log.Printf("Info: assembled theme %s with %d files (%d patterns)", themeSlug, len(files), len(slugs))
	return b, nil
}

// verify checks block balance in every block markup file and that every
// pattern reference in a template resolves to an emitted pattern file with
// the same slug.
func verify(b Bundle) error {
	emitted := make(map[string]bool, len(b.Patterns))
	for _, p := range b.Paths() {
		c := b.files[p]
		if strings.HasPrefix(p, patternsPrefix) || strings.HasSuffix(p, ".html") {
			if err := blocks.Validate(c); err != nil {
				return errs.Generation("malformed block markup in "+p, err)
			}
		}
		if strings.HasPrefix(p, patternsPrefix) {
			if s := declaredSlug(c); s != "" {
				emitted[s] = true
			}
		}
	}
	for _, p := range []string{PathFrontPage, PathIndex} {
		for _, ref := range blocks.PatternRefs(b.files[p]) {
			if !emitted[ref] {
				return errs.Generation(fmt.Sprintf("%s references missing pattern %s", p, ref), nil)
			}
		}
	}
	return nil
}

// declaredSlug reads the Slug: line of a pattern header.
func declaredSlug(pattern string) string {
	for _, line := range strings.Split(pattern, "\n") {
		if v, ok := strings.CutPrefix(line, " * Slug: "); ok {
			return strings.TrimSpace(v)
		}
		if line == " */" {
			break
		}
	}
	return ""
}

func sortedKeys(m map[string]string) []string {
	return Bundle{files: m}.Paths()
}
