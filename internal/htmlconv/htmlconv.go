// Package htmlconv turns a static HTML page into a content model made of
// converted sections plus header, footer and CSS overrides.
package htmlconv

import (
	"bytes"
	"fmt"
	"log"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"anvilwp_server/internal/content"
	"anvilwp_server/internal/errs"
	"anvilwp_server/internal/slug"
	"anvilwp_server/internal/theme"
)

const (
	// DefaultMaxBytes bounds the accepted input size.
	DefaultMaxBytes = 2 << 20

	// FallbackName is used when the page has no <title>.
	FallbackName = "Converted Site"

	keyMaxLength = 30
)

var (
	tailwindConfig  = regexp.MustCompile(`tailwind\.config\s*=\s*(\{[\s\S]*?\});`)
	tailwindPrimary = regexp.MustCompile(`primary["']?\s*:\s*["']([^"']+)["']`)
	tailwindBg      = regexp.MustCompile(`background(-light|-dark)?["']?\s*:\s*["']([^"']+)["']`)
)

// Result is a converted page.
type Result struct {
	Site       content.Site
	HeaderHTML string
	FooterHTML string
	CSS        string
}

// Overrides returns the pieces the assembler should take verbatim.
func (r Result) Overrides() theme.Overrides {
	return theme.Overrides{HeaderHTML: r.HeaderHTML, FooterHTML: r.FooterHTML, ExtraCSS: r.CSS}
}

// Converter parses HTML pages. It holds no per-call state.
type Converter struct {
	maxBytes int
}

// New creates a Converter. A non-positive maxBytes uses DefaultMaxBytes.
func New(maxBytes int) *Converter {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Converter{maxBytes: maxBytes}
}

// Convert extracts the page title, brand colors, nav, footer, style blocks
// and sections. The first <section> becomes the hero; later sections are
// kept when they carry an h2 or h3 and are keyed by its slug.
func (c *Converter) Convert(src string) (Result, error) {
	if strings.TrimSpace(src) == "" {
		return Result{}, &errs.ValidationError{Fields: map[string]string{"html": "cannot be blank"}}
	}
	if len(src) > c.maxBytes {
		return Result{}, &errs.ValidationError{Fields: map[string]string{"html": fmt.Sprintf("must be at most %d bytes", c.maxBytes)}}
	}

	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return Result{}, errs.Parse(errs.SourceHTML, "failed to parse HTML", err)
	}

	var res Result
	name := collapse(textOf(findFirst(doc, atom.Title)))
	if name == "" {
		name = FallbackName
	}
	description := ""
	if meta := findMeta(doc, "description"); meta != "" {
		description = collapse(meta)
	}
	if description == "" {
		description = "Tema convertido desde HTML por AnvilWP"
	}
	res.Site.Profile = content.BusinessProfile{
		Name:        name,
		Slug:        slug.Theme(name),
		Type:        content.Other,
		Description: description,
	}
	res.Site.Colors = extractColors(doc)

	var styles []string
	for _, n := range findAll(doc, atom.Style) {
		if css := strings.TrimSpace(textOf(n)); css != "" {
			styles = append(styles, css)
		}
	}
	res.CSS = strings.Join(styles, "\n\n")

	if nav := findFirst(doc, atom.Nav); nav != nil {
		if res.HeaderHTML, err = render(nav); err != nil {
			return Result{}, errs.Parse(errs.SourceHTML, "failed to render nav", err)
		}
	}
	if footer := findFirst(doc, atom.Footer); footer != nil {
		if res.FooterHTML, err = render(footer); err != nil {
			return Result{}, errs.Parse(errs.SourceHTML, "failed to render footer", err)
		}
	}

	keys := map[string]int{}
	var sections []content.Section
	for i, n := range findAll(doc, atom.Section) {
		markup, err := render(n)
		if err != nil {
			return Result{}, errs.Parse(errs.SourceHTML, fmt.Sprintf("failed to render section %d", i), err)
		}
		if i == 0 {
			keys["hero"] = 1
			sections = append(sections, content.HTMLSection{
				SectionKey: "hero",
				Title:      orDefault(collapse(textOf(findFirst(n, atom.H1))), "Hero"),
				Markup:     markup,
			})
			continue
		}
		heading := collapse(textOf(findFirst(n, atom.H2, atom.H3)))
		if heading == "" {
			continue
		}
		sections = append(sections, content.HTMLSection{
			SectionKey: uniqueKey(keys, sectionKey(heading, i)),
			Title:      heading,
			Markup:     markup,
		})
	}
	if len(sections) == 0 && res.HeaderHTML == "" && res.FooterHTML == "" {
		return Result{}, errs.Parse(errs.SourceHTML, "no nav, footer or section elements found", nil)
	}
	res.Site.Sections = content.Canonical(sections)

	log.Printf("Info: converted HTML page %q: %d sections, header=%t footer=%t css=%d bytes",
		name, len(res.Site.Sections), res.HeaderHTML != "", res.FooterHTML != "", len(res.CSS))
	return res, nil
}

// extractColors reads primary and background from an inline Tailwind
// config. primary maps to the accent channel and background to primary.
func extractColors(doc *html.Node) content.ColorScheme {
	colors := content.ColorScheme{}
	for _, script := range findAll(doc, atom.Script) {
		m := tailwindConfig.FindStringSubmatch(textOf(script))
		if m == nil {
			continue
		}
		if p := tailwindPrimary.FindStringSubmatch(m[1]); p != nil {
			colors.Accent = p[1]
		}
		colors.Primary = background(m[1])
		break
	}
	return colors.WithDefaults()
}

// background picks background-dark, then background, then
// background-light.
func background(config string) string {
	rank := map[string]int{"-dark": 0, "": 1, "-light": 2}
	best, bestRank := "", len(rank)
	for _, m := range tailwindBg.FindAllStringSubmatch(config, -1) {
		if r := rank[m[1]]; r < bestRank {
			best, bestRank = m[2], r
		}
	}
	return best
}

func sectionKey(heading string, i int) string {
	key := slug.Normalize(heading, keyMaxLength)
	if key == slug.Fallback && !strings.Contains(strings.ToLower(heading), slug.Fallback) {
		return fmt.Sprintf("section-%d", i)
	}
	return key
}

// uniqueKey suffixes repeated keys with -2, -3 and so on.
func uniqueKey(seen map[string]int, key string) string {
	seen[key]++
	if n := seen[key]; n > 1 {
		candidate := fmt.Sprintf("%s-%d", key, n)
		for seen[candidate] > 0 {
			seen[key]++
			candidate = fmt.Sprintf("%s-%d", key, seen[key])
		}
		seen[candidate] = 1
		return candidate
	}
	return key
}

// dropped elements are left out of converted markup. Besides script and
// style these are the raw-text elements whose content html.Render writes
// back unescaped.
var dropped = map[atom.Atom]bool{
	atom.Script:    true,
	atom.Style:     true,
	atom.Noscript:  true,
	atom.Iframe:    true,
	atom.Xmp:       true,
	atom.Noembed:   true,
	atom.Noframes:  true,
	atom.Plaintext: true,
}

// render serializes n without comments, scripts or style blocks. Style
// contents are carried separately in Result.CSS.
func render(n *html.Node) (string, error) {
	clone := cloneClean(n)
	var buf bytes.Buffer
	if err := html.Render(&buf, clone); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func cloneClean(n *html.Node) *html.Node {
	out := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.CommentNode || (c.Type == html.ElementNode && dropped[c.DataAtom]) {
			continue
		}
		out.AppendChild(cloneClean(c))
	}
	return out
}

// findFirst returns the first element matching any of atoms, depth first.
func findFirst(n *html.Node, atoms ...atom.Atom) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode {
		for _, a := range atoms {
			if n.DataAtom == a {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, atoms...); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every outermost element with the given atom; matches
// nested inside a match are not returned separately.
func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == a {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func findMeta(doc *html.Node, name string) string {
	var value string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Meta && strings.EqualFold(attr(n, "name"), name) {
			value = attr(n, "content")
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(doc)
	return value
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textOf concatenates the text nodes under n.
func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
