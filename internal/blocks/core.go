package blocks

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// embeddedDelimiter matches block comment openers inside custom markup.
var embeddedDelimiter = regexp.MustCompile(`<!--(\s+/?wp:)`)

// Group wraps children in a core/group. attrs["tagName"] picks the element
// and attrs["anchor"] sets its id.
func Group(attrs Attrs, children ...Node) *Block {
	tag := "div"
	if t, ok := attrs["tagName"].(string); ok && t != "" {
		tag = t
	}
	class := classList("wp-block-group", alignClass(attrs), className(attrs), layoutClass(attrs))
	open := fmt.Sprintf(`<%s class="%s">`, tag, class)
	if id, ok := attrs["anchor"].(string); ok && id != "" {
		open = fmt.Sprintf(`<%s id="%s" class="%s">`, tag, html.EscapeString(id), class)
	}
	return &Block{
		Name:     "group",
		Attrs:    attrs,
		Open:     open,
		Close:    fmt.Sprintf("</%s>", tag),
		Children: children,
	}
}

// Heading renders an hN element. Level 2 is the block default and is left
// out of the attributes.
func Heading(attrs Attrs, level int, inner Inline) *Block {
	if level < 1 || level > 6 {
		level = 2
	}
	attrs = copyAttrs(attrs)
	if level != 2 {
		attrs["level"] = level
	}
	class := classList("wp-block-heading", textAlignClass(attrs, "textAlign"), className(attrs), fontSizeClass(attrs))
	return &Block{
		Name:  "heading",
		Attrs: attrs,
		Open:  fmt.Sprintf(`<h%d class="%s">%s</h%d>`, level, class, inner, level),
	}
}

// Paragraph renders a p element; attrs["align"] is the text alignment.
func Paragraph(attrs Attrs, inner Inline) *Block {
	class := classList(textAlignClass(attrs, "align"), className(attrs), fontSizeClass(attrs))
	open := "<p>"
	if class != "" {
		open = fmt.Sprintf(`<p class="%s">`, class)
	}
	return &Block{Name: "paragraph", Attrs: attrs, Open: open + string(inner) + "</p>"}
}

// Buttons is the flex container for Button blocks.
func Buttons(attrs Attrs, buttons ...Node) *Block {
	return &Block{
		Name:     "buttons",
		Attrs:    attrs,
		Open:     fmt.Sprintf(`<div class="%s">`, classList("wp-block-buttons", className(attrs), "is-layout-flex")),
		Close:    "</div>",
		Children: buttons,
	}
}

// Button renders a link button. An empty href renders an anchor without one.
func Button(attrs Attrs, label Inline, href string) *Block {
	link := `<a class="wp-block-button__link wp-element-button"`
	if href != "" {
		link += fmt.Sprintf(` href="%s"`, html.EscapeString(href))
	}
	link += ">" + string(label) + "</a>"
	return &Block{
		Name:  "button",
		Attrs: attrs,
		Open:  fmt.Sprintf(`<div class="%s">%s</div>`, classList("wp-block-button", className(attrs)), link),
	}
}

// Columns is a row of Column blocks.
func Columns(attrs Attrs, columns ...Node) *Block {
	return &Block{
		Name:     "columns",
		Attrs:    attrs,
		Open:     fmt.Sprintf(`<div class="%s">`, classList("wp-block-columns", alignClass(attrs), className(attrs), "is-layout-flex")),
		Close:    "</div>",
		Children: columns,
	}
}

// Column is a single cell of Columns. attrs["width"] sets the flex basis.
func Column(attrs Attrs, children ...Node) *Block {
	open := fmt.Sprintf(`<div class="%s">`, classList("wp-block-column", className(attrs), "is-layout-flow"))
	if w, ok := attrs["width"].(string); ok && w != "" {
		open = fmt.Sprintf(`<div class="%s" style="flex-basis:%s">`, classList("wp-block-column", className(attrs), "is-layout-flow"), w)
	}
	return &Block{Name: "column", Attrs: attrs, Open: open, Close: "</div>", Children: children}
}

// Separator renders a horizontal rule.
func Separator(attrs Attrs) *Block {
	return &Block{
		Name:  "separator",
		Attrs: attrs,
		Open:  fmt.Sprintf(`<hr class="%s"/>`, classList("wp-block-separator", className(attrs), "has-alpha-channel-opacity")),
	}
}

// CustomHTML wraps trusted markup in a core/html block. Block delimiters
// inside markup are escaped so they stay text.
func CustomHTML(markup string) *Block {
	markup = embeddedDelimiter.ReplaceAllString(strings.TrimSpace(markup), "&lt;!--$1")
	return &Block{Name: "html", Children: []Node{HTML(markup)}}
}

// Void renders a self-closing block such as site-title or post-content.
func Void(name string, attrs Attrs) *Block {
	return &Block{Name: name, Attrs: attrs, Void: true}
}

// Pattern references a registered pattern by its full slug.
func Pattern(slug string) *Block {
	return Void("pattern", Attrs{"slug": slug})
}

// TemplatePart references parts/{slug}.html.
func TemplatePart(slug, tagName string) *Block {
	return Void("template-part", Attrs{"slug": slug, "tagName": tagName})
}

func copyAttrs(a Attrs) Attrs {
	out := make(Attrs, len(a)+1)
	for k, v := range a {
		out[k] = v
	}
	return out
}

func classList(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return html.EscapeString(strings.Join(kept, " "))
}

func className(a Attrs) string {
	v, _ := a["className"].(string)
	return v
}

func alignClass(a Attrs) string {
	if v, ok := a["align"].(string); ok && v != "" {
		return "align" + v
	}
	return ""
}

func textAlignClass(a Attrs, key string) string {
	if v, ok := a[key].(string); ok && v != "" {
		return "has-text-align-" + v
	}
	return ""
}

func fontSizeClass(a Attrs) string {
	if v, ok := a["fontSize"].(string); ok && v != "" {
		return "has-" + v + "-font-size"
	}
	return ""
}

func layoutClass(a Attrs) string {
	var kind any
	switch layout := a["layout"].(type) {
	case Attrs:
		kind = layout["type"]
	case map[string]any:
		kind = layout["type"]
	}
	switch kind {
	case "flex":
		return "is-layout-flex"
	case "grid":
		return "is-layout-grid"
	case "constrained":
		return "is-layout-constrained"
	}
	return ""
}
