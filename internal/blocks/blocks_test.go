package blocks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeNestedGroup(t *testing.T) {
	out := Serialize(
		Group(Attrs{"align": "full", "className": "anvil-section", "layout": Attrs{"type": "constrained"}},
			Heading(Attrs{"textAlign": "center"}, 2, Text("Nuestros servicios")),
			Paragraph(nil, Text("Fish & chips <fresh>")),
		),
	)

	expected := `<!-- wp:group {"align":"full","className":"anvil-section","layout":{"type":"constrained"}} -->
<div class="wp-block-group alignfull anvil-section is-layout-constrained">
<!-- wp:heading {"textAlign":"center"} -->
<h2 class="wp-block-heading has-text-align-center">Nuestros servicios</h2>
<!-- /wp:heading -->

<!-- wp:paragraph -->
<p>Fish &amp; chips &lt;fresh&gt;</p>
<!-- /wp:paragraph -->
</div>
<!-- /wp:group -->`
	assert.Equal(t, expected, out)
	require.NoError(t, Validate(out))
}

func TestSerializeVoidBlocks(t *testing.T) {
	out := Serialize(TemplatePart("header", "header"), Pattern("cafe-azul-wp/hero"), Void("post-content", nil))
	assert.Equal(t, `<!-- wp:template-part {"slug":"header","tagName":"header"} /-->

<!-- wp:pattern {"slug":"cafe-azul-wp/hero"} /-->

<!-- wp:post-content /-->`, out)
}

func TestAttrsCannotCloseComment(t *testing.T) {
	out := Serialize(Paragraph(Attrs{"className": "x--y", "placeholder": "-->"}, Text("ok")))
	opener := strings.SplitN(out, "\n", 2)[0]
	assert.NotContains(t, opener, `x--y`)
	assert.Contains(t, opener, `x\u002d\u002dy`)
	assert.Contains(t, out, `<p class="x--y">ok</p>`)
	require.NoError(t, Validate(out))
	assert.Len(t, Scan(out), 2)
}

func TestHeadingLevel(t *testing.T) {
	out := Serialize(Heading(nil, 3, Text("Título")))
	assert.Contains(t, out, `<!-- wp:heading {"level":3} -->`)
	assert.Contains(t, out, `<h3 class="wp-block-heading">Título</h3>`)

	out = Serialize(Heading(nil, 9, Text("x")))
	assert.Contains(t, out, "<!-- wp:heading -->")
}

func TestButtonHref(t *testing.T) {
	out := Serialize(Buttons(nil, Button(Attrs{"className": "anvil-button"}, Text("Reservar"), "#contact?a=1&b=2")))
	assert.Contains(t, out, `href="#contact?a=1&amp;b=2"`)
	assert.Contains(t, out, `<div class="wp-block-button anvil-button">`)
	require.NoError(t, Validate(out))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		markup  string
		wantErr string
	}{
		{name: "empty", markup: ""},
		{name: "plain html", markup: "<div><p>hi</p></div>"},
		{name: "balanced", markup: "<!-- wp:group -->\n<!-- wp:paragraph -->\n<p>x</p>\n<!-- /wp:paragraph -->\n<!-- /wp:group -->"},
		{name: "namespaced", markup: `<!-- wp:acme/card {"a":{"b":1}} --><!-- /wp:acme/card -->`},
		{name: "void", markup: `<!-- wp:site-title {"level":3} /-->`},
		{name: "unexpected closer", markup: "<!-- /wp:group -->", wantErr: "unexpected closer wp:group"},
		{name: "crossed", markup: "<!-- wp:group --><!-- wp:columns --><!-- /wp:group --><!-- /wp:columns -->", wantErr: "does not match wp:columns"},
		{name: "unclosed", markup: "<!-- wp:group --><!-- wp:column -->", wantErr: "unclosed wp:group, wp:column"},
		{name: "bad json", markup: `<!-- wp:group {"a":} --><!-- /wp:group -->`, wantErr: "invalid attributes"},
		{name: "self closing closer", markup: "<!-- /wp:group /-->", wantErr: "is self-closing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.markup)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPatternRefs(t *testing.T) {
	markup := Serialize(
		TemplatePart("header", "header"),
		Group(Attrs{"tagName": "main"},
			Pattern("demo-wp/hero"),
			Pattern("demo-wp/contact"),
		),
	)
	assert.Equal(t, []string{"demo-wp/hero", "demo-wp/contact"}, PatternRefs(markup))
	assert.Contains(t, markup, "<main class=\"wp-block-group\">")
	assert.Empty(t, PatternRefs("<p>nothing</p>"))
}

func TestCustomHTML(t *testing.T) {
	out := Serialize(CustomHTML("\n  <form></form>\n"))
	assert.Equal(t, "<!-- wp:html -->\n<form></form>\n<!-- /wp:html -->", out)
}

func TestCustomHTMLEscapesDelimiters(t *testing.T) {
	out := Serialize(CustomHTML("<noscript><!-- wp:paragraph --><p>x</p><!-- /wp:paragraph --></noscript>"))
	require.NoError(t, Validate(out))
	assert.Contains(t, out, "&lt;!-- wp:paragraph -->")
	assert.Contains(t, out, "&lt;!-- /wp:paragraph -->")
	assert.Contains(t, out, "<!-- /wp:html -->")
}

func TestGroupAnchor(t *testing.T) {
	out := Serialize(Group(Attrs{"anchor": "contact", "tagName": "section"}))
	assert.Equal(t, "<!-- wp:group {\"anchor\":\"contact\",\"tagName\":\"section\"} -->\n<section id=\"contact\" class=\"wp-block-group\">\n</section>\n<!-- /wp:group -->", out)
}
