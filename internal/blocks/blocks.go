// Package blocks builds Gutenberg block markup from a tree of nodes.
//
// Every opener is written together with its closer by the same serializer,
// so markup produced here is balanced by construction. Validate is kept for
// markup that did not come from this package (converted HTML, overrides).
package blocks

import (
	"encoding/json"
	"html"
	"strings"
)

// Attrs are the JSON options of a block comment. encoding/json sorts map
// keys, which keeps serialization deterministic.
type Attrs map[string]any

// Inline is an HTML fragment placed inside a leaf block.
type Inline string

// Text escapes plain text for use as block content.
func Text(s string) Inline { return Inline(html.EscapeString(s)) }

// Raw marks s as trusted HTML.
func Raw(s string) Inline { return Inline(s) }

// Node is anything the serializer can write.
type Node interface {
	write(b *strings.Builder)
}

// HTML is a raw markup node with no block delimiters.
type HTML string

func (h HTML) write(b *strings.Builder) { b.WriteString(string(h)) }

// Block is a single Gutenberg block. Open and Close wrap the children; a
// leaf block keeps its whole inner HTML in Open.
type Block struct {
	Name     string
	Attrs    Attrs
	Open     string
	Close    string
	Children []Node
	Void     bool
}

func (blk *Block) write(b *strings.Builder) {
	b.WriteString("<!-- wp:")
	b.WriteString(blk.Name)
	if len(blk.Attrs) > 0 {
		b.WriteByte(' ')
		b.WriteString(encodeAttrs(blk.Attrs))
	}
	if blk.Void {
		b.WriteString(" /-->")
		return
	}
	b.WriteString(" -->\n")
	if blk.Open != "" {
		b.WriteString(blk.Open)
		b.WriteByte('\n')
	}
	for i, child := range blk.Children {
		if i > 0 {
			b.WriteByte('\n')
		}
		child.write(b)
		b.WriteByte('\n')
	}
	if blk.Close != "" {
		b.WriteString(blk.Close)
		b.WriteByte('\n')
	}
	b.WriteString("<!-- /wp:")
	b.WriteString(blk.Name)
	b.WriteString(" -->")
}

// Serialize writes top-level nodes separated by a blank line.
func Serialize(nodes ...Node) string {
	var b strings.Builder
	for i, n := range nodes {
		if n == nil {
			continue
		}
		if i > 0 && b.Len() > 0 {
			b.WriteString("\n\n")
		}
		n.write(&b)
	}
	return b.String()
}

// encodeAttrs mirrors WordPress's serialize_block_attributes: HTML
// significant characters and "--" are escaped so the JSON cannot end the
// surrounding comment early.
func encodeAttrs(a Attrs) string {
	var buf strings.Builder
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(map[string]any(a)); err != nil {
		return "{}"
	}
	out := strings.TrimSuffix(buf.String(), "\n")
	return strings.ReplaceAll(out, "--", `\u002d\u002d`)
}
