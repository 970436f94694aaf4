package blocks

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformed is returned by Validate for unbalanced or unparsable markup.
var ErrMalformed = errors.New("blocks: malformed block markup")

var delimiter = regexp.MustCompile(`<!--\s+(/)?wp:([a-z][a-z0-9_-]*(?:/[a-z][a-z0-9_-]*)?)\s+(?:(\{.*?\})\s+)?(/)?-->`)

// Delimiter is one block comment found in markup.
type Delimiter struct {
	Name   string
	Attrs  string
	Closer bool
	Void   bool
	Offset int
}

// Scan lists the block delimiters of markup in document order.
func Scan(markup string) []Delimiter {
	matches := delimiter.FindAllStringSubmatchIndex(markup, -1)
	out := make([]Delimiter, 0, len(matches))
	for _, m := range matches {
		d := Delimiter{
			Name:   markup[m[4]:m[5]],
			Closer: m[2] >= 0,
			Void:   m[8] >= 0,
			Offset: m[0],
		}
		if m[6] >= 0 {
			d.Attrs = markup[m[6]:m[7]]
		}
		out = append(out, d)
	}
	return out
}

// Validate checks that every opener has exactly one matching closer, that
// nesting is stack-balanced and that every attribute object is valid JSON.
func Validate(markup string) error {
	var stack []Delimiter
	for _, d := range Scan(markup) {
		if d.Attrs != "" && !json.Valid([]byte(d.Attrs)) {
			return fmt.Errorf("%w: invalid attributes on wp:%s at offset %d", ErrMalformed, d.Name, d.Offset)
		}
		switch {
		case d.Closer && d.Void:
			return fmt.Errorf("%w: closer wp:%s is self-closing at offset %d", ErrMalformed, d.Name, d.Offset)
		case d.Void:
		case d.Closer:
			if len(stack) == 0 {
				return fmt.Errorf("%w: unexpected closer wp:%s at offset %d", ErrMalformed, d.Name, d.Offset)
			}
			top := stack[len(stack)-1]
			if top.Name != d.Name {
				return fmt.Errorf("%w: closer wp:%s at offset %d does not match wp:%s opened at offset %d",
					ErrMalformed, d.Name, d.Offset, top.Name, top.Offset)
			}
			stack = stack[:len(stack)-1]
		default:
			stack = append(stack, d)
		}
	}
	if len(stack) > 0 {
		open := make([]string, len(stack))
		for i, d := range stack {
			open[i] = "wp:" + d.Name
		}
		return fmt.Errorf("%w: unclosed %s", ErrMalformed, strings.Join(open, ", "))
	}
	return nil
}

// PatternRefs returns the slug of every wp:pattern reference in markup.
func PatternRefs(markup string) []string {
	var refs []string
	for _, d := range Scan(markup) {
		if d.Name != "pattern" || d.Closer || d.Attrs == "" {
			continue
		}
		var attrs struct {
			Slug string `json:"slug"`
		}
		if err := json.Unmarshal([]byte(d.Attrs), &attrs); err == nil && attrs.Slug != "" {
			refs = append(refs, attrs.Slug)
		}
	}
	return refs
}
