package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLength int
		want      string
	}{
		{name: "accents and punctuation", input: "Café Düsseldorf!!", want: "cafe-dusseldorf"},
		{name: "business name", input: "Café Azul", want: "cafe-azul"},
		{name: "leading and trailing junk", input: "  --Hello, World--  ", want: "hello-world"},
		{name: "digits kept", input: "Studio 54 & Co.", want: "studio-54-co"},
		{name: "spanish heading", input: "¿Por qué elegirnos?", want: "por-que-elegirnos"},
		{name: "enye", input: "Señor Niño", want: "senor-nino"},
		{name: "empty", input: "", want: Fallback},
		{name: "only symbols", input: "!!!  ???", want: Fallback},
		{name: "emoji only", input: "🚀✨", want: Fallback},
		{name: "truncated", input: "abcdef ghijkl", maxLength: 8, want: "abcdef-g"},
		{name: "truncation drops dangling hyphen", input: "abcdef ghijkl", maxLength: 7, want: "abcdef"},
		{name: "unbounded", input: strings.Repeat("a", 80), maxLength: 0, want: strings.Repeat("a", 80)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input, tt.maxLength))
		})
	}
}

func TestNormalizeNameCap(t *testing.T) {
	got := Normalize(strings.Repeat("Restaurante ", 10), NameMaxLength)
	assert.LessOrEqual(t, len(got), NameMaxLength)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestNormalizeDeterministic(t *testing.T) {
	inputs := []string{"Café Azul", "Ünïcödé Thêmé", "", "x"}
	for _, in := range inputs {
		assert.Equal(t, Normalize(in, 0), Normalize(in, 0))
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"cafe-azul-wp", "cafe_azul_wp"},
		{"360-digital-wp", "t_360_digital_wp"},
		{Theme("7 Mares"), "t_7_mares_wp"},
		{"a.b c", "a_b_c"},
		{"", "t_"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Identifier(tt.in), tt.in)
	}
}

func TestTheme(t *testing.T) {
	assert.Equal(t, "cafe-azul-wp", Theme("Café Azul"))
	assert.Equal(t, "untitled-wp", Theme("  !!  "))
	assert.Equal(t, "cafe_azul_wp", Identifier(Theme("Café Azul")))
}
