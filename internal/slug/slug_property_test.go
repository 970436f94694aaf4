//go:build property

package slug

import (
	"regexp"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestNormalizeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("normalize is deterministic", prop.ForAll(
		func(s string) bool {
			return Normalize(s, 0) == Normalize(s, 0)
		},
		gen.AnyString(),
	))

	properties.Property("output is always a well-formed slug", prop.ForAll(
		func(s string, max int) bool {
			return slugShape.MatchString(Normalize(s, max))
		},
		gen.AnyString(),
		gen.IntRange(0, 60),
	))

	properties.Property("output respects the length cap", prop.ForAll(
		func(s string, max int) bool {
			out := Normalize(s, max)
			return out == Fallback || len(out) <= max
		},
		gen.AnyString(),
		gen.IntRange(1, 60),
	))

	properties.Property("normalize is idempotent", prop.ForAll(
		func(s string) bool {
			once := Normalize(s, 0)
			return Normalize(once, 0) == once
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
