package theme

import "sort"

// Fixed bundle paths.
const (
	PathStyle      = "style.css"
	PathThemeJSON  = "theme.json"
	PathFunctions  = "functions.php"
	PathCSS        = "assets/css/theme.css"
	PathJS         = "assets/js/theme.js"
	PathHeader     = "parts/header.html"
	PathFooter     = "parts/footer.html"
	PathIndex      = "templates/index.html"
	PathFrontPage  = "templates/front-page.html"
	PathPage       = "templates/page.html"
	PathSingle     = "templates/single.html"
	PathReadme     = "README.md"
	patternsPrefix = "patterns/"
)

// Bundle is an assembled theme: relative path to file content. It is not
// modified after Assemble returns it.
type Bundle struct {
	Slug     string
	Name     string
	Patterns []string
	files    map[string]string
}

// Get returns the content stored at path.
func (b Bundle) Get(path string) (string, bool) {
	c, ok := b.files[path]
	return c, ok
}

// Has reports whether the bundle contains path.
func (b Bundle) Has(path string) bool {
	_, ok := b.files[path]
	return ok
}

// Len is the number of files in the bundle.
func (b Bundle) Len() int { return len(b.files) }

// Paths returns every path in lexical order.
func (b Bundle) Paths() []string {
	paths := make([]string, 0, len(b.files))
	for p := range b.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Files returns a copy of the path to content mapping.
func (b Bundle) Files() map[string]string {
	out := make(map[string]string, len(b.files))
	for p, c := range b.files {
		out[p] = c
	}
	return out
}
