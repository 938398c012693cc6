package catalog

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches demo files one or more directories below the root.
const DefaultPattern = "*/**/*.html"

// Discover builds a catalog from demo files found in fsys. The first path
// segment of each match is its category, the file stem its id. urlPrefix is
// prepended to the relative path to form the descriptor path.
func Discover(fsys fs.FS, pattern, urlPrefix string) (*Catalog, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("globbing %q: %w", pattern, err)
	}

	var (
		order []string
		cats  = make(map[string][]Descriptor)
		seen  = make(map[string]bool)
	)
	for _, rel := range matches {
		dir, _, found := strings.Cut(rel, "/")
		if !found {
			continue
		}
		stem := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
		id := uniqueID(seen, dir, stem)
		seen[id] = true

		if _, ok := cats[dir]; !ok {
			order = append(order, dir)
		}
		cats[dir] = append(cats[dir], Descriptor{
			ID:   id,
			Name: displayName(stem),
			Path: "/" + path.Join(strings.TrimPrefix(urlPrefix, "/"), rel),
		})
	}

	categories := make([]Category, 0, len(order))
	for _, name := range order {
		categories = append(categories, Category{Name: name, Components: cats[name]})
	}
	return New(categories)
}

// displayName turns "pageNavbar" or "landing_1" into "Page Navbar" / "Landing 1".
func displayName(stem string) string {
	var b strings.Builder
	prev := rune(0)
	for i, r := range stem {
		switch {
		case r == '_' || r == '-':
			r = ' '
		case i > 0 && unicode.IsUpper(r) && unicode.IsLower(prev):
			b.WriteRune(' ')
		case i > 0 && unicode.IsDigit(r) && unicode.IsLetter(prev):
			b.WriteRune(' ')
		}
		if i == 0 || prev == ' ' {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// uniqueID returns stem, or dir-stem when stem is taken, adding a counter
// until the id is unused.
func uniqueID(seen map[string]bool, dir, stem string) string {
	if !seen[stem] {
		return stem
	}
	base := dir + "-" + stem
	id := base
	for n := 2; seen[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}
