// Package gallery decides which file actually serves each product image and
// keeps carousel positions.
package gallery

import (
	"regexp"
	"strings"
)

// Extensions are tried in this order for names without one.
var Extensions = []string{".avif", ".webp", ".jpg", ".jpeg", ".png"}

var (
	extOf  = regexp.MustCompile(`\.[^/.]+$`)
	hasExt = regexp.MustCompile(`\.[a-zA-Z0-9]{2,5}$`)
	spaces = regexp.MustCompile(`\s+`)
)

// VariantPaths lists the spellings an uploaded file may have been saved
// under: as given, without spaces, dashed, underscored, and without extension.
func VariantPaths(name string) []string {
	ext := extOf.FindString(name)
	base := strings.TrimSuffix(name, ext)
	return []string{
		name,
		base + ext,
		spaces.ReplaceAllString(base, "") + ext,
		spaces.ReplaceAllString(base, "-") + ext,
		spaces.ReplaceAllString(base, "_") + ext,
		base,
	}
}

// Expand appends every known extension to paths that have none and drops
// repeats, keeping the first occurrence.
func Expand(paths []string) []string {
	seen := make(map[string]struct{}, len(paths)*len(Extensions))
	out := make([]string, 0, len(paths)*len(Extensions))
	push := func(p string) {
		if p == "" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, p := range paths {
		if hasExt.MatchString(p) {
			push(p)
			continue
		}
		for _, e := range Extensions {
			push(p + e)
		}
	}
	return out
}

// Candidates is the full ordered probe list for one image name.
func Candidates(name string) []string {
	return Expand(VariantPaths(strings.TrimSpace(name)))
}
