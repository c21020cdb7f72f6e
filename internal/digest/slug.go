package digest

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify builds a filesystem-safe name for a preview artifact.
func Slugify(title string) string {
	// lowercase & trim spaces
	slug := strings.ToLower(strings.TrimSpace(title))

	// replace any non-alphanumeric character with hyphen
	slug = nonAlnum.ReplaceAllString(slug, "-")

	// remove leading/trailing hyphens
	slug = strings.Trim(slug, "-")

	return slug
}
