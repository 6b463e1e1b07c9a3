package util

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9 -]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
	slugHyphenRuns   = regexp.MustCompile(`-+`)
	skuInvalidChars  = regexp.MustCompile(`[^A-Z0-9]`)
)

// GenerateSlug converts a display name into a URL-safe slug.
// "Diamond Ring!" becomes "diamond-ring". The result is deterministic,
// so calling it on its own output returns the same slug.
func GenerateSlug(name string) string {
	slug := strings.ToLower(name)
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	slug = slugHyphenRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// GenerateSKU builds a product SKU from the category slug and product name:
// three category characters, up to five name characters, and the last six
// digits of the current epoch milliseconds, e.g. "RIN-DIAMO-482913".
func GenerateSKU(name, categorySlug string) string {
	prefix := strings.ToUpper(firstN(categorySlug, 3))
	namePart := skuInvalidChars.ReplaceAllString(strings.ToUpper(firstN(name, 5)), "")
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	timestamp := millis[len(millis)-6:]
	return fmt.Sprintf("%s-%s-%s", prefix, namePart, timestamp)
}

func firstN(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}
