package service

import (
	"fmt"

	"github.com/aurelle-jewellery/aurelle-backend/pkg/util"
)

// uniqueSlug slugifies name and probes with -1, -2, ... suffixes until the
// exists check reports the candidate free. Used by every sluggable entity.
func uniqueSlug(name string, exists func(slug string) (bool, error)) (string, error) {
	base := util.GenerateSlug(name)
	if base == "" {
		base = "item"
	}

	candidate := base
	for counter := 1; ; counter++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

// uniqueSKU probes the generated SKU the same way slugs are probed.
// Collisions are rare (the suffix is clock-derived) but not impossible.
func uniqueSKU(name, categorySlug string, exists func(sku string) (bool, error)) (string, error) {
	base := util.GenerateSKU(name, categorySlug)

	candidate := base
	for counter := 1; ; counter++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
