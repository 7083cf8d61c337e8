package catalog

import (
	"fmt"
	"strings"
)

// Category partitions the catalog into a closed set of product domains.
// Every task, product and catalog document is tagged with exactly one
// category.
type Category string

const (
	CategoryGolf        Category = "golf"
	CategoryTech        Category = "tech"
	CategoryFashion     Category = "fashion"
	CategoryMakeup      Category = "makeup"
	CategoryOutdoor     Category = "outdoor"
	CategoryPhotography Category = "photography"
	CategoryGaming      Category = "gaming"
	CategoryMusic       Category = "music"
	CategoryFitness     Category = "fitness"
	CategoryTravel      Category = "travel"
	CategoryEDC         Category = "edc"

	// CategoryOther is the fallback for free-text categories that do not
	// normalize into the closed set. It never has a collection config.
	CategoryOther Category = "other"
)

// Categories returns the collection categories in stable planning order.
// CategoryOther is excluded: it only exists as a learner fallback.
func Categories() []Category {
	return []Category{
		CategoryGolf,
		CategoryTech,
		CategoryFashion,
		CategoryMakeup,
		CategoryOutdoor,
		CategoryPhotography,
		CategoryGaming,
		CategoryMusic,
		CategoryFitness,
		CategoryTravel,
		CategoryEDC,
	}
}

// Valid reports whether c is a member of the closed category set. The
// switch is exhaustive on purpose: adding a category without updating it is
// a compile-visible change, not a silent fallback.
func (c Category) Valid() bool {
	switch c {
	case CategoryGolf, CategoryTech, CategoryFashion, CategoryMakeup,
		CategoryOutdoor, CategoryPhotography, CategoryGaming, CategoryMusic,
		CategoryFitness, CategoryTravel, CategoryEDC, CategoryOther:
		return true
	}
	return false
}

// ParseCategory converts s into a Category, rejecting anything outside the
// closed set.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// categoryAliases maps common free-text category strings (as produced by
// identification traffic) onto the closed set.
var categoryAliases = map[string]Category{
	"golf equipment": CategoryGolf,
	"technology":     CategoryTech,
	"electronics":    CategoryTech,
	"audio":          CategoryTech,
	"cosmetics":      CategoryMakeup,
	"beauty":         CategoryMakeup,
	"skincare":       CategoryMakeup,
	"clothing":       CategoryFashion,
	"apparel":        CategoryFashion,
	"footwear":       CategoryFashion,
	"camping":        CategoryOutdoor,
	"hiking":         CategoryOutdoor,
	"cameras":        CategoryPhotography,
	"video games":    CategoryGaming,
	"instruments":    CategoryMusic,
	"luggage":        CategoryTravel,
	"everyday carry": CategoryEDC,
	"knives":         CategoryEDC,
}

// NormalizeCategory maps a free-text category string into the closed set.
// Exact members pass through; known aliases are translated; everything else
// falls back to CategoryOther. The fallback is deliberately lossy so the
// learner never rejects a sighting over an unmapped category string.
func NormalizeCategory(s string) Category {
	key := strings.ToLower(strings.TrimSpace(s))
	if c := Category(key); c.Valid() {
		return c
	}
	if c, ok := categoryAliases[key]; ok {
		return c
	}
	return CategoryOther
}
