package ai

import "strings"

// Category identifies one of the entity categories an extractor populates.
type Category string

const (
	CategoryCompanies Category = "companies"
	CategoryPersons   Category = "persons"
	CategoryEvents    Category = "events"
)

// categoryAliases maps the key names models emit, in Spanish or English, to
// the canonical category. Matching is case-insensitive; unknown keys are
// ignored by callers.
var categoryAliases = map[string]Category{
	"companies":       CategoryCompanies,
	"empresas":        CategoryCompanies,
	"organizations":   CategoryCompanies,
	"organizaciones":  CategoryCompanies,
	"persons":         CategoryPersons,
	"personas":        CategoryPersons,
	"people":          CategoryPersons,
	"individuos":      CategoryPersons,
	"events":          CategoryEvents,
	"eventos":         CategoryEvents,
	"hechos":          CategoryEvents,
	"acontecimientos": CategoryEvents,
}

// NormalizeCategory resolves a response key to its canonical category.
// Returns false for keys that do not name a known category.
func NormalizeCategory(key string) (Category, bool) {
	category, ok := categoryAliases[strings.ToLower(strings.TrimSpace(key))]
	return category, ok
}
